package stubshop

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phuslu/log"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ProfileRequest is the body of PATCH /webshop/v1/profile
type ProfileRequest struct {
	FirstName string `json:"firstName" validate:"omitempty,max=100"`
	Surname   string `json:"surname" validate:"omitempty,max=100"`
	Phone     string `json:"phone" validate:"omitempty,e164"`
}

// TravelCardRequest is the body of POST /webshop/v1/travelcard
type TravelCardRequest struct {
	TravelCardID string `json:"travelCardId" validate:"required,numeric,len=16"`
}

// ProfileHandler updates the profile
type ProfileHandler struct {
	state  *State
	logger *log.Logger
}

// ServeHTTP handles PATCH /webshop/v1/profile
func (h *ProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ProfileRequest
	if !decode(w, r, &req) {
		return
	}

	profile := h.state.UpdateProfile(Profile{FirstName: req.FirstName, Surname: req.Surname, Phone: req.Phone})
	h.logger.Info().Str("firstName", profile.FirstName).Str("surname", profile.Surname).Msg("profile updated")
	writeJSON(w, http.StatusOK, profile)
}

// ConsentHandler lists and records consents
type ConsentHandler struct {
	state  *State
	logger *log.Logger
}

// ServeHTTP handles GET and POST /webshop/v1/consent
func (h *ConsentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.state.Consents())
	case http.MethodPost:
		var c Consent
		if !decode(w, r, &c) {
			return
		}
		if !h.state.SetConsent(c) {
			sendErrorResponse(w, "Unknown consent", http.StatusNotFound)
			return
		}
		h.logger.Info().Int("consentId", c.ConsentID).Bool("choice", c.Choice).Msg("consent recorded")
		writeJSON(w, http.StatusOK, c)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// TravelCardHandler registers and removes the travel card
type TravelCardHandler struct {
	state  *State
	logger *log.Logger
}

// ServeHTTP handles POST and DELETE /webshop/v1/travelcard
func (h *TravelCardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var req TravelCardRequest
		if !decode(w, r, &req) {
			return
		}
		h.state.SetTravelCard(req.TravelCardID)
		h.logger.Info().Str("travelCardId", req.TravelCardID).Msg("travel card added")
		writeJSON(w, http.StatusCreated, req)
	case http.MethodDelete:
		if h.state.TravelCard() == "" {
			sendErrorResponse(w, "No travel card registered", http.StatusNotFound)
			return
		}
		h.state.SetTravelCard("")
		h.logger.Info().Msg("travel card removed")
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// RecurringPaymentsHandler lists the stored cards
type RecurringPaymentsHandler struct {
	state *State
}

// ServeHTTP handles GET /ticket/v2/recurring-payments
func (h *RecurringPaymentsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, h.state.RecurringPayments())
}

// decode reads and validates a JSON body, answering 400 when it cannot
func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		sendErrorResponse(w, "Invalid JSON body", http.StatusBadRequest)
		return false
	}
	if err := validate.Struct(v); err != nil {
		if _, ok := err.(*validator.InvalidValidationError); !ok {
			sendErrorResponse(w, err.Error(), http.StatusBadRequest)
			return false
		}
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// sendErrorResponse sends a JSON error response
func sendErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	writeJSON(w, statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}
