package stubshop

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/phuslu/log"
)

//go:embed templates/*.html
var templates embed.FS

// Pages of the stub
const (
	PageTickets = "tickets"
	PageProfile = "profile"
)

// PageData represents the data passed to the webshop template
type PageData struct {
	Page              string
	Profile           Profile
	EmailConsent      bool
	NotifyConsent     bool
	TravelCard        string
	RecurringPayments []RecurringPayment
}

// PageHandler renders one page of the webshop
type PageHandler struct {
	template *template.Template
	page     string
	state    *State
	logger   *log.Logger
}

func parseTemplate() (*template.Template, error) {
	tmpl, err := template.New("webshop.html").Funcs(template.FuncMap{
		"travelCardText": travelCardText,
	}).ParseFS(templates, "templates/webshop.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	return tmpl, nil
}

// travelCardText groups a card number the way the webshop prints it
func travelCardText(number string) string {
	if len(number) != 16 {
		return number
	}
	return fmt.Sprintf("%s %s %s %s", number[0:6], number[6:8], number[8:15], number[15:])
}

// ServeHTTP handles the page request
func (h *PageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	data := PageData{
		Page:              h.page,
		Profile:           h.state.Profile(),
		TravelCard:        h.state.TravelCard(),
		RecurringPayments: h.state.RecurringPayments(),
	}
	for _, c := range h.state.Consents() {
		switch c.ConsentID {
		case ConsentEmail:
			data.EmailConsent = c.Choice
		case ConsentNotification:
			data.NotifyConsent = c.Choice
		}
	}

	if err := h.template.Execute(w, data); err != nil {
		h.logger.Error().Err(err).Str("page", h.page).Msg("failed to render page")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}
