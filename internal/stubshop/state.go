package stubshop

import (
	"sync"
)

// Consent ids as used by the webshop's consent checkboxes
const (
	ConsentEmail        = 1186
	ConsentNotification = 1197
)

// Profile is the customer profile the stub serves
type Profile struct {
	FirstName string `json:"firstName"`
	Surname   string `json:"surname"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

// Consent is one consent choice
type Consent struct {
	ConsentID int  `json:"consentId"`
	Choice    bool `json:"choice"`
}

// RecurringPayment is a stored payment card
type RecurringPayment struct {
	ID          int    `json:"id"`
	PaymentType int    `json:"payment_type"`
	CardType    string `json:"card_type"`
	MaskedPan   string `json:"masked_pan"`
	ExpiresAt   string `json:"expires_at"`
}

// State is the in-memory customer account behind the stub
type State struct {
	mu                sync.Mutex
	profile           Profile
	consents          map[int]bool
	travelCard        string
	recurringPayments []RecurringPayment
}

// NewState creates an account with a name, a phone number and one stored Visa card
func NewState() *State {
	return &State{
		profile: Profile{
			FirstName: "Test",
			Surname:   "Testesen",
			Phone:     "+4791111111",
			Email:     "test@atb.no",
		},
		consents: map[int]bool{
			ConsentEmail:        false,
			ConsentNotification: false,
		},
		recurringPayments: []RecurringPayment{
			{ID: 1, PaymentType: 3, CardType: "Visa", MaskedPan: "**** 0004", ExpiresAt: "03/30"},
		},
	}
}

// Profile returns a copy of the profile
func (s *State) Profile() Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

// UpdateProfile applies the non-empty fields of patch
func (s *State) UpdateProfile(patch Profile) Profile {
	s.mu.Lock()
	defer s.mu.Unlock()

	if patch.FirstName != "" {
		s.profile.FirstName = patch.FirstName
	}
	if patch.Surname != "" {
		s.profile.Surname = patch.Surname
	}
	if patch.Phone != "" {
		s.profile.Phone = patch.Phone
	}
	return s.profile
}

// Consents lists every consent, email first
func (s *State) Consents() []Consent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return []Consent{
		{ConsentID: ConsentEmail, Choice: s.consents[ConsentEmail]},
		{ConsentID: ConsentNotification, Choice: s.consents[ConsentNotification]},
	}
}

// SetConsent records a choice, reporting false for unknown consent ids
func (s *State) SetConsent(c Consent) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.consents[c.ConsentID]; !ok {
		return false
	}
	s.consents[c.ConsentID] = c.Choice
	return true
}

// TravelCard returns the registered travel card number, empty when none
func (s *State) TravelCard() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.travelCard
}

// SetTravelCard registers or, with an empty number, removes the travel card
func (s *State) SetTravelCard(number string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.travelCard = number
}

// RecurringPayments returns the stored cards
func (s *State) RecurringPayments() []RecurringPayment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]RecurringPayment(nil), s.recurringPayments...)
}
