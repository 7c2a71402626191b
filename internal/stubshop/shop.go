// Package stubshop serves a small stand-in for the webshop's profile pages
// and the backend calls they make, so profile flows can run locally.
package stubshop

import (
	"net/http"

	"github.com/phuslu/log"
)

// Shop is the stub webshop
type Shop struct {
	state *State
	pages map[string]*PageHandler
	mux   *http.ServeMux
}

// New creates a stub webshop around state
func New(state *State, logger *log.Logger) (*Shop, error) {
	tmpl, err := parseTemplate()
	if err != nil {
		return nil, err
	}

	s := &Shop{state: state, mux: http.NewServeMux()}
	page := func(name string) *PageHandler {
		return &PageHandler{template: tmpl, page: name, state: state, logger: logger}
	}

	s.mux.Handle("/", rootOnly(page(PageTickets)))
	s.mux.Handle("/profile", page(PageProfile))
	s.mux.Handle("/webshop/v1/profile", &ProfileHandler{state: state, logger: logger})
	s.mux.Handle("/webshop/v1/consent", &ConsentHandler{state: state, logger: logger})
	s.mux.Handle("/webshop/v1/travelcard", &TravelCardHandler{state: state, logger: logger})
	s.mux.Handle("/ticket/v2/recurring-payments", &RecurringPaymentsHandler{state: state})
	return s, nil
}

// ServeHTTP routes to the pages and endpoints
func (s *Shop) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// State returns the account behind the stub
func (s *Shop) State() *State {
	return s.state
}

func rootOnly(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})
}
