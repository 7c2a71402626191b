package models

import (
	"fmt"
	"strings"
)

// TicketStatus is the validity state shown by the ticket icon
type TicketStatus string

// Ticket statuses
const (
	TicketStatusUnknown TicketStatus = ""
	TicketStatusWaiting TicketStatus = "waiting"
	TicketStatusValid   TicketStatus = "valid"
	TicketStatusCarnet  TicketStatus = "carnet"
	TicketStatusExpired TicketStatus = "expired"
)

// TicketStatusFromIcon maps the icon image source to a status
func TicketStatusFromIcon(src string) TicketStatus {
	switch {
	case strings.Contains(src, "waiting"):
		return TicketStatusWaiting
	case strings.Contains(src, "carnet"):
		return TicketStatusCarnet
	case strings.Contains(src, "expired"), strings.Contains(src, "invalid"):
		return TicketStatusExpired
	case strings.Contains(src, "valid"):
		return TicketStatusValid
	default:
		return TicketStatusUnknown
	}
}

// Ticket is a ticket card as rendered on "Mine billetter"
type Ticket struct {
	OrderID     string
	Status      TicketStatus
	Header      string
	Summary     TicketSummary
	SummaryText string // as rendered, when read from the page
}

// TicketSummary is the collapsed summary shown under the ticket header
type TicketSummary struct {
	Type      string
	Zones     string
	Traveller string
}

// Contains reports whether the rendered summary text carries every summary field
func (s TicketSummary) Contains(text string) error {
	for _, field := range []struct{ name, want string }{
		{"type", s.Type},
		{"zones", s.Zones},
		{"traveller", s.Traveller},
	} {
		if field.want != "" && !strings.Contains(text, field.want) {
			return fmt.Errorf("ticket summary %s: %q not in %q", field.name, field.want, text)
		}
	}
	return nil
}

// SameTicket verifies that next is the same ticket as t after a status change.
// Only the status and the header may differ.
func (t Ticket) SameTicket(next Ticket) error {
	if t.OrderID != next.OrderID {
		return fmt.Errorf("order id changed from %s to %s", t.OrderID, next.OrderID)
	}
	if t.Summary != next.Summary {
		return fmt.Errorf("ticket %s summary changed from %+v to %+v", t.OrderID, t.Summary, next.Summary)
	}
	if t.SummaryText != next.SummaryText {
		return fmt.Errorf("ticket %s summary changed from %q to %q", t.OrderID, t.SummaryText, next.SummaryText)
	}
	return nil
}

// Activated verifies the waiting → valid transition of the same ticket
func (t Ticket) Activated(next Ticket) error {
	if t.Status != TicketStatusWaiting {
		return fmt.Errorf("%w: ticket %s was %q, not waiting", ErrInvalidStateTransition, t.OrderID, t.Status)
	}
	if next.Status != TicketStatusValid {
		return fmt.Errorf("%w: ticket %s became %q, not valid", ErrInvalidStateTransition, t.OrderID, next.Status)
	}
	return t.SameTicket(next)
}

// TicketDetails is the expanded detail panel of a ticket
type TicketDetails struct {
	Visible bool
	Text    string
}

// DetailLabels are the labels every expanded ticket shows
var DetailLabels = []string{"Gyldig fra", "Gyldig til", "Kjøpstidspunkt", "Betalt med", "Ordre-ID"}

// Missing returns the wanted fragments that are absent from the details
func (d TicketDetails) Missing(want ...string) []string {
	var missing []string
	for _, w := range want {
		if !strings.Contains(d.Text, w) {
			missing = append(missing, w)
		}
	}
	return missing
}
