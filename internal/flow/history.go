package flow

import (
	"context"

	"github.com/atb-as/webshop-e2e/internal/locator"
	"github.com/atb-as/webshop-e2e/internal/models"
)

// History covers "Kjøpshistorikk"
type History struct {
	o *Orchestrator
}

// History returns the purchase history flows
func (o *Orchestrator) History() History {
	return History{o: o}
}

// Ticket returns the text of the history entry for orderID
func (h History) Ticket(orderID string) (string, error) {
	return h.o.Text(locator.HistoryTicket, locator.P("orderId", orderID))
}

// IsCollapsed reports whether the entry for orderID is folded
func (h History) IsCollapsed(orderID string) (bool, error) {
	return collapsed(h.o, locator.HistoryToggle, orderID)
}

// ShowDetails unfolds the entry for orderID
func (h History) ShowDetails(ctx context.Context, orderID string) error {
	return toggleTo(ctx, h.o, "history.showDetails", locator.HistoryToggle, orderID, false)
}

// HideDetails folds the entry for orderID
func (h History) HideDetails(ctx context.Context, orderID string) error {
	return toggleTo(ctx, h.o, "history.hideDetails", locator.HistoryToggle, orderID, true)
}

// Details reads the unfolded entry for orderID
func (h History) Details(orderID string) (models.TicketDetails, error) {
	return details(h.o, locator.HistoryDetails, orderID)
}
