package flow

import (
	"context"
	"errors"
	"time"

	"github.com/atb-as/webshop-e2e/internal/harness"
	"github.com/atb-as/webshop-e2e/internal/locator"
	"github.com/atb-as/webshop-e2e/internal/models"
)

// Tickets covers "Mine billetter"
type Tickets struct {
	o *Orchestrator
}

// Tickets returns the ticket overview flows
func (o *Orchestrator) Tickets() Tickets {
	return Tickets{o: o}
}

// Ticket reads the collapsed card of orderID
func (t Tickets) Ticket(orderID string) (models.Ticket, error) {
	params := locator.P("orderId", orderID)
	ticket := models.Ticket{OrderID: orderID}

	if _, err := t.o.Locate(locator.Ticket, params); err != nil {
		return ticket, err
	}
	icon, err := t.o.Attribute(locator.TicketIcon, params, "src")
	if err != nil {
		return ticket, err
	}
	ticket.Status = models.TicketStatusFromIcon(icon)
	if ticket.Header, err = t.o.Text(locator.TicketHeader, params); err != nil {
		return ticket, err
	}
	if ticket.SummaryText, err = t.o.Text(locator.TicketSummary, params); err != nil {
		return ticket, err
	}
	return ticket, nil
}

// WaitForTicket reloads the overview until orderID is listed or timeout passes
func (t Tickets) WaitForTicket(ctx context.Context, orderID string, timeout time.Duration) error {
	return t.poll(ctx, orderID, timeout, func() (bool, error) {
		return t.o.Present(locator.Ticket, locator.P("orderId", orderID))
	})
}

// WaitForStatus reloads the overview until orderID shows status, e.g. a new
// ticket going from waiting to valid. It returns the ticket as last read.
func (t Tickets) WaitForStatus(ctx context.Context, orderID string, status models.TicketStatus, timeout time.Duration) (models.Ticket, error) {
	var ticket models.Ticket
	err := t.poll(ctx, orderID, timeout, func() (bool, error) {
		present, err := t.o.Present(locator.Ticket, locator.P("orderId", orderID))
		if err != nil || !present {
			return false, err
		}
		if ticket, err = t.Ticket(orderID); err != nil {
			return false, err
		}
		return ticket.Status == status, nil
	})
	if errors.Is(err, harness.ErrLocatorNotFound) && ticket.OrderID != "" {
		return ticket, harness.Mismatch("ticket "+orderID+" status", string(status), string(ticket.Status))
	}
	return ticket, err
}

// poll checks done, reloading the page every poll interval until it holds
func (t Tickets) poll(ctx context.Context, orderID string, timeout time.Duration, done func() (bool, error)) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	for {
		ok, err := done()
		if err != nil || ok {
			return err
		}

		select {
		case <-ctx.Done():
			return harness.NotFound(string(locator.Ticket)+" "+orderID, ctx.Err())
		case <-time.After(t.o.opts.PollInterval):
		}
		t.o.opts.Logger.Debug().Str("orderId", orderID).Msg("reloading ticket overview")
		if err := t.o.Do(ctx, Flow{
			Name:    "tickets.reload",
			Actions: []Action{func(context.Context) error { return t.o.driver.Reload() }},
		}); err != nil {
			return err
		}
	}
}

// IsCollapsed reports whether the details of orderID are folded away
func (t Tickets) IsCollapsed(orderID string) (bool, error) {
	return collapsed(t.o, locator.TicketToggle, orderID)
}

// ShowDetails unfolds the details of orderID. Calling it on an open ticket does nothing.
func (t Tickets) ShowDetails(ctx context.Context, orderID string) error {
	return toggleTo(ctx, t.o, "tickets.showDetails", locator.TicketToggle, orderID, false)
}

// HideDetails folds the details of orderID. Calling it on a folded ticket does nothing.
func (t Tickets) HideDetails(ctx context.Context, orderID string) error {
	return toggleTo(ctx, t.o, "tickets.hideDetails", locator.TicketToggle, orderID, true)
}

// Details reads the detail panel of orderID
func (t Tickets) Details(orderID string) (models.TicketDetails, error) {
	return details(t.o, locator.TicketDetails, orderID)
}

// ReceiptEnabled reports whether the receipt button of orderID can be used
func (t Tickets) ReceiptEnabled(orderID string) (bool, error) {
	el, err := t.o.Locate(locator.TicketReceipt, locator.P("orderId", orderID))
	if err != nil {
		return false, err
	}
	return el.IsEnabled()
}

// AccountInfo returns the account box on the overview
func (t Tickets) AccountInfo() (string, error) {
	return t.o.Text(locator.TicketsAccountInfo, nil)
}

// TravelCard returns the travel card number shown on the overview
func (t Tickets) TravelCard() (string, error) {
	return t.o.Text(locator.TicketsTravelCard, nil)
}

func collapsed(o *Orchestrator, toggle locator.Concept, orderID string) (bool, error) {
	expanded, err := o.Attribute(toggle, locator.P("orderId", orderID), "aria-expanded")
	if err != nil {
		return false, err
	}
	return expanded != "true", nil
}

func toggleTo(ctx context.Context, o *Orchestrator, name string, toggle locator.Concept, orderID string, wantCollapsed bool) error {
	isCollapsed, err := collapsed(o, toggle, orderID)
	if err != nil {
		return err
	}
	if isCollapsed == wantCollapsed {
		return nil
	}
	return o.Do(ctx, Flow{
		Name:    name,
		Actions: []Action{o.click(toggle, locator.P("orderId", orderID))},
	})
}

// details reads the panel; a folded panel that is not rendered reads as not visible
func details(o *Orchestrator, c locator.Concept, orderID string) (models.TicketDetails, error) {
	params := locator.P("orderId", orderID)
	present, err := o.Present(c, params)
	if err != nil || !present {
		return models.TicketDetails{}, err
	}

	el, err := o.Locate(c, params)
	if errors.Is(err, harness.ErrLocatorNotFound) {
		return models.TicketDetails{}, nil
	}
	if err != nil {
		return models.TicketDetails{}, err
	}
	var d models.TicketDetails
	if d.Visible, err = el.IsVisible(); err != nil {
		return d, err
	}
	if d.Text, err = el.Text(); err != nil {
		return d, err
	}
	return d, nil
}
