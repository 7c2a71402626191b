package flow

import (
	"context"
	"fmt"
	"net/http"

	"github.com/atb-as/webshop-e2e/internal/harness"
	"github.com/atb-as/webshop-e2e/internal/locator"
	"github.com/atb-as/webshop-e2e/internal/models"
)

// Summary detail labels
const (
	DetailTicketType = "Billettype"
	DetailTravelType = "Reisetype"
	DetailCarnet     = "Antall billetter"
	DetailTraveller  = "Reisende"
	DetailZone       = "Sone"
	DetailValidFrom  = "Gyldig fra"
)

// Payment methods as named by the summary radio buttons
const (
	PaymentVipps      = "vipps"
	PaymentVisa       = "visa"
	PaymentMastercard = "mastercard"
)

// Summary covers "Oppsummering"
type Summary struct {
	o *Orchestrator
}

// Summary returns the summary page flows
func (o *Orchestrator) Summary() Summary {
	return Summary{o: o}
}

// Detail returns the value listed under label
func (s Summary) Detail(label string) (string, error) {
	return s.o.Text(locator.SummaryDetail, locator.P("label", label))
}

// Price returns the total
func (s Summary) Price() (models.Price, error) {
	text, err := s.o.Text(locator.SummaryPrice, nil)
	if err != nil {
		return 0, err
	}
	return models.ExtractPrice(text)
}

// SelectPaymentOption picks vipps, visa or mastercard
func (s Summary) SelectPaymentOption(ctx context.Context, method string) error {
	return s.o.Do(ctx, Flow{
		Name:    "summary.selectPaymentOption",
		Actions: []Action{s.o.click(locator.SummaryPaymentOption, locator.P("method", method))},
	})
}

// PaymentOptionLabel returns the label of a payment method
func (s Summary) PaymentOptionLabel(method string) (string, error) {
	return s.o.Text(locator.SummaryPaymentOptionLabel, locator.P("method", method))
}

// PaymentOptionChecked reports whether the payment method is selected
func (s Summary) PaymentOptionChecked(method string) (bool, error) {
	el, err := s.o.Locate(locator.SummaryPaymentOption, locator.P("method", method))
	if err != nil {
		return false, err
	}
	return el.IsChecked()
}

// SelectStoredPayment picks a saved card by type, e.g. "MasterCard"
func (s Summary) SelectStoredPayment(ctx context.Context, cardType string) error {
	return s.o.Do(ctx, Flow{
		Name:    "summary.selectStoredPayment",
		Actions: []Action{s.o.click(locator.SummaryStoredPayment, locator.P("type", cardType))},
	})
}

// StoredPayment reads the saved card of cardType
func (s Summary) StoredPayment(cardType string) (StoredCard, error) {
	return readStoredCard(s.o, cardType,
		locator.SummaryStoredPayment, locator.SummaryStoredPaymentExpiry, locator.SummaryStoredPaymentIcon)
}

// StorePaymentOption is the "Lagre betalingskort" checkbox offered for new cards
type StorePaymentOption struct {
	Present bool
	Visible bool
	Checked bool
	Label   string
}

// StorePayment reads the store-card checkbox, which only exists for card payments
func (s Summary) StorePayment() (StorePaymentOption, error) {
	var opt StorePaymentOption
	present, err := s.o.Present(locator.SummaryStorePayment, nil)
	if err != nil || !present {
		return opt, err
	}
	opt.Present = true

	el, err := s.o.Locate(locator.SummaryStorePayment, nil)
	if err != nil {
		return opt, err
	}
	if opt.Visible, err = el.IsVisible(); err != nil {
		return opt, err
	}
	if opt.Checked, err = el.IsChecked(); err != nil {
		return opt, err
	}
	if opt.Label, err = s.o.Text(locator.SummaryStorePaymentLabel, nil); err != nil {
		return opt, err
	}
	return opt, nil
}

// PayButton returns the label of the pay button
func (s Summary) PayButton() (string, error) {
	return s.o.Text(locator.SummaryPayButton, nil)
}

// Back returns to the ticket page
func (s Summary) Back(ctx context.Context) error {
	return s.o.Do(ctx, Flow{
		Name:    "summary.back",
		Actions: []Action{s.o.click(locator.SummaryBack, nil)},
	})
}

// Pay pays with the stored card of cardType and returns the new order id from
// the payment response
func (s Summary) Pay(ctx context.Context, cardType string) (string, error) {
	exchanges, err := s.o.Run(ctx, Flow{
		Name:       "summary.pay",
		Intercepts: []Intercept{reserve, payments},
		Actions: []Action{
			s.o.click(locator.SummaryStoredPayment, locator.P("type", cardType)),
			s.o.click(locator.SummaryPayButton, nil),
		},
	})
	if err != nil {
		return "", err
	}

	paid := exchanges[1]
	if paid.Status != http.StatusOK {
		return "", harness.Mismatch("@"+AliasPayments+" status", fmt.Sprint(http.StatusOK), fmt.Sprint(paid.Status))
	}
	var body struct {
		OrderID string `json:"order_id"`
	}
	if err := paid.DecodeJSON(&body); err != nil {
		return "", err
	}
	if body.OrderID == "" {
		return "", harness.Mismatch("@"+AliasPayments+" order_id", "an order id", "")
	}
	return body.OrderID, nil
}

// BuyTicket buys product (empty keeps the default) as a period ticket paid
// with the stored card of cardType and returns its order id
func (o *Orchestrator) BuyTicket(ctx context.Context, product, cardType string) (string, error) {
	if err := o.Menu().BuyPeriodTicket(ctx); err != nil {
		return "", err
	}
	if product != "" {
		if err := o.Purchase().SetProduct(ctx, product); err != nil {
			return "", err
		}
	}
	if err := o.Purchase().GoToSummary(ctx); err != nil {
		return "", err
	}
	return o.Summary().Pay(ctx, cardType)
}
