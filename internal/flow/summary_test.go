package flow

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/atb-as/webshop-e2e/internal/harness"
	"github.com/atb-as/webshop-e2e/internal/locator"
	"github.com/atb-as/webshop-e2e/internal/models"
)

// shopPage renders the period ticket page and its summary. The pay button
// answers @payments with status and body.
func shopPage(t *testing.T, status int, body string) *fakePage {
	page := newFakePage(t)

	page.put(locator.MenuBuyPeriodTicket, nil, &fakeElement{onClick: func() {
		page.put(locator.Header, locator.Params{"level": "h2", "text": HeaderPeriodTicket}, &fakeElement{})
		page.respond("GET", "/ticket/v1/search/zones?from=ATB:TariffZone:1", 200, `[]`)
	}})
	page.put(locator.PurchaseOption, locator.Params{"title": SectionProduct, "option": "30-dagersbillett"}, &fakeElement{
		onClick: func() { page.respond("POST", "/ticket/v1/search/zones", 200, `[]`) },
	})
	page.put(locator.PurchaseGoToSummary, nil, &fakeElement{
		attrs: map[string]string{"class": "ui-button"},
		onClick: func() {
			page.put(locator.Header, locator.Params{"level": "h2", "text": HeaderSummary}, &fakeElement{})
			page.respond("GET", "/ticket/v2/recurring-payments", 200, `[]`)
		},
	})
	page.put(locator.SummaryStoredPayment, locator.P("type", "Visa"), &fakeElement{text: "Visa **** 0004"})
	page.put(locator.SummaryPayButton, nil, &fakeElement{text: "Betal 900,00 kr", onClick: func() {
		page.respond("POST", "/ticket/v2/reserve", 200, `{"transaction_id":1}`)
		page.respond("PUT", "/ticket/v1/payments/1/capture", status, body)
	}})
	return page
}

func TestBuyTicket(t *testing.T) {
	page := shopPage(t, 200, `{"order_id":"R72EMYQA"}`)
	o := page.orchestrator(Options{})

	got, err := o.BuyTicket(context.Background(), "30-dagersbillett", "Visa")
	if err != nil {
		t.Fatalf("BuyTicket() error = %v", err)
	}
	if got != "R72EMYQA" {
		t.Errorf("BuyTicket() = %q, want R72EMYQA", got)
	}

	want := []string{
		"click menu.buyPeriodTicket",
		"click purchase.option",
		"click purchase.goToSummary",
		"click summary.storedPayment",
		"click summary.payButton",
	}
	if actions := page.actionLog(); !reflect.DeepEqual(actions, want) {
		t.Errorf("actions = %v, want %v", actions, want)
	}
}

func TestBuyTicket_DefaultProduct(t *testing.T) {
	page := shopPage(t, 200, `{"order_id":"HUCVIBHX"}`)
	o := page.orchestrator(Options{})

	got, err := o.BuyTicket(context.Background(), "", "Visa")
	if err != nil {
		t.Fatalf("BuyTicket() error = %v", err)
	}
	if got != "HUCVIBHX" {
		t.Errorf("BuyTicket() = %q, want HUCVIBHX", got)
	}
	for _, a := range page.actionLog() {
		if a == "click purchase.option" {
			t.Error("BuyTicket() chose a product without being asked to")
		}
	}
}

func TestPay_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"payment rejected", 402, `{"order_id":"R72EMYQA"}`, harness.ErrAssertionMismatch},
		{"no order id", 200, `{}`, harness.ErrAssertionMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := shopPage(t, tt.status, tt.body)
			o := page.orchestrator(Options{})

			_, err := o.Summary().Pay(context.Background(), "Visa")
			if !errors.Is(err, tt.want) {
				t.Errorf("Pay() error = %v, want %v", err, tt.want)
			}
		})
	}

	page := shopPage(t, 200, `<html>`)
	if _, err := page.orchestrator(Options{}).Summary().Pay(context.Background(), "Visa"); err == nil {
		t.Error("Pay() error = nil for a body that is not json")
	}
}

func TestPurchase_Reads(t *testing.T) {
	page := newFakePage(t)
	p := page.orchestrator(Options{}).Purchase()

	page.put(locator.PurchasePrice, nil, &fakeElement{text: "Totalt 1 050,00 kr"})
	page.put(locator.PurchaseVAT, nil, &fakeElement{text: "Herav mva 112,50 kr"})
	page.put(locator.PurchaseGoToSummary, nil, &fakeElement{attrs: map[string]string{"class": "ui-button ui-button--disabled"}})
	page.put(locator.PurchaseArrivalZone, nil, &fakeElement{value: "ATB:TariffZone:2"})

	price, err := p.Price()
	if err != nil || price != models.Price(105000) {
		t.Errorf("Price() = %v, %v, want 1050,00", price, err)
	}
	vat, err := p.VAT()
	if err != nil || vat != models.Price(11250) {
		t.Errorf("VAT() = %v, %v, want 112,50", vat, err)
	}
	enabled, err := p.SummaryEnabled()
	if err != nil || enabled {
		t.Errorf("SummaryEnabled() = %v, %v, want false", enabled, err)
	}
	zone, err := p.Zone(ArrivalZone)
	if err != nil || zone != "ATB:TariffZone:2" {
		t.Errorf("Zone(arrival) = %q, %v", zone, err)
	}
	info, err := p.InfoText()
	if err != nil || info != "" {
		t.Errorf("InfoText() = %q, %v, want empty", info, err)
	}
}
