package flow

import (
	"context"
	"strings"

	"github.com/atb-as/webshop-e2e/internal/locator"
	"github.com/atb-as/webshop-e2e/internal/models"
)

// Section titles of the new ticket page
const (
	SectionTravelType = "Reisetype"
	SectionProduct    = "Billettype"
	SectionCarnet     = "Antall billetter"
	SectionTraveller  = "Reisende"
	SectionZones      = "Soner"
	SectionTravelTime = "Gyldig fra"
)

// Zone selects
const (
	DepartureZone = "departureZone"
	ArrivalZone   = "arrivalZone"
)

const disabledButtonClass = "ui-button--disabled"

// Purchase covers the period and carnet ticket pages
type Purchase struct {
	o *Orchestrator
}

// Purchase returns the new ticket page flows
func (o *Orchestrator) Purchase() Purchase {
	return Purchase{o: o}
}

// ShowOptions expands section
func (p Purchase) ShowOptions(ctx context.Context, section string) error {
	return p.o.Do(ctx, Flow{
		Name:    "purchase.showOptions",
		Actions: []Action{p.o.click(locator.PurchaseSectionToggle, locator.P("title", section))},
	})
}

// OptionsVisible reports whether the options of section are showing
func (p Purchase) OptionsVisible(section string) (bool, error) {
	return p.o.Visible(locator.PurchaseSectionOptions, locator.P("title", section))
}

// SectionVisible reports whether section is shown at all
func (p Purchase) SectionVisible(section string) (bool, error) {
	return p.o.Visible(locator.PurchaseSection, locator.P("title", section))
}

// SectionValue returns the summary value in the header of section
func (p Purchase) SectionValue(section string) (string, error) {
	return p.o.Text(locator.PurchaseSectionValue, locator.P("title", section))
}

// SectionText returns the full text of section
func (p Purchase) SectionText(section string) (string, error) {
	return p.o.Text(locator.PurchaseSection, locator.P("title", section))
}

func (p Purchase) choose(ctx context.Context, name, section, option string) error {
	return p.o.Do(ctx, Flow{
		Name:       name,
		Intercepts: []Intercept{zoneSearch},
		Actions: []Action{
			p.o.click(locator.PurchaseOption, locator.Params{"title": section, "option": option}),
		},
	})
}

// SetTraveller picks a traveller category, e.g. "Barn", and waits for the new offer
func (p Purchase) SetTraveller(ctx context.Context, traveller string) error {
	return p.choose(ctx, "purchase.setTraveller", SectionTraveller, traveller)
}

// SetProduct picks a product, e.g. "7-dagersbillett", and waits for the new offer
func (p Purchase) SetProduct(ctx context.Context, product string) error {
	return p.choose(ctx, "purchase.setProduct", SectionProduct, product)
}

// TravelInFuture switches the start time to "Fram i tid" and waits for the new offer
func (p Purchase) TravelInFuture(ctx context.Context) error {
	return p.o.Do(ctx, Flow{
		Name:       "purchase.travelInFuture",
		Intercepts: []Intercept{zoneSearch},
		Actions: []Action{
			p.o.click(locator.PurchaseSectionToggle, locator.P("title", SectionTravelTime)),
			p.o.click(locator.PurchaseInFuture, nil),
		},
	})
}

// SetStart types a start date (yyyy-mm-dd, empty keeps the current one) and time (HH:MM)
func (p Purchase) SetStart(ctx context.Context, date, clock string) error {
	var actions []Action
	if date != "" {
		actions = append(actions, p.o.fill(locator.PurchaseDate, nil, date))
	}
	if clock != "" {
		actions = append(actions, p.o.fill(locator.PurchaseTime, nil, clock))
	}
	return p.o.Do(ctx, Flow{Name: "purchase.setStart", Actions: actions})
}

// OpenDatePicker focuses the start date input
func (p Purchase) OpenDatePicker(ctx context.Context) error {
	return p.o.Do(ctx, Flow{Name: "purchase.openDatePicker", Actions: []Action{p.o.click(locator.PurchaseDate, nil)}})
}

// OpenTimePicker focuses the start time input
func (p Purchase) OpenTimePicker(ctx context.Context) error {
	return p.o.Do(ctx, Flow{Name: "purchase.openTimePicker", Actions: []Action{p.o.click(locator.PurchaseTime, nil)}})
}

// DateVisible reports whether the start date input is showing
func (p Purchase) DateVisible() (bool, error) {
	return p.o.Visible(locator.PurchaseDate, nil)
}

// SelectArrivalZone picks the arrival zone by its visible name and waits for the new offer
func (p Purchase) SelectArrivalZone(ctx context.Context, zone string) error {
	return p.o.Do(ctx, Flow{
		Name:       "purchase.selectArrivalZone",
		Intercepts: []Intercept{zoneSearch},
		Actions:    []Action{p.o.selectOption(locator.PurchaseArrivalZone, nil, zone)},
	})
}

// Zone returns the selected value of the departure or arrival select
func (p Purchase) Zone(which string) (string, error) {
	c := locator.PurchaseDepartureZone
	if which == ArrivalZone {
		c = locator.PurchaseArrivalZone
	}
	el, err := p.o.Locate(c, nil)
	if err != nil {
		return "", err
	}
	return el.InputValue()
}

// ZoneName returns the visible name of a zone option, e.g. "A" for ATB:TariffZone:1
func (p Purchase) ZoneName(which, zone string) (string, error) {
	return p.o.Text(locator.PurchaseZoneTariff, locator.Params{"select": which, "zone": zone})
}

// Price returns the current offer
func (p Purchase) Price() (models.Price, error) {
	return p.readPrice(locator.PurchasePrice)
}

// VAT returns the VAT part of the current offer
func (p Purchase) VAT() (models.Price, error) {
	return p.readPrice(locator.PurchaseVAT)
}

func (p Purchase) readPrice(c locator.Concept) (models.Price, error) {
	text, err := p.o.Text(c, nil)
	if err != nil {
		return 0, err
	}
	return models.ExtractPrice(text)
}

// Warning returns the warning message, e.g. for overlapping tickets
func (p Purchase) Warning() (string, error) {
	return p.o.Text(locator.PurchaseWarning, nil)
}

// ValidityError returns the start time validation message
func (p Purchase) ValidityError() (string, error) {
	return p.o.Text(locator.PurchaseValidityError, nil)
}

// InfoText returns the info message, empty when none is shown
func (p Purchase) InfoText() (string, error) {
	present, err := p.o.Present(locator.PurchaseInfoText, nil)
	if err != nil || !present {
		return "", err
	}
	return p.o.Text(locator.PurchaseInfoText, nil)
}

// SummaryEnabled reports whether "Gå til oppsummering" can be used
func (p Purchase) SummaryEnabled() (bool, error) {
	class, err := p.o.Attribute(locator.PurchaseGoToSummary, nil, "class")
	if err != nil {
		return false, err
	}
	return !strings.Contains(class, disabledButtonClass), nil
}

// GoToSummary opens the summary and waits for the stored payment cards
func (p Purchase) GoToSummary(ctx context.Context) error {
	return p.o.Do(ctx, Flow{
		Name:       "purchase.goToSummary",
		Intercepts: []Intercept{recurringPayments},
		Actions: []Action{
			p.o.click(locator.PurchaseGoToSummary, nil),
			p.o.expect(locator.Header, locator.Params{"level": "h2", "text": HeaderSummary}),
		},
	})
}
