package flow

import (
	"context"

	"github.com/atb-as/webshop-e2e/internal/locator"
)

// Page headers
const (
	HeaderMyTickets    = "Mine billetter"
	HeaderMyProfile    = "Min profil"
	HeaderHistory      = "Kjøpshistorikk"
	HeaderPeriodTicket = "Kjøp ny periodebillett"
	HeaderCarnetTicket = "Kjøp nytt klippekort"
	HeaderSummary      = "Oppsummering"
)

// Menu navigates between the pages of the webshop
type Menu struct {
	o *Orchestrator
}

// Menu returns the navigation flows
func (o *Orchestrator) Menu() Menu {
	return Menu{o: o}
}

// VerifyHeader checks that a heading of level containing text is on the page
func (m Menu) VerifyHeader(level, text string) error {
	_, err := m.o.Locate(locator.Header, locator.Params{"level": level, "text": text})
	return err
}

func (m Menu) navigate(ctx context.Context, name string, link locator.Concept, header string, intercepts ...Intercept) error {
	return m.o.Do(ctx, Flow{
		Name:       name,
		Intercepts: intercepts,
		Actions: []Action{
			m.o.click(link, nil),
			m.o.expect(locator.Header, locator.Params{"level": "h2", "text": header}),
		},
	})
}

// StartPage opens "Mine billetter"
func (m Menu) StartPage(ctx context.Context) error {
	return m.navigate(ctx, "menu.startPage", locator.MenuStartPage, HeaderMyTickets)
}

// MyProfile opens "Min profil"
func (m Menu) MyProfile(ctx context.Context) error {
	return m.navigate(ctx, "menu.myProfile", locator.MenuMyProfile, HeaderMyProfile)
}

// History opens the purchase history
func (m Menu) History(ctx context.Context) error {
	return m.navigate(ctx, "menu.history", locator.MenuHistory, HeaderHistory)
}

// BuyPeriodTicket opens the period ticket page and waits for its zone search
func (m Menu) BuyPeriodTicket(ctx context.Context) error {
	return m.navigate(ctx, "menu.buyPeriodTicket", locator.MenuBuyPeriodTicket, HeaderPeriodTicket, zoneSearch)
}

// BuyCarnetTicket opens the carnet page and waits for its zone search
func (m Menu) BuyCarnetTicket(ctx context.Context) error {
	return m.navigate(ctx, "menu.buyCarnetTicket", locator.MenuBuyCarnetTicket, HeaderCarnetTicket, zoneSearch)
}
