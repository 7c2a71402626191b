package flow

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/atb-as/webshop-e2e/internal/harness"
	"github.com/atb-as/webshop-e2e/internal/locator"
	"github.com/atb-as/webshop-e2e/internal/models"
)

// Travel card operations
const (
	TravelCardAdd    = "add"
	TravelCardRemove = "remove"
)

const noTravelCardText = "Du har ingen t:kort registrert"

// StoredCard is a saved payment card as listed on the profile or summary page
type StoredCard struct {
	Label  string
	Expiry string
	Icon   string
}

// Profile covers "Min profil"
type Profile struct {
	o *Orchestrator
}

// Profile returns the profile page flows
func (o *Orchestrator) Profile() Profile {
	return Profile{o: o}
}

// SetProfileName edits first and last name and waits for the profile update
func (p Profile) SetProfileName(ctx context.Context, first, last string) error {
	return p.o.Do(ctx, Flow{
		Name:       "profile.setProfileName",
		Intercepts: []Intercept{profileUpdate},
		Actions: []Action{
			p.o.click(locator.ProfileEditName, nil),
			p.o.fill(locator.ProfileFirstNameInput, nil, first),
			p.o.fill(locator.ProfileLastNameInput, nil, last),
			p.o.click(locator.ProfileSaveButton, nil),
		},
	})
}

// EditPhoneNumber opens the phone number editor without saving
func (p Profile) EditPhoneNumber(ctx context.Context) error {
	return p.o.Do(ctx, Flow{
		Name: "profile.editPhoneNumber",
		Actions: []Action{
			p.o.click(locator.ProfileEditPhone, nil),
			p.o.expect(locator.ProfilePhoneInput, nil),
		},
	})
}

// SetPhoneNumber saves phone and waits for the profile, recurring payment and
// consent reloads that follow. A save still showing "Laster" gets the settle delay.
func (p Profile) SetPhoneNumber(ctx context.Context, phone string) error {
	return p.o.Do(ctx, Flow{
		Name:       "profile.setPhoneNumber",
		Intercepts: []Intercept{profileUpdate, recurringPayments, consentFetch},
		Actions: []Action{
			p.o.click(locator.ProfileEditPhone, nil),
			p.o.fill(locator.ProfilePhoneInput, nil, phone),
			p.o.click(locator.ProfileSaveButton, nil),
		},
		SettleOn: locator.ProfileSaveLoading,
	})
}

// SetEmailConsent toggles the e-mail consent to on
func (p Profile) SetEmailConsent(ctx context.Context, on bool) error {
	return p.setConsent(ctx, "profile.setEmailConsent", locator.ProfileEmailConsent, on)
}

// SetNotificationConsent toggles the notification consent to on
func (p Profile) SetNotificationConsent(ctx context.Context, on bool) error {
	return p.setConsent(ctx, "profile.setNotificationConsent", locator.ProfileNotificationConsent, on)
}

// setConsent only clicks when the state changes, so every call that acts
// causes exactly one consent request
func (p Profile) setConsent(ctx context.Context, name string, c locator.Concept, on bool) error {
	checked, err := p.consent(c)
	if err != nil {
		return err
	}
	if checked == on {
		p.o.opts.Logger.Debug().Str("flow", name).Bool("on", on).Msg("consent already set")
		return nil
	}

	toggle := p.o.uncheck(c, nil)
	if on {
		toggle = p.o.check(c, nil)
	}
	err = p.o.Do(ctx, Flow{
		Name:       name,
		Intercepts: []Intercept{consentUpdate},
		Actions:    []Action{toggle},
	})
	if err != nil {
		return err
	}
	if n := p.o.network.Count(AliasConsent); n != 1 {
		return harness.Mismatch(name+" consent requests", "1", strconv.Itoa(n))
	}
	return nil
}

func (p Profile) consent(c locator.Concept) (bool, error) {
	el, err := p.o.Locate(c, nil)
	if err != nil {
		return false, err
	}
	return el.IsChecked()
}

// EmailConsent reports whether the e-mail consent is checked
func (p Profile) EmailConsent() (bool, error) {
	return p.consent(locator.ProfileEmailConsent)
}

// NotificationConsent reports whether the notification consent is checked
func (p Profile) NotificationConsent() (bool, error) {
	return p.consent(locator.ProfileNotificationConsent)
}

// AddTravelCard registers number and waits for the travel card creation
func (p Profile) AddTravelCard(ctx context.Context, number string) error {
	return p.o.Do(ctx, Flow{
		Name:       "profile.addTravelCard",
		Intercepts: []Intercept{travelCardAdd},
		Actions: []Action{
			p.o.scrollTo(locator.ProfileAddTravelCard, nil),
			p.o.click(locator.ProfileAddTravelCard, nil),
			p.o.fill(locator.ProfileTravelCardInput, nil, number),
			p.o.click(locator.ProfileSaveButton, nil),
		},
	})
}

// RemoveTravelCard removes the registered card and waits for the deletion
func (p Profile) RemoveTravelCard(ctx context.Context) error {
	return p.o.Do(ctx, Flow{
		Name:       "profile.removeTravelCard",
		Intercepts: []Intercept{travelCardRemove},
		Actions: []Action{
			p.o.click(locator.ProfileRemoveTravelCard, nil),
			p.o.click(locator.ProfileConfirmRemoveCard, nil),
		},
	})
}

// TravelCardOperation opens the profile and adds or removes the travel card,
// doing nothing when the profile is already in the requested state
func (p Profile) TravelCardOperation(ctx context.Context, op, number string) error {
	if op != TravelCardAdd && op != TravelCardRemove {
		return fmt.Errorf("unknown travel card operation %q", op)
	}
	if err := p.o.Menu().MyProfile(ctx); err != nil {
		return err
	}

	section, err := p.o.Text(locator.ProfileTravelCardSection, nil)
	if err != nil {
		return err
	}
	hasCard := !strings.Contains(section, noTravelCardText)

	switch {
	case op == TravelCardAdd && !hasCard:
		return p.AddTravelCard(ctx, number)
	case op == TravelCardRemove && hasCard:
		return p.RemoveTravelCard(ctx)
	default:
		return nil
	}
}

// Read returns the name and phone number shown on the profile
func (p Profile) Read() (models.Profile, error) {
	var (
		profile models.Profile
		err     error
	)
	if profile.FirstName, err = p.o.Text(locator.ProfileFirstName, nil); err != nil {
		return profile, err
	}
	if profile.LastName, err = p.o.Text(locator.ProfileLastName, nil); err != nil {
		return profile, err
	}
	if profile.Phone, err = p.o.Text(locator.ProfilePhoneNumber, nil); err != nil {
		return profile, err
	}
	return profile, nil
}

// TravelCard returns the travel card number as rendered
func (p Profile) TravelCard() (string, error) {
	return p.o.Text(locator.ProfileTravelCard, nil)
}

// StoredPayment reads the saved card of cardType, e.g. "Visa"
func (p Profile) StoredPayment(cardType string) (StoredCard, error) {
	return readStoredCard(p.o, cardType,
		locator.ProfileStoredPayment, locator.ProfileStoredPaymentExpiry, locator.ProfileStoredPaymentIcon)
}

func readStoredCard(o *Orchestrator, cardType string, label, expiry, icon locator.Concept) (StoredCard, error) {
	params := locator.P("type", cardType)

	var (
		card StoredCard
		err  error
	)
	if card.Label, err = o.Text(label, params); err != nil {
		return card, err
	}
	if card.Expiry, err = o.Text(expiry, params); err != nil {
		return card, err
	}
	if card.Icon, err = o.Attribute(icon, params, "src"); err != nil {
		return card, err
	}
	return card, nil
}
