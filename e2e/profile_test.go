//go:build e2e

package e2e

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atb-as/webshop-e2e/internal/flow"
	"github.com/atb-as/webshop-e2e/internal/models"
)

// TestMyProfile tests editing the profile
// Feature: My profile
//
//	As a traveller
//	I want to keep my personal data, consents and travel card up to date
//	So that the webshop contacts me and validates my tickets correctly
func TestMyProfile(t *testing.T) {
	t.Run("name should be saved", func(t *testing.T) {
		// Scenario: Change name
		//   Given I am on "Min profil"
		//   When I save a new first and last name
		//   Then the profile shows the new name
		ctx, o := loggedIn(t)
		want := models.Profile{FirstName: "Åse", LastName: "Tester " + models.RandomDigits(4)}

		require.NoError(t, o.Menu().MyProfile(ctx))
		require.NoError(t, o.Profile().SetProfileName(ctx, want.FirstName, want.LastName))

		got, err := o.Profile().Read()
		require.NoError(t, err)
		assert.Equal(t, want.FirstName, got.FirstName)
		assert.Equal(t, want.LastName, got.LastName)
	})

	t.Run("phone number should be saved", func(t *testing.T) {
		// Scenario: Change phone number
		//   Given I am on "Min profil"
		//   When I save a new phone number
		//   Then the profile shows the number
		ctx, o := loggedIn(t)
		formatted := models.RandomPhoneNumber()

		require.NoError(t, o.Menu().MyProfile(ctx))
		require.NoError(t, o.Profile().SetPhoneNumber(ctx, models.UnformatPhoneNumber(formatted)))

		got, err := o.Profile().Read()
		require.NoError(t, err)
		assert.Equal(t, models.UnformatPhoneNumber(formatted), models.UnformatPhoneNumber(got.Phone))
	})

	t.Run("consents should toggle", func(t *testing.T) {
		// Scenario: Change consents
		//   Given I am on "Min profil"
		//   When I flip e-mail and notification consent and flip them back
		//   Then every change is stored with exactly one consent request
		ctx, o := loggedIn(t)
		require.NoError(t, o.Menu().MyProfile(ctx))

		email, err := o.Profile().EmailConsent()
		require.NoError(t, err)
		notification, err := o.Profile().NotificationConsent()
		require.NoError(t, err)

		for _, toggle := range []bool{!email, email} {
			require.NoError(t, o.Profile().SetEmailConsent(ctx, toggle))
			assert.Equal(t, 1, session.Registry().Count(flow.AliasConsent), "consent requests")
			got, err := o.Profile().EmailConsent()
			require.NoError(t, err)
			assert.Equal(t, toggle, got, "e-mail consent")
		}
		for _, toggle := range []bool{!notification, notification} {
			require.NoError(t, o.Profile().SetNotificationConsent(ctx, toggle))
			assert.Equal(t, 1, session.Registry().Count(flow.AliasConsent), "consent requests")
			got, err := o.Profile().NotificationConsent()
			require.NoError(t, err)
			assert.Equal(t, toggle, got, "notification consent")
		}
	})

	t.Run("travel card should be removed and added", func(t *testing.T) {
		// Scenario: Replace travel card
		//   Given my travel card is registered
		//   When I remove it and add it again
		//   Then the profile shows the card
		ctx, o := loggedIn(t)
		no := cfg.Suite.TravelCardNo

		require.NoError(t, o.Profile().TravelCardOperation(ctx, flow.TravelCardAdd, no))
		require.NoError(t, o.Profile().TravelCardOperation(ctx, flow.TravelCardRemove, no))
		require.NoError(t, o.Profile().TravelCardOperation(ctx, flow.TravelCardAdd, no))

		card, err := o.Profile().TravelCard()
		require.NoError(t, err)
		assert.Contains(t, card, no[8:15])
	})

	t.Run("stored payment card should be listed", func(t *testing.T) {
		// Scenario: Stored payment card
		//   Given the test account has a saved Visa card
		//   When I am on "Min profil"
		//   Then the card is listed with its expiry and icon
		ctx, o := loggedIn(t)
		require.NoError(t, o.Menu().MyProfile(ctx))

		card, err := o.Profile().StoredPayment(storedCard)
		require.NoError(t, err)
		assert.Contains(t, card.Label, "**** 0004")
		assert.Contains(t, card.Expiry, "Utløpsdato")
		assert.Contains(t, card.Icon, "paymentcard-visa.svg")
	})
}
