package flow

import (
	"context"
	"reflect"
	"testing"

	"github.com/atb-as/webshop-e2e/internal/harness"
	"github.com/atb-as/webshop-e2e/internal/locator"
)

func TestAuth_LoggedIn(t *testing.T) {
	tests := []struct {
		name     string
		rendered []locator.Concept
		want     bool
		wantErr  bool
	}{
		{"logged in menu", []locator.Concept{locator.AuthLoggedInIndicator}, true, false},
		{"sms login", []locator.Concept{locator.AuthPhoneInput}, false, false},
		{"e-mail login", []locator.Concept{locator.AuthEmailInput}, false, false},
		{"menu wins over stray phone input", []locator.Concept{locator.AuthPhoneInput, locator.AuthLoggedInIndicator}, true, false},
		{"nothing rendered", nil, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := newFakePage(t)
			for _, c := range tt.rendered {
				page.put(c, nil, &fakeElement{})
			}

			got, err := page.orchestrator(Options{}).Auth().LoggedIn()
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoggedIn() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && harness.KindOf(err) != harness.KindLocatorNotFound {
				t.Errorf("LoggedIn() error = %v, want locator not found", err)
			}
			if got != tt.want {
				t.Errorf("LoggedIn() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAuth_VisitMainAsAuthorized(t *testing.T) {
	t.Run("session already held", func(t *testing.T) {
		page := newFakePage(t)
		page.put(locator.AuthLoggedInIndicator, nil, &fakeElement{})

		err := page.orchestrator(Options{}).Auth().VisitMainAsAuthorized(context.Background(), "ola@example.no", "hemmelig")
		if err != nil {
			t.Fatalf("VisitMainAsAuthorized() error = %v", err)
		}
		if got := page.actionLog(); len(got) != 0 {
			t.Errorf("actions = %v, want none", got)
		}
	})

	t.Run("logs in with e-mail", func(t *testing.T) {
		page := newFakePage(t)
		page.put(locator.AuthPhoneInput, nil, &fakeElement{})
		page.put(locator.AuthUseEmail, nil, &fakeElement{onClick: func() {
			page.put(locator.AuthEmailInput, nil, &fakeElement{})
			page.put(locator.AuthPasswordInput, nil, &fakeElement{})
			page.put(locator.AuthSubmit, nil, &fakeElement{onClick: func() {
				page.put(locator.AuthLoggedInIndicator, nil, &fakeElement{})
				page.put(locator.Header, locator.Params{"level": "h2", "text": HeaderMyTickets}, &fakeElement{})
			}})
		}})

		err := page.orchestrator(Options{}).Auth().VisitMainAsAuthorized(context.Background(), "ola@example.no", "hemmelig")
		if err != nil {
			t.Fatalf("VisitMainAsAuthorized() error = %v", err)
		}
		want := []string{
			"click auth.useEmail",
			"fill auth.emailInput",
			"fill auth.passwordInput",
			"click auth.submit",
		}
		if got := page.actionLog(); !reflect.DeepEqual(got, want) {
			t.Errorf("actions = %v, want %v", got, want)
		}
	})
}
