package flow

import (
	"context"

	"github.com/atb-as/webshop-e2e/internal/locator"
)

// Auth covers the login page and logging out
type Auth struct {
	o *Orchestrator
}

// Auth returns the authentication flows
func (o *Orchestrator) Auth() Auth {
	return Auth{o: o}
}

// VisitMainAsNotAuthorized opens the webshop and expects the default SMS login
func (a Auth) VisitMainAsNotAuthorized(ctx context.Context) error {
	return a.o.Do(ctx, Flow{
		Name: "auth.visitMainAsNotAuthorized",
		Actions: []Action{
			a.o.visit(""),
			a.o.expect(locator.AuthPhoneInput, nil),
		},
	})
}

// UseEmailAsLogIn switches the login page to e-mail and password
func (a Auth) UseEmailAsLogIn(ctx context.Context) error {
	return a.o.Do(ctx, Flow{
		Name: "auth.useEmailAsLogIn",
		Actions: []Action{
			a.o.click(locator.AuthUseEmail, nil),
			a.o.expect(locator.AuthEmailInput, nil),
		},
	})
}

// CreateNewEmailProfile opens the form for a new e-mail profile
func (a Auth) CreateNewEmailProfile(ctx context.Context) error {
	return a.o.Do(ctx, Flow{
		Name: "auth.createNewEmailProfile",
		Actions: []Action{
			a.o.click(locator.AuthCreateProfile, nil),
			a.o.expect(locator.AuthPasswordInput, nil),
		},
	})
}

// LoggedIn waits for the current page to render either the logged in menu or
// one of the login forms and reports which one it was
func (a Auth) LoggedIn() (bool, error) {
	c, err := a.o.Await(locator.AuthLoggedInIndicator, locator.AuthPhoneInput, locator.AuthEmailInput)
	if err != nil {
		return false, err
	}
	return c == locator.AuthLoggedInIndicator, nil
}

// VisitMainAsAuthorized opens the webshop and logs in with e-mail unless the
// browser context already holds a session
func (a Auth) VisitMainAsAuthorized(ctx context.Context, email, password string) error {
	if err := a.o.Do(ctx, Flow{
		Name:    "auth.visitMain",
		Actions: []Action{a.o.visit("")},
	}); err != nil {
		return err
	}

	loggedIn, err := a.LoggedIn()
	if err != nil || loggedIn {
		return err
	}

	if err := a.UseEmailAsLogIn(ctx); err != nil {
		return err
	}
	return a.o.Do(ctx, Flow{
		Name: "auth.logInWithEmail",
		Actions: []Action{
			a.o.fill(locator.AuthEmailInput, nil, email),
			a.o.fill(locator.AuthPasswordInput, nil, password),
			a.o.click(locator.AuthSubmit, nil),
			a.o.expect(locator.AuthLoggedInIndicator, nil),
			a.o.expect(locator.Header, locator.Params{"level": "h2", "text": HeaderMyTickets}),
		},
	})
}

// LogOut logs out and expects the login page
func (a Auth) LogOut(ctx context.Context) error {
	return a.o.Do(ctx, Flow{
		Name: "auth.logOut",
		Actions: []Action{
			a.o.click(locator.MenuLogOut, nil),
			a.o.expect(locator.AuthUseEmail, nil),
		},
	})
}
