package flow

import (
	"context"
	"strings"

	"github.com/atb-as/webshop-e2e/internal/browser"
	"github.com/atb-as/webshop-e2e/internal/harness"
	"github.com/atb-as/webshop-e2e/internal/locator"
)

// Locate resolves c and waits for it within the implicit wait
func (o *Orchestrator) Locate(c locator.Concept, params locator.Params) (browser.Element, error) {
	q, err := o.locators.Resolve(c, params)
	if err != nil {
		return nil, err
	}
	return o.driver.Locate(q)
}

// Present reports whether c is on the page right now, without waiting
func (o *Orchestrator) Present(c locator.Concept, params locator.Params) (bool, error) {
	q, err := o.locators.Resolve(c, params)
	if err != nil {
		return false, err
	}
	return o.driver.Present(q)
}

// Await waits until one of concepts is on the page and returns it
func (o *Orchestrator) Await(concepts ...locator.Concept) (locator.Concept, error) {
	qs := make([]locator.Query, len(concepts))
	for i, c := range concepts {
		q, err := o.locators.Resolve(c, nil)
		if err != nil {
			return "", err
		}
		qs[i] = q
	}
	i, err := o.driver.Await(qs...)
	if err != nil {
		return "", err
	}
	return concepts[i], nil
}

// Text reads the text of every element matching c
func (o *Orchestrator) Text(c locator.Concept, params locator.Params) (string, error) {
	el, err := o.Locate(c, params)
	if err != nil {
		return "", err
	}
	return el.Text()
}

// Attribute reads attribute name of the first element matching c
func (o *Orchestrator) Attribute(c locator.Concept, params locator.Params, name string) (string, error) {
	el, err := o.Locate(c, params)
	if err != nil {
		return "", err
	}
	return el.Attribute(name)
}

// Visible reports whether the first element matching c is visible
func (o *Orchestrator) Visible(c locator.Concept, params locator.Params) (bool, error) {
	el, err := o.Locate(c, params)
	if err != nil {
		return false, err
	}
	return el.IsVisible()
}

// ExpectText fails with an assertion mismatch unless c's text contains want
func (o *Orchestrator) ExpectText(c locator.Concept, params locator.Params, want string) error {
	got, err := o.Text(c, params)
	if err != nil {
		return err
	}
	if !strings.Contains(got, want) {
		return harness.Mismatch(string(c), want, got)
	}
	return nil
}

// visit navigates to path as an action
func (o *Orchestrator) visit(path string) Action {
	return func(context.Context) error {
		return o.driver.Visit(path)
	}
}

func (o *Orchestrator) act(c locator.Concept, params locator.Params, do func(browser.Element) error) Action {
	return func(context.Context) error {
		el, err := o.Locate(c, params)
		if err != nil {
			return err
		}
		return do(el)
	}
}

func (o *Orchestrator) click(c locator.Concept, params locator.Params) Action {
	return o.act(c, params, browser.Element.Click)
}

func (o *Orchestrator) fill(c locator.Concept, params locator.Params, text string) Action {
	return o.act(c, params, func(el browser.Element) error { return el.Fill(text) })
}

func (o *Orchestrator) check(c locator.Concept, params locator.Params) Action {
	return o.act(c, params, browser.Element.Check)
}

func (o *Orchestrator) uncheck(c locator.Concept, params locator.Params) Action {
	return o.act(c, params, browser.Element.Uncheck)
}

func (o *Orchestrator) selectOption(c locator.Concept, params locator.Params, value string) Action {
	return o.act(c, params, func(el browser.Element) error { return el.Select(value) })
}

func (o *Orchestrator) scrollTo(c locator.Concept, params locator.Params) Action {
	return o.act(c, params, browser.Element.ScrollIntoView)
}

// expect locates c as an action, used to verify where an action landed
func (o *Orchestrator) expect(c locator.Concept, params locator.Params) Action {
	return func(context.Context) error {
		_, err := o.Locate(c, params)
		return err
	}
}
