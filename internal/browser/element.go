package browser

import (
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"

	"github.com/atb-as/webshop-e2e/internal/harness"
	"github.com/atb-as/webshop-e2e/internal/locator"
)

// Element is what a flow can do with a located concept. Everything but Text
// applies to the first match.
type Element interface {
	Click() error
	Fill(text string) error
	Type(text string) error
	Check() error
	Uncheck() error
	Select(value string) error
	ScrollIntoView() error
	Text() (string, error)
	Attribute(name string) (string, error)
	InputValue() (string, error)
	IsChecked() (bool, error)
	IsVisible() (bool, error)
	IsEnabled() (bool, error)
}

type element struct {
	concept locator.Concept
	all     playwright.Locator
}

// Locate resolves q on the current render and verifies that at least one
// element is attached within the implicit wait
func (s *Session) Locate(q locator.Query) (Element, error) {
	el := s.Find(q).(*element)
	err := el.all.First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateAttached,
		Timeout: playwright.Float(s.cfg.ImplicitWaitMillis()),
	})
	if err != nil {
		return nil, harness.NotFound(string(q.Concept), err)
	}
	return el, nil
}

// Find returns a lazy element for q without waiting for it
func (s *Session) Find(q locator.Query) Element {
	return &element{concept: q.Concept, all: s.page.Locator(q.Selector())}
}

// Present reports whether q matches anything right now
func (s *Session) Present(q locator.Query) (bool, error) {
	n, err := s.page.Locator(q.Selector()).Count()
	if err != nil {
		return false, fmt.Errorf("failed to count %s: %w", q, err)
	}
	return n > 0, nil
}

// Await waits until one of qs is attached and returns its index. When several
// match, the first in qs wins.
func (s *Session) Await(qs ...locator.Query) (int, error) {
	if len(qs) == 0 {
		return -1, fmt.Errorf("nothing to wait for")
	}
	names := make([]string, len(qs))
	either := s.page.Locator(qs[0].Selector())
	for i, q := range qs {
		names[i] = q.String()
		if i > 0 {
			either = either.Or(s.page.Locator(q.Selector()))
		}
	}

	err := either.First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateAttached,
		Timeout: playwright.Float(s.cfg.ImplicitWaitMillis()),
	})
	if err != nil {
		return -1, harness.NotFound(strings.Join(names, " or "), err)
	}
	for i, q := range qs {
		present, err := s.Present(q)
		if err != nil {
			return -1, err
		}
		if present {
			return i, nil
		}
	}
	return -1, harness.NotFound(strings.Join(names, " or "), nil)
}

func (e *element) first() playwright.Locator {
	return e.all.First()
}

func (e *element) wrap(action string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("failed to %s %s: %w", action, e.concept, err)
}

func (e *element) Click() error {
	return e.wrap("click", e.first().Click())
}

// Fill clears the field and types text key by key
func (e *element) Fill(text string) error {
	if err := e.first().Clear(); err != nil {
		return e.wrap("clear", err)
	}
	return e.Type(text)
}

func (e *element) Type(text string) error {
	return e.wrap("type into", e.first().PressSequentially(text))
}

func (e *element) Check() error {
	return e.wrap("check", e.first().Check())
}

func (e *element) Uncheck() error {
	return e.wrap("uncheck", e.first().Uncheck())
}

func (e *element) Select(value string) error {
	_, err := e.first().SelectOption(playwright.SelectOptionValues{Values: &[]string{value}})
	return e.wrap("select "+value+" in", err)
}

func (e *element) ScrollIntoView() error {
	return e.wrap("scroll to", e.first().ScrollIntoViewIfNeeded())
}

// Text concatenates the text of every match, the way the rendered list reads
func (e *element) Text() (string, error) {
	texts, err := e.all.AllTextContents()
	if err != nil {
		return "", e.wrap("read text of", err)
	}
	return strings.TrimSpace(strings.Join(texts, "")), nil
}

func (e *element) Attribute(name string) (string, error) {
	v, err := e.first().GetAttribute(name)
	return v, e.wrap("read "+name+" of", err)
}

func (e *element) InputValue() (string, error) {
	v, err := e.first().InputValue()
	return v, e.wrap("read value of", err)
}

func (e *element) IsChecked() (bool, error) {
	v, err := e.first().IsChecked()
	return v, e.wrap("read checked state of", err)
}

func (e *element) IsVisible() (bool, error) {
	v, err := e.first().IsVisible()
	return v, e.wrap("read visibility of", err)
}

func (e *element) IsEnabled() (bool, error) {
	v, err := e.first().IsEnabled()
	return v, e.wrap("read enabled state of", err)
}
