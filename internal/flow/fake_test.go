package flow

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/atb-as/webshop-e2e/internal/browser"
	"github.com/atb-as/webshop-e2e/internal/harness"
	"github.com/atb-as/webshop-e2e/internal/intercept"
	"github.com/atb-as/webshop-e2e/internal/locator"
	"github.com/atb-as/webshop-e2e/internal/models"
)

const shop = "https://www.atb.no/webshop"

// fakePage stands in for the browser session. Elements are keyed by the
// resolved selector, so flows find them exactly as they would on the page.
type fakePage struct {
	t        *testing.T
	locators *locator.Registry
	network  *intercept.Registry

	mu       sync.Mutex
	elements map[string]*fakeElement
	actions  []string
	visits   []string
	reloads  int
	onReload func(reload int)
}

func newFakePage(t *testing.T) *fakePage {
	return &fakePage{
		t:        t,
		locators: locator.Default(),
		network:  intercept.NewRegistry(),
		elements: make(map[string]*fakeElement),
	}
}

// orchestrator returns an orchestrator on the page that never sleeps
func (p *fakePage) orchestrator(opts Options) *Orchestrator {
	if opts.Sleep == nil {
		opts.Sleep = func(time.Duration) {}
	}
	if opts.NetworkTimeout == 0 {
		opts.NetworkTimeout = time.Second
	}
	if opts.PollInterval == 0 {
		opts.PollInterval = time.Millisecond
	}
	return New(p, p.locators, p.network, opts)
}

func (p *fakePage) selector(c locator.Concept, params locator.Params) string {
	p.t.Helper()
	q, err := p.locators.Resolve(c, params)
	if err != nil {
		p.t.Fatalf("Resolve(%s) error = %v", c, err)
	}
	return q.Selector()
}

// put renders el for concept c
func (p *fakePage) put(c locator.Concept, params locator.Params, el *fakeElement) *fakeElement {
	p.t.Helper()
	el.page = p
	el.concept = c
	if el.attrs == nil {
		el.attrs = make(map[string]string)
	}
	sel := p.selector(c, params)
	p.mu.Lock()
	p.elements[sel] = el
	p.mu.Unlock()
	return el
}

func (p *fakePage) remove(c locator.Concept, params locator.Params) {
	sel := p.selector(c, params)
	p.mu.Lock()
	delete(p.elements, sel)
	p.mu.Unlock()
}

// respond completes a request the way the browser would after an action
func (p *fakePage) respond(method, path string, status int, body string) {
	req := p.network.Begin(method, shop+path)
	p.network.Complete(req, intercept.Exchange{Method: method, URL: shop + path, Status: status, Body: []byte(body)})
}

func (p *fakePage) log(action string, c locator.Concept) {
	p.mu.Lock()
	p.actions = append(p.actions, action+" "+string(c))
	p.mu.Unlock()
}

func (p *fakePage) actionLog() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.actions...)
}

func (p *fakePage) Visit(path string) error {
	p.mu.Lock()
	p.visits = append(p.visits, path)
	p.mu.Unlock()
	return nil
}

func (p *fakePage) Reload() error {
	p.mu.Lock()
	p.reloads++
	n, hook := p.reloads, p.onReload
	p.mu.Unlock()
	if hook != nil {
		hook(n)
	}
	return nil
}

func (p *fakePage) Locate(q locator.Query) (browser.Element, error) {
	p.mu.Lock()
	el, ok := p.elements[q.Selector()]
	p.mu.Unlock()
	if !ok {
		return nil, harness.NotFound(string(q.Concept), nil)
	}
	return el, nil
}

func (p *fakePage) Find(q locator.Query) browser.Element {
	el, err := p.Locate(q)
	if err != nil {
		return &fakeElement{page: p, concept: q.Concept, attrs: map[string]string{}}
	}
	return el
}

func (p *fakePage) Present(q locator.Query) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.elements[q.Selector()]
	return ok, nil
}

func (p *fakePage) Await(qs ...locator.Query) (int, error) {
	for i, q := range qs {
		if ok, _ := p.Present(q); ok {
			return i, nil
		}
	}
	return -1, harness.NotFound("any", nil)
}

type fakeElement struct {
	page    *fakePage
	concept locator.Concept

	text    string
	value   string
	attrs   map[string]string
	checked bool
	hidden  bool

	onClick  func()
	onChange func(checked bool)
}

func (e *fakeElement) Click() error {
	e.page.log("click", e.concept)
	if e.onClick != nil {
		e.onClick()
	}
	return nil
}

func (e *fakeElement) Fill(text string) error {
	e.page.log("fill", e.concept)
	e.value = text
	return nil
}

func (e *fakeElement) Type(text string) error {
	e.page.log("type", e.concept)
	e.value += text
	return nil
}

func (e *fakeElement) Check() error {
	e.page.log("check", e.concept)
	return e.set(true)
}

func (e *fakeElement) Uncheck() error {
	e.page.log("uncheck", e.concept)
	return e.set(false)
}

func (e *fakeElement) set(checked bool) error {
	if e.checked == checked {
		return nil
	}
	e.checked = checked
	if e.onChange != nil {
		e.onChange(checked)
	}
	return nil
}

func (e *fakeElement) Select(value string) error {
	e.page.log("select", e.concept)
	e.value = value
	return nil
}

func (e *fakeElement) ScrollIntoView() error {
	e.page.log("scroll", e.concept)
	return nil
}

func (e *fakeElement) Text() (string, error)                 { return e.text, nil }
func (e *fakeElement) Attribute(name string) (string, error) { return e.attrs[name], nil }
func (e *fakeElement) InputValue() (string, error)           { return e.value, nil }
func (e *fakeElement) IsChecked() (bool, error)              { return e.checked, nil }
func (e *fakeElement) IsVisible() (bool, error)              { return !e.hidden, nil }
func (e *fakeElement) IsEnabled() (bool, error)              { return e.attrs["disabled"] == "", nil }

// fakeRecorder keeps every recorded run
type fakeRecorder struct {
	mu   sync.Mutex
	runs []models.FlowRun
	err  error
}

func (r *fakeRecorder) Record(_ context.Context, run *models.FlowRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs = append(r.runs, *run)
	return r.err
}

func (r *fakeRecorder) last() models.FlowRun {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.runs) == 0 {
		return models.FlowRun{}
	}
	return r.runs[len(r.runs)-1]
}
