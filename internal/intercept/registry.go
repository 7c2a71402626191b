// Package intercept binds requests to aliases as the browser starts them and
// lets flows block on their responses by alias, the way a scenario waits for
// "@profile" after pressing save.
package intercept

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/atb-as/webshop-e2e/internal/harness"
)

var (
	ErrUnknownAlias   = errors.New("alias is not registered")
	ErrWaitInProgress = errors.New("alias already has an outstanding wait")
	ErrInvalidPattern = errors.New("invalid url pattern")
)

// AnyMethod matches requests regardless of HTTP method
const AnyMethod = "*"

// Exchange is one completed request/response cycle. Seq numbers requests in
// the order the browser started them.
type Exchange struct {
	Seq     uint64
	Method  string
	URL     string
	Status  int
	Body    []byte
	Failure string
}

// DecodeJSON unmarshals the response body into v
func (e Exchange) DecodeJSON(v interface{}) error {
	if err := json.Unmarshal(e.Body, v); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", e.Method, e.URL, err)
	}
	return nil
}

// Matcher selects exchanges by method and URL glob
type Matcher struct {
	Method  string
	Pattern string
}

// Match reports whether method and rawURL satisfy the matcher. The pattern is
// tried against the full URL and against the URL without its query string.
func (m Matcher) Match(method, rawURL string) bool {
	if m.Method != AnyMethod && !strings.EqualFold(m.Method, method) {
		return false
	}
	if ok, _ := doublestar.Match(m.Pattern, rawURL); ok {
		return true
	}
	if u, err := url.Parse(rawURL); err == nil && (u.RawQuery != "" || u.Fragment != "") {
		u.RawQuery = ""
		u.Fragment = ""
		ok, _ := doublestar.Match(m.Pattern, u.String())
		return ok
	}
	return false
}

type slot struct {
	ex   Exchange
	done bool
}

type alias struct {
	matcher  Matcher
	slots    []*slot
	consumed int
	waiting  bool
	notify   chan struct{}
}

type binding struct {
	alias *alias
	slot  *slot
}

// Request is a started request bound to the aliases that were registered at
// the moment it started
type Request struct {
	Seq      uint64
	Method   string
	URL      string
	bindings []binding
}

// Registry holds the registered aliases of one page
type Registry struct {
	mu      sync.Mutex
	aliases map[string]*alias
	order   []string
	seq     uint64
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{aliases: make(map[string]*alias)}
}

// Register binds name to method and pattern. Only requests started after
// Register returns are captured. Registering an existing name starts it over.
func (r *Registry) Register(name, method, pattern string) error {
	if name == "" {
		return fmt.Errorf("%w: empty alias", ErrInvalidPattern)
	}
	if !doublestar.ValidatePattern(pattern) {
		return fmt.Errorf("%w: %q", ErrInvalidPattern, pattern)
	}
	if method == "" {
		method = AnyMethod
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.aliases[name]; ok {
		if old.waiting {
			return fmt.Errorf("%w: @%s", ErrWaitInProgress, name)
		}
	} else {
		r.order = append(r.order, name)
	}
	r.aliases[name] = &alias{
		matcher: Matcher{Method: strings.ToUpper(method), Pattern: pattern},
		notify:  make(chan struct{}),
	}
	return nil
}

// Begin stamps a request as it starts and binds it to every alias matching
// it. It returns nil when no alias is interested. Begin must be called in the
// order the browser starts requests.
func (r *Registry) Begin(method, rawURL string) *Request {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	var req *Request
	for _, name := range r.order {
		a := r.aliases[name]
		if !a.matcher.Match(method, rawURL) {
			continue
		}
		if req == nil {
			req = &Request{Seq: r.seq, Method: method, URL: rawURL}
		}
		s := &slot{}
		a.slots = append(a.slots, s)
		req.bindings = append(req.bindings, binding{alias: a, slot: s})
	}
	return req
}

// Complete delivers the exchange of req to the aliases it was bound to. An
// alias registered again since req started no longer sees it.
func (r *Registry) Complete(req *Request, ex Exchange) {
	if req == nil {
		return
	}
	ex.Seq = req.Seq

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range req.bindings {
		b.slot.ex = ex
		b.slot.done = true
		close(b.alias.notify)
		b.alias.notify = make(chan struct{})
	}
}

// Wait consumes the next exchange of every alias, strictly in the order
// given. Exchanges of one alias are handed out in the order their requests
// started, so a slow earlier request holds back a faster later one. It
// returns a network-wait-timeout naming the first alias that has not fired
// when ctx is done.
func (r *Registry) Wait(ctx context.Context, names ...string) ([]Exchange, error) {
	out := make([]Exchange, 0, len(names))
	for _, name := range names {
		ex, err := r.waitOne(ctx, name)
		if err != nil {
			return out, err
		}
		out = append(out, ex)
	}
	return out, nil
}

func (r *Registry) waitOne(ctx context.Context, name string) (Exchange, error) {
	r.mu.Lock()
	a, ok := r.aliases[name]
	if !ok {
		r.mu.Unlock()
		return Exchange{}, fmt.Errorf("%w: @%s", ErrUnknownAlias, name)
	}
	if a.waiting {
		r.mu.Unlock()
		return Exchange{}, fmt.Errorf("%w: @%s", ErrWaitInProgress, name)
	}
	a.waiting = true
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		a.waiting = false
		r.mu.Unlock()
	}()

	for {
		r.mu.Lock()
		if a.consumed < len(a.slots) && a.slots[a.consumed].done {
			ex := a.slots[a.consumed].ex
			a.consumed++
			r.mu.Unlock()
			return ex, nil
		}
		notify := a.notify
		r.mu.Unlock()

		select {
		case <-notify:
		case <-ctx.Done():
			return Exchange{}, harness.WaitTimeout(name, ctx.Err())
		}
	}
}

// Count returns how many exchanges name has completed since it was registered
func (r *Registry) Count(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.aliases[name]
	if !ok {
		return 0
	}
	n := 0
	for _, s := range a.slots {
		if s.done {
			n++
		}
	}
	return n
}

// Reset drops every alias, used between scenarios
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.aliases = make(map[string]*alias)
	r.order = nil
}
