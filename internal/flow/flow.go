// Package flow runs named page flows against the webshop. A flow registers
// the network aliases it triggers, performs its actions, optionally settles
// and then blocks until every alias has fired, in registration order.
package flow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/phuslu/log"

	"github.com/atb-as/webshop-e2e/internal/browser"
	"github.com/atb-as/webshop-e2e/internal/harness"
	"github.com/atb-as/webshop-e2e/internal/intercept"
	"github.com/atb-as/webshop-e2e/internal/locator"
	"github.com/atb-as/webshop-e2e/internal/models"
)

// Driver is the browser surface flows act through
type Driver interface {
	Visit(path string) error
	Reload() error
	Locate(q locator.Query) (browser.Element, error)
	Find(q locator.Query) browser.Element
	Present(q locator.Query) (bool, error)
	Await(qs ...locator.Query) (int, error)
}

var _ Driver = (*browser.Session)(nil)

// Recorder stores finished runs, e.g. in the run journal
type Recorder interface {
	Record(ctx context.Context, run *models.FlowRun) error
}

// Intercept declares a network alias a flow waits for
type Intercept struct {
	Alias   string
	Method  string
	Pattern string
}

// Action is one locate-and-act step
type Action func(ctx context.Context) error

// Flow is a fixed sequence of intercepts, actions, an optional settle and the waits
type Flow struct {
	Name       string
	Intercepts []Intercept
	Actions    []Action
	// SettleOn pauses for the settle delay when the concept is on the page
	// after the actions, e.g. a save button still labelled "Laster".
	SettleOn locator.Concept
}

// Options configures an Orchestrator
type Options struct {
	Scenario       string
	Logger         *log.Logger
	Recorder       Recorder
	SettleDelay    time.Duration
	NetworkTimeout time.Duration
	PollInterval   time.Duration
	Sleep          func(time.Duration)
}

const (
	defaultSettleDelay    = 2 * time.Second
	defaultNetworkTimeout = 30 * time.Second
	defaultPollInterval   = 5 * time.Second
)

// Orchestrator runs flows one at a time on a single page
type Orchestrator struct {
	driver   Driver
	locators *locator.Registry
	network  *intercept.Registry
	opts     Options
}

// New creates an orchestrator. Zero options get the defaults.
func New(driver Driver, locators *locator.Registry, network *intercept.Registry, opts Options) *Orchestrator {
	if opts.Logger == nil {
		opts.Logger = &log.Logger{Writer: &log.IOWriter{Writer: io.Discard}}
	}
	if opts.SettleDelay == 0 {
		opts.SettleDelay = defaultSettleDelay
	}
	if opts.NetworkTimeout == 0 {
		opts.NetworkTimeout = defaultNetworkTimeout
	}
	if opts.PollInterval == 0 {
		opts.PollInterval = defaultPollInterval
	}
	if opts.Sleep == nil {
		opts.Sleep = time.Sleep
	}
	return &Orchestrator{driver: driver, locators: locators, network: network, opts: opts}
}

// ForScenario returns an orchestrator that records its runs under name
func (o *Orchestrator) ForScenario(name string) *Orchestrator {
	next := *o
	next.opts.Scenario = name
	return &next
}

// Run executes f and returns the exchanges of its aliases in registration order
func (o *Orchestrator) Run(ctx context.Context, f Flow) ([]intercept.Exchange, error) {
	run, err := models.NewFlowRun(o.opts.Scenario, f.Name)
	if err != nil {
		return nil, err
	}

	aliases := make([]string, 0, len(f.Intercepts))
	for _, ic := range f.Intercepts {
		if err := o.network.Register(ic.Alias, ic.Method, ic.Pattern); err != nil {
			return nil, o.finish(ctx, run, fmt.Errorf("flow %s: %w", f.Name, err))
		}
		aliases = append(aliases, ic.Alias)
	}

	if err := run.Dispatch(aliases); err != nil {
		return nil, err
	}
	o.opts.Logger.Debug().Str("flow", f.Name).Strs("aliases", aliases).Msg("flow dispatched")

	for _, act := range f.Actions {
		if err := act(ctx); err != nil {
			return nil, o.finish(ctx, run, err)
		}
	}

	if f.SettleOn != "" {
		if err := o.settle(f.SettleOn); err != nil {
			return nil, o.finish(ctx, run, err)
		}
	}

	if err := run.Await(); err != nil {
		return nil, err
	}

	waitCtx, cancel := context.WithTimeout(ctx, o.opts.NetworkTimeout)
	defer cancel()
	exchanges, err := o.network.Wait(waitCtx, aliases...)
	for range exchanges {
		if rerr := run.Resolve(); rerr != nil {
			return nil, rerr
		}
	}
	if err != nil {
		return nil, o.finish(ctx, run, err)
	}
	for i, ex := range exchanges {
		if ex.Failure != "" {
			return nil, o.finish(ctx, run, fmt.Errorf("flow %s: @%s %s %s: %s", f.Name, aliases[i], ex.Method, ex.URL, ex.Failure))
		}
	}
	return exchanges, o.finish(ctx, run, nil)
}

// Do runs f when the caller needs no response
func (o *Orchestrator) Do(ctx context.Context, f Flow) error {
	_, err := o.Run(ctx, f)
	return err
}

// settle pauses once when the interim concept is showing
func (o *Orchestrator) settle(c locator.Concept) error {
	q, err := o.locators.Resolve(c, nil)
	if err != nil {
		return err
	}
	present, err := o.driver.Present(q)
	if err != nil {
		return err
	}
	if present {
		o.opts.Logger.Debug().Str("concept", string(c)).Dur("delay", o.opts.SettleDelay).Msg("settling")
		o.opts.Sleep(o.opts.SettleDelay)
	}
	return nil
}

// finish moves run into its terminal state, logs it and hands it to the recorder
func (o *Orchestrator) finish(ctx context.Context, run *models.FlowRun, cause error) error {
	var terr error
	switch {
	case cause == nil:
		terr = run.Settle()
	case errors.Is(cause, harness.ErrNetworkWaitTimeout) && run.State == models.FlowStateAwaiting:
		terr = run.TimeOut(cause)
	default:
		terr = run.Fail(cause)
	}
	if terr != nil {
		return errors.Join(cause, terr)
	}

	entry := o.opts.Logger.Info()
	if cause != nil {
		entry = o.opts.Logger.Error().Err(cause)
	}
	entry.Str("scenario", run.Scenario).Str("flow", run.Flow).Str("state", string(run.State)).
		Strs("aliases", run.Aliases).Dur("elapsed", run.Duration()).Msg("flow finished")

	if o.opts.Recorder != nil {
		if err := o.opts.Recorder.Record(ctx, run); err != nil {
			o.opts.Logger.Warn().Err(err).Str("flow", run.Flow).Msg("failed to record flow run")
		}
	}
	return cause
}
