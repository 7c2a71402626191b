package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// FlowState represents the lifecycle of one flow invocation
type FlowState string

// Flow states
const (
	FlowStateIdle       FlowState = "idle"
	FlowStateDispatched FlowState = "dispatched"
	FlowStateAwaiting   FlowState = "awaiting"
	FlowStateSettled    FlowState = "settled"
	FlowStateTimedOut   FlowState = "timed_out"
	FlowStateFailed     FlowState = "failed"
)

// IsTerminal returns true if no further transition is allowed
func (s FlowState) IsTerminal() bool {
	return s == FlowStateSettled || s == FlowStateTimedOut || s == FlowStateFailed
}

// FlowRun records one execution of a named flow
type FlowRun struct {
	ID         string
	Scenario   string
	Flow       string
	State      FlowState
	Aliases    []string
	Pending    int
	Error      string
	StartedAt  time.Time
	FinishedAt time.Time
}

// Domain errors
var (
	ErrEmptyFlowName          = errors.New("flow name cannot be empty")
	ErrInvalidStateTransition = errors.New("invalid flow state transition")
)

// NewFlowRun creates an idle run for flow
func NewFlowRun(scenario, flow string) (*FlowRun, error) {
	if flow == "" {
		return nil, ErrEmptyFlowName
	}

	return &FlowRun{
		ID:       uuid.New().String(),
		Scenario: scenario,
		Flow:     flow,
		State:    FlowStateIdle,
	}, nil
}

// Dispatch marks the first action of the flow as sent to the browser
func (r *FlowRun) Dispatch(aliases []string) error {
	if r.State != FlowStateIdle {
		return fmt.Errorf("%w: cannot dispatch flow in state %s", ErrInvalidStateTransition, r.State)
	}

	r.State = FlowStateDispatched
	r.Aliases = append([]string(nil), aliases...)
	r.StartedAt = time.Now()
	return nil
}

// Await marks that every action ran and n aliases are outstanding
func (r *FlowRun) Await() error {
	if r.State != FlowStateDispatched {
		return fmt.Errorf("%w: cannot await network in state %s", ErrInvalidStateTransition, r.State)
	}

	r.State = FlowStateAwaiting
	r.Pending = len(r.Aliases)
	return nil
}

// Resolve records that one outstanding alias fired
func (r *FlowRun) Resolve() error {
	if r.State != FlowStateAwaiting || r.Pending == 0 {
		return fmt.Errorf("%w: no alias outstanding in state %s", ErrInvalidStateTransition, r.State)
	}

	r.Pending--
	return nil
}

// Settle completes the run successfully
func (r *FlowRun) Settle() error {
	if r.State != FlowStateAwaiting {
		return fmt.Errorf("%w: cannot settle flow in state %s", ErrInvalidStateTransition, r.State)
	}
	if r.Pending != 0 {
		return fmt.Errorf("%w: %d aliases still outstanding", ErrInvalidStateTransition, r.Pending)
	}

	r.State = FlowStateSettled
	r.FinishedAt = time.Now()
	return nil
}

// TimeOut marks the run as failed on a network wait
func (r *FlowRun) TimeOut(cause error) error {
	if r.State != FlowStateAwaiting {
		return fmt.Errorf("%w: cannot time out flow in state %s", ErrInvalidStateTransition, r.State)
	}

	r.State = FlowStateTimedOut
	r.Error = errorText(cause)
	r.FinishedAt = time.Now()
	return nil
}

// Fail marks the run as failed on a locate, act or read step
func (r *FlowRun) Fail(cause error) error {
	if r.State.IsTerminal() {
		return fmt.Errorf("%w: flow already %s", ErrInvalidStateTransition, r.State)
	}

	r.State = FlowStateFailed
	r.Error = errorText(cause)
	r.FinishedAt = time.Now()
	return nil
}

// Duration returns how long the run took, or zero while it is still running
func (r *FlowRun) Duration() time.Duration {
	if r.FinishedAt.IsZero() || r.StartedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// StalledAlias returns the alias a timed out run was still waiting for.
// Aliases are awaited in order, so it is the first unresolved one.
func (r *FlowRun) StalledAlias() string {
	if r.State != FlowStateTimedOut || r.Pending == 0 || r.Pending > len(r.Aliases) {
		return ""
	}
	return r.Aliases[len(r.Aliases)-r.Pending]
}

func errorText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
