package item

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Machine-readable reason codes carried by every rejection so API callers
// can present actionable feedback without parsing error strings.
const (
	CodeNotFound               = "not_found"
	CodeIllegalTransition      = "illegal_transition"
	CodeTimeoutExceeded        = "timeout_exceeded"
	CodeValidationFailed       = "validation_failed"
	CodeConcurrentModification = "concurrent_modification"
	CodePersistenceFailure     = "persistence_failure"
)

var ErrIllegalTransition = errors.New("illegal transition")

// IllegalTransitionError is a structural rejection: the requested edge is
// not in the catalog's transition table, or the item sits in a terminal
// state. Terminal states are rejected regardless of catalog contents, as a
// guard against misconfigured tables.
type IllegalTransitionError struct {
	From         State
	To           State
	FromTerminal bool
}

// NewIllegalTransitionError creates a rejection for an edge missing from the
// transition table.
func NewIllegalTransitionError(from, to State) *IllegalTransitionError {
	return &IllegalTransitionError{From: from, To: to}
}

// NewIllegalTransitionFromTerminalError creates a rejection for a transition
// attempted out of a terminal state.
func NewIllegalTransitionFromTerminalError(from, to State) *IllegalTransitionError {
	return &IllegalTransitionError{From: from, To: to, FromTerminal: true}
}

func (e *IllegalTransitionError) Error() string {
	if e.FromTerminal {
		return fmt.Sprintf("%s: %q is a terminal state, no transition to %q is possible",
			ErrIllegalTransition, e.From, e.To)
	}
	return fmt.Sprintf("%s: no allowed transition from %q to %q",
		ErrIllegalTransition, e.From, e.To)
}

func (e *IllegalTransitionError) Unwrap() error {
	return ErrIllegalTransition
}

// Code returns the machine-readable reason code.
func (e *IllegalTransitionError) Code() string {
	return CodeIllegalTransition
}

var ErrTimeoutExceeded = errors.New("timeout exceeded")

// TimeoutExceededError is a structural rejection: the item has outstayed the
// catalog's maximum duration for its current state, so the requested
// transition is stale.
type TimeoutExceededError struct {
	State   State
	Elapsed time.Duration
	Limit   time.Duration
}

// NewTimeoutExceededError creates a rejection for a stale transition.
func NewTimeoutExceededError(state State, elapsed, limit time.Duration) *TimeoutExceededError {
	return &TimeoutExceededError{State: state, Elapsed: elapsed, Limit: limit}
}

func (e *TimeoutExceededError) Error() string {
	return fmt.Sprintf("%s: item has been in state %q for %s, limit is %s",
		ErrTimeoutExceeded, e.State, e.Elapsed.Round(time.Millisecond), e.Limit)
}

func (e *TimeoutExceededError) Unwrap() error {
	return ErrTimeoutExceeded
}

// Code returns the machine-readable reason code.
func (e *TimeoutExceededError) Code() string {
	return CodeTimeoutExceeded
}

var ErrValidationFailed = errors.New("validation failed")

// ValidationFailedError is a business-rule rejection. It carries every
// violated rule in pipeline order, not just the first, so callers see the
// whole report in one pass.
type ValidationFailedError struct {
	Target     State
	Violations []string
}

// NewValidationFailedError creates a rejection carrying the full list of
// violated business rules.
func NewValidationFailedError(target State, violations []string) *ValidationFailedError {
	return &ValidationFailedError{
		Target:     target,
		Violations: append([]string(nil), violations...),
	}
}

func (e *ValidationFailedError) Error() string {
	return fmt.Sprintf("%s: transition to %q rejected: %s",
		ErrValidationFailed, e.Target, strings.Join(e.Violations, "; "))
}

func (e *ValidationFailedError) Unwrap() error {
	return ErrValidationFailed
}

// Code returns the machine-readable reason code.
func (e *ValidationFailedError) Code() string {
	return CodeValidationFailed
}
