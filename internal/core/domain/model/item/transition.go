package item

import (
	"errors"
	"fmt"
	"time"

	"stateflow/internal/pkg/errs"
	"stateflow/internal/pkg/guard"
)

// ErrStateTransitionIsNotConstructed is returned when a StateTransition was
// not created through the NewStateTransition factory method.
var ErrStateTransitionIsNotConstructed = errors.New(
	"StateTransition must be created via NewStateTransition constructor",
)

// StateTransition is an immutable record of a committed move between two
// states: who requested it, why, and when. Once constructed it is never
// mutated, only appended to an item's transition history.
type StateTransition struct {
	from       State
	to         State
	occurredAt time.Time
	reason     string
	actor      string

	guard guard.ConstructorGuard
}

// NewStateTransition creates a validated transition record. All fields are
// required and the timestamp must not lie in the future.
func NewStateTransition(
	from State,
	to State,
	occurredAt time.Time,
	reason string,
	actor string,
) (StateTransition, error) {
	transition := StateTransition{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		transition.setStates(from, to),
		transition.setOccurredAt(occurredAt),
		transition.setReason(reason),
		transition.setActor(actor),
	); err != nil {
		return StateTransition{}, err
	}

	return transition, nil
}

// Validate ensures the transition was created through the constructor.
func (t StateTransition) Validate() error {
	return t.guard.Validate(ErrStateTransitionIsNotConstructed)
}

// From returns the state the item left.
func (t StateTransition) From() State {
	return t.from
}

// To returns the state the item entered.
func (t StateTransition) To() State {
	return t.to
}

// OccurredAt returns when the transition was committed.
func (t StateTransition) OccurredAt() time.Time {
	return t.occurredAt
}

// Reason returns the caller-supplied justification for the transition.
func (t StateTransition) Reason() string {
	return t.reason
}

// Actor returns the opaque identifier of whoever performed the transition.
// The engine does no authentication; the identifier is supplied by the caller.
func (t StateTransition) Actor() string {
	return t.actor
}

func (t *StateTransition) setStates(from, to State) error {
	if err := from.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("from state", err)
	}
	if err := to.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("to state", err)
	}

	t.from = from
	t.to = to
	return nil
}

func (t *StateTransition) setOccurredAt(occurredAt time.Time) error {
	if occurredAt.IsZero() {
		return errs.NewValueIsRequiredError("occurred at")
	}
	if occurredAt.After(time.Now()) {
		return errs.NewValueIsInvalidErrorWithCause(
			"occurred at",
			fmt.Errorf("%s is in the future", occurredAt.Format(time.RFC3339Nano)),
		)
	}

	t.occurredAt = occurredAt
	return nil
}

func (t *StateTransition) setReason(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}

	t.reason = reason
	return nil
}

func (t *StateTransition) setActor(actor string) error {
	if actor == "" {
		return errs.NewValueIsRequiredError("actor")
	}

	t.actor = actor
	return nil
}
