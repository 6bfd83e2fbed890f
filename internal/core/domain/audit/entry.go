// Package audit defines the append-only record of transition attempts.
// Every attempt against an item produces exactly one entry, successful or
// not; an unaudited state change is treated as worse than a rejected one, so
// a failed audit write fails the whole attempt.
package audit

import (
	"errors"
	"fmt"
	"time"

	"stateflow/internal/core/domain/model/item"
	"stateflow/internal/core/domain/model/kernel"
	"stateflow/internal/pkg/errs"
	"stateflow/internal/pkg/guard"
)

// Outcome classifies how a transition attempt ended.
type Outcome string

const (
	// OutcomeCommitted marks an attempt whose state change persisted.
	OutcomeCommitted Outcome = "Committed"

	// OutcomeRejected marks an attempt refused structurally or by the
	// validation pipeline; the item's state did not change.
	OutcomeRejected Outcome = "Rejected"
)

// Validate rejects outcomes outside the closed set.
func (o Outcome) Validate() error {
	if o != OutcomeCommitted && o != OutcomeRejected {
		return errs.NewValueIsInvalidErrorWithCause(
			"outcome",
			fmt.Errorf("%q is not a valid outcome", string(o)),
		)
	}
	return nil
}

// String returns the outcome's name.
func (o Outcome) String() string {
	return string(o)
}

// ErrEntryIsNotConstructed is returned when an Entry was not created through
// the NewEntry factory method.
var ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry constructor")

// Entry is one immutable audit record of a transition attempt. Entries for a
// given item are totally ordered by commit sequence; for committed attempts
// that order matches the item's transition history.
type Entry struct {
	itemID     kernel.UUID
	fromState  item.State
	toState    item.State
	outcome    Outcome
	violations []string
	actor      string
	recordedAt time.Time

	guard guard.ConstructorGuard
}

// NewEntry creates a validated audit entry. Committed entries must carry no
// violations; rejected entries carry the full list of reasons the attempt
// was refused.
func NewEntry(
	itemID kernel.UUID,
	fromState item.State,
	toState item.State,
	outcome Outcome,
	violations []string,
	actor string,
	recordedAt time.Time,
) (Entry, error) {
	if err := itemID.Validate(); err != nil {
		return Entry{}, err
	}
	if err := fromState.Validate(); err != nil {
		return Entry{}, errs.NewValueIsRequiredErrorWithCause("from state", err)
	}
	if err := toState.Validate(); err != nil {
		return Entry{}, errs.NewValueIsRequiredErrorWithCause("to state", err)
	}
	if err := outcome.Validate(); err != nil {
		return Entry{}, err
	}
	if outcome == OutcomeCommitted && len(violations) > 0 {
		return Entry{}, errs.NewValueIsInvalidErrorWithCause(
			"violations",
			errors.New("a committed entry cannot carry violations"),
		)
	}
	if actor == "" {
		return Entry{}, errs.NewValueIsRequiredError("actor")
	}
	if recordedAt.IsZero() {
		return Entry{}, errs.NewValueIsRequiredError("recorded at")
	}

	return Entry{
		itemID:     itemID,
		fromState:  fromState,
		toState:    toState,
		outcome:    outcome,
		violations: append([]string(nil), violations...),
		actor:      actor,
		recordedAt: recordedAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the entry was created through the constructor.
func (e Entry) Validate() error {
	return e.guard.Validate(ErrEntryIsNotConstructed)
}

// ItemID returns the identifier of the item the attempt targeted.
func (e Entry) ItemID() kernel.UUID {
	return e.itemID
}

// FromState returns the item's state when the attempt was made.
func (e Entry) FromState() item.State {
	return e.fromState
}

// ToState returns the requested target state.
func (e Entry) ToState() item.State {
	return e.toState
}

// Outcome returns whether the attempt committed or was rejected.
func (e Entry) Outcome() Outcome {
	return e.outcome
}

// Violations returns a copy of the reasons a rejected attempt was refused;
// empty for committed entries.
func (e Entry) Violations() []string {
	return append([]string(nil), e.violations...)
}

// Actor returns the opaque identifier of whoever requested the transition.
func (e Entry) Actor() string {
	return e.actor
}

// RecordedAt returns when the attempt was recorded.
func (e Entry) RecordedAt() time.Time {
	return e.recordedAt
}
