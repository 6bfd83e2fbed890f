package item

import (
	"errors"
	"fmt"
	"time"

	"stateflow/internal/core/domain/model/kernel"
	"stateflow/internal/pkg/errs"
)

// ErrItemIsNotConstructed is returned when an Item instance was not created
// through NewItem or RestoreItem. This ensures all items are properly validated.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem or RestoreItem constructor")

// Item is the tracked entity moving through the catalog's state graph. It is
// the aggregate root owning its transition history exclusively.
//
// Item maintains these invariants:
//   - current state equals the to-state of the last history entry, or the
//     catalog's initial state while the history is empty;
//   - history is append-only and each entry chains to its predecessor;
//   - version increases by exactly one per committed transition; the
//     repository uses it for optimistic-concurrency conflict detection.
//
// Items are mutated only through the transition engine's commit path (Apply)
// and never deleted by the core.
type Item struct {
	id           kernel.UUID
	currentState State
	createdAt    time.Time
	updatedAt    time.Time
	history      []StateTransition
	version      int64

	isConstructed bool
}

// NewItem creates an item in the given initial state with an empty history.
// The initial state is the catalog's designated starting point; version
// starts at 1.
func NewItem(id kernel.UUID, initial State) (*Item, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := initial.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Item{
		id:            id,
		currentState:  initial,
		createdAt:     now,
		updatedAt:     now,
		version:       1,
		isConstructed: true,
	}, nil
}

// RestoreItem reconstructs an item from persistence. It revalidates the
// aggregate invariants so corrupted rows cannot produce an item whose state
// disagrees with its history.
func RestoreItem(
	id kernel.UUID,
	currentState State,
	createdAt time.Time,
	updatedAt time.Time,
	history []StateTransition,
	version int64,
) (*Item, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := currentState.Validate(); err != nil {
		return nil, err
	}
	if createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("created at")
	}
	if updatedAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("updated at")
	}
	if version < 1 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"version",
			fmt.Errorf("%d is not a positive version", version),
		)
	}

	for i, transition := range history {
		if err := transition.Validate(); err != nil {
			return nil, err
		}
		if i > 0 && history[i-1].To() != transition.From() {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"transition history",
				fmt.Errorf("entry %d starts at %q but the previous entry ended at %q",
					i, transition.From(), history[i-1].To()),
			)
		}
	}
	if len(history) > 0 && history[len(history)-1].To() != currentState {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"current state",
			fmt.Errorf("%q does not match the last history entry's to-state %q",
				currentState, history[len(history)-1].To()),
		)
	}

	restored := &Item{
		id:            id,
		currentState:  currentState,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		history:       append([]StateTransition(nil), history...),
		version:       version,
		isConstructed: true,
	}
	return restored, nil
}

// Validate ensures the Item instance was properly constructed.
func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// IsEqual compares two items by identity.
func (i *Item) IsEqual(other *Item) bool {
	return other != nil && i.id.IsEqual(other.id)
}

// ID returns the item's unique identifier.
func (i *Item) ID() kernel.UUID {
	return i.id
}

// CurrentState returns the item's current phase.
func (i *Item) CurrentState() State {
	return i.currentState
}

// CreatedAt returns when the item was created.
func (i *Item) CreatedAt() time.Time {
	return i.createdAt
}

// UpdatedAt returns when the item last committed a transition, or its
// creation time if no transition has committed yet.
func (i *Item) UpdatedAt() time.Time {
	return i.updatedAt
}

// Version returns the optimistic-concurrency version counter.
func (i *Item) Version() int64 {
	return i.version
}

// History returns a copy of the append-only transition history in commit order.
func (i *Item) History() []StateTransition {
	return append([]StateTransition(nil), i.history...)
}

// EnteredCurrentStateAt returns when the item entered its current state:
// the timestamp of the last committed transition, or the creation time while
// the history is empty. The engine compares this against the catalog's
// per-state timeout.
func (i *Item) EnteredCurrentStateAt() time.Time {
	if len(i.history) == 0 {
		return i.createdAt
	}
	return i.history[len(i.history)-1].OccurredAt()
}

// Apply commits a transition to the aggregate: appends it to the history,
// moves the current state, advances the version, and records the transition
// time as the update time. It is called only from the engine's commit path,
// after structural and business-rule validation have passed.
//
// The transition's from-state must equal the item's current state; anything
// else indicates the caller is working from a stale snapshot.
func (i *Item) Apply(transition StateTransition) error {
	if err := i.Validate(); err != nil {
		return err
	}
	if err := transition.Validate(); err != nil {
		return err
	}
	if transition.From() != i.currentState {
		return errs.NewValueIsInvalidErrorWithCause(
			"transition",
			fmt.Errorf("from-state %q does not match current state %q",
				transition.From(), i.currentState),
		)
	}

	i.history = append(i.history, transition)
	i.currentState = transition.To()
	i.updatedAt = transition.OccurredAt()
	i.version++
	return nil
}
