// Package events defines the lifecycle notifications the transition engine
// publishes. Events are best-effort: they reference items by identifier only
// and sit outside the transactional boundary, so listener failures never
// roll back a committed transition.
package events

import (
	"context"
	"time"

	"stateflow/internal/core/domain/model/item"
	"stateflow/internal/core/domain/model/kernel"
)

// Kind identifies the lifecycle phase an event reports.
type Kind string

const (
	// KindStateTransitionRequested is published after structural checks pass,
	// before the validation pipeline runs.
	KindStateTransitionRequested Kind = "StateTransitionRequested"

	// KindStateTransitionCompleted is published after a transition persisted.
	KindStateTransitionCompleted Kind = "StateTransitionCompleted"

	// KindValidationFailed is published for every rejected attempt, whether
	// the rejection was structural or produced by the validation pipeline.
	KindValidationFailed Kind = "ValidationFailed"
)

// Event is a lifecycle notification about one transition attempt.
type Event struct {
	Kind       Kind
	ItemID     kernel.UUID
	FromState  item.State
	ToState    item.State
	Actor      string
	ReasonCode string
	Violations []string
	OccurredAt time.Time
}

// NewStateTransitionRequested creates the optional pre-validation event.
func NewStateTransitionRequested(itemID kernel.UUID, from, to item.State, actor string) Event {
	return Event{
		Kind:       KindStateTransitionRequested,
		ItemID:     itemID,
		FromState:  from,
		ToState:    to,
		Actor:      actor,
		OccurredAt: time.Now().UTC(),
	}
}

// NewStateTransitionCompleted creates the post-commit success event.
func NewStateTransitionCompleted(itemID kernel.UUID, from, to item.State, actor string) Event {
	return Event{
		Kind:       KindStateTransitionCompleted,
		ItemID:     itemID,
		FromState:  from,
		ToState:    to,
		Actor:      actor,
		OccurredAt: time.Now().UTC(),
	}
}

// NewValidationFailed creates the failure event carrying the machine-readable
// reason code and the full violation list.
func NewValidationFailed(
	itemID kernel.UUID,
	from, to item.State,
	actor string,
	reasonCode string,
	violations []string,
) Event {
	return Event{
		Kind:       KindValidationFailed,
		ItemID:     itemID,
		FromState:  from,
		ToState:    to,
		Actor:      actor,
		ReasonCode: reasonCode,
		Violations: append([]string(nil), violations...),
		OccurredAt: time.Now().UTC(),
	}
}

// Listener consumes published events. Implementations must tolerate being
// called concurrently; a panicking listener is isolated by the dispatcher
// and does not stop delivery to others.
type Listener interface {
	Handle(ctx context.Context, event Event)
}

// ListenerFunc adapts an ordinary function to the Listener interface.
type ListenerFunc func(ctx context.Context, event Event)

// Handle calls the wrapped function.
func (f ListenerFunc) Handle(ctx context.Context, event Event) {
	f(ctx, event)
}
