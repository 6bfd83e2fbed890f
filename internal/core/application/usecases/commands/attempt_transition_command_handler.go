package commands

import (
	"context"
	"time"

	"stateflow/internal/core/domain/audit"
	"stateflow/internal/core/domain/events"
	"stateflow/internal/core/domain/model/item"
	"stateflow/internal/core/domain/model/kernel"
	"stateflow/internal/core/domain/validation"
	"stateflow/internal/core/ports"
	"stateflow/internal/pkg/errs"
)

// AttemptTransitionResult reports a committed transition back to the caller.
type AttemptTransitionResult struct {
	ItemID      kernel.UUID
	FromState   item.State
	ToState     item.State
	Version     int64
	CommittedAt time.Time
}

// AttemptTransitionCommandHandler is the transition engine. For each request
// it loads the item, applies the structural checks (catalog edge, terminal
// guard, time-in-state limit), runs the validation pipeline, and either
// commits the state change or records the rejection. Every attempt,
// committed or rejected, produces exactly one audit entry; the state change
// and its audit entry persist in the same transaction.
//
// The handler holds no lock across the load-validate-persist window.
// Concurrent attempts for the same item race on load and exactly one may
// commit per version: the repository's optimistic-concurrency check at
// persist time is the sole serialization point. The loser receives an error
// unwrapping to errs.ErrVersionConflict and must retry from a fresh load;
// the engine never retries automatically, so duplicate side effects in
// validators cannot hide behind invisible re-runs.
//
// Example:
//
//	handler := NewAttemptTransitionCommandHandler(uowFactory, catalog, pipeline, publisher)
//	cmd, _ := NewAttemptTransitionCommand(itemID, "Processing", "work accepted", "worker-7")
//	result, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, item.ErrIllegalTransition):
//	    // edge not in the catalog, or item already terminal
//	case errors.Is(err, item.ErrValidationFailed):
//	    // business rules rejected the move; err carries every violation
//	case errors.Is(err, errs.ErrVersionConflict):
//	    // lost the race, reload and retry
//	case err != nil:
//	    // infrastructure failure
//	default:
//	    log.Printf("item now %s at version %d", result.ToState, result.Version)
//	}
type AttemptTransitionCommandHandler struct {
	uowFactory UoWFactory
	catalog    *item.Catalog
	pipeline   validation.Pipeline
	publisher  ports.EventPublisher
}

// NewAttemptTransitionCommandHandler creates the transition engine from its
// explicitly enumerated configuration: a unit-of-work factory, the read-only
// state catalog, the ordered validation pipeline, and the event publisher.
func NewAttemptTransitionCommandHandler(
	uowFactory UoWFactory,
	catalog *item.Catalog,
	pipeline validation.Pipeline,
	publisher ports.EventPublisher,
) AttemptTransitionCommandHandler {
	return AttemptTransitionCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		pipeline:   pipeline,
		publisher:  publisher,
	}
}

// Handle processes one transition attempt.
//
// Structural rejections (illegal edge, terminal source state, exceeded
// time-in-state) are decided before the pipeline runs and skip it entirely.
// Rejections of any kind leave the item untouched, persist a Rejected audit
// entry, publish the failure event, and surface as typed errors carrying a
// machine-readable code. On success the returned result reports the new
// state and version.
func (h AttemptTransitionCommandHandler) Handle(
	ctx context.Context,
	command AttemptTransitionCommand,
) (AttemptTransitionResult, error) {
	if err := command.Validate(); err != nil {
		return AttemptTransitionResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AttemptTransitionResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	loaded, err := uow.ItemRepository().Get(ctx, command.ItemID())
	if err != nil {
		return AttemptTransitionResult{}, err
	}

	from := loaded.CurrentState()

	// Terminal source states are rejected before consulting the transition
	// table, so a misconfigured catalog cannot resurrect a finished item.
	if h.catalog.IsTerminal(from) {
		rejection := item.NewIllegalTransitionFromTerminalError(from, command.Target())
		return AttemptTransitionResult{},
			h.reject(ctx, uow, loaded, command, rejection.Code(), []string{rejection.Error()}, rejection)
	}
	if !h.catalog.IsAllowed(from, command.Target()) {
		rejection := item.NewIllegalTransitionError(from, command.Target())
		return AttemptTransitionResult{},
			h.reject(ctx, uow, loaded, command, rejection.Code(), []string{rejection.Error()}, rejection)
	}

	if limit, ok := h.catalog.TimeoutFor(from); ok {
		if elapsed := time.Now().UTC().Sub(loaded.EnteredCurrentStateAt()); elapsed > limit {
			rejection := item.NewTimeoutExceededError(from, elapsed, limit)
			return AttemptTransitionResult{},
				h.reject(ctx, uow, loaded, command, rejection.Code(), []string{rejection.Error()}, rejection)
		}
	}

	h.publisher.Publish(ctx, events.NewStateTransitionRequested(
		loaded.ID(), from, command.Target(), command.Actor(),
	))

	result := h.pipeline.Run(ctx, loaded, command.Target())
	if !result.IsValid() {
		rejection := item.NewValidationFailedError(command.Target(), result.Errors())
		return AttemptTransitionResult{},
			h.reject(ctx, uow, loaded, command, rejection.Code(), result.Errors(), rejection)
	}

	now := time.Now().UTC()
	transition, err := item.NewStateTransition(from, command.Target(), now, command.Reason(), command.Actor())
	if err != nil {
		return AttemptTransitionResult{}, err
	}

	loadedVersion := loaded.Version()
	if err = loaded.Apply(transition); err != nil {
		return AttemptTransitionResult{}, err
	}

	entry, err := audit.NewEntry(
		loaded.ID(), from, command.Target(), audit.OutcomeCommitted, nil, command.Actor(), now,
	)
	if err != nil {
		return AttemptTransitionResult{}, err
	}
	if err = uow.AuditTrail().Append(ctx, entry); err != nil {
		return AttemptTransitionResult{}, errs.NewPersistenceError("append audit entry", err)
	}

	if err = uow.ItemRepository().Update(ctx, loaded, loadedVersion); err != nil {
		return AttemptTransitionResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return AttemptTransitionResult{}, err
	}

	h.publisher.Publish(ctx, events.NewStateTransitionCompleted(
		loaded.ID(), from, command.Target(), command.Actor(),
	))

	return AttemptTransitionResult{
		ItemID:      loaded.ID(),
		FromState:   from,
		ToState:     loaded.CurrentState(),
		Version:     loaded.Version(),
		CommittedAt: now,
	}, nil
}

// reject persists the Rejected audit entry for a refused attempt, commits it
// (the item row is untouched, so the commit cannot conflict), publishes the
// failure event, and hands the typed rejection back to the caller. If the
// audit entry cannot be recorded the rejection is superseded by a
// persistence error: an unaudited attempt is worse than a rejected one.
func (h AttemptTransitionCommandHandler) reject(
	ctx context.Context,
	uow UoW,
	loaded *item.Item,
	command AttemptTransitionCommand,
	code string,
	violations []string,
	rejection error,
) error {
	entry, err := audit.NewEntry(
		loaded.ID(), loaded.CurrentState(), command.Target(),
		audit.OutcomeRejected, violations, command.Actor(), time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	if err = uow.AuditTrail().Append(ctx, entry); err != nil {
		return errs.NewPersistenceError("append audit entry", err)
	}
	if err = uow.Commit(ctx); err != nil {
		return errs.NewPersistenceError("commit rejected attempt", err)
	}

	h.publisher.Publish(ctx, events.NewValidationFailed(
		loaded.ID(), loaded.CurrentState(), command.Target(), command.Actor(), code, violations,
	))

	return rejection
}
