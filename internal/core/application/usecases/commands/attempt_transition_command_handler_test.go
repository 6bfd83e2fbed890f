package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"stateflow/internal/core/application/usecases/commands"
	"stateflow/internal/core/domain/audit"
	"stateflow/internal/core/domain/events"
	"stateflow/internal/core/domain/model/item"
	"stateflow/internal/core/domain/model/kernel"
	"stateflow/internal/core/domain/validation"
	"stateflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func itemInInitial(t *testing.T) *item.Item {
	t.Helper()

	it, err := item.NewItem(kernel.NewUUID(), "Initial")
	require.NoError(t, err)
	return it
}

// itemInProcessing restores an item that entered Processing at the given time.
func itemInProcessing(t *testing.T, enteredAt time.Time) *item.Item {
	t.Helper()

	transition, err := item.NewStateTransition(
		"Initial", "Processing", enteredAt, "work accepted", "worker-1",
	)
	require.NoError(t, err)

	it, err := item.RestoreItem(
		kernel.NewUUID(),
		"Processing",
		enteredAt.Add(-time.Minute),
		enteredAt,
		[]item.StateTransition{transition},
		2,
	)
	require.NoError(t, err)
	return it
}

func itemInCompleted(t *testing.T) *item.Item {
	t.Helper()

	now := time.Now().UTC()
	first, err := item.NewStateTransition(
		"Initial", "Processing", now.Add(-2*time.Minute), "work accepted", "worker-1",
	)
	require.NoError(t, err)
	second, err := item.NewStateTransition(
		"Processing", "Completed", now.Add(-time.Minute), "work done", "worker-1",
	)
	require.NoError(t, err)

	it, err := item.RestoreItem(
		kernel.NewUUID(),
		"Completed",
		now.Add(-3*time.Minute),
		now.Add(-time.Minute),
		[]item.StateTransition{first, second},
		3,
	)
	require.NoError(t, err)
	return it
}

func attemptCommand(t *testing.T, id kernel.UUID, target item.State) commands.AttemptTransitionCommand {
	t.Helper()

	cmd, err := commands.NewAttemptTransitionCommand(id, target, "requested by test", "tester")
	require.NoError(t, err)
	return cmd
}

func eventKinds(published []events.Event) []events.Kind {
	kinds := make([]events.Kind, 0, len(published))
	for _, event := range published {
		kinds = append(kinds, event.Kind)
	}
	return kinds
}

func TestAttemptTransitionCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	loaded := itemInInitial(t)
	cmd := attemptCommand(t, loaded.ID(), "Processing")

	repo := new(MockItemRepository)
	trail := new(MockAuditTrail)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ItemRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, loaded.ID()).Return(loaded, nil).Once(),
		uow.On("AuditTrail").Return(trail).Once(),
		trail.On("Append", mock.Anything, mock.MatchedBy(func(entry audit.Entry) bool {
			return entry.Outcome() == audit.OutcomeCommitted &&
				entry.FromState() == item.State("Initial") &&
				entry.ToState() == item.State("Processing") &&
				len(entry.Violations()) == 0
		})).Return(nil).Once(),
		uow.On("ItemRepository").Return(repo).Once(),
		repo.On("Update", mock.Anything, loaded, int64(1)).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := &RecordingPublisher{}
	h := commands.NewAttemptTransitionCommandHandler(
		factory, newTestCatalog(t), validation.NewPipeline(), publisher,
	)

	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.True(t, result.ItemID.IsEqual(loaded.ID()))
	assert.Equal(t, item.State("Initial"), result.FromState)
	assert.Equal(t, item.State("Processing"), result.ToState)
	assert.Equal(t, int64(2), result.Version)

	assert.Equal(t, item.State("Processing"), loaded.CurrentState())
	require.Len(t, loaded.History(), 1)
	assert.Equal(t, "requested by test", loaded.History()[0].Reason())

	assert.Equal(t,
		[]events.Kind{events.KindStateTransitionRequested, events.KindStateTransitionCompleted},
		eventKinds(publisher.Events()),
	)

	repo.AssertExpectations(t)
	trail.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestAttemptTransitionCommandHandler_Handle_IllegalEdge(t *testing.T) {
	ctx := t.Context()
	loaded := itemInInitial(t)
	cmd := attemptCommand(t, loaded.ID(), "Completed") // no Initial -> Completed edge

	repo := new(MockItemRepository)
	trail := new(MockAuditTrail)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ItemRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, loaded.ID()).Return(loaded, nil).Once(),
		uow.On("AuditTrail").Return(trail).Once(),
		trail.On("Append", mock.Anything, mock.MatchedBy(func(entry audit.Entry) bool {
			return entry.Outcome() == audit.OutcomeRejected && len(entry.Violations()) == 1
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := &RecordingPublisher{}
	h := commands.NewAttemptTransitionCommandHandler(
		factory, newTestCatalog(t), validation.NewPipeline(), publisher,
	)

	_, err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, item.ErrIllegalTransition)

	// the item is untouched
	assert.Equal(t, item.State("Initial"), loaded.CurrentState())
	assert.Equal(t, int64(1), loaded.Version())
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)

	published := publisher.Events()
	require.Len(t, published, 1)
	assert.Equal(t, events.KindValidationFailed, published[0].Kind)
	assert.Equal(t, item.CodeIllegalTransition, published[0].ReasonCode)

	trail.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestAttemptTransitionCommandHandler_Handle_TerminalState(t *testing.T) {
	ctx := t.Context()
	loaded := itemInCompleted(t)
	cmd := attemptCommand(t, loaded.ID(), "Processing")

	repo := new(MockItemRepository)
	trail := new(MockAuditTrail)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ItemRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, loaded.ID()).Return(loaded, nil).Once(),
		uow.On("AuditTrail").Return(trail).Once(),
		trail.On("Append", mock.Anything, mock.AnythingOfType("audit.Entry")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAttemptTransitionCommandHandler(
		factory, newTestCatalog(t), validation.NewPipeline(), &RecordingPublisher{},
	)

	_, err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, item.ErrIllegalTransition)

	var illegal *item.IllegalTransitionError
	require.ErrorAs(t, err, &illegal)
	assert.True(t, illegal.FromTerminal)
	assert.Equal(t, item.State("Completed"), loaded.CurrentState())
}

func TestAttemptTransitionCommandHandler_Handle_TimeoutExceeded(t *testing.T) {
	ctx := t.Context()
	loaded := itemInProcessing(t, time.Now().UTC().Add(-time.Hour)) // limit is 30m
	cmd := attemptCommand(t, loaded.ID(), "Completed")

	repo := new(MockItemRepository)
	trail := new(MockAuditTrail)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ItemRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, loaded.ID()).Return(loaded, nil).Once(),
		uow.On("AuditTrail").Return(trail).Once(),
		trail.On("Append", mock.Anything, mock.MatchedBy(func(entry audit.Entry) bool {
			return entry.Outcome() == audit.OutcomeRejected
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	pipelineRan := false
	pipeline := validation.NewPipeline(validation.Func(
		func(_ context.Context, _ *item.Item, _ item.State) validation.Result {
			pipelineRan = true
			return validation.Valid()
		},
	))

	publisher := &RecordingPublisher{}
	h := commands.NewAttemptTransitionCommandHandler(factory, newTestCatalog(t), pipeline, publisher)

	_, err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, item.ErrTimeoutExceeded)

	// structural rejections skip the pipeline entirely
	assert.False(t, pipelineRan)

	published := publisher.Events()
	require.Len(t, published, 1)
	assert.Equal(t, item.CodeTimeoutExceeded, published[0].ReasonCode)
}

func TestAttemptTransitionCommandHandler_Handle_ValidationFailed(t *testing.T) {
	ctx := t.Context()
	loaded := itemInProcessing(t, time.Now().UTC().Add(-time.Minute))
	cmd := attemptCommand(t, loaded.ID(), "Completed")

	repo := new(MockItemRepository)
	trail := new(MockAuditTrail)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ItemRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, loaded.ID()).Return(loaded, nil).Once(),
		uow.On("AuditTrail").Return(trail).Once(),
		trail.On("Append", mock.Anything, mock.MatchedBy(func(entry audit.Entry) bool {
			return entry.Outcome() == audit.OutcomeRejected &&
				assert.ObjectsAreEqual([]string{"first rule broken", "second rule broken"}, entry.Violations())
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	// both validators run even though the first one already failed
	pipeline := validation.NewPipeline(
		validation.Func(func(_ context.Context, _ *item.Item, _ item.State) validation.Result {
			return validation.Invalid("first rule broken")
		}),
		validation.Func(func(_ context.Context, _ *item.Item, _ item.State) validation.Result {
			return validation.Invalid("second rule broken")
		}),
	)

	publisher := &RecordingPublisher{}
	h := commands.NewAttemptTransitionCommandHandler(factory, newTestCatalog(t), pipeline, publisher)

	_, err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, item.ErrValidationFailed)

	var failed *item.ValidationFailedError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, []string{"first rule broken", "second rule broken"}, failed.Violations)

	assert.Equal(t, item.State("Processing"), loaded.CurrentState())
	assert.Equal(t, int64(2), loaded.Version())
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)

	published := publisher.Events()
	require.Len(t, published, 2)
	assert.Equal(t, events.KindStateTransitionRequested, published[0].Kind)
	assert.Equal(t, events.KindValidationFailed, published[1].Kind)
	assert.Equal(t, []string{"first rule broken", "second rule broken"}, published[1].Violations)
}

func TestAttemptTransitionCommandHandler_Handle_VersionConflict(t *testing.T) {
	ctx := t.Context()
	loaded := itemInInitial(t)
	cmd := attemptCommand(t, loaded.ID(), "Processing")

	conflict := errs.NewVersionConflictError("item", loaded.ID().String(), 1)

	repo := new(MockItemRepository)
	trail := new(MockAuditTrail)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ItemRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, loaded.ID()).Return(loaded, nil).Once(),
		uow.On("AuditTrail").Return(trail).Once(),
		trail.On("Append", mock.Anything, mock.AnythingOfType("audit.Entry")).Return(nil).Once(),
		uow.On("ItemRepository").Return(repo).Once(),
		repo.On("Update", mock.Anything, loaded, int64(1)).Return(conflict).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := &RecordingPublisher{}
	h := commands.NewAttemptTransitionCommandHandler(
		factory, newTestCatalog(t), validation.NewPipeline(), publisher,
	)

	_, err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrVersionConflict)

	// the loser's transaction rolls back; nothing is committed and no
	// success event goes out
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	assert.Equal(t,
		[]events.Kind{events.KindStateTransitionRequested},
		eventKinds(publisher.Events()),
	)
}

func TestAttemptTransitionCommandHandler_Handle_AuditAppendError(t *testing.T) {
	ctx := t.Context()
	loaded := itemInInitial(t)
	cmd := attemptCommand(t, loaded.ID(), "Processing")

	repo := new(MockItemRepository)
	trail := new(MockAuditTrail)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ItemRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, loaded.ID()).Return(loaded, nil).Once(),
		uow.On("AuditTrail").Return(trail).Once(),
		trail.On("Append", mock.Anything, mock.AnythingOfType("audit.Entry")).
			Return(errors.New("disk full")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAttemptTransitionCommandHandler(
		factory, newTestCatalog(t), validation.NewPipeline(), &RecordingPublisher{},
	)

	_, err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrPersistence)

	// an attempt that cannot be audited must not persist a state change
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestAttemptTransitionCommandHandler_Handle_ItemNotFound(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd := attemptCommand(t, id, "Processing")

	repo := new(MockItemRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ItemRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, id).
			Return(nil, errs.NewObjectNotFoundError("item", id)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAttemptTransitionCommandHandler(
		factory, newTestCatalog(t), validation.NewPipeline(), &RecordingPublisher{},
	)

	_, err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestAttemptTransitionCommandHandler_Handle_CommandNotConstructed(t *testing.T) {
	ctx := t.Context()
	factory := new(MockUoWFactory)

	h := commands.NewAttemptTransitionCommandHandler(
		factory, newTestCatalog(t), validation.NewPipeline(), &RecordingPublisher{},
	)

	_, err := h.Handle(ctx, commands.AttemptTransitionCommand{})
	require.Error(t, err)
	factory.AssertNotCalled(t, "Create")
}
