package commands

import (
	"context"

	"stateflow/internal/core/domain/model/item"
)

// CreateItemCommandHandler registers new tracked items. Items are created by
// this external factory path, never by the transition engine itself: the
// engine only moves existing items between states.
type CreateItemCommandHandler struct {
	uowFactory ItemUoWFactory
	catalog    *item.Catalog
}

// NewCreateItemCommandHandler creates a handler for item registration.
// The catalog supplies the initial state for every new item.
func NewCreateItemCommandHandler(uowFactory ItemUoWFactory, catalog *item.Catalog) CreateItemCommandHandler {
	return CreateItemCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
	}
}

// Handle processes the item creation command. The new item starts in the
// catalog's initial state with an empty history and version 1.
func (h CreateItemCommandHandler) Handle(ctx context.Context, command CreateItemCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	newItem, err := item.NewItem(command.ItemID(), h.catalog.Initial())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ItemRepository().Add(ctx, newItem); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
