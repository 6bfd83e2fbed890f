package commands

import (
	"errors"

	"stateflow/internal/core/domain/model/kernel"
	"stateflow/internal/pkg/guard"
)

// ErrCreateItemCommandIsNotConstructed is returned when a CreateItemCommand
// was not created through its constructor.
var ErrCreateItemCommandIsNotConstructed = errors.New(
	"CreateItemCommand must be created via NewCreateItemCommand constructor",
)

// CreateItemCommand represents a request to register a new tracked item.
// The item starts in the catalog's initial state with an empty transition
// history.
type CreateItemCommand struct { //nolint:recvcheck //using for validation
	itemID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateItemCommand creates a command to register a new tracked item.
// Validates that the item ID is a properly constructed UUID.
func NewCreateItemCommand(itemID kernel.UUID) (CreateItemCommand, error) {
	command := CreateItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setItemID(itemID); err != nil {
		return CreateItemCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateItemCommand) Validate() error {
	return c.guard.Validate(ErrCreateItemCommandIsNotConstructed)
}

// ItemID returns the unique identifier for the new item.
func (c CreateItemCommand) ItemID() kernel.UUID {
	return c.itemID
}

func (c *CreateItemCommand) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}

	c.itemID = itemID
	return nil
}
