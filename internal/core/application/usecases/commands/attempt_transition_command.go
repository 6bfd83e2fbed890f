package commands

import (
	"errors"

	"stateflow/internal/core/domain/model/item"
	"stateflow/internal/core/domain/model/kernel"
	"stateflow/internal/pkg/errs"
	"stateflow/internal/pkg/guard"
)

// ErrAttemptTransitionCommandIsNotConstructed is returned when an
// AttemptTransitionCommand was not created through its constructor.
var ErrAttemptTransitionCommandIsNotConstructed = errors.New(
	"AttemptTransitionCommand must be created via NewAttemptTransitionCommand constructor",
)

// AttemptTransitionCommand represents a request to move a tracked item into
// a target state. The actor is an opaque identifier supplied by the caller;
// the engine performs no authentication.
type AttemptTransitionCommand struct { //nolint:recvcheck //using for validation
	itemID kernel.UUID
	target item.State
	reason string
	actor  string

	guard guard.ConstructorGuard
}

// NewAttemptTransitionCommand creates a transition request. All fields are
// required: the item to move, the target state, a human-readable reason, and
// the requesting actor.
func NewAttemptTransitionCommand(
	itemID kernel.UUID,
	target item.State,
	reason string,
	actor string,
) (AttemptTransitionCommand, error) {
	command := AttemptTransitionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setItemID(itemID),
		command.setTarget(target),
		command.setReason(reason),
		command.setActor(actor),
	); err != nil {
		return AttemptTransitionCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c AttemptTransitionCommand) Validate() error {
	return c.guard.Validate(ErrAttemptTransitionCommandIsNotConstructed)
}

// ItemID returns the identifier of the item to move.
func (c AttemptTransitionCommand) ItemID() kernel.UUID {
	return c.itemID
}

// Target returns the requested target state.
func (c AttemptTransitionCommand) Target() item.State {
	return c.target
}

// Reason returns the caller-supplied justification for the transition.
func (c AttemptTransitionCommand) Reason() string {
	return c.reason
}

// Actor returns the opaque identifier of whoever requests the transition.
func (c AttemptTransitionCommand) Actor() string {
	return c.actor
}

func (c *AttemptTransitionCommand) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}

	c.itemID = itemID
	return nil
}

func (c *AttemptTransitionCommand) setTarget(target item.State) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}

func (c *AttemptTransitionCommand) setReason(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}

	c.reason = reason
	return nil
}

func (c *AttemptTransitionCommand) setActor(actor string) error {
	if actor == "" {
		return errs.NewValueIsRequiredError("actor")
	}

	c.actor = actor
	return nil
}
