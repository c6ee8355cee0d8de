package commands

import (
	"errors"

	"lastmile/internal/pkg/guard"
)

var ErrAssignReadyOrdersCommandIsNotConstructed = errors.New(
	"AssignReadyOrdersCommand must be created via NewAssignReadyOrdersCommand constructor",
)

// AssignReadyOrdersCommand triggers one batch dispatch run: every ready
// order is matched against the available fleet and the resulting
// assignments are committed in a single transaction. This is the command
// the cron job fires on its schedule.
type AssignReadyOrdersCommand struct {
	guard guard.ConstructorGuard
}

// NewAssignReadyOrdersCommand creates a command to trigger a dispatch run.
// This is a parameterless command: the batch is whatever is ready when
// the handler executes.
func NewAssignReadyOrdersCommand() AssignReadyOrdersCommand {
	return AssignReadyOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *AssignReadyOrdersCommand) Validate() error {
	return c.guard.Validate(ErrAssignReadyOrdersCommandIsNotConstructed)
}
