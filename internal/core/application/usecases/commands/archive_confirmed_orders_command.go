package commands

import (
	"errors"

	"parcelflow/internal/pkg/guard"
)

var ErrArchiveConfirmedOrdersCommandIsNotConstructed = errors.New(
	"ArchiveConfirmedOrdersCommand must be created via NewArchiveConfirmedOrdersCommand constructor",
)

// ArchiveConfirmedOrdersCommand moves every confirmed order from the dispatcher's
// live table into the archive. Parameterless; used by the scheduled archive job.
type ArchiveConfirmedOrdersCommand struct {
	guard guard.ConstructorGuard
}

// NewArchiveConfirmedOrdersCommand creates the command.
func NewArchiveConfirmedOrdersCommand() ArchiveConfirmedOrdersCommand {
	return ArchiveConfirmedOrdersCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
func (c ArchiveConfirmedOrdersCommand) Validate() error {
	return c.guard.Validate(ErrArchiveConfirmedOrdersCommandIsNotConstructed)
}
