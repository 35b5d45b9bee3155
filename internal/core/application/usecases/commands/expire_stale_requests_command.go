package commands

import (
	"errors"

	"freight/internal/pkg/guard"
)

var ErrExpireStaleRequestsCommandIsNotConstructed = errors.New(
	"ExpireStaleRequestsCommand must be created via NewExpireStaleRequestsCommand constructor",
)

// ExpireStaleRequestsCommand cancels every request that reached its scheduled time
// without a winning bid. It is issued periodically by the expiry job.
type ExpireStaleRequestsCommand struct {
	guard guard.ConstructorGuard
}

func NewExpireStaleRequestsCommand() ExpireStaleRequestsCommand {
	return ExpireStaleRequestsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

func (c *ExpireStaleRequestsCommand) Validate() error {
	return c.guard.Validate(ErrExpireStaleRequestsCommandIsNotConstructed)
}
