package commands

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/guard"
)

var ErrReinstateUserCommandIsNotConstructed = errors.New(
	"ReinstateUserCommand must be created via NewReinstateUserCommand constructor",
)

// ReinstateUserCommand lifts a blacklist. Earlier warnings stay on record
// but no longer count.
type ReinstateUserCommand struct { //nolint:recvcheck //using for validation
	userID    kernel.UUID
	managerID kernel.UUID

	guard guard.ConstructorGuard
}

func NewReinstateUserCommand(userID, managerID kernel.UUID) (ReinstateUserCommand, error) {
	if err := errors.Join(userID.Validate(), managerID.Validate()); err != nil {
		return ReinstateUserCommand{}, err
	}
	return ReinstateUserCommand{userID: userID, managerID: managerID, guard: guard.NewConstructorGuard()}, nil
}

func (c ReinstateUserCommand) Validate() error {
	return c.guard.Validate(ErrReinstateUserCommandIsNotConstructed)
}

func (c ReinstateUserCommand) UserID() kernel.UUID { return c.userID }

func (c ReinstateUserCommand) ManagerID() kernel.UUID { return c.managerID }
