package commands

import (
	"errors"
	"strings"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/user"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

var ErrCreateUserCommandIsNotConstructed = errors.New(
	"CreateUserCommand must be created via NewCreateUserCommand constructor",
)

// CreateUserCommand registers an actor. Customers and VIPs also get an empty account.
//
// Example:
//
//	cmd, err := NewCreateUserCommand(kernel.NewUUID(), "Ann", user.Customer)
//	if err != nil {
//	    return fmt.Errorf("invalid user data: %w", err)
//	}
//	if err = handler.Handle(ctx, cmd); err != nil {
//	    return err
//	}
type CreateUserCommand struct { //nolint:recvcheck //using for validation
	userID kernel.UUID
	name   string
	role   user.Role

	guard guard.ConstructorGuard
}

func NewCreateUserCommand(userID kernel.UUID, name string, role user.Role) (CreateUserCommand, error) {
	cmd := CreateUserCommand{guard: guard.NewConstructorGuard()}

	name = strings.TrimSpace(name)
	var nameErr error
	if name == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}

	if err := errors.Join(userID.Validate(), nameErr, role.Validate()); err != nil {
		return CreateUserCommand{}, err
	}

	cmd.userID, cmd.name, cmd.role = userID, name, role
	return cmd, nil
}

func (c CreateUserCommand) Validate() error {
	return c.guard.Validate(ErrCreateUserCommandIsNotConstructed)
}

func (c CreateUserCommand) UserID() kernel.UUID { return c.userID }

func (c CreateUserCommand) Name() string { return c.name }

func (c CreateUserCommand) Role() user.Role { return c.role }
