package commands

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

var ErrDepositCommandIsNotConstructed = errors.New(
	"DepositCommand must be created via NewDepositCommand constructor",
)

// DepositCommand credits a customer's own account.
type DepositCommand struct { //nolint:recvcheck //using for validation
	ownerID kernel.UUID
	amount  kernel.Money

	guard guard.ConstructorGuard
}

func NewDepositCommand(ownerID kernel.UUID, amount kernel.Money) (DepositCommand, error) {
	if err := ownerID.Validate(); err != nil {
		return DepositCommand{}, err
	}
	if !amount.IsPositive() {
		return DepositCommand{}, errs.NewValueIsInvalidError("amount must be greater than 0")
	}

	return DepositCommand{ownerID: ownerID, amount: amount, guard: guard.NewConstructorGuard()}, nil
}

func (c DepositCommand) Validate() error {
	return c.guard.Validate(ErrDepositCommandIsNotConstructed)
}

func (c DepositCommand) OwnerID() kernel.UUID { return c.ownerID }

func (c DepositCommand) Amount() kernel.Money { return c.amount }
