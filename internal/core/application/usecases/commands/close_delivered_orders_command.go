package commands

import (
	"errors"
	"time"

	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

var ErrCloseDeliveredOrdersCommandIsNotConstructed = errors.New(
	"CloseDeliveredOrdersCommand must be created via NewCloseDeliveredOrdersCommand constructor",
)

// CloseDeliveredOrdersCommand closes, on behalf of the system, every order
// that was delivered at least window before asOf and has no feedback still
// awaiting a decision.
type CloseDeliveredOrdersCommand struct { //nolint:recvcheck //using for validation
	asOf   time.Time
	window time.Duration

	guard guard.ConstructorGuard
}

func NewCloseDeliveredOrdersCommand(asOf time.Time, window time.Duration) (CloseDeliveredOrdersCommand, error) {
	if asOf.IsZero() {
		return CloseDeliveredOrdersCommand{}, errs.NewValueIsRequiredError("asOf")
	}
	if window < 0 {
		return CloseDeliveredOrdersCommand{}, errs.NewValueIsInvalidError("window")
	}
	return CloseDeliveredOrdersCommand{asOf: asOf, window: window, guard: guard.NewConstructorGuard()}, nil
}

func (c CloseDeliveredOrdersCommand) Validate() error {
	return c.guard.Validate(ErrCloseDeliveredOrdersCommandIsNotConstructed)
}

// Cutoff is the latest delivery time that qualifies for closing.
func (c CloseDeliveredOrdersCommand) Cutoff() time.Time {
	return c.asOf.Add(-c.window)
}
