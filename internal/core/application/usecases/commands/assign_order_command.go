package commands

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/guard"
)

var ErrAssignOrderCommandIsNotConstructed = errors.New(
	"AssignOrderCommand must be created via NewAssignOrderCommand constructor",
)

// AssignOrderCommand records the manager's choice among the active bids.
type AssignOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	managerID kernel.UUID
	bidID     kernel.UUID

	guard guard.ConstructorGuard
}

func NewAssignOrderCommand(orderID, managerID, bidID kernel.UUID) (AssignOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), managerID.Validate(), bidID.Validate()); err != nil {
		return AssignOrderCommand{}, err
	}
	return AssignOrderCommand{
		orderID:   orderID,
		managerID: managerID,
		bidID:     bidID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c AssignOrderCommand) Validate() error {
	return c.guard.Validate(ErrAssignOrderCommandIsNotConstructed)
}

func (c AssignOrderCommand) OrderID() kernel.UUID { return c.orderID }

func (c AssignOrderCommand) ManagerID() kernel.UUID { return c.managerID }

func (c AssignOrderCommand) BidID() kernel.UUID { return c.bidID }
