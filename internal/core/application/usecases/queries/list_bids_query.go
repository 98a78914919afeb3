package queries

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/guard"
)

var ErrListBidsQueryIsNotConstructed = errors.New(
	"ListBidsQuery must be created via NewListBidsQuery constructor",
)

// ListBidsQuery returns the active bids on an order in submission order, so a
// manager can compare terms before assigning.
type ListBidsQuery struct {
	orderID     kernel.UUID
	managerID   kernel.UUID
	withSettled bool

	guard guard.ConstructorGuard
}

// NewListBidsQuery builds the query. withSettled adds accepted and rejected
// bids, still in submission order.
func NewListBidsQuery(orderID, managerID kernel.UUID, withSettled bool) (ListBidsQuery, error) {
	if err := errors.Join(orderID.Validate(), managerID.Validate()); err != nil {
		return ListBidsQuery{}, err
	}
	return ListBidsQuery{orderID: orderID, managerID: managerID, withSettled: withSettled, guard: guard.NewConstructorGuard()}, nil
}

func (q ListBidsQuery) Validate() error {
	return q.guard.Validate(ErrListBidsQueryIsNotConstructed)
}

func (q ListBidsQuery) OrderID() kernel.UUID { return q.orderID }

func (q ListBidsQuery) ManagerID() kernel.UUID { return q.managerID }

func (q ListBidsQuery) WithSettled() bool { return q.withSettled }
