package commands

import (
	"context"

	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/services"
)

// orderCompletion runs the bookkeeping that follows an order reaching Closed:
// the customer's lifetime counters grow and VIP eligibility is re-evaluated.
// The caller holds the order and customer locks and owns the transaction.
type orderCompletion struct {
	vip services.VIPEvaluator
}

func (c orderCompletion) apply(ctx context.Context, uow UoW, o *order.Order) error {
	acct, err := uow.AccountRepository().Get(ctx, o.CustomerID())
	if err != nil {
		return err
	}
	if err = acct.RecordCompletedOrder(o.Total()); err != nil {
		return err
	}
	if err = uow.AccountRepository().Update(ctx, acct); err != nil {
		return err
	}

	customer, err := uow.UserRepository().Get(ctx, o.CustomerID())
	if err != nil {
		return err
	}
	accepted, err := uow.FeedbackRepository().CountAcceptedComplaintsAgainst(ctx, customer.ID())
	if err != nil {
		return err
	}

	promoted, err := c.vip.Evaluate(customer, acct, accepted)
	if err != nil {
		return err
	}
	if promoted {
		return uow.UserRepository().Update(ctx, customer)
	}
	return nil
}
