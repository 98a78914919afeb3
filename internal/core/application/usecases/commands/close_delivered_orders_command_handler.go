package commands

import (
	"context"
	"errors"
	"fmt"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/services"
	"restaurant/internal/core/ports"
)

// CloseDeliveredOrdersCommandHandler is the system actor for Delivered -> Closed.
// Each order is closed in its own transaction; a failure on one order does not
// stop the others.
type CloseDeliveredOrdersCommandHandler struct {
	uowFactory UoWFactory
	gate       Gate
	completion orderCompletion
}

func NewCloseDeliveredOrdersCommandHandler(
	uowFactory UoWFactory,
	gate Gate,
	vip services.VIPEvaluator,
) CloseDeliveredOrdersCommandHandler {
	return CloseDeliveredOrdersCommandHandler{
		uowFactory: uowFactory,
		gate:       gate,
		completion: orderCompletion{vip: vip},
	}
}

// Handle returns how many orders were closed.
func (h *CloseDeliveredOrdersCommandHandler) Handle(ctx context.Context, cmd CloseDeliveredOrdersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	candidates, err := h.candidates(ctx, cmd)
	if err != nil {
		return 0, err
	}

	closed := 0
	var errList []error
	for _, c := range candidates {
		if err = ctx.Err(); err != nil {
			errList = append(errList, err)
			break
		}

		ok, err := h.closeOne(ctx, c.ID(), c.CustomerID(), cmd)
		if err != nil {
			errList = append(errList, fmt.Errorf("order %s: %w", c.ID(), err))
			continue
		}
		if ok {
			closed++
		}
	}

	return closed, errors.Join(errList...)
}

func (h *CloseDeliveredOrdersCommandHandler) candidates(ctx context.Context, cmd CloseDeliveredOrdersCommand) ([]*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.OrderRepository().ListDeliveredBefore(ctx, cmd.Cutoff())
}

// closeOne re-reads the order under lock; it may have changed since listing.
func (h *CloseDeliveredOrdersCommandHandler) closeOne(
	ctx context.Context,
	orderID, customerID kernel.UUID,
	cmd CloseDeliveredOrdersCommand,
) (bool, error) {
	unlock, err := h.gate.lock(ctx, ports.OrderLockKey(orderID), ports.UserLockKey(customerID))
	if err != nil {
		return false, err
	}
	defer unlock()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return false, err
	}
	if o.Status() != order.Delivered || o.DeliveredAt() == nil || o.DeliveredAt().After(cmd.Cutoff()) {
		return false, nil
	}

	pending, err := uow.FeedbackRepository().CountPendingForOrder(ctx, orderID)
	if err != nil {
		return false, err
	}
	if pending > 0 {
		return false, nil
	}

	if err = o.Close(); err != nil {
		return false, err
	}
	if err = h.completion.apply(ctx, uow, o); err != nil {
		return false, err
	}
	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}
