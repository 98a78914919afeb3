package commands

import (
	"context"

	"restaurant/internal/core/domain/model/access"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/services"
	"restaurant/internal/core/ports"
)

// AdvanceOrderStatusCommandHandler applies one lifecycle step.
//
// Role checks come from the capability table (action "advance:<Status>"),
// ownership checks from the order itself. Closing an order also settles the
// customer's lifetime counters and VIP status in the same transaction.
type AdvanceOrderStatusCommandHandler struct {
	uowFactory UoWFactory
	gate       Gate
	completion orderCompletion
}

func NewAdvanceOrderStatusCommandHandler(
	uowFactory UoWFactory,
	gate Gate,
	vip services.VIPEvaluator,
) AdvanceOrderStatusCommandHandler {
	return AdvanceOrderStatusCommandHandler{
		uowFactory: uowFactory,
		gate:       gate,
		completion: orderCompletion{vip: vip},
	}
}

func (h *AdvanceOrderStatusCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	keys := []string{ports.OrderLockKey(cmd.OrderID())}
	if cmd.Target() == order.Closed {
		peeked, err := peekOrder(ctx, h.uowFactory, cmd.OrderID())
		if err != nil {
			return err
		}
		keys = append(keys, ports.UserLockKey(peeked.CustomerID()))
	}

	unlock, err := h.gate.lock(ctx, keys...)
	if err != nil {
		return err
	}
	defer unlock()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	// Off-table edges are reported as such whoever asks.
	if err = o.EnsureAdvanceable(cmd.Target()); err != nil {
		return err
	}

	actor, err := h.gate.actor(ctx, uow.UserRepository(), cmd.ActorID(), access.Order, access.AdvanceAction(cmd.Target()))
	if err != nil {
		return err
	}
	if err = o.Advance(actor.ID(), cmd.Target(), now()); err != nil {
		return err
	}

	if o.Status() == order.Closed {
		if err = h.completion.apply(ctx, uow, o); err != nil {
			return err
		}
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
