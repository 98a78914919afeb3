package commands

import (
	"context"

	"restaurant/internal/core/domain/model/access"
	"restaurant/internal/core/ports"
)

// CancelOrderCommandHandler cancels a Placed order and refunds its total in
// full, in one transaction.
type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
	gate       Gate
}

func NewCancelOrderCommandHandler(uowFactory UoWFactory, gate Gate) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{uowFactory: uowFactory, gate: gate}
}

func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	peeked, err := peekOrder(ctx, h.uowFactory, cmd.OrderID())
	if err != nil {
		return err
	}

	unlock, err := h.gate.lock(ctx, ports.OrderLockKey(cmd.OrderID()), ports.UserLockKey(peeked.CustomerID()))
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

	actor, err := h.gate.actor(ctx, uow.UserRepository(), cmd.ActorID(), access.Order, access.Cancel)
	if err != nil {
		return err
	}

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if err = o.Cancel(actor.ID(), actor.Role()); err != nil {
		return err
	}

	acct, err := uow.AccountRepository().Get(ctx, o.CustomerID())
	if err != nil {
		return err
	}
	if err = acct.Refund(o.Total()); err != nil {
		return err
	}

	if err = uow.AccountRepository().Update(ctx, acct); err != nil {
		return err
	}
	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
