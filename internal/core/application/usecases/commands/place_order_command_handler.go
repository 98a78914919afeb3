package commands

import (
	"context"

	"restaurant/internal/core/domain/model/access"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"
)

// PlaceOrderCommandHandler creates the order and debits the customer in the
// same transaction, so either both happen or neither does. Lifetime counters
// are left alone until the order closes.
type PlaceOrderCommandHandler struct {
	uowFactory UoWFactory
	gate       Gate
}

func NewPlaceOrderCommandHandler(uowFactory UoWFactory, gate Gate) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{uowFactory: uowFactory, gate: gate}
}

// Handle fails with errs.ErrBlacklisted for suspended customers and with
// errs.ErrInsufficientFunds, leaving the balance unchanged, when the balance
// does not cover the total.
func (h *PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	unlock, err := h.gate.lock(ctx, ports.UserLockKey(cmd.CustomerID()))
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

	customer, err := h.gate.actor(ctx, uow.UserRepository(), cmd.CustomerID(), access.Order, access.Place)
	if err != nil {
		return err
	}
	if err = customer.EnsureNotBlacklisted(); err != nil {
		return err
	}

	o, err := order.NewOrder(cmd.OrderID(), customer.ID(), cmd.Items(), now())
	if err != nil {
		return err
	}

	acct, err := uow.AccountRepository().Get(ctx, customer.ID())
	if err != nil {
		return err
	}
	if err = acct.Debit(o.Total()); err != nil {
		return err
	}

	if err = uow.AccountRepository().Update(ctx, acct); err != nil {
		return err
	}
	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
