package commands

import (
	"context"

	"restaurant/internal/core/domain/model/access"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/services"
	"restaurant/internal/core/ports"
)

// AssignOrderCommandHandler hands a ready order to the chosen bidder.
//
// The read-decide-write sequence runs under the order lock, so the bids it
// sees are exactly the bids that exist when the assignment is recorded.
type AssignOrderCommandHandler struct {
	uowFactory UoWFactory
	gate       Gate
	dispatcher services.OrderDispatcher
}

func NewAssignOrderCommandHandler(
	uowFactory UoWFactory,
	gate Gate,
	dispatcher services.OrderDispatcher,
) AssignOrderCommandHandler {
	return AssignOrderCommandHandler{uowFactory: uowFactory, gate: gate, dispatcher: dispatcher}
}

func (h *AssignOrderCommandHandler) Handle(ctx context.Context, cmd AssignOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	keys := []string{ports.OrderLockKey(cmd.OrderID())}
	peeked, err := peekOrder(ctx, h.uowFactory, cmd.OrderID())
	if err != nil {
		return err
	}
	// A bid's author never changes, so the peeked bidder is safe to lock on.
	var bidderID kernel.UUID
	if bidderID, err = h.dispatcher.BidderOf(peeked, cmd.BidID()); err == nil {
		keys = append(keys, ports.UserLockKey(bidderID))
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

	if _, err = h.gate.actor(ctx, uow.UserRepository(), cmd.ManagerID(), access.Bid, access.Assign); err != nil {
		return err
	}

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	deliveryID, err := h.dispatcher.BidderOf(o, cmd.BidID())
	if err != nil {
		return err
	}
	bidder, err := uow.UserRepository().Get(ctx, deliveryID)
	if err != nil {
		return err
	}

	if _, err = h.dispatcher.Dispatch(o, cmd.BidID(), bidder); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
