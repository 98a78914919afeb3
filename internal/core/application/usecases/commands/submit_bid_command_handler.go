package commands

import (
	"context"

	"restaurant/internal/core/domain/model/access"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"
)

// SubmitBidCommandHandler records a bid under the order lock, so no bid can
// slip in after an assignment is recorded.
type SubmitBidCommandHandler struct {
	uowFactory UoWFactory
	gate       Gate
}

func NewSubmitBidCommandHandler(uowFactory UoWFactory, gate Gate) SubmitBidCommandHandler {
	return SubmitBidCommandHandler{uowFactory: uowFactory, gate: gate}
}

// Handle fails with errs.ErrBlacklisted for suspended delivery persons and
// errs.ErrOrderNotBiddable unless the order is ReadyForPickup.
func (h *SubmitBidCommandHandler) Handle(ctx context.Context, cmd SubmitBidCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	unlock, err := h.gate.lock(ctx, ports.OrderLockKey(cmd.OrderID()), ports.UserLockKey(cmd.DeliveryID()))
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

	bidder, err := h.gate.actor(ctx, uow.UserRepository(), cmd.DeliveryID(), access.Bid, access.Submit)
	if err != nil {
		return err
	}
	if err = bidder.EnsureNotBlacklisted(); err != nil {
		return err
	}

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	bid, err := order.NewBid(cmd.BidID(), bidder.ID(), cmd.Terms(), now())
	if err != nil {
		return err
	}
	if err = o.SubmitBid(bid); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
