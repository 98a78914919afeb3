package commands

import (
	"context"
	"errors"

	"restaurant/internal/core/domain/model/access"
	"restaurant/internal/core/domain/model/rating"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"
)

// RateChefCommandHandler stores a rating and folds it into the chef's running
// score. The chef key is locked too, since ratings from different orders
// update the same score.
type RateChefCommandHandler struct {
	uowFactory UoWFactory
	gate       Gate
}

func NewRateChefCommandHandler(uowFactory UoWFactory, gate Gate) RateChefCommandHandler {
	return RateChefCommandHandler{uowFactory: uowFactory, gate: gate}
}

func (h *RateChefCommandHandler) Handle(ctx context.Context, cmd RateChefCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	peeked, err := peekOrder(ctx, h.uowFactory, cmd.OrderID())
	if err != nil {
		return err
	}
	// The chef is fixed once an order is ratable, so the peeked id names the
	// score this rating will update.
	if err = peeked.EnsureRatableBy(cmd.CustomerID()); err != nil {
		return err
	}

	unlock, err := h.gate.lock(ctx, ports.OrderLockKey(cmd.OrderID()), ports.UserLockKey(*peeked.ChefID()))
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

	customer, err := h.gate.actor(ctx, uow.UserRepository(), cmd.CustomerID(), access.Rating, access.Submit)
	if err != nil {
		return err
	}

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if err = o.EnsureRatableBy(customer.ID()); err != nil {
		return err
	}

	_, err = uow.RatingRepository().GetByOrder(ctx, o.ID())
	switch {
	case err == nil:
		return errs.NewAlreadyRatedError(o.ID())
	case !errors.Is(err, errs.ErrObjectNotFound):
		return err
	}

	r, err := rating.NewChefRating(o.ID(), *o.ChefID(), customer.ID(), cmd.Stars(), now())
	if err != nil {
		return err
	}

	score, err := uow.RatingRepository().GetScore(ctx, r.ChefID())
	if err != nil {
		return err
	}
	if err = score.Record(r); err != nil {
		return err
	}

	if err = uow.RatingRepository().AddRating(ctx, r); err != nil {
		return err
	}
	if err = uow.RatingRepository().SaveScore(ctx, score); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
