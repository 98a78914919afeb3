package commands

import (
	"context"

	"restaurant/internal/core/domain/model/access"
	"restaurant/internal/core/domain/model/feedback"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"
)

// FileFeedbackCommandHandler records Pending feedback. The order lock
// serializes filings on the same order, which keeps the one-per-(filer, order)
// rule race free.
type FileFeedbackCommandHandler struct {
	uowFactory UoWFactory
	gate       Gate
}

func NewFileFeedbackCommandHandler(uowFactory UoWFactory, gate Gate) FileFeedbackCommandHandler {
	return FileFeedbackCommandHandler{uowFactory: uowFactory, gate: gate}
}

func (h *FileFeedbackCommandHandler) Handle(ctx context.Context, cmd FileFeedbackCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	unlock, err := h.gate.lock(ctx, ports.OrderLockKey(cmd.OrderID()))
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

	filer, err := h.gate.actor(ctx, uow.UserRepository(), cmd.FilerID(), access.Feedback, access.File)
	if err != nil {
		return err
	}

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if err = o.EnsureFeedbackAllowed(filer.ID()); err != nil {
		return err
	}

	if _, err = uow.UserRepository().Get(ctx, cmd.TargetID()); err != nil {
		return err
	}
	if !o.IsParticipant(cmd.TargetID()) {
		return errs.NewValueIsInvalidErrorWithCause("targetId",
			errs.NewObjectNotFoundError("participant", cmd.TargetID().String()))
	}

	exists, err := uow.FeedbackRepository().ExistsForFilerAndOrder(ctx, filer.ID(), o.ID())
	if err != nil {
		return err
	}
	if exists {
		return errs.NewAlreadyFiledError(filer.ID(), o.ID())
	}

	f, err := feedback.NewFeedback(
		cmd.FeedbackID(),
		filer.ID(),
		cmd.TargetID(),
		o.ID(),
		cmd.Kind(),
		cmd.Category(),
		cmd.Description(),
		now(),
	)
	if err != nil {
		return err
	}

	if err = uow.FeedbackRepository().Add(ctx, f); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
