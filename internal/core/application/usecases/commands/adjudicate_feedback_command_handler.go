package commands

import (
	"context"
	"fmt"

	"restaurant/internal/core/domain/model/access"
	"restaurant/internal/core/domain/model/user"
	"restaurant/internal/core/domain/services"
	"restaurant/internal/core/ports"
)

// AdjudicateFeedbackCommandHandler records the manager's decision and, for a
// rejected complaint, runs the warning cascade on the penalized user in the
// same transaction.
type AdjudicateFeedbackCommandHandler struct {
	uowFactory UoWFactory
	gate       Gate
	standing   services.StandingService
}

func NewAdjudicateFeedbackCommandHandler(
	uowFactory UoWFactory,
	gate Gate,
	standing services.StandingService,
) AdjudicateFeedbackCommandHandler {
	return AdjudicateFeedbackCommandHandler{uowFactory: uowFactory, gate: gate, standing: standing}
}

func (h *AdjudicateFeedbackCommandHandler) Handle(ctx context.Context, cmd AdjudicateFeedbackCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	keys, err := h.lockKeys(ctx, cmd)
	if err != nil {
		return err
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

	manager, err := h.gate.actor(ctx, uow.UserRepository(), cmd.ManagerID(), access.Feedback, access.Adjudicate)
	if err != nil {
		return err
	}

	f, err := uow.FeedbackRepository().Get(ctx, cmd.FeedbackID())
	if err != nil {
		return err
	}
	if err = f.Adjudicate(manager.ID(), cmd.Outcome(), cmd.Notes(), now()); err != nil {
		return err
	}
	if err = uow.FeedbackRepository().Update(ctx, f); err != nil {
		return err
	}

	if recipientID, ok := h.standing.WarningRecipientOf(f); ok {
		owner, err := uow.UserRepository().Get(ctx, recipientID)
		if err != nil {
			return err
		}

		feedbackID := f.ID()
		reason := fmt.Sprintf("%s complaint rejected", f.Category())
		change, err := h.standing.IssueWarning(owner, user.NewWarning(&feedbackID, reason, now()))
		if err != nil {
			return err
		}
		if change.Warned {
			if err = uow.UserRepository().Update(ctx, owner); err != nil {
				return err
			}
		}
	}

	return uow.Commit(ctx)
}

// lockKeys takes the feedback key and, when the decision may issue a warning,
// the key of whoever would receive it. Filer and target never change, so a
// read outside the lock is enough to name them.
func (h *AdjudicateFeedbackCommandHandler) lockKeys(ctx context.Context, cmd AdjudicateFeedbackCommand) ([]string, error) {
	keys := []string{ports.FeedbackLockKey(cmd.FeedbackID())}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	f, err := uow.FeedbackRepository().Get(ctx, cmd.FeedbackID())
	if err != nil {
		return nil, err
	}

	if h.standing.Policy() == services.WarnTarget {
		keys = append(keys, ports.UserLockKey(f.TargetID()))
	} else {
		keys = append(keys, ports.UserLockKey(f.FilerID()))
	}

	return keys, nil
}
