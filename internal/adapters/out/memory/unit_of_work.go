package memory

import (
	"context"
	"errors"

	"restaurant/internal/core/domain/model/account"
	"restaurant/internal/core/domain/model/answer"
	"restaurant/internal/core/domain/model/feedback"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/rating"
	"restaurant/internal/core/domain/model/user"
	"restaurant/internal/core/ports"
)

var ErrNoActiveTransaction = errors.New("no active transaction")

// UnitOfWork stages writes until Commit applies them in one step.
type UnitOfWork struct {
	store  *Store
	active bool

	users    *stage[*user.User]
	accounts *stage[*account.Account]
	orders   *stage[*order.Order]
	feedback *stage[*feedback.Feedback]
	ratings  *stage[rating.ChefRating]
	scores   *stage[*rating.ChefScore]
	answers  *stage[*answer.Answer]
}

// Begin is a no-op when a transaction is already open.
func (uow *UnitOfWork) Begin(_ context.Context) error {
	if uow.active {
		return nil
	}
	uow.reset()
	uow.active = true
	return nil
}

func (uow *UnitOfWork) Commit(ctx context.Context) error {
	if !uow.active {
		return ErrNoActiveTransaction
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	uow.store.mu.Lock()
	defer uow.store.mu.Unlock()
	uow.users.flush()
	uow.accounts.flush()
	uow.orders.flush()
	uow.feedback.flush()
	uow.ratings.flush()
	uow.scores.flush()
	uow.answers.flush()

	uow.active = false
	return nil
}

func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if !uow.active {
		return ErrNoActiveTransaction
	}
	uow.reset()
	uow.active = false
	return nil
}

func (uow *UnitOfWork) reset() {
	s := uow.store
	uow.users = newStage(s.users)
	uow.accounts = newStage(s.accounts)
	uow.orders = newStage(s.orders)
	uow.feedback = newStage(s.feedback)
	uow.ratings = newStage(s.ratings)
	uow.scores = newStage(s.scores)
	uow.answers = newStage(s.answers)
}

// check guards repository calls; all access goes through a transaction.
func (uow *UnitOfWork) check() error {
	if !uow.active {
		return ErrNoActiveTransaction
	}
	return nil
}

func (uow *UnitOfWork) UserRepository() ports.UserRepository {
	return &UserRepository{uow: uow}
}

func (uow *UnitOfWork) AccountRepository() ports.AccountRepository {
	return &AccountRepository{uow: uow}
}

func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &OrderRepository{uow: uow}
}

func (uow *UnitOfWork) FeedbackRepository() ports.FeedbackRepository {
	return &FeedbackRepository{uow: uow}
}

func (uow *UnitOfWork) RatingRepository() ports.RatingRepository {
	return &RatingRepository{uow: uow}
}

func (uow *UnitOfWork) AnswerRepository() ports.AnswerRepository {
	return &AnswerRepository{uow: uow}
}
