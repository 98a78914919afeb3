package memory

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"restaurant/internal/core/domain/model/account"
	"restaurant/internal/core/domain/model/answer"
	"restaurant/internal/core/domain/model/feedback"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/rating"
	"restaurant/internal/core/domain/model/user"
	"restaurant/internal/pkg/errs"
)

func alreadyExists(entity string, id kernel.UUID) error {
	return errs.NewValueIsInvalidErrorWithCause(entity, fmt.Errorf("%s %s already exists", entity, id))
}

// insert stages v under key unless the key is already taken.
func insert[T any](uow *UnitOfWork, st *stage[T], entity string, id kernel.UUID, v T) error {
	if err := uow.check(); err != nil {
		return err
	}
	uow.store.mu.RLock()
	_, exists := st.get(id.String())
	uow.store.mu.RUnlock()
	if exists {
		return alreadyExists(entity, id)
	}
	st.put(id.String(), v)
	return nil
}

// replace stages v under key, which must already exist.
func replace[T any](uow *UnitOfWork, st *stage[T], entity string, id kernel.UUID, v T) error {
	if err := uow.check(); err != nil {
		return err
	}
	uow.store.mu.RLock()
	_, exists := st.get(id.String())
	uow.store.mu.RUnlock()
	if !exists {
		return errs.NewObjectNotFoundError(entity, id.String())
	}
	st.put(id.String(), v)
	return nil
}

func fetch[T any](uow *UnitOfWork, st *stage[T], entity string, id kernel.UUID) (T, error) {
	var zero T
	if err := uow.check(); err != nil {
		return zero, err
	}
	if err := id.Validate(); err != nil {
		return zero, err
	}
	uow.store.mu.RLock()
	v, ok := st.get(id.String())
	uow.store.mu.RUnlock()
	if !ok {
		return zero, errs.NewObjectNotFoundError(entity, id.String())
	}
	return v, nil
}

func scan[T any](uow *UnitOfWork, st *stage[T]) ([]T, error) {
	if err := uow.check(); err != nil {
		return nil, err
	}
	uow.store.mu.RLock()
	defer uow.store.mu.RUnlock()
	return st.all(), nil
}

type UserRepository struct {
	uow *UnitOfWork
}

func (r *UserRepository) Add(_ context.Context, aggregate *user.User) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return insert(r.uow, r.uow.users, "user", aggregate.ID(), aggregate)
}

func (r *UserRepository) Update(_ context.Context, aggregate *user.User) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return replace(r.uow, r.uow.users, "user", aggregate.ID(), aggregate)
}

func (r *UserRepository) Get(_ context.Context, id kernel.UUID) (*user.User, error) {
	return fetch(r.uow, r.uow.users, "user", id)
}

type AccountRepository struct {
	uow *UnitOfWork
}

func (r *AccountRepository) Add(_ context.Context, aggregate *account.Account) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return insert(r.uow, r.uow.accounts, "account", aggregate.OwnerID(), aggregate)
}

func (r *AccountRepository) Update(_ context.Context, aggregate *account.Account) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return replace(r.uow, r.uow.accounts, "account", aggregate.OwnerID(), aggregate)
}

func (r *AccountRepository) Get(_ context.Context, ownerID kernel.UUID) (*account.Account, error) {
	return fetch(r.uow, r.uow.accounts, "account", ownerID)
}

type OrderRepository struct {
	uow *UnitOfWork
}

func (r *OrderRepository) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return insert(r.uow, r.uow.orders, "order", aggregate.ID(), aggregate)
}

func (r *OrderRepository) Update(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return replace(r.uow, r.uow.orders, "order", aggregate.ID(), aggregate)
}

func (r *OrderRepository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	return fetch(r.uow, r.uow.orders, "order", id)
}

func (r *OrderRepository) ListDeliveredBefore(_ context.Context, cutoff time.Time) ([]*order.Order, error) {
	all, err := scan(r.uow, r.uow.orders)
	if err != nil {
		return nil, err
	}

	out := slices.DeleteFunc(all, func(o *order.Order) bool {
		return o.Status() != order.Delivered || o.DeliveredAt() == nil || o.DeliveredAt().After(cutoff)
	})
	slices.SortFunc(out, func(a, b *order.Order) int {
		if c := a.DeliveredAt().Compare(*b.DeliveredAt()); c != 0 {
			return c
		}
		return compareIDs(a.ID(), b.ID())
	})
	return out, nil
}

type FeedbackRepository struct {
	uow *UnitOfWork
}

func (r *FeedbackRepository) Add(ctx context.Context, aggregate *feedback.Feedback) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	exists, err := r.ExistsForFilerAndOrder(ctx, aggregate.FilerID(), aggregate.OrderID())
	if err != nil {
		return err
	}
	if exists {
		return errs.NewAlreadyFiledError(aggregate.FilerID(), aggregate.OrderID())
	}
	return insert(r.uow, r.uow.feedback, "feedback", aggregate.ID(), aggregate)
}

func (r *FeedbackRepository) Update(_ context.Context, aggregate *feedback.Feedback) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return replace(r.uow, r.uow.feedback, "feedback", aggregate.ID(), aggregate)
}

func (r *FeedbackRepository) Get(_ context.Context, id kernel.UUID) (*feedback.Feedback, error) {
	return fetch(r.uow, r.uow.feedback, "feedback", id)
}

func (r *FeedbackRepository) ExistsForFilerAndOrder(_ context.Context, filerID, orderID kernel.UUID) (bool, error) {
	n, err := r.count(func(f *feedback.Feedback) bool {
		return f.FilerID().IsEqual(filerID) && f.OrderID().IsEqual(orderID)
	})
	return n > 0, err
}

func (r *FeedbackRepository) CountAcceptedComplaintsAgainst(_ context.Context, userID kernel.UUID) (int, error) {
	return r.count(func(f *feedback.Feedback) bool {
		return f.Kind() == feedback.Complaint && f.Status() == feedback.Accepted && f.TargetID().IsEqual(userID)
	})
}

func (r *FeedbackRepository) CountPendingForOrder(_ context.Context, orderID kernel.UUID) (int, error) {
	return r.count(func(f *feedback.Feedback) bool {
		return f.IsPending() && f.OrderID().IsEqual(orderID)
	})
}

func (r *FeedbackRepository) ListPending(_ context.Context) ([]*feedback.Feedback, error) {
	all, err := scan(r.uow, r.uow.feedback)
	if err != nil {
		return nil, err
	}

	out := slices.DeleteFunc(all, func(f *feedback.Feedback) bool { return !f.IsPending() })
	slices.SortFunc(out, func(a, b *feedback.Feedback) int {
		if c := a.FiledAt().Compare(b.FiledAt()); c != 0 {
			return c
		}
		return compareIDs(a.ID(), b.ID())
	})
	return out, nil
}

func (r *FeedbackRepository) count(match func(*feedback.Feedback) bool) (int, error) {
	all, err := scan(r.uow, r.uow.feedback)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, f := range all {
		if match(f) {
			n++
		}
	}
	return n, nil
}

type RatingRepository struct {
	uow *UnitOfWork
}

func (r *RatingRepository) AddRating(_ context.Context, cr rating.ChefRating) error {
	if err := cr.OrderID().Validate(); err != nil {
		return err
	}
	return insert(r.uow, r.uow.ratings, "rating", cr.OrderID(), cr)
}

func (r *RatingRepository) GetByOrder(_ context.Context, orderID kernel.UUID) (rating.ChefRating, error) {
	return fetch(r.uow, r.uow.ratings, "rating", orderID)
}

func (r *RatingRepository) GetScore(_ context.Context, chefID kernel.UUID) (*rating.ChefScore, error) {
	score, err := fetch(r.uow, r.uow.scores, "score", chefID)
	if err == nil {
		return score, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}
	return rating.NewChefScore(chefID)
}

func (r *RatingRepository) SaveScore(_ context.Context, score *rating.ChefScore) error {
	if err := r.uow.check(); err != nil {
		return err
	}
	if err := score.ChefID().Validate(); err != nil {
		return err
	}
	r.uow.scores.put(score.ChefID().String(), score)
	return nil
}

type AnswerRepository struct {
	uow *UnitOfWork
}

func (r *AnswerRepository) Add(_ context.Context, aggregate *answer.Answer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return insert(r.uow, r.uow.answers, "answer", aggregate.ID(), aggregate)
}

func (r *AnswerRepository) Update(_ context.Context, aggregate *answer.Answer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return replace(r.uow, r.uow.answers, "answer", aggregate.ID(), aggregate)
}

func (r *AnswerRepository) Get(_ context.Context, id kernel.UUID) (*answer.Answer, error) {
	return fetch(r.uow, r.uow.answers, "answer", id)
}

func (r *AnswerRepository) ListFlagged(_ context.Context) ([]*answer.Answer, error) {
	all, err := scan(r.uow, r.uow.answers)
	if err != nil {
		return nil, err
	}

	out := slices.DeleteFunc(all, func(a *answer.Answer) bool { return !a.IsFlagged() })
	slices.SortFunc(out, func(a, b *answer.Answer) int {
		if c := a.AskedAt().Compare(b.AskedAt()); c != 0 {
			return c
		}
		return compareIDs(a.ID(), b.ID())
	})
	return out, nil
}

func compareIDs(a, b kernel.UUID) int {
	switch as, bs := a.String(), b.String(); {
	case as < bs:
		return -1
	case as > bs:
		return 1
	default:
		return 0
	}
}
