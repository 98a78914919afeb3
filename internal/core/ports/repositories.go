// Package ports defines the contracts between the restaurant core and its
// infrastructure: persistence, locking, authorization and the assistant.
package ports

import (
	"context"
	"time"

	"restaurant/internal/core/domain/model/account"
	"restaurant/internal/core/domain/model/answer"
	"restaurant/internal/core/domain/model/feedback"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/rating"
	"restaurant/internal/core/domain/model/user"
)

// UserRepository persists users together with their warning log.
type UserRepository interface {
	Add(ctx context.Context, aggregate *user.User) error
	Update(ctx context.Context, aggregate *user.User) error

	// Get returns errs.ErrObjectNotFound for unknown ids and
	// errs.ErrStorageFailure for records that fail to restore.
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)
}

// AccountRepository persists accounts keyed by owner.
type AccountRepository interface {
	Add(ctx context.Context, aggregate *account.Account) error
	Update(ctx context.Context, aggregate *account.Account) error
	Get(ctx context.Context, ownerID kernel.UUID) (*account.Account, error)
}

// OrderRepository persists orders with their line items and bids.
type OrderRepository interface {
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes status, assignments and the full bid list; bids missing
	// from the aggregate are removed.
	Update(ctx context.Context, aggregate *order.Order) error

	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ListDeliveredBefore returns orders in Delivered status whose delivery
	// time is not after cutoff, oldest first.
	ListDeliveredBefore(ctx context.Context, cutoff time.Time) ([]*order.Order, error)
}

// FeedbackRepository persists complaints and compliments.
type FeedbackRepository interface {
	Add(ctx context.Context, aggregate *feedback.Feedback) error
	Update(ctx context.Context, aggregate *feedback.Feedback) error
	Get(ctx context.Context, id kernel.UUID) (*feedback.Feedback, error)

	// ExistsForFilerAndOrder enforces one feedback per (filer, order).
	ExistsForFilerAndOrder(ctx context.Context, filerID, orderID kernel.UUID) (bool, error)

	// CountAcceptedComplaintsAgainst counts accepted complaints whose target is userID.
	CountAcceptedComplaintsAgainst(ctx context.Context, userID kernel.UUID) (int, error)

	// CountPendingForOrder counts feedback on the order still awaiting adjudication.
	CountPendingForOrder(ctx context.Context, orderID kernel.UUID) (int, error)

	// ListPending returns pending feedback, oldest first.
	ListPending(ctx context.Context) ([]*feedback.Feedback, error)
}

// RatingRepository persists chef ratings and the running score per chef.
type RatingRepository interface {
	AddRating(ctx context.Context, r rating.ChefRating) error

	// GetByOrder returns errs.ErrObjectNotFound when the order is unrated.
	GetByOrder(ctx context.Context, orderID kernel.UUID) (rating.ChefRating, error)

	// GetScore returns an empty score for chefs without ratings.
	GetScore(ctx context.Context, chefID kernel.UUID) (*rating.ChefScore, error)
	SaveScore(ctx context.Context, score *rating.ChefScore) error
}

// AnswerRepository persists assistant answers.
type AnswerRepository interface {
	Add(ctx context.Context, aggregate *answer.Answer) error
	Update(ctx context.Context, aggregate *answer.Answer) error
	Get(ctx context.Context, id kernel.UUID) (*answer.Answer, error)

	// ListFlagged returns answers awaiting review, oldest first.
	ListFlagged(ctx context.Context) ([]*answer.Answer, error)
}
