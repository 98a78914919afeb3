// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// Every handler follows the same sequence: validate the command, take the
// entity locks, open a unit of work, authorize the actor, apply the domain
// rules, persist, commit.
package commands

import (
	"context"

	"restaurant/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	AccountRepoFactory interface {
		AccountRepository() ports.AccountRepository
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	FeedbackRepoFactory interface {
		FeedbackRepository() ports.FeedbackRepository
	}

	RatingRepoFactory interface {
		RatingRepository() ports.RatingRepository
	}

	AnswerRepoFactory interface {
		AnswerRepository() ports.AnswerRepository
	}

	// AccountUoW covers operations on users and their accounts only.
	AccountUoW interface {
		TxManager
		UserRepoFactory
		AccountRepoFactory
	}

	AccountUoWFactory interface {
		Create() AccountUoW
	}

	// AnswerUoW covers assistant answers and the users who rate them.
	AnswerUoW interface {
		TxManager
		UserRepoFactory
		AnswerRepoFactory
	}

	AnswerUoWFactory interface {
		Create() AnswerUoW
	}

	// UoW spans every aggregate. Used by the order lifecycle, bidding and
	// reputation operations, whose cascades touch several aggregates at once.
	UoW interface {
		TxManager
		UserRepoFactory
		AccountRepoFactory
		OrderRepoFactory
		FeedbackRepoFactory
		RatingRepoFactory
		AnswerRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)
