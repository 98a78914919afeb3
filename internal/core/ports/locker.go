package ports

import (
	"context"

	"restaurant/internal/core/domain/model/kernel"
)

// Locker provides mutual exclusion keyed by entity. Lock acquires every key,
// in sorted order, and returns a func that releases them. Waiting stops when
// ctx is done.
type Locker interface {
	Lock(ctx context.Context, keys ...string) (unlock func(), err error)
}

// Lock keys.
func OrderLockKey(id kernel.UUID) string    { return "order:" + id.String() }
func UserLockKey(id kernel.UUID) string     { return "user:" + id.String() }
func FeedbackLockKey(id kernel.UUID) string { return "feedback:" + id.String() }
func AnswerLockKey(id kernel.UUID) string   { return "answer:" + id.String() }
