// Package memory keeps aggregates in process memory behind the same unit of
// work contract as the database adapter. Reads hand out copies and writes are
// staged until Commit, so an aborted operation leaves no trace.
package memory

import (
	"sync"

	"restaurant/internal/core/domain/model/account"
	"restaurant/internal/core/domain/model/answer"
	"restaurant/internal/core/domain/model/feedback"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/rating"
	"restaurant/internal/core/domain/model/user"
	"restaurant/internal/core/ports"
)

// Store is the committed state shared by every unit of work it creates.
type Store struct {
	mu sync.RWMutex

	users    *table[*user.User]
	accounts *table[*account.Account]
	orders   *table[*order.Order]
	feedback *table[*feedback.Feedback]
	ratings  *table[rating.ChefRating]
	scores   *table[*rating.ChefScore]
	answers  *table[*answer.Answer]
}

func NewStore() *Store {
	return &Store{
		users:    newTable((*user.User).Clone),
		accounts: newTable((*account.Account).Clone),
		orders:   newTable((*order.Order).Clone),
		feedback: newTable((*feedback.Feedback).Clone),
		ratings:  newTable(func(r rating.ChefRating) rating.ChefRating { return r }),
		scores:   newTable((*rating.ChefScore).Clone),
		answers:  newTable((*answer.Answer).Clone),
	}
}

// Create starts a fresh unit of work over the store.
func (s *Store) Create() ports.UnitOfWork {
	uow := &UnitOfWork{store: s}
	uow.reset()
	return uow
}

type table[T any] struct {
	clone func(T) T
	rows  map[string]T
}

func newTable[T any](clone func(T) T) *table[T] {
	return &table[T]{clone: clone, rows: make(map[string]T)}
}

// stage buffers the writes of one unit of work against a table.
type stage[T any] struct {
	t       *table[T]
	pending map[string]T
}

func newStage[T any](t *table[T]) *stage[T] {
	return &stage[T]{t: t, pending: make(map[string]T)}
}

// get returns a private copy. The caller holds the store's read lock.
func (s *stage[T]) get(key string) (T, bool) {
	if v, ok := s.pending[key]; ok {
		return s.t.clone(v), true
	}
	if v, ok := s.t.rows[key]; ok {
		return s.t.clone(v), true
	}
	var zero T
	return zero, false
}

func (s *stage[T]) put(key string, v T) {
	s.pending[key] = s.t.clone(v)
}

// all merges committed rows with staged ones. The caller holds the store's
// read lock.
func (s *stage[T]) all() []T {
	out := make([]T, 0, len(s.t.rows)+len(s.pending))
	for k, v := range s.t.rows {
		if _, shadowed := s.pending[k]; shadowed {
			continue
		}
		out = append(out, s.t.clone(v))
	}
	for _, v := range s.pending {
		out = append(out, s.t.clone(v))
	}
	return out
}

// flush moves staged rows into the table. The caller holds the write lock.
func (s *stage[T]) flush() {
	for k, v := range s.pending {
		s.t.rows[k] = v
	}
	clear(s.pending)
}
