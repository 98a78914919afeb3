// Package keylock provides in-process mutual exclusion keyed by string, for
// serializing work on the same entity without a global lock.
package keylock

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Locker hands out per-key exclusive sections. Slots are created on demand and
// dropped when nobody holds or waits for them. The zero value is not usable;
// call New.
type Locker struct {
	mu    sync.Mutex
	slots map[string]*slot
}

type slot struct {
	token chan struct{}
	refs  int
}

func New() *Locker {
	return &Locker{slots: make(map[string]*slot)}
}

// Lock acquires all keys in sorted order. On ctx cancellation the keys taken
// so far are released and ctx's error is returned. The returned unlock func is
// safe to call more than once.
func (l *Locker) Lock(ctx context.Context, keys ...string) (func(), error) {
	keys = Normalize(keys)

	held := make([]string, 0, len(keys))
	for _, k := range keys {
		if err := l.acquire(ctx, k); err != nil {
			l.release(held)
			return nil, fmt.Errorf("lock %s: %w", k, err)
		}
		held = append(held, k)
	}

	var once sync.Once
	return func() {
		once.Do(func() { l.release(held) })
	}, nil
}

// Held reports how many keys currently have a holder or waiter.
func (l *Locker) Held() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.slots)
}

func (l *Locker) acquire(ctx context.Context, key string) error {
	l.mu.Lock()
	s, ok := l.slots[key]
	if !ok {
		s = &slot{token: make(chan struct{}, 1)}
		l.slots[key] = s
	}
	s.refs++
	l.mu.Unlock()

	select {
	case s.token <- struct{}{}:
		return nil
	case <-ctx.Done():
		l.mu.Lock()
		l.unref(key, s)
		l.mu.Unlock()
		return ctx.Err()
	}
}

func (l *Locker) release(keys []string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := len(keys) - 1; i >= 0; i-- {
		s := l.slots[keys[i]]
		<-s.token
		l.unref(keys[i], s)
	}
}

func (l *Locker) unref(key string, s *slot) {
	s.refs--
	if s.refs == 0 {
		delete(l.slots, key)
	}
}

// Normalize sorts keys and drops empty and duplicate entries, so that every
// caller acquires in the same order.
func Normalize(keys []string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if k != "" {
			out = append(out, k)
		}
	}
	sort.Strings(out)

	n := 0
	for i, k := range out {
		if i == 0 || k != out[n-1] {
			out[n] = k
			n++
		}
	}
	return out[:n]
}
