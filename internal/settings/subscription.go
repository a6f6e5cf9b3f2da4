package settings

import (
	"slices"
	"sync"
)

// Subscription is the handle returned by Subscribe. Once Close returns the
// callback is never invoked again.
type Subscription struct {
	store *Store
	key   string
	id    int
	fn    func()

	mu     sync.Mutex
	closed bool
}

// Subscribe registers fn to be called after key changes.
// fn must not close its own subscription.
func (s *Store) Subscribe(key string, fn func()) *Subscription {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	s.nextID++
	sub := &Subscription{
		store: s,
		key:   key,
		id:    s.nextID,
		fn:    fn,
	}
	if s.subs[key] == nil {
		s.subs[key] = make(map[int]*Subscription)
	}
	s.subs[key][sub.id] = sub
	return sub
}

// Close releases the subscription. Safe to call more than once.
func (sub *Subscription) Close() {
	if sub == nil {
		return
	}

	sub.mu.Lock()
	sub.closed = true
	sub.mu.Unlock()

	s := sub.store
	s.subMu.Lock()
	delete(s.subs[sub.key], sub.id)
	if len(s.subs[sub.key]) == 0 {
		delete(s.subs, sub.key)
	}
	s.subMu.Unlock()
}

func (sub *Subscription) fire() {
	sub.mu.Lock()
	defer sub.mu.Unlock()
	if sub.closed {
		return
	}
	sub.fn()
}

// notify calls every subscriber of key in registration order
func (s *Store) notify(key string) {
	s.subMu.Lock()
	subs := make([]*Subscription, 0, len(s.subs[key]))
	for _, sub := range s.subs[key] {
		subs = append(subs, sub)
	}
	s.subMu.Unlock()

	slices.SortFunc(subs, func(a, b *Subscription) int { return a.id - b.id })
	for _, sub := range subs {
		sub.fire()
	}
}
