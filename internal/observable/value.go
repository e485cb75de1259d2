// Package observable provides a value slot whose changes are published to
// subscribers.
package observable

import "sync"

// Value holds the latest T. Set commits the new value first and then calls
// every subscriber synchronously, in subscription order, outside the lock; a
// subscriber may therefore read the value or set it again.
//
// Notifications from concurrent Set calls are not ordered relative to each
// other, so a subscriber's last-seen value can differ from Get. Callers that
// need the two to agree must Set from a single goroutine.
type Value[T any] struct {
	mu     sync.RWMutex
	value  T
	nextID int
	subs   []subscriber[T]
}

type subscriber[T any] struct {
	id int
	fn func(T)
}

func New[T any](initial T) *Value[T] {
	return &Value[T]{value: initial}
}

func (v *Value[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.value
}

func (v *Value[T]) Set(value T) {
	v.mu.Lock()
	v.value = value
	subs := make([]subscriber[T], len(v.subs))
	copy(subs, v.subs)
	v.mu.Unlock()

	for _, s := range subs {
		s.fn(value)
	}
}

// Subscribe registers fn for future changes and returns a function that
// removes it.
func (v *Value[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	v.mu.Lock()
	defer v.mu.Unlock()
	id := v.nextID
	v.nextID++
	v.subs = append(v.subs, subscriber[T]{id: id, fn: fn})
	return func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		for i, s := range v.subs {
			if s.id == id {
				v.subs = append(v.subs[:i:i], v.subs[i+1:]...)
				return
			}
		}
	}
}

// Updates delivers changes on a channel until done is closed, then closes the
// channel. The channel is buffered by size; when a reader falls behind, new
// values are dropped rather than blocking Set.
func (v *Value[T]) Updates(done <-chan struct{}, size int) <-chan T {
	ch := make(chan T, max(size, 1))
	var (
		mu     sync.Mutex
		closed bool
	)
	unsubscribe := v.Subscribe(func(value T) {
		mu.Lock()
		defer mu.Unlock()
		// a Set that copied the subscriber list before unsubscribe can still land here
		if closed {
			return
		}
		select {
		case ch <- value:
		default:
		}
	})
	go func() {
		<-done
		unsubscribe()
		mu.Lock()
		closed = true
		close(ch)
		mu.Unlock()
	}()
	return ch
}
