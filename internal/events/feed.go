// Package events broadcasts ordered collection snapshots to live observers.
package events

import "sync"

// Feed fans a snapshot out to every open subscription. Publish never blocks:
// each subscription buffers one snapshot and a newer one replaces an unread
// older one.
type Feed[T any] struct {
	mu     sync.Mutex
	subs   map[*Subscription[T]]struct{}
	closed bool
}

type Subscription[T any] struct {
	C    <-chan []T
	ch   chan []T
	feed *Feed[T]
	once sync.Once

	// delivered is guarded by feed.mu.
	delivered bool
}

func NewFeed[T any]() *Feed[T] {
	return &Feed[T]{subs: make(map[*Subscription[T]]struct{})}
}

// Subscribe registers a new observer. When the feed is already closed the
// returned subscription's channel is closed too.
func (feed *Feed[T]) Subscribe() *Subscription[T] {
	ch := make(chan []T, 1)
	sub := &Subscription[T]{C: ch, ch: ch, feed: feed}

	feed.mu.Lock()
	defer feed.mu.Unlock()
	if feed.closed {
		close(ch)
		return sub
	}
	feed.subs[sub] = struct{}{}
	return sub
}

// Publish delivers snapshot to every subscription and returns how many were
// notified. Subscribers share the slice and must not modify it.
func (feed *Feed[T]) Publish(snapshot []T) int {
	feed.mu.Lock()
	defer feed.mu.Unlock()
	if feed.closed {
		return 0
	}
	for sub := range feed.subs {
		sub.offer(snapshot)
	}
	return len(feed.subs)
}

// Deliver primes a new subscription with the current state. It does nothing
// once the subscription has received any snapshot, since a published one is
// at least as fresh.
func (feed *Feed[T]) Deliver(sub *Subscription[T], snapshot []T) {
	feed.mu.Lock()
	defer feed.mu.Unlock()
	if _, ok := feed.subs[sub]; !ok || sub.delivered {
		return
	}
	sub.offer(snapshot)
}

func (feed *Feed[T]) Len() int {
	feed.mu.Lock()
	defer feed.mu.Unlock()
	return len(feed.subs)
}

// Close detaches and closes every subscription.
func (feed *Feed[T]) Close() {
	feed.mu.Lock()
	defer feed.mu.Unlock()
	if feed.closed {
		return
	}
	feed.closed = true
	for sub := range feed.subs {
		delete(feed.subs, sub)
		close(sub.ch)
	}
}

// offer must be called with the feed lock held.
func (sub *Subscription[T]) offer(snapshot []T) {
	select {
	case <-sub.ch:
	default:
	}
	sub.ch <- snapshot
	sub.delivered = true
}

// Close detaches the subscription and closes its channel. Safe to call more
// than once.
func (sub *Subscription[T]) Close() {
	sub.once.Do(func() {
		sub.feed.mu.Lock()
		defer sub.feed.mu.Unlock()
		if _, ok := sub.feed.subs[sub]; ok {
			delete(sub.feed.subs, sub)
			close(sub.ch)
		}
	})
}
