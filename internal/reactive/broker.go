// filepath: internal/reactive/broker.go
package reactive

import "sync"

// Broker fans committed-write notifications out to live queries. The
// granularity is store-wide: every subscriber is woken for every commit
// regardless of which tables its read touches, so queries never miss a
// change at the cost of some spurious re-reads.
type Broker struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan struct{}
}

func NewBroker() *Broker {
	return &Broker{subs: make(map[int]chan struct{})}
}

// Publish wakes every live query. The table names are accepted to
// satisfy the store's publisher contract; they are not used for
// routing.
func (b *Broker) Publish(tables ...string) {
	_ = tables

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		// Non-blocking: a pending token already guarantees a re-read of
		// the latest committed state.
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// subscribe registers a wakeup channel and returns its id.
func (b *Broker) subscribe() (int, chan struct{}) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	ch := make(chan struct{}, 1)
	b.subs[id] = ch
	return id, ch
}

func (b *Broker) unsubscribe(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subs, id)
}

// SubscriberCount reports the number of live subscriptions.
func (b *Broker) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
