// filepath: internal/reactive/query.go
package reactive

import (
	"context"
	"reflect"
	"sync"

	"github.com/sirupsen/logrus"
)

// ReadFunc produces the current result of a query against the store.
type ReadFunc[T any] func(ctx context.Context) (T, error)

// Query keeps the result of a ReadFunc current: the read runs once at
// subscription time and again after every committed store write. The
// consumer's listener is invoked only when the result actually changed,
// always from a single goroutine, in commit order.
//
// A read that fails logs the error and leaves the previous result in
// place; the query stays subscribed and recovers on the next write.
type Query[T any] struct {
	broker   *Broker
	read     ReadFunc[T]
	onUpdate func(T)
	logger   *logrus.Logger

	subID  int
	notify chan struct{}
	stop   chan struct{}
	done   sync.WaitGroup

	mu     sync.Mutex
	latest T
	ready  bool
}

// Observe starts a live query. onUpdate may be nil when the consumer
// only polls Latest.
func Observe[T any](broker *Broker, read ReadFunc[T], onUpdate func(T), logger *logrus.Logger) *Query[T] {
	q := &Query[T]{
		broker:   broker,
		read:     read,
		onUpdate: onUpdate,
		logger:   logger,
		stop:     make(chan struct{}),
	}
	q.subID, q.notify = broker.subscribe()

	q.done.Add(1)
	go q.run()
	return q
}

func (q *Query[T]) run() {
	defer q.done.Done()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	q.refresh(ctx)
	for {
		select {
		case <-q.stop:
			return
		case <-q.notify:
			q.refresh(ctx)
		}
	}
}

// refresh re-runs the read and delivers the result if it changed.
func (q *Query[T]) refresh(ctx context.Context) {
	result, err := q.read(ctx)
	if err != nil {
		q.logger.Warnf("Live query read failed, keeping previous result: %v", err)
		return
	}

	q.mu.Lock()
	changed := !q.ready || !reflect.DeepEqual(q.latest, result)
	q.latest = result
	q.ready = true
	q.mu.Unlock()

	if changed && q.onUpdate != nil {
		q.onUpdate(result)
	}
}

// Latest returns the most recent successful result. The boolean is
// false until the first result arrives.
func (q *Query[T]) Latest() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.latest, q.ready
}

// Close cancels the subscription. It blocks until the delivery
// goroutine has exited, so after Close returns no further listener
// invocation happens. Never call it from inside the listener.
func (q *Query[T]) Close() {
	q.broker.unsubscribe(q.subID)
	close(q.stop)
	q.done.Wait()
}
