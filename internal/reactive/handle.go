// filepath: internal/reactive/handle.go
package reactive

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Handle owns a Query whose read depends on consumer state (filters,
// selected ids). When the dependency key changes by shallow inequality
// the old subscription is torn down synchronously and a new one starts,
// so two live subscriptions never interleave stale results.
//
// Key elements must be comparable scalars.
type Handle[T any] struct {
	broker   *Broker
	build    func(key []interface{}) ReadFunc[T]
	onUpdate func(T)
	logger   *logrus.Logger

	mu    sync.Mutex
	key   []interface{}
	query *Query[T]
}

// Bind starts a query for the initial key.
func Bind[T any](broker *Broker, key []interface{}, build func(key []interface{}) ReadFunc[T], onUpdate func(T), logger *logrus.Logger) *Handle[T] {
	h := &Handle[T]{
		broker:   broker,
		build:    build,
		onUpdate: onUpdate,
		logger:   logger,
		key:      append([]interface{}(nil), key...),
	}
	h.query = Observe(broker, build(h.key), onUpdate, logger)
	return h
}

// SetKey replaces the dependency key. A key equal to the current one is
// a no-op; otherwise the running query is closed before the replacement
// subscribes.
func (h *Handle[T]) SetKey(key ...interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if shallowEqual(h.key, key) {
		return
	}
	h.key = append([]interface{}(nil), key...)

	h.query.Close()
	h.query = Observe(h.broker, h.build(h.key), h.onUpdate, h.logger)
}

// Latest returns the current query's most recent successful result.
func (h *Handle[T]) Latest() (T, bool) {
	h.mu.Lock()
	q := h.query
	h.mu.Unlock()
	return q.Latest()
}

// Close tears the current query down.
func (h *Handle[T]) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.query.Close()
}

func shallowEqual(a, b []interface{}) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
