// Package dedupe tracks client pick ids so that replayed pick requests are
// applied at most once.
package dedupe

import (
	"container/list"
	"context"
	"sync"
	"sync/atomic"
)

// DefaultMaxSize bounds the tracker when no size is configured.
const DefaultMaxSize = 50_000

// Deduper records the outcome of each pick id per scope (a draft session).
// Callers that need check-then-record to be atomic serialize on the scope
// themselves.
type Deduper[V any] interface {
	// Lookup returns the value recorded for id in scope.
	Lookup(ctx context.Context, scope, id string) (V, bool)

	// Record stores v for id in scope. An id that is already recorded keeps
	// its first value.
	Record(ctx context.Context, scope, id string, v V)

	// Forget drops every id of scope and returns how many were removed.
	Forget(ctx context.Context, scope string) int

	Size() int64
}

type key struct {
	scope string
	id    string
}

type item[V any] struct {
	key   key
	value V
}

// inMemoryDeduper keeps ids in insertion order.
// Bounded mode (maxSize > 0) evicts the oldest id once full.
// Unbounded mode (maxSize <= 0) never evicts.
type inMemoryDeduper[V any] struct {
	mu      sync.Mutex
	seen    map[key]*list.Element
	order   *list.List // front = oldest
	maxSize int
	size    atomic.Int64
}

// NewInMemoryDeduper creates a new in-memory deduper with configuration options.
func NewInMemoryDeduper[V any](opts ...Option) Deduper[V] {
	cfg := settings{maxSize: DefaultMaxSize}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &inMemoryDeduper[V]{
		seen:    make(map[key]*list.Element),
		order:   list.New(),
		maxSize: cfg.maxSize,
	}
}

func (d *inMemoryDeduper[V]) Lookup(_ context.Context, scope, id string) (V, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	el, ok := d.seen[key{scope: scope, id: id}]
	if !ok {
		var zero V
		return zero, false
	}
	return el.Value.(item[V]).value, true
}

func (d *inMemoryDeduper[V]) Record(_ context.Context, scope, id string, v V) {
	d.mu.Lock()
	defer d.mu.Unlock()

	k := key{scope: scope, id: id}
	if _, exists := d.seen[k]; exists {
		return
	}
	if d.maxSize > 0 && d.order.Len() >= d.maxSize {
		d.evictOldest()
	}
	d.seen[k] = d.order.PushBack(item[V]{key: k, value: v})
	d.size.Add(1)
}

func (d *inMemoryDeduper[V]) Forget(_ context.Context, scope string) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	removed := 0
	for el := d.order.Front(); el != nil; {
		next := el.Next()
		if k := el.Value.(item[V]).key; k.scope == scope {
			d.order.Remove(el)
			delete(d.seen, k)
			removed++
		}
		el = next
	}
	d.size.Add(int64(-removed))
	return removed
}

// evictOldest must be called with d.mu held.
func (d *inMemoryDeduper[V]) evictOldest() {
	el := d.order.Front()
	if el == nil {
		return
	}
	d.order.Remove(el)
	delete(d.seen, el.Value.(item[V]).key)
	d.size.Add(-1)
}

// Size returns the current number of recorded ids.
func (d *inMemoryDeduper[V]) Size() int64 {
	return d.size.Load()
}
