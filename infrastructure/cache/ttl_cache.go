// Package cache provides the in-process derived-data cache.
//
// TTLCache is a map guarded by a single mutex. Entries expire when their age
// exceeds their TTL; expired entries are removed lazily on access and
// proactively by an optional background sweeper whose lifecycle is owned by
// the caller (Start/Stop). Clock and ticker are injectable for tests.
package cache

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultSweepInterval is how often the background sweeper scans for expired entries
const DefaultSweepInterval = 30 * time.Second

// Ticker is the subset of time.Ticker used by the sweeper
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFactory creates a Ticker firing every d
type TickerFactory func(d time.Duration) Ticker

type realTicker struct {
	t *time.Ticker
}

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }

func newRealTicker(d time.Duration) Ticker {
	return realTicker{t: time.NewTicker(d)}
}

// Stats is a point-in-time classification of cache entries
type Stats struct {
	TotalEntries   int `json:"totalEntries"`
	ValidEntries   int `json:"validEntries"`
	ExpiredEntries int `json:"expiredEntries"`
}

type options struct {
	now           func() time.Time
	sweepInterval time.Duration
	newTicker     TickerFactory
	logger        *zap.Logger
	onSweep       func(evicted int)
}

// Option configures a TTLCache
type Option func(*options)

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithSweepInterval sets the background sweep period
func WithSweepInterval(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.sweepInterval = d
		}
	}
}

// WithTicker overrides how the sweeper schedules itself
func WithTicker(factory TickerFactory) Option {
	return func(o *options) {
		o.newTicker = factory
	}
}

// WithLogger sets the logger used by the sweeper
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithSweepObserver registers a callback invoked after every background sweep
func WithSweepObserver(fn func(evicted int)) Option {
	return func(o *options) {
		o.onSweep = fn
	}
}

type entry[V any] struct {
	value      V
	insertedAt time.Time
	ttl        time.Duration
}

func (e entry[V]) expired(now time.Time) bool {
	return now.Sub(e.insertedAt) > e.ttl
}

// TTLCache is a generic key-value store with per-entry time-to-live
type TTLCache[K comparable, V any] struct {
	mu    sync.Mutex
	items map[K]entry[V]
	opts  options

	lifecycle sync.Mutex
	stop      chan struct{}
	done      chan struct{}
}

// New creates an empty cache. The sweeper is not running until Start is called.
func New[K comparable, V any](opts ...Option) *TTLCache[K, V] {
	o := options{
		now:           time.Now,
		sweepInterval: DefaultSweepInterval,
		newTicker:     newRealTicker,
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &TTLCache[K, V]{
		items: make(map[K]entry[V]),
		opts:  o,
	}
}

// Set inserts or replaces the value for key and restarts its clock
func (c *TTLCache[K, V]) Set(key K, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = entry[V]{
		value:      value,
		insertedAt: c.opts.now(),
		ttl:        ttl,
	}
}

// Get returns the value for key if present and fresh.
// A stale entry is deleted as a side effect.
func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	item, exists := c.items[key]
	if !exists {
		return zero, false
	}

	if item.expired(c.opts.now()) {
		delete(c.items, key)
		return zero, false
	}

	return item.value, true
}

// Has reports whether Get would find a fresh value, with the same lazy expiry
func (c *TTLCache[K, V]) Has(key K) bool {
	_, ok := c.Get(key)
	return ok
}

// Delete removes key and reports whether it was present
func (c *TTLCache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, exists := c.items[key]
	delete(c.items, key)
	return exists
}

// Clear removes every entry
func (c *TTLCache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[K]entry[V])
}

// Len returns the number of stored entries, stale ones included
func (c *TTLCache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.items)
}

// Stats classifies entries without evicting anything
func (c *TTLCache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.opts.now()
	stats := Stats{TotalEntries: len(c.items)}
	for _, item := range c.items {
		if item.expired(now) {
			stats.ExpiredEntries++
		} else {
			stats.ValidEntries++
		}
	}
	return stats
}

// Sweep evicts every expired entry and returns how many were removed
func (c *TTLCache[K, V]) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.opts.now()
	evicted := 0
	for key, item := range c.items {
		if item.expired(now) {
			delete(c.items, key)
			evicted++
		}
	}
	return evicted
}

// Start launches the background sweeper. It runs until Stop is called or ctx
// is done. Calling Start on a running cache is a no-op.
func (c *TTLCache[K, V]) Start(ctx context.Context) {
	c.lifecycle.Lock()
	defer c.lifecycle.Unlock()

	if c.stop != nil {
		return
	}

	c.stop = make(chan struct{})
	c.done = make(chan struct{})
	ticker := c.opts.newTicker(c.opts.sweepInterval)

	go c.run(ctx, ticker, c.stop, c.done)
}

// Stop halts the sweeper and waits for it to exit
func (c *TTLCache[K, V]) Stop() {
	c.lifecycle.Lock()
	defer c.lifecycle.Unlock()

	if c.stop == nil {
		return
	}

	close(c.stop)
	<-c.done
	c.stop = nil
	c.done = nil
}

func (c *TTLCache[K, V]) run(ctx context.Context, ticker Ticker, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case <-ticker.C():
			evicted := c.Sweep()
			if evicted > 0 {
				c.opts.logger.Debug("Swept expired cache entries", zap.Int("evicted", evicted))
			}
			if c.opts.onSweep != nil {
				c.opts.onSweep(evicted)
			}
		}
	}
}
