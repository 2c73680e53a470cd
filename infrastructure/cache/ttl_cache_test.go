package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 8, 25, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fakeTicker struct {
	ch      chan time.Time
	stopped chan struct{}
	once    sync.Once
}

func newFakeTicker() *fakeTicker {
	return &fakeTicker{ch: make(chan time.Time), stopped: make(chan struct{})}
}

func (t *fakeTicker) C() <-chan time.Time { return t.ch }
func (t *fakeTicker) Stop()               { t.once.Do(func() { close(t.stopped) }) }

func TestTTLCache_GetWithinAndPastTTL(t *testing.T) {
	clock := newFakeClock()
	c := New[string, int](WithClock(clock.Now))

	c.Set("k", 42, time.Second)

	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, 42, got)

	// Age equal to the TTL is still fresh
	clock.Advance(time.Second)
	assert.True(t, c.Has("k"))

	clock.Advance(time.Millisecond)
	_, ok = c.Get("k")
	assert.False(t, ok)
	assert.False(t, c.Has("k"))
	assert.Equal(t, 0, c.Len(), "stale read should delete the entry")
}

func TestTTLCache_HasTriggersLazyExpiry(t *testing.T) {
	clock := newFakeClock()
	c := New[string, string](WithClock(clock.Now))

	c.Set("k", "v", time.Second)
	clock.Advance(2 * time.Second)

	assert.Equal(t, 1, c.Len())
	assert.False(t, c.Has("k"))
	assert.Equal(t, 0, c.Len())
}

func TestTTLCache_SetResetsClock(t *testing.T) {
	clock := newFakeClock()
	c := New[string, int](WithClock(clock.Now))

	c.Set("k", 1, time.Second)
	clock.Advance(900 * time.Millisecond)
	c.Set("k", 2, time.Second)
	clock.Advance(900 * time.Millisecond)

	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, 2, got)
}

func TestTTLCache_GetDoesNotRefreshTTL(t *testing.T) {
	clock := newFakeClock()
	c := New[string, int](WithClock(clock.Now))

	c.Set("k", 1, time.Second)
	clock.Advance(800 * time.Millisecond)
	_, ok := c.Get("k")
	require.True(t, ok)

	clock.Advance(800 * time.Millisecond)
	_, ok = c.Get("k")
	assert.False(t, ok)
}

func TestTTLCache_Delete(t *testing.T) {
	c := New[string, int]()

	c.Set("k", 1, time.Minute)

	assert.True(t, c.Delete("k"))
	assert.False(t, c.Delete("k"))
	assert.False(t, c.Has("k"))
}

func TestTTLCache_StatsDoesNotEvict(t *testing.T) {
	clock := newFakeClock()
	c := New[string, int](WithClock(clock.Now))

	c.Set("short", 1, time.Second)
	c.Set("long", 2, time.Minute)

	assert.Equal(t, Stats{TotalEntries: 2, ValidEntries: 2, ExpiredEntries: 0}, c.Stats())

	clock.Advance(2 * time.Second)

	assert.Equal(t, Stats{TotalEntries: 2, ValidEntries: 1, ExpiredEntries: 1}, c.Stats())
	assert.Equal(t, Stats{TotalEntries: 2, ValidEntries: 1, ExpiredEntries: 1}, c.Stats())
	assert.Equal(t, 2, c.Len())
}

func TestTTLCache_Sweep(t *testing.T) {
	clock := newFakeClock()
	c := New[string, int](WithClock(clock.Now))

	c.Set("a", 1, time.Second)
	c.Set("b", 2, time.Second)
	c.Set("c", 3, time.Hour)
	clock.Advance(5 * time.Second)

	assert.Equal(t, 2, c.Sweep())
	assert.Equal(t, Stats{TotalEntries: 1, ValidEntries: 1}, c.Stats())
	assert.Equal(t, 0, c.Sweep())
}

func TestTTLCache_Clear(t *testing.T) {
	c := New[int, int]()
	for i := 0; i < 5; i++ {
		c.Set(i, i, time.Minute)
	}

	c.Clear()

	assert.Equal(t, 0, c.Len())
}

func TestTTLCache_BackgroundSweeper(t *testing.T) {
	clock := newFakeClock()
	ticker := newFakeTicker()
	swept := make(chan int, 1)

	var interval time.Duration
	c := New[string, int](
		WithClock(clock.Now),
		WithSweepInterval(10*time.Second),
		WithTicker(func(d time.Duration) Ticker {
			interval = d
			return ticker
		}),
		WithSweepObserver(func(evicted int) { swept <- evicted }),
	)

	c.Set("stale", 1, time.Second)
	c.Set("fresh", 2, time.Hour)

	c.Start(context.Background())
	assert.Equal(t, 10*time.Second, interval)

	clock.Advance(2 * time.Second)
	ticker.ch <- clock.Now()

	select {
	case evicted := <-swept:
		assert.Equal(t, 1, evicted)
	case <-time.After(time.Second):
		t.Fatal("sweep did not run")
	}
	assert.Equal(t, 1, c.Len())

	c.Stop()
	select {
	case <-ticker.stopped:
	default:
		t.Fatal("ticker was not stopped")
	}

	// Stop is idempotent
	c.Stop()
}

func TestTTLCache_SweeperStopsWithContext(t *testing.T) {
	ticker := newFakeTicker()
	c := New[string, int](WithTicker(func(time.Duration) Ticker { return ticker }))

	ctx, cancel := context.WithCancel(context.Background())
	c.Start(ctx)
	cancel()

	select {
	case <-ticker.stopped:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not exit on context cancellation")
	}
	c.Stop()
}

func TestTTLCache_StartTwiceIsNoop(t *testing.T) {
	created := 0
	c := New[string, int](WithTicker(func(time.Duration) Ticker {
		created++
		return newFakeTicker()
	}))

	c.Start(context.Background())
	c.Start(context.Background())
	c.Stop()

	assert.Equal(t, 1, created)
}

func TestTTLCache_ConcurrentAccess(t *testing.T) {
	c := New[string, int]()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i%10)
			c.Set(key, i, time.Minute)
			c.Get(key)
			c.Has(key)
			c.Stats()
			c.Sweep()
			if i%7 == 0 {
				c.Delete(key)
			}
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Len(), 10)
}
