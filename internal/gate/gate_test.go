package gate

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a mutex-guarded manual time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestDoRunsAdmittedAction(t *testing.T) {
	g := New(0, 0)

	ran := false
	err := g.Do(context.Background(), "send mood", func(context.Context) error {
		ran = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, ran)
}

func TestImmediateRepeatIsDebounced(t *testing.T) {
	clock := newFakeClock()
	g := NewWithClock(2*time.Second, 10*time.Millisecond, clock.Now)
	ctx := context.Background()

	require.NoError(t, g.Do(ctx, "send hug", func(context.Context) error { return nil }))

	err := g.Do(ctx, "send hug", func(context.Context) error {
		t.Fatal("debounced action must not run")
		return nil
	})
	assert.ErrorIs(t, err, ErrDebounced)
}

func TestRepeatAdmittedAfterWindows(t *testing.T) {
	clock := newFakeClock()
	g := NewWithClock(2*time.Second, 10*time.Millisecond, clock.Now)
	ctx := context.Background()

	require.NoError(t, g.Do(ctx, "send kiss", func(context.Context) error { return nil }))

	// Past the debounce window, and long enough in real time for the
	// settling cooldown to have expired.
	clock.Advance(3 * time.Second)
	time.Sleep(50 * time.Millisecond)

	err := g.Do(ctx, "send kiss", func(context.Context) error { return nil })
	assert.NoError(t, err)
}

func TestSettlingRejectsEvenPastDebounce(t *testing.T) {
	clock := newFakeClock()
	// Long real-time cooldown keeps the action in Settling for the test.
	g := NewWithClock(time.Millisecond, time.Minute, clock.Now)
	ctx := context.Background()

	require.NoError(t, g.Do(ctx, "send mood", func(context.Context) error { return nil }))
	clock.Advance(time.Hour)

	err := g.Do(ctx, "send mood", func(context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrDebounced)
}

func TestGlobalSlotBlocksOtherActions(t *testing.T) {
	clock := newFakeClock()
	g := NewWithClock(2*time.Second, 10*time.Millisecond, clock.Now)
	ctx := context.Background()

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		done <- g.Do(ctx, "send mood", func(context.Context) error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	// A different action name hits the shared processing slot.
	err := g.Do(ctx, "send hug", func(context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrBusy)

	close(release)
	require.NoError(t, <-done)
}

func TestConcurrentTriggersAdmitExactlyOne(t *testing.T) {
	clock := newFakeClock()
	g := NewWithClock(2*time.Second, 10*time.Millisecond, clock.Now)
	ctx := context.Background()

	var ran atomic.Int32
	var rejected atomic.Int32

	const n = 16
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			err := g.Do(ctx, "send mood", func(context.Context) error {
				ran.Add(1)
				time.Sleep(20 * time.Millisecond)
				return nil
			})
			if err != nil {
				rejected.Add(1)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), ran.Load(), "a burst of triggers admits exactly one send")
	assert.Equal(t, int32(n-1), rejected.Load())
}

func TestFailedActionStillSettles(t *testing.T) {
	clock := newFakeClock()
	g := NewWithClock(2*time.Second, 10*time.Millisecond, clock.Now)
	ctx := context.Background()

	sendErr := errors.New("send failed")
	err := g.Do(ctx, "send mood", func(context.Context) error { return sendErr })
	require.ErrorIs(t, err, sendErr)

	// The slot is free again for other actions.
	assert.NoError(t, g.Do(ctx, "send hug", func(context.Context) error { return nil }))
}
