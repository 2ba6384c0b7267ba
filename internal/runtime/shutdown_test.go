package runtime

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joss/repochat/internal/logging"
)

func TestMain(m *testing.M) {
	logging.SetOutput(io.Discard)
	m.Run()
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func TestNewShutdownManager(t *testing.T) {
	m := NewShutdownManager(5 * time.Second)
	require.NotNil(t, m)
	assert.Equal(t, 5*time.Second, m.timeout)
	assert.NoError(t, m.Context().Err())
}

func TestShutdownManager_Register(t *testing.T) {
	m := NewShutdownManager(time.Second)
	var called int32

	m.Register("test-handler", func(ctx context.Context) error {
		atomic.AddInt32(&called, 1)
		return nil
	})

	assert.NoError(t, m.Shutdown())
	assert.EqualValues(t, 1, atomic.LoadInt32(&called))
}

func TestShutdownManager_RegisterCloser(t *testing.T) {
	m := NewShutdownManager(time.Second)
	closed := false
	m.RegisterCloser("store", closerFunc(func() error {
		closed = true
		return nil
	}))

	require.NoError(t, m.Shutdown())
	assert.True(t, closed)
}

func TestShutdownManager_LIFO(t *testing.T) {
	m := NewShutdownManager(time.Second)
	var order []int

	for i := 1; i <= 3; i++ {
		i := i
		m.Register("h", func(context.Context) error {
			order = append(order, i)
			return nil
		})
	}

	require.NoError(t, m.Shutdown())
	assert.Equal(t, []int{3, 2, 1}, order)
}

func TestShutdownManager_Context(t *testing.T) {
	m := NewShutdownManager(time.Second)
	ctx := m.Context()

	m.Shutdown()

	select {
	case <-ctx.Done():
	default:
		t.Fatal("context should be cancelled after shutdown")
	}
}

func TestShutdownManager_Done(t *testing.T) {
	m := NewShutdownManager(time.Second)
	go m.Shutdown()

	select {
	case <-m.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("shutdown did not complete")
	}
}

func TestShutdownManager_Timeout(t *testing.T) {
	m := NewShutdownManager(50 * time.Millisecond)
	m.Register("fast", func(context.Context) error { return nil })
	m.Register("slow", func(ctx context.Context) error {
		time.Sleep(time.Second)
		return nil
	})

	start := time.Now()
	err := m.Shutdown()

	assert.Less(t, time.Since(start), 500*time.Millisecond)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), "fast: skipped after timeout")
}

func TestShutdownManager_ErrorHandling(t *testing.T) {
	m := NewShutdownManager(time.Second)
	boom := errors.New("boom")
	ran := false

	m.Register("after", func(context.Context) error {
		ran = true
		return nil
	})
	m.Register("failing", func(context.Context) error { return boom })

	err := m.Shutdown()
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failing: boom")
	assert.True(t, ran, "a failing handler does not stop the rest")
}

func TestShutdownManager_OnlyOnce(t *testing.T) {
	m := NewShutdownManager(time.Second)
	var count int32
	m.Register("counter", func(context.Context) error {
		atomic.AddInt32(&count, 1)
		return nil
	})

	m.Shutdown()
	m.Shutdown()
	m.Shutdown()

	assert.EqualValues(t, 1, atomic.LoadInt32(&count))
}

func TestListenForSignalsStop(t *testing.T) {
	m := NewShutdownManager(time.Second)
	stop := m.ListenForSignals()
	stop()
	stop()
	assert.NoError(t, m.Context().Err())
}
