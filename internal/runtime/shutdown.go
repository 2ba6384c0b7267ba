// Package runtime ties process lifetime to a cancellable context and runs
// cleanup (closing the session store, flushing the log file) on exit.
package runtime

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joss/repochat/internal/logging"
)

// ShutdownFunc is a cleanup function called during shutdown
type ShutdownFunc func(ctx context.Context) error

// ShutdownManager handles graceful shutdown of the application
type ShutdownManager struct {
	mu       sync.Mutex
	handlers []namedHandler
	timeout  time.Duration
	ctx      context.Context
	cancel   context.CancelFunc
	done     chan struct{}
	once     sync.Once
	err      error
	log      *logging.Logger
}

type namedHandler struct {
	name string
	fn   ShutdownFunc
}

// DefaultShutdownTimeout bounds all cleanup handlers together
const DefaultShutdownTimeout = 5 * time.Second

// NewShutdownManager creates a new shutdown manager with specified timeout
func NewShutdownManager(timeout time.Duration) *ShutdownManager {
	ctx, cancel := context.WithCancel(context.Background())
	return &ShutdownManager{
		timeout: timeout,
		ctx:     ctx,
		cancel:  cancel,
		done:    make(chan struct{}),
		log:     logging.New("runtime"),
	}
}

// Register adds a cleanup handler to be called during shutdown.
// Handlers run one at a time, last registered first.
func (m *ShutdownManager) Register(name string, fn ShutdownFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers = append(m.handlers, namedHandler{name: name, fn: fn})
}

// RegisterCloser registers c.Close as a handler.
func (m *ShutdownManager) RegisterCloser(name string, c interface{ Close() error }) {
	m.Register(name, func(context.Context) error {
		return c.Close()
	})
}

// Context returns a context that is cancelled when shutdown begins
func (m *ShutdownManager) Context() context.Context {
	return m.ctx
}

// Done returns a channel that's closed when shutdown is complete
func (m *ShutdownManager) Done() <-chan struct{} {
	return m.done
}

// ListenForSignals cancels the context on SIGINT or SIGTERM and then runs
// the handlers. Non-blocking; the returned func stops listening.
func (m *ShutdownManager) ListenForSignals() (stop func()) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	quit := make(chan struct{})

	go func() {
		select {
		case sig := <-sigChan:
			m.log.Info("signal_received", map[string]interface{}{"signal": sig.String()})
			m.Shutdown()
		case <-quit:
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			signal.Stop(sigChan)
			close(quit)
		})
	}
}

// Shutdown runs the handlers once and returns their combined error.
// Later calls wait for the first to finish and return the same error.
func (m *ShutdownManager) Shutdown() error {
	m.once.Do(m.performShutdown)
	<-m.done
	return m.err
}

func (m *ShutdownManager) performShutdown() {
	defer close(m.done)

	m.cancel()

	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()

	m.mu.Lock()
	handlers := make([]namedHandler, len(m.handlers))
	copy(handlers, m.handlers)
	m.mu.Unlock()

	var errs []error
	for i := len(handlers) - 1; i >= 0; i-- {
		h := handlers[i]
		if ctx.Err() != nil {
			errs = append(errs, fmt.Errorf("%s: skipped after timeout", h.name))
			continue
		}

		start := time.Now()
		if err := runHandler(ctx, h.fn); err != nil {
			m.log.Warn("shutdown_handler_failed", map[string]interface{}{"handler": h.name}, err)
			errs = append(errs, fmt.Errorf("%s: %w", h.name, err))
			continue
		}
		m.log.TimedEvent("shutdown_handler", start, map[string]interface{}{"handler": h.name})
	}

	m.err = errors.Join(errs...)
}

// runHandler gives up on fn once ctx expires.
func runHandler(ctx context.Context, fn ShutdownFunc) error {
	res := make(chan error, 1)
	go func() { res <- fn(ctx) }()
	select {
	case err := <-res:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
