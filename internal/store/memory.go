package store

import (
	"context"
	"sync"

	"github.com/joss/repochat/internal/domain"
)

// MemoryStore keeps the session in process memory. It is lost on exit.
type MemoryStore struct {
	mu     sync.Mutex
	tab    string
	data   []byte
	closed bool
}

// Verify MemoryStore implements SessionStore
var _ SessionStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store for tab.
func NewMemoryStore(tab string) (*MemoryStore, error) {
	if tab == "" {
		return nil, ErrInvalidTab
	}
	return &MemoryStore{tab: tab}, nil
}

func (m *MemoryStore) Tab() string { return m.tab }

func (m *MemoryStore) Ping(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	return ctx.Err()
}

func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.data = nil
	return nil
}

// Save stores a serialized copy so later mutation of sess is not observed.
func (m *MemoryStore) Save(ctx context.Context, sess *domain.RepositorySession) error {
	data, err := encodeSession(sess)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.data = data
	return nil
}

func (m *MemoryStore) Load(ctx context.Context) (*domain.RepositorySession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, ErrClosed
	}
	if m.data == nil {
		return nil, NewNotFoundError(m.tab, SessionKey)
	}
	return decodeSession(m.data)
}

func (m *MemoryStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.data = nil
	return nil
}
