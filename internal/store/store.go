// Package store keeps the tab-scoped copy of the current repository session.
// It is a cache, not a source of truth: one serialized RepositorySession per
// tab, overwritten wholesale on every analysis and never partially updated.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/joss/repochat/internal/domain"
)

// SessionKey is the well-known key the session is stored under.
const SessionKey = "repoInfo"

// Store is the minimal interface all stores implement.
type Store interface {
	// Ping verifies the backing storage is usable.
	Ping(ctx context.Context) error
	// Close releases any resources held by the store.
	Close() error
}

// SessionStore holds at most one RepositorySession for a single tab.
type SessionStore interface {
	Store
	// Tab returns the tab identifier this store is scoped to.
	Tab() string
	// Save replaces the cached session.
	Save(ctx context.Context, sess *domain.RepositorySession) error
	// Load returns the cached session or a NotFoundError.
	Load(ctx context.Context) (*domain.RepositorySession, error)
	// Clear drops the cached session. Clearing an empty tab is not an error.
	Clear(ctx context.Context) error
}

// Kind selects a SessionStore implementation.
type Kind string

const (
	KindSQLite Kind = "sqlite"
	KindMemory Kind = "memory"
)

// Options configures Open.
type Options struct {
	Kind Kind
	// Path is the sqlite database file. Ignored for memory stores.
	Path string
	// Tab scopes every read and write.
	Tab string
	// TTL drops sessions of other tabs that have not been written for this
	// long. Zero disables pruning.
	TTL time.Duration
}

// Open returns the SessionStore selected by opts.
func Open(ctx context.Context, opts Options) (SessionStore, error) {
	switch opts.Kind {
	case KindMemory:
		return NewMemoryStore(opts.Tab)
	case KindSQLite, "":
		s, err := NewSQLiteStore(opts.Path, opts.Tab)
		if err != nil {
			return nil, err
		}
		if opts.TTL > 0 {
			if _, err := s.Prune(ctx, opts.TTL); err != nil {
				_ = s.Close()
				return nil, err
			}
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown store kind %q", opts.Kind)
}

func encodeSession(sess *domain.RepositorySession) ([]byte, error) {
	if sess == nil {
		return nil, fmt.Errorf("encode session: nil session")
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	return data, nil
}

func decodeSession(data []byte) (*domain.RepositorySession, error) {
	var sess domain.RepositorySession
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &sess, nil
}
