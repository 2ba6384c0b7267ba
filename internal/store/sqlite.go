package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/joss/repochat/internal/domain"
)

// SQLiteStore persists the tab cache in a shared sqlite file so a restart
// in the same tab can recover the last session. Rows of other tabs are
// never read or written, only pruned.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	tab    string
	closed atomic.Bool
}

// Verify SQLiteStore implements SessionStore
var _ SessionStore = (*SQLiteStore)(nil)

// NewSQLiteStore opens (creating if needed) the database at path.
func NewSQLiteStore(path, tab string) (*SQLiteStore, error) {
	if tab == "" {
		return nil, ErrInvalidTab
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal=WAL&_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &SQLiteStore{db: db, path: path, tab: tab}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS tab_storage (
		tab_id TEXT NOT NULL,
		key TEXT NOT NULL,
		value TEXT NOT NULL,
		updated_at DATETIME NOT NULL,
		PRIMARY KEY (tab_id, key)
	);

	CREATE INDEX IF NOT EXISTS idx_tab_storage_updated ON tab_storage(updated_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) Tab() string  { return s.tab }
func (s *SQLiteStore) Path() string { return s.path }

func (s *SQLiteStore) Ping(ctx context.Context) error {
	if s.closed.Load() {
		return ErrClosed
	}
	return s.db.PingContext(ctx)
}

func (s *SQLiteStore) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteStore) Save(ctx context.Context, sess *domain.RepositorySession) error {
	if s.closed.Load() {
		return ErrClosed
	}
	data, err := encodeSession(sess)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO tab_storage (tab_id, key, value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(tab_id, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, s.tab, SessionKey, string(data), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context) (*domain.RepositorySession, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM tab_storage WHERE tab_id = ? AND key = ?`,
		s.tab, SessionKey,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NewNotFoundError(s.tab, SessionKey)
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return decodeSession([]byte(value))
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	if s.closed.Load() {
		return ErrClosed
	}
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM tab_storage WHERE tab_id = ? AND key = ?`,
		s.tab, SessionKey,
	)
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Prune removes entries of other tabs untouched for longer than maxAge and
// returns how many rows were dropped. The store's own tab is kept.
func (s *SQLiteStore) Prune(ctx context.Context, maxAge time.Duration) (int64, error) {
	if s.closed.Load() {
		return 0, ErrClosed
	}
	cutoff := time.Now().UTC().Add(-maxAge)
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM tab_storage WHERE tab_id != ? AND updated_at < ?`,
		s.tab, cutoff,
	)
	if err != nil {
		return 0, fmt.Errorf("prune sessions: %w", err)
	}
	return res.RowsAffected()
}
