// Package sqlite implements the SQLite storage backend for ticklist.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/ticklist/pkg/types"
)

// dbFileName is the SQLite database file created inside the data directory.
const dbFileName = "ticklist.db"

// Schema DDL. The table survives restarts; IF NOT EXISTS keeps Open
// idempotent over an existing data directory.
const (
	createTodos = `CREATE TABLE IF NOT EXISTS todos (
    todo_id TEXT PRIMARY KEY,
    content TEXT NOT NULL,
    is_completed INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL
);`

	idxTodosCreated = `CREATE INDEX IF NOT EXISTS idx_todos_created ON todos(created_at);`
)

// Compile-time interface check: Store must implement types.Store.
var _ types.Store = (*Store)(nil)

// Store implements types.Store over a single SQLite database file. Every
// committed mutation is published to subscribers as a ChangeEvent.
type Store struct {
	mu     sync.RWMutex
	closed bool
	db     *sql.DB

	subMu sync.Mutex
	subs  map[<-chan types.ChangeEvent]chan types.ChangeEvent
}

// Open creates the data directory if needed, opens the database, and
// applies the schema. The returned Store is ready for use and must be
// closed by the caller.
func Open(dataDir string) (*Store, error) {
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, dbFileName))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	for _, ddl := range []string{createTodos, idxTodosCreated} {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply schema: %w", err)
		}
	}

	return &Store{
		db:   db,
		subs: make(map[<-chan types.ChangeEvent]chan types.ChangeEvent),
	}, nil
}

// Close releases the database connection and closes all subscriber
// channels. Idempotent: repeated calls succeed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	s.subMu.Lock()
	for _, ch := range s.subs {
		close(ch)
	}
	s.subs = make(map[<-chan types.ChangeEvent]chan types.ChangeEvent)
	s.subMu.Unlock()

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			return err
		}
		s.db = nil
	}
	return nil
}

// Subscribe registers a buffered change-notification channel. The channel
// is closed by Unsubscribe or Close.
func (s *Store) Subscribe() <-chan types.ChangeEvent {
	ch := make(chan types.ChangeEvent, 16)

	s.subMu.Lock()
	s.subs[ch] = ch
	s.subMu.Unlock()

	return ch
}

// Unsubscribe removes and closes a channel returned by Subscribe.
// Unknown channels are ignored.
func (s *Store) Unsubscribe(ch <-chan types.ChangeEvent) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	if inner, ok := s.subs[ch]; ok {
		delete(s.subs, ch)
		close(inner)
	}
}

// publish fans a change event out to all subscribers. Sends never block:
// a subscriber with a full buffer misses the event and is expected to
// catch up on its next full refresh.
func (s *Store) publish(ev types.ChangeEvent) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// guard returns ErrStoreClosed when the store has been closed. The caller
// must hold mu (read or write lock).
func (s *Store) guard() error {
	if s.closed {
		return types.ErrStoreClosed
	}
	return nil
}

// generateUUID generates a new UUID v7 for row IDs.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}
