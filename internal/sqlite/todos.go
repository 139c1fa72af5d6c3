// CRUD operations over the todos table. Rows are hydrated into
// types.Todo; timestamps are stored as RFC 3339 strings in UTC with a
// fixed-width nanosecond fraction so the TEXT column sorts in creation
// order.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/mesh-intelligence/ticklist/pkg/types"
)

// timeLayout always renders nine fractional digits; time.RFC3339Nano
// drops trailing zeros, which would break lexicographic ordering.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// List returns all todos ordered by created_at descending. The todo_id
// tiebreak keeps the order stable for rows created in the same instant.
func (s *Store) List(ctx context.Context) ([]types.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.guard(); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT todo_id, content, is_completed, created_at FROM todos ORDER BY created_at DESC, todo_id DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("listing todos: %w", err)
	}
	defer rows.Close()

	todos := []types.Todo{}
	for rows.Next() {
		todo, err := hydrateTodo(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating todo: %w", err)
		}
		todos = append(todos, todo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating todos: %w", err)
	}
	return todos, nil
}

// Get retrieves a single todo by ID.
func (s *Store) Get(ctx context.Context, id string) (types.Todo, error) {
	if id == "" {
		return types.Todo{}, types.ErrEmptyID
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.guard(); err != nil {
		return types.Todo{}, err
	}

	row := s.db.QueryRowContext(ctx,
		"SELECT todo_id, content, is_completed, created_at FROM todos WHERE todo_id = ?", id,
	)

	var todo types.Todo
	var completed int
	var createdAt string
	if err := row.Scan(&todo.ID, &todo.Content, &completed, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return types.Todo{}, types.ErrNotFound
		}
		return types.Todo{}, fmt.Errorf("getting todo %s: %w", id, err)
	}
	todo.IsCompleted = completed != 0

	parsed, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return types.Todo{}, fmt.Errorf("parsing created_at: %w", err)
	}
	todo.CreatedAt = parsed
	return todo, nil
}

// Create inserts a new todo. The store assigns a UUID v7 ID and the
// creation timestamp; completion starts false.
func (s *Store) Create(ctx context.Context, content string) (types.Todo, error) {
	if !types.ValidContent(content) {
		return types.Todo{}, types.ErrEmptyContent
	}
	content = strings.TrimSpace(content)

	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.guard(); err != nil {
		return types.Todo{}, err
	}

	todo := types.Todo{
		ID:        generateUUID(),
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO todos (todo_id, content, is_completed, created_at) VALUES (?, ?, 0, ?)",
		todo.ID, todo.Content, todo.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return types.Todo{}, fmt.Errorf("inserting todo: %w", err)
	}

	s.publish(types.ChangeEvent{Op: types.OpInsert, ID: todo.ID})
	return todo, nil
}

// Update applies only the fields carried by the update; absent fields keep
// their stored values. Returns ErrNotFound when the ID matches no row.
func (s *Store) Update(ctx context.Context, id string, update types.TodoUpdate) error {
	if id == "" {
		return types.ErrEmptyID
	}
	if update.IsZero() {
		return types.ErrEmptyUpdate
	}
	if update.Content != nil && !types.ValidContent(*update.Content) {
		return types.ErrEmptyContent
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.guard(); err != nil {
		return err
	}

	var sets []string
	var args []any
	if update.Content != nil {
		sets = append(sets, "content = ?")
		args = append(args, strings.TrimSpace(*update.Content))
	}
	if update.IsCompleted != nil {
		sets = append(sets, "is_completed = ?")
		args = append(args, boolToInt(*update.IsCompleted))
	}
	args = append(args, id)

	res, err := s.db.ExecContext(ctx,
		"UPDATE todos SET "+strings.Join(sets, ", ")+" WHERE todo_id = ?", args...,
	)
	if err != nil {
		return fmt.Errorf("updating todo %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if affected == 0 {
		return types.ErrNotFound
	}

	s.publish(types.ChangeEvent{Op: types.OpUpdate, ID: id})
	return nil
}

// Delete removes a todo by ID. Returns ErrNotFound when the ID matches no
// row; the HTTP layer decides whether that is surfaced to callers.
func (s *Store) Delete(ctx context.Context, id string) error {
	if id == "" {
		return types.ErrEmptyID
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.guard(); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, "DELETE FROM todos WHERE todo_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting todo %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if affected == 0 {
		return types.ErrNotFound
	}

	s.publish(types.ChangeEvent{Op: types.OpDelete, ID: id})
	return nil
}

// hydrateTodo converts the current row of a todos query into a types.Todo.
func hydrateTodo(rows *sql.Rows) (types.Todo, error) {
	var todo types.Todo
	var completed int
	var createdAt string
	if err := rows.Scan(&todo.ID, &todo.Content, &completed, &createdAt); err != nil {
		return types.Todo{}, err
	}
	todo.IsCompleted = completed != 0

	parsed, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return types.Todo{}, fmt.Errorf("parsing created_at: %w", err)
	}
	todo.CreatedAt = parsed
	return todo, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
