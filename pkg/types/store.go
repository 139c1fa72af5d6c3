package types

import (
	"context"
	"errors"
)

// Store provides row CRUD over the todos table plus a change-notification
// feed. Implementations are constructed explicitly and injected into the
// API server; there is no ambient package-level handle.
type Store interface {
	// List returns all todos ordered by creation time, newest first.
	List(ctx context.Context) ([]Todo, error)

	// Get retrieves the todo with the given ID.
	// Returns ErrNotFound if no todo exists with that ID.
	Get(ctx context.Context, id string) (Todo, error)

	// Create inserts a new todo with the given content. The store assigns
	// the ID and creation timestamp; IsCompleted starts false.
	// Returns ErrEmptyContent if content is empty or whitespace-only.
	Create(ctx context.Context, content string) (Todo, error)

	// Update applies the supplied fields to an existing todo. Fields not
	// carried by the update are left unchanged.
	// Returns ErrEmptyID, ErrEmptyUpdate, or ErrNotFound as appropriate.
	Update(ctx context.Context, id string, update TodoUpdate) error

	// Delete removes the todo with the given ID.
	// Returns ErrNotFound if no todo exists with that ID.
	Delete(ctx context.Context, id string) error

	// Subscribe registers a change-notification channel. Every committed
	// mutation is published to all subscribers. Slow subscribers miss
	// events rather than block writers.
	Subscribe() <-chan ChangeEvent

	// Unsubscribe removes and closes a channel returned by Subscribe.
	Unsubscribe(ch <-chan ChangeEvent)

	// Close releases store resources. Idempotent; operations after Close
	// return ErrStoreClosed.
	Close() error
}

// Store operation errors.
var (
	ErrNotFound     = errors.New("todo not found")
	ErrEmptyID      = errors.New("id must not be empty")
	ErrEmptyContent = errors.New("content must not be empty")
	ErrEmptyUpdate  = errors.New("update carries no fields")
	ErrStoreClosed  = errors.New("store is closed")
)
