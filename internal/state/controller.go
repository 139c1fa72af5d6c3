// Package state implements the client-side state controller: the
// canonical in-memory todo list, the draft being composed or edited, the
// last error message, and the edit-mode state machine. User-initiated
// writes are reconciled by patching the matching item in place; external
// change notifications trigger a wholesale Refresh. Both derive from the
// same store, so a notification arriving right after a local patch simply
// re-asserts the same data.
//
// The controller serves a single logical consumer and is not safe for
// concurrent use. It issues one call per user action with no sequencing
// token; when actions race, the last response to land wins.
package state

import (
	"context"
	"errors"
	"strings"

	"github.com/mesh-intelligence/ticklist/pkg/types"
)

// API is the subset of server operations the controller drives.
type API interface {
	List(ctx context.Context) ([]types.Todo, error)
	Create(ctx context.Context, content string) (types.Todo, error)
	Update(ctx context.Context, id string, update types.TodoUpdate) error
	Delete(ctx context.Context, id string) error
}

// Local submission rejections. These never reach the server.
var (
	ErrEmptyDraft     = errors.New("Todo cannot be empty")
	ErrDuplicateDraft = errors.New("Todo already exists")
)

// Controller holds client state and reconciles API responses into it.
type Controller struct {
	api API

	items     []types.Todo
	draft     string
	errMsg    string
	editingID string // "" means idle
}

// NewController returns a Controller over the given API with no items
// loaded; call Refresh to populate it.
func NewController(api API) *Controller {
	return &Controller{api: api}
}

// Refresh fetches the full list and replaces the local items wholesale.
// This is the authoritative resync used at startup and whenever an
// external change notification arrives; no merge against current items.
func (c *Controller) Refresh(ctx context.Context) error {
	todos, err := c.api.List(ctx)
	if err != nil {
		c.errMsg = err.Error()
		return err
	}
	c.items = todos
	return nil
}

// SetDraft replaces the draft text. A stale error is cleared as soon as
// the user types again.
func (c *Controller) SetDraft(draft string) {
	c.draft = draft
	if c.errMsg != "" {
		c.errMsg = ""
	}
}

// Submit commits the draft: an update of the item under edit, or a create
// when idle. Locally rejected drafts (empty or duplicate) never reach the
// server. On success the draft and error are cleared; a failed submission
// preserves both so the user's input is not discarded.
func (c *Controller) Submit(ctx context.Context) error {
	trimmed := strings.TrimSpace(c.draft)
	if trimmed == "" {
		c.errMsg = ErrEmptyDraft.Error()
		return ErrEmptyDraft
	}

	// Advisory duplicate guard. It deliberately checks the item being
	// edited as well: resubmitting an item's own content is a duplicate.
	for _, item := range c.items {
		if strings.EqualFold(item.Content, trimmed) {
			c.errMsg = ErrDuplicateDraft.Error()
			return ErrDuplicateDraft
		}
	}

	if c.editingID != "" {
		if err := c.api.Update(ctx, c.editingID, types.TodoUpdate{Content: &trimmed}); err != nil {
			c.errMsg = err.Error()
			return err
		}
		for i := range c.items {
			if c.items[i].ID == c.editingID {
				c.items[i].Content = trimmed
				break
			}
		}
		c.editingID = ""
	} else {
		todo, err := c.api.Create(ctx, trimmed)
		if err != nil {
			c.errMsg = err.Error()
			return err
		}
		// The created todo is newest by creation time, so it goes first.
		c.items = append([]types.Todo{todo}, c.items...)
	}

	c.draft = ""
	c.errMsg = ""
	return nil
}

// Toggle flips the completion flag of the item with the given id. On
// success the item is patched in place; no refetch.
func (c *Controller) Toggle(ctx context.Context, id string) error {
	idx := c.indexOf(id)
	if idx < 0 {
		return types.ErrNotFound
	}

	flipped := !c.items[idx].IsCompleted
	if err := c.api.Update(ctx, id, types.TodoUpdate{IsCompleted: &flipped}); err != nil {
		c.errMsg = err.Error()
		return err
	}
	c.items[idx].IsCompleted = flipped
	return nil
}

// Remove deletes the item with the given id and drops it from the local
// list on success.
func (c *Controller) Remove(ctx context.Context, id string) error {
	if err := c.api.Delete(ctx, id); err != nil {
		c.errMsg = err.Error()
		return err
	}

	if idx := c.indexOf(id); idx >= 0 {
		c.items = append(c.items[:idx], c.items[idx+1:]...)
	}
	return nil
}

// ToggleEdit enters or exits edit mode for an item. Invoked on the item
// already under edit it exits and clears the draft; invoked on any other
// item it switches the edit target there and seeds the draft with that
// item's content. Only one item is ever under edit.
func (c *Controller) ToggleEdit(id string) {
	if c.editingID == id {
		c.editingID = ""
		c.draft = ""
		return
	}

	idx := c.indexOf(id)
	if idx < 0 {
		return
	}
	c.editingID = id
	c.draft = c.items[idx].Content
}

// Items returns a copy of the canonical list, newest first.
func (c *Controller) Items() []types.Todo {
	items := make([]types.Todo, len(c.items))
	copy(items, c.items)
	return items
}

// Draft returns the in-progress text.
func (c *Controller) Draft() string { return c.draft }

// Err returns the last user-visible error message, or "".
func (c *Controller) Err() string { return c.errMsg }

// EditingID returns the id of the item under edit, or "" when idle.
func (c *Controller) EditingID() string { return c.editingID }

func (c *Controller) indexOf(id string) int {
	for i := range c.items {
		if c.items[i].ID == id {
			return i
		}
	}
	return -1
}
