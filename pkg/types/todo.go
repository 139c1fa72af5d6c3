package types

import (
	"strings"
	"time"
)

// Todo is the single persisted entity: one task the user wants to track.
// The ID and CreatedAt fields are assigned by the store at creation and
// immutable thereafter; Content and IsCompleted are user-mutable.
type Todo struct {
	ID          string    `json:"id"`
	Content     string    `json:"content"`
	IsCompleted bool      `json:"is_completed"`
	CreatedAt   time.Time `json:"created_at"`
}

// TodoUpdate carries a partial update. A nil field is left unchanged at the
// store; fields are never overwritten with defaults.
type TodoUpdate struct {
	Content     *string `json:"content,omitempty"`
	IsCompleted *bool   `json:"is_completed,omitempty"`
}

// IsZero reports whether the update carries no fields at all.
func (u TodoUpdate) IsZero() bool {
	return u.Content == nil && u.IsCompleted == nil
}

// ValidContent reports whether content is acceptable for persistence:
// non-empty after trimming surrounding whitespace.
func ValidContent(content string) bool {
	return strings.TrimSpace(content) != ""
}
