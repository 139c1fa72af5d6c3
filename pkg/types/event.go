package types

// Change operations reported on the notification feed.
const (
	OpInsert = "insert"
	OpUpdate = "update"
	OpDelete = "delete"
)

// ChangeEvent announces that the todos table changed. It names the row and
// operation but not the client that caused it; consumers are expected to
// re-fetch the full list rather than apply the event incrementally.
type ChangeEvent struct {
	Op string `json:"op"`
	ID string `json:"id"`
}
