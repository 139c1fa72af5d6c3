package state

import (
	"strings"

	"github.com/mesh-intelligence/ticklist/pkg/types"
)

// Filter returns the subsequence of items whose content contains query as
// a case-insensitive substring. Pure and order-preserving: the input is
// never mutated, and an empty query matches everything.
func Filter(items []types.Todo, query string) []types.Todo {
	if query == "" {
		out := make([]types.Todo, len(items))
		copy(out, items)
		return out
	}

	needle := strings.ToLower(query)
	out := []types.Todo{}
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Content), needle) {
			out = append(out, item)
		}
	}
	return out
}
