package state

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mesh-intelligence/ticklist/pkg/types"
)

func TestFilter(t *testing.T) {
	items := []types.Todo{
		{ID: "1", Content: "buy milk"},
		{ID: "2", Content: "Walk the dog"},
		{ID: "3", Content: "MILK the cow"},
	}

	tests := []struct {
		name    string
		query   string
		wantIDs []string
	}{
		{name: "empty query matches everything", query: "", wantIDs: []string{"1", "2", "3"}},
		{name: "uppercase query lowercase content", query: "BUY", wantIDs: []string{"1"}},
		{name: "substring across items", query: "milk", wantIDs: []string{"1", "3"}},
		{name: "mid-word substring", query: "alk", wantIDs: []string{"2"}},
		{name: "no match", query: "zebra", wantIDs: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(items, tt.query)
			ids := []string{}
			for _, todo := range got {
				ids = append(ids, todo.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	items := []types.Todo{
		{ID: "1", Content: "alpha"},
		{ID: "2", Content: "beta"},
	}

	got := Filter(items, "beta")
	got[0].Content = "changed"

	assert.Equal(t, "alpha", items[0].Content)
	assert.Equal(t, "beta", items[1].Content)
}
