package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mesh-intelligence/ticklist/pkg/types"
)

// listItem adapts a Todo to bubbles/list.Item.
type listItem struct {
	todo    types.Todo
	editing bool
}

// Implement list.Item interface
func (i listItem) Title() string       { return i.todo.Content }
func (i listItem) Description() string { return "" }
func (i listItem) FilterValue() string { return i.todo.Content }

// itemDelegate renders each todo on a single line.
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}

	box := mutedStyle.Render(boxUnchecked)
	text := it.todo.Content
	if it.todo.IsCompleted {
		box = successStyle.Render(boxChecked)
		text = doneStyle.Render(text)
	}
	if it.editing {
		text += " " + pendingStyle.Render("(editing)")
	}

	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintf(w, "%s%s %s", prefix, box, text)
}
