// Package tui renders the todo list in the terminal. All state lives in
// the controller; the model derives its view from the controller's items
// and the search query, and re-syncs whenever a change notification
// arrives from the server.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mesh-intelligence/ticklist/internal/state"
	"github.com/mesh-intelligence/ticklist/pkg/types"
)

// changeMsg carries a server-side change notification into Update.
type changeMsg types.ChangeEvent

// watchClosedMsg reports that the change feed went away.
type watchClosedMsg struct{}

// Model is the Bubble Tea model over the state controller.
type Model struct {
	ctrl   *state.Controller
	events <-chan types.ChangeEvent

	list  list.Model
	input textinput.Model // shared text input for compose & edit

	composing bool
	searching bool
	query     string
	feedDown  bool
}

// New builds the model. The events channel may be nil when no live feed
// is available; the UI then only reflects this client's own actions.
func New(ctrl *state.Controller, events <-chan types.ChangeEvent) Model {
	l := list.New(nil, itemDelegate{}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false) // filtering goes through state.Filter

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Something you have to do"
	ti.CharLimit = 200

	m := Model{ctrl: ctrl, events: events, list: l, input: ti}
	m.syncList()
	return m
}

func (m Model) Init() tea.Cmd {
	return m.waitForChange()
}

// waitForChange blocks on the change feed and converts the next event
// into a message. Re-issued after every delivery.
func (m Model) waitForChange() tea.Cmd {
	if m.events == nil {
		return nil
	}
	events := m.events
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return watchClosedMsg{}
		}
		return changeMsg(ev)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case changeMsg:
		// Whatever changed, resync the whole list from the server.
		_ = m.ctrl.Refresh(context.Background())
		m.syncList()
		return m, m.waitForChange()

	case watchClosedMsg:
		m.feedDown = true
		return m, nil

	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-2, msg.Height-6)
		return m, nil

	case tea.KeyMsg:
		if m.composing {
			return m.updateComposing(msg)
		}
		if m.searching {
			return m.updateSearching(msg)
		}
		return m.updateBrowsing(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateComposing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if err := m.ctrl.Submit(context.Background()); err != nil {
			// Draft and error stay put; keep composing.
			return m, nil
		}
		m.composing = false
		m.input.SetValue("")
		m.input.Blur()
		m.syncList()
		return m, nil
	case "esc":
		if id := m.ctrl.EditingID(); id != "" {
			m.ctrl.ToggleEdit(id) // exit edit mode, clears the draft
		} else {
			m.ctrl.SetDraft("")
		}
		m.composing = false
		m.input.SetValue("")
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.ctrl.SetDraft(m.input.Value())
	return m, cmd
}

func (m Model) updateSearching(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.input.Blur()
		return m, nil
	case "esc":
		m.searching = false
		m.query = ""
		m.input.SetValue("")
		m.input.Blur()
		m.syncList()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.query = m.input.Value()
	m.syncList()
	return m, cmd
}

func (m Model) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "a":
		m.composing = true
		m.input.SetValue("")
		m.input.Placeholder = "Something you have to do"
		m.input.Focus()
		m.ctrl.SetDraft("")
		return m, nil

	case "e":
		if it, ok := m.selected(); ok {
			m.ctrl.ToggleEdit(it.todo.ID)
			if m.ctrl.EditingID() == "" {
				// Toggled off the item that was being edited.
				m.syncList()
				return m, nil
			}
			m.composing = true
			m.input.SetValue(m.ctrl.Draft())
			m.input.CursorEnd()
			m.input.Placeholder = "Edit your todo"
			m.input.Focus()
			m.syncList()
		}
		return m, nil

	case " ":
		if it, ok := m.selected(); ok {
			_ = m.ctrl.Toggle(context.Background(), it.todo.ID)
			m.syncList()
		}
		return m, nil

	case "d":
		if it, ok := m.selected(); ok {
			_ = m.ctrl.Remove(context.Background(), it.todo.ID)
			m.syncList()
		}
		return m, nil

	case "/":
		m.searching = true
		m.input.SetValue(m.query)
		m.input.Placeholder = "Search..."
		m.input.Focus()
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// selected returns the item under the cursor.
func (m Model) selected() (listItem, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	return it, ok
}

// syncList rebuilds the visible list from the controller's canonical
// items narrowed by the search query.
func (m *Model) syncList() {
	visible := state.Filter(m.ctrl.Items(), m.query)
	editingID := m.ctrl.EditingID()

	items := make([]list.Item, 0, len(visible))
	for _, todo := range visible {
		items = append(items, listItem{todo: todo, editing: todo.ID == editingID})
	}
	m.list.SetItems(items)
}

func (m Model) View() string {
	items := m.ctrl.Items()
	done := 0
	for _, todo := range items {
		if todo.IsCompleted {
			done++
		}
	}

	header := fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		titleStyle.Render("Todo lists"),
		successStyle.Render("✔"), done,
		pendingStyle.Render("•"), len(items)-done,
		accentStyle.Render("Total"), len(items),
	)
	if m.query != "" {
		header += "   " + mutedStyle.Render("filter: "+m.query)
	}
	if m.feedDown {
		header += "   " + errorStyle.Render("live updates off")
	}

	view := header + "\n" + m.list.View()

	if m.composing || m.searching {
		label := "Add new todo"
		switch {
		case m.searching:
			label = "Search"
		case m.ctrl.EditingID() != "":
			label = "Edit todo"
		}
		if errMsg := m.ctrl.Err(); errMsg != "" && m.composing {
			label += "  " + errorStyle.Render(errMsg)
		}
		view += "\n" + barStyle.Render(label+"\n"+m.input.View())
	} else if errMsg := m.ctrl.Err(); errMsg != "" {
		view += "\n" + errorStyle.Render(errMsg)
	}

	view += "\n" + helpStyle.Render("a add • e edit • space done • d delete • / search • q quit")
	return view
}
