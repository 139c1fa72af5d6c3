// UI command: run the interactive terminal UI against a server.
package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/ticklist/internal/state"
	"github.com/mesh-intelligence/ticklist/internal/tui"
	"github.com/mesh-intelligence/ticklist/pkg/types"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Run the interactive terminal UI",
	Long: `Run the interactive terminal UI against a ticklist server.

The UI keeps a live connection to /todos/watch so changes made by other
clients appear without restarting. If the watch connection cannot be
established, the UI still works but only reflects its own actions.`,
	Args: cobra.NoArgs,
	RunE: runUI,
}

func runUI(cmd *cobra.Command, args []string) error {
	c, err := newClient()
	if err != nil {
		return err
	}

	ctrl := state.NewController(c)
	if err := ctrl.Refresh(cmd.Context()); err != nil {
		return fmt.Errorf("fetch todos from %s: %w", resolveServerURL(), err)
	}

	watchCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// A failed watch is not fatal; the UI degrades to local-only updates.
	var events <-chan types.ChangeEvent
	if ch, err := c.Watch(watchCtx); err == nil {
		events = ch
	}

	program := tea.NewProgram(tui.New(ctrl, events), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
