package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/ticklist/pkg/types"
)

var flagUndo bool

var doneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a todo as completed",
	Long: `Mark a todo as completed. The ID may be a unique prefix of the
full todo ID, such as the truncated form printed by 'ticklist list'.`,
	Args: cobra.ExactArgs(1),
	RunE: runDone,
}

func init() {
	doneCmd.Flags().BoolVar(&flagUndo, "undo", false, "mark the todo as not completed")
}

func runDone(cmd *cobra.Command, args []string) error {
	c, err := newClient()
	if err != nil {
		return err
	}

	id, err := resolveID(cmd.Context(), c, args[0])
	if err != nil {
		return err
	}

	completed := !flagUndo
	if err := c.Update(cmd.Context(), id, types.TodoUpdate{IsCompleted: &completed}); err != nil {
		return err
	}

	if flagUndo {
		fmt.Printf("Reopened %s\n", shortID(id))
	} else {
		fmt.Printf("Completed %s\n", shortID(id))
	}
	return nil
}
