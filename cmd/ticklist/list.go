package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/ticklist/pkg/types"
)

var flagAll bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List todos, newest first",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&flagAll, "all", false, "include completed todos")
}

func runList(cmd *cobra.Command, args []string) error {
	c, err := newClient()
	if err != nil {
		return err
	}

	todos, err := c.List(cmd.Context())
	if err != nil {
		return err
	}

	if !flagAll {
		pending := make([]types.Todo, 0, len(todos))
		for _, todo := range todos {
			if !todo.IsCompleted {
				pending = append(pending, todo)
			}
		}
		todos = pending
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(todos)
	}

	printTodoTable(todos)
	return nil
}

// printTodoTable writes todos as an aligned table to stdout.
func printTodoTable(todos []types.Todo) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDONE\tCREATED\tCONTENT")
	for _, todo := range todos {
		done := " "
		if todo.IsCompleted {
			done = "x"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			shortID(todo.ID),
			done,
			todo.CreatedAt.Local().Format("2006-01-02 15:04"),
			todo.Content,
		)
	}
	w.Flush()
	fmt.Printf("\nTotal: %d todos\n", len(todos))
}

// shortID truncates a UUID for display. Subcommands accept prefixes,
// so the truncated form stays usable as an argument.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
