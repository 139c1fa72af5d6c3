package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a todo",
	Long: `Delete a todo. The ID may be a unique prefix of the full todo ID,
such as the truncated form printed by 'ticklist list'.`,
	Args: cobra.ExactArgs(1),
	RunE: runRm,
}

func runRm(cmd *cobra.Command, args []string) error {
	c, err := newClient()
	if err != nil {
		return err
	}

	id, err := resolveID(cmd.Context(), c, args[0])
	if err != nil {
		return err
	}

	if err := c.Delete(cmd.Context(), id); err != nil {
		return err
	}

	fmt.Printf("Deleted %s\n", shortID(id))
	return nil
}
