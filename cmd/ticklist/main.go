// Package main provides the ticklist CLI: a synchronized todo-list
// manager with an API server, a terminal UI, and one-shot commands.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
