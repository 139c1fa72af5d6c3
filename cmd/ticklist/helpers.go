// Shared helpers for client-side subcommands.
package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/mesh-intelligence/ticklist/internal/client"
	"github.com/mesh-intelligence/ticklist/pkg/types"
)

// resolveServerURL returns the server base URL following the precedence:
// --server flag > config.yaml server_url > default.
func resolveServerURL() string {
	if flagServerURL != "" {
		return flagServerURL
	}
	if configServerURL != "" {
		return configServerURL
	}
	return types.DefaultServerURL
}

// newClient builds a REST client for the resolved server URL.
func newClient() (*client.Client, error) {
	c, err := client.New(resolveServerURL())
	if err != nil {
		return nil, fmt.Errorf("build client: %w", err)
	}
	return c, nil
}

// resolveID expands a todo ID or unique ID prefix into the full ID.
// Prefixes let users paste the truncated IDs shown by `ticklist list`.
func resolveID(ctx context.Context, c *client.Client, arg string) (string, error) {
	if arg == "" {
		return "", fmt.Errorf("todo ID is required")
	}

	todos, err := c.List(ctx)
	if err != nil {
		return "", err
	}

	var matches []string
	for _, todo := range todos {
		if todo.ID == arg {
			return todo.ID, nil
		}
		if strings.HasPrefix(todo.ID, arg) {
			matches = append(matches, todo.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no todo matches %q", arg)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("ambiguous ID prefix %q matches %d todos", arg, len(matches))
	}
}
