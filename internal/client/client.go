// Package client talks to a ticklist server: REST calls for row CRUD and
// a websocket subscription for change notifications.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/mesh-intelligence/ticklist/pkg/types"
)

// Client issues requests against a single server base URL. The zero
// value is not usable; construct with New.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// New parses the server URL and returns a ready Client.
func New(serverURL string) (*Client, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("server url %q must include scheme and host", serverURL)
	}
	return &Client{baseURL: u, httpClient: http.DefaultClient}, nil
}

// List fetches all todos, newest first.
func (c *Client) List(ctx context.Context) ([]types.Todo, error) {
	req, err := c.newRequest(ctx, http.MethodGet, nil, "todos")
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, responseError("list todos", resp)
	}

	var todos []types.Todo
	if err := json.NewDecoder(resp.Body).Decode(&todos); err != nil {
		return nil, fmt.Errorf("decode todos: %w", err)
	}
	return todos, nil
}

// Create submits new content and returns the stored todo with its
// server-assigned id and creation time.
func (c *Client) Create(ctx context.Context, content string) (types.Todo, error) {
	req, err := c.newRequest(ctx, http.MethodPost, map[string]string{"content": content}, "todos")
	if err != nil {
		return types.Todo{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return types.Todo{}, fmt.Errorf("create todo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return types.Todo{}, responseError("create todo", resp)
	}

	var todo types.Todo
	if err := json.NewDecoder(resp.Body).Decode(&todo); err != nil {
		return types.Todo{}, fmt.Errorf("decode created todo: %w", err)
	}
	return todo, nil
}

// Update applies a partial update to the todo with the given id.
func (c *Client) Update(ctx context.Context, id string, update types.TodoUpdate) error {
	req, err := c.newRequest(ctx, http.MethodPut, update, "todos", id)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("update todo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return responseError("update todo", resp)
	}
	return nil
}

// Delete removes the todo with the given id. The server treats deletion
// of an unknown id as success.
func (c *Client) Delete(ctx context.Context, id string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, nil, "todos", id)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		return responseError("delete todo", resp)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method string, body any, elem ...string) (*http.Request, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.JoinPath(elem...).String(), &buf)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// responseError extracts the server's {"error"} body, falling back to the
// HTTP status when the body is not error-shaped.
func responseError(op string, resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err == nil && body.Error != "" {
		return fmt.Errorf("%s: %s", op, body.Error)
	}
	return fmt.Errorf("%s: unexpected status %s", op, resp.Status)
}
