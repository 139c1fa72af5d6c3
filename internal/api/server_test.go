package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/ticklist/internal/sqlite"
	"github.com/mesh-intelligence/ticklist/pkg/types"
)

// setupServer runs the API over a fresh SQLite store in a temp directory.
func setupServer(t *testing.T) (*httptest.Server, types.Store) {
	t.Helper()
	store, err := sqlite.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	ts := httptest.NewServer(NewServer(store))
	t.Cleanup(ts.Close)
	return ts, store
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestCreateTodo(t *testing.T) {
	ts, _ := setupServer(t)

	resp := doJSON(t, http.MethodPost, ts.URL+"/todos", map[string]string{"content": "buy milk"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	todo := decodeBody[types.Todo](t, resp)
	assert.NotEmpty(t, todo.ID)
	assert.Equal(t, "buy milk", todo.Content)
	assert.False(t, todo.IsCompleted)
	assert.False(t, todo.CreatedAt.IsZero())
}

func TestCreateTodoRejectsEmptyContent(t *testing.T) {
	ts, store := setupServer(t)

	tests := []struct {
		name string
		body any
	}{
		{name: "missing content", body: map[string]string{}},
		{name: "empty content", body: map[string]string{"content": ""}},
		{name: "whitespace content", body: map[string]string{"content": "   "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, http.MethodPost, ts.URL+"/todos", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			body := decodeBody[map[string]string](t, resp)
			assert.NotEmpty(t, body["error"])
		})
	}

	todos, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, todos, "rejected creates must not write rows")
}

func TestListTodosNewestFirst(t *testing.T) {
	ts, _ := setupServer(t)

	for _, content := range []string{"A", "B"} {
		resp := doJSON(t, http.MethodPost, ts.URL+"/todos", map[string]string{"content": content})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp := doJSON(t, http.MethodGet, ts.URL+"/todos", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	todos := decodeBody[[]types.Todo](t, resp)
	require.Len(t, todos, 2)
	assert.Equal(t, "B", todos[0].Content)
	assert.Equal(t, "A", todos[1].Content)
}

func TestListTodosEmpty(t *testing.T) {
	ts, _ := setupServer(t)

	resp := doJSON(t, http.MethodGet, ts.URL+"/todos", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	todos := decodeBody[[]types.Todo](t, resp)
	assert.NotNil(t, todos)
	assert.Empty(t, todos)
}

func TestUpdateTodoPartial(t *testing.T) {
	ts, store := setupServer(t)
	ctx := context.Background()

	created, err := store.Create(ctx, "original")
	require.NoError(t, err)

	resp := doJSON(t, http.MethodPut, ts.URL+"/todos/"+created.ID, map[string]any{"is_completed": true})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodPut, ts.URL+"/todos/"+created.ID, map[string]any{"content": "rewritten"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	got, err := store.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "rewritten", got.Content)
	assert.True(t, got.IsCompleted, "content-only update must not clobber completion")
	assert.True(t, created.CreatedAt.Equal(got.CreatedAt))
}

func TestUpdateTodoValidation(t *testing.T) {
	ts, store := setupServer(t)

	created, err := store.Create(context.Background(), "target")
	require.NoError(t, err)

	tests := []struct {
		name       string
		url        string
		body       any
		wantStatus int
	}{
		{name: "no fields", url: ts.URL + "/todos/" + created.ID, body: map[string]any{}, wantStatus: http.StatusBadRequest},
		{name: "unknown id", url: ts.URL + "/todos/no-such-id", body: map[string]any{"is_completed": true}, wantStatus: http.StatusNotFound},
		{name: "whitespace content", url: ts.URL + "/todos/" + created.ID, body: map[string]any{"content": " "}, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, http.MethodPut, tt.url, tt.body)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			body := decodeBody[map[string]string](t, resp)
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestDeleteTodo(t *testing.T) {
	ts, store := setupServer(t)
	ctx := context.Background()

	created, err := store.Create(ctx, "doomed")
	require.NoError(t, err)

	resp := doJSON(t, http.MethodDelete, ts.URL+"/todos/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	todos, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, todos)
}

func TestDeleteTodoIsIdempotent(t *testing.T) {
	ts, _ := setupServer(t)

	resp := doJSON(t, http.MethodDelete, ts.URL+"/todos/no-such-id", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestCreateThenListRoundTrip(t *testing.T) {
	ts, _ := setupServer(t)

	var ids []string
	for i := 0; i < 5; i++ {
		resp := doJSON(t, http.MethodPost, ts.URL+"/todos", map[string]string{"content": fmt.Sprintf("task %d", i)})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		ids = append(ids, decodeBody[types.Todo](t, resp).ID)
	}

	resp := doJSON(t, http.MethodGet, ts.URL+"/todos", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	todos := decodeBody[[]types.Todo](t, resp)
	require.Len(t, todos, len(ids))
	for i, todo := range todos {
		assert.Equal(t, ids[len(ids)-1-i], todo.ID, "position %d", i)
	}
}
