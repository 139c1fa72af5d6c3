package api

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/ticklist/pkg/types"
)

func TestWatchStreamsChangeEvents(t *testing.T) {
	ts, store := setupServer(t)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/todos/watch"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	ctx := context.Background()
	created, err := store.Create(ctx, "watched")
	require.NoError(t, err)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var ev types.ChangeEvent
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, types.ChangeEvent{Op: types.OpInsert, ID: created.ID}, ev)

	require.NoError(t, store.Delete(ctx, created.ID))
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, types.ChangeEvent{Op: types.OpDelete, ID: created.ID}, ev)
}

func TestWatchMutationsOverHTTPReachWatchers(t *testing.T) {
	ts, _ := setupServer(t)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/todos/watch"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	create := doJSON(t, http.MethodPost, ts.URL+"/todos", map[string]string{"content": "from http"})
	require.Equal(t, http.StatusCreated, create.StatusCode)
	created := decodeBody[types.Todo](t, create)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var ev types.ChangeEvent
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, types.OpInsert, ev.Op)
	assert.Equal(t, created.ID, ev.ID)
}
