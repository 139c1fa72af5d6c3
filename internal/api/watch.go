package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
)

// GET /todos/watch
//
// Upgrades to a websocket and streams ChangeEvents until the peer goes
// away. The subscription is torn down with the connection, so an
// abandoned watcher does not leak a channel in the store.
func (s *Server) watchTodos(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("failed to upgrade", "err", err)
		return
	}
	defer conn.Close()

	events := s.store.Subscribe()
	defer s.store.Unsubscribe(events)

	// The read loop exists only to notice the peer closing.
	peerGone := make(chan struct{})
	go func() {
		defer close(peerGone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			if err := conn.WriteJSON(ev); err != nil {
				slog.Info("watcher disconnected", "err", err)
				return
			}
		case <-peerGone:
			return
		case <-r.Context().Done():
			return
		}
	}
}
