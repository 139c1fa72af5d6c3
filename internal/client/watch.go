package client

import (
	"context"
	"fmt"

	"github.com/gorilla/websocket"

	"github.com/mesh-intelligence/ticklist/pkg/types"
)

// Watch dials the server's change-notification feed and delivers events
// on the returned channel. The channel closes when the context ends or
// the connection drops; the websocket is closed either way, so callers
// tear down their subscription by cancelling the context.
func (c *Client) Watch(ctx context.Context) (<-chan types.ChangeEvent, error) {
	u := c.baseURL.JoinPath("todos", "watch")
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("dial watch: %w", err)
	}

	events := make(chan types.ChangeEvent)

	// Closing the connection unblocks the read loop below.
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	go func() {
		defer close(events)
		for {
			var ev types.ChangeEvent
			if err := conn.ReadJSON(&ev); err != nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	return events, nil
}
