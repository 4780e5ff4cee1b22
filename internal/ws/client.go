package ws

import (
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"

	"threadbox/internal/domain"
)

const (
	sendBufferSize = 32
	writeWait      = 10 * time.Second
)

// Client is one live websocket session. Events are written by a single
// goroutine (WritePump) so ordering is preserved per connection.
type Client struct {
	conn   *websocket.Conn
	userID uuid.UUID
	send   chan domain.Event
	once   sync.Once
}

func NewClient(conn *websocket.Conn) *Client {
	return &Client{
		conn: conn,
		send: make(chan domain.Event, sendBufferSize),
	}
}

// Send enqueues an event for this connection, dropping it if the buffer
// is full.
func (c *Client) Send(event domain.Event) {
	c.trySend(event)
}

func (c *Client) trySend(event domain.Event) bool {
	select {
	case c.send <- event:
		return true
	default:
		return false
	}
}

// closeSend is only called by the hub while it holds the write lock, so it
// cannot race a concurrent SendToUser.
func (c *Client) closeSend() {
	c.once.Do(func() {
		close(c.send)
	})
}

// WritePump drains the send channel onto the wire. It exits when the hub
// closes the channel or a write fails; either way the connection is closed
// and the read loop unblocks.
func (c *Client) WritePump() {
	defer c.conn.Close()

	for event := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteJSON(event); err != nil {
			return
		}
	}
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
