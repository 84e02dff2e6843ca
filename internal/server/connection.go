package server

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 4096

	// Outbound buffer per connection. A full buffer means the client cannot
	// keep up and the connection is dropped rather than blocking the table.
	sendBufferSize = 64
)

// Connection wraps one WebSocket client. Inbound messages are handed to the
// server's dispatcher; outbound state is queued on a bounded channel so a
// slow client never blocks an event handler.
type Connection struct {
	id        string
	conn      *websocket.Conn
	send      chan *Message
	server    *Server
	logger    *log.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

func newConnection(id string, conn *websocket.Conn, server *Server, logger *log.Logger) *Connection {
	ctx, cancel := context.WithCancel(context.Background())
	return &Connection{
		id:     id,
		conn:   conn,
		send:   make(chan *Message, sendBufferSize),
		server: server,
		logger: logger.WithPrefix("conn").With("viewer", id),
		ctx:    ctx,
		cancel: cancel,
	}
}

// start launches the read and write pumps.
func (c *Connection) start() {
	go c.writePump()
	go c.readPump()
}

// close shuts the connection down once.
func (c *Connection) close() {
	c.closeOnce.Do(func() {
		c.cancel()
		_ = c.conn.Close()
	})
}

// Send queues a message without blocking. A viewer that cannot drain its
// buffer is disconnected.
func (c *Connection) Send(msg *Message) {
	select {
	case c.send <- msg:
	case <-c.ctx.Done():
	default:
		c.logger.Warn("send buffer full, dropping connection")
		c.close()
	}
}

func (c *Connection) readPump() {
	defer func() {
		c.close()
		c.server.handleDisconnect(c)
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.logger.Error("websocket read failed", "error", err)
			}
			return
		}
		c.server.dispatch(c, &msg)
	}
}

func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(msg); err != nil {
				c.logger.Debug("websocket write failed", "error", err)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.ctx.Done():
			_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}
