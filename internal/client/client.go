// Package client is the WebSocket client used by the terminal UI. It speaks
// the server's message envelope and exposes inbound messages on a channel;
// it makes no game decisions of its own.
package client

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/holdem-table/internal/game"
	"github.com/lox/holdem-table/internal/server"
)

// Client is a connection to the table server.
type Client struct {
	url    string
	logger *log.Logger

	mu   sync.Mutex
	conn *websocket.Conn

	// Incoming delivers server messages in arrival order until the
	// connection drops, then closes.
	Incoming chan *server.Message
}

// New creates a client for the given ws:// URL.
func New(url string, logger *log.Logger) *Client {
	return &Client{
		url:      url,
		logger:   logger.WithPrefix("client"),
		Incoming: make(chan *server.Message, 64),
	}
}

// Connect dials the server and starts the read loop.
func (c *Client) Connect() error {
	conn, _, err := websocket.DefaultDialer.Dial(c.url, nil)
	if err != nil {
		return fmt.Errorf("dialing %s: %w", c.url, err)
	}
	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	go c.readLoop()
	return nil
}

// Close tears down the connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

func (c *Client) readLoop() {
	defer close(c.Incoming)
	for {
		var msg server.Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			c.logger.Debug("read loop ended", "error", err)
			return
		}
		c.Incoming <- &msg
	}
}

func (c *Client) send(messageType server.MessageType, payload any) error {
	msg, err := server.NewMessage(messageType, payload)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return fmt.Errorf("not connected")
	}
	return c.conn.WriteJSON(msg)
}

// Join requests a seat with the given display name.
func (c *Client) Join(name string) error {
	return c.send(server.MessageTypeJoin, server.JoinData{Name: name})
}

// SetStartingStack asks the server to change the starting stack.
func (c *Client) SetStartingStack(amount int) error {
	return c.send(server.MessageTypeSetStartingStack, server.SetStartingStackData{Amount: amount})
}

// StartGame asks the server to begin play.
func (c *Client) StartGame() error {
	return c.send(server.MessageTypeStartGame, struct{}{})
}

// Act submits a betting action.
func (c *Client) Act(action game.ActionType, amount int) error {
	return c.send(server.MessageTypeAction, game.ActionRequest{Type: action, Amount: amount})
}
