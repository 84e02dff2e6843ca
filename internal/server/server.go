// Package server hosts the table engine behind a WebSocket endpoint. Every
// inbound event and the inter-hand timer callback run under one table mutex,
// and a fresh per-viewer state projection is broadcast after every mutation.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"

	"github.com/lox/holdem-table/internal/game"
	"github.com/lox/holdem-table/internal/gameid"
	"github.com/lox/holdem-table/internal/randutil"
)

// Server owns the table and the connection set.
type Server struct {
	cfg      *Config
	upgrader websocket.Upgrader
	logger   *log.Logger
	clock    quartz.Clock

	// mu is the single serialization point for all table state; it is held
	// across every event handler including the broadcast.
	mu       sync.Mutex
	table    *game.Table
	conns    map[string]*Connection
	nextHand *quartz.Timer
}

// New creates a server around a fresh table.
func New(cfg *Config, logger *log.Logger, clock quartz.Clock, seed int64, opts ...game.Option) *Server {
	table := game.NewTable(game.Config{
		StartingStack: cfg.Table.StartingStack,
		SmallBlind:    cfg.Table.SmallBlind,
		BigBlind:      cfg.Table.BigBlind,
	}, randutil.New(seed), clock, logger, opts...)

	return &Server{
		cfg: cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger: logger.WithPrefix("server"),
		clock:  clock,
		table:  table,
		conns:  make(map[string]*Connection),
	}
}

// Handler returns the HTTP handler: the WebSocket endpoint, a health check,
// and the static lobby assets.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/", http.FileServer(http.Dir(s.cfg.Server.StaticDir)))
	return mux
}

// ListenAndServe runs the HTTP server on the configured address.
func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Address, s.cfg.Server.Port)
	s.logger.Info("listening", "addr", addr)
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	conn := newConnection(gameid.Generate(), ws, s, s.logger)

	s.mu.Lock()
	s.conns[conn.id] = conn
	s.logger.Info("client connected", "viewer", conn.id, "total", len(s.conns))
	s.mu.Unlock()

	conn.start()

	// The new viewer gets an initial projection immediately.
	s.mu.Lock()
	s.sendStateLocked(conn)
	s.mu.Unlock()
}

// dispatch handles one inbound event to completion under the table mutex.
// The state broadcast for this event is enqueued before the mutex is
// released, so no later event can observe or publish earlier state.
func (s *Server) dispatch(c *Connection, msg *Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.handleEventLocked(c, msg)
	if err != nil {
		if !game.IsProtocolError(err) {
			s.logger.Error("event failed", "type", msg.Type, "viewer", c.id, "error", err)
		}
		s.sendErrorLocked(c, err.Error())
		return
	}

	s.syncTimerLocked()
	s.broadcastLocked()
}

func (s *Server) handleEventLocked(c *Connection, msg *Message) error {
	switch msg.Type {
	case MessageTypeJoin:
		var data JoinData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			return fmt.Errorf("invalid join payload: %w", err)
		}
		return s.table.Join(c.id, data.Name)

	case MessageTypeSetStartingStack:
		var data SetStartingStackData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			return fmt.Errorf("invalid setStartingStack payload: %w", err)
		}
		return s.table.SetStartingStack(c.id, data.Amount)

	case MessageTypeStartGame:
		// A manual start must cancel any pending inter-hand timer before
		// the table mutates state the callback would read.
		s.cancelTimerLocked()
		return s.table.StartGame(c.id)

	case MessageTypeAction:
		var data ActionData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			return fmt.Errorf("invalid action payload: %w", err)
		}
		return s.table.HandleAction(c.id, data)

	default:
		return fmt.Errorf("unknown event %q", string(msg.Type))
	}
}

// handleDisconnect runs when a connection's read pump exits.
func (s *Server) handleDisconnect(c *Connection) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.conns[c.id]; !ok {
		return
	}
	delete(s.conns, c.id)
	s.logger.Info("client disconnected", "viewer", c.id, "total", len(s.conns))

	s.table.Disconnect(c.id)
	s.syncTimerLocked()
	s.broadcastLocked()
}

// syncTimerLocked arms the inter-hand timer when the table asks for it.
func (s *Server) syncTimerLocked() {
	if !s.table.ConsumeNextHandDue() {
		return
	}
	s.cancelTimerLocked()
	delay := time.Duration(s.cfg.Table.NextHandDelaySecs) * time.Second
	s.nextHand = s.clock.AfterFunc(delay, s.onNextHandTimer)
}

func (s *Server) cancelTimerLocked() {
	if s.nextHand != nil {
		s.nextHand.Stop()
		s.nextHand = nil
	}
}

func (s *Server) onNextHandTimer() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextHand = nil
	s.table.StartScheduledHand()
	s.syncTimerLocked()
	s.broadcastLocked()
}

// broadcastLocked queues a fresh projection to every connected viewer.
func (s *Server) broadcastLocked() {
	for _, conn := range s.conns {
		s.sendStateLocked(conn)
	}
}

func (s *Server) sendStateLocked(c *Connection) {
	view := s.table.ViewFor(c.id)
	msg, err := NewMessage(MessageTypeState, view)
	if err != nil {
		s.logger.Error("failed to encode state", "viewer", c.id, "error", err)
		return
	}
	c.Send(msg)
}

func (s *Server) sendErrorLocked(c *Connection, text string) {
	msg, err := NewMessage(MessageTypeErrorMessage, ErrorMessageData{Message: text})
	if err != nil {
		return
	}
	c.Send(msg)
}
