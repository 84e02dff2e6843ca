// Package game implements the authoritative single-table hold'em engine: the
// hand lifecycle state machine, betting and raise-rights rules, side-pot
// distribution, the advisor hint and the per-viewer state projection.
//
// The package is not safe for concurrent use. The table server funnels every
// client event and timer callback through one mutex and calls in here with it
// held, so no two mutations ever interleave.
package game

import (
	"fmt"
	rand "math/rand/v2"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/holdem-table/internal/deck"
)

// Phase is the table's position in the hand state machine.
type Phase int

const (
	Lobby Phase = iota
	Preflop
	Flop
	Turn
	River
	Showdown
)

// String returns the wire name of the phase.
func (p Phase) String() string {
	return [...]string{"lobby", "preflop", "flop", "turn", "river", "showdown"}[p]
}

const (
	// MaxSeats is the table capacity.
	MaxSeats = 6

	maxLogEntries = 40

	minStartingStack = 50
	maxStartingStack = 1_000_000
)

// Config holds the table constants.
type Config struct {
	StartingStack int
	SmallBlind    int
	BigBlind      int
}

// LogEntry is one line of the bounded table log.
type LogEntry struct {
	Time    string `json:"time"`
	Message string `json:"message"`
}

// Table is the singleton game state. It exclusively owns every Player record
// and the deck; clients hold only a viewer id.
type Table struct {
	cfg    Config
	rng    *rand.Rand
	clock  quartz.Clock
	logger *log.Logger

	// players is the seat list in ring order (insertion order).
	players []*Player

	gameStarted    bool
	handInProgress bool
	handNumber     int
	phase          Phase

	deck      *deck.Deck
	community []deck.Card

	pot           int
	currentBet    int
	lastRaiseSize int

	currentTurnID string
	dealerID      string
	smallBlindID  string
	bigBlindID    string

	lastShowdown *ShowdownSummary
	logs         []LogEntry

	// nextHandDue is set when a hand finishes with enough players for
	// another; the server consumes it to arm the inter-hand timer.
	nextHandDue bool

	// stacked, when non-nil, is applied to each fresh deck after the
	// shuffle. Test seam for deterministic deals.
	stacked []deck.Card
}

// Option customises a new table.
type Option func(*Table)

// WithStackedCards rigs every deal so the given cards come off the deck
// first, in order. Intended for tests.
func WithStackedCards(cards ...deck.Card) Option {
	return func(t *Table) {
		t.stacked = cards
	}
}

// NewTable creates an empty table in the lobby phase.
func NewTable(cfg Config, rng *rand.Rand, clock quartz.Clock, logger *log.Logger, opts ...Option) *Table {
	t := &Table{
		cfg:    cfg,
		rng:    rng,
		clock:  clock,
		logger: logger.WithPrefix("table"),
		phase:  Lobby,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// appendLog pushes a line onto the bounded log ring.
func (t *Table) appendLog(format string, args ...any) {
	entry := LogEntry{
		Time:    t.clock.Now().Format("15:04:05"),
		Message: fmt.Sprintf(format, args...),
	}
	t.logs = append(t.logs, entry)
	if len(t.logs) > maxLogEntries {
		t.logs = t.logs[len(t.logs)-maxLogEntries:]
	}
}

// playerByID returns the seated player with the given id, or nil.
func (t *Table) playerByID(id string) *Player {
	for _, p := range t.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// seatIndex returns the seat index of the given id, or -1.
func (t *Table) seatIndex(id string) int {
	for i, p := range t.players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// nextSeatWhere scans the ring starting after seat from, returning the first
// player satisfying pred, or nil after a full lap.
func (t *Table) nextSeatWhere(from int, pred func(*Player) bool) *Player {
	n := len(t.players)
	for i := 1; i <= n; i++ {
		p := t.players[(from+i)%n]
		if pred(p) {
			return p
		}
	}
	return nil
}

func (t *Table) nextActionableAfter(from int) *Player {
	return t.nextSeatWhere(from, func(p *Player) bool { return p.Actionable() })
}

// eligible reports whether a player can be dealt into the next hand.
func eligible(p *Player) bool {
	return !p.Disconnected && p.Chips > 0
}

// contenders returns players still in the hand, in seat order.
func (t *Table) contenders() []*Player {
	var out []*Player
	for _, p := range t.players {
		if p.InHand && !p.Folded {
			out = append(out, p)
		}
	}
	return out
}

func (t *Table) actionableCount() int {
	n := 0
	for _, p := range t.players {
		if p.Actionable() {
			n++
		}
	}
	return n
}

// connectedCount returns the number of seated, connected players.
func (t *Table) connectedCount() int {
	n := 0
	for _, p := range t.players {
		if !p.Disconnected {
			n++
		}
	}
	return n
}

func (t *Table) eligibleCount() int {
	n := 0
	for _, p := range t.players {
		if eligible(p) {
			n++
		}
	}
	return n
}

// Join seats a new viewer. The first player to join becomes admin.
func (t *Table) Join(id, name string) error {
	if t.playerByID(id) != nil {
		return protocolErrorf("You have already joined")
	}
	if t.gameStarted {
		return protocolErrorf("Game already started")
	}
	if len(t.players) >= MaxSeats {
		return protocolErrorf("Table is full")
	}

	clean, err := sanitizeName(name)
	if err != nil {
		return err
	}

	p := &Player{
		ID:      id,
		Name:    clean,
		Chips:   t.cfg.StartingStack,
		IsAdmin: len(t.players) == 0,
	}
	t.players = append(t.players, p)
	t.appendLog("%s joined the table", p.Name)
	t.logger.Info("player joined", "name", p.Name, "seats", len(t.players))
	return nil
}

// sanitizeName trims, collapses internal whitespace and enforces 2-20 chars.
func sanitizeName(name string) (string, error) {
	clean := strings.Join(strings.Fields(name), " ")
	if n := utf8.RuneCountInString(clean); n < 2 || n > 20 {
		return "", protocolErrorf("Name must be 2-20 characters")
	}
	return clean, nil
}

// SetStartingStack changes the starting stack before the game begins and
// refreshes every seated player's chips to match.
func (t *Table) SetStartingStack(id string, amount int) error {
	p := t.playerByID(id)
	if p == nil {
		return protocolErrorf("Join the table first")
	}
	if !p.IsAdmin {
		return protocolErrorf("Only the admin can change the starting stack")
	}
	if t.gameStarted {
		return protocolErrorf("Game already started")
	}
	if amount < minStartingStack || amount > maxStartingStack {
		return protocolErrorf("Starting stack must be between %d and %d", minStartingStack, maxStartingStack)
	}

	t.cfg.StartingStack = amount
	for _, q := range t.players {
		q.Chips = amount
	}
	t.appendLog("%s set the starting stack to %d", p.Name, amount)
	return nil
}

// StartGame begins play and deals the first hand.
func (t *Table) StartGame(id string) error {
	p := t.playerByID(id)
	if p == nil {
		return protocolErrorf("Join the table first")
	}
	if !p.IsAdmin {
		return protocolErrorf("Only the admin can start the game")
	}
	if t.gameStarted {
		return protocolErrorf("Game already started")
	}
	if t.connectedCount() < 2 {
		return protocolErrorf("Need at least 2 players to start")
	}

	t.gameStarted = true
	t.appendLog("%s started the game", p.Name)
	t.logger.Info("game started", "players", t.connectedCount())
	t.startHand()
	return nil
}

// StartScheduledHand is the inter-hand timer callback. It is a no-op if the
// game stopped or a hand began by other means since scheduling.
func (t *Table) StartScheduledHand() {
	if !t.gameStarted || t.handInProgress {
		return
	}
	t.startHand()
}

// ConsumeNextHandDue reports whether a next hand should be scheduled,
// clearing the flag.
func (t *Table) ConsumeNextHandDue() bool {
	due := t.nextHandDue
	t.nextHandDue = false
	return due
}

// Disconnect handles a transport-reported disconnect. A player who can still
// act is force-folded; an all-in player stays in the hand through showdown;
// seats are only removed between hands.
func (t *Table) Disconnect(id string) {
	p := t.playerByID(id)
	if p == nil {
		return
	}
	p.Disconnected = true
	t.appendLog("%s disconnected", p.Name)
	t.logger.Info("player disconnected", "name", p.Name)

	if !t.handInProgress {
		t.removePlayer(id)
		t.reassignAdmin()
		if t.gameStarted && t.eligibleCount() < 2 {
			t.endGame()
		}
		return
	}

	if !p.InHand || p.AllIn || p.Folded {
		// Committed chips stay live; the seat is cleaned up after the hand.
		return
	}

	wasTurn := t.currentTurnID == p.ID
	p.Folded = true
	p.InHand = false
	p.Acted = true
	t.appendLog("%s folds (disconnected)", p.Name)

	if remaining := t.contenders(); len(remaining) == 1 {
		t.resolveByFold(remaining[0])
		return
	}
	if wasTurn {
		t.continueAfterAction(t.seatIndex(p.ID))
	} else if t.roundComplete() {
		t.advanceStreet()
	}
}

// removePlayer drops a seat from the ring.
func (t *Table) removePlayer(id string) {
	for i, p := range t.players {
		if p.ID == id {
			t.players = append(t.players[:i], t.players[i+1:]...)
			return
		}
	}
}

// reassignAdmin makes the first connected player admin if the current admin
// is gone.
func (t *Table) reassignAdmin() {
	for _, p := range t.players {
		if p.IsAdmin && !p.Disconnected {
			return
		}
	}
	for _, p := range t.players {
		p.IsAdmin = false
	}
	for _, p := range t.players {
		if !p.Disconnected {
			p.IsAdmin = true
			t.appendLog("%s is now the admin", p.Name)
			return
		}
	}
}
