package game

import "github.com/lox/holdem-table/internal/deck"

// Player is a seat at the table. Players are created on join and persist
// across hands until they disconnect and the hand they were part of ends.
// The table owns every Player record; nothing outside the package holds one.
type Player struct {
	ID   string
	Name string

	Chips int

	IsAdmin      bool
	Disconnected bool
	InHand       bool
	Folded       bool
	AllIn        bool
	Acted        bool

	HoleCards []deck.Card

	// BetThisRound is the amount committed in the current street; it resets
	// to zero at each new street. TotalContribution accumulates across the
	// whole hand and drives side-pot layering.
	BetThisRound      int
	TotalContribution int
}

// Actionable reports whether the player can act: in the hand, not folded,
// not all-in.
func (p *Player) Actionable() bool {
	return p.InHand && !p.Folded && !p.AllIn
}

// resetForHand clears per-hand state before the deal.
func (p *Player) resetForHand() {
	p.InHand = false
	p.Folded = false
	p.AllIn = false
	p.Acted = false
	p.HoleCards = nil
	p.BetThisRound = 0
	p.TotalContribution = 0
}
