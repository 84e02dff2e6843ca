package game

import "github.com/lox/holdem-table/internal/deck"

// PlayerView is the projection of one seat sent to every viewer. Hole cards
// are never included; a viewer's own cards travel in State.YourCards.
type PlayerView struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Chips        int    `json:"chips"`
	BetThisRound int    `json:"betThisRound"`
	InHand       bool   `json:"inHand"`
	Folded       bool   `json:"folded"`
	AllIn        bool   `json:"allIn"`
	IsAdmin      bool   `json:"isAdmin"`
}

// State is the per-viewer projection pushed after every state-mutating event.
type State struct {
	Joined         bool   `json:"joined"`
	YouID          string `json:"youId"`
	GameStarted    bool   `json:"gameStarted"`
	HandInProgress bool   `json:"handInProgress"`
	HandNumber     int    `json:"handNumber"`
	Phase          string `json:"phase"`

	StartingStack int `json:"startingStack"`
	SmallBlind    int `json:"smallBlind"`
	BigBlind      int `json:"bigBlind"`
	Pot           int `json:"pot"`
	CurrentBet    int `json:"currentBet"`

	DealerID      string `json:"dealerId"`
	SmallBlindID  string `json:"smallBlindId"`
	BigBlindID    string `json:"bigBlindId"`
	CurrentTurnID string `json:"currentTurnId"`

	CommunityCards []deck.Card `json:"communityCards"`
	YourCards      []deck.Card `json:"yourCards"`
	DeckRemaining  int         `json:"deckRemaining"`
	BurnCount      int         `json:"burnCount"`

	HandInsight      *Insight         `json:"handInsight"`
	AvailableActions AvailableActions `json:"availableActions"`
	CanAct           bool             `json:"canAct"`

	Players      []PlayerView     `json:"players"`
	Logs         []LogEntry       `json:"logs"`
	LastShowdown *ShowdownSummary `json:"lastShowdown"`
}

// ViewFor projects the table for one viewer. Only the viewer's own hole
// cards are included; deck and burn pile travel as counts; disconnected
// players are filtered out of the seat list.
func (t *Table) ViewFor(viewerID string) State {
	viewer := t.playerByID(viewerID)

	s := State{
		Joined:         viewer != nil,
		YouID:          viewerID,
		GameStarted:    t.gameStarted,
		HandInProgress: t.handInProgress,
		HandNumber:     t.handNumber,
		Phase:          t.phase.String(),
		StartingStack:  t.cfg.StartingStack,
		SmallBlind:     t.cfg.SmallBlind,
		BigBlind:       t.cfg.BigBlind,
		Pot:            t.pot,
		CurrentBet:     t.currentBet,
		DealerID:       t.dealerID,
		SmallBlindID:   t.smallBlindID,
		BigBlindID:     t.bigBlindID,
		CurrentTurnID:  t.currentTurnID,
		CommunityCards: append([]deck.Card{}, t.community...),
		YourCards:      []deck.Card{},
		Logs:           append([]LogEntry{}, t.logs...),
		LastShowdown:   t.lastShowdown,
	}

	if t.deck != nil {
		s.DeckRemaining = t.deck.Remaining()
		s.BurnCount = t.deck.BurnCount()
	}

	for _, p := range t.players {
		if p.Disconnected {
			continue
		}
		s.Players = append(s.Players, PlayerView{
			ID:           p.ID,
			Name:         p.Name,
			Chips:        p.Chips,
			BetThisRound: p.BetThisRound,
			InHand:       p.InHand,
			Folded:       p.Folded,
			AllIn:        p.AllIn,
			IsAdmin:      p.IsAdmin,
		})
	}

	if viewer != nil {
		if viewer.InHand {
			s.YourCards = append(s.YourCards, viewer.HoleCards...)
		}
		s.HandInsight = t.insightFor(viewer)
		if t.handInProgress && t.currentTurnID == viewer.ID && viewer.Actionable() {
			s.CanAct = true
			s.AvailableActions = t.availableActionsFor(viewer)
		}
	}

	return s
}
