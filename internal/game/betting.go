package game

// ActionType is a betting action submitted by a client.
type ActionType string

const (
	ActionFold  ActionType = "fold"
	ActionCheck ActionType = "check"
	ActionCall  ActionType = "call"
	ActionRaise ActionType = "raise"
)

// ActionRequest is the payload of an inbound action event. Amount is the
// raise-to total and is ignored for other action types.
type ActionRequest struct {
	Type   ActionType `json:"type"`
	Amount int        `json:"amount,omitempty"`
}

// AvailableActions describes what the acting viewer may legally do.
type AvailableActions struct {
	CanFold    bool `json:"canFold"`
	CanCheck   bool `json:"canCheck"`
	CanCall    bool `json:"canCall"`
	CanRaise   bool `json:"canRaise"`
	CallAmount int  `json:"callAmount"`
	MinRaiseTo int  `json:"minRaiseTo"`
	MaxRaiseTo int  `json:"maxRaiseTo"`
}

// toCall is the amount the player must add to match the current bet.
func (t *Table) toCall(p *Player) int {
	if c := t.currentBet - p.BetThisRound; c > 0 {
		return c
	}
	return 0
}

// minRaiseTo is the smallest raise-to total that reopens action.
func (t *Table) minRaiseTo() int {
	if t.currentBet == 0 {
		return t.cfg.BigBlind
	}
	return t.currentBet + t.lastRaiseSize
}

// raiseRightsOpen reports whether the player may raise at all. A player who
// has acted and was not reopened by a full raise since cannot re-raise; they
// may still call the new amount or fold.
func (t *Table) raiseRightsOpen(p *Player) bool {
	return !p.Acted || t.toCall(p) == 0
}

// availableActionsFor computes the legal-action set for a player on turn.
func (t *Table) availableActionsFor(p *Player) AvailableActions {
	toCall := t.toCall(p)
	maxTotal := p.BetThisRound + p.Chips
	minTo := t.minRaiseTo()
	if minTo > maxTotal {
		// Short stack: the only raise left is the all-in.
		minTo = maxTotal
	}

	aa := AvailableActions{
		CanFold:    true,
		CanCheck:   toCall == 0,
		CanCall:    toCall > 0 && p.Chips > 0,
		CallAmount: min(toCall, p.Chips),
		MinRaiseTo: minTo,
		MaxRaiseTo: maxTotal,
	}
	aa.CanRaise = t.raiseRightsOpen(p) && maxTotal > t.currentBet
	return aa
}

// commit moves chips from the player's stack into the pot. Amount must not
// exceed the player's chips.
func (t *Table) commit(p *Player, amount int) {
	p.Chips -= amount
	p.BetThisRound += amount
	p.TotalContribution += amount
	t.pot += amount
	if p.Chips == 0 {
		p.AllIn = true
	}
}

// HandleAction validates and applies a betting action from the given viewer,
// then advances the turn or the street.
func (t *Table) HandleAction(id string, req ActionRequest) error {
	if !t.gameStarted || !t.handInProgress {
		return protocolErrorf("No hand in progress")
	}
	p := t.playerByID(id)
	if p == nil {
		return protocolErrorf("Join the table first")
	}
	if t.currentTurnID != p.ID {
		return protocolErrorf("It is not your turn")
	}
	if !p.Actionable() {
		return protocolErrorf("You cannot act")
	}

	if err := t.applyAction(p, req); err != nil {
		return err
	}

	p.Acted = true
	t.continueAfterAction(t.seatIndex(p.ID))
	return nil
}

// applyAction performs the legality checks and the mutation for one action.
// Every check precedes any mutation.
func (t *Table) applyAction(p *Player, req ActionRequest) error {
	toCall := t.toCall(p)

	switch req.Type {
	case ActionFold:
		p.Folded = true
		p.InHand = false
		t.appendLog("%s folds", p.Name)

	case ActionCheck:
		if toCall > 0 {
			return protocolErrorf("Cannot check, %d to call", toCall)
		}
		t.appendLog("%s checks", p.Name)

	case ActionCall:
		if toCall == 0 {
			return protocolErrorf("Nothing to call")
		}
		if p.Chips == 0 {
			return protocolErrorf("No chips left to call with")
		}
		paid := min(toCall, p.Chips)
		t.commit(p, paid)
		if p.AllIn {
			t.appendLog("%s calls %d (all-in)", p.Name, paid)
		} else {
			t.appendLog("%s calls %d", p.Name, paid)
		}

	case ActionRaise:
		maxTotal := p.BetThisRound + p.Chips
		if !t.raiseRightsOpen(p) {
			return protocolErrorf("Cannot raise: action not reopened")
		}
		n := req.Amount
		if n <= t.currentBet {
			return protocolErrorf("Raise must exceed the current bet of %d", t.currentBet)
		}
		if n > maxTotal {
			return protocolErrorf("Insufficient chips to raise to %d", n)
		}
		if n < t.minRaiseTo() && n != maxTotal {
			return protocolErrorf("Raise must be at least %d (or all-in)", t.minRaiseTo())
		}

		// A full raise reopens action for everyone; an all-in under-raise
		// does not, and leaves lastRaiseSize untouched.
		fullRaise := n-t.currentBet >= t.lastRaiseSize
		if fullRaise {
			t.lastRaiseSize = n - t.currentBet
			for _, q := range t.players {
				if q != p && q.Actionable() {
					q.Acted = false
				}
			}
		}
		t.currentBet = n
		t.commit(p, n-p.BetThisRound)
		if p.AllIn {
			t.appendLog("%s raises to %d (all-in)", p.Name, n)
		} else {
			t.appendLog("%s raises to %d", p.Name, n)
		}

	default:
		return protocolErrorf("Unknown action %q", string(req.Type))
	}

	return nil
}

// roundComplete reports whether the betting round is finished: every still-
// actionable player has acted and matched the current bet. Zero actionable
// players also completes the round (the lifecycle then fast-forwards).
func (t *Table) roundComplete() bool {
	for _, p := range t.players {
		if !p.Actionable() {
			continue
		}
		if !p.Acted || p.BetThisRound != t.currentBet {
			return false
		}
	}
	return true
}

// continueAfterAction moves the game forward after the player at seat
// actorIdx has acted (or been force-folded).
func (t *Table) continueAfterAction(actorIdx int) {
	if remaining := t.contenders(); len(remaining) == 1 {
		t.resolveByFold(remaining[0])
		return
	}
	if t.roundComplete() {
		t.advanceStreet()
		return
	}
	next := t.nextActionableAfter(actorIdx)
	if next == nil {
		// Nobody can act but the round is not matched; only possible when
		// the remaining contenders are all-in. Run out the board.
		t.advanceStreet()
		return
	}
	t.currentTurnID = next.ID
}
