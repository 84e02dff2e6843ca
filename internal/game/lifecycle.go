package game

import (
	"sort"
	"strings"

	"github.com/lox/holdem-table/internal/deck"
	"github.com/lox/holdem-table/internal/evaluator"
)

// startHand deals a fresh hand: cleans up departed seats, rotates the
// button, posts blinds and computes first to act.
func (t *Table) startHand() {
	// Departed seats are cleaned up between hands only.
	for _, p := range append([]*Player(nil), t.players...) {
		if p.Disconnected {
			t.removePlayer(p.ID)
		}
	}
	t.reassignAdmin()

	if t.eligibleCount() < 2 {
		t.endGame()
		return
	}

	d, err := deck.New(t.rng)
	if err != nil {
		t.abortHand(err)
		return
	}
	d.Shuffle()
	if t.stacked != nil {
		if err := d.Stack(t.stacked...); err != nil {
			t.abortHand(err)
			return
		}
	}
	t.deck = d

	t.community = nil
	t.pot = 0
	t.currentBet = 0
	t.lastRaiseSize = t.cfg.BigBlind
	t.handNumber++
	t.handInProgress = true
	t.phase = Preflop

	for _, p := range t.players {
		p.resetForHand()
		if eligible(p) {
			p.InHand = true
		}
	}

	t.rotateButton()
	dealerIdx := t.seatIndex(t.dealerID)
	sb := t.playerByID(t.smallBlindID)
	bb := t.playerByID(t.bigBlindID)
	if dealerIdx < 0 || sb == nil || bb == nil {
		t.abortHand(protocolErrorf("blinds could not be assigned"))
		return
	}

	t.appendLog("Hand #%d: %s has the button", t.handNumber, t.players[dealerIdx].Name)

	// Two rounds of one card each, starting left of the button.
	for round := 0; round < 2; round++ {
		for i := 1; i <= len(t.players); i++ {
			p := t.players[(dealerIdx+i)%len(t.players)]
			if !p.InHand {
				continue
			}
			card, err := t.deck.Draw("hole card")
			if err != nil {
				t.abortHand(err)
				return
			}
			p.HoleCards = append(p.HoleCards, card)
		}
	}

	// Blinds are forced bets: capped by chips, and short blinds never lower
	// the price of entry.
	sbPaid := min(t.cfg.SmallBlind, sb.Chips)
	t.commit(sb, sbPaid)
	bbPaid := min(t.cfg.BigBlind, bb.Chips)
	t.commit(bb, bbPaid)
	t.currentBet = max(t.cfg.BigBlind, sbPaid, bbPaid)
	t.appendLog("%s posts small blind %d, %s posts big blind %d", sb.Name, sbPaid, bb.Name, bbPaid)

	for _, p := range t.players {
		p.Acted = !p.Actionable()
	}

	// First to act preflop is left of the big blind; heads-up that is the
	// button.
	first := t.nextActionableAfter(t.seatIndex(bb.ID))
	if first == nil {
		t.currentTurnID = ""
		t.advanceStreet()
		return
	}
	t.currentTurnID = first.ID
}

// rotateButton advances the dealer to the next eligible seat and assigns the
// blinds. Heads-up the dealer is also the small blind.
func (t *Table) rotateButton() {
	from := t.seatIndex(t.dealerID)
	// A missing previous dealer (first hand, or their seat was removed)
	// scans from the end of the ring so seat 0 is considered first.
	if from < 0 {
		from = len(t.players) - 1
	}
	inHand := func(p *Player) bool { return p.InHand }
	dealer := t.nextSeatWhere(from, inHand)
	if dealer == nil {
		t.dealerID, t.smallBlindID, t.bigBlindID = "", "", ""
		return
	}
	t.dealerID = dealer.ID

	playing := 0
	for _, p := range t.players {
		if p.InHand {
			playing++
		}
	}
	if playing == 2 {
		t.smallBlindID = dealer.ID
		bb := t.nextSeatWhere(t.seatIndex(dealer.ID), inHand)
		t.bigBlindID = bb.ID
		return
	}
	sb := t.nextSeatWhere(t.seatIndex(dealer.ID), inHand)
	bb := t.nextSeatWhere(t.seatIndex(sb.ID), inHand)
	t.smallBlindID = sb.ID
	t.bigBlindID = bb.ID
}

// advanceStreet moves to the next street, fast-forwarding through the
// remaining board when nobody can act but at least two contenders remain.
func (t *Table) advanceStreet() {
	for {
		if t.phase == River {
			t.showdown()
			return
		}

		var draws int
		switch t.phase {
		case Preflop:
			t.phase = Flop
			draws = 3
		case Flop:
			t.phase = Turn
			draws = 1
		case Turn:
			t.phase = River
			draws = 1
		default:
			t.abortHand(protocolErrorf("street advance from phase %s", t.phase))
			return
		}

		if err := t.deck.Burn(t.phase.String()); err != nil {
			t.abortHand(err)
			return
		}
		for i := 0; i < draws; i++ {
			card, err := t.deck.Draw(t.phase.String())
			if err != nil {
				t.abortHand(err)
				return
			}
			t.community = append(t.community, card)
		}
		t.appendLog("%s: %s", titled(t.phase.String()), cardCodes(t.community))

		t.currentBet = 0
		t.lastRaiseSize = t.cfg.BigBlind
		for _, p := range t.players {
			p.BetThisRound = 0
			p.Acted = !p.Actionable()
		}

		first := t.nextActionableAfter(t.seatIndex(t.dealerID))
		if first != nil {
			t.currentTurnID = first.ID
			return
		}
		// Nobody can act; keep revealing until showdown.
		t.currentTurnID = ""
	}
}

// resolveByFold awards the whole pot to the last contender standing.
func (t *Table) resolveByFold(winner *Player) {
	amount := t.pot
	winner.Chips += amount
	t.pot = 0
	t.appendLog("%s wins %d (everyone else folded)", winner.Name, amount)
	t.lastShowdown = &ShowdownSummary{
		Board:   append([]deck.Card(nil), t.community...),
		Payouts: []Payout{{PlayerID: winner.ID, Name: winner.Name, Amount: amount}},
	}
	t.finishHand()
}

// showdown evaluates every contender's best 7-card hand and distributes the
// pot, side pots included.
func (t *Table) showdown() {
	t.phase = Showdown
	t.currentTurnID = ""

	contenders := t.contenders()
	ranks := make(map[string]evaluator.HandRank, len(contenders))
	summary := &ShowdownSummary{Board: append([]deck.Card(nil), t.community...)}

	for _, p := range contenders {
		cards := append(append([]deck.Card(nil), p.HoleCards...), t.community...)
		rank, err := evaluator.Evaluate(cards)
		if err != nil {
			t.abortHand(err)
			return
		}
		ranks[p.ID] = rank
		summary.Hands = append(summary.Hands, ShowdownHand{
			PlayerID: p.ID,
			Name:     p.Name,
			Cards:    append([]deck.Card(nil), p.HoleCards...),
			Desc:     rank.Describe(),
		})
		t.appendLog("%s shows %s: %s", p.Name, cardCodes(p.HoleCards), rank.Describe())
	}

	payouts := t.distributePot(ranks)
	for _, po := range payouts {
		if p := t.playerByID(po.PlayerID); p != nil {
			p.Chips += po.Amount
		}
		t.appendLog("%s wins %d", po.Name, po.Amount)
	}
	sort.SliceStable(payouts, func(i, j int) bool { return payouts[i].Amount > payouts[j].Amount })
	summary.Payouts = payouts
	t.lastShowdown = summary
	t.pot = 0

	t.finishHand()
}

// finishHand clears per-hand state and schedules the next hand when enough
// players remain.
func (t *Table) finishHand() {
	t.handInProgress = false
	t.currentTurnID = ""
	t.deck = nil
	for _, p := range t.players {
		p.InHand = false
		p.Folded = false
		p.AllIn = false
		p.Acted = false
		p.HoleCards = nil
		p.BetThisRound = 0
		p.TotalContribution = 0
	}

	// Seats that disconnected mid-hand are released now.
	for _, p := range append([]*Player(nil), t.players...) {
		if p.Disconnected {
			t.removePlayer(p.ID)
		}
	}
	t.reassignAdmin()

	if t.eligibleCount() >= 2 {
		t.nextHandDue = true
		return
	}
	t.endGame()
}

// endGame returns the table to the lobby.
func (t *Table) endGame() {
	if t.gameStarted {
		var last *Player
		for _, p := range t.players {
			if eligible(p) {
				last = p
			}
		}
		if last != nil && t.eligibleCount() == 1 {
			t.appendLog("%s wins the game with %d chips", last.Name, last.Chips)
		}
	}
	t.gameStarted = false
	t.handInProgress = false
	t.nextHandDue = false
	t.phase = Lobby
	t.currentTurnID = ""
	t.dealerID, t.smallBlindID, t.bigBlindID = "", "", ""
	t.deck = nil
	t.community = nil
	t.pot = 0
	t.currentBet = 0
	t.appendLog("Waiting in the lobby")
}

// abortHand handles an invariant violation: the hand is unwound and the
// table returns to the lobby with a diagnostic, rather than crashing the
// process.
func (t *Table) abortHand(err error) {
	t.logger.Error("hand aborted", "hand", t.handNumber, "error", err)
	t.appendLog("Hand #%d aborted: internal error", t.handNumber)
	for _, p := range t.players {
		// Committed chips are returned; the hand never happened.
		p.Chips += p.TotalContribution
	}
	t.endGame()
	for _, p := range t.players {
		p.InHand = false
		p.Folded = false
		p.AllIn = false
		p.Acted = false
		p.HoleCards = nil
		p.BetThisRound = 0
		p.TotalContribution = 0
	}
}

func titled(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// cardCodes renders cards as space-separated wire codes for log lines.
func cardCodes(cards []deck.Card) string {
	codes := make([]string, len(cards))
	for i, c := range cards {
		codes[i] = c.String()
	}
	return strings.Join(codes, " ")
}
