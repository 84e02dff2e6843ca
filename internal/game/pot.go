package game

import (
	"sort"

	"github.com/lox/holdem-table/internal/deck"
	"github.com/lox/holdem-table/internal/evaluator"
)

// Payout is one row of a showdown settlement.
type Payout struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Amount   int    `json:"amount"`
}

// ShowdownHand is one revealed hand in the showdown summary.
type ShowdownHand struct {
	PlayerID string      `json:"playerId"`
	Name     string      `json:"name"`
	Cards    []deck.Card `json:"cards"`
	Desc     string      `json:"desc"`
}

// ShowdownSummary is the snapshot of the last settled hand, kept for display
// between hands.
type ShowdownSummary struct {
	Board   []deck.Card    `json:"board"`
	Hands   []ShowdownHand `json:"hands,omitempty"`
	Payouts []Payout       `json:"payouts"`
}

// distributePot settles the hand from per-player total contributions. Side
// pots are never materialized during betting; they are derived here by
// layering the distinct contribution levels. Folded players' chips still
// fund the layers they contributed to.
//
// Odd chips within a tied layer go one at a time to the tied winners,
// starting from the first winner in seat order after the dealer.
func (t *Table) distributePot(ranks map[string]evaluator.HandRank) []Payout {
	levels := contributionLevels(t.players)
	dealerIdx := t.seatIndex(t.dealerID)
	n := len(t.players)

	won := make(map[string]int)
	prev := 0
	for _, level := range levels {
		var contributors []*Player
		for _, p := range t.players {
			if p.TotalContribution >= level {
				contributors = append(contributors, p)
			}
		}
		amount := (level - prev) * len(contributors)
		prev = level

		var inContention []*Player
		for _, p := range contributors {
			if _, live := ranks[p.ID]; live {
				inContention = append(inContention, p)
			}
		}
		if len(inContention) == 0 {
			// Cannot happen under normal play: folding always leaves at
			// least one live contributor behind.
			continue
		}

		winners := bestRanked(inContention, ranks)

		// Seat order after the dealer decides who receives odd chips.
		sort.SliceStable(winners, func(i, j int) bool {
			return t.ringDistance(dealerIdx, winners[i].ID, n) < t.ringDistance(dealerIdx, winners[j].ID, n)
		})

		share := amount / len(winners)
		remainder := amount % len(winners)
		for i, w := range winners {
			won[w.ID] += share
			if i < remainder {
				won[w.ID]++
			}
		}
	}

	var payouts []Payout
	for _, p := range t.players {
		if amount, ok := won[p.ID]; ok {
			payouts = append(payouts, Payout{PlayerID: p.ID, Name: p.Name, Amount: amount})
		}
	}
	return payouts
}

// contributionLevels returns the distinct positive contribution totals in
// ascending order.
func contributionLevels(players []*Player) []int {
	seen := map[int]struct{}{}
	var levels []int
	for _, p := range players {
		if p.TotalContribution > 0 {
			if _, dup := seen[p.TotalContribution]; !dup {
				seen[p.TotalContribution] = struct{}{}
				levels = append(levels, p.TotalContribution)
			}
		}
	}
	sort.Ints(levels)
	return levels
}

// bestRanked filters the players tied for the best hand rank.
func bestRanked(players []*Player, ranks map[string]evaluator.HandRank) []*Player {
	best := ranks[players[0].ID]
	for _, p := range players[1:] {
		if evaluator.Compare(ranks[p.ID], best) > 0 {
			best = ranks[p.ID]
		}
	}
	var winners []*Player
	for _, p := range players {
		if evaluator.Compare(ranks[p.ID], best) == 0 {
			winners = append(winners, p)
		}
	}
	return winners
}

// ringDistance is the number of seats from the dealer to the player, going
// clockwise and starting at one for the seat directly after the dealer.
func (t *Table) ringDistance(dealerIdx int, id string, n int) int {
	idx := t.seatIndex(id)
	return (idx - dealerIdx - 1 + n) % n
}
