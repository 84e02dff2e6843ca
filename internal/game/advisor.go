package game

import (
	"fmt"
	"sort"

	"github.com/lox/holdem-table/internal/deck"
	"github.com/lox/holdem-table/internal/evaluator"
)

// Insight is the best-effort strength hint shown to the acting player. It is
// UX metadata only; nothing in the engine consults it.
type Insight struct {
	CurrentHand    string   `json:"currentHand"`
	StrengthScore  int      `json:"strengthScore"`
	StrengthLabel  string   `json:"strengthLabel"`
	Draws          []string `json:"draws"`
	Recommendation string   `json:"recommendation"`
}

// insightFor computes the advisor tuple for a viewer, or nil when the viewer
// is not in a live hand.
func (t *Table) insightFor(p *Player) *Insight {
	if !t.handInProgress || !p.InHand || len(p.HoleCards) != 2 {
		return nil
	}

	if t.phase == Preflop {
		return t.preflopInsight(p)
	}
	return t.postflopInsight(p)
}

func strengthLabel(score int) string {
	switch {
	case score >= 90:
		return "Monster"
	case score >= 78:
		return "Very Strong"
	case score >= 64:
		return "Strong"
	case score >= 50:
		return "Playable"
	case score >= 36:
		return "Marginal"
	default:
		return "Weak"
	}
}

func clampScore(score int) int {
	if score < 1 {
		return 1
	}
	if score > 100 {
		return 100
	}
	return score
}

func recommendationFor(score, toCall int) string {
	switch {
	case score >= 78:
		return "Bet or raise for value"
	case score >= 50 && toCall == 0:
		return "Bet or check"
	case score >= 50:
		return "Call"
	case toCall == 0:
		return "Check"
	default:
		return "Fold to pressure"
	}
}

// preflopInsight scores the hole cards with a closed formula over high rank,
// low rank, suitedness, gap and pairs.
func (t *Table) preflopInsight(p *Player) *Insight {
	c1, c2 := p.HoleCards[0], p.HoleCards[1]
	high, low := c1.Value(), c2.Value()
	if low > high {
		high, low = low, high
	}
	suited := c1.Suit == c2.Suit
	pair := high == low
	gap := high - low - 1

	var score int
	switch {
	case pair:
		score = 48 + high*7/2 // 22 scores 55, AA scores 97
	default:
		score = high*4 + low - 10
		if suited {
			score += 6
		}
		if gap >= 1 {
			score -= 4 * gap
		}
		if gap == 0 && high <= 10 {
			score += 2 // small connectors play better than their ranks
		}
	}
	score = clampScore(score)

	desc := describeHole(high, low, suited, pair)
	return &Insight{
		CurrentHand:    desc,
		StrengthScore:  score,
		StrengthLabel:  strengthLabel(score),
		Draws:          []string{},
		Recommendation: recommendationFor(score, t.toCall(p)),
	}
}

func describeHole(high, low int, suited, pair bool) string {
	if pair {
		return fmt.Sprintf("Pocket %ss", evaluator.RankName(high))
	}
	kind := "offsuit"
	if suited {
		kind = "suited"
	}
	return fmt.Sprintf("%s-%s %s", evaluator.RankName(high), evaluator.RankName(low), kind)
}

// postflopInsight evaluates the viewer's best made hand over the known cards
// and scans for four-card flush and straight draws.
func (t *Table) postflopInsight(p *Player) *Insight {
	known := append(append([]deck.Card(nil), p.HoleCards...), t.community...)
	rank, err := evaluator.Evaluate(known)
	if err != nil {
		return nil
	}

	// Monotonic in made-hand category, nudged by the primary tiebreak.
	base := [...]int{18, 42, 58, 66, 74, 80, 88, 94, 97}[rank.Category]
	score := base
	if len(rank.Tiebreaks) > 0 {
		score += rank.Tiebreaks[0] / 5
	}

	draws := detectDraws(known)
	if t.phase != River {
		for _, d := range draws {
			if d == "Flush draw" {
				score += 8
			} else if d == "Open-ended straight draw" {
				score += 6
			} else {
				score += 3
			}
		}
	}
	score = clampScore(score)

	return &Insight{
		CurrentHand:    rank.Describe(),
		StrengthScore:  score,
		StrengthLabel:  strengthLabel(score),
		Draws:          draws,
		Recommendation: recommendationFor(score, t.toCall(p)),
	}
}

// detectDraws reports four-to-a-suit and four-to-a-run draws over the known
// cards.
func detectDraws(cards []deck.Card) []string {
	draws := []string{}

	suitCount := map[deck.Suit]int{}
	for _, c := range cards {
		suitCount[c.Suit]++
	}
	for _, n := range suitCount {
		if n == 4 {
			draws = append(draws, "Flush draw")
			break
		}
	}

	// Distinct rank values, aces counted both high and low.
	present := map[int]bool{}
	for _, c := range cards {
		present[c.Value()] = true
		if c.Rank == deck.Ace {
			present[1] = true
		}
	}

	bestWindow := 0 // 1 = gutshot, 2 = open-ended
	for lo := 1; lo+4 <= 14; lo++ {
		run := []int{}
		for v := lo; v < lo+5; v++ {
			if present[v] {
				run = append(run, v)
			}
		}
		if len(run) == 5 {
			return draws // already a straight, not a draw
		}
		if len(run) != 4 {
			continue
		}
		// Four consecutive ranks with a live card above or below are
		// open-ended; a hole inside the window is a gutshot.
		if run[3]-run[0] == 3 && run[0] > 1 && run[3] < 14 {
			bestWindow = 2
		} else if bestWindow < 1 {
			bestWindow = 1
		}
	}
	switch bestWindow {
	case 2:
		draws = append(draws, "Open-ended straight draw")
	case 1:
		draws = append(draws, "Gutshot straight draw")
	}

	sort.Strings(draws)
	return draws
}
