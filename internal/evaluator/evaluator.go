// Package evaluator ranks 5 to 7 card hold'em hands. A hand evaluates to a
// rank tuple (category plus ordered tiebreaks) and two tuples compare
// lexicographically, so equality signals a genuine split pot.
package evaluator

import (
	"fmt"
	"sort"

	"github.com/lox/holdem-table/internal/deck"
)

// Category enumerates hand categories from weakest to strongest.
type Category int

const (
	HighCard Category = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// String returns the human name of the category.
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case OnePair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// HandRank is the evaluation result. Tiebreaks holds rank values (A=14..2=2)
// in decreasing order of importance; its length depends on the category.
type HandRank struct {
	Category  Category
	Tiebreaks []int
}

// Compare returns <0 if a is weaker than b, >0 if stronger, 0 on a tie.
// Missing tiebreak positions compare as zero.
func Compare(a, b HandRank) int {
	if a.Category != b.Category {
		return int(a.Category) - int(b.Category)
	}
	n := len(a.Tiebreaks)
	if len(b.Tiebreaks) > n {
		n = len(b.Tiebreaks)
	}
	for i := 0; i < n; i++ {
		av, bv := 0, 0
		if i < len(a.Tiebreaks) {
			av = a.Tiebreaks[i]
		}
		if i < len(b.Tiebreaks) {
			bv = b.Tiebreaks[i]
		}
		if av != bv {
			return av - bv
		}
	}
	return 0
}

// Evaluate ranks the best 5-card hand available from 5, 6 or 7 cards.
func Evaluate(cards []deck.Card) (HandRank, error) {
	switch len(cards) {
	case 5:
		return evaluate5(cards), nil
	case 6, 7:
		return bestOf(cards), nil
	default:
		return HandRank{}, fmt.Errorf("evaluator needs 5-7 cards, got %d", len(cards))
	}
}

// bestOf enumerates every 5-card subset and keeps the maximum. With at most
// 7 cards that is 21 combinations; direct enumeration is plenty.
func bestOf(cards []deck.Card) HandRank {
	n := len(cards)
	var best HandRank
	first := true
	pick := make([]deck.Card, 5)
	for a := 0; a < n-4; a++ {
		for b := a + 1; b < n-3; b++ {
			for c := b + 1; c < n-2; c++ {
				for d := c + 1; d < n-1; d++ {
					for e := d + 1; e < n; e++ {
						pick[0], pick[1], pick[2], pick[3], pick[4] = cards[a], cards[b], cards[c], cards[d], cards[e]
						r := evaluate5(pick)
						if first || Compare(r, best) > 0 {
							best = r
							first = false
						}
					}
				}
			}
		}
	}
	return best
}

func evaluate5(cards []deck.Card) HandRank {
	values := make([]int, 5)
	flush := true
	for i, c := range cards {
		values[i] = c.Value()
		if c.Suit != cards[0].Suit {
			flush = false
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(values)))

	straightHigh := straightHighCard(values)

	// Rank multiplicity histogram, grouped as (count, rank) pairs sorted by
	// count then rank so the primary group always comes first.
	counts := map[int]int{}
	for _, v := range values {
		counts[v]++
	}
	type group struct{ count, rank int }
	groups := make([]group, 0, 5)
	for rank, count := range counts {
		groups = append(groups, group{count, rank})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}
		return groups[i].rank > groups[j].rank
	})

	switch {
	case flush && straightHigh > 0:
		return HandRank{StraightFlush, []int{straightHigh}}
	case groups[0].count == 4:
		return HandRank{FourOfAKind, []int{groups[0].rank, groups[1].rank}}
	case groups[0].count == 3 && groups[1].count == 2:
		return HandRank{FullHouse, []int{groups[0].rank, groups[1].rank}}
	case flush:
		return HandRank{Flush, values}
	case straightHigh > 0:
		return HandRank{Straight, []int{straightHigh}}
	case groups[0].count == 3:
		return HandRank{ThreeOfAKind, []int{groups[0].rank, groups[1].rank, groups[2].rank}}
	case groups[0].count == 2 && groups[1].count == 2:
		return HandRank{TwoPair, []int{groups[0].rank, groups[1].rank, groups[2].rank}}
	case groups[0].count == 2:
		return HandRank{OnePair, []int{groups[0].rank, groups[1].rank, groups[2].rank, groups[3].rank}}
	default:
		return HandRank{HighCard, values}
	}
}

// straightHighCard returns the straight's high card for five distinct ranks
// forming a run, 0 otherwise. The wheel (A-5-4-3-2) scores high card 5, so
// it loses to any other straight.
func straightHighCard(sortedDesc []int) int {
	for i := 1; i < 5; i++ {
		if sortedDesc[i] == sortedDesc[i-1] {
			return 0
		}
	}
	if sortedDesc[0]-sortedDesc[4] == 4 {
		return sortedDesc[0]
	}
	if sortedDesc[0] == 14 && sortedDesc[1] == 5 && sortedDesc[4] == 2 {
		return 5
	}
	return 0
}
