package evaluator

import "fmt"

var rankNames = map[int]string{
	2: "Two", 3: "Three", 4: "Four", 5: "Five", 6: "Six", 7: "Seven",
	8: "Eight", 9: "Nine", 10: "Ten", 11: "Jack", 12: "Queen", 13: "King", 14: "Ace",
}

// RankName returns the singular name of a rank value ("Ace", "Ten").
func RankName(value int) string {
	if name, ok := rankNames[value]; ok {
		return name
	}
	return "?"
}

func plural(value int) string {
	if value == 6 {
		return "Sixes"
	}
	return RankName(value) + "s"
}

// Describe renders a hand rank as a short human string, e.g.
// "Flush (Ace high)" or "Two Pair (Queens and Twos)".
func (hr HandRank) Describe() string {
	tb := func(i int) int {
		if i < len(hr.Tiebreaks) {
			return hr.Tiebreaks[i]
		}
		return 0
	}
	switch hr.Category {
	case StraightFlush:
		return fmt.Sprintf("Straight Flush (%s high)", RankName(tb(0)))
	case FourOfAKind:
		return fmt.Sprintf("Four of a Kind (%s)", plural(tb(0)))
	case FullHouse:
		return fmt.Sprintf("Full House (%s over %s)", plural(tb(0)), plural(tb(1)))
	case Flush:
		return fmt.Sprintf("Flush (%s high)", RankName(tb(0)))
	case Straight:
		return fmt.Sprintf("Straight (%s high)", RankName(tb(0)))
	case ThreeOfAKind:
		return fmt.Sprintf("Three of a Kind (%s)", plural(tb(0)))
	case TwoPair:
		return fmt.Sprintf("Two Pair (%s and %s)", plural(tb(0)), plural(tb(1)))
	case OnePair:
		return fmt.Sprintf("Pair of %s", plural(tb(0)))
	default:
		return fmt.Sprintf("High Card (%s)", RankName(tb(0)))
	}
}
