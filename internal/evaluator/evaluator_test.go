package evaluator

import (
	rand "math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-table/internal/deck"
)

func cards(t *testing.T, codes ...string) []deck.Card {
	t.Helper()
	out, err := deck.ParseAll(codes...)
	require.NoError(t, err)
	return out
}

func eval(t *testing.T, codes ...string) HandRank {
	t.Helper()
	rank, err := Evaluate(cards(t, codes...))
	require.NoError(t, err)
	return rank
}

func TestEvaluateRejectsWrongCardCount(t *testing.T) {
	t.Parallel()

	_, err := Evaluate(cards(t, "AS", "KS"))
	assert.Error(t, err)
	_, err = Evaluate(cards(t, "AS", "KS", "QS", "JS", "TS", "9S", "8S", "7S"))
	assert.Error(t, err)
}

func TestCategoryWitnesses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		codes    []string
		category Category
	}{
		{"high card", []string{"AS", "KD", "9C", "5H", "2S"}, HighCard},
		{"one pair", []string{"AS", "AD", "9C", "5H", "2S"}, OnePair},
		{"two pair", []string{"AS", "AD", "9C", "9H", "2S"}, TwoPair},
		{"trips", []string{"AS", "AD", "AC", "9H", "2S"}, ThreeOfAKind},
		{"straight", []string{"9S", "8D", "7C", "6H", "5S"}, Straight},
		{"flush", []string{"AS", "JS", "9S", "5S", "2S"}, Flush},
		{"full house", []string{"AS", "AD", "AC", "9H", "9S"}, FullHouse},
		{"quads", []string{"AS", "AD", "AC", "AH", "2S"}, FourOfAKind},
		{"straight flush", []string{"9S", "8S", "7S", "6S", "5S"}, StraightFlush},
	}

	// Each category beats every category below it, on these witnesses.
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rank := eval(t, tt.codes...)
			assert.Equal(t, tt.category, rank.Category)
		})
		if i > 0 {
			a := eval(t, tests[i].codes...)
			b := eval(t, tests[i-1].codes...)
			assert.Positive(t, Compare(a, b), "%s should beat %s", tests[i].name, tests[i-1].name)
		}
	}
}

func TestPermutationInvariance(t *testing.T) {
	t.Parallel()

	base := cards(t, "AS", "AD", "9C", "9H", "2S")
	want, err := Evaluate(base)
	require.NoError(t, err)

	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 50; i++ {
		shuffled := append([]deck.Card(nil), base...)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		got, err := Evaluate(shuffled)
		require.NoError(t, err)
		assert.Zero(t, Compare(got, want))
	}
}

func TestWheelScoresFiveHigh(t *testing.T) {
	t.Parallel()

	wheel := eval(t, "AS", "2D", "3C", "4H", "5S")
	require.Equal(t, Straight, wheel.Category)
	assert.Equal(t, []int{5}, wheel.Tiebreaks)

	sixHigh := eval(t, "2D", "3C", "4H", "5S", "6D")
	assert.Negative(t, Compare(wheel, sixHigh))
}

func TestSteelWheelIsAStraightFlush(t *testing.T) {
	t.Parallel()

	rank := eval(t, "AS", "2S", "3S", "4S", "5S")
	assert.Equal(t, StraightFlush, rank.Category)
	assert.Equal(t, []int{5}, rank.Tiebreaks)
}

func TestKickersBreakTies(t *testing.T) {
	t.Parallel()

	highKicker := eval(t, "AS", "AD", "KC", "5H", "2S")
	lowKicker := eval(t, "AH", "AC", "QC", "5D", "2C")
	assert.Positive(t, Compare(highKicker, lowKicker))

	split := eval(t, "AH", "AC", "KD", "5D", "2C")
	assert.Zero(t, Compare(highKicker, split))
}

func TestTwoPairOrdersPairsByRank(t *testing.T) {
	t.Parallel()

	rank := eval(t, "2S", "2D", "QC", "QH", "7S")
	require.Equal(t, TwoPair, rank.Category)
	assert.Equal(t, []int{12, 2, 7}, rank.Tiebreaks)
}

func TestSevenCardsPickBestFive(t *testing.T) {
	t.Parallel()

	// Ace-high flush hidden in seven cards.
	rank := eval(t, "AS", "KS", "2S", "7S", "9S", "2D", "3C")
	require.Equal(t, Flush, rank.Category)
	assert.Equal(t, "Flush (Ace high)", rank.Describe())

	// Pocket queens on the same board make two pair.
	other := eval(t, "QH", "QC", "2S", "7S", "9S", "2D", "3C")
	require.Equal(t, TwoPair, other.Category)
	assert.Equal(t, "Two Pair (Queens and Twos)", other.Describe())

	assert.Positive(t, Compare(rank, other))
}

func TestWheelLosesToHigherStraightOnBoard(t *testing.T) {
	t.Parallel()

	// Board 3-4-5-7-K: A-2 makes the wheel, 6-2 makes a seven-high straight.
	p1 := eval(t, "AH", "2H", "3S", "4D", "5C", "7H", "KD")
	p2 := eval(t, "6D", "2C", "3S", "4D", "5C", "7H", "KD")
	require.Equal(t, Straight, p1.Category)
	require.Equal(t, Straight, p2.Category)
	assert.Equal(t, []int{5}, p1.Tiebreaks)
	assert.Equal(t, []int{7}, p2.Tiebreaks)
	assert.Positive(t, Compare(p2, p1))
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		codes []string
		want  string
	}{
		{[]string{"9S", "8S", "7S", "6S", "5S"}, "Straight Flush (Nine high)"},
		{[]string{"AS", "AD", "AC", "AH", "2S"}, "Four of a Kind (Aces)"},
		{[]string{"QS", "QD", "QC", "2H", "2S"}, "Full House (Queens over Twos)"},
		{[]string{"AS", "JS", "9S", "5S", "2S"}, "Flush (Ace high)"},
		{[]string{"AS", "2D", "3C", "4H", "5S"}, "Straight (Five high)"},
		{[]string{"6S", "6D", "6C", "9H", "2S"}, "Three of a Kind (Sixes)"},
		{[]string{"AS", "AD", "9C", "9H", "2S"}, "Two Pair (Aces and Nines)"},
		{[]string{"TS", "TD", "9C", "5H", "2S"}, "Pair of Tens"},
		{[]string{"AS", "KD", "9C", "5H", "2S"}, "High Card (Ace)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, eval(t, tt.codes...).Describe())
	}
}
