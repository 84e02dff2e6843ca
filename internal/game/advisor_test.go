package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-table/internal/deck"
)

func holePlayer(t *testing.T, codes ...string) *Player {
	t.Helper()
	cards, err := deck.ParseAll(codes...)
	require.NoError(t, err)
	return &Player{ID: "v", Name: "Tester", InHand: true, HoleCards: cards}
}

func TestNoInsightOutsideALiveHand(t *testing.T) {
	t.Parallel()

	tbl := newTestTable(t)
	ids := seat(t, tbl, "Alice", "Bob")
	assert.Nil(t, tbl.ViewFor(ids[0]).HandInsight)

	require.NoError(t, tbl.StartGame(ids[0]))
	assert.NotNil(t, tbl.ViewFor(ids[0]).HandInsight)
	assert.Nil(t, tbl.ViewFor("railbird").HandInsight)
}

func TestPreflopInsight(t *testing.T) {
	t.Parallel()

	tbl := newTestTable(t)
	tbl.handInProgress = true
	tbl.phase = Preflop

	tests := []struct {
		name  string
		codes []string
		hand  string
		label string
	}{
		{"aces", []string{"AS", "AD"}, "Pocket Aces", "Monster"},
		{"deuces", []string{"2S", "2D"}, "Pocket Twos", "Playable"},
		{"big slick suited", []string{"AS", "KS"}, "Ace-King suited", "Strong"},
		{"seven deuce", []string{"7S", "2D"}, "Seven-Two offsuit", "Weak"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := tbl.insightFor(holePlayer(t, tt.codes...))
			require.NotNil(t, in)
			assert.Equal(t, tt.hand, in.CurrentHand)
			assert.Equal(t, tt.label, in.StrengthLabel)
			assert.Empty(t, in.Draws)
		})
	}
}

func TestPreflopScoreOrdersHandsSensibly(t *testing.T) {
	t.Parallel()

	tbl := newTestTable(t)
	tbl.handInProgress = true
	tbl.phase = Preflop

	score := func(codes ...string) int {
		in := tbl.insightFor(holePlayer(t, codes...))
		require.NotNil(t, in)
		return in.StrengthScore
	}

	assert.Greater(t, score("AS", "AD"), score("KS", "KD"))
	assert.Greater(t, score("KS", "KD"), score("AS", "KS"))
	assert.Greater(t, score("AS", "KS"), score("AS", "KD"), "suited beats offsuit")
	assert.Greater(t, score("AS", "KD"), score("AS", "8D"), "closer gap scores higher")
	assert.Greater(t, score("TS", "9S"), score("7S", "2D"))
}

func TestPostflopInsightReportsMadeHandAndDraws(t *testing.T) {
	t.Parallel()

	tbl := newTestTable(t)
	tbl.handInProgress = true
	tbl.phase = Flop
	community, err := deck.ParseAll("2S", "7S", "QD")
	require.NoError(t, err)
	tbl.community = community

	in := tbl.insightFor(holePlayer(t, "AS", "KS"))
	require.NotNil(t, in)
	assert.Equal(t, "High Card (Ace)", in.CurrentHand)
	assert.Equal(t, []string{"Flush draw"}, in.Draws)

	in = tbl.insightFor(holePlayer(t, "QS", "QH"))
	require.NotNil(t, in)
	assert.Equal(t, "Three of a Kind (Queens)", in.CurrentHand)
	assert.Equal(t, "Strong", in.StrengthLabel)
	assert.Equal(t, "Bet or check", in.Recommendation)

	in = tbl.insightFor(holePlayer(t, "AH", "KH"))
	require.NotNil(t, in)
	assert.Equal(t, "High Card (Ace)", in.CurrentHand)
	assert.Empty(t, in.Draws)
	assert.Equal(t, "Fold to pressure", recommendationFor(in.StrengthScore, 40))
}

func TestDetectDraws(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		codes []string
		want  []string
	}{
		{"flush draw", []string{"AS", "KS", "2S", "7S", "9H"}, []string{"Flush draw"}},
		{"open ended", []string{"5H", "6C", "7D", "8S", "KH"}, []string{"Open-ended straight draw"}},
		{"gutshot", []string{"5H", "6C", "7D", "9S", "KH"}, []string{"Gutshot straight draw"}},
		{"wheel draw is a gutshot", []string{"AS", "2H", "3D", "4C", "KH"}, []string{"Gutshot straight draw"}},
		{"made straight is not a draw", []string{"5H", "6C", "7D", "8S", "9H"}, []string{}},
		{"no draw", []string{"2S", "7H", "QD", "KC", "9H"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cards, err := deck.ParseAll(tt.codes...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, detectDraws(cards))
		})
	}
}

func TestStrengthLabelBands(t *testing.T) {
	t.Parallel()

	tests := []struct {
		score int
		want  string
	}{
		{100, "Monster"},
		{90, "Monster"},
		{89, "Very Strong"},
		{78, "Very Strong"},
		{77, "Strong"},
		{64, "Strong"},
		{63, "Playable"},
		{50, "Playable"},
		{49, "Marginal"},
		{36, "Marginal"},
		{35, "Weak"},
		{1, "Weak"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, strengthLabel(tt.score), "score %d", tt.score)
	}
}

func TestRecommendationRespectsPrice(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Bet or raise for value", recommendationFor(85, 50))
	assert.Equal(t, "Bet or check", recommendationFor(60, 0))
	assert.Equal(t, "Call", recommendationFor(60, 50))
	assert.Equal(t, "Check", recommendationFor(20, 0))
	assert.Equal(t, "Fold to pressure", recommendationFor(20, 50))
}
