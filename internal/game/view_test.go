package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-table/internal/deck"
)

func TestViewForStranger(t *testing.T) {
	t.Parallel()

	tbl := newTestTable(t)
	seat(t, tbl, "Alice", "Bob")

	s := tbl.ViewFor("stranger")
	assert.False(t, s.Joined)
	assert.Empty(t, s.YourCards)
	assert.False(t, s.CanAct)
	assert.Len(t, s.Players, 2)
}

func TestViewShowsOnlyOwnHoleCards(t *testing.T) {
	t.Parallel()

	tbl := newTestTable(t, stacked(t,
		"AS", "KH", "QD", "AD", "KC", "QC",
	))
	ids := seat(t, tbl, "Alice", "Bob", "Carol")
	require.NoError(t, tbl.StartGame(ids[0]))

	want := map[string][]string{
		ids[0]: {"QD", "QC"},
		ids[1]: {"AS", "AD"},
		ids[2]: {"KH", "KC"},
	}
	for id, codes := range want {
		expected, err := deck.ParseAll(codes...)
		require.NoError(t, err)
		assert.Equal(t, expected, tbl.ViewFor(id).YourCards, "viewer %s", id)
	}
}

func TestViewCarriesDeckCountsNotCards(t *testing.T) {
	t.Parallel()

	tbl := newTestTable(t)
	ids := seat(t, tbl, "Alice", "Bob", "Carol")
	require.NoError(t, tbl.StartGame(ids[0]))

	s := tbl.ViewFor(ids[0])
	assert.Equal(t, 46, s.DeckRemaining)
	assert.Equal(t, 0, s.BurnCount)
	assert.Empty(t, s.CommunityCards)

	act(t, tbl, ids[0], ActionCall, 0)
	act(t, tbl, ids[1], ActionCall, 0)
	act(t, tbl, ids[2], ActionCheck, 0)

	s = tbl.ViewFor(ids[0])
	assert.Equal(t, 42, s.DeckRemaining)
	assert.Equal(t, 1, s.BurnCount)
	assert.Len(t, s.CommunityCards, 3)
}

func TestOnlyActingViewerGetsAvailableActions(t *testing.T) {
	t.Parallel()

	tbl := newTestTable(t)
	ids := seat(t, tbl, "Alice", "Bob", "Carol")
	require.NoError(t, tbl.StartGame(ids[0]))

	s := tbl.ViewFor(ids[0])
	require.True(t, s.CanAct)
	assert.True(t, s.AvailableActions.CanFold)
	assert.True(t, s.AvailableActions.CanCall)
	assert.False(t, s.AvailableActions.CanCheck)

	for _, id := range ids[1:] {
		s := tbl.ViewFor(id)
		assert.False(t, s.CanAct, "viewer %s", id)
		assert.Equal(t, AvailableActions{}, s.AvailableActions)
	}
}

func TestFoldedViewerLosesCardsAndActions(t *testing.T) {
	t.Parallel()

	tbl := newTestTable(t)
	ids := seat(t, tbl, "Alice", "Bob", "Carol")
	require.NoError(t, tbl.StartGame(ids[0]))

	act(t, tbl, ids[0], ActionFold, 0)

	s := tbl.ViewFor(ids[0])
	assert.Empty(t, s.YourCards)
	assert.False(t, s.CanAct)
	assert.Nil(t, s.HandInsight)

	require.Len(t, s.Players, 3)
	for _, pv := range s.Players {
		if pv.ID == ids[0] {
			assert.True(t, pv.Folded)
			assert.False(t, pv.InHand)
		}
	}
}

func TestViewHidesDisconnectedSeats(t *testing.T) {
	t.Parallel()

	tbl := newTestTable(t)
	ids := seat(t, tbl, "Alice", "Bob", "Carol")
	require.NoError(t, tbl.StartGame(ids[0]))

	tbl.Disconnect(ids[2])

	s := tbl.ViewFor(ids[0])
	require.Len(t, s.Players, 2)
	for _, pv := range s.Players {
		assert.NotEqual(t, ids[2], pv.ID)
	}
}

func TestViewMirrorsTableConfig(t *testing.T) {
	t.Parallel()

	tbl := newTestTable(t)
	ids := seat(t, tbl, "Alice", "Bob")

	s := tbl.ViewFor(ids[0])
	assert.Equal(t, 1000, s.StartingStack)
	assert.Equal(t, 10, s.SmallBlind)
	assert.Equal(t, 20, s.BigBlind)
	assert.Equal(t, "lobby", s.Phase)
	assert.Equal(t, ids[0], s.YouID)
}
