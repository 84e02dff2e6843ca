package game

import (
	"fmt"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-table/internal/deck"
	"github.com/lox/holdem-table/internal/randutil"
)

func newTestTable(t *testing.T, opts ...Option) *Table {
	t.Helper()
	return NewTable(
		Config{StartingStack: 1000, SmallBlind: 10, BigBlind: 20},
		randutil.New(42),
		quartz.NewMock(t),
		log.New(io.Discard),
		opts...,
	)
}

// seat joins one player per name and returns their viewer ids in seat order.
func seat(t *testing.T, tbl *Table, names ...string) []string {
	t.Helper()
	ids := make([]string, len(names))
	for i, name := range names {
		ids[i] = fmt.Sprintf("viewer-%d", i+1)
		require.NoError(t, tbl.Join(ids[i], name))
	}
	return ids
}

// stacked builds a WithStackedCards option from card codes.
func stacked(t *testing.T, codes ...string) Option {
	t.Helper()
	cards, err := deck.ParseAll(codes...)
	require.NoError(t, err)
	return WithStackedCards(cards...)
}

// act submits an action and fails the test on error.
func act(t *testing.T, tbl *Table, id string, action ActionType, amount int) {
	t.Helper()
	require.NoError(t, tbl.HandleAction(id, ActionRequest{Type: action, Amount: amount}))
}

// chipSum is total chips behind plus the live pot, which must be conserved.
func chipSum(tbl *Table) int {
	sum := tbl.pot
	for _, p := range tbl.players {
		sum += p.Chips
	}
	return sum
}
