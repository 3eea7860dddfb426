package draw

import (
	"testing"

	"github.com/stretchr/testify/require"

	"loto/internal/domain"
	"loto/internal/rng"
)

// newPlayer builds a player holding one ticket whose rows carry the given numbers in their
// leading cells.
func newPlayer(t *testing.T, id string, rows ...[]int) domain.Player {
	t.Helper()
	grid := make([][]int, len(rows))
	for i, nums := range rows {
		line := make([]int, domain.RowWidth)
		copy(line, nums)
		grid[i] = line
	}
	p, err := domain.ParsePlayer(id, grid)
	require.NoError(t, err)
	return p
}

func dealtPlayers(t *testing.T, seed int64, count, tickets int) []domain.Player {
	t.Helper()
	src := rng.NewSeeded(seed)
	players := make([]domain.Player, count)
	for i := range players {
		dealt, err := domain.DealTickets(src, tickets)
		require.NoError(t, err)
		players[i], err = domain.NewPlayer(string(rune('a'+i)), dealt...)
		require.NoError(t, err)
	}
	return players
}

// forceDraw marks numbers as drawn without going through the selector.
func forceDraw(t *testing.T, c *Controller, nums ...int) {
	t.Helper()
	for _, n := range nums {
		require.True(t, c.pool.Remove(n), "number %d already drawn", n)
		c.index.OnDraw(n)
		c.drawn = append(c.drawn, n)
	}
}

func newTestController(t *testing.T, seed int64, players []domain.Player, opts ...Option) *Controller {
	t.Helper()
	opts = append([]Option{WithSource(rng.NewSeeded(seed))}, opts...)
	c, err := NewController(players, opts...)
	require.NoError(t, err)
	return c
}
