package draw

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loto/internal/domain"
)

func TestSafeInitAvoidsRiskyNumbers(t *testing.T) {
	for seed := int64(0); seed < 100; seed++ {
		a := newPlayer(t, "a", []int{1, 11, 21, 31, 41})
		c := newTestController(t, seed, []domain.Player{a}, WithKThreshold(90))
		forceDraw(t, c, 1, 11, 21)

		res, ok := c.DrawNext()
		require.True(t, ok)
		assert.Equal(t, SafeInit, res.Stage)
		assert.Equal(t, PoolSafe, res.Pool)
		assert.NotContains(t, []int{31, 41}, res.Number, "seed %d", seed)
	}
}

func TestSafeInitRelaxesWhenEverythingIsRisky(t *testing.T) {
	// 18 single-row players cover 1..90; three hits on every row leaves no safe number.
	players := make([]domain.Player, 0, 18)
	var forced []int
	for i := 0; i < 18; i++ {
		base := 5*i + 1
		players = append(players, newPlayer(t, string(rune('A'+i)),
			[]int{base, base + 1, base + 2, base + 3, base + 4}))
		forced = append(forced, base, base+1, base+2)
	}
	c := newTestController(t, 5, players, WithKThreshold(90))
	forceDraw(t, c, forced...)
	require.Equal(t, 36, c.Remaining())

	res, ok := c.DrawNext()
	require.True(t, ok)
	assert.Equal(t, SafeInit, res.Stage)
	assert.Equal(t, PoolRelaxed, res.Pool)

	res, ok = c.DrawNext()
	require.True(t, ok)
	assert.Equal(t, PoolRelaxed, res.Pool)
}

func TestWaitingPushPrefersRowsOneAwayFromWaiting(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		a := newPlayer(t, "a", []int{1, 11, 21, 31, 41})
		b := newPlayer(t, "b", []int{5, 15, 25, 35, 45})
		c := newTestController(t, seed, []domain.Player{a, b}, WithKThreshold(0))
		forceDraw(t, c, 1, 11, 21)

		res, ok := c.DrawNext()
		require.True(t, ok)
		assert.Equal(t, WaitingPush, res.Stage)
		assert.Equal(t, PoolDeficient3, res.Pool)
		assert.Contains(t, []int{31, 41}, res.Number)
	}
}

func TestWaitingPushSkipsPlayersAlreadyWaiting(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		a := newPlayer(t, "a", []int{1, 11, 21, 31, 41})
		b := newPlayer(t, "b", []int{5, 15, 25, 35, 45})
		c := newTestController(t, seed, []domain.Player{a, b}, WithKThreshold(0))
		forceDraw(t, c, 1, 11, 21, 31, 5, 15)

		res, ok := c.DrawNext()
		require.True(t, ok)
		assert.Equal(t, PoolDeficient2, res.Pool)
		assert.Contains(t, []int{25, 35, 45}, res.Number)
	}
}

func TestWaitingPushAvoidsCompletingRows(t *testing.T) {
	for seed := int64(0); seed < 100; seed++ {
		a := newPlayer(t, "a", []int{1, 11, 21, 31, 41})
		b := newPlayer(t, "b", []int{41, 52, 63, 74, 85})
		c := newTestController(t, seed, []domain.Player{a, b}, WithKThreshold(0))
		forceDraw(t, c, 1, 11, 21, 31)

		res, ok := c.DrawNext()
		require.True(t, ok)
		assert.Equal(t, PoolDeficientLow, res.Pool)
		assert.NotEqual(t, 41, res.Number, "seed %d handed player a Kinh", seed)
		assert.False(t, c.Status(0).Won())
	}
}

func TestWaitingPushCompletesWhenTierHasNoAlternative(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		a := newPlayer(t, "a", []int{1, 11, 21, 31, 41}, []int{2, 12, 22, 32, 74})
		b := newPlayer(t, "b", []int{41, 52, 63, 74, 85})
		c := newTestController(t, seed, []domain.Player{a, b}, WithKThreshold(0))
		forceDraw(t, c, 1, 11, 21, 31, 2, 12, 22, 32, 52, 63, 85)

		res, ok := c.DrawNext()
		require.True(t, ok)
		assert.Equal(t, PoolDeficient3, res.Pool)
		assert.Contains(t, []int{41, 74}, res.Number)
		assert.True(t, c.Status(0).Won())
		assert.True(t, c.AllWaiting())
	}
}

func TestNaturalFinishIsUnrestricted(t *testing.T) {
	a := newPlayer(t, "a", []int{1, 11, 21, 31, 41})
	c := newTestController(t, 9, []domain.Player{a}, WithKThreshold(0))
	forceDraw(t, c, 1, 11, 21, 31)

	res, ok := c.DrawNext()
	require.True(t, ok)
	assert.Equal(t, NaturalFinish, res.Stage)
	assert.Equal(t, PoolNatural, res.Pool)
}

func TestCandidatePoolString(t *testing.T) {
	assert.Equal(t, "relaxed", PoolRelaxed.String())
	assert.Equal(t, "deficient_low", PoolDeficientLow.String())
	assert.Equal(t, "CandidatePool(42)", CandidatePool(42).String())
}
