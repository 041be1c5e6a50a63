package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerationAndBlood(t *testing.T) {
	e := newTestEngine(t)
	c := e.NewCharacter("Ash")
	assert.Equal(t, 13, e.Generation(c))
	assert.Equal(t, 10, e.BloodLimits(c).MaxBlood)

	mustSet(t, e, c, DomainBackground, "generation", 5)
	assert.Equal(t, 8, e.Generation(c))
	limits := e.BloodLimits(c)
	assert.Equal(t, 15, limits.MaxBlood)
	assert.Equal(t, 3, limits.PerTurn)

	c.Dots.Back["Generation"] = 9
	assert.Equal(t, 8, e.Generation(c), "the table bottoms out at its lowest row")
}

func TestSpendAndFeed(t *testing.T) {
	e := newTestEngine(t)
	c := e.NewCharacter("Ash")
	require.Equal(t, 10, c.Status.BloodPool)

	assert.ErrorIs(t, e.SpendBlood(c, 0), ErrOutOfRange)
	assert.ErrorIs(t, e.SpendBlood(c, 2), ErrResourceExhausted)
	require.NoError(t, e.SpendBlood(c, 1))
	assert.Equal(t, 9, c.Status.BloodPool)

	gained, err := e.Feed(c, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, gained)
	assert.Equal(t, 10, c.Status.BloodPool)

	require.NoError(t, e.SetBloodPool(c, 0))
	assert.ErrorIs(t, e.SpendBlood(c, 1), ErrResourceExhausted)
	assert.ErrorIs(t, e.SetBloodPool(c, 11), ErrOutOfRange)
	_, err = e.Feed(c, -1)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestWillpowerPool(t *testing.T) {
	e := newTestEngine(t)
	c := finishedCharacter(t, e)
	e.SetPlayMode(c, true)
	require.Equal(t, 3, c.Status.TempWillpower)

	require.NoError(t, e.SpendWillpower(c, 1))
	require.NoError(t, e.SpendWillpower(c, 1))
	assert.Equal(t, 1, c.Status.TempWillpower)

	// raising permanent Willpower in play leaves the pool alone
	e.EnterXPMode(c)
	require.NoError(t, e.AwardXP(c, 3))
	mustSet(t, e, c, DomainWillpower, "", 4)
	assert.Equal(t, 4, c.Status.Willpower)
	assert.Equal(t, 1, c.Status.TempWillpower)

	gained, err := e.RegainWillpower(c, 10)
	require.NoError(t, err)
	assert.Equal(t, 3, gained)
	assert.Equal(t, 4, c.Status.TempWillpower)

	require.NoError(t, e.SpendWillpower(c, 1))
	e.ExitSpendModes(c)
	for c.Status.TempWillpower > 0 {
		require.NoError(t, e.SpendWillpower(c, 1))
	}
	assert.ErrorIs(t, e.SpendWillpower(c, 1), ErrResourceExhausted)
}

func TestSpendWillpowerIsAllOrNothing(t *testing.T) {
	e := newTestEngine(t)
	c := finishedCharacter(t, e)
	e.SetPlayMode(c, true)
	require.Equal(t, 3, c.Status.TempWillpower)

	assert.ErrorIs(t, e.SpendWillpower(c, 0), ErrOutOfRange)
	assert.ErrorIs(t, e.SpendWillpower(c, 4), ErrResourceExhausted)
	assert.Equal(t, 3, c.Status.TempWillpower)

	require.NoError(t, e.SpendWillpower(c, 3))
	assert.Zero(t, c.Status.TempWillpower)
}

func TestPlayModeStatusChanges(t *testing.T) {
	e := newTestEngine(t)
	c := finishedCharacter(t, e)
	e.SetPlayMode(c, true)

	_, err := e.ProposeDisciplineRating(c, "Potence", 3)
	require.ErrorIs(t, err, ErrModeLocked)

	// degeneration moves Humanity freely
	mustSet(t, e, c, DomainHumanity, "", 5)
	assert.Equal(t, 5, c.Status.Humanity)

	// losing permanent Willpower drags the pool down with it
	mustSet(t, e, c, DomainWillpower, "", 2)
	assert.Equal(t, 2, c.Status.Willpower)
	assert.Equal(t, 2, c.Status.TempWillpower)

	assert.ErrorIs(t, e.EnterFreebieMode(c), ErrModeLocked)
}

func TestHealthTrack(t *testing.T) {
	e := newTestEngine(t)
	c := e.NewCharacter("Ash")

	var seen []int
	for i := 0; i < 4; i++ {
		level, err := e.CycleHealth(c, 0)
		require.NoError(t, err)
		seen = append(seen, level)
	}
	assert.Equal(t, []int{DamageBashing, DamageLethal, DamageAggravated, DamageNone}, seen)

	_, err := e.CycleHealth(c, HealthLevels)
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.ErrorIs(t, e.SetHealth(c, 0, 4), ErrOutOfRange)
	assert.ErrorIs(t, e.SetHealth(c, -1, 1), ErrOutOfRange)

	tests := []struct {
		wounds        int
		name          string
		penalty       int
		incapacitated bool
	}{
		{0, "Healthy", 0, false},
		{1, "Bruised", 0, false},
		{2, "Hurt", -1, false},
		{3, "Injured", -1, false},
		{4, "Wounded", -2, false},
		{5, "Mauled", -2, false},
		{6, "Crippled", -5, false},
		{7, "Incapacitated", 0, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := e.NewCharacter("Ash")
			for slot := 0; slot < tc.wounds; slot++ {
				require.NoError(t, e.SetHealth(c, slot, DamageLethal))
			}
			assert.Equal(t, tc.name, HealthLevelName(c))
			penalty, incapacitated := HealthPenalty(c)
			assert.Equal(t, tc.penalty, penalty)
			assert.Equal(t, tc.incapacitated, incapacitated)
		})
	}
}
