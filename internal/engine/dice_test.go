package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRollPoolBasic(t *testing.T) {
	res, err := RollPool(5, 6, false, false)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(res.Rolls) != 5 {
		t.Fatalf("expected 5 rolls, got %d", len(res.Rolls))
	}

	for _, v := range res.Rolls {
		if v < 1 || v > 10 {
			t.Errorf("roll out of bounds for d10: %d", v)
		}
	}
}

func TestRollPoolMocked(t *testing.T) {
	t.Cleanup(ResetMockDice)

	tests := []struct {
		name      string
		dice      []int
		diff      int
		specialty bool
		willpower bool
		net       int
		botch     bool
	}{
		{"ones cancel successes", []int{10, 7, 1, 3, 6}, 6, false, false, 2, false},
		{"specialty tens count twice", []int{10, 7, 1, 3, 6}, 6, true, false, 3, false},
		{"botch", []int{1, 3, 4}, 6, false, false, 0, true},
		{"cancelled successes are not a botch", []int{6, 1, 1}, 6, false, false, 0, false},
		{"willpower success cannot be cancelled", []int{1, 3}, 6, false, true, 1, false},
		{"plain failure", []int{2, 3, 4}, 6, false, false, 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			MockDice(tc.dice)
			res, err := RollPool(len(tc.dice), tc.diff, tc.specialty, tc.willpower)
			require.NoError(t, err)
			assert.Equal(t, tc.dice, res.Rolls)
			assert.Equal(t, tc.net, res.Net)
			assert.Equal(t, tc.botch, res.Botch)
		})
	}
}

func TestRollPoolRejectsBadInput(t *testing.T) {
	_, err := RollPool(3, 11, false, false)
	assert.Error(t, err)
	_, err = RollPool(3, 1, false, false)
	assert.Error(t, err)
	_, err = RollPool(-1, 6, false, false)
	assert.Error(t, err)

	res, err := RollPool(0, 6, false, false)
	require.NoError(t, err)
	assert.Empty(t, res.Rolls)
	assert.Equal(t, "[] vs 6: failure", res.String())
}

func TestEngineRollAppliesWoundsAndWillpower(t *testing.T) {
	t.Cleanup(ResetMockDice)
	e := newTestEngine(t)
	c := finishedCharacter(t, e)
	require.NoError(t, e.SetHealth(c, 0, DamageBashing))
	require.NoError(t, e.SetHealth(c, 1, DamageBashing))

	MockDice([]int{8, 1, 9})
	res, err := e.Roll(c, 3, 6, false, true)
	require.NoError(t, err)
	assert.Equal(t, []int{8, 1}, res.Rolls)
	assert.Equal(t, 1, res.Net)
	assert.Equal(t, 2, c.Status.TempWillpower)
	assert.Equal(t, "[8 1] vs 6: 1 successes", res.String())

	_, err = e.Roll(c, 3, 12, false, true)
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.Equal(t, 2, c.Status.TempWillpower)

	for slot := 0; slot < HealthLevels; slot++ {
		require.NoError(t, e.SetHealth(c, slot, DamageLethal))
	}
	_, err = e.Roll(c, 3, 6, false, false)
	assert.ErrorIs(t, err, ErrResourceExhausted)
}
