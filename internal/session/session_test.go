package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suderio/bloodline/internal/data"
	"github.com/suderio/bloodline/internal/engine"
	"github.com/suderio/bloodline/internal/parser"
	"github.com/suderio/bloodline/internal/persistence"
)

func newTestSession(t *testing.T) (*Session, persistence.Store) {
	t.Helper()
	cat, err := data.Default()
	require.NoError(t, err)
	eng, err := engine.New(cat, engine.WithClock(func() time.Time {
		return time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC)
	}))
	require.NoError(t, err)

	store := persistence.NewLibrary(t.TempDir())
	s, err := Create(eng, store, "Ash")
	require.NoError(t, err)
	return s, store
}

func run(t *testing.T, s *Session, input string) []string {
	t.Helper()
	lines, err := s.Execute(input)
	require.NoError(t, err, input)
	return lines
}

func TestCreateAndOpen(t *testing.T) {
	s, store := newTestSession(t)

	_, err := Create(s.Engine(), store, "ash")
	assert.Error(t, err)
	_, err = Create(s.Engine(), store, "  ")
	assert.Error(t, err)

	opened, err := Open(s.Engine(), store, "Ash")
	require.NoError(t, err)
	assert.Equal(t, s.Character().ID, opened.Character().ID)

	_, err = Open(s.Engine(), store, "Nobody")
	assert.ErrorIs(t, err, persistence.ErrNotFound)
}

func TestExecuteSavesMutations(t *testing.T) {
	s, store := newTestSession(t)

	run(t, s, "concept nature Survivor")
	run(t, s, "priority attr Physical 7")
	lines := run(t, s, "set attr Strength 3")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "Strength: 1 → 3")

	saved, err := store.Load("Ash")
	require.NoError(t, err)
	assert.Equal(t, "Survivor", saved.Concept.Nature)
	assert.Equal(t, 3, saved.Dots.Attr["Strength"])
	assert.Equal(t, 7, saved.Priorities.Attr["Physical"])
}

func TestExecuteReturnsRejections(t *testing.T) {
	s, store := newTestSession(t)

	_, err := s.Execute("set attr Strength 3")
	require.ErrorIs(t, err, engine.ErrPriorityNotSelected)
	assert.Equal(t, engine.ReasonPriorityNotSelected, engine.ReasonOf(err))

	saved, err := store.Load("Ash")
	require.NoError(t, err)
	assert.Equal(t, 1, saved.Dots.Attr["Strength"])

	_, err = s.Execute("set luck Strength 3")
	assert.ErrorContains(t, err, "unknown domain")

	_, err = s.Execute("frobnicate")
	assert.ErrorContains(t, err, "try help")

	_, err = s.Execute("concept name")
	assert.Error(t, err)
	assert.Equal(t, "Ash", s.Character().Concept.Name)

	lines, err := s.Execute("   ")
	assert.NoError(t, err)
	assert.Empty(t, lines)
}

func TestRenameMovesTheSheet(t *testing.T) {
	s, store := newTestSession(t)
	run(t, s, "concept name Ash Walker")

	names, err := store.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"Ash Walker"}, names)
}

func TestPlayCommands(t *testing.T) {
	s, store := newTestSession(t)
	t.Cleanup(engine.ResetMockDice)

	assert.Equal(t, []string{"Blood pool 9/10."}, run(t, s, "blood spend"))
	assert.Equal(t, []string{"Blood pool 10/10."}, run(t, s, "blood feed 3"))
	assert.Equal(t, []string{"Already full at 10."}, run(t, s, "blood feed"))
	_, err := s.Execute("blood set")
	assert.Error(t, err)

	assert.Equal(t, []string{"Health: Bruised."}, run(t, s, "health 1"))
	assert.Equal(t, engine.DamageBashing, s.Character().Status.HealthStates[0])
	assert.Equal(t, []string{"Health: Hurt (-1 dice)."}, run(t, s, "health 2 lethal"))
	assert.Equal(t, engine.DamageLethal, s.Character().Status.HealthStates[1])
	_, err = s.Execute("health 3 fire")
	assert.Error(t, err)
	for _, input := range []string{"health 0", "health 8 lethal"} {
		_, err = s.Execute(input)
		assert.ErrorIs(t, err, engine.ErrOutOfRange, input)
		assert.ErrorContains(t, err, "boxes run from 1 to 7", input)
	}

	_, err = s.Execute("willpower spend 2")
	require.ErrorIs(t, err, engine.ErrResourceExhausted)
	assert.Equal(t, 1, s.Character().Status.TempWillpower)
	saved, err := store.Load("Ash")
	require.NoError(t, err)
	assert.Equal(t, 1, saved.Status.TempWillpower)
	assert.Equal(t, []string{"Willpower 0/1."}, run(t, s, "willpower spend"))

	engine.MockDice([]int{8, 3, 9})
	assert.Equal(t, []string{"[8 3] vs 7: 1 successes"}, run(t, s, "roll 3 diff 7"))
}

func TestModesAndLedgers(t *testing.T) {
	s, _ := newTestSession(t)

	_, err := s.Execute("preview attr Wits")
	assert.Error(t, err)

	assert.Equal(t, []string{"Mode: experience."}, run(t, s, "mode xp"))
	assert.Equal(t, []string{"Awarded 10 xp; 10 available."}, run(t, s, "award 10"))
	assert.Equal(t, []string{"Next dot of Wits costs 4 xp; 10 available."}, run(t, s, "preview attr wits"))

	lines := run(t, s, "buy attr Wits")
	assert.Equal(t, "6 xp left.", lines[1])
	lines = run(t, s, "xp")
	assert.Equal(t, "Earned 10, spent 4, 6 available.", lines[0])
	assert.Equal(t, "2024-03-01 Wits 1 → 2: 4 xp", lines[1])

	assert.Equal(t, []string{"Mode: experience, in play."}, run(t, s, "mode play"))
	_, err = s.Execute("mode freebie")
	assert.ErrorIs(t, err, engine.ErrModeLocked)
	assert.Equal(t, []string{"Mode: creation."}, run(t, s, "mode creation"))
	assert.Equal(t, []string{"Mode: freebie."}, run(t, s, "mode freebie"))

	lines = run(t, s, "freebies")
	assert.Equal(t, []string{"Spent 0 of 15 (15 + 0 from flaws), 15 left."}, lines)
}

func TestReportsAndHelp(t *testing.T) {
	s, _ := newTestSession(t)

	lines := run(t, s, "progress")
	require.Len(t, lines, engine.PhasePlay)
	assert.Equal(t, "> 1. Concept: nature is empty; demeanor is empty; clan is empty", lines[0])

	assert.Len(t, run(t, s, "help"), len(parser.Usage))
	assert.Equal(t, []string{parser.Usage["roll"]}, run(t, s, "help roll"))

	_, err := s.Execute("next")
	assert.ErrorIs(t, err, engine.ErrPhaseIncomplete)
	assert.Equal(t, []string{"Saved."}, run(t, s, "save"))
}
