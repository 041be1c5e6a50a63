package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suderio/bloodline/internal/parser"
)

func TestParseSet(t *testing.T) {
	cmd, err := parser.Parse(`set abil "Animal Ken" 2`)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	if cmd.Set == nil {
		t.Fatalf("Expected SetCmd, got nil")
	}
	if cmd.Set.Domain != "abil" {
		t.Errorf("Expected domain abil, got %s", cmd.Set.Domain)
	}
	if cmd.Set.TraitName() != "Animal Ken" {
		t.Errorf("Expected trait Animal Ken, got %s", cmd.Set.TraitName())
	}
	if cmd.Set.Value != 2 {
		t.Errorf("Expected value 2, got %d", cmd.Set.Value)
	}
}

func TestParseSetVariants(t *testing.T) {
	tests := []struct {
		input  string
		domain string
		trait  string
		value  int
	}{
		{"set attr Strength 3", "attr", "Strength", 3},
		{"SET Virt Self-Control 4", "Virt", "Self-Control", 4},
		{"set abil Animal Ken 1", "abil", "Animal Ken", 1},
		{"set willpower 6", "willpower", "", 6},
		{"set other Path of Night 2", "other", "Path of Night", 2},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			cmd, err := parser.Parse(tc.input)
			require.NoError(t, err)
			require.NotNil(t, cmd.Set)
			assert.Equal(t, tc.domain, cmd.Set.Domain)
			assert.Equal(t, tc.trait, cmd.Set.TraitName())
			assert.Equal(t, tc.value, cmd.Set.Value)
			assert.True(t, cmd.Mutates())
		})
	}
}

func TestParsePriorityAndCustom(t *testing.T) {
	cmd, err := parser.Parse("priority attr Physical 7")
	require.NoError(t, err)
	require.NotNil(t, cmd.Priority)
	assert.Equal(t, "Physical", cmd.Priority.Category)
	assert.Equal(t, 7, cmd.Priority.Value)

	cmd, err = parser.Parse("custom Talents Street Poetry")
	require.NoError(t, err)
	require.NotNil(t, cmd.Custom)
	assert.Equal(t, "Talents", cmd.Custom.Category)
	assert.Equal(t, []string{"Street", "Poetry"}, cmd.Custom.Name)

	cmd, err = parser.Parse(`uncustom "Street Poetry"`)
	require.NoError(t, err)
	require.NotNil(t, cmd.Uncustom)
	assert.Equal(t, []string{"Street Poetry"}, cmd.Uncustom.Name)
}

func TestParseConceptAndBio(t *testing.T) {
	cmd, err := parser.Parse("concept nature Survivor")
	require.NoError(t, err)
	require.NotNil(t, cmd.Concept)
	assert.Equal(t, "nature", cmd.Concept.Field)
	assert.Equal(t, "Survivor", cmd.Concept.Text())

	cmd, err = parser.Parse("concept sire")
	require.NoError(t, err)
	assert.Empty(t, cmd.Concept.Text())

	cmd, err = parser.Parse(`bio haven "An abandoned church" downtown`)
	require.NoError(t, err)
	require.NotNil(t, cmd.Bio)
	assert.Equal(t, "haven", cmd.Bio.Field)
	assert.Equal(t, "An abandoned church downtown", cmd.Bio.Text())
}

func TestParseMeritAndFlaw(t *testing.T) {
	cmd, err := parser.Parse(`merit "Iron Will" 3 resists Dominate`)
	require.NoError(t, err)
	require.NotNil(t, cmd.Merit)
	assert.Equal(t, "Iron Will", cmd.Merit.PerkName())
	assert.Equal(t, 3, cmd.Merit.Points)
	assert.Equal(t, "resists Dominate", cmd.Merit.Text())

	cmd, err = parser.Parse("flaw Prey Exclusion 1")
	require.NoError(t, err)
	require.NotNil(t, cmd.Flaw)
	assert.Nil(t, cmd.Merit)
	assert.Equal(t, "Prey Exclusion", cmd.Flaw.PerkName())
	assert.Empty(t, cmd.Flaw.Text())

	cmd, err = parser.Parse("drop flaw Prey Exclusion")
	require.NoError(t, err)
	require.NotNil(t, cmd.Drop)
	assert.Equal(t, "flaw", cmd.Drop.Kind)
	assert.Equal(t, "Prey Exclusion", cmd.Drop.PerkName())
}

func TestParsePlayCommands(t *testing.T) {
	cmd, err := parser.Parse("blood spend")
	require.NoError(t, err)
	require.NotNil(t, cmd.Blood)
	assert.Equal(t, "spend", cmd.Blood.Action)
	assert.Nil(t, cmd.Blood.Amount)

	cmd, err = parser.Parse("blood feed 4")
	require.NoError(t, err)
	require.NotNil(t, cmd.Blood.Amount)
	assert.Equal(t, 4, *cmd.Blood.Amount)

	cmd, err = parser.Parse("willpower regain 2")
	require.NoError(t, err)
	require.NotNil(t, cmd.WP)
	assert.Equal(t, "regain", cmd.WP.Action)

	cmd, err = parser.Parse("health 2 lethal")
	require.NoError(t, err)
	require.NotNil(t, cmd.Health)
	assert.Equal(t, 2, cmd.Health.Slot)
	assert.Equal(t, "lethal", cmd.Health.Level)

	cmd, err = parser.Parse("health 1")
	require.NoError(t, err)
	assert.Empty(t, cmd.Health.Level)
}

func TestParseRoll(t *testing.T) {
	cmd, err := parser.Parse("roll 6 diff 7 spec wp")
	require.NoError(t, err)
	require.NotNil(t, cmd.Roll)
	assert.Equal(t, 6, cmd.Roll.Pool)
	require.NotNil(t, cmd.Roll.Difficulty)
	assert.Equal(t, 7, *cmd.Roll.Difficulty)
	assert.True(t, cmd.Roll.Specialty)
	assert.True(t, cmd.Roll.Willpower)

	cmd, err = parser.Parse("roll 4")
	require.NoError(t, err)
	assert.Nil(t, cmd.Roll.Difficulty)
	assert.False(t, cmd.Roll.Specialty)
	assert.False(t, cmd.Roll.Willpower)
}

func TestParseNavigationAndReports(t *testing.T) {
	tests := []struct {
		input   string
		name    string
		mutates bool
	}{
		{"next", "next", true},
		{"goto 3", "goto", true},
		{"progress", "progress", false},
		{"freebies", "freebies", false},
		{"xp", "xp", false},
		{"save", "save", false},
		{"help", "help", false},
		{"help roll", "help", false},
		{"mode freebie", "mode", true},
		{"buy disc Potence", "buy", true},
		{"preview attr Wits 3", "preview", false},
		{"award 10", "award", true},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			cmd, err := parser.Parse(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.name, cmd.Name())
			assert.Equal(t, tc.mutates, cmd.Mutates())
		})
	}
}

func TestMapError(t *testing.T) {
	_, err := parser.Parse("set attr Strength")
	require.Error(t, err)
	assert.Equal(t, "The command set must be: "+parser.Usage["set"], err.Error())

	_, err = parser.Parse("blood drink 2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "blood <spend|feed|set>")

	_, err = parser.Parse("dance wildly")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "try help")

	_, err = parser.Parse("   ")
	require.Error(t, err)
	assert.Equal(t, "I wasn't able to understand your command", err.Error())
}

func TestKeywordsCoverCommands(t *testing.T) {
	keys := parser.Keywords()
	assert.Len(t, keys, len(parser.Usage))
	assert.Equal(t, "award", keys[0])
	assert.Contains(t, keys, "willpower")
}
