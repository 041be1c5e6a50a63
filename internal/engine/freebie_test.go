package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFreshSheetCostsNothing(t *testing.T) {
	e := newTestEngine(t)
	c := e.NewCharacter("Ash")
	assert.Equal(t, 0, e.CalculateTotalFreebiesSpent(c))
	assert.Equal(t, 15, e.FreebiesAvailable(c))

	c = finishedCharacter(t, e)
	b := e.FreebieBreakdown(c)
	assert.Equal(t, 0, b.Spent)
	assert.Equal(t, 15, b.Remaining())
	for _, line := range b.Lines {
		assert.Zero(t, line.Extra, line.Domain)
	}
}

func TestFreebieBaselines(t *testing.T) {
	e := newTestEngine(t)
	c := finishedCharacter(t, e)
	b := e.FreebieBreakdown(c)

	want := map[Domain][3]int{ // total, baseline, unit
		DomainAttribute:  {24, 24, 5},
		DomainAbility:    {27, 27, 2},
		DomainDiscipline: {3, 3, 7},
		DomainBackground: {5, 5, 1},
		DomainVirtue:     {10, 10, 2},
		DomainHumanity:   {7, 7, 2},
		DomainWillpower:  {3, 3, 1},
	}
	require.Len(t, b.Lines, len(want))
	for _, line := range b.Lines {
		w := want[line.Domain]
		assert.Equal(t, w[0], line.Total, line.Domain)
		assert.Equal(t, w[1], line.Baseline, line.Domain)
		assert.Equal(t, w[2], line.Unit, line.Domain)
	}

	require.NoError(t, e.SetConcept(c, "clan", "Nosferatu"))
	assert.Equal(t, 23, e.FreebieBreakdown(c).Lines[0].Baseline)
}

func TestFreebieAttributeSpending(t *testing.T) {
	e := newTestEngine(t)
	c := finishedCharacter(t, e)
	require.NoError(t, e.EnterFreebieMode(c))

	res, err := e.ProposeAttributeRating(c, "Strength", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, res.Cost)
	assert.Equal(t, ModeFreebie, res.Mode)

	mustSet(t, e, c, DomainAttribute, "Dexterity", 4)
	mustSet(t, e, c, DomainAttribute, "Stamina", 4)
	assert.Equal(t, 15, e.CalculateTotalFreebiesSpent(c))

	_, err = e.ProposeAttributeRating(c, "Charisma", 4)
	require.ErrorIs(t, err, ErrFreebieLimitExceeded)
	assert.Equal(t, 3, c.Dots.Attr["Charisma"])
	assert.Equal(t, 15, e.CalculateTotalFreebiesSpent(c))

	// lowering is always allowed and refunds
	mustSet(t, e, c, DomainAttribute, "Stamina", 3)
	assert.Equal(t, 10, e.CalculateTotalFreebiesSpent(c))
}

func TestFreebieAbilitiesIgnoreCreationCap(t *testing.T) {
	e := newTestEngine(t)
	c := finishedCharacter(t, e)
	require.NoError(t, e.EnterFreebieMode(c))

	res, err := e.ProposeAbilityRating(c, "Brawl", 5)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Cost)

	res, err = e.ProposeDisciplineRating(c, "Fortitude", 1)
	require.NoError(t, err)
	assert.Equal(t, 7, res.Cost)
	assert.Equal(t, 11, e.CalculateTotalFreebiesSpent(c))
}

func TestPreviewFreebiesDoesNotMutate(t *testing.T) {
	e := newTestEngine(t)
	c := finishedCharacter(t, e)

	b := e.PreviewFreebies(c, Hypothetical{Domain: DomainDiscipline, Trait: "Obfuscate", Value: 2})
	assert.Equal(t, 14, b.Spent)
	assert.NotContains(t, c.Dots.Disc, "Obfuscate")

	b = e.PreviewFreebies(c, Hypothetical{Domain: DomainHumanity, Value: 9})
	assert.Equal(t, 4, b.Spent)
	assert.Equal(t, 7, c.Status.Humanity)

	b = e.PreviewFreebies(c, Hypothetical{ExtraMerit: 3})
	assert.Equal(t, 3, b.Spent)
	assert.Equal(t, 0, e.CalculateTotalFreebiesSpent(c))
}

func TestFreebieCostIsMonotonic(t *testing.T) {
	e := newTestEngine(t)
	c := finishedCharacter(t, e)
	for _, d := range []Domain{DomainAttribute, DomainAbility, DomainDiscipline, DomainBackground, DomainVirtue} {
		trait := map[Domain]string{
			DomainAttribute:  "Wits",
			DomainAbility:    "Occult",
			DomainDiscipline: "Presence",
			DomainBackground: "Herd",
			DomainVirtue:     "Courage",
		}[d]
		prev := -1
		for v := c.Rating(d, trait); v <= 5; v++ {
			spent := e.PreviewFreebies(c, Hypothetical{Domain: d, Trait: trait, Value: v}).Spent
			assert.GreaterOrEqual(t, spent, prev, "%s %s=%d", d, trait, v)
			prev = spent
		}
	}
}

func TestFreebieHumanityBoundedByBaseline(t *testing.T) {
	e := newTestEngine(t)
	c := finishedCharacter(t, e)
	require.NoError(t, e.EnterFreebieMode(c))

	res, err := e.ProposeHumanity(c, 8)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Cost)

	mustSet(t, e, c, DomainHumanity, "", 8) // toggles back to the baseline
	assert.Equal(t, 7, c.Status.Humanity)

	_, err = e.ProposeHumanity(c, 6)
	require.ErrorIs(t, err, ErrOutOfRange)
	assert.Equal(t, 7, c.Status.Humanity)

	res, err = e.ProposeWillpower(c, 5)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Cost)
	assert.Equal(t, 5, c.Status.TempWillpower)
}

func TestFreebieVirtueDecreaseRaisesStatusCost(t *testing.T) {
	e := newTestEngine(t)
	c := e.NewCharacter("Ash")
	require.NoError(t, e.EnterFreebieMode(c))

	mustSet(t, e, c, DomainVirtue, "Conscience", 3)
	mustSet(t, e, c, DomainHumanity, "", 10)
	mustSet(t, e, c, DomainWillpower, "", 4)
	require.Equal(t, 15, e.CalculateTotalFreebiesSpent(c))
	require.Equal(t, 15, e.FreebiesAvailable(c))

	// the Humanity baseline would drop to 2, leaving 8 paid dots
	_, err := e.ProposeVirtueRating(c, "Conscience", 1)
	require.ErrorIs(t, err, ErrFreebieLimitExceeded)
	assert.Equal(t, 3, c.Dots.Virt["Conscience"])
	assert.Equal(t, 15, e.CalculateTotalFreebiesSpent(c))

	res, err := e.ProposeWillpower(c, 3)
	require.NoError(t, err)
	assert.Equal(t, -1, res.Cost)
	assert.Equal(t, 14, e.CalculateTotalFreebiesSpent(c))
}

func TestMeritsAndFlaws(t *testing.T) {
	e := newTestEngine(t)

	t.Run("merits are paid from the budget", func(t *testing.T) {
		c := finishedCharacter(t, e)
		require.NoError(t, e.EnterFreebieMode(c))
		require.NoError(t, e.AddMerit(c, "Iron Will", 3, "resists Dominate"))
		assert.Equal(t, 3, e.CalculateTotalFreebiesSpent(c))

		mustSet(t, e, c, DomainAttribute, "Wits", 3)
		mustSet(t, e, c, DomainAttribute, "Intelligence", 3)
		assert.Equal(t, 13, e.CalculateTotalFreebiesSpent(c))

		err := e.AddMerit(c, "Eidetic Memory", 3, "")
		require.ErrorIs(t, err, ErrFreebieLimitExceeded)
		assert.Len(t, c.Merits, 1)

		require.NoError(t, e.RemoveMerit(c, "iron will"))
		assert.Empty(t, c.Merits)
		assert.Equal(t, 10, e.CalculateTotalFreebiesSpent(c))
	})

	t.Run("flaw refund is capped", func(t *testing.T) {
		c := finishedCharacter(t, e)
		require.NoError(t, e.AddFlaw(c, "Nightmares", 1, ""))
		require.NoError(t, e.AddFlaw(c, "Prey Exclusion", 4, ""))
		require.NoError(t, e.AddFlaw(c, "Thin Blooded", 4, ""))
		b := e.FreebieBreakdown(c)
		assert.Equal(t, 7, b.FlawBonus)
		assert.Equal(t, 22, b.Available)
	})

	t.Run("spent refunds cannot be bought off", func(t *testing.T) {
		c := finishedCharacter(t, e)
		require.NoError(t, e.AddFlaw(c, "Nightmares", 2, ""))
		require.NoError(t, e.EnterFreebieMode(c))
		for _, trait := range []string{"Wits", "Intelligence", "Perception"} {
			mustSet(t, e, c, DomainAttribute, trait, 3)
		}
		assert.Equal(t, 15, e.CalculateTotalFreebiesSpent(c))
		require.NoError(t, e.AddMerit(c, "Catlike Balance", 1, ""))

		err := e.RemoveFlaw(c, "Nightmares")
		require.ErrorIs(t, err, ErrFreebieLimitExceeded)
		assert.Len(t, c.Flaws, 1)

		require.NoError(t, e.RemoveMerit(c, "Catlike Balance"))
		require.NoError(t, e.RemoveFlaw(c, "Nightmares"))
		assert.Empty(t, c.Flaws)
	})

	t.Run("validation", func(t *testing.T) {
		c := e.NewCharacter("Ash")
		assert.ErrorIs(t, e.AddMerit(c, "Luck", 0, ""), ErrOutOfRange)
		assert.ErrorIs(t, e.AddFlaw(c, "Curse", 8, ""), ErrOutOfRange)
		assert.ErrorIs(t, e.AddMerit(c, "", 1, ""), ErrUnknownTrait)
		require.NoError(t, e.AddMerit(c, "Luck", 3, ""))
		assert.ErrorIs(t, e.AddMerit(c, "LUCK", 1, ""), ErrOutOfRange)
		assert.ErrorIs(t, e.RemoveFlaw(c, "Luck"), ErrUnknownTrait)

		e.EnterXPMode(c)
		assert.ErrorIs(t, e.AddMerit(c, "Daredevil", 3, ""), ErrModeLocked)
		assert.ErrorIs(t, e.RemoveMerit(c, "Luck"), ErrModeLocked)
	})
}

func TestPreviewFreebieCost(t *testing.T) {
	e := newTestEngine(t)
	c := finishedCharacter(t, e)

	cost, err := e.PreviewFreebieCost(c, DomainDiscipline, "obfuscate", 2)
	require.NoError(t, err)
	assert.Equal(t, 14, cost)

	cost, err = e.PreviewFreebieCost(c, DomainAttribute, "wits", 3)
	require.NoError(t, err)
	assert.Equal(t, 5, cost)

	cost, err = e.PreviewFreebieCost(c, DomainOther, "Path of Night", 3)
	require.NoError(t, err)
	assert.Zero(t, cost)

	_, err = e.PreviewFreebieCost(c, DomainAttribute, "Luck", 3)
	assert.ErrorIs(t, err, ErrUnknownTrait)
	assert.Zero(t, e.CalculateTotalFreebiesSpent(c))
}
