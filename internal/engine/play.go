package engine

import (
	"strings"

	"github.com/suderio/bloodline/internal/data"
)

// GenerationBackground is the background that lowers a character's generation.
const GenerationBackground = "Generation"

// Generation is the base generation lowered by the Generation background,
// never past the most potent row the catalog describes.
func (e *Engine) Generation(c *Character) int {
	dots := 0
	for name, r := range c.Dots.Back {
		if strings.EqualFold(name, GenerationBackground) {
			dots = r
		}
	}
	return max(e.cat.BaseGeneration-dots, e.cat.LowestGeneration())
}

// BloodLimits returns the blood pool row for the character's generation.
func (e *Engine) BloodLimits(c *Character) data.Generation {
	return e.cat.GenerationInfo(e.Generation(c))
}

// SpendBlood spends n blood points, bounded by the per-turn limit and the pool.
func (e *Engine) SpendBlood(c *Character, n int) error {
	if n < 1 {
		return reject(ReasonOutOfRange, "", "blood", "spend at least 1")
	}
	limits := e.BloodLimits(c)
	if n > limits.PerTurn {
		return reject(ReasonResourceExhausted, "", "blood", "generation %d spends at most %d per turn", limits.Generation, limits.PerTurn)
	}
	if n > c.Status.BloodPool {
		return reject(ReasonResourceExhausted, "", "blood", "only %d in the pool", c.Status.BloodPool)
	}
	c.Status.BloodPool -= n
	e.touch(c)
	return nil
}

// Feed adds blood up to the generation maximum and returns what was gained.
func (e *Engine) Feed(c *Character, n int) (int, error) {
	if n < 1 {
		return 0, reject(ReasonOutOfRange, "", "blood", "feed at least 1")
	}
	before := c.Status.BloodPool
	c.Status.BloodPool = min(before+n, e.BloodLimits(c).MaxBlood)
	e.touch(c)
	return c.Status.BloodPool - before, nil
}

// SetBloodPool overwrites the pool.
func (e *Engine) SetBloodPool(c *Character, n int) error {
	if top := e.BloodLimits(c).MaxBlood; n < 0 || n > top {
		return reject(ReasonOutOfRange, "", "blood", "pool runs from 0 to %d", top)
	}
	c.Status.BloodPool = n
	e.touch(c)
	return nil
}

// SpendWillpower spends n temporary Willpower points, all or none.
func (e *Engine) SpendWillpower(c *Character, n int) error {
	if n < 1 {
		return reject(ReasonOutOfRange, DomainWillpower, "", "spend at least 1")
	}
	if n > c.Status.TempWillpower {
		return reject(ReasonResourceExhausted, DomainWillpower, "", "only %d Willpower left", c.Status.TempWillpower)
	}
	c.Status.TempWillpower -= n
	e.touch(c)
	return nil
}

// RegainWillpower restores temporary Willpower up to the permanent rating.
func (e *Engine) RegainWillpower(c *Character, n int) (int, error) {
	if n < 1 {
		return 0, reject(ReasonOutOfRange, DomainWillpower, "", "regain at least 1")
	}
	before := c.Status.TempWillpower
	c.Status.TempWillpower = min(before+n, c.Status.Willpower)
	e.touch(c)
	return c.Status.TempWillpower - before, nil
}

// CycleHealth advances one health box (slot 0 is Bruised) through none, bashing, lethal,
// aggravated and back to none.
func (e *Engine) CycleHealth(c *Character, slot int) (int, error) {
	if slot < 0 || slot >= HealthLevels {
		return 0, reject(ReasonOutOfRange, "", "health", "slots run from 0 to %d", HealthLevels-1)
	}
	c.Status.HealthStates[slot] = (c.Status.HealthStates[slot] + 1) % (DamageAggravated + 1)
	e.touch(c)
	return c.Status.HealthStates[slot], nil
}

// SetHealth writes one health box.
func (e *Engine) SetHealth(c *Character, slot, level int) error {
	if slot < 0 || slot >= HealthLevels {
		return reject(ReasonOutOfRange, "", "health", "slots run from 0 to %d", HealthLevels-1)
	}
	if level < DamageNone || level > DamageAggravated {
		return reject(ReasonOutOfRange, "", "health", "damage runs from %d to %d", DamageNone, DamageAggravated)
	}
	c.Status.HealthStates[slot] = level
	e.touch(c)
	return nil
}

var healthLevelNames = [HealthLevels + 1]string{
	"Healthy", "Bruised", "Hurt", "Injured", "Wounded", "Mauled", "Crippled", "Incapacitated",
}

var healthPenalties = [HealthLevels]int{0, 0, -1, -1, -2, -2, -5}

// Wounds counts the damaged health boxes.
func (c *Character) Wounds() int {
	n := 0
	for _, s := range c.Status.HealthStates {
		if s != DamageNone {
			n++
		}
	}
	return n
}

// HealthLevelName names the current wound level.
func HealthLevelName(c *Character) string {
	return healthLevelNames[c.Wounds()]
}

// HealthPenalty is the dice pool modifier of the current wound level.
// incapacitated is true when every box is filled.
func HealthPenalty(c *Character) (penalty int, incapacitated bool) {
	w := c.Wounds()
	if w >= HealthLevels {
		return 0, true
	}
	return healthPenalties[w], false
}
