package data

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Group is a named partition of traits (e.g. Physical: Strength, Dexterity, Stamina).
type Group struct {
	Name   string   `yaml:"name"`
	Traits []string `yaml:"traits"`
}

// VirtueSet lists the virtues and which of them feed the derived stats.
type VirtueSet struct {
	Names     []string `yaml:"names"`
	Humanity  []string `yaml:"humanity"`  // summed into Humanity
	Willpower string   `yaml:"willpower"` // copied into Willpower
}

// Priorities holds the budget values a player distributes across groups.
type Priorities struct {
	Attributes []int `yaml:"attributes"`
	Abilities  []int `yaml:"abilities"`
}

// Clan carries the clan lookups the engine needs for floors and XP pricing.
type Clan struct {
	Name            string         `yaml:"name"`
	Disciplines     []string       `yaml:"disciplines"`
	Weakness        string         `yaml:"weakness"`
	Clanless        bool           `yaml:"clanless"`
	AttributeFloors map[string]int `yaml:"attribute_floors"`
	AttributeCaps   map[string]int `yaml:"attribute_caps"`
}

// InClan reports whether the discipline is one of the clan's own.
func (c Clan) InClan(discipline string) bool {
	return slices.ContainsFunc(c.Disciplines, func(d string) bool {
		return strings.EqualFold(d, discipline)
	})
}

// Generation is one row of the blood pool table.
type Generation struct {
	Generation int `yaml:"generation"`
	MaxBlood   int `yaml:"max_blood"`
	PerTurn    int `yaml:"per_turn"`
}

// FreebieRules are the house-adjustable numbers of the freebie economy.
type FreebieRules struct {
	Limit        int `yaml:"limit"`
	FlawCap      int `yaml:"flaw_cap"`
	HumanityCost int `yaml:"humanity_cost"`
}

// Catalog is the read-only rule data consumed by the engine.
type Catalog struct {
	Attributes     []Group           `yaml:"attributes"`
	Abilities      []Group           `yaml:"abilities"`
	Disciplines    []string          `yaml:"disciplines"`
	Backgrounds    []string          `yaml:"backgrounds"`
	Virtues        VirtueSet         `yaml:"virtues"`
	Priorities     Priorities        `yaml:"priorities"`
	Clans          []Clan            `yaml:"clans"`
	BaseGeneration int               `yaml:"base_generation"`
	Generations    []Generation      `yaml:"generations"`
	Freebies       FreebieRules      `yaml:"freebies"`
	Archetypes     []string          `yaml:"archetypes"`
	XPCosts        map[string]string `yaml:"xp_costs"`
}

// Clan looks a clan up by name, ignoring case.
func (c *Catalog) Clan(name string) (Clan, bool) {
	for _, clan := range c.Clans {
		if strings.EqualFold(clan.Name, strings.TrimSpace(name)) {
			return clan, true
		}
	}
	return Clan{}, false
}

// GenerationInfo returns the blood table row for a generation. Generations
// beyond either end of the table resolve to the nearest row.
func (c *Catalog) GenerationInfo(gen int) Generation {
	if len(c.Generations) == 0 {
		return Generation{Generation: gen, MaxBlood: 10, PerTurn: 1}
	}
	best := c.Generations[0]
	for _, row := range c.Generations {
		if row.Generation == gen {
			return row
		}
		if abs(row.Generation-gen) < abs(best.Generation-gen) {
			best = row
		}
	}
	return best
}

// LowestGeneration is the most potent generation the table describes.
func (c *Catalog) LowestGeneration() int {
	lowest := c.BaseGeneration
	for _, row := range c.Generations {
		if row.Generation < lowest {
			lowest = row.Generation
		}
	}
	return lowest
}

// Validate checks the structural rules the engine relies on.
func (c *Catalog) Validate() error {
	var errs []error

	if len(c.Attributes) == 0 {
		errs = append(errs, errors.New("no attribute groups defined"))
	}
	for _, g := range c.Attributes {
		if len(g.Traits) != 3 {
			errs = append(errs, fmt.Errorf("attribute group %s must list exactly 3 traits, got %d", g.Name, len(g.Traits)))
		}
	}
	if len(c.Abilities) == 0 {
		errs = append(errs, errors.New("no ability groups defined"))
	}
	if err := checkPriorities("attribute", c.Priorities.Attributes, len(c.Attributes)); err != nil {
		errs = append(errs, err)
	}
	if err := checkPriorities("ability", c.Priorities.Abilities, len(c.Abilities)); err != nil {
		errs = append(errs, err)
	}

	if len(c.Virtues.Names) == 0 {
		errs = append(errs, errors.New("no virtues defined"))
	}
	for _, v := range c.Virtues.Humanity {
		if !slices.Contains(c.Virtues.Names, v) {
			errs = append(errs, fmt.Errorf("humanity virtue %s is not a declared virtue", v))
		}
	}
	if c.Virtues.Willpower != "" && !slices.Contains(c.Virtues.Names, c.Virtues.Willpower) {
		errs = append(errs, fmt.Errorf("willpower virtue %s is not a declared virtue", c.Virtues.Willpower))
	}

	return errors.Join(errs...)
}

func checkPriorities(kind string, values []int, groups int) error {
	if len(values) != groups {
		return fmt.Errorf("%s priorities must have one value per group (%d), got %d", kind, groups, len(values))
	}
	seen := make(map[int]bool, len(values))
	for _, v := range values {
		if v <= 0 {
			return fmt.Errorf("%s priority %d must be positive", kind, v)
		}
		if seen[v] {
			return fmt.Errorf("%s priority %d is listed twice", kind, v)
		}
		seen[v] = true
	}
	return nil
}

// applyDefaults fills the numbers an older or partial catalog may omit.
func (c *Catalog) applyDefaults() {
	if c.BaseGeneration == 0 {
		c.BaseGeneration = 13
	}
	if c.Freebies.Limit == 0 {
		c.Freebies.Limit = 15
	}
	if c.Freebies.FlawCap == 0 {
		c.Freebies.FlawCap = 7
	}
	if c.Freebies.HumanityCost == 0 {
		c.Freebies.HumanityCost = 2
	}
	if c.XPCosts == nil {
		c.XPCosts = make(map[string]string)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
