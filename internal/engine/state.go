package engine

// Normalize fills absent sub-structures so a partially written document can
// be used directly. Mid-creation sheets are expected, so nothing here fails.
func (c *Character) Normalize() {
	for _, d := range Domains {
		c.Dots.Map(d)
	}
	c.Priorities.For(DomainAttribute)
	c.Priorities.For(DomainAbility)
	if c.CustomAbilityCategories == nil {
		c.CustomAbilityCategories = make(map[string]string)
	}
	if c.Biography == nil {
		c.Biography = make(map[string]string)
	}
	if c.Merits == nil {
		c.Merits = make([]Perk, 0)
	}
	if c.Flaws == nil {
		c.Flaws = make([]Perk, 0)
	}
	if c.XPLog == nil {
		c.XPLog = make([]XPEntry, 0)
	}
	if c.CurrentPhase < PhaseConcept {
		c.CurrentPhase = PhaseConcept
	}
	if c.CurrentPhase > PhasePlay {
		c.CurrentPhase = PhasePlay
	}
	if c.FurthestPhase < c.CurrentPhase {
		c.FurthestPhase = c.CurrentPhase
	}
	if c.FreebieMode && c.XPMode {
		c.FreebieMode = false
	}
}

// Mode derives the active economy from the mode flags.
func (c *Character) Mode() Mode {
	switch {
	case c.XPMode:
		return ModeExperience
	case c.FreebieMode:
		return ModeFreebie
	}
	return ModeCreation
}

// Rating returns the current value of a trait or status domain. Missing
// traits read as zero.
func (c *Character) Rating(d Domain, trait string) int {
	switch d {
	case DomainHumanity:
		return c.Status.Humanity
	case DomainWillpower:
		return c.Status.Willpower
	}
	return c.Dots.Map(d)[trait]
}

func (c *Character) setRating(d Domain, trait string, value int) {
	switch d {
	case DomainHumanity:
		c.Status.Humanity = value
	case DomainWillpower:
		c.Status.Willpower = value
		if !c.IsPlayMode || c.Status.TempWillpower > value {
			c.Status.TempWillpower = value
		}
	default:
		c.Dots.Map(d)[trait] = value
	}
}

// SpentXP is always the ledger sum.
func (c *Character) SpentXP() int {
	total := 0
	for _, e := range c.XPLog {
		total += e.Cost
	}
	return total
}

// XPBalance is earned minus spent experience.
func (c *Character) XPBalance() int {
	return c.XPEarned - c.SpentXP()
}

// meritPoints sums merit costs.
func (c *Character) meritPoints() int {
	total := 0
	for _, m := range c.Merits {
		total += m.Points
	}
	return total
}

// flawPoints sums flaw values before any cap.
func (c *Character) flawPoints() int {
	total := 0
	for _, f := range c.Flaws {
		total += f.Points
	}
	return total
}

func sumMap(m map[string]int) int {
	total := 0
	for _, v := range m {
		total += v
	}
	return total
}
