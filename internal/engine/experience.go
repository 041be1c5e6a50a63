package engine

// XPCategory selects a row of the experience cost table.
type XPCategory string

const (
	XPAttribute  XPCategory = "attribute"
	XPAbility    XPCategory = "ability"
	XPDiscipline XPCategory = "discipline"
	XPBackground XPCategory = "background"
	XPVirtue     XPCategory = "virtue"
	XPHumanity   XPCategory = "humanity"
	XPWillpower  XPCategory = "willpower"
)

// XPCategories lists every priced category.
var XPCategories = []XPCategory{
	XPAttribute, XPAbility, XPDiscipline, XPBackground, XPVirtue, XPHumanity, XPWillpower,
}

// XPPricer prices one experience purchase from the trait's current rating.
// Implementations must be pure and never return a negative cost.
type XPPricer interface {
	XPCost(current int, cat XPCategory, inClan, clanless bool) int
}

// StandardPricer is the V20 core cost table.
type StandardPricer struct{}

func (StandardPricer) XPCost(current int, cat XPCategory, inClan, clanless bool) int {
	return GetXpCost(current, cat, inClan, clanless)
}

// GetXpCost is the V20 experience chart. New traits have flat first-dot
// costs; everything else is current rating times a multiplier.
func GetXpCost(current int, cat XPCategory, inClan, clanless bool) int {
	if current < 0 {
		current = 0
	}
	switch cat {
	case XPAttribute:
		return current * 4
	case XPAbility:
		if current == 0 {
			return 3
		}
		return current * 2
	case XPDiscipline:
		switch {
		case current == 0:
			return 10
		case clanless:
			return current * 6
		case inClan:
			return current * 5
		}
		return current * 7
	case XPBackground:
		if current == 0 {
			return 3
		}
		return current * 3
	case XPVirtue:
		return current * 2
	case XPHumanity:
		return current * 2
	case XPWillpower:
		return current
	}
	return 0
}

// PreviewXPCost prices raising a trait by one dot without buying it.
func (e *Engine) PreviewXPCost(c *Character, d Domain, trait string) (int, error) {
	c.Normalize()
	ref, err := e.resolve(c, d, trait)
	if err != nil {
		return 0, err
	}
	if policies[d].xp == "" {
		return 0, reject(ReasonModeLocked, d, ref.name, "not bought with experience")
	}
	return e.xpCost(c, ref, c.Rating(d, ref.name)), nil
}

func (e *Engine) xpCost(c *Character, ref traitRef, current int) int {
	inClan, clanless := false, false
	if clan, ok := e.cat.Clan(c.Concept.Clan); ok {
		clanless = clan.Clanless
		inClan = ref.domain == DomainDiscipline && clan.InClan(ref.name)
	}
	return max(e.pricer.XPCost(current, policies[ref.domain].xp, inClan, clanless), 0)
}

// Purchase raises a trait by exactly one dot with experience.
func (e *Engine) Purchase(c *Character, d Domain, trait string) (Result, error) {
	if !c.XPMode {
		return Result{}, reject(ReasonModeLocked, d, trait, "enter experience mode to buy traits")
	}
	c.Normalize()
	ref, err := e.resolve(c, d, trait)
	if err != nil {
		return Result{}, err
	}
	return e.ProposeRating(c, d, ref.name, c.Rating(d, ref.name)+1)
}

// purchase validates and records an experience transaction. The ledger is
// appended before the rating changes so the two can never disagree.
func (e *Engine) purchase(c *Character, ref traitRef, current, next int) (int, error) {
	d := ref.domain
	if policies[d].xp == "" {
		return 0, reject(ReasonModeLocked, d, ref.name, "not bought with experience")
	}
	if next != current+1 {
		return 0, reject(ReasonXpNonSequentialPurchase, d, ref.name,
			"from %d only %d can be bought, not %d", current, current+1, next)
	}
	cost := e.xpCost(c, ref, current)
	if balance := c.XPBalance(); cost > balance {
		return 0, reject(ReasonXpInsufficientFunds, d, ref.name,
			"costs %d xp, %d available", cost, balance)
	}
	c.XPLog = append(c.XPLog, XPEntry{
		Trait:     ref.name,
		Category:  d,
		OldValue:  current,
		NewValue:  next,
		Cost:      cost,
		Timestamp: e.now(),
	})
	return cost, nil
}

// AwardXP adds earned experience.
func (e *Engine) AwardXP(c *Character, amount int) error {
	if amount <= 0 {
		return reject(ReasonOutOfRange, "", "experience", "award must be positive, got %d", amount)
	}
	c.XPEarned += amount
	e.touch(c)
	return nil
}
