package engine

import (
	"slices"
	"strings"
)

// ProposeRating is the single entry point for dot changes. It resolves the
// toggle convention, validates the change against the active economy and
// commits it. A rejected proposal leaves c untouched.
func (e *Engine) ProposeRating(c *Character, d Domain, trait string, value int) (Result, error) {
	c.Normalize()
	ref, err := e.resolve(c, d, trait)
	if err != nil {
		return Result{}, err
	}

	current := c.Rating(d, ref.name)
	next, changed := ResolveProposedValue(current, value, e.floor(c, ref))
	res := Result{Domain: d, Trait: ref.name, Old: current, New: next, Changed: changed, Mode: c.Mode()}
	if !changed {
		return res, nil
	}
	if top := e.max(c, ref); next > current && next > top {
		return Result{}, reject(ReasonOutOfRange, d, ref.name, "maximum is %d", top)
	}

	switch {
	case d == DomainOther:
		// bookkeeping traits are never priced
	case c.XPMode:
		cost, err := e.purchase(c, ref, current, next)
		if err != nil {
			return Result{}, err
		}
		res.Cost = cost
	case c.IsPlayMode:
		if !d.IsStatus() {
			return Result{}, reject(ReasonModeLocked, d, ref.name, "dots are locked in play; use experience mode")
		}
	case c.FreebieMode:
		cost, err := e.checkFreebieChange(c, ref, current, next)
		if err != nil {
			return Result{}, err
		}
		res.Cost = cost
	default:
		if err := e.checkCreation(c, ref, current, next); err != nil {
			return Result{}, err
		}
	}

	c.setRating(d, ref.name, next)
	if d == DomainVirtue && c.Mode() == ModeCreation && !c.IsPlayMode {
		e.syncDerived(c, ref.name)
	}
	e.touch(c)
	return res, nil
}

// ProposeAttributeRating sets an attribute.
func (e *Engine) ProposeAttributeRating(c *Character, trait string, value int) (Result, error) {
	return e.ProposeRating(c, DomainAttribute, trait, value)
}

// ProposeAbilityRating sets a catalog or custom ability.
func (e *Engine) ProposeAbilityRating(c *Character, trait string, value int) (Result, error) {
	return e.ProposeRating(c, DomainAbility, trait, value)
}

// ProposeDisciplineRating sets a discipline.
func (e *Engine) ProposeDisciplineRating(c *Character, trait string, value int) (Result, error) {
	return e.ProposeRating(c, DomainDiscipline, trait, value)
}

// ProposeBackgroundRating sets a background.
func (e *Engine) ProposeBackgroundRating(c *Character, trait string, value int) (Result, error) {
	return e.ProposeRating(c, DomainBackground, trait, value)
}

// ProposeVirtueRating sets a virtue.
func (e *Engine) ProposeVirtueRating(c *Character, trait string, value int) (Result, error) {
	return e.ProposeRating(c, DomainVirtue, trait, value)
}

// ProposeOtherRating sets a free bookkeeping trait.
func (e *Engine) ProposeOtherRating(c *Character, trait string, value int) (Result, error) {
	return e.ProposeRating(c, DomainOther, trait, value)
}

// ProposeHumanity sets permanent Humanity.
func (e *Engine) ProposeHumanity(c *Character, value int) (Result, error) {
	return e.ProposeRating(c, DomainHumanity, "", value)
}

// ProposeWillpower sets permanent Willpower.
func (e *Engine) ProposeWillpower(c *Character, value int) (Result, error) {
	return e.ProposeRating(c, DomainWillpower, "", value)
}

func (e *Engine) checkCreation(c *Character, ref traitRef, current, next int) error {
	d := ref.domain
	if d.IsStatus() {
		return reject(ReasonModeLocked, d, ref.name, "derived from virtues during creation")
	}
	if next < current {
		return nil
	}

	p := policies[d]
	switch d {
	case DomainAttribute, DomainAbility:
		budget, ok := c.Priorities.For(d)[ref.category]
		if !ok || budget == 0 {
			return reject(ReasonPriorityNotSelected, d, ref.name, "choose a priority for %s first", ref.category)
		}
		if p.traitCap > 0 && next > p.traitCap {
			return reject(ReasonCreationCapExceeded, d, ref.name, "at most %d dots before freebies", p.traitCap)
		}
		spent := e.groupSpent(sheetView{c: c}, d, ref.category, ref.name) + next - e.floor(c, ref)
		if spent > budget {
			return reject(ReasonBudgetExceeded, d, ref.name, "%s would spend %d of %d", ref.category, spent, budget)
		}

	default:
		spent := 0
		for trait, r := range c.Dots.Map(d) {
			if trait != ref.name {
				spent += max(r-p.floor, 0)
			}
		}
		spent += next - p.floor
		if spent > p.creationCap {
			return reject(ReasonCreationCapExceeded, d, ref.name,
				"%s would hold %d extra dots, creation allows %d", d.Label(), spent, p.creationCap)
		}
	}
	return nil
}

func (e *Engine) checkFreebieChange(c *Character, ref traitRef, current, next int) (int, error) {
	d := ref.domain
	if d.IsStatus() {
		base := e.freebieBaseline(sheetView{c: c}, d)
		if next < base {
			return 0, reject(ReasonOutOfRange, d, ref.name, "cannot drop below the virtue baseline %d", base)
		}
	}
	// Lowering a virtue lowers the Humanity or Willpower baseline, so a
	// decrease can still raise the total.
	before := e.CalculateTotalFreebiesSpent(c)
	after := e.PreviewFreebies(c, Hypothetical{Domain: d, Trait: ref.name, Value: next})
	if after.Spent > after.Available && after.Spent > before {
		return 0, reject(ReasonFreebieLimitExceeded, d, ref.name,
			"would cost %d freebies, %d available", after.Spent, after.Available)
	}
	return after.Spent - before, nil
}

// AssignPriority gives category the priority value. The category that held
// the value before loses it and has its dots reset to floor; the target is
// reset as well when its current spend no longer fits. It returns the reset
// categories.
func (e *Engine) AssignPriority(c *Character, d Domain, category string, value int) ([]string, error) {
	c.Normalize()
	if d != DomainAttribute && d != DomainAbility {
		return nil, reject(ReasonUnknownTrait, d, category, "priorities apply to attributes and abilities")
	}
	if c.Mode() != ModeCreation || c.IsPlayMode {
		return nil, reject(ReasonModeLocked, d, category, "priorities are fixed once creation ends")
	}
	idx := slices.IndexFunc(e.groupNames(d), func(g string) bool { return strings.EqualFold(g, strings.TrimSpace(category)) })
	if idx < 0 {
		return nil, reject(ReasonUnknownTrait, d, category, "no such %s category", strings.ToLower(d.Label()))
	}
	category = e.groupNames(d)[idx]
	allowed := e.priorityValues(d)
	if !slices.Contains(allowed, value) {
		return nil, reject(ReasonOutOfRange, d, category, "priority must be one of %v", allowed)
	}

	prios := c.Priorities.For(d)
	if prios[category] == value {
		return nil, nil
	}

	var reset []string
	for holder, v := range prios {
		if holder != category && v == value {
			delete(prios, holder)
			e.resetGroup(c, d, holder)
			reset = append(reset, holder)
		}
	}
	prios[category] = value
	if e.GroupSpent(c, d, category) > value {
		e.resetGroup(c, d, category)
		reset = append(reset, category)
	}
	slices.Sort(reset)
	e.touch(c)
	return reset, nil
}

func (e *Engine) resetGroup(c *Character, d Domain, category string) {
	m := c.Dots.Map(d)
	for _, t := range e.groupTraits(c, d, category) {
		m[t] = e.floor(c, traitRef{domain: d, name: t, category: category})
	}
}

// AddCustomAbility files a new ability under a catalog category so that the
// category's budget counts it.
func (e *Engine) AddCustomAbility(c *Character, name, category string) error {
	c.Normalize()
	name = strings.TrimSpace(name)
	if name == "" {
		return reject(ReasonUnknownTrait, DomainAbility, name, "ability name is empty")
	}
	groups := e.groupNames(DomainAbility)
	idx := slices.IndexFunc(groups, func(g string) bool { return strings.EqualFold(g, strings.TrimSpace(category)) })
	if idx < 0 {
		return reject(ReasonUnknownTrait, DomainAbility, name, "no such ability category %q", category)
	}
	if ref, ok := e.abilIndex[strings.ToLower(name)]; ok {
		return reject(ReasonOutOfRange, DomainAbility, ref.name, "already a %s ability", ref.category)
	}
	if existing, cat, ok := customAbility(c, name); ok {
		return reject(ReasonOutOfRange, DomainAbility, existing, "already filed under %s", cat)
	}
	c.CustomAbilityCategories[name] = groups[idx]
	c.Dots.Abil[name] = 0
	e.touch(c)
	return nil
}

// RemoveCustomAbility forgets a custom ability. Rated abilities can only be
// dropped during creation, where nothing was paid for them.
func (e *Engine) RemoveCustomAbility(c *Character, name string) error {
	c.Normalize()
	existing, _, ok := customAbility(c, strings.TrimSpace(name))
	if !ok {
		return reject(ReasonUnknownTrait, DomainAbility, name, "not a custom ability")
	}
	if c.Dots.Abil[existing] > 0 && (c.Mode() != ModeCreation || c.IsPlayMode) {
		return reject(ReasonModeLocked, DomainAbility, existing, "rated abilities can only be removed during creation")
	}
	delete(c.CustomAbilityCategories, existing)
	delete(c.Dots.Abil, existing)
	e.touch(c)
	return nil
}
