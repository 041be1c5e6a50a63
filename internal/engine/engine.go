package engine

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/suderio/bloodline/internal/data"
)

// Engine applies the rules of one catalog to characters passed in by the
// caller. It is safe to share between characters; it never mutates the
// catalog.
type Engine struct {
	cat    *data.Catalog
	pricer XPPricer
	now    func() time.Time

	// trait name (lower case) -> canonical name and group
	attrIndex map[string]traitRef
	abilIndex map[string]traitRef
}

// traitRef is a resolved trait: its canonical name and, for attributes and
// abilities, the group it belongs to.
type traitRef struct {
	domain   Domain
	name     string
	category string
}

// Option customizes an Engine.
type Option func(*Engine)

// WithPricer replaces the standard experience cost table.
func WithPricer(p XPPricer) Option {
	return func(e *Engine) { e.pricer = p }
}

// WithClock sets the time source used for ledger timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New indexes the catalog and returns an engine bound to it.
func New(cat *data.Catalog, opts ...Option) (*Engine, error) {
	if cat == nil {
		return nil, fmt.Errorf("engine requires a catalog")
	}
	if err := cat.Validate(); err != nil {
		return nil, fmt.Errorf("catalog rejected: %w", err)
	}

	e := &Engine{
		cat:       cat,
		pricer:    StandardPricer{},
		now:       time.Now,
		attrIndex: indexGroups(DomainAttribute, cat.Attributes),
		abilIndex: indexGroups(DomainAbility, cat.Abilities),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

func indexGroups(d Domain, groups []data.Group) map[string]traitRef {
	idx := make(map[string]traitRef)
	for _, g := range groups {
		for _, t := range g.Traits {
			idx[strings.ToLower(t)] = traitRef{domain: d, name: t, category: g.Name}
		}
	}
	return idx
}

// Catalog returns the catalog the engine was built from.
func (e *Engine) Catalog() *data.Catalog {
	return e.cat
}

// NewCharacter returns a fresh sheet with every attribute and virtue at its
// innate dot and the derived stats in sync.
func (e *Engine) NewCharacter(name string) *Character {
	c := &Character{
		ID:            uuid.NewString(),
		Concept:       Concept{Name: strings.TrimSpace(name)},
		FreebieLimit:  e.cat.Freebies.Limit,
		CurrentPhase:  PhaseConcept,
		FurthestPhase: PhaseConcept,
	}
	c.Normalize()

	for _, g := range e.cat.Attributes {
		for _, t := range g.Traits {
			c.Dots.Attr[t] = e.attrFloor(c.Concept.Clan, t)
		}
	}
	for _, g := range e.cat.Abilities {
		for _, t := range g.Traits {
			c.Dots.Abil[t] = 0
		}
	}
	for _, v := range e.cat.Virtues.Names {
		c.Dots.Virt[v] = 1
	}
	e.RecomputeDerived(c)
	c.Status.BloodPool = e.BloodLimits(c).MaxBlood
	c.UpdatedAt = e.now()
	return c
}

// resolve maps user input to a canonical trait of the domain.
func (e *Engine) resolve(c *Character, d Domain, trait string) (traitRef, error) {
	name := strings.TrimSpace(trait)
	switch d {
	case DomainHumanity, DomainWillpower:
		return traitRef{domain: d, name: d.Label()}, nil

	case DomainAttribute:
		if ref, ok := e.attrIndex[strings.ToLower(name)]; ok {
			return ref, nil
		}
		return traitRef{}, reject(ReasonUnknownTrait, d, name, "not an attribute")

	case DomainAbility:
		if ref, ok := e.abilIndex[strings.ToLower(name)]; ok {
			return ref, nil
		}
		if custom, category, ok := customAbility(c, name); ok {
			return traitRef{domain: d, name: custom, category: category}, nil
		}
		return traitRef{}, reject(ReasonUnknownTrait, d, name, "not an ability; file it first with a custom category")

	case DomainVirtue:
		for _, v := range e.cat.Virtues.Names {
			if strings.EqualFold(v, name) {
				return traitRef{domain: d, name: v}, nil
			}
		}
		return traitRef{}, reject(ReasonUnknownTrait, d, name, "not a virtue")

	case DomainDiscipline, DomainBackground, DomainOther:
		if name == "" {
			return traitRef{}, reject(ReasonUnknownTrait, d, name, "trait name is empty")
		}
		return traitRef{domain: d, name: e.canonical(c, d, name)}, nil
	}
	return traitRef{}, reject(ReasonUnknownTrait, d, name, "unknown domain %q", d)
}

// canonical matches free-named traits against the catalog and the sheet so
// that "potence" and "Potence" land on the same key.
func (e *Engine) canonical(c *Character, d Domain, name string) string {
	var known []string
	switch d {
	case DomainDiscipline:
		known = e.cat.Disciplines
	case DomainBackground:
		known = e.cat.Backgrounds
	}
	for _, k := range known {
		if strings.EqualFold(k, name) {
			return k
		}
	}
	for k := range c.Dots.Map(d) {
		if strings.EqualFold(k, name) {
			return k
		}
	}
	return name
}

func customAbility(c *Character, name string) (string, string, bool) {
	for k, category := range c.CustomAbilityCategories {
		if strings.EqualFold(k, name) {
			return k, category, true
		}
	}
	return "", "", false
}

// floor is the lowest rating a trait may hold.
func (e *Engine) floor(c *Character, ref traitRef) int {
	if ref.domain == DomainAttribute {
		return e.attrFloor(c.Concept.Clan, ref.name)
	}
	return policies[ref.domain].floor
}

// max is the highest rating a trait may hold.
func (e *Engine) max(c *Character, ref traitRef) int {
	if ref.domain == DomainAttribute {
		return e.attrMax(c.Concept.Clan, ref.name)
	}
	return policies[ref.domain].max
}

func (e *Engine) attrFloor(clanName, trait string) int {
	if clan, ok := e.cat.Clan(clanName); ok {
		if v, ok := clan.AttributeFloors[trait]; ok {
			return v
		}
	}
	return 1
}

func (e *Engine) attrMax(clanName, trait string) int {
	if clan, ok := e.cat.Clan(clanName); ok {
		if v, ok := clan.AttributeCaps[trait]; ok {
			return v
		}
	}
	return 5
}

// groupTraits lists every trait filed under an attribute or ability group,
// custom abilities included.
func (e *Engine) groupTraits(c *Character, d Domain, category string) []string {
	var groups []data.Group
	switch d {
	case DomainAttribute:
		groups = e.cat.Attributes
	case DomainAbility:
		groups = e.cat.Abilities
	}

	var traits []string
	for _, g := range groups {
		if g.Name == category {
			traits = append(traits, g.Traits...)
		}
	}
	if d == DomainAbility {
		for name, cat := range c.CustomAbilityCategories {
			if cat == category && !slices.Contains(traits, name) {
				traits = append(traits, name)
			}
		}
	}
	return traits
}

// groupNames returns the categories of attributes or abilities in sheet order.
// TraitNames lists the traits a domain knows for this sheet: catalog names in
// catalog order, then sheet-only names sorted. Status domains have none.
func (e *Engine) TraitNames(c *Character, d Domain) []string {
	var names []string
	switch d {
	case DomainAttribute:
		for _, g := range e.cat.Attributes {
			names = append(names, g.Traits...)
		}
	case DomainAbility:
		for _, g := range e.cat.Abilities {
			names = append(names, g.Traits...)
		}
	case DomainDiscipline:
		names = append(names, e.cat.Disciplines...)
	case DomainBackground:
		names = append(names, e.cat.Backgrounds...)
	case DomainVirtue:
		names = append(names, e.cat.Virtues.Names...)
	case DomainOther:
	default:
		return nil
	}

	known := make(map[string]bool, len(names))
	for _, n := range names {
		known[n] = true
	}
	var extra []string
	for n := range c.Dots.Map(d) {
		if !known[n] {
			extra = append(extra, n)
		}
	}
	slices.Sort(extra)
	return append(names, extra...)
}

func (e *Engine) groupNames(d Domain) []string {
	var groups []data.Group
	switch d {
	case DomainAttribute:
		groups = e.cat.Attributes
	case DomainAbility:
		groups = e.cat.Abilities
	}
	names := make([]string, 0, len(groups))
	for _, g := range groups {
		names = append(names, g.Name)
	}
	return names
}

func (e *Engine) priorityValues(d Domain) []int {
	switch d {
	case DomainAttribute:
		return e.cat.Priorities.Attributes
	case DomainAbility:
		return e.cat.Priorities.Abilities
	}
	return nil
}

// GroupSpent is the number of dots bought above floor in one attribute or
// ability group.
func (e *Engine) GroupSpent(c *Character, d Domain, category string) int {
	return e.groupSpent(sheetView{c: c}, d, category, "")
}

func (e *Engine) groupSpent(v sheetView, d Domain, category, exclude string) int {
	spent := 0
	for _, t := range e.groupTraits(v.c, d, category) {
		if t == exclude {
			continue
		}
		ref := traitRef{domain: d, name: t, category: category}
		if extra := v.rating(d, t) - e.floor(v.c, ref); extra > 0 {
			spent += extra
		}
	}
	return spent
}

func (e *Engine) touch(c *Character) {
	c.UpdatedAt = e.now()
}

// Result describes an accepted proposal. Changed is false for no-ops such as
// toggling a trait that already sits at its floor.
type Result struct {
	Domain  Domain
	Trait   string
	Old     int
	New     int
	Changed bool
	Cost    int
	Mode    Mode
	Reset   []string
}

// Message renders the result for a notification line.
func (r Result) Message() string {
	if !r.Changed {
		return fmt.Sprintf("%s unchanged at %d.", r.Trait, r.Old)
	}
	msg := fmt.Sprintf("%s: %d → %d", r.Trait, r.Old, r.New)
	if r.Cost > 0 {
		msg += fmt.Sprintf(" (%d %s)", r.Cost, costUnit(r.Mode))
	}
	if len(r.Reset) > 0 {
		msg += fmt.Sprintf("; reset %s", strings.Join(r.Reset, ", "))
	}
	return msg + "."
}

func costUnit(m Mode) string {
	if m == ModeExperience {
		return "xp"
	}
	return "freebies"
}
