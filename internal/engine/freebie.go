package engine

import "strings"

// Hypothetical is a single pending change priced without touching the sheet.
// The zero value prices the sheet as it stands.
type Hypothetical struct {
	Domain Domain
	Trait  string
	Value  int

	ExtraMerit  int // merit points about to be taken
	RemovedFlaw int // flaw points about to be bought off
}

func (h *Hypothetical) overrides(d Domain, trait string) bool {
	return h != nil && h.Domain != "" && h.Domain == d && (d.IsStatus() || h.Trait == trait)
}

// sheetView reads a character through an optional hypothetical override.
type sheetView struct {
	c *Character
	h *Hypothetical
}

func (v sheetView) rating(d Domain, trait string) int {
	if v.h.overrides(d, trait) {
		return v.h.Value
	}
	return v.c.Rating(d, trait)
}

func (v sheetView) total(d Domain) int {
	if d.IsStatus() {
		return v.rating(d, "")
	}
	total := 0
	seen := false
	for trait, r := range v.c.Dots.Map(d) {
		if v.h.overrides(d, trait) {
			seen = true
			total += v.h.Value
			continue
		}
		total += r
	}
	if !seen && v.h != nil && v.h.overrides(d, v.h.Trait) {
		total += v.h.Value
	}
	return total
}

func (v sheetView) merits() int {
	total := v.c.meritPoints()
	if v.h != nil {
		total += v.h.ExtraMerit
	}
	return total
}

func (v sheetView) flaws() int {
	total := v.c.flawPoints()
	if v.h != nil {
		total -= v.h.RemovedFlaw
	}
	return max(total, 0)
}

// FreebieLine prices one domain.
type FreebieLine struct {
	Domain   Domain
	Total    int
	Baseline int
	Extra    int
	Unit     int
	Cost     int
}

// FreebieBreakdown is the whole freebie ledger of a sheet.
type FreebieBreakdown struct {
	Lines     []FreebieLine
	Merits    int
	Spent     int
	Limit     int
	FlawBonus int
	Available int
}

// Remaining is what is left to spend; it may be negative for sheets loaded
// from elsewhere.
func (b FreebieBreakdown) Remaining() int {
	return b.Available - b.Spent
}

// FreebieBreakdown prices every dot above the creation baseline.
func (e *Engine) FreebieBreakdown(c *Character) FreebieBreakdown {
	return e.breakdown(sheetView{c: c})
}

// CalculateTotalFreebiesSpent is the freebie cost of the whole sheet, merits
// included. A fresh sheet costs 0.
func (e *Engine) CalculateTotalFreebiesSpent(c *Character) int {
	return e.breakdown(sheetView{c: c}).Spent
}

// FreebiesAvailable is the limit plus the capped flaw bonus.
func (e *Engine) FreebiesAvailable(c *Character) int {
	return e.breakdown(sheetView{c: c}).Available
}

// PreviewFreebies prices the sheet as if h were applied.
func (e *Engine) PreviewFreebies(c *Character, h Hypothetical) FreebieBreakdown {
	return e.breakdown(sheetView{c: c, h: &h})
}

// PreviewFreebieCost is the change in freebies spent if the trait were set to
// value. Refunds come back negative.
func (e *Engine) PreviewFreebieCost(c *Character, d Domain, trait string, value int) (int, error) {
	c.Normalize()
	ref, err := e.resolve(c, d, trait)
	if err != nil {
		return 0, err
	}
	if d == DomainOther {
		return 0, nil
	}
	h := Hypothetical{Domain: d, Value: value}
	if !d.IsStatus() {
		h.Trait = ref.name
	}
	return e.PreviewFreebies(c, h).Spent - e.CalculateTotalFreebiesSpent(c), nil
}

func (e *Engine) breakdown(v sheetView) FreebieBreakdown {
	v.c.Normalize()
	b := FreebieBreakdown{
		Merits: v.merits(),
		Limit:  e.freebieLimit(v.c),
	}
	b.FlawBonus = min(v.flaws(), e.cat.Freebies.FlawCap)
	b.Available = b.Limit + b.FlawBonus

	b.Spent = b.Merits
	for _, d := range freebieDomains {
		line := FreebieLine{
			Domain:   d,
			Total:    v.total(d),
			Baseline: e.freebieBaseline(v, d),
			Unit:     e.freebieUnit(d),
		}
		line.Extra = max(line.Total-line.Baseline, 0)
		line.Cost = line.Extra * line.Unit
		b.Lines = append(b.Lines, line)
		b.Spent += line.Cost
	}
	return b
}

func (e *Engine) freebieLimit(c *Character) int {
	if c.FreebieLimit > 0 {
		return c.FreebieLimit
	}
	return e.cat.Freebies.Limit
}

func (e *Engine) freebieUnit(d Domain) int {
	if d == DomainHumanity {
		return e.cat.Freebies.HumanityCost
	}
	return policies[d].freebieUnit
}

// freebieBaseline is the dot total a finished creation phase leaves behind.
func (e *Engine) freebieBaseline(v sheetView, d Domain) int {
	switch d {
	case DomainAttribute:
		base := 0
		for _, g := range e.cat.Attributes {
			for _, t := range g.Traits {
				base += e.attrFloor(v.c.Concept.Clan, t)
			}
		}
		return base + sumInts(e.cat.Priorities.Attributes)
	case DomainAbility:
		return sumInts(e.cat.Priorities.Abilities)
	case DomainVirtue:
		return len(e.cat.Virtues.Names)*policies[d].floor + policies[d].creationCap
	case DomainHumanity:
		return e.humanityBaseline(v)
	case DomainWillpower:
		return e.willpowerBaseline(v)
	}
	return policies[d].creationCap
}

func (e *Engine) humanityBaseline(v sheetView) int {
	base := 0
	for _, name := range e.cat.Virtues.Humanity {
		base += v.rating(DomainVirtue, name)
	}
	return clamp(base, 0, policies[DomainHumanity].max)
}

func (e *Engine) willpowerBaseline(v sheetView) int {
	if e.cat.Virtues.Willpower == "" {
		return 0
	}
	return clamp(v.rating(DomainVirtue, e.cat.Virtues.Willpower), 0, policies[DomainWillpower].max)
}

// checkFreebies rejects h when it would overspend the freebie budget.
func (e *Engine) checkFreebies(c *Character, h Hypothetical) error {
	b := e.PreviewFreebies(c, h)
	if b.Spent <= b.Available {
		return nil
	}
	subject := h.Trait
	if subject == "" && h.Domain != "" {
		subject = h.Domain.Label()
	}
	return reject(ReasonFreebieLimitExceeded, h.Domain, subject,
		"would cost %d freebies, %d available", b.Spent, b.Available)
}

func sumInts(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

// perkIndex finds a merit or flaw by name, ignoring case.
func perkIndex(perks []Perk, name string) int {
	for i, p := range perks {
		if strings.EqualFold(p.Name, strings.TrimSpace(name)) {
			return i
		}
	}
	return -1
}
