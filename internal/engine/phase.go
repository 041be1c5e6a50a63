package engine

import (
	"fmt"
	"slices"
	"strings"
)

// Sheet phases in navigation order.
const (
	PhaseConcept = iota + 1
	PhaseAttributes
	PhaseAbilities
	PhaseAdvantages
	PhaseSocial
	PhaseFreebies
	PhaseFinishing
	PhasePlay
)

var phaseNames = map[int]string{
	PhaseConcept:    "Concept",
	PhaseAttributes: "Attributes",
	PhaseAbilities:  "Abilities",
	PhaseAdvantages: "Advantages",
	PhaseSocial:     "Social",
	PhaseFreebies:   "Freebies",
	PhaseFinishing:  "Finishing",
	PhasePlay:       "Play",
}

// PhaseName returns the display name of a phase.
func PhaseName(phase int) string {
	if n, ok := phaseNames[phase]; ok {
		return n
	}
	return fmt.Sprintf("Phase %d", phase)
}

// PhaseStatus reports one phase.
type PhaseStatus struct {
	Phase    int
	Name     string
	Complete bool
	Unmet    []string
}

// Progress is the checker's view of the whole sheet.
type Progress struct {
	Current  int
	Furthest int
	Phases   []PhaseStatus
	// NextIncomplete is the first gated phase that is not complete, or 0.
	NextIncomplete int
	// Ready is true once the four creation phases are complete.
	Ready bool
}

// PhaseComplete reports whether a phase's gate is satisfied. It never
// fails: missing data reads as incomplete.
func (e *Engine) PhaseComplete(c *Character, phase int) bool {
	ok, _ := e.checkPhase(c, phase)
	return ok
}

// EvaluateProgress checks every phase in order.
func (e *Engine) EvaluateProgress(c *Character) Progress {
	p := Progress{}
	if c != nil {
		p.Current, p.Furthest = c.CurrentPhase, c.FurthestPhase
	}
	p.Ready = true
	for phase := PhaseConcept; phase <= PhasePlay; phase++ {
		ok, unmet := e.checkPhase(c, phase)
		p.Phases = append(p.Phases, PhaseStatus{Phase: phase, Name: PhaseName(phase), Complete: ok, Unmet: unmet})
		if phase >= PhasePlay {
			continue
		}
		if !ok && p.NextIncomplete == 0 {
			p.NextIncomplete = phase
		}
		if !ok && phase <= PhaseAdvantages {
			p.Ready = false
		}
	}
	return p
}

func (e *Engine) checkPhase(c *Character, phase int) (bool, []string) {
	if c == nil {
		return false, []string{"no character"}
	}
	var unmet []string
	switch phase {
	case PhaseConcept:
		for _, f := range []struct{ name, value string }{
			{"name", c.Concept.Name},
			{"nature", c.Concept.Nature},
			{"demeanor", c.Concept.Demeanor},
			{"clan", c.Concept.Clan},
		} {
			if strings.TrimSpace(f.value) == "" {
				unmet = append(unmet, f.name+" is empty")
			}
		}
	case PhaseAttributes:
		unmet = e.checkPriorityPhase(c, DomainAttribute)
	case PhaseAbilities:
		unmet = e.checkPriorityPhase(c, DomainAbility)
	case PhaseAdvantages:
		for _, d := range []Domain{DomainDiscipline, DomainBackground, DomainVirtue} {
			p := policies[d]
			spent := 0
			for _, r := range mapOf(c, d) {
				spent += max(r-p.floor, 0)
			}
			if spent != p.creationCap {
				unmet = append(unmet, fmt.Sprintf("%s: %d of %d dots spent", d.Label(), spent, p.creationCap))
			}
		}
	case PhaseFreebies:
		b := e.FreebieBreakdown(c)
		if b.Spent > b.Available {
			unmet = append(unmet, fmt.Sprintf("freebies overspent: %d of %d", b.Spent, b.Available))
		}
	case PhaseSocial, PhaseFinishing:
	case PhasePlay:
		return false, []string{"play is the last phase"}
	default:
		return false, []string{fmt.Sprintf("no phase %d", phase)}
	}
	return len(unmet) == 0, unmet
}

// mapOf reads a rating map without creating it.
func mapOf(c *Character, d Domain) map[string]int {
	switch d {
	case DomainDiscipline:
		return c.Dots.Disc
	case DomainBackground:
		return c.Dots.Back
	case DomainVirtue:
		return c.Dots.Virt
	}
	return nil
}

func (e *Engine) checkPriorityPhase(c *Character, d Domain) []string {
	var unmet []string
	var prios map[string]int
	if d == DomainAttribute {
		prios = c.Priorities.Attr
	} else {
		prios = c.Priorities.Abil
	}

	var assigned []int
	for _, category := range e.groupNames(d) {
		budget, ok := prios[category]
		if !ok || budget == 0 {
			unmet = append(unmet, fmt.Sprintf("%s: no priority chosen", category))
			continue
		}
		assigned = append(assigned, budget)
		spent := e.groupSpent(sheetView{c: c}, d, category, "")
		if spent != budget {
			unmet = append(unmet, fmt.Sprintf("%s: %d of %d dots spent", category, spent, budget))
		}
	}

	want := slices.Clone(e.priorityValues(d))
	slices.Sort(want)
	slices.Sort(assigned)
	if len(unmet) == 0 && !slices.Equal(want, assigned) {
		unmet = append(unmet, fmt.Sprintf("priorities must be %v, one per category", e.priorityValues(d)))
	}
	return unmet
}

// Advance moves to the next phase if the current one is complete.
func (e *Engine) Advance(c *Character) (int, error) {
	c.Normalize()
	if c.CurrentPhase >= PhasePlay {
		return c.CurrentPhase, reject(ReasonOutOfRange, "", PhaseName(PhasePlay), "already the last phase")
	}
	if ok, unmet := e.checkPhase(c, c.CurrentPhase); !ok {
		return c.CurrentPhase, reject(ReasonPhaseIncomplete, "", PhaseName(c.CurrentPhase), "%s", strings.Join(unmet, "; "))
	}
	e.enterPhase(c, c.CurrentPhase+1)
	return c.CurrentPhase, nil
}

// GoToPhase navigates to any phase already reached.
func (e *Engine) GoToPhase(c *Character, phase int) error {
	c.Normalize()
	if phase < PhaseConcept || phase > PhasePlay {
		return reject(ReasonOutOfRange, "", fmt.Sprint(phase), "phases run from %d to %d", PhaseConcept, PhasePlay)
	}
	if phase > c.FurthestPhase {
		return reject(ReasonPhaseIncomplete, "", PhaseName(phase), "not reached yet; furthest is %s", PhaseName(c.FurthestPhase))
	}
	e.enterPhase(c, phase)
	return nil
}

// enterPhase applies the mode changes tied to the Freebies and Play phases.
func (e *Engine) enterPhase(c *Character, phase int) {
	from := c.CurrentPhase
	c.CurrentPhase = phase
	c.FurthestPhase = max(c.FurthestPhase, phase)

	switch {
	case phase == PhasePlay:
		c.IsPlayMode = true
		c.FreebieMode = false
	case from == PhasePlay:
		c.IsPlayMode = false
	}
	switch {
	case phase == PhaseFreebies && !c.XPMode && !c.IsPlayMode:
		c.FreebieMode = true
	case from == PhaseFreebies && phase != PhaseFreebies:
		c.FreebieMode = false
	}
	e.touch(c)
}
