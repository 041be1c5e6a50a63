package engine

import "strings"

const maxPerkPoints = 7

// AddMerit takes a merit, paid for from the freebie budget.
func (e *Engine) AddMerit(c *Character, name string, points int, description string) error {
	p, err := e.newPerk(c, c.Merits, name, points, description)
	if err != nil {
		return err
	}
	if err := e.checkFreebies(c, Hypothetical{Trait: p.Name, ExtraMerit: p.Points}); err != nil {
		return err
	}
	c.Merits = append(c.Merits, p)
	e.touch(c)
	return nil
}

// AddFlaw takes a flaw. Its points return to the freebie budget up to the
// catalog's flaw cap.
func (e *Engine) AddFlaw(c *Character, name string, points int, description string) error {
	p, err := e.newPerk(c, c.Flaws, name, points, description)
	if err != nil {
		return err
	}
	c.Flaws = append(c.Flaws, p)
	e.touch(c)
	return nil
}

// RemoveMerit drops a merit and its cost.
func (e *Engine) RemoveMerit(c *Character, name string) error {
	if err := e.perksEditable(c, name); err != nil {
		return err
	}
	i := perkIndex(c.Merits, name)
	if i < 0 {
		return reject(ReasonUnknownTrait, "", name, "no such merit")
	}
	c.Merits = append(c.Merits[:i:i], c.Merits[i+1:]...)
	e.touch(c)
	return nil
}

// RemoveFlaw buys off a flaw, which fails when its refund is already spent.
func (e *Engine) RemoveFlaw(c *Character, name string) error {
	if err := e.perksEditable(c, name); err != nil {
		return err
	}
	i := perkIndex(c.Flaws, name)
	if i < 0 {
		return reject(ReasonUnknownTrait, "", name, "no such flaw")
	}
	if err := e.checkFreebies(c, Hypothetical{Trait: c.Flaws[i].Name, RemovedFlaw: c.Flaws[i].Points}); err != nil {
		return err
	}
	c.Flaws = append(c.Flaws[:i:i], c.Flaws[i+1:]...)
	e.touch(c)
	return nil
}

func (e *Engine) newPerk(c *Character, existing []Perk, name string, points int, description string) (Perk, error) {
	if err := e.perksEditable(c, name); err != nil {
		return Perk{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Perk{}, reject(ReasonUnknownTrait, "", name, "name is empty")
	}
	if points < 1 || points > maxPerkPoints {
		return Perk{}, reject(ReasonOutOfRange, "", name, "points must be between 1 and %d", maxPerkPoints)
	}
	if perkIndex(existing, name) >= 0 {
		return Perk{}, reject(ReasonOutOfRange, "", name, "already taken")
	}
	return Perk{Name: name, Points: points, Description: strings.TrimSpace(description)}, nil
}

func (e *Engine) perksEditable(c *Character, name string) error {
	c.Normalize()
	if c.XPMode || c.IsPlayMode {
		return reject(ReasonModeLocked, "", name, "merits and flaws are chosen during creation")
	}
	return nil
}
