package engine

import "slices"

// syncDerived keeps Humanity and Willpower tied to the virtue that changed.
// It only runs for creation-mode virtue changes; afterwards the status values
// move through their own setters.
func (e *Engine) syncDerived(c *Character, virtue string) {
	v := sheetView{c: c}
	if slices.Contains(e.cat.Virtues.Humanity, virtue) {
		c.Status.Humanity = e.humanityBaseline(v)
	}
	if virtue == e.cat.Virtues.Willpower {
		c.Status.Willpower = e.willpowerBaseline(v)
		c.Status.TempWillpower = c.Status.Willpower
	}
}

// RecomputeDerived resets Humanity, Willpower and temporary Willpower from
// the virtues regardless of mode.
func (e *Engine) RecomputeDerived(c *Character) {
	c.Normalize()
	v := sheetView{c: c}
	c.Status.Humanity = e.humanityBaseline(v)
	c.Status.Willpower = e.willpowerBaseline(v)
	c.Status.TempWillpower = c.Status.Willpower
	e.touch(c)
}
