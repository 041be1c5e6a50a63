package session

import (
	"fmt"
	"strings"

	"github.com/suderio/bloodline/internal/engine"
)

// ProgressLines renders the phase checker, one line per phase.
func ProgressLines(p engine.Progress) []string {
	lines := make([]string, 0, len(p.Phases)+1)
	for _, ph := range p.Phases {
		mark := " "
		switch {
		case ph.Phase == p.Current:
			mark = ">"
		case ph.Complete:
			mark = "✓"
		}
		line := fmt.Sprintf("%s %d. %s", mark, ph.Phase, ph.Name)
		if len(ph.Unmet) > 0 {
			line += ": " + strings.Join(ph.Unmet, "; ")
		}
		lines = append(lines, line)
	}
	if p.Ready {
		lines = append(lines, "Ready for play.")
	}
	return lines
}

// FreebieLines renders the freebie ledger.
func FreebieLines(b engine.FreebieBreakdown) []string {
	lines := make([]string, 0, len(b.Lines)+3)
	for _, l := range b.Lines {
		if l.Extra == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("%-11s %d extra × %d = %d", l.Domain.Label(), l.Extra, l.Unit, l.Cost))
	}
	if b.Merits > 0 {
		lines = append(lines, fmt.Sprintf("%-11s %d", "Merits", b.Merits))
	}
	lines = append(lines, fmt.Sprintf("Spent %d of %d (%d + %d from flaws), %d left.",
		b.Spent, b.Available, b.Limit, b.FlawBonus, b.Remaining()))
	return lines
}

// XPLines renders the experience ledger, oldest first.
func XPLines(c *engine.Character) []string {
	lines := []string{fmt.Sprintf("Earned %d, spent %d, %d available.", c.XPEarned, c.SpentXP(), c.XPBalance())}
	for _, entry := range c.XPLog {
		lines = append(lines, fmt.Sprintf("%s %s %d → %d: %d xp",
			entry.Timestamp.Format("2006-01-02"), entry.Trait, entry.OldValue, entry.NewValue, entry.Cost))
	}
	return lines
}
