package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/suderio/bloodline/internal/data"
	"github.com/suderio/bloodline/internal/engine"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#8B0000")).
			Padding(0, 1).
			MarginBottom(1)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#999999"))

	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#C0392B"))

	stateBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#8B0000")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F25D94"))
)

// dots draws a rating as filled and empty circles.
func dots(n, top int) string {
	n = min(max(n, 0), top)
	return strings.Repeat("●", n) + strings.Repeat("○", top-n)
}

func traitLines(ratings map[string]int, names []string, top int) []string {
	width := 0
	for _, n := range names {
		width = max(width, len(n))
	}
	lines := make([]string, 0, len(names))
	for _, n := range names {
		lines = append(lines, fmt.Sprintf("%-*s %s", width, n, dots(ratings[n], top)))
	}
	return lines
}

func column(title string, lines []string) string {
	return lipgloss.JoinVertical(lipgloss.Left, append([]string{headingStyle.Render(title)}, lines...)...)
}

func groupColumns(ratings map[string]int, groups []data.Group, extra map[string][]string) string {
	cols := make([]string, 0, len(groups))
	for _, g := range groups {
		names := append(append([]string{}, g.Traits...), extra[g.Name]...)
		cols = append(cols, column(g.Name, traitLines(ratings, names, 5)), "   ")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

// rated lists the traits of a map with a rating above zero, sorted.
func rated(ratings map[string]int) []string {
	names := make([]string, 0, len(ratings))
	for n, v := range ratings {
		if v > 0 {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names
}

func perkLines(perks []engine.Perk) []string {
	if len(perks) == 0 {
		return []string{infoStyle.Render("none")}
	}
	lines := make([]string, 0, len(perks))
	for _, p := range perks {
		line := fmt.Sprintf("%s (%d)", p.Name, p.Points)
		if p.Description != "" {
			line += " " + infoStyle.Render(p.Description)
		}
		lines = append(lines, line)
	}
	return lines
}

func healthLine(c *engine.Character) string {
	marks := map[int]string{
		engine.DamageNone:       "□",
		engine.DamageBashing:    "/",
		engine.DamageLethal:     "X",
		engine.DamageAggravated: "*",
	}
	var b strings.Builder
	for _, s := range c.Status.HealthStates {
		b.WriteString(marks[s])
	}
	return fmt.Sprintf("%s %s", b.String(), engine.HealthLevelName(c))
}

// renderSheet lays the whole character out for a terminal.
func renderSheet(e *engine.Engine, c *engine.Character) string {
	cat := e.Catalog()
	c.Normalize()

	mode := c.Mode().String()
	if c.IsPlayMode {
		mode += ", in play"
	}
	title := titleStyle.Render(fmt.Sprintf(" %s | %s | %d%s generation ", c.Concept.Name, orDash(c.Concept.Clan), e.Generation(c), ordinal(e.Generation(c))))
	concept := lipgloss.JoinVertical(lipgloss.Left,
		fmt.Sprintf("Player: %s  Chronicle: %s  Sire: %s", orDash(c.Concept.Player), orDash(c.Concept.Chronicle), orDash(c.Concept.Sire)),
		fmt.Sprintf("Nature: %s  Demeanor: %s  Concept: %s", orDash(c.Concept.Nature), orDash(c.Concept.Demeanor), orDash(c.Concept.Concept)),
		infoStyle.Render(fmt.Sprintf("Phase %d (%s), %s mode", c.CurrentPhase, engine.PhaseName(c.CurrentPhase), mode)),
	)

	custom := map[string][]string{}
	for name, group := range c.CustomAbilityCategories {
		custom[group] = append(custom[group], name)
	}
	for _, names := range custom {
		sort.Strings(names)
	}

	advantages := lipgloss.JoinHorizontal(lipgloss.Top,
		column("Disciplines", traitLines(c.Dots.Disc, rated(c.Dots.Disc), 5)), "   ",
		column("Backgrounds", traitLines(c.Dots.Back, rated(c.Dots.Back), 5)), "   ",
		column("Virtues", traitLines(c.Dots.Virt, cat.Virtues.Names, 5)),
	)
	if others := rated(c.Dots.Other); len(others) > 0 {
		advantages = lipgloss.JoinHorizontal(lipgloss.Top, advantages, "   ", column("Other", traitLines(c.Dots.Other, others, 10)))
	}

	status := lipgloss.JoinVertical(lipgloss.Left,
		fmt.Sprintf("Humanity  %s", dots(c.Status.Humanity, 10)),
		fmt.Sprintf("Willpower %s  (%d left)", dots(c.Status.Willpower, 10), c.Status.TempWillpower),
		fmt.Sprintf("Blood     %d/%d (%d per turn)", c.Status.BloodPool, e.BloodLimits(c).MaxBlood, e.BloodLimits(c).PerTurn),
		fmt.Sprintf("Health    %s", healthLine(c)),
	)
	perks := lipgloss.JoinHorizontal(lipgloss.Top,
		column("Merits", perkLines(c.Merits)), "   ",
		column("Flaws", perkLines(c.Flaws)),
	)

	b := e.FreebieBreakdown(c)
	ledger := infoStyle.Render(fmt.Sprintf("Freebies %d/%d  XP %d earned, %d available", b.Spent, b.Available, c.XPEarned, c.XPBalance()))

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		concept,
		"",
		headingStyle.Render("ATTRIBUTES"),
		groupColumns(c.Dots.Attr, cat.Attributes, nil),
		"",
		headingStyle.Render("ABILITIES"),
		groupColumns(c.Dots.Abil, cat.Abilities, custom),
		"",
		advantages,
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, status, "     ", perks),
		"",
		ledger,
	)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func ordinal(n int) string {
	if n%100 >= 11 && n%100 <= 13 {
		return "th"
	}
	switch n % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	}
	return "th"
}
