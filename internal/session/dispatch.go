package session

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/suderio/bloodline/internal/engine"
	"github.com/suderio/bloodline/internal/parser"
)

var healthLevels = map[string]int{
	"none":       engine.DamageNone,
	"clear":      engine.DamageNone,
	"bashing":    engine.DamageBashing,
	"lethal":     engine.DamageLethal,
	"aggravated": engine.DamageAggravated,
	"agg":        engine.DamageAggravated,
}

func domainOf(s string) (engine.Domain, error) {
	d, ok := engine.ParseDomain(s)
	if !ok {
		return "", fmt.Errorf("unknown domain %q (want attr, abil, disc, back, virt, other, humanity or willpower)", s)
	}
	return d, nil
}

func amountOr(n *int, def int) int {
	if n == nil {
		return def
	}
	return *n
}

func (s *Session) dispatch(cmd *parser.Command) ([]string, error) {
	e, c := s.eng, s.char
	switch {
	case cmd.Set != nil:
		d, err := domainOf(cmd.Set.Domain)
		if err != nil {
			return nil, err
		}
		res, err := e.ProposeRating(c, d, cmd.Set.TraitName(), cmd.Set.Value)
		if err != nil {
			return nil, err
		}
		return []string{res.Message()}, nil

	case cmd.Buy != nil:
		d, err := domainOf(cmd.Buy.Domain)
		if err != nil {
			return nil, err
		}
		res, err := e.Purchase(c, d, cmd.Buy.TraitName())
		if err != nil {
			return nil, err
		}
		return []string{res.Message(), fmt.Sprintf("%d xp left.", c.XPBalance())}, nil

	case cmd.Preview != nil:
		return s.preview(cmd.Preview)

	case cmd.Priority != nil:
		d, err := domainOf(cmd.Priority.Domain)
		if err != nil {
			return nil, err
		}
		reset, err := e.AssignPriority(c, d, cmd.Priority.Category, cmd.Priority.Value)
		if err != nil {
			return nil, err
		}
		lines := []string{fmt.Sprintf("%s priority is %d.", cmd.Priority.Category, cmd.Priority.Value)}
		if len(reset) > 0 {
			lines = append(lines, "Reset "+strings.Join(reset, ", ")+".")
		}
		return lines, nil

	case cmd.Custom != nil:
		name := strings.Join(cmd.Custom.Name, " ")
		if err := e.AddCustomAbility(c, name, cmd.Custom.Category); err != nil {
			return nil, err
		}
		return []string{fmt.Sprintf("%s filed under %s.", name, cmd.Custom.Category)}, nil

	case cmd.Uncustom != nil:
		name := strings.Join(cmd.Uncustom.Name, " ")
		if err := e.RemoveCustomAbility(c, name); err != nil {
			return nil, err
		}
		return []string{fmt.Sprintf("%s removed.", name)}, nil

	case cmd.Concept != nil:
		if strings.EqualFold(cmd.Concept.Field, "name") && strings.TrimSpace(cmd.Concept.Text()) == "" {
			return nil, fmt.Errorf("a character needs a name")
		}
		if err := e.SetConcept(c, cmd.Concept.Field, cmd.Concept.Text()); err != nil {
			return nil, err
		}
		return []string{fmt.Sprintf("%s: %q.", strings.ToLower(cmd.Concept.Field), cmd.Concept.Text())}, nil

	case cmd.Bio != nil:
		if err := e.SetBiography(c, cmd.Bio.Field, cmd.Bio.Text()); err != nil {
			return nil, err
		}
		return []string{fmt.Sprintf("%s updated.", strings.ToLower(cmd.Bio.Field))}, nil

	case cmd.Mode != nil:
		return s.mode(cmd.Mode.Mode)

	case cmd.Award != nil:
		if err := e.AwardXP(c, cmd.Award.Amount); err != nil {
			return nil, err
		}
		return []string{fmt.Sprintf("Awarded %d xp; %d available.", cmd.Award.Amount, c.XPBalance())}, nil

	case cmd.Merit != nil:
		p := cmd.Merit
		if err := e.AddMerit(c, p.PerkName(), p.Points, p.Text()); err != nil {
			return nil, err
		}
		return []string{fmt.Sprintf("Merit %s (%d).", p.PerkName(), p.Points)}, nil

	case cmd.Flaw != nil:
		p := cmd.Flaw
		if err := e.AddFlaw(c, p.PerkName(), p.Points, p.Text()); err != nil {
			return nil, err
		}
		return []string{fmt.Sprintf("Flaw %s (%d).", p.PerkName(), p.Points)}, nil

	case cmd.Drop != nil:
		var err error
		if strings.EqualFold(cmd.Drop.Kind, "merit") {
			err = e.RemoveMerit(c, cmd.Drop.PerkName())
		} else {
			err = e.RemoveFlaw(c, cmd.Drop.PerkName())
		}
		if err != nil {
			return nil, err
		}
		return []string{fmt.Sprintf("Dropped %s.", cmd.Drop.PerkName())}, nil

	case cmd.Blood != nil:
		return s.blood(cmd.Blood)

	case cmd.WP != nil:
		return s.willpower(cmd.WP)

	case cmd.Health != nil:
		return s.health(cmd.Health)

	case cmd.Roll != nil:
		r := cmd.Roll
		res, err := e.Roll(c, r.Pool, amountOr(r.Difficulty, 6), r.Specialty, r.Willpower)
		if err != nil {
			return nil, err
		}
		return []string{res.String()}, nil

	case cmd.Next != nil:
		phase, err := e.Advance(c)
		if err != nil {
			return nil, err
		}
		return []string{fmt.Sprintf("Phase %d: %s.", phase, engine.PhaseName(phase))}, nil

	case cmd.GoTo != nil:
		if err := e.GoToPhase(c, cmd.GoTo.Phase); err != nil {
			return nil, err
		}
		return []string{fmt.Sprintf("Phase %d: %s.", c.CurrentPhase, engine.PhaseName(c.CurrentPhase))}, nil

	case cmd.Progress != nil:
		return ProgressLines(s.Progress()), nil

	case cmd.Freebies != nil:
		return FreebieLines(e.FreebieBreakdown(c)), nil

	case cmd.XP != nil:
		return XPLines(c), nil

	case cmd.Save != nil:
		if err := s.Save(); err != nil {
			return nil, err
		}
		return []string{"Saved."}, nil

	case cmd.Help != nil:
		return help(cmd.Help.Command), nil
	}
	return nil, fmt.Errorf("unsupported command pattern")
}

func (s *Session) preview(p *parser.PreviewCmd) ([]string, error) {
	d, err := domainOf(p.Domain)
	if err != nil {
		return nil, err
	}
	subject := p.TraitName()
	if d.IsStatus() {
		subject = d.Label()
	}
	if s.char.Mode() == engine.ModeExperience {
		cost, err := s.eng.PreviewXPCost(s.char, d, p.TraitName())
		if err != nil {
			return nil, err
		}
		return []string{fmt.Sprintf("Next dot of %s costs %d xp; %d available.", subject, cost, s.char.XPBalance())}, nil
	}
	if p.Value == nil {
		return nil, fmt.Errorf("preview needs a target value outside experience mode")
	}
	delta, err := s.eng.PreviewFreebieCost(s.char, d, p.TraitName(), *p.Value)
	if err != nil {
		return nil, err
	}
	remaining := s.eng.FreebieBreakdown(s.char).Remaining() - delta
	return []string{fmt.Sprintf("%s at %d: %+d freebies, %d left.", subject, *p.Value, delta, remaining)}, nil
}

func (s *Session) mode(name string) ([]string, error) {
	e, c := s.eng, s.char
	switch strings.ToLower(name) {
	case "creation":
		e.ExitSpendModes(c)
		e.SetPlayMode(c, false)
	case "freebie", "freebies":
		if err := e.EnterFreebieMode(c); err != nil {
			return nil, err
		}
	case "xp", "experience":
		e.EnterXPMode(c)
	case "play":
		e.SetPlayMode(c, true)
	default:
		return nil, fmt.Errorf("unknown mode %q (want creation, freebie, xp or play)", name)
	}
	state := c.Mode().String()
	if c.IsPlayMode {
		state += ", in play"
	}
	return []string{"Mode: " + state + "."}, nil
}

func (s *Session) blood(b *parser.BloodCmd) ([]string, error) {
	e, c := s.eng, s.char
	switch strings.ToLower(b.Action) {
	case "spend":
		if err := e.SpendBlood(c, amountOr(b.Amount, 1)); err != nil {
			return nil, err
		}
	case "feed":
		gained, err := e.Feed(c, amountOr(b.Amount, 1))
		if err != nil {
			return nil, err
		}
		if gained == 0 {
			return []string{fmt.Sprintf("Already full at %d.", c.Status.BloodPool)}, nil
		}
	case "set":
		if b.Amount == nil {
			return nil, fmt.Errorf("The command blood must be: %s", parser.Usage["blood"])
		}
		if err := e.SetBloodPool(c, *b.Amount); err != nil {
			return nil, err
		}
	}
	return []string{fmt.Sprintf("Blood pool %d/%d.", c.Status.BloodPool, e.BloodLimits(c).MaxBlood)}, nil
}

func (s *Session) willpower(w *parser.WillpowerCmd) ([]string, error) {
	e, c := s.eng, s.char
	n := amountOr(w.Amount, 1)
	if strings.EqualFold(w.Action, "spend") {
		if err := e.SpendWillpower(c, n); err != nil {
			return nil, err
		}
	} else if _, err := e.RegainWillpower(c, n); err != nil {
		return nil, err
	}
	return []string{fmt.Sprintf("Willpower %d/%d.", c.Status.TempWillpower, c.Status.Willpower)}, nil
}

func (s *Session) health(h *parser.HealthCmd) ([]string, error) {
	e, c := s.eng, s.char
	if h.Slot < 1 || h.Slot > engine.HealthLevels {
		return nil, &engine.Rejection{
			Reason: engine.ReasonOutOfRange,
			Trait:  "health",
			Detail: fmt.Sprintf("boxes run from 1 to %d", engine.HealthLevels),
		}
	}
	slot := h.Slot - 1
	if h.Level == "" {
		if _, err := e.CycleHealth(c, slot); err != nil {
			return nil, err
		}
	} else {
		level, ok := healthLevels[strings.ToLower(h.Level)]
		if !ok {
			n, err := strconv.Atoi(h.Level)
			if err != nil {
				return nil, fmt.Errorf("unknown damage %q (want none, bashing, lethal or aggravated)", h.Level)
			}
			level = n
		}
		if err := e.SetHealth(c, slot, level); err != nil {
			return nil, err
		}
	}
	line := "Health: " + engine.HealthLevelName(c)
	if penalty, incapacitated := engine.HealthPenalty(c); !incapacitated && penalty != 0 {
		line += fmt.Sprintf(" (%d dice)", penalty)
	}
	return []string{line + "."}, nil
}

func help(topic string) []string {
	if topic != "" {
		if usage, ok := parser.Usage[strings.ToLower(topic)]; ok {
			return []string{usage}
		}
		return []string{fmt.Sprintf("No command %q.", topic)}
	}
	lines := make([]string, 0, len(parser.Usage))
	for _, k := range parser.Keywords() {
		lines = append(lines, parser.Usage[k])
	}
	return lines
}
