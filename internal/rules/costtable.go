package rules

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/cel-go/cel"

	"github.com/suderio/bloodline/internal/engine"
	"github.com/suderio/bloodline/internal/platform/logger"
)

// CostTable prices experience with catalog formulas. Categories without a
// formula use the standard chart.
type CostTable struct {
	programs map[engine.XPCategory]cel.Program
	sources  map[engine.XPCategory]string
}

// NewCostTable compiles every formula up front so a broken catalog fails at
// load time instead of at the first purchase.
func NewCostTable(formulas map[string]string) (*CostTable, error) {
	reg, err := NewRegistry()
	if err != nil {
		return nil, err
	}

	t := &CostTable{
		programs: make(map[engine.XPCategory]cel.Program, len(formulas)),
		sources:  make(map[engine.XPCategory]string, len(formulas)),
	}
	for key, expr := range formulas {
		cat, ok := categoryOf(strings.ToLower(strings.TrimSpace(key)))
		if !ok {
			return nil, fmt.Errorf("xp_costs: unknown category %q", key)
		}
		prog, err := reg.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("xp_costs.%s: %w", cat, err)
		}
		if _, err := evalCost(prog, 1, false, false); err != nil {
			return nil, fmt.Errorf("xp_costs.%s: %w", cat, err)
		}
		t.programs[cat] = prog
		t.sources[cat] = expr
	}
	return t, nil
}

// XPCost implements engine.XPPricer.
func (t *CostTable) XPCost(current int, cat engine.XPCategory, inClan, clanless bool) int {
	prog, ok := t.programs[cat]
	if !ok {
		return engine.GetXpCost(current, cat, inClan, clanless)
	}
	cost, err := evalCost(prog, current, inClan, clanless)
	if err != nil {
		logger.Log.Warningf("xp formula for %s failed (%v); using the standard cost", cat, err)
		return engine.GetXpCost(current, cat, inClan, clanless)
	}
	return max(cost, 0)
}

// Overrides lists the categories priced by formulas, sorted.
func (t *CostTable) Overrides() []string {
	out := make([]string, 0, len(t.sources))
	for cat, src := range t.sources {
		out = append(out, fmt.Sprintf("%s: %s", cat, src))
	}
	slices.Sort(out)
	return out
}

func evalCost(prog cel.Program, current int, inClan, clanless bool) (int, error) {
	out, _, err := prog.Eval(PricingContext(current, inClan, clanless))
	if err != nil {
		return 0, fmt.Errorf("CEL eval error: %w", err)
	}
	n, ok := out.Value().(int64)
	if !ok {
		return 0, fmt.Errorf("formula must return an int, got %T", out.Value())
	}
	return int(n), nil
}
