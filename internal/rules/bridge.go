package rules

import "github.com/suderio/bloodline/internal/engine"

// PricingContext converts the inputs of an experience purchase into CEL
// variables. CEL integers are int64.
func PricingContext(current int, inClan, clanless bool) map[string]any {
	return map[string]any{
		"current":  int64(current),
		"in_clan":  inClan,
		"clanless": clanless,
	}
}

// categoryOf maps a catalog key onto an experience category.
func categoryOf(key string) (engine.XPCategory, bool) {
	for _, c := range engine.XPCategories {
		if string(c) == key {
			return c, true
		}
	}
	return "", false
}
