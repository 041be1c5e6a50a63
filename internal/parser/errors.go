package parser

import (
	"fmt"
	"sort"
	"strings"
)

// Usage holds the one-line syntax of each command, keyed by keyword.
var Usage = map[string]string{
	"set":       "set <attr|abil|disc|back|virt|other|humanity|willpower> [trait] <value>",
	"priority":  "priority <attr|abil> <category> <value>",
	"custom":    "custom <Talents|Skills|Knowledges> <name>",
	"uncustom":  "uncustom <name>",
	"concept":   "concept <name|player|chronicle|nature|demeanor|concept|clan|sire> [value]",
	"bio":       "bio <field> [text]",
	"mode":      "mode <creation|freebie|xp|play>",
	"buy":       "buy <domain> [trait]",
	"preview":   "preview <domain> [trait] [value]",
	"award":     "award <xp>",
	"merit":     "merit <name> <points> [description]",
	"flaw":      "flaw <name> <points> [description]",
	"drop":      "drop <merit|flaw> <name>",
	"blood":     "blood <spend|feed|set> [amount]",
	"willpower": "willpower <spend|regain> [amount]",
	"health":    "health <1-7> [none|bashing|lethal|aggravated]",
	"roll":      "roll <pool> [diff <n>] [spec] [wp]",
	"next":      "next",
	"goto":      "goto <phase>",
	"progress":  "progress",
	"freebies":  "freebies",
	"xp":        "xp",
	"save":      "save",
	"help":      "help [command]",
}

// Keywords lists every command keyword, sorted.
func Keywords() []string {
	out := make([]string, 0, len(Usage))
	for k := range Usage {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// MapError takes a raw input and a participle error, and returns a human-friendly guidance message.
func MapError(input string, err error) error {
	input = strings.TrimSpace(input)
	if input == "" {
		return fmt.Errorf("I wasn't able to understand your command")
	}

	cmd := strings.ToLower(strings.Fields(input)[0])
	if usage, ok := Usage[cmd]; ok {
		return fmt.Errorf("The command %s must be: %s", cmd, usage)
	}
	return fmt.Errorf("I wasn't able to understand your command; try help")
}
