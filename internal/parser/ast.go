package parser

import (
	"strings"
)

// Command represents one line typed into the sheet editor
type Command struct {
	Set      *SetCmd       `parser:"( @@"`
	Priority *PriorityCmd  `parser:"| @@"`
	Custom   *CustomCmd    `parser:"| @@"`
	Uncustom *UncustomCmd  `parser:"| @@"`
	Concept  *ConceptCmd   `parser:"| @@"`
	Bio      *BioCmd       `parser:"| @@"`
	Mode     *ModeCmd      `parser:"| @@"`
	Buy      *BuyCmd       `parser:"| @@"`
	Preview  *PreviewCmd   `parser:"| @@"`
	Award    *AwardCmd     `parser:"| @@"`
	Merit    *PerkCmd      `parser:"| \"merit\" @@"`
	Flaw     *PerkCmd      `parser:"| \"flaw\" @@"`
	Drop     *DropCmd      `parser:"| @@"`
	Blood    *BloodCmd     `parser:"| @@"`
	WP       *WillpowerCmd `parser:"| @@"`
	Health   *HealthCmd    `parser:"| @@"`
	Roll     *RollCmd      `parser:"| @@"`
	Next     *NextCmd      `parser:"| @@"`
	GoTo     *GoToCmd      `parser:"| @@"`
	Progress *ProgressCmd  `parser:"| @@"`
	Freebies *FreebiesCmd  `parser:"| @@"`
	XP       *XPCmd        `parser:"| @@"`
	Save     *SaveCmd      `parser:"| @@"`
	Help     *HelpCmd      `parser:"| @@ )"`
}

// Name returns the keyword of the parsed command.
func (c *Command) Name() string {
	switch {
	case c.Set != nil:
		return "set"
	case c.Priority != nil:
		return "priority"
	case c.Custom != nil:
		return "custom"
	case c.Uncustom != nil:
		return "uncustom"
	case c.Concept != nil:
		return "concept"
	case c.Bio != nil:
		return "bio"
	case c.Mode != nil:
		return "mode"
	case c.Buy != nil:
		return "buy"
	case c.Preview != nil:
		return "preview"
	case c.Award != nil:
		return "award"
	case c.Merit != nil:
		return "merit"
	case c.Flaw != nil:
		return "flaw"
	case c.Drop != nil:
		return "drop"
	case c.Blood != nil:
		return "blood"
	case c.WP != nil:
		return "willpower"
	case c.Health != nil:
		return "health"
	case c.Roll != nil:
		return "roll"
	case c.Next != nil:
		return "next"
	case c.GoTo != nil:
		return "goto"
	case c.Progress != nil:
		return "progress"
	case c.Freebies != nil:
		return "freebies"
	case c.XP != nil:
		return "xp"
	case c.Save != nil:
		return "save"
	case c.Help != nil:
		return "help"
	}
	return ""
}

// Mutates reports whether the command can change the sheet.
func (c *Command) Mutates() bool {
	switch c.Name() {
	case "preview", "progress", "freebies", "xp", "save", "help", "":
		return false
	}
	return true
}

// SetCmd proposes a rating: set abil "Animal Ken" 2
type SetCmd struct {
	Keyword string   `parser:"\"set\""`
	Domain  string   `parser:"@Ident"`
	Trait   []string `parser:"@(Ident|String)*"`
	Value   int      `parser:"@Int"`
}

// TraitName joins a multi-word trait.
func (s *SetCmd) TraitName() string { return words(s.Trait) }

// PriorityCmd assigns a category budget: priority attr Physical 7
type PriorityCmd struct {
	Keyword  string `parser:"\"priority\""`
	Domain   string `parser:"@Ident"`
	Category string `parser:"@(Ident|String)"`
	Value    int    `parser:"@Int"`
}

// CustomCmd files a new ability under a category: custom Talents Poetry
type CustomCmd struct {
	Keyword  string   `parser:"\"custom\""`
	Category string   `parser:"@Ident"`
	Name     []string `parser:"@(Ident|String)+"`
}

// UncustomCmd forgets a custom ability
type UncustomCmd struct {
	Keyword string   `parser:"\"uncustom\""`
	Name    []string `parser:"@(Ident|String)+"`
}

// ConceptCmd writes a concept field; an empty value clears it
type ConceptCmd struct {
	Keyword string   `parser:"\"concept\""`
	Field   string   `parser:"@Ident"`
	Value   []string `parser:"@(Ident|String|Int|Punct)*"`
}

// Text joins the value words.
func (c *ConceptCmd) Text() string { return words(c.Value) }

// BioCmd writes a free-text biography field
type BioCmd struct {
	Keyword string   `parser:"\"bio\""`
	Field   string   `parser:"@(Ident|String)"`
	Value   []string `parser:"@(Ident|String|Int|Punct)*"`
}

// Text joins the value words.
func (b *BioCmd) Text() string { return words(b.Value) }

// ModeCmd switches the spending economy: mode <creation|freebie|xp|play>
type ModeCmd struct {
	Keyword string `parser:"\"mode\""`
	Mode    string `parser:"@Ident"`
}

// BuyCmd spends experience on one dot: buy disc Potence
type BuyCmd struct {
	Keyword string   `parser:"\"buy\""`
	Domain  string   `parser:"@Ident"`
	Trait   []string `parser:"@(Ident|String)*"`
}

// TraitName joins a multi-word trait.
func (b *BuyCmd) TraitName() string { return words(b.Trait) }

// PreviewCmd prices a change without making it: preview attr Wits [3]
type PreviewCmd struct {
	Keyword string   `parser:"\"preview\""`
	Domain  string   `parser:"@Ident"`
	Trait   []string `parser:"@(Ident|String)*"`
	Value   *int     `parser:"@Int?"`
}

// TraitName joins a multi-word trait.
func (p *PreviewCmd) TraitName() string { return words(p.Trait) }

// AwardCmd grants experience
type AwardCmd struct {
	Keyword string `parser:"\"award\""`
	Amount  int    `parser:"@Int"`
}

// PerkCmd takes a merit or flaw: merit "Iron Will" 3 resists Dominate
type PerkCmd struct {
	Name        []string `parser:"@(Ident|String)+"`
	Points      int      `parser:"@Int"`
	Description []string `parser:"@(Ident|String|Int|Punct)*"`
}

// PerkName joins a multi-word name.
func (p *PerkCmd) PerkName() string { return words(p.Name) }

// Text joins the description words.
func (p *PerkCmd) Text() string { return words(p.Description) }

// DropCmd removes a merit or flaw
type DropCmd struct {
	Keyword string   `parser:"\"drop\""`
	Kind    string   `parser:"@(\"merit\"|\"flaw\")"`
	Name    []string `parser:"@(Ident|String)+"`
}

// PerkName joins a multi-word name.
func (d *DropCmd) PerkName() string { return words(d.Name) }

// BloodCmd tracks the blood pool: blood <spend|feed|set> [n]
type BloodCmd struct {
	Keyword string `parser:"\"blood\""`
	Action  string `parser:"@(\"spend\"|\"feed\"|\"set\")"`
	Amount  *int   `parser:"@Int?"`
}

// WillpowerCmd tracks temporary Willpower: willpower <spend|regain> [n]
type WillpowerCmd struct {
	Keyword string `parser:"\"willpower\""`
	Action  string `parser:"@(\"spend\"|\"regain\")"`
	Amount  *int   `parser:"@Int?"`
}

// HealthCmd marks a health box, numbered 1 to 7: health 2 [lethal]
type HealthCmd struct {
	Keyword string `parser:"\"health\""`
	Slot    int    `parser:"@Int"`
	Level   string `parser:"@(Int|Ident)?"`
}

// RollCmd rolls a d10 pool: roll 6 diff 7 spec wp
type RollCmd struct {
	Keyword    string `parser:"\"roll\""`
	Pool       int    `parser:"@Int"`
	Difficulty *int   `parser:"( \"diff\" @Int )?"`
	Specialty  bool   `parser:"@\"spec\"?"`
	Willpower  bool   `parser:"@\"wp\"?"`
}

// NextCmd advances to the next phase
type NextCmd struct {
	Keyword string `parser:"@\"next\""`
}

// GoToCmd navigates to a reached phase
type GoToCmd struct {
	Keyword string `parser:"\"goto\""`
	Phase   int    `parser:"@Int"`
}

// ProgressCmd reports phase completion
type ProgressCmd struct {
	Keyword string `parser:"@\"progress\""`
}

// FreebiesCmd prints the freebie ledger
type FreebiesCmd struct {
	Keyword string `parser:"@\"freebies\""`
}

// XPCmd prints the experience ledger
type XPCmd struct {
	Keyword string `parser:"@\"xp\""`
}

// SaveCmd forces a save
type SaveCmd struct {
	Keyword string `parser:"@\"save\""`
}

// HelpCmd lists the commands or explains one
type HelpCmd struct {
	Keyword string `parser:"@\"help\""`
	Command string `parser:"@Ident?"`
}

func words(parts []string) string {
	return strings.TrimSpace(strings.Join(parts, " "))
}
