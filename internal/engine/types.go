// Package engine implements the V20 point-budget rules: the character
// state, the creation/freebie/experience economies, derived stats, phase
// completion and play-mode tracking. Every function takes the character it
// works on explicitly; nothing here holds ambient state.
package engine

import (
	"strings"
	"time"
)

// Domain tags a family of traits that share one allocation policy.
type Domain string

const (
	DomainAttribute  Domain = "attr"
	DomainAbility    Domain = "abil"
	DomainDiscipline Domain = "disc"
	DomainBackground Domain = "back"
	DomainVirtue     Domain = "virt"
	DomainOther      Domain = "other"
	DomainHumanity   Domain = "humanity"
	DomainWillpower  Domain = "willpower"
)

// Domains lists every domain in sheet order.
var Domains = []Domain{
	DomainAttribute, DomainAbility, DomainDiscipline, DomainBackground,
	DomainVirtue, DomainOther, DomainHumanity, DomainWillpower,
}

var domainAliases = map[string]Domain{
	"attr": DomainAttribute, "attribute": DomainAttribute, "attributes": DomainAttribute,
	"abil": DomainAbility, "ability": DomainAbility, "abilities": DomainAbility,
	"disc": DomainDiscipline, "discipline": DomainDiscipline, "disciplines": DomainDiscipline,
	"back": DomainBackground, "background": DomainBackground, "backgrounds": DomainBackground,
	"virt": DomainVirtue, "virtue": DomainVirtue, "virtues": DomainVirtue,
	"other": DomainOther,
	"humanity": DomainHumanity,
	"willpower": DomainWillpower, "wp": DomainWillpower,
}

// ParseDomain accepts the short tags and the common long names.
func ParseDomain(s string) (Domain, bool) {
	d, ok := domainAliases[strings.ToLower(strings.TrimSpace(s))]
	return d, ok
}

// IsStatus reports whether the domain is a single status value rather than a
// map of named traits.
func (d Domain) IsStatus() bool {
	return d == DomainHumanity || d == DomainWillpower
}

// Label is the human name of the domain.
func (d Domain) Label() string {
	switch d {
	case DomainAttribute:
		return "Attributes"
	case DomainAbility:
		return "Abilities"
	case DomainDiscipline:
		return "Disciplines"
	case DomainBackground:
		return "Backgrounds"
	case DomainVirtue:
		return "Virtues"
	case DomainOther:
		return "Other Traits"
	case DomainHumanity:
		return "Humanity"
	case DomainWillpower:
		return "Willpower"
	}
	return string(d)
}

// Mode is the point economy currently in force.
type Mode int

const (
	ModeCreation Mode = iota
	ModeFreebie
	ModeExperience
)

func (m Mode) String() string {
	switch m {
	case ModeFreebie:
		return "freebie"
	case ModeExperience:
		return "experience"
	}
	return "creation"
}

// HealthLevels is the fixed number of damage boxes.
const HealthLevels = 7

// Damage kinds stored in a health box.
const (
	DamageNone = iota
	DamageBashing
	DamageLethal
	DamageAggravated
)

// Concept holds the phase-one text fields.
type Concept struct {
	Name      string `json:"name" yaml:"name"`
	Player    string `json:"player" yaml:"player"`
	Chronicle string `json:"chronicle" yaml:"chronicle"`
	Nature    string `json:"nature" yaml:"nature"`
	Demeanor  string `json:"demeanor" yaml:"demeanor"`
	Concept   string `json:"concept" yaml:"concept"`
	Clan      string `json:"clan" yaml:"clan"`
	Sire      string `json:"sire" yaml:"sire"`
}

// Dots maps trait name to rating, one map per domain.
type Dots struct {
	Attr  map[string]int `json:"attr" yaml:"attr"`
	Abil  map[string]int `json:"abil" yaml:"abil"`
	Disc  map[string]int `json:"disc" yaml:"disc"`
	Back  map[string]int `json:"back" yaml:"back"`
	Virt  map[string]int `json:"virt" yaml:"virt"`
	Other map[string]int `json:"other" yaml:"other"`
}

// Map returns the rating map of a trait domain, creating it when missing.
// Status domains have no map and return nil.
func (d *Dots) Map(dom Domain) map[string]int {
	var m *map[string]int
	switch dom {
	case DomainAttribute:
		m = &d.Attr
	case DomainAbility:
		m = &d.Abil
	case DomainDiscipline:
		m = &d.Disc
	case DomainBackground:
		m = &d.Back
	case DomainVirtue:
		m = &d.Virt
	case DomainOther:
		m = &d.Other
	default:
		return nil
	}
	if *m == nil {
		*m = make(map[string]int)
	}
	return *m
}

// Priorities maps group category to its assigned budget.
type Priorities struct {
	Attr map[string]int `json:"attr" yaml:"attr"`
	Abil map[string]int `json:"abil" yaml:"abil"`
}

// For returns the priority map of attributes or abilities.
func (p *Priorities) For(dom Domain) map[string]int {
	switch dom {
	case DomainAttribute:
		if p.Attr == nil {
			p.Attr = make(map[string]int)
		}
		return p.Attr
	case DomainAbility:
		if p.Abil == nil {
			p.Abil = make(map[string]int)
		}
		return p.Abil
	}
	return nil
}

// Status is the adjustable runtime record.
type Status struct {
	Humanity      int               `json:"humanity" yaml:"humanity"`
	Willpower     int               `json:"willpower" yaml:"willpower"`
	TempWillpower int               `json:"tempWillpower" yaml:"tempWillpower"`
	BloodPool     int               `json:"bloodPool" yaml:"bloodPool"`
	HealthStates  [HealthLevels]int `json:"healthStates" yaml:"healthStates"`
}

// Perk is a merit or a flaw.
type Perk struct {
	Name        string `json:"name" yaml:"name"`
	Points      int    `json:"pointValue" yaml:"pointValue"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// XPEntry is one immutable experience purchase.
type XPEntry struct {
	Trait     string    `json:"trait" yaml:"trait"`
	Category  Domain    `json:"category" yaml:"category"`
	OldValue  int       `json:"oldValue" yaml:"oldValue"`
	NewValue  int       `json:"newValue" yaml:"newValue"`
	Cost      int       `json:"cost" yaml:"cost"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// Character is the whole editable sheet. It round-trips as one document.
type Character struct {
	ID                      string            `json:"id" yaml:"id"`
	Concept                 Concept           `json:"concept" yaml:"concept"`
	Dots                    Dots              `json:"dots" yaml:"dots"`
	Priorities              Priorities        `json:"priorities" yaml:"priorities"`
	Status                  Status            `json:"status" yaml:"status"`
	CustomAbilityCategories map[string]string `json:"customAbilityCategories" yaml:"customAbilityCategories"`
	Merits                  []Perk            `json:"merits" yaml:"merits"`
	Flaws                   []Perk            `json:"flaws" yaml:"flaws"`
	Biography               map[string]string `json:"biography" yaml:"biography"`

	IsPlayMode  bool `json:"isPlayMode" yaml:"isPlayMode"`
	FreebieMode bool `json:"freebieMode" yaml:"freebieMode"`
	XPMode      bool `json:"xpMode" yaml:"xpMode"`

	FreebieLimit int       `json:"freebieLimit" yaml:"freebieLimit"`
	XPEarned     int       `json:"xpEarned" yaml:"xpEarned"`
	XPLog        []XPEntry `json:"xpLog" yaml:"xpLog"`

	FurthestPhase int       `json:"furthestPhase" yaml:"furthestPhase"`
	CurrentPhase  int       `json:"currentPhase" yaml:"currentPhase"`
	UpdatedAt     time.Time `json:"updatedAt" yaml:"updatedAt"`
}
