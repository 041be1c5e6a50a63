package engine

import (
	"strings"
)

// EnterFreebieMode switches the sheet to freebie pricing. Experience mode is
// left.
func (e *Engine) EnterFreebieMode(c *Character) error {
	if c.IsPlayMode {
		return reject(ReasonModeLocked, "", "freebies", "freebies are spent before play begins")
	}
	c.FreebieMode = true
	c.XPMode = false
	e.touch(c)
	return nil
}

// EnterXPMode switches the sheet to experience purchases. Freebie mode is
// left.
func (e *Engine) EnterXPMode(c *Character) {
	c.XPMode = true
	c.FreebieMode = false
	e.touch(c)
}

// ExitSpendModes returns to creation rules (or plain play tracking).
func (e *Engine) ExitSpendModes(c *Character) {
	c.XPMode = false
	c.FreebieMode = false
	e.touch(c)
}

// SetPlayMode toggles play tracking. Freebies cannot be spent in play.
func (e *Engine) SetPlayMode(c *Character, on bool) {
	c.IsPlayMode = on
	if on {
		c.FreebieMode = false
	}
	e.touch(c)
}

// ConceptFields lists the fields SetConcept accepts.
var ConceptFields = []string{"name", "player", "chronicle", "nature", "demeanor", "concept", "clan", "sire"}

// SetConcept writes one concept field. Changing clan moves attributes onto
// the new clan's floors and caps, and is only possible during creation.
func (e *Engine) SetConcept(c *Character, field, value string) error {
	c.Normalize()
	value = strings.TrimSpace(value)

	var target *string
	switch strings.ToLower(strings.TrimSpace(field)) {
	case "name":
		target = &c.Concept.Name
	case "player":
		target = &c.Concept.Player
	case "chronicle":
		target = &c.Concept.Chronicle
	case "nature":
		target = &c.Concept.Nature
	case "demeanor":
		target = &c.Concept.Demeanor
	case "concept":
		target = &c.Concept.Concept
	case "sire":
		target = &c.Concept.Sire
	case "clan":
		return e.setClan(c, value)
	default:
		return reject(ReasonUnknownTrait, "", field, "concept fields are %s", strings.Join(ConceptFields, ", "))
	}
	*target = value
	e.touch(c)
	return nil
}

func (e *Engine) setClan(c *Character, value string) error {
	if c.Mode() != ModeCreation || c.IsPlayMode {
		return reject(ReasonModeLocked, "", "clan", "clan is fixed once creation ends")
	}
	if value != "" {
		clan, ok := e.cat.Clan(value)
		if !ok {
			return reject(ReasonUnknownTrait, "", value, "not a clan")
		}
		value = clan.Name
	}
	c.Concept.Clan = value
	for _, g := range e.cat.Attributes {
		for _, t := range g.Traits {
			c.Dots.Attr[t] = clamp(c.Dots.Attr[t], e.attrFloor(value, t), e.attrMax(value, t))
		}
	}
	e.touch(c)
	return nil
}

// SetBiography stores a free-text field; an empty value removes it.
func (e *Engine) SetBiography(c *Character, field, value string) error {
	c.Normalize()
	field = strings.ToLower(strings.TrimSpace(field))
	if field == "" {
		return reject(ReasonUnknownTrait, "", field, "biography field is empty")
	}
	if value = strings.TrimSpace(value); value == "" {
		delete(c.Biography, field)
	} else {
		c.Biography[field] = value
	}
	e.touch(c)
	return nil
}
