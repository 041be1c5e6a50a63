// Package persistence keeps character sheets between sessions. Every backend
// stores the sheet as one JSON document keyed by the character's slug.
package persistence

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/suderio/bloodline/internal/engine"
)

// ErrNotFound is returned when no sheet is saved under a name.
var ErrNotFound = errors.New("character not found")

// Store is the persistence boundary used by sessions and commands.
type Store interface {
	Save(c *engine.Character) error
	Load(name string) (*engine.Character, error)
	List() ([]string, error)
	Delete(name string) error
	Close() error
}

// Slug turns a character name into a stable key: lowercase letters and
// digits, everything else collapsed to single hyphens.
func Slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if b.Len() > 0 && !dash {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func keyOf(c *engine.Character) (string, error) {
	if c == nil {
		return "", fmt.Errorf("cannot save a nil character")
	}
	slug := Slug(c.Concept.Name)
	if slug == "" {
		return "", fmt.Errorf("cannot save a character without a name")
	}
	return slug, nil
}

func encode(c *engine.Character) ([]byte, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal character %q: %w", c.Concept.Name, err)
	}
	return data, nil
}

func decode(data []byte) (*engine.Character, error) {
	c := &engine.Character{}
	if err := json.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("failed to decode character sheet: %w", err)
	}
	c.Normalize()
	return c, nil
}
