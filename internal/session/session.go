// Package session drives one character sheet: it parses editor commands,
// applies them through the engine and saves after every change.
package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/suderio/bloodline/internal/engine"
	"github.com/suderio/bloodline/internal/parser"
	"github.com/suderio/bloodline/internal/persistence"
	"github.com/suderio/bloodline/internal/platform/logger"
)

// Session manages the loop of taking commands, applying them to the sheet and
// persisting the result.
type Session struct {
	eng   *engine.Engine
	store persistence.Store
	char  *engine.Character
	// key is the slug the sheet was last saved under; a rename moves it.
	key string
}

// New wraps an already loaded character.
func New(eng *engine.Engine, store persistence.Store, c *engine.Character) *Session {
	c.Normalize()
	return &Session{
		eng:   eng,
		store: store,
		char:  c,
		key:   persistence.Slug(c.Concept.Name),
	}
}

// Open loads a saved character by name.
func Open(eng *engine.Engine, store persistence.Store, name string) (*Session, error) {
	c, err := store.Load(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open %q: %w", name, err)
	}
	return New(eng, store, c), nil
}

// Create starts a blank sheet and saves it right away. Names already in the
// store are refused.
func Create(eng *engine.Engine, store persistence.Store, name string) (*Session, error) {
	if persistence.Slug(name) == "" {
		return nil, fmt.Errorf("a character needs a name")
	}
	if _, err := store.Load(name); err == nil {
		return nil, fmt.Errorf("character %q already exists", name)
	} else if !errors.Is(err, persistence.ErrNotFound) {
		return nil, err
	}

	s := New(eng, store, eng.NewCharacter(name))
	if err := s.Save(); err != nil {
		return nil, err
	}
	logger.Log.Infof("created %s (%s)", s.char.Concept.Name, s.char.ID)
	return s, nil
}

// Character returns the live sheet.
func (s *Session) Character() *engine.Character {
	return s.char
}

// Engine returns the rules engine the session applies commands with.
func (s *Session) Engine() *engine.Engine {
	return s.eng
}

// Progress evaluates the phase checker against the live sheet.
func (s *Session) Progress() engine.Progress {
	return s.eng.EvaluateProgress(s.char)
}

// Execute parses one command line and applies it. The returned lines are
// meant for display. Engine rejections come back unwrapped so callers can
// match them with errors.Is.
func (s *Session) Execute(input string) ([]string, error) {
	if strings.TrimSpace(input) == "" {
		return nil, nil
	}
	cmd, err := parser.Parse(input)
	if err != nil {
		return nil, err
	}

	lines, err := s.dispatch(cmd)
	if err != nil {
		logger.Log.Infof("%s: %q rejected: %v", s.char.Concept.Name, input, err)
		return nil, err
	}
	if cmd.Mutates() {
		if err := s.Save(); err != nil {
			return lines, err
		}
	}
	logger.Log.Debugf("%s: %q", s.char.Concept.Name, input)
	return lines, nil
}

// Save writes the sheet. When the character was renamed the old entry is
// removed after the new one is written.
func (s *Session) Save() error {
	if err := s.store.Save(s.char); err != nil {
		return err
	}
	key := persistence.Slug(s.char.Concept.Name)
	if s.key != "" && s.key != key {
		if err := s.store.Delete(s.key); err != nil && !errors.Is(err, persistence.ErrNotFound) {
			logger.Log.Warningf("renamed %s but could not remove the old entry: %v", s.key, err)
		}
	}
	s.key = key
	return nil
}

// Close releases the store.
func (s *Session) Close() error {
	return s.store.Close()
}
