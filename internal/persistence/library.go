package persistence

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/suderio/bloodline/internal/engine"
	"github.com/suderio/bloodline/internal/platform/logger"
)

// Library lays sheets out on disk as <dir>/characters/<slug>/sheet.json.
type Library struct {
	Dir string
}

// NewLibrary returns a library rooted at dir. Nothing is created until the
// first save.
func NewLibrary(dir string) *Library {
	return &Library{Dir: dir}
}

// CharactersDir is the folder holding one subfolder per character.
func (l *Library) CharactersDir() string {
	return filepath.Join(l.Dir, "characters")
}

// CharacterPath produces the folder of a named character.
func (l *Library) CharacterPath(name string) string {
	return filepath.Join(l.CharactersDir(), Slug(name))
}

// SheetPath is the JSON document of a named character.
func (l *Library) SheetPath(name string) string {
	return filepath.Join(l.CharacterPath(name), "sheet.json")
}

// Save writes the sheet through a temporary file so a crash never leaves a
// half-written document behind.
func (l *Library) Save(c *engine.Character) error {
	if _, err := keyOf(c); err != nil {
		return err
	}
	dir := l.CharacterPath(c.Concept.Name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	data, err := encode(c)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "sheet-*.json")
	if err != nil {
		return fmt.Errorf("failed to save %q: %w", c.Concept.Name, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to save %q: %w", c.Concept.Name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to save %q: %w", c.Concept.Name, err)
	}
	if err := os.Rename(tmp.Name(), l.SheetPath(c.Concept.Name)); err != nil {
		return fmt.Errorf("failed to save %q: %w", c.Concept.Name, err)
	}
	logger.Log.Debugf("saved %s", l.SheetPath(c.Concept.Name))
	return nil
}

// Load reads a named sheet.
func (l *Library) Load(name string) (*engine.Character, error) {
	data, err := os.ReadFile(l.SheetPath(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", name, err)
	}
	return decode(data)
}

// List returns the names of every readable sheet, sorted. Folders without a
// parseable sheet are skipped.
func (l *Library) List() ([]string, error) {
	entries, err := os.ReadDir(l.CharactersDir())
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", l.CharactersDir(), err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(l.CharactersDir(), entry.Name(), "sheet.json"))
		if err != nil {
			continue
		}
		c, err := decode(data)
		if err != nil {
			logger.Log.Warningf("skipping %s: %v", entry.Name(), err)
			continue
		}
		names = append(names, c.Concept.Name)
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes the character folder with everything in it.
func (l *Library) Delete(name string) error {
	dir := l.CharacterPath(name)
	if Slug(name) == "" {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to delete %q: %w", name, err)
	}
	return nil
}

// Close is a no-op for plain files.
func (l *Library) Close() error {
	return nil
}
