package persistence

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suderio/bloodline/internal/engine"
)

func sheet(name string) *engine.Character {
	c := &engine.Character{
		ID:      "id-" + name,
		Concept: engine.Concept{Name: name, Clan: "Gangrel"},
		Status:  engine.Status{Humanity: 7, Willpower: 3, TempWillpower: 3, BloodPool: 10},
		Merits:  []engine.Perk{{Name: "Iron Will", Points: 3}},
		XPLog: []engine.XPEntry{{
			Trait: "Wits", Category: engine.DomainAttribute, OldValue: 2, NewValue: 3, Cost: 8,
			Timestamp: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		}},
		XPEarned:  10,
		UpdatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	c.Normalize()
	c.Dots.Attr["Strength"] = 3
	return c
}

func TestSlug(t *testing.T) {
	tests := map[string]string{
		"Ash":               "ash",
		"  Marcus Vitel ":   "marcus-vitel",
		"Dr. Jekyll & Hyde": "dr-jekyll-hyde",
		"Élodie":            "élodie",
		"!!!":               "",
	}
	for in, want := range tests {
		assert.Equal(t, want, Slug(in), in)
	}
}

func TestStores(t *testing.T) {
	for _, kind := range Kinds {
		t.Run(kind, func(t *testing.T) {
			store, err := Open(kind, t.TempDir())
			require.NoError(t, err)
			defer store.Close()

			names, err := store.List()
			require.NoError(t, err)
			assert.Empty(t, names)

			_, err = store.Load("Nobody")
			assert.ErrorIs(t, err, ErrNotFound)
			assert.ErrorIs(t, store.Delete("Nobody"), ErrNotFound)

			ash := sheet("Ash Walker")
			require.NoError(t, store.Save(ash))
			require.NoError(t, store.Save(sheet("Beatrix")))

			got, err := store.Load("ash walker")
			require.NoError(t, err)
			assert.Equal(t, ash.ID, got.ID)
			assert.Equal(t, 3, got.Dots.Attr["Strength"])
			assert.Equal(t, ash.Merits, got.Merits)
			assert.Equal(t, 8, got.SpentXP())
			assert.True(t, ash.XPLog[0].Timestamp.Equal(got.XPLog[0].Timestamp))
			assert.NotNil(t, got.Dots.Disc, "loaded sheets are normalized")

			ash.Dots.Attr["Strength"] = 4
			require.NoError(t, store.Save(ash))
			got, err = store.Load("Ash Walker")
			require.NoError(t, err)
			assert.Equal(t, 4, got.Dots.Attr["Strength"])

			names, err = store.List()
			require.NoError(t, err)
			assert.Equal(t, []string{"Ash Walker", "Beatrix"}, names)

			require.NoError(t, store.Delete("Beatrix"))
			names, err = store.List()
			require.NoError(t, err)
			assert.Equal(t, []string{"Ash Walker"}, names)

			assert.Error(t, store.Save(&engine.Character{}))
			assert.Error(t, store.Save(nil))
		})
	}
}

func TestOpenUnknownKind(t *testing.T) {
	_, err := Open("postgres", t.TempDir())
	assert.Error(t, err)
}

func TestLibraryLayout(t *testing.T) {
	dir := t.TempDir()
	lib := NewLibrary(dir)
	require.NoError(t, lib.Save(sheet("Ash Walker")))

	path := filepath.Join(dir, "characters", "ash-walker", "sheet.json")
	assert.Equal(t, path, lib.SheetPath("Ash Walker"))
	_, err := os.Stat(path)
	require.NoError(t, err)

	// a folder without a readable sheet is ignored
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "characters", "junk"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "characters", "junk", "sheet.json"), []byte("{"), 0644))
	names, err := lib.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"Ash Walker"}, names)
}

func TestLoadFillsMissingStructures(t *testing.T) {
	dir := t.TempDir()
	lib := NewLibrary(dir)
	require.NoError(t, os.MkdirAll(lib.CharacterPath("Partial"), 0755))
	doc := `{"concept": {"name": "Partial"}, "dots": {"attr": {"Strength": 2}}}`
	require.NoError(t, os.WriteFile(lib.SheetPath("Partial"), []byte(doc), 0644))

	c, err := lib.Load("Partial")
	require.NoError(t, err)
	assert.Equal(t, 2, c.Dots.Attr["Strength"])
	assert.NotNil(t, c.Dots.Abil)
	assert.NotNil(t, c.Biography)
	assert.Equal(t, engine.PhaseConcept, c.CurrentPhase)
}
