package data

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// CatalogFile is the name searched for in every data directory.
const CatalogFile = "catalog.yaml"

//go:embed catalog.yaml
var defaultCatalog []byte

// Loader handles reading the read-only rule data through a directory fallback hierarchy
type Loader struct {
	dataDirs []string
}

// NewLoader initializes a new Data Loader with the given data directory fallback hierarchy
func NewLoader(dataDirs []string) *Loader {
	return &Loader{
		dataDirs: dataDirs,
	}
}

// LoadCatalog returns the first catalog.yaml found in the data directories,
// or the embedded default catalog when none exists.
func (l *Loader) LoadCatalog() (*Catalog, error) {
	for _, dir := range l.dataDirs {
		path := filepath.Join(dir, CatalogFile)
		f, err := os.Open(path)
		if err != nil {
			continue
		}
		defer f.Close()

		cat, err := Decode(f)
		if err != nil {
			return nil, fmt.Errorf("failed to decode catalog %s: %w", path, err)
		}
		return cat, nil
	}
	return Default()
}

// Default parses the embedded catalog. Every call returns a fresh copy.
func Default() (*Catalog, error) {
	cat, err := Decode(bytes.NewReader(defaultCatalog))
	if err != nil {
		return nil, fmt.Errorf("failed to decode embedded catalog: %w", err)
	}
	return cat, nil
}

// Decode reads and validates a YAML catalog.
func Decode(r io.Reader) (*Catalog, error) {
	var c Catalog
	if err := yaml.NewDecoder(r).Decode(&c); err != nil {
		return nil, err
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return &c, nil
}

// Dump writes the catalog as YAML.
func Dump(w io.Writer, c *Catalog) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}
