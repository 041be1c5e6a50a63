package persistence

import (
	"fmt"
	"strings"
)

// Store kinds accepted by Open.
const (
	KindFile   = "file"
	KindBolt   = "bolt"
	KindSQLite = "sqlite"
)

// Kinds lists the accepted backends.
var Kinds = []string{KindFile, KindBolt, KindSQLite}

// Open selects a backend by kind, rooted at the library directory. An empty
// kind means plain files.
func Open(kind, dir string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", KindFile:
		return NewLibrary(dir), nil
	case KindBolt:
		s, err := OpenBolt(dir)
		if err != nil {
			return nil, err
		}
		return s, nil
	case KindSQLite:
		s, err := OpenSQLite(dir)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown store %q (want one of %s)", kind, strings.Join(Kinds, ", "))
}
