package persistence

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/suderio/bloodline/internal/engine"
	"github.com/suderio/bloodline/internal/platform/logger"
)

var charactersBucket = []byte("characters")

// BoltStore keeps every sheet in one bbolt file, bucket "characters".
type BoltStore struct {
	db *bolt.DB
}

// OpenBolt opens (or creates) <dir>/bloodline.db.
func OpenBolt(dir string) (*BoltStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	path := filepath.Join(dir, "bloodline.db")
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt database %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(charactersBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}
	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Save(c *engine.Character) error {
	key, err := keyOf(c)
	if err != nil {
		return err
	}
	data, err := encode(c)
	if err != nil {
		return err
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(charactersBucket).Put([]byte(key), data)
	})
	if err != nil {
		return fmt.Errorf("failed to save %q: %w", c.Concept.Name, err)
	}
	logger.Log.Debugf("saved %s to bolt", key)
	return nil
}

func (s *BoltStore) Load(name string) (*engine.Character, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		// Get's slice is only valid inside the transaction.
		if v := tx.Bucket(charactersBucket).Get([]byte(Slug(name))); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", name, err)
	}
	if data == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return decode(data)
}

func (s *BoltStore) List() ([]string, error) {
	names := []string{}
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(charactersBucket).ForEach(func(k, v []byte) error {
			c, err := decode(v)
			if err != nil {
				logger.Log.Warningf("bolt contained sheet %q, but could not parse: %v", k, err)
				return nil
			}
			names = append(names, c.Concept.Name)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

func (s *BoltStore) Delete(name string) error {
	key := []byte(Slug(name))
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(charactersBucket)
		if b.Get(key) == nil {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return b.Delete(key)
	})
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
