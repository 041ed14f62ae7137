package alpha

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Stable keys, one per top-level collection.
const (
	KeyStocks     = "stocks"
	KeyMarket     = "market"
	KeyTopics     = "topics"
	KeyNotes      = "notes"
	KeyReflection = "reflection"
	KeyFavorites  = "favorites"
	KeyPortfolio  = "portfolio"
	KeyTrades     = "trades"
	KeyCash       = "cash"
	KeyHistory    = "history"
	KeyLang       = "lang"
)

// Store is the durable key/value port every collection is mirrored to.
//
// Load fills v from the stored value for key. A missing key or an unparseable
// value leaves v at the default the caller passed in; only I/O failures the
// caller cannot ignore are returned. Save overwrites the whole value for key.
type Store interface {
	Load(key string, v any) error
	Save(key string, v any) error
}

// DirStore persists each key as one JSON file in a directory. Every save is a
// full-collection overwrite of already-validated in-memory state, so partial
// writes never corrupt a collection.
type DirStore struct {
	dir string
}

// NewDirStore creates the state directory if needed and returns a store over it.
func NewDirStore(dir string) (*DirStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("could not create state directory %q: %w", dir, err)
	}
	return &DirStore{dir: dir}, nil
}

func (s *DirStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Load reads the JSON value for key into v. Absence and parse failures
// degrade to the provided default.
func (s *DirStore) Load(key string, v any) error {
	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("could not read %q: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		log.Printf("warning: stored value for %q is unreadable, using default: %v", key, err)
		return nil
	}
	return nil
}

// Save overwrites the value for key.
func (s *DirStore) Save(key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode %q: %w", key, err)
	}
	if err := os.WriteFile(s.path(key), data, 0644); err != nil {
		return fmt.Errorf("could not write %q: %w", key, err)
	}
	return nil
}

// MemStore is an in-memory Store for tests.
type MemStore struct {
	values map[string][]byte
}

func NewMemStore() *MemStore {
	return &MemStore{values: make(map[string][]byte)}
}

func (s *MemStore) Load(key string, v any) error {
	data, ok := s.values[key]
	if !ok {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return nil // degrade to default, like DirStore
	}
	return nil
}

func (s *MemStore) Save(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.values[key] = data
	return nil
}
