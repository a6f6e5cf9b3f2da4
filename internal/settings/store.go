// Package settings is a small string key/value store persisted as JSON, with
// per-key change notification. It plays the role GSettings plays for a shell
// extension: every key is declared in a schema with a default value.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// KeyGroups is the key holding the serialized group configuration.
const KeyGroups = "config-json"

// Schema maps every known key to its default value
type Schema map[string]string

// DefaultSchema returns the schema used by multilaunch
func DefaultSchema() Schema {
	return Schema{
		KeyGroups: "{}",
	}
}

// ErrUnknownKey is wrapped by AccessError when a key is not in the schema.
var ErrUnknownKey = errors.New("key not in schema")

// AccessError reports that the backend itself could not be used.
type AccessError struct {
	Key  string
	Path string
	Err  error
}

func (e *AccessError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("settings %q: %v", e.Key, e.Err)
	}
	return fmt.Sprintf("settings file %s: %v", e.Path, e.Err)
}

func (e *AccessError) Unwrap() error {
	return e.Err
}

// Store holds the settings values and their subscribers
type Store struct {
	path   string
	schema Schema

	mu      sync.Mutex
	values  map[string]string
	modTime time.Time
	size    int64

	subMu  sync.Mutex
	subs   map[string]map[int]*Subscription
	nextID int

	watchMu sync.Mutex
	stop    chan struct{}
	done    chan struct{}
}

// Open loads the settings file at path. A missing file is not an error:
// every key then reads as its schema default.
func Open(path string, schema Schema) (*Store, error) {
	s := newStore(path, schema)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, &AccessError{Path: path, Err: err}
	}

	values, err := decode(data)
	if err != nil {
		return nil, &AccessError{Path: path, Err: err}
	}
	s.values = values
	s.recordStat()
	return s, nil
}

// NewMemory returns a store that is never written to disk.
func NewMemory(schema Schema) *Store {
	return newStore("", schema)
}

func newStore(path string, schema Schema) *Store {
	if schema == nil {
		schema = DefaultSchema()
	}
	return &Store{
		path:   path,
		schema: schema,
		values: make(map[string]string),
		subs:   make(map[string]map[int]*Subscription),
	}
}

// Path returns the backing file path, empty for memory stores
func (s *Store) Path() string {
	return s.path
}

// GetString returns the value of key, or its schema default
func (s *Store) GetString(key string) (string, error) {
	def, ok := s.schema[key]
	if !ok {
		return "", &AccessError{Key: key, Err: ErrUnknownKey}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.values[key]; ok {
		return v, nil
	}
	return def, nil
}

// SetString stores value under key, persists the file and notifies the
// key's subscribers if the value changed.
func (s *Store) SetString(key, value string) error {
	if _, ok := s.schema[key]; !ok {
		return &AccessError{Key: key, Err: ErrUnknownKey}
	}

	s.mu.Lock()
	old, had := s.values[key]
	if had && old == value {
		s.mu.Unlock()
		return nil
	}
	s.values[key] = value
	err := s.save()
	if err != nil {
		if had {
			s.values[key] = old
		} else {
			delete(s.values, key)
		}
	}
	s.mu.Unlock()

	if err != nil {
		return &AccessError{Key: key, Err: err}
	}
	s.notify(key)
	return nil
}

// save writes the values atomically. Caller holds s.mu.
func (s *Store) save() error {
	if s.path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".settings-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	s.recordStat()
	return nil
}

// recordStat remembers the file's mod time and size. Caller holds s.mu.
func (s *Store) recordStat() {
	if info, err := os.Stat(s.path); err == nil {
		s.modTime = info.ModTime()
		s.size = info.Size()
	}
}

func decode(data []byte) (map[string]string, error) {
	values := make(map[string]string)
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, err
	}
	return values, nil
}
