package groups

import (
	"fmt"
	"strings"
)

// Writer persists the serialized configuration
type Writer interface {
	SetString(key, value string) error
}

// Editor is the data model behind the preferences surface. It mutates a
// working copy of the mapping and writes it back on Commit.
type Editor struct {
	writer  Writer
	key     string
	working Mapping

	committed Mapping
	last      ChangeSet
}

// NewEditor creates an editor seeded with the given mapping
func NewEditor(w Writer, key string, seed Mapping) *Editor {
	return &Editor{
		writer:    w,
		key:       key,
		working:   seed.Clone(),
		committed: seed.Clone(),
	}
}

// Upsert stores the comma separated tokens under key. Keys that are empty
// after trimming are ignored; the return value reports whether it was stored.
func (e *Editor) Upsert(key, tokensRaw string) bool {
	key = strings.TrimSpace(key)
	if key == "" {
		return false
	}
	e.working.set(key, SplitTokens(tokensRaw))
	return true
}

// Remove deletes key if present
func (e *Editor) Remove(key string) {
	e.working.delete(strings.TrimSpace(key))
}

// SetRows replaces the working mapping with rows, top to bottom. Keys are
// trimmed and rows with an empty key skipped. When two rows share a key the
// entry keeps the first row's position and the later row's tokens.
func (e *Editor) SetRows(rows []Group) {
	m := NewMapping()
	for _, row := range rows {
		name := strings.TrimSpace(row.Name)
		if name == "" {
			continue
		}
		m.set(name, cleanTokens(row.Tokens))
	}
	e.working = m
}

// Rename replaces oldKey by newKey keeping the entry's position. An existing
// newKey is overwritten. An empty newKey just removes oldKey.
func (e *Editor) Rename(oldKey, newKey, tokensRaw string) bool {
	idx := e.working.delete(strings.TrimSpace(oldKey))

	newKey = strings.TrimSpace(newKey)
	if newKey == "" {
		return false
	}
	e.working.insertAt(idx, newKey, SplitTokens(tokensRaw))
	return true
}

// Groups returns the working groups in order
func (e *Editor) Groups() []Group {
	return e.working.Groups()
}

// Working returns a copy of the working mapping
func (e *Editor) Working() Mapping {
	return e.working.Clone()
}

// Serialize renders the working mapping in the persisted format
func (e *Editor) Serialize() string {
	return Serialize(e.working)
}

// Commit writes the working mapping through the persistence backend
func (e *Editor) Commit() error {
	if err := e.writer.SetString(e.key, e.Serialize()); err != nil {
		return fmt.Errorf("commit group config: %w", err)
	}
	e.last = Changes(e.committed, e.working)
	e.committed = e.working.Clone()
	return nil
}

// LastChange returns what the most recent Commit changed
func (e *Editor) LastChange() ChangeSet {
	return e.last
}
