// Package groups owns the user-authored group shortcuts: named, ordered lists
// of application tokens persisted as a single JSON object.
package groups

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// TokenList is an ordered list of application tokens. Order is launch order.
type TokenList []string

// Mapping is an ordered GroupName -> TokenList mapping.
// A Mapping returned by Load or Store.Current must be treated as read-only.
type Mapping struct {
	names  []string
	groups map[string]TokenList
}

// Group is a single named entry of a Mapping
type Group struct {
	Name   string
	Tokens TokenList
}

// ConfigParseError reports that the persisted text could not be used.
// The caller always receives the default mapping alongside it.
type ConfigParseError struct {
	Err error
}

func (e *ConfigParseError) Error() string {
	return fmt.Sprintf("parse group config: %v", e.Err)
}

func (e *ConfigParseError) Unwrap() error {
	return e.Err
}

// NewMapping returns an empty mapping
func NewMapping() Mapping {
	return Mapping{groups: make(map[string]TokenList)}
}

// Default returns the built-in fallback mapping used whenever the persisted
// configuration is missing or malformed.
func Default() Mapping {
	return NewMapping()
}

// Get performs an exact, case-sensitive lookup
func (m Mapping) Get(name string) (TokenList, bool) {
	tokens, ok := m.groups[name]
	return tokens, ok
}

// Len returns the number of groups
func (m Mapping) Len() int {
	return len(m.names)
}

// Names returns the group names in insertion order
func (m Mapping) Names() []string {
	return append([]string(nil), m.names...)
}

// Groups returns every group in insertion order
func (m Mapping) Groups() []Group {
	out := make([]Group, 0, len(m.names))
	for _, name := range m.names {
		out = append(out, Group{Name: name, Tokens: append(TokenList(nil), m.groups[name]...)})
	}
	return out
}

// Clone returns a deep copy that may be mutated
func (m Mapping) Clone() Mapping {
	c := NewMapping()
	for _, name := range m.names {
		c.set(name, append(TokenList(nil), m.groups[name]...))
	}
	return c
}

// set stores tokens under name, keeping the position of an existing entry
func (m *Mapping) set(name string, tokens TokenList) {
	if m.groups == nil {
		m.groups = make(map[string]TokenList)
	}
	if _, ok := m.groups[name]; !ok {
		m.names = append(m.names, name)
	}
	m.groups[name] = tokens
}

// insertAt stores tokens under a new name at position idx
func (m *Mapping) insertAt(idx int, name string, tokens TokenList) {
	if m.groups == nil {
		m.groups = make(map[string]TokenList)
	}
	if _, ok := m.groups[name]; ok {
		m.groups[name] = tokens
		return
	}
	if idx < 0 || idx > len(m.names) {
		idx = len(m.names)
	}
	m.names = append(m.names, "")
	copy(m.names[idx+1:], m.names[idx:])
	m.names[idx] = name
	m.groups[name] = tokens
}

// delete removes name and returns its former position, or -1
func (m *Mapping) delete(name string) int {
	if _, ok := m.groups[name]; !ok {
		return -1
	}
	delete(m.groups, name)
	for i, n := range m.names {
		if n == name {
			m.names = append(m.names[:i], m.names[i+1:]...)
			return i
		}
	}
	return -1
}

// Load parses the persisted JSON object into a Mapping. Keys and tokens are
// trimmed and empty ones dropped. On any structural problem it returns the
// default mapping together with a *ConfigParseError.
func Load(raw string) (Mapping, error) {
	m, err := parse(raw)
	if err != nil {
		return Default(), &ConfigParseError{Err: err}
	}
	return m, nil
}

func parse(raw string) (Mapping, error) {
	m := NewMapping()
	if strings.TrimSpace(raw) == "" {
		return m, errors.New("empty configuration")
	}

	dec := json.NewDecoder(strings.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return m, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return m, fmt.Errorf("root must be an object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return m, err
		}
		key, _ := tok.(string)

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return m, err
		}
		value = bytes.TrimSpace(value)
		if len(value) == 0 || value[0] != '[' {
			return m, fmt.Errorf("group %q: value must be an array", key)
		}

		var tokens []string
		if err := json.Unmarshal(value, &tokens); err != nil {
			return m, fmt.Errorf("group %q: %w", key, err)
		}

		name := strings.TrimSpace(key)
		if name == "" {
			continue
		}
		m.set(name, cleanTokens(tokens))
	}

	if _, err := dec.Token(); err != nil {
		return m, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return m, errors.New("unexpected data after object")
	}
	return m, nil
}

// SplitTokens splits a comma separated list, trimming and dropping empties
func SplitTokens(raw string) TokenList {
	return cleanTokens(strings.Split(raw, ","))
}

func cleanTokens(in []string) TokenList {
	out := make(TokenList, 0, len(in))
	for _, t := range in {
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Serialize renders the mapping in the compact persisted format
func Serialize(m Mapping) string {
	var b strings.Builder
	b.WriteByte('{')
	first := true
	for _, name := range m.names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		if !first {
			b.WriteByte(',')
		}
		first = false
		b.WriteString(quote(name))
		b.WriteByte(':')
		writeTokens(&b, m.groups[name], ",")
	}
	b.WriteByte('}')
	return b.String()
}

// Indent renders the mapping with one group per line, for display and diffs
func Indent(m Mapping) string {
	if m.Len() == 0 {
		return "{}"
	}

	var b strings.Builder
	b.WriteString("{\n")
	for i, name := range m.names {
		b.WriteString("  ")
		b.WriteString(quote(name))
		b.WriteString(": ")
		writeTokens(&b, m.groups[name], ", ")
		if i < len(m.names)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	b.WriteString("}")
	return b.String()
}

func writeTokens(b *strings.Builder, tokens TokenList, sep string) {
	b.WriteByte('[')
	for i, t := range tokens {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(quote(t))
	}
	b.WriteByte(']')
}

// quote JSON-encodes s without HTML escaping
func quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}
