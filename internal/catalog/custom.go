package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"multilaunch/internal/models"

	"gopkg.in/yaml.v3"
)

// CustomStore persists user-defined app entries in a YAML file
type CustomStore struct {
	path string
}

// NewCustomStore creates a store backed by path
func NewCustomStore(path string) *CustomStore {
	return &CustomStore{path: path}
}

// Path returns the backing file
func (s *CustomStore) Path() string {
	return s.path
}

// Load returns all definitions. A missing file is an empty list.
func (s *CustomStore) Load() ([]models.AppDefinition, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []models.AppDefinition{}, nil
		}
		return nil, err
	}

	var cfg models.AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}
	if cfg.Apps == nil {
		return []models.AppDefinition{}, nil
	}
	return cfg.Apps, nil
}

// Add appends a definition. Ids are unique case-insensitively.
func (s *CustomStore) Add(def models.AppDefinition) error {
	def, err := sanitizeDefinition(def)
	if err != nil {
		return err
	}

	existing, err := s.Load()
	if err != nil {
		return err
	}
	for _, d := range existing {
		if strings.EqualFold(d.ID, def.ID) {
			return fmt.Errorf("custom app with id %q already exists", def.ID)
		}
	}
	return s.save(append(existing, def))
}

// Remove deletes the definition with id. It reports whether one was removed.
func (s *CustomStore) Remove(id string) (bool, error) {
	existing, err := s.Load()
	if err != nil {
		return false, err
	}

	kept := existing[:0]
	removed := false
	for _, d := range existing {
		if strings.EqualFold(d.ID, id) {
			removed = true
			continue
		}
		kept = append(kept, d)
	}
	if !removed {
		return false, nil
	}
	return true, s.save(kept)
}

func (s *CustomStore) save(defs []models.AppDefinition) error {
	data, err := yaml.Marshal(models.AppConfig{Apps: defs})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}

// BuildDefinition creates a definition from a name and command line. The id
// is derived from the name.
func BuildDefinition(name, command string, terminal bool) (models.AppDefinition, error) {
	def := models.AppDefinition{
		ID:       slugify(name),
		Name:     name,
		Exec:     command,
		Terminal: terminal,
	}
	return sanitizeDefinition(def)
}

func sanitizeDefinition(def models.AppDefinition) (models.AppDefinition, error) {
	def.ID = strings.TrimSpace(def.ID)
	def.Name = strings.TrimSpace(def.Name)
	def.Exec = strings.TrimSpace(def.Exec)
	def.Icon = strings.TrimSpace(def.Icon)

	if def.ID == "" {
		return def, fmt.Errorf("id is required")
	}
	if def.Name == "" {
		return def, fmt.Errorf("name is required")
	}
	if def.Exec == "" {
		return def, fmt.Errorf("exec is required")
	}
	if _, err := SplitExec(def.Exec); err != nil {
		return def, err
	}
	return def, nil
}

func slugify(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))

	var b strings.Builder
	lastDash := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastDash = false
			continue
		}
		if !lastDash {
			b.WriteByte('-')
			lastDash = true
		}
	}

	out := strings.Trim(b.String(), "-")
	if out == "" {
		return "custom"
	}
	return "custom-" + out
}
