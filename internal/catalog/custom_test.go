package catalog

import (
	"path/filepath"
	"strings"
	"testing"

	"multilaunch/internal/models"
)

func TestCustomStore_LoadMissingFile_ReturnsEmpty(t *testing.T) {
	store := NewCustomStore(filepath.Join(t.TempDir(), "missing.yaml"))

	defs, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(defs) != 0 {
		t.Fatalf("expected empty definitions, got %d", len(defs))
	}
}

func TestCustomStore_AddAndRemove(t *testing.T) {
	store := NewCustomStore(filepath.Join(t.TempDir(), "nested", "apps.yaml"))

	if err := store.Add(models.AppDefinition{ID: " custom-top ", Name: " Top ", Exec: "htop", Terminal: true}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	defs, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(defs) != 1 || defs[0].ID != "custom-top" || defs[0].Name != "Top" || !defs[0].Terminal {
		t.Fatalf("unexpected definitions %+v", defs)
	}

	err = store.Add(models.AppDefinition{ID: "CUSTOM-TOP", Name: "Other", Exec: "top"})
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected duplicate id error, got %v", err)
	}

	removed, err := store.Remove("custom-top")
	if err != nil || !removed {
		t.Fatalf("Remove() = %v, %v", removed, err)
	}
	removed, err = store.Remove("custom-top")
	if err != nil || removed {
		t.Fatalf("second Remove() = %v, %v", removed, err)
	}
}

func TestBuildDefinition(t *testing.T) {
	def, err := BuildDefinition("  My Script! ", "~/bin/run.sh --fast", false)
	if err != nil {
		t.Fatalf("BuildDefinition() error = %v", err)
	}
	if def.ID != "custom-my-script" || def.Name != "My Script!" {
		t.Errorf("unexpected definition %+v", def)
	}

	tests := []struct {
		name, app, exec string
	}{
		{"missing name", " ", "run"},
		{"missing exec", "App", "  "},
		{"bad quoting", "App", `run "open`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := BuildDefinition(tt.app, tt.exec, false); err == nil {
				t.Error("expected error")
			}
		})
	}
}
