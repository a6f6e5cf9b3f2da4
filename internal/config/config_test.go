package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default("/tmp/ml")

	if cfg.SettingsPath != "/tmp/ml/settings.json" {
		t.Errorf("unexpected SettingsPath %s", cfg.SettingsPath)
	}
	if cfg.AppsConfig != "/tmp/ml/apps.yaml" {
		t.Errorf("unexpected AppsConfig %s", cfg.AppsConfig)
	}
	if cfg.Poll() != DefaultPollInterval {
		t.Errorf("expected default poll interval, got %v", cfg.Poll())
	}
	if !cfg.FirstRun {
		t.Error("FirstRun should be true by default")
	}
}

func TestConfigDir_EnvOverride(t *testing.T) {
	t.Setenv(EnvConfigDir, "/custom/dir")

	if got := ConfigDir(); got != "/custom/dir" {
		t.Errorf("ConfigDir() = %s", got)
	}
	if got := Default("").Path(); got != "/custom/dir/multilaunch.json" {
		t.Errorf("Path() = %s", got)
	}
}

func TestConfigDir_Default(t *testing.T) {
	t.Setenv(EnvConfigDir, "")
	dir := ConfigDir()

	if !filepath.IsAbs(dir) {
		t.Error("ConfigDir should return absolute path")
	}
	if filepath.Base(dir) != "multilaunch" {
		t.Errorf("Expected dir 'multilaunch', got %s", filepath.Base(dir))
	}
}

func TestLoad_MissingFile(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.FirstRun {
		t.Error("FirstRun should be true when no config exists")
	}
	if cfg.LogPath() != filepath.Join(dir, "multilaunch.log") {
		t.Errorf("unexpected LogPath %s", cfg.LogPath())
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")

	cfg := Default(dir)
	cfg.Terminal = "kitty -e"
	cfg.AppDirs = []string{"/opt/apps"}
	cfg.PollInterval = Duration(2 * time.Second)
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.FirstRun {
		t.Error("FirstRun should be false after save")
	}
	if loaded.Terminal != "kitty -e" || len(loaded.AppDirs) != 1 {
		t.Errorf("unexpected config %+v", loaded)
	}
	if loaded.Poll() != 2*time.Second {
		t.Errorf("expected 2s poll interval, got %v", loaded.Poll())
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "multilaunch.json"), []byte("{nope"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Error("Load() should fail on invalid JSON")
	}
}

func TestLoad_BadDurationFallsBack(t *testing.T) {
	dir := t.TempDir()
	data := []byte(`{"poll_interval": "0s"}`)
	if err := os.WriteFile(filepath.Join(dir, "multilaunch.json"), data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Poll() != DefaultPollInterval {
		t.Errorf("expected default poll interval, got %v", cfg.Poll())
	}
}
