package catalog

import (
	"context"
	"path/filepath"
	"testing"

	"multilaunch/internal/models"

	"github.com/google/go-cmp/cmp"
)

func appIDs(apps []*models.App) []string {
	ids := make([]string, len(apps))
	for i, a := range apps {
		ids[i] = a.AppID
	}
	return ids
}

func TestScanner_PrecedenceAndSort(t *testing.T) {
	user := t.TempDir()
	system := t.TempDir()

	writeDesktop(t, system, "firefox.desktop", "[Desktop Entry]\nType=Application\nName=Firefox\nExec=firefox\n")
	writeDesktop(t, system, "calc.desktop", "[Desktop Entry]\nType=Application\nName=calculator\nExec=calc\n")
	writeDesktop(t, system, "secret.desktop", "[Desktop Entry]\nType=Application\nName=Secret\nExec=secret\n")
	writeDesktop(t, system, "kde/dolphin.desktop", "[Desktop Entry]\nType=Application\nName=Dolphin\nExec=dolphin\n")
	writeDesktop(t, system, "notes.txt", "not a desktop file")

	writeDesktop(t, user, "firefox.desktop", "[Desktop Entry]\nType=Application\nName=Firefox Dev\nExec=firefox-dev\n")
	writeDesktop(t, user, "secret.desktop", "[Desktop Entry]\nType=Application\nName=Secret\nExec=secret\nHidden=true\n")

	s := NewScanner([]string{user, system, filepath.Join(user, "missing")}, nil)
	apps, err := s.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	want := []string{"calc.desktop", "kde-dolphin.desktop", "firefox.desktop"}
	if diff := cmp.Diff(want, appIDs(apps)); diff != "" {
		t.Errorf("Scan() ids mismatch (-want +got):\n%s", diff)
	}
	if apps[2].DisplayName != "Firefox Dev" {
		t.Errorf("user entry should win, got %q", apps[2].DisplayName)
	}
}

func TestScanner_Cancelled(t *testing.T) {
	dir := t.TempDir()
	writeDesktop(t, dir, "a.desktop", "[Desktop Entry]\nType=Application\nName=A\nExec=a\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewScanner([]string{dir}, nil).Scan(ctx); err == nil {
		t.Error("Scan() with cancelled context should fail")
	}
}

func TestCatalog_RefreshMergesCustomApps(t *testing.T) {
	dir := t.TempDir()
	writeDesktop(t, dir, "firefox.desktop", "[Desktop Entry]\nType=Application\nName=Firefox\nExec=firefox\n")
	writeDesktop(t, dir, "gedit.desktop", "[Desktop Entry]\nType=Application\nName=Text Editor\nExec=gedit\n")

	custom := NewCustomStore(filepath.Join(t.TempDir(), "apps.yaml"))
	if err := custom.Add(models.AppDefinition{ID: "firefox", Name: "Firefox Nightly", Exec: "firefox-nightly"}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := custom.Add(models.AppDefinition{ID: "custom-btop", Name: "btop", Exec: "btop", Terminal: true}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	c := New(Options{Dirs: []string{dir}, Custom: custom})
	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	var names []string
	for _, app := range c.Installed() {
		names = append(names, app.Name())
	}
	want := []string{"Firefox Nightly", "btop", "Text Editor"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("Installed() mismatch (-want +got):\n%s", diff)
	}

	e, ok := c.Lookup("gedit.desktop")
	if !ok || e.Name() != "Text Editor" || e.ID() != "gedit.desktop" {
		t.Errorf("Lookup(gedit.desktop) = %+v, %v", e, ok)
	}
	if _, ok := c.Lookup("firefox"); !ok {
		t.Error("Lookup(firefox) should find the custom entry")
	}
}

func TestCatalog_BrokenCustomFileIsSkipped(t *testing.T) {
	dir := t.TempDir()
	writeDesktop(t, dir, "a.desktop", "[Desktop Entry]\nType=Application\nName=A\nExec=a\n")

	path := writeDesktop(t, t.TempDir(), "apps.yaml", "apps: [not: valid: yaml")
	c := New(Options{Dirs: []string{dir}, Custom: NewCustomStore(path)})
	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if len(c.Entries()) != 1 {
		t.Errorf("expected desktop entries only, got %d", len(c.Entries()))
	}
}
