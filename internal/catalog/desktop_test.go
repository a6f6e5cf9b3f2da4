package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeDesktop(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestParseDesktopFile(t *testing.T) {
	dir := t.TempDir()
	path := writeDesktop(t, dir, "firefox.desktop", `# comment
[Desktop Entry]
Type=Application
Name=Firefox
Name[de]=Feuerfuchs
Exec=firefox %u
Icon=firefox
Terminal=false

[Desktop Action new-window]
Name=New Window
Exec=firefox --new-window
`)

	entry, err := parseDesktopFile(path)
	if err != nil {
		t.Fatalf("parseDesktopFile() error = %v", err)
	}
	if entry.app.DisplayName != "Firefox" {
		t.Errorf("Name = %q", entry.app.DisplayName)
	}
	if entry.app.Exec != "firefox %u" {
		t.Errorf("Exec = %q, actions must not override the main group", entry.app.Exec)
	}
	if entry.app.Icon != "firefox" || entry.app.Path != path {
		t.Errorf("unexpected entry %+v", entry.app)
	}
	if !entry.visible() {
		t.Error("entry should be visible")
	}
}

func TestDesktopEntry_Visible(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"application", "[Desktop Entry]\nType=Application\nName=A\nExec=a\n", true},
		{"link", "[Desktop Entry]\nType=Link\nName=A\nURL=http://x\n", false},
		{"no display", "[Desktop Entry]\nType=Application\nName=A\nExec=a\nNoDisplay=true\n", false},
		{"hidden", "[Desktop Entry]\nType=Application\nName=A\nExec=a\nHidden=true\n", false},
		{"missing exec", "[Desktop Entry]\nType=Application\nName=A\n", false},
		{"outside group", "Type=Application\nName=A\nExec=a\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeDesktop(t, t.TempDir(), "a.desktop", tt.content)
			entry, err := parseDesktopFile(path)
			if err != nil {
				t.Fatalf("parseDesktopFile() error = %v", err)
			}
			if got := entry.visible(); got != tt.want {
				t.Errorf("visible() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUnescapeValue(t *testing.T) {
	tests := map[string]string{
		`plain`:        "plain",
		`a\sb`:         "a b",
		`line\nbreak`:  "line\nbreak",
		`back\\slash`:  `back\slash`,
		`keep\qescape`: `keep\qescape`,
		`trailing\`:    `trailing\`,
	}
	for in, want := range tests {
		if got := unescapeValue(in); got != want {
			t.Errorf("unescapeValue(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDesktopID(t *testing.T) {
	root := "/usr/share/applications"
	if got := desktopID(root, root+"/kde4/dolphin.desktop"); got != "kde4-dolphin.desktop" {
		t.Errorf("desktopID() = %q", got)
	}
	if got := desktopID(root, root+"/firefox.desktop"); got != "firefox.desktop" {
		t.Errorf("desktopID() = %q", got)
	}
}

func TestDataDirs(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/home/me/.local/share")
	t.Setenv("XDG_DATA_DIRS", "/usr/share:/opt/share::/usr/share/")

	want := []string{
		"/home/me/.local/share/applications",
		"/usr/share/applications",
		"/opt/share/applications",
	}
	if diff := cmp.Diff(want, DataDirs()); diff != "" {
		t.Errorf("DataDirs() mismatch (-want +got):\n%s", diff)
	}
}
