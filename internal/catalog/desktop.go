package catalog

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"multilaunch/internal/models"
)

// desktopEntry is the part of a .desktop file the catalog cares about
type desktopEntry struct {
	app       models.App
	entryType string
	noDisplay bool
	hidden    bool
}

// visible reports whether the entry should be offered as an application
func (d desktopEntry) visible() bool {
	return d.entryType == "Application" && !d.noDisplay && !d.hidden &&
		d.app.DisplayName != "" && d.app.Exec != ""
}

// DataDirs returns the XDG application directories in precedence order
func DataDirs() []string {
	home, _ := os.UserHomeDir()

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = filepath.Join(home, ".local", "share")
	}

	dataDirs := os.Getenv("XDG_DATA_DIRS")
	if dataDirs == "" {
		dataDirs = "/usr/local/share:/usr/share"
	}

	dirs := []string{filepath.Join(dataHome, "applications")}
	for _, d := range strings.Split(dataDirs, ":") {
		if d = strings.TrimSpace(d); d != "" {
			dirs = append(dirs, filepath.Join(d, "applications"))
		}
	}
	return dedupe(dirs)
}

func dedupe(dirs []string) []string {
	seen := make(map[string]bool, len(dirs))
	out := dirs[:0]
	for _, d := range dirs {
		d = filepath.Clean(d)
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	return out
}

// desktopID builds the desktop file id from its path relative to the
// applications directory: subdirectories are joined with '-'.
func desktopID(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.Base(path)
	}
	return strings.ReplaceAll(filepath.ToSlash(rel), "/", "-")
}

// parseDesktopFile reads the [Desktop Entry] group of a .desktop file
func parseDesktopFile(path string) (desktopEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return desktopEntry{}, err
	}
	defer f.Close()

	entry := desktopEntry{
		app: models.App{Source: models.SourceDesktop, Path: path},
	}
	inDesktopEntry := false

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}

		if len(line) > 2 && line[0] == '[' && line[len(line)-1] == ']' {
			inDesktopEntry = line == "[Desktop Entry]"
			continue
		}

		if !inDesktopEntry {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "Name":
			if entry.app.DisplayName == "" {
				entry.app.DisplayName = unescapeValue(value)
			}
		case "Exec":
			if entry.app.Exec == "" {
				entry.app.Exec = unescapeValue(value)
			}
		case "Icon":
			if entry.app.Icon == "" {
				entry.app.Icon = unescapeValue(value)
			}
		case "Type":
			entry.entryType = value
		case "Terminal":
			entry.app.Terminal = value == "true"
		case "NoDisplay":
			entry.noDisplay = value == "true"
		case "Hidden":
			entry.hidden = value == "true"
		}
	}
	return entry, scanner.Err()
}

// unescapeValue applies the string escapes of the desktop entry format
func unescapeValue(v string) string {
	if !strings.Contains(v, `\`) {
		return v
	}

	var b strings.Builder
	for i := 0; i < len(v); i++ {
		if v[i] != '\\' || i+1 == len(v) {
			b.WriteByte(v[i])
			continue
		}
		i++
		switch v[i] {
		case 's':
			b.WriteByte(' ')
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '\\':
			b.WriteByte('\\')
		default:
			b.WriteByte('\\')
			b.WriteByte(v[i])
		}
	}
	return b.String()
}
