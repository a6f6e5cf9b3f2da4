// Package catalog builds the list of installed applications from XDG
// desktop entries and the user's custom apps file.
package catalog

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"multilaunch/internal/models"
)

// Entry is a catalog application that launches through the catalog's launcher
type Entry struct {
	*models.App
	launcher *Launcher
}

func (e *Entry) ID() string    { return e.AppID }
func (e *Entry) Name() string  { return e.DisplayName }
func (e *Entry) Launch() error { return e.launcher.Launch(e.App) }

// Catalog is a snapshot of installed applications. Refresh replaces it.
type Catalog struct {
	scanner  *Scanner
	custom   *CustomStore
	launcher *Launcher
	logger   *slog.Logger

	mu      sync.RWMutex
	entries []*Entry
}

// Options configures a Catalog
type Options struct {
	Dirs     []string     // nil means DataDirs()
	Custom   *CustomStore // may be nil
	Terminal string       // command prefix for terminal apps
	Logger   *slog.Logger
}

// New creates an empty catalog; call Refresh to fill it
func New(opts Options) *Catalog {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Catalog{
		scanner:  NewScanner(opts.Dirs, logger),
		custom:   opts.Custom,
		launcher: NewLauncher(opts.Terminal),
		logger:   logger,
	}
}

// Refresh rescans the application directories and the custom apps file.
// Custom entries come first and shadow desktop entries with the same id.
// A broken custom apps file is logged and skipped.
func (c *Catalog) Refresh(ctx context.Context) error {
	apps, err := c.scanner.Scan(ctx)
	if err != nil {
		return err
	}

	var entries []*Entry
	seen := make(map[string]bool)

	if c.custom != nil {
		defs, err := c.custom.Load()
		if err != nil {
			c.logger.Warn("custom apps unavailable", "path", c.custom.Path(), "error", err)
		}
		for _, def := range defs {
			def, err := sanitizeDefinition(def)
			if err != nil {
				c.logger.Warn("skipping custom app", "id", def.ID, "error", err)
				continue
			}
			key := strings.TrimSuffix(def.ID, ".desktop")
			if seen[key] {
				continue
			}
			seen[key] = true
			entries = append(entries, &Entry{App: models.NewApp(def), launcher: c.launcher})
		}
	}

	for _, app := range apps {
		if seen[app.ShortID()] {
			continue
		}
		seen[app.ShortID()] = true
		entries = append(entries, &Entry{App: app, launcher: c.launcher})
	}

	c.mu.Lock()
	c.entries = entries
	c.mu.Unlock()

	c.logger.Info("catalog refreshed", "apps", len(entries))
	return nil
}

// Entries returns the current catalog entries
func (c *Catalog) Entries() []*Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]*Entry(nil), c.entries...)
}

// Installed returns the catalog as resolver input, in catalog order
func (c *Catalog) Installed() []models.Application {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.Application, len(c.entries))
	for i, e := range c.entries {
		out[i] = e
	}
	return out
}

// Lookup finds an entry by id, with or without the .desktop suffix
func (c *Catalog) Lookup(id string) (*Entry, bool) {
	id = strings.TrimSuffix(id, ".desktop")

	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, e := range c.entries {
		if e.ShortID() == id {
			return e, true
		}
	}
	return nil, false
}

// Launcher returns the launcher shared by all entries
func (c *Catalog) Launcher() *Launcher {
	return c.launcher
}
