// Package launch holds the resolved applications of the active query and
// launches them when the result is activated.
package launch

import (
	"log/slog"
	"strings"
	"sync"

	"multilaunch/internal/models"
	"multilaunch/internal/query"
)

// SummarySeparator joins display names in Summary
const SummarySeparator = " + "

// Resolution is the resolved form of one query
type Resolution struct {
	Kind query.MatchKind
	Apps []models.Application
}

// Coordinator keeps the latest Resolution. Each SetResolution replaces the
// previous one wholesale.
type Coordinator struct {
	logger *slog.Logger

	mu      sync.Mutex
	current Resolution
}

// NewCoordinator creates an empty coordinator
func NewCoordinator(logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{logger: logger}
}

// SetResolution replaces the held resolution
func (c *Coordinator) SetResolution(r Resolution) {
	r.Apps = append([]models.Application(nil), r.Apps...)

	c.mu.Lock()
	c.current = r
	c.mu.Unlock()
}

// Clear drops the held resolution
func (c *Coordinator) Clear() {
	c.SetResolution(Resolution{})
}

// Resolution returns a copy of the held resolution
func (c *Coordinator) Resolution() Resolution {
	c.mu.Lock()
	defer c.mu.Unlock()
	r := c.current
	r.Apps = append([]models.Application(nil), r.Apps...)
	return r
}

// Apps returns the held applications in launch order
func (c *Coordinator) Apps() []models.Application {
	return c.Resolution().Apps
}

// Summary joins the resolved display names, e.g. "Firefox + Terminal"
func (c *Coordinator) Summary() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	names := make([]string, len(c.current.Apps))
	for i, app := range c.current.Apps {
		names[i] = app.Name()
	}
	return strings.Join(names, SummarySeparator)
}

// ShouldPresent reports whether the result should be shown. Groups need one
// resolved app; manual requests need two, since a manual request that shrank
// to a single app is better served by the default search.
func (c *Coordinator) ShouldPresent() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current.Presentable()
}

// Presentable applies the presentation gate to r
func (r Resolution) Presentable() bool {
	n := len(r.Apps)
	if n == 0 {
		return false
	}
	return r.Kind == query.MatchGroup || n >= 2
}

// Activate launches every held app in order. A failing launch is logged and
// does not stop the others. It returns the number of failed launches.
func (c *Coordinator) Activate() int {
	return c.ActivateResolution(c.Resolution())
}

// ActivateResolution launches the apps of r, a resolution captured earlier,
// the same way Activate does. The held resolution is not consulted.
func (c *Coordinator) ActivateResolution(r Resolution) int {
	failed := 0
	for _, app := range r.Apps {
		if err := app.Launch(); err != nil {
			failed++
			c.logger.Error("launch failed", "app", app.ID(), "error", err)
			continue
		}
		c.logger.Debug("launched", "app", app.ID())
	}
	return failed
}
