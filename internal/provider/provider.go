// Package provider connects the query pipeline to a search surface. It owns
// the group store and launch coordinator for as long as it is enabled.
package provider

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"multilaunch/internal/groups"
	"multilaunch/internal/launch"
	"multilaunch/internal/models"
	"multilaunch/internal/query"
	"multilaunch/internal/resolver"
	"multilaunch/internal/settings"
)

const (
	ResultID    = "multi-launch-result"
	ResultTitle = "Multi Launch"
	ResultIcon  = "system-run-symbolic"
)

var (
	// ErrDisabled is returned by entry points that need an enabled provider
	ErrDisabled = errors.New("provider is disabled")
	// ErrNothingToLaunch is returned when activating a result that does not
	// pass the presentation gate
	ErrNothingToLaunch = errors.New("nothing to launch")
)

// Catalog supplies the installed applications
type Catalog interface {
	Installed() []models.Application
}

// Deps are the collaborators a Provider is wired to
type Deps struct {
	Settings groups.Settings
	Key      string // settings key of the group config, settings.KeyGroups if empty
	Catalog  Catalog
	Logger   *slog.Logger
}

// ResultMeta describes the single result the provider can show
type ResultMeta struct {
	ID          string
	Name        string
	Description string
	Icon        string
}

// Outcome is the full result of one query pass
type Outcome struct {
	Classification query.Classification
	Matched        bool     // the query is a multi-launch request
	Apps           []models.Application
	Unresolved     []string // tokens with no catalog match
	Present        bool     // the result passes the presentation gate
}

// Provider is the explicit context object the search surface talks to.
// Enable and Disable bracket its lifetime.
type Provider struct {
	deps   Deps
	logger *slog.Logger

	mu      sync.Mutex
	enabled bool
	store   *groups.Store
	coord   *launch.Coordinator
}

// New creates a disabled provider
func New(deps Deps) *Provider {
	if deps.Key == "" {
		deps.Key = settings.KeyGroups
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Provider{deps: deps, logger: logger}
}

// Enable builds the group store and coordinator. A failure while wiring the
// collaborators, including a panic, is logged and leaves the provider
// disabled.
func (p *Provider) Enable() (err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.enabled {
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("enable provider: %v", r)
		}
		if err != nil {
			p.store = nil
			p.coord = nil
			p.logger.Error("provider not enabled", "error", err)
		}
	}()

	if p.deps.Settings == nil {
		return errors.New("enable provider: no settings backend")
	}
	if p.deps.Catalog == nil {
		return errors.New("enable provider: no application catalog")
	}

	p.store = groups.NewStore(p.deps.Settings, p.deps.Key, p.logger)
	p.coord = launch.NewCoordinator(p.logger)
	p.enabled = true
	p.logger.Debug("provider enabled", "groups", p.store.Current().Len())
	return nil
}

// Disable releases the settings subscription and drops the held result.
// It is safe to call on a disabled provider.
func (p *Provider) Disable() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.enabled {
		return
	}
	p.store.Close()
	p.coord.Clear()
	p.store = nil
	p.coord = nil
	p.enabled = false
	p.logger.Debug("provider disabled")
}

// Enabled reports whether the provider is live
func (p *Provider) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}

// Groups returns the group mapping in effect, or the default mapping when
// the provider is disabled.
func (p *Provider) Groups() groups.Mapping {
	store, _ := p.live()
	if store == nil {
		return groups.Default()
	}
	return store.Current()
}

func (p *Provider) live() (*groups.Store, *launch.Coordinator) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.store, p.coord
}

// Search classifies and resolves terms and stores the resolution in the
// coordinator, replacing the previous one.
func (p *Provider) Search(terms []string) Outcome {
	store, coord := p.live()
	if store == nil {
		return Outcome{}
	}

	c, ok := query.Classify(terms, store)
	if !ok {
		coord.Clear()
		return Outcome{}
	}

	installed := p.deps.Catalog.Installed()
	apps := resolver.ResolveAll(c.Tokens, installed)
	coord.SetResolution(launch.Resolution{Kind: c.Kind, Apps: apps})

	return Outcome{
		Classification: c,
		Matched:        true,
		Apps:           apps,
		Unresolved:     resolver.Unresolved(c.Tokens, installed),
		Present:        coord.ShouldPresent(),
	}
}

// InitialResultSet returns the result ids for a fresh query
func (p *Provider) InitialResultSet(terms []string) []string {
	if p.Search(terms).Present {
		return []string{ResultID}
	}
	return []string{}
}

// SubsearchResultSet returns the result ids for a refined query. The
// previous results carry no state worth reusing, so it searches again.
func (p *Provider) SubsearchResultSet(previous, terms []string) []string {
	return p.InitialResultSet(terms)
}

// ResultMetas describes the requested results. Unknown ids are skipped.
func (p *Provider) ResultMetas(ids []string) []ResultMeta {
	_, coord := p.live()
	if coord == nil {
		return []ResultMeta{}
	}

	metas := make([]ResultMeta, 0, len(ids))
	for _, id := range ids {
		if id != ResultID {
			continue
		}
		metas = append(metas, ResultMeta{
			ID:          ResultID,
			Name:        ResultTitle,
			Description: "Open: " + coord.Summary(),
			Icon:        ResultIcon,
		})
	}
	return metas
}

// FilterResults caps ids at max entries
func (p *Provider) FilterResults(ids []string, max int) []string {
	if max < 0 {
		max = 0
	}
	if len(ids) > max {
		return ids[:max]
	}
	return ids
}

// ActivateResult launches the held applications when id is the provider's
// result. It returns the number of failed launches.
func (p *Provider) ActivateResult(id string, terms []string) (int, error) {
	_, coord := p.live()
	if coord == nil {
		return 0, ErrDisabled
	}
	if id != ResultID {
		return 0, fmt.Errorf("unknown result %q", id)
	}
	r := coord.Resolution()
	if !r.Presentable() {
		return 0, ErrNothingToLaunch
	}
	return coord.ActivateResolution(r), nil
}

// Launch activates the resolution of an earlier Search, whatever has been
// searched since. It returns the number of failed launches.
func (p *Provider) Launch(out Outcome) (int, error) {
	_, coord := p.live()
	if coord == nil {
		return 0, ErrDisabled
	}
	r := launch.Resolution{Kind: out.Classification.Kind, Apps: out.Apps}
	if !out.Matched || !r.Presentable() {
		return 0, ErrNothingToLaunch
	}
	return coord.ActivateResolution(r), nil
}
