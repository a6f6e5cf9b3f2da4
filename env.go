package main

import (
	"io"
	"log/slog"
	"os"

	"multilaunch/internal/catalog"
	"multilaunch/internal/config"
	"multilaunch/internal/logging"
	"multilaunch/internal/provider"
	"multilaunch/internal/settings"
)

// env is everything a command needs, wired from the config file
type env struct {
	cfg      *config.Config
	logger   *slog.Logger
	settings *settings.Store
	custom   *catalog.CustomStore
	catalog  *catalog.Catalog
	provider *provider.Provider

	logFile io.Closer
}

// setupEnv loads the config and wires the collaborators. With toFile set the
// log goes to the config directory instead of stderr.
func setupEnv(toFile bool) (*env, error) {
	cfg, err := config.Load(rootFlags.configDir)
	if err != nil {
		return nil, err
	}

	e := &env{cfg: cfg}

	level := cfg.LogLevel
	if rootFlags.debug {
		level = "debug"
	}
	var w io.Writer = os.Stderr
	if toFile {
		f, err := logging.OpenFile(cfg.LogPath())
		if err != nil {
			return nil, err
		}
		e.logFile = f
		w = f
	}
	e.logger = logging.Init(level, rootFlags.logFormat, w)

	st, err := settings.Open(cfg.SettingsPath, settings.DefaultSchema())
	if err != nil {
		e.logger.Warn("settings unavailable, changes will not be saved", "path", cfg.SettingsPath, "error", err)
		st = settings.NewMemory(settings.DefaultSchema())
	}
	e.settings = st

	e.custom = catalog.NewCustomStore(cfg.AppsConfig)
	e.catalog = catalog.New(catalog.Options{
		Dirs:     cfg.AppDirs,
		Custom:   e.custom,
		Terminal: cfg.Terminal,
		Logger:   e.logger,
	})

	e.provider = provider.New(provider.Deps{
		Settings: st,
		Key:      settings.KeyGroups,
		Catalog:  e.catalog,
		Logger:   e.logger,
	})
	return e, nil
}

// Close disables the provider and releases files
func (e *env) Close() {
	e.provider.Disable()
	e.settings.Close()
	if e.logFile != nil {
		e.logFile.Close()
	}
}
