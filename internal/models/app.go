package models

import "strings"

// Application is an installed application as seen by the resolver and the
// launch coordinator
type Application interface {
	ID() string   // Stable machine identifier
	Name() string // Display name
	Launch() error
}

// Source tells where an app entry came from
type Source string

const (
	SourceDesktop Source = "desktop" // XDG .desktop file
	SourceCustom  Source = "custom"  // apps.yaml entry
)

// App is one entry of the application catalog
type App struct {
	AppID       string // Desktop file id, e.g. org.gnome.Terminal.desktop
	DisplayName string // Display name
	Exec        string // Exec line, may contain field codes
	Icon        string // Icon name or path
	Terminal    bool   // Run inside a terminal
	Source      Source // Where the entry came from
	Path        string // Backing file, empty for custom entries
}

// AppDefinition is the YAML structure for user-defined apps
type AppDefinition struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Exec     string `yaml:"exec"`
	Icon     string `yaml:"icon,omitempty"`
	Terminal bool   `yaml:"terminal,omitempty"`
}

// AppConfig is the root YAML structure
type AppConfig struct {
	Apps []AppDefinition `yaml:"apps"`
}

// NewApp creates a new App from definition
func NewApp(def AppDefinition) *App {
	return &App{
		AppID:       def.ID,
		DisplayName: def.Name,
		Exec:        def.Exec,
		Icon:        def.Icon,
		Terminal:    def.Terminal,
		Source:      SourceCustom,
	}
}

// ShortID returns the id without the .desktop suffix
func (a *App) ShortID() string {
	return strings.TrimSuffix(a.AppID, ".desktop")
}
