package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// Config holds the application configuration
type Config struct {
	SettingsPath string   `json:"settings_path"`       // Path to settings.json holding the group config
	AppsConfig   string   `json:"apps_config"`         // Path to apps.yaml with custom apps
	AppDirs      []string `json:"app_dirs,omitempty"`  // Application directories, empty = XDG defaults
	Terminal     string   `json:"terminal,omitempty"`  // Command prefix for Terminal=true apps
	PollInterval Duration `json:"poll_interval"`       // Settings file poll interval
	LogLevel     string   `json:"log_level,omitempty"` // debug, info, warn or error
	FirstRun     bool     `json:"-"`                   // Is this the first run?

	dir string
}

// Duration is a time.Duration that reads and writes as "500ms"
type Duration time.Duration

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// configFileName is the name of the config file
const configFileName = "multilaunch.json"

// EnvConfigDir overrides ConfigDir
const EnvConfigDir = "MULTILAUNCH_CONFIG_DIR"

// DefaultPollInterval is used when the config has none
const DefaultPollInterval = 500 * time.Millisecond

// ConfigDir returns the directory containing multilaunch config files
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir
	}
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "multilaunch")
}

// Default returns the default configuration rooted at dir. An empty dir
// means ConfigDir().
func Default(dir string) *Config {
	if dir == "" {
		dir = ConfigDir()
	}
	return &Config{
		SettingsPath: filepath.Join(dir, "settings.json"),
		AppsConfig:   filepath.Join(dir, "apps.yaml"),
		PollInterval: Duration(DefaultPollInterval),
		LogLevel:     "warn",
		FirstRun:     true,
		dir:          dir,
	}
}

// Load loads the configuration from dir. A missing file yields Default.
func Load(dir string) (*Config, error) {
	cfg := Default(dir)

	data, err := os.ReadFile(cfg.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = Duration(DefaultPollInterval)
	}
	cfg.FirstRun = false
	return cfg, nil
}

// Dir returns the config directory
func (c *Config) Dir() string {
	if c.dir == "" {
		return ConfigDir()
	}
	return c.dir
}

// Path returns the path to the config file
func (c *Config) Path() string {
	return filepath.Join(c.Dir(), configFileName)
}

// LogPath returns the log file used while the TUI owns the terminal
func (c *Config) LogPath() string {
	return filepath.Join(c.Dir(), "multilaunch.log")
}

// Poll returns the settings poll interval
func (c *Config) Poll() time.Duration {
	return time.Duration(c.PollInterval)
}

// Save saves the configuration to file
func (c *Config) Save() error {
	if err := os.MkdirAll(c.Dir(), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.Path(), data, 0644)
}
