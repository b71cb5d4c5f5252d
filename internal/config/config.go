// ABOUTME: Configuration management with preference backend selection
// ABOUTME: Handles server endpoint, data locations, and the preference store factory

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nvdw/otacheck/internal/prefs"
)

// Config stores otacheck configuration.
type Config struct {
	// ServerURL is the base URL of the update service API.
	// Overridable via the OTACHECK_SERVER_URL environment variable.
	ServerURL string `json:"server_url,omitempty"`

	// DataDir is the root directory for local data (news cache, preferences).
	// Supports ~ expansion. Defaults to ~/.local/share/otacheck.
	DataDir string `json:"data_dir,omitempty"`

	// PrefsBackend selects the preference store: "file" (default) or "charm".
	PrefsBackend string `json:"prefs_backend,omitempty"`

	// ProbeAddr is the TCP address used by the connectivity check.
	ProbeAddr string `json:"probe_addr,omitempty"`
}

// GetServerURL returns the configured server URL, with the environment
// override applied and the default as last resort.
func (c *Config) GetServerURL() string {
	if env := os.Getenv("OTACHECK_SERVER_URL"); env != "" {
		return env
	}
	if c.ServerURL == "" {
		return DefaultServerURL
	}
	return strings.TrimRight(c.ServerURL, "/")
}

// GetDataDir returns the configured data directory with ~ expanded.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return defaultDataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetPrefsBackend returns the configured backend, defaulting to "file".
func (c *Config) GetPrefsBackend() string {
	if c.PrefsBackend == "" {
		return "file"
	}
	return c.PrefsBackend
}

// NewsDBPath returns the path of the local news cache database.
func (c *Config) NewsDBPath() string {
	return filepath.Join(c.GetDataDir(), NewsDBFilename)
}

// OpenPrefs creates a preference store based on the configured backend.
func (c *Config) OpenPrefs() (prefs.Store, error) {
	switch c.GetPrefsBackend() {
	case "file":
		return prefs.NewFileStore(filepath.Join(c.GetDataDir(), PrefsFilename))
	case "charm":
		return prefs.NewCharmStore()
	default:
		return nil, fmt.Errorf("unknown prefs backend: %s", c.PrefsBackend)
	}
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// GetConfigPath returns the config file location.
func GetConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "otacheck", "config.json")
}

// Load reads config from disk, creating a default one on first run.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := &Config{}
			if saveErr := cfg.Save(); saveErr != nil {
				fmt.Fprintf(os.Stderr, "warning: could not save default config: %v\n", saveErr)
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to disk atomically.
func (c *Config) Save() error {
	path := GetConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// defaultDataDir returns the standard XDG data directory for otacheck.
func defaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "otacheck")
}
