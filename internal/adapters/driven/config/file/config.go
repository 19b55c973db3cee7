package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config is the engine configuration.
type Config struct {
	// SiteURL is the site the engine routes within.
	SiteURL string `toml:"site_url"`
	// DropOffLibrary is the intake library title.
	DropOffLibrary string `toml:"drop_off_library"`
	// OmitFields lists field titles excluded from metadata copies.
	OmitFields []string `toml:"omit_fields"`
	// VersionedUpdates makes metadata copies land as committed versions
	// through a checkout and checkin cycle.
	VersionedUpdates bool `toml:"versioned_updates"`
	// RulesDataDir is the directory holding the routing-rule database.
	// Empty selects the in-memory rules from the site fixture.
	RulesDataDir string `toml:"rules_data_dir"`
	// FixturePath points at the site fixture the CLI loads.
	FixturePath string `toml:"fixture_path"`
	// Verbose enables trace-level logging.
	Verbose bool `toml:"verbose"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		DropOffLibrary: "Drop Off Library",
		OmitFields:     []string{"Title"},
	}
}

// DefaultPath returns ~/.docrouter/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".docrouter", "config.toml"), nil
}

// Load reads the configuration from path. A missing file yields the
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration to path, creating the directory when
// needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}
