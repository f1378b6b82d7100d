package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/ramonehamilton/topcards/internal/corpus"
)

// Config represents the application configuration.
type Config struct {
	// Ranking defaults
	Rank RankConfig `toml:"rank"`

	// Search defaults
	Search SearchConfig `toml:"search"`

	// Corpus location and upstream repository
	Data DataConfig `toml:"data"`

	// Card face metadata cache
	Faces FacesConfig `toml:"faces"`

	// Application configuration
	App AppConfig `toml:"app"`
}

// RankConfig contains ranking settings.
type RankConfig struct {
	Formats  string  `toml:"formats"`   // Comma-separated format patterns
	Num      int     `toml:"num"`       // Number of top cards to output
	HalfLife float64 `toml:"half_life"` // Half-life in days for time decay
	MaxAge   int     `toml:"max_age"`   // Maximum age in days to include
	NoWeight bool    `toml:"no_weight"` // Disable time-based weighting
}

// SearchConfig contains deck search settings.
type SearchConfig struct {
	MaxResults       int  `toml:"max_results"`       // Maximum decks to print
	Exact            bool `toml:"exact"`             // Require exact copy counts
	IncludeSideboard bool `toml:"include_sideboard"` // Count sideboard copies
}

// DataConfig contains corpus settings.
type DataConfig struct {
	Dir      string `toml:"dir"`       // Directory to scan (default: data_dir when fetching, else ".")
	DataDir  string `toml:"data_dir"`  // Checkout directory for the data repository
	DataRepo string `toml:"data_repo"` // Git URL of the data repository
}

// FacesConfig contains face cache settings.
type FacesConfig struct {
	Enabled   bool   `toml:"enabled"`    // Expand ranked cards with their back faces
	CachePath string `toml:"cache_path"` // Cache file (default: user cache dir)
	MaxAge    string `toml:"max_age"`    // Freshness window (e.g., "168h")
}

// AppConfig contains general application settings.
type AppConfig struct {
	Workers   int  `toml:"workers"`    // Parallel file workers (0 = CPU count)
	DebugMode bool `toml:"debug_mode"` // Enable debug logging
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Rank: RankConfig{
			Formats:  "Standard,Modern,Pioneer,Legacy",
			Num:      5000,
			HalfLife: 45,
			MaxAge:   1825,
			NoWeight: false,
		},
		Search: SearchConfig{
			MaxResults:       20,
			Exact:            false,
			IncludeSideboard: false,
		},
		Data: DataConfig{
			Dir:      "",
			DataDir:  "./data",
			DataRepo: corpus.DefaultDataRepo,
		},
		Faces: FacesConfig{
			Enabled:   true,
			CachePath: "",
			MaxAge:    "168h",
		},
		App: AppConfig{
			Workers:   0,
			DebugMode: false,
		},
	}
}

// DefaultPath returns the path to the configuration file.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".topcards", "config.toml"), nil
}

// Load loads the configuration from the default path.
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom loads the configuration at path. Returns default config if the
// file doesn't exist. Keys missing from the file keep their defaults.
func LoadFrom(path string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return config, nil
}

// Save saves the configuration to path.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	if len(corpus.ParseFormats(c.Rank.Formats)) == 0 {
		return fmt.Errorf("at least one format is required")
	}
	if c.Rank.Num < 0 {
		return fmt.Errorf("num cannot be negative: %d", c.Rank.Num)
	}
	if c.Rank.HalfLife <= 0 {
		return fmt.Errorf("half life must be positive: %v", c.Rank.HalfLife)
	}
	if c.Rank.MaxAge < 0 {
		return fmt.Errorf("max age cannot be negative: %d", c.Rank.MaxAge)
	}
	if c.Search.MaxResults < 0 {
		return fmt.Errorf("max results cannot be negative: %d", c.Search.MaxResults)
	}
	if c.App.Workers < 0 {
		return fmt.Errorf("workers cannot be negative: %d", c.App.Workers)
	}
	if _, err := time.ParseDuration(c.Faces.MaxAge); err != nil {
		return fmt.Errorf("invalid faces max age %q: %w", c.Faces.MaxAge, err)
	}

	return nil
}

// GetFacesMaxAge returns the face cache freshness window as a duration.
func (c *Config) GetFacesMaxAge() (time.Duration, error) {
	return time.ParseDuration(c.Faces.MaxAge)
}

// FormatPatterns returns the parsed rank format list.
func (c *Config) FormatPatterns() []string {
	return corpus.ParseFormats(c.Rank.Formats)
}

// SearchDir returns the directory to scan.
func (c *Config) SearchDir(fetching bool) string {
	switch {
	case c.Data.Dir != "":
		return c.Data.Dir
	case fetching:
		return c.Data.DataDir
	default:
		return "."
	}
}
