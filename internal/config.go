package internal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the config file
const (
	EnvDataPath = "LEDGER_DATA_PATH"
	EnvFormat   = "LEDGER_FORMAT"
	EnvCurrency = "LEDGER_CURRENCY"
)

// DefaultDataPath is used when neither the config file nor the environment names a ledger file
const DefaultDataPath = "data/transactions.csv"

type Config struct {
	// DataPath is the ledger file loaded at start and written back on change
	DataPath string `yaml:"data_path,omitempty"`

	// Format forces a store format; empty means "from the file extension"
	Format string `yaml:"format,omitempty"`

	// Currency is the ISO code used when printing amounts
	Currency string `yaml:"currency,omitempty"`

	// SeedSample controls whether a missing or unreadable ledger starts from
	// the built-in sample data. Defaults to true.
	SeedSample *bool `yaml:"seed_sample,omitempty"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `yaml:"log_level,omitempty"`

	// Filters are saved filter sets, usable by name from the command line
	Filters map[string][]Filter `yaml:"filters,omitempty"`
}

// DefaultConfigPath returns the default config file path (~/.finance-ledger/config.yaml)
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".finance-ledger", "config.yaml")
}

// NewDefaultConfig returns the configuration used when no config file exists.
func NewDefaultConfig() *Config {
	return &Config{DataPath: DefaultDataPath}
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := NewDefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if cfg.DataPath == "" {
		cfg.DataPath = DefaultDataPath
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfigOrDefault loads path when given. With no path it tries the
// default location and falls back to defaults when nothing is there.
func LoadConfigOrDefault(path string) (*Config, error) {
	if path != "" {
		return LoadConfig(path)
	}
	def := DefaultConfigPath()
	if def == "" {
		return NewDefaultConfig(), nil
	}
	cfg, err := LoadConfig(def)
	if errors.Is(err, os.ErrNotExist) {
		return NewDefaultConfig(), nil
	}
	return cfg, err
}

// ApplyEnv loads a .env file from envFile (if it exists) and applies the
// LEDGER_* variables on top of the config. Variables already set in the
// process environment win over the .env file.
func (c *Config) ApplyEnv(envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", envFile, err)
		}
	}
	if v := os.Getenv(EnvDataPath); v != "" {
		c.DataPath = v
	}
	if v := os.Getenv(EnvFormat); v != "" {
		c.Format = v
	}
	if v := os.Getenv(EnvCurrency); v != "" {
		c.Currency = v
	}
	return nil
}

// Validate checks format, log level and saved filters, reporting every problem at once.
func (c *Config) Validate() error {
	var problems []string

	if c.Format != "" && !IsKnownFormat(c.Format) {
		problems = append(problems, fmt.Sprintf("unknown format %q: must be one of %v", c.Format, AvailableFormats()))
	}

	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("invalid log level %q: must be debug, info, warn or error", c.LogLevel))
	}

	for _, name := range c.FilterNames() {
		for i, f := range c.Filters[name] {
			if _, err := f.Compile(); err != nil {
				problems = append(problems, fmt.Sprintf("filter %q entry %d: %v", name, i, err))
			}
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

// ShouldSeedSample reports whether to fall back to sample data. Defaults to true.
func (c *Config) ShouldSeedSample() bool {
	return c == nil || c.SeedSample == nil || *c.SeedSample
}

// SavedFilter returns the filters saved under name
func (c *Config) SavedFilter(name string) ([]Filter, error) {
	if c != nil {
		if fs, ok := c.Filters[name]; ok {
			return fs, nil
		}
	}
	return nil, fmt.Errorf("no saved filter %q (available: %v)", name, c.FilterNames())
}

// FilterNames returns the saved filter names, sorted
func (c *Config) FilterNames() []string {
	if c == nil {
		return nil
	}
	names := make([]string, 0, len(c.Filters))
	for name := range c.Filters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := ensureDir(path); err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
