package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/saravenpi/murmur/internal/models"
	"gopkg.in/yaml.v3"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"

	StoreMemory = "memory"
	StoreSQLite = "sqlite"

	DefaultSelfName = "Вы"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Theme        string `yaml:"theme"`
	Store        string `yaml:"store"`
	SeedFile     string `yaml:"seed_file,omitempty"`
	SelfName     string `yaml:"self_name"`
	StartSection string `yaml:"start_section"`
	LogFile      string `yaml:"log_file"`
	Debug        bool   `yaml:"debug"`
}

func Default() Config {
	return Config{
		Theme:        ThemeLight,
		Store:        StoreMemory,
		SelfName:     DefaultSelfName,
		StartSection: models.SectionChats.String(),
		LogFile:      filepath.Join(os.TempDir(), "murmur.log"),
	}
}

// DefaultPath returns ~/.config/murmur/config.yml.
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "murmur", "config.yml")
}

// Load reads the YAML file at path over the defaults, then applies
// MURMUR_* environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(expandHome(path))
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("failed to parse config file: %w", err)
			}
		case os.IsNotExist(err):
		default:
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg.applyEnv()
	cfg.ExpandPaths()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Theme = getenv("MURMUR_THEME", c.Theme)
	c.Store = getenv("MURMUR_STORE", c.Store)
	c.SeedFile = getenv("MURMUR_SEED_FILE", c.SeedFile)
	c.SelfName = getenv("MURMUR_SELF_NAME", c.SelfName)
	c.StartSection = getenv("MURMUR_START_SECTION", c.StartSection)
	c.LogFile = getenv("MURMUR_LOG_FILE", c.LogFile)
	c.Debug = getenvBool("MURMUR_DEBUG", c.Debug)
}

func (c Config) Validate() error {
	switch c.Theme {
	case ThemeLight, ThemeDark:
	default:
		return fmt.Errorf("%w: theme must be %q or %q, got %q", ErrInvalidConfig, ThemeLight, ThemeDark, c.Theme)
	}
	switch c.Store {
	case StoreMemory, StoreSQLite:
	default:
		return fmt.Errorf("%w: store must be %q or %q, got %q", ErrInvalidConfig, StoreMemory, StoreSQLite, c.Store)
	}
	if strings.TrimSpace(c.SelfName) == "" {
		return fmt.Errorf("%w: self_name cannot be empty", ErrInvalidConfig)
	}
	if _, err := models.ParseSection(c.StartSection); err != nil {
		return fmt.Errorf("%w: start_section: %v", ErrInvalidConfig, err)
	}
	return nil
}

func (c Config) Dark() bool {
	return c.Theme == ThemeDark
}

// Section returns the section the client opens on. It falls back to chats
// for a value Validate would reject.
func (c Config) Section() models.Section {
	s, err := models.ParseSection(c.StartSection)
	if err != nil {
		return models.SectionChats
	}
	return s
}

// ExpandPaths resolves a leading ~ in the seed and log file paths.
func (c *Config) ExpandPaths() {
	c.SeedFile = expandHome(c.SeedFile)
	c.LogFile = expandHome(c.LogFile)
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(homeDir, strings.TrimPrefix(path, "~"))
	}
	return path
}

func getenv(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

func getenvBool(name string, fallback bool) bool {
	value := os.Getenv(name)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
