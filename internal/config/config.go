package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const appName = "tarotdraw"

// Defaults used when the config file or environment leave a value unset
const (
	DefaultDeckName    = "emoji"
	DefaultRevealDelay = 800 * time.Millisecond
)

// Environment variables that override the config file
const (
	EnvDefaultDeck = "TAROT_DEFAULT_DECK"
	EnvStateDB     = "TAROT_STATE_DB"
	EnvRevealDelay = "TAROT_REVEAL_DELAY"
	EnvDeckLibrary = "TAROT_DECK_LIBRARY"
)

// Config represents the application configuration
type Config struct {
	DefaultDeck string   `toml:"default_deck"`
	StateDB     string   `toml:"state_db,omitempty"`
	RevealDelay Duration `toml:"reveal_delay,omitempty"`
}

// Duration is a time.Duration that reads and writes as a string like "800ms"
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// LoadEnv reads a .env file from the working directory if one exists
func LoadEnv() {
	_ = godotenv.Load()
}

// GetXDGDataHome returns XDG_DATA_HOME or default path
func GetXDGDataHome() string {
	return xdgDir("XDG_DATA_HOME", ".local", "share")
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// GetXDGStateHome returns XDG_STATE_HOME or default path
func GetXDGStateHome() string {
	return xdgDir("XDG_STATE_HOME", ".local", "state")
}

// GetXDGCacheHome returns XDG_CACHE_HOME or default path
func GetXDGCacheHome() string {
	return xdgDir("XDG_CACHE_HOME", ".cache")
}

func xdgDir(env string, fallback ...string) string {
	if dir := os.Getenv(env); dir != "" {
		return dir
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(append([]string{homeDir}, fallback...)...)
}

// GetDeckLibraryPath returns the path to the deck library
func GetDeckLibraryPath() string {
	if dir := os.Getenv(EnvDeckLibrary); dir != "" {
		return dir
	}
	return filepath.Join(GetXDGDataHome(), "tarot", "decks")
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), appName, "config.toml")
}

// GetCacheDir returns the directory for generated artifacts
func GetCacheDir() string {
	return filepath.Join(GetXDGCacheHome(), appName)
}

// GetDefaultStatePath returns the default snapshot database location
func GetDefaultStatePath() string {
	return filepath.Join(GetXDGStateHome(), appName, "state.db")
}

// LoadConfig loads the config file, creating it with defaults on first use.
// Environment overrides are applied on top and never written back.
func LoadConfig() (*Config, error) {
	config, err := readConfig()
	if err != nil {
		return nil, err
	}

	if err := config.applyEnv(); err != nil {
		return nil, err
	}
	config.fillDefaults()
	return config, nil
}

func readConfig() (*Config, error) {
	configPath := GetConfigFilePath()

	// Create default config if it doesn't exist
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig()
	}

	var config Config
	md, err := toml.DecodeFile(configPath, &config)
	if err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}
	if !md.IsDefined("reveal_delay") {
		config.RevealDelay.Duration = DefaultRevealDelay
	}

	return &config, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvDefaultDeck); v != "" {
		c.DefaultDeck = v
	}
	if v := os.Getenv(EnvStateDB); v != "" {
		c.StateDB = v
	}
	if v := os.Getenv(EnvRevealDelay); v != "" {
		if err := c.RevealDelay.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("invalid %s: %w", EnvRevealDelay, err)
		}
	}
	return nil
}

func (c *Config) fillDefaults() {
	if c.DefaultDeck == "" {
		c.DefaultDeck = DefaultDeckName
	}
	if c.StateDB == "" {
		c.StateDB = GetDefaultStatePath()
	}
	if c.RevealDelay.Duration < 0 {
		c.RevealDelay.Duration = 0
	}
}

// createDefaultConfig creates a default config file
func createDefaultConfig() (*Config, error) {
	config := &Config{
		DefaultDeck: DefaultDeckName,
		RevealDelay: Duration{DefaultRevealDelay},
	}

	if err := writeConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

func writeConfig(config *Config) error {
	configPath := GetConfigFilePath()

	// Ensure the config directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("error creating config file: %w", err)
	}
	defer file.Close()

	// Encode the config to TOML
	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(config); err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}

	return nil
}

// GetDefaultDeck returns the default deck name from config
func GetDefaultDeck() (string, error) {
	config, err := LoadConfig()
	if err != nil {
		return "", err
	}

	return config.DefaultDeck, nil
}

// SetDefaultDeck sets the default deck in the config file
func SetDefaultDeck(deckName string) error {
	config, err := readConfig()
	if err != nil {
		return err
	}

	config.DefaultDeck = deckName
	return writeConfig(config)
}
