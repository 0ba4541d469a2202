package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Dispatch DispatchConfig `toml:"dispatch"`
	Web      WebConfig      `toml:"web"`

	path string
}

type DispatchConfig struct {
	// ReplayDelimiter re-types the space/tab that completed a phrase
	// match after its expansion has been pasted.
	ReplayDelimiter bool `toml:"replay_delimiter"`
	// ClipboardSettleMs is the wait between setting the clipboard and
	// injecting the paste chord.
	ClipboardSettleMs int `toml:"clipboard_settle_ms"`
	// MinClickDelayMs is the floor between replayed clicks.
	MinClickDelayMs int `toml:"min_click_delay_ms"`
	// ClickSettleMs is the pause between a pointer move and its click.
	ClickSettleMs int `toml:"click_settle_ms"`
}

type WebConfig struct {
	Enabled bool `toml:"enabled"`
	Port    int  `toml:"port"`
}

// Default configuration
func defaultConfig() *Config {
	return &Config{
		Dispatch: DispatchConfig{
			ReplayDelimiter:   true,
			ClipboardSettleMs: 50,
			MinClickDelayMs:   25,
			ClickSettleMs:     10,
		},
		Web: WebConfig{
			Enabled: true,
			Port:    8790,
		},
	}
}

// Dir returns the per-user configuration directory, creating it if needed.
func Dir() (string, error) {
	var base string
	if runtime.GOOS == "windows" {
		base = os.Getenv("APPDATA")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	} else {
		var err error
		base, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("failed to locate config directory: %w", err)
		}
	}

	dir := filepath.Join(base, "hotphrase")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	return dir, nil
}

// Path returns the path to the configuration file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load loads the configuration from the TOML file.
// If the file doesn't exist, it creates it with default values.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom loads the configuration from an explicit path, creating the
// file with defaults when missing.
func LoadFrom(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := defaultConfig()
		cfg.path = path
		if err := cfg.Save(); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		return cfg, nil
	}

	cfg := defaultConfig()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.path = path
	return cfg, nil
}

// Save writes the configuration back to its TOML file.
func (c *Config) Save() error {
	if c.path == "" {
		path, err := Path()
		if err != nil {
			return err
		}
		c.path = path
	}

	f, err := os.Create(c.path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(c)
}
