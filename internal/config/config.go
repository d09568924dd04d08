// Package config loads computer-use settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// EnvPath overrides the default config file location.
const EnvPath = "COMPUTER_USE_CONFIG"

// FileName is the config file name inside the config directory.
const FileName = "config.toml"

// Config holds user-tunable settings. Durations are in milliseconds.
type Config struct {
	LogLevel   string           `toml:"log_level"`
	Timeouts   TimeoutsConfig   `toml:"timeouts"`
	Scroll     ScrollConfig     `toml:"scroll"`
	Linux      LinuxConfig      `toml:"linux"`
	Screenshot ScreenshotConfig `toml:"screenshot"`
}

// TimeoutsConfig bounds how long each external binary may run.
type TimeoutsConfig struct {
	Command     int `toml:"command"`
	Screenshot  int `toml:"screenshot"`
	ScreenSize  int `toml:"screen_size"`
	Scroll      int `toml:"scroll"`
	TypePerChar int `toml:"type_per_char"`
}

// ScrollConfig controls scroll amounts.
type ScrollConfig struct {
	DefaultAmount int `toml:"default_amount"`
	MaxAmount     int `toml:"max_amount"`
}

// LinuxConfig holds xdotool-specific settings.
type LinuxConfig struct {
	TypeDelay int `toml:"type_delay"` // ms between keystrokes
}

// ScreenshotConfig controls screenshot temp files.
type ScreenshotConfig struct {
	TempDir string `toml:"temp_dir"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel: "warn",
		Timeouts: TimeoutsConfig{
			Command:     10_000,
			Screenshot:  5_000,
			ScreenSize:  10_000,
			Scroll:      10_000,
			TypePerChar: 50,
		},
		Scroll: ScrollConfig{
			DefaultAmount: 3,
			MaxAmount:     100,
		},
		Linux: LinuxConfig{
			TypeDelay: 20,
		},
	}
}

// CommandTimeout is the timeout for ordinary input commands.
func (c *Config) CommandTimeout() time.Duration {
	return ms(c.Timeouts.Command)
}

// ScreenshotTimeout is the timeout for screen capture.
func (c *Config) ScreenshotTimeout() time.Duration {
	return ms(c.Timeouts.Screenshot)
}

// ScreenSizeTimeout is the timeout for display geometry queries.
func (c *Config) ScreenSizeTimeout() time.Duration {
	return ms(c.Timeouts.ScreenSize)
}

// ScrollTimeout is the timeout for scroll events.
func (c *Config) ScrollTimeout() time.Duration {
	return ms(c.Timeouts.Scroll)
}

// TypeTimeout scales with the text length but never drops below the
// command timeout.
func (c *Config) TypeTimeout(text string) time.Duration {
	perChar := ms(c.Timeouts.TypePerChar) * time.Duration(len([]rune(text)))
	return max(c.CommandTimeout(), perChar)
}

// TempDir is where screenshots are written when no file is requested.
func (c *Config) TempDir() string {
	if c.Screenshot.TempDir != "" {
		return c.Screenshot.TempDir
	}
	return os.TempDir()
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

// DefaultPath returns the config file path from the environment or
// $XDG_CONFIG_HOME/computer-use/config.toml.
func DefaultPath() string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "computer-use", FileName)
}

// Load reads path over the defaults. A missing file is not an error;
// an explicitly requested one (explicit=true) is.
func Load(path string, explicit bool) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values that would make commands unusable.
func (c *Config) Validate() error {
	if c.Timeouts.Command <= 0 || c.Timeouts.Screenshot <= 0 ||
		c.Timeouts.ScreenSize <= 0 || c.Timeouts.Scroll <= 0 {
		return errors.New("timeouts must be positive")
	}
	if c.Timeouts.TypePerChar < 0 {
		return errors.New("timeouts.type_per_char must not be negative")
	}
	if c.Scroll.MaxAmount < 1 {
		return errors.New("scroll.max_amount must be at least 1")
	}
	if c.Scroll.DefaultAmount < 1 || c.Scroll.DefaultAmount > c.Scroll.MaxAmount {
		return fmt.Errorf("scroll.default_amount must be between 1 and %d", c.Scroll.MaxAmount)
	}
	if c.Linux.TypeDelay < 0 {
		return errors.New("linux.type_delay must not be negative")
	}
	return nil
}
