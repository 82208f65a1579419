// Package config loads cbfdump settings from TOML or JSON-with-comments
// files. Keys missing from the file keep their defaults.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tailscale/hujson"
)

// Array output modes.
const (
	ArraysSummary = "summary"
	ArraysFull    = "full"
	ArraysNone    = "none"
)

var errInvalid = errors.New("invalid config")

// Config holds cbfdump settings.
type Config struct {
	Datablock   string
	Arrays      string
	DigestCheck bool
	LogLevel    string
	HistoryFile string
	// Preview is the number of array elements printed in summaries.
	Preview int
}

// Default returns the built-in settings.
func Default() Config {
	cfg := Config{
		Arrays:   ArraysSummary,
		LogLevel: "info",
		Preview:  8,
	}
	if home, err := os.UserHomeDir(); err == nil {
		cfg.HistoryFile = filepath.Join(home, ".cbfdump_history")
	}
	return cfg
}

// fileConfig is the on-disk key mapping. Pointer fields tell set keys from
// missing ones.
type fileConfig struct {
	Datablock   *string `toml:"datablock" json:"datablock"`
	Arrays      *string `toml:"arrays" json:"arrays"`
	DigestCheck *bool   `toml:"digest_check" json:"digest_check"`
	LogLevel    *string `toml:"log_level" json:"log_level"`
	HistoryFile *string `toml:"history_file" json:"history_file"`
	Preview     *int    `toml:"preview" json:"preview"`
}

// Load reads path over the defaults. Files ending in .json or .jsonc are
// parsed as JSON with comments and trailing commas; anything else as TOML.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	var raw fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		standardized, err := hujson.Standardize(data)
		if err != nil {
			return Config{}, fmt.Errorf("%w %s: invalid JSONC: %w", errInvalid, path, err)
		}
		if err := json.Unmarshal(standardized, &raw); err != nil {
			return Config{}, fmt.Errorf("%w %s: invalid JSON: %w", errInvalid, path, err)
		}
	default:
		meta, err := toml.Decode(string(data), &raw)
		if err != nil {
			return Config{}, fmt.Errorf("%w %s: %w", errInvalid, path, err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return Config{}, fmt.Errorf("%w %s: unknown key %q", errInvalid, path, undecoded[0].String())
		}
	}

	cfg.apply(raw)
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) apply(raw fileConfig) {
	if raw.Datablock != nil {
		c.Datablock = strings.TrimSpace(*raw.Datablock)
	}
	if raw.Arrays != nil {
		c.Arrays = strings.ToLower(strings.TrimSpace(*raw.Arrays))
	}
	if raw.DigestCheck != nil {
		c.DigestCheck = *raw.DigestCheck
	}
	if raw.LogLevel != nil {
		c.LogLevel = strings.TrimSpace(*raw.LogLevel)
	}
	if raw.HistoryFile != nil {
		c.HistoryFile = strings.TrimSpace(*raw.HistoryFile)
	}
	if raw.Preview != nil {
		c.Preview = *raw.Preview
	}
}

// Validate checks value ranges.
func (c Config) Validate() error {
	switch c.Arrays {
	case ArraysSummary, ArraysFull, ArraysNone:
	default:
		return fmt.Errorf("%w: arrays must be summary, full or none, got %q", errInvalid, c.Arrays)
	}
	if c.Preview < 0 {
		return fmt.Errorf("%w: preview must not be negative, got %d", errInvalid, c.Preview)
	}
	return nil
}
