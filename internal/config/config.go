// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jonathan/essay-grader/internal/types"
)

// Defaults used when neither config file nor environment sets a value.
const (
	DefaultTotalPoints     = 100
	DefaultRoundingMode    = string(types.RoundHalfUp)
	DefaultRoundingDecimal = 2
)

// Config represents the CLI configuration that can be loaded from a JSON file
// or the environment. All fields are optional; missing values use defaults or
// come from CLI flags.
type Config struct {
	DefaultTotalPoints int    `json:"default_total_points,omitempty"` // Total used when rubric text declares none
	RoundingMode       string `json:"rounding_mode,omitempty"`        // HALF_UP, HALF_EVEN or HALF_DOWN
	RoundingDecimals   *int   `json:"rounding_decimals,omitempty"`    // 0-4; pointer so 0 is distinguishable from unset
	Verbose            bool   `json:"verbose,omitempty"`              // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv builds a Config from GRADER_* environment variables. Unset or
// malformed variables are left at their zero value so file and flag values
// still apply.
func FromEnv() Config {
	var cfg Config

	if v := os.Getenv("GRADER_DEFAULT_TOTAL_POINTS"); v != "" {
		if total, err := strconv.Atoi(v); err == nil {
			cfg.DefaultTotalPoints = total
		}
	}
	if v := os.Getenv("GRADER_ROUNDING_MODE"); v != "" {
		cfg.RoundingMode = v
	}
	if v := os.Getenv("GRADER_ROUNDING_DECIMALS"); v != "" {
		if decimals, err := strconv.Atoi(v); err == nil {
			cfg.RoundingDecimals = &decimals
		}
	}
	if v := os.Getenv("GRADER_VERBOSE"); v == "1" || v == "true" {
		cfg.Verbose = true
	}

	return cfg
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.DefaultTotalPoints < 0 {
		return fmt.Errorf("config error: 'default_total_points' must be non-negative")
	}

	switch c.RoundingMode {
	case "", string(types.RoundHalfUp), string(types.RoundHalfEven), string(types.RoundHalfDown):
	default:
		return fmt.Errorf("config error: 'rounding_mode' must be one of HALF_UP, HALF_EVEN, HALF_DOWN")
	}

	if c.RoundingDecimals != nil {
		if *c.RoundingDecimals < 0 || *c.RoundingDecimals > 4 {
			return fmt.Errorf("config error: 'rounding_decimals' must be between 0 and 4")
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with unset fields filled from
// defaults. CLI flags should still win over the merged result.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.DefaultTotalPoints == 0 {
		result.DefaultTotalPoints = defaults.DefaultTotalPoints
	}
	if result.RoundingMode == "" {
		result.RoundingMode = defaults.RoundingMode
	}
	if result.RoundingDecimals == nil {
		result.RoundingDecimals = defaults.RoundingDecimals
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// Rounding resolves the configured rounding into the engine's form, applying
// defaults for anything unset.
func (c *Config) Rounding() types.Rounding {
	mode := types.RoundingMode(c.RoundingMode)
	if c.RoundingMode == "" {
		mode = types.RoundingMode(DefaultRoundingMode)
	}
	decimals := DefaultRoundingDecimal
	if c.RoundingDecimals != nil {
		decimals = *c.RoundingDecimals
	}
	return types.Rounding{Mode: mode, Decimals: decimals}
}
