package app

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/corey/chara/internal/domain/cache"
	"github.com/corey/chara/internal/domain/detect"
)

// Config holds the engine tuning knobs. All fields have working defaults;
// an absent config file is not an error.
type Config struct {
	// CacheCapacity is the fixed result-cache size in entries.
	CacheCapacity int `yaml:"cache_capacity"`

	// ConfidenceThreshold drops results below this value (0..1).
	ConfidenceThreshold float64 `yaml:"confidence_threshold"`

	// HintBonus is the per-hint confidence bonus; HintBonusCap bounds it.
	HintBonus    float64 `yaml:"hint_bonus"`
	HintBonusCap float64 `yaml:"hint_bonus_cap"`

	// LengthBonus scales the match-length/title-length confidence bonus.
	LengthBonus float64 `yaml:"length_bonus"`

	// Jobs bounds the worker pool for batch analysis (CLI only).
	Jobs int `yaml:"jobs"`
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() *Config {
	w := detect.DefaultWeights()
	return &Config{
		CacheCapacity:       cache.DefaultCapacity,
		ConfidenceThreshold: w.Threshold,
		HintBonus:           w.HintBonus,
		HintBonusCap:        w.HintBonusCap,
		LengthBonus:         w.LengthBonus,
		Jobs:                4,
	}
}

// LoadConfig reads a YAML config file, filling unset fields with defaults.
// A missing file returns pure defaults; a malformed file is an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.CacheCapacity <= 0 {
		cfg.CacheCapacity = cache.DefaultCapacity
	}
	if cfg.Jobs <= 0 {
		cfg.Jobs = 4
	}
	return cfg, nil
}

// weights maps the config onto the detector's confidence constants.
func (c *Config) weights() detect.Weights {
	return detect.Weights{
		LengthBonus:  c.LengthBonus,
		HintBonus:    c.HintBonus,
		HintBonusCap: c.HintBonusCap,
		Threshold:    c.ConfidenceThreshold,
	}
}
