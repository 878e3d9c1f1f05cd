// Package config holds the solver's tunable knobs. The heuristic constants
// (sigmoid shapes, restart threshold, phase split) are deliberately
// configuration rather than invariants: they are empirical tuning, and no
// particular schedule is "the" correct one.
package config

import (
	"fmt"
	"io"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// Seed drives every random decision (bucket shuffling, restarts). Two
	// runs with the same seed and inputs behave identically.
	Seed uint64 `mapstructure:"seed" yaml:"seed"`

	// TargetScore is the minimum acceptable score for a heuristic run.
	// 0 means "require a full exact solution".
	TargetScore int `mapstructure:"target_score" yaml:"target_score"`

	// Exhaustive keeps searching for further solutions after the first.
	Exhaustive bool `mapstructure:"exhaustive" yaml:"exhaustive"`

	// Phase1Fraction is the share of the scan order filled by the exact
	// phase of the heuristic solver.
	Phase1Fraction float64 `mapstructure:"phase1_fraction" yaml:"phase1_fraction"`

	// PriorityFraction scales the total prioritized-side count down to the
	// amount phase 1 must actually consume.
	PriorityFraction float64 `mapstructure:"priority_fraction" yaml:"priority_fraction"`

	// PrioritySteepness shapes the phase-1 sigmoid consumption schedule.
	PrioritySteepness float64 `mapstructure:"priority_steepness" yaml:"priority_steepness"`

	// ErrorMidpoint and ErrorSteepness shape the phase-2 logistic error
	// budget curve.
	ErrorMidpoint  float64 `mapstructure:"error_midpoint" yaml:"error_midpoint"`
	ErrorSteepness float64 `mapstructure:"error_steepness" yaml:"error_steepness"`

	// SlipSchedule, when set, replaces the logistic error curve with
	// explicit depths at which one additional error unlocks.
	SlipSchedule []int `mapstructure:"slip_schedule" yaml:"slip_schedule,omitempty"`

	// RestartThreshold is the phase-1 stall budget: nodes visited since the
	// last restart before the attempt is abandoned and reshuffled.
	RestartThreshold uint64 `mapstructure:"restart_threshold" yaml:"restart_threshold"`

	// DBPath is the sqlite file recording solve runs. Empty disables
	// persistence.
	DBPath string `mapstructure:"db_path" yaml:"db_path"`
}

func DefaultConfig() Config {
	return Config{
		Seed:              1,
		Phase1Fraction:    0.5,
		PriorityFraction:  0.6,
		PrioritySteepness: 6.0,
		ErrorMidpoint:     0.75,
		ErrorSteepness:    8.0,
		RestartThreshold:  50_000_000,
		DBPath:            "tessera.db",
	}
}

// Load reads configuration from an optional yaml file and TESSERA_*
// environment variables, on top of the defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("tessera")
	v.AutomaticEnv()
	v.SetDefault("seed", cfg.Seed)
	v.SetDefault("target_score", cfg.TargetScore)
	v.SetDefault("exhaustive", cfg.Exhaustive)
	v.SetDefault("phase1_fraction", cfg.Phase1Fraction)
	v.SetDefault("priority_fraction", cfg.PriorityFraction)
	v.SetDefault("priority_steepness", cfg.PrioritySteepness)
	v.SetDefault("error_midpoint", cfg.ErrorMidpoint)
	v.SetDefault("error_steepness", cfg.ErrorSteepness)
	v.SetDefault("restart_threshold", cfg.RestartThreshold)
	v.SetDefault("db_path", cfg.DBPath)
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return cfg, fmt.Errorf("reading config %s: %w", path, err)
		}
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("unmarshaling config: %w", err)
	}
	return cfg, nil
}

// Write dumps the configuration as yaml.
func (c Config) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(c)
}
