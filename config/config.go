// Package config loads the opmode's tunable parameters (Newton solver tuning, debug-mode
// multiplier, telemetry endpoint) from a YAML file via viper, the way
// reinforcement.FromYaml loads training hyperparameters in the teacher repo: a thin viper
// wrapper handing off to yaml.v3 for the actual struct decode.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"corebot/newton"
)

// TelemetryConfig configures the optional telemetry writer.
type TelemetryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	// BackoffInitialMS and BackoffMaxMS bound the reconnect backoff, in milliseconds, per spec §6.
	BackoffInitialMS int `yaml:"backoffInitialMs"`
	BackoffMaxMS     int `yaml:"backoffMaxMs"`
	// QueueDepth bounds the writer's pending-frame queue; oldest frames are dropped past it.
	QueueDepth int `yaml:"queueDepth"`
}

// DashboardConfig configures the optional debug dashboard.
type DashboardConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// OpmodeConfig is the top-level configuration for one opmode run: Newton solver tunables, the
// debug-mode replay multiplier, and the telemetry/dashboard endpoints.
type OpmodeConfig struct {
	DebugMode bool  `yaml:"debugMode"`
	// DebugMultiplier is the total number of Process calls RobotController makes against each
	// hot layer per tick while DebugMode is set: DebugMultiplier-1 throwaway replays plus the one
	// real call; see controller.RobotController.runProcess.
	DebugMultiplier int             `yaml:"debugMultiplier"`
	RandomSeed      int64           `yaml:"randomSeed"`
	Newton          newton.Tunables `yaml:"newton"`
	Telemetry       TelemetryConfig `yaml:"telemetry"`
	Dashboard       DashboardConfig `yaml:"dashboard"`
}

// Default returns an OpmodeConfig with Newton's spec-default tunables, a debug multiplier of 4,
// and telemetry/dashboard disabled.
func Default() OpmodeConfig {
	return OpmodeConfig{
		DebugMultiplier: 4,
		Newton:          newton.DefaultTunables(),
	}
}

// FromYaml loads an OpmodeConfig from a YAML file at path, via viper (to locate and read the
// file) handing off to yaml.v3 for the struct decode of that file's contents. Fields absent from
// the file keep their Default values.
func FromYaml(path string) (OpmodeConfig, error) {
	cfg := Default()

	vp := viper.New()
	vp.SetConfigFile(path)
	vp.SetConfigType("yaml")
	vp.AddConfigPath(filepath.Dir(path))
	if err := vp.ReadInConfig(); err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	// viper lowercases every key it reads, which the camelCase yaml tags would not match, so the
	// struct decode works from the raw bytes of the file viper resolved.
	raw, err := os.ReadFile(vp.ConfigFileUsed())
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("config: decode: %w", err)
	}
	return cfg, nil
}
