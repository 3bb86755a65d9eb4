// File: internal/config/config.go
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the entire application configuration.
type Config struct {
	Logger   LoggerConfig   `mapstructure:"logger" yaml:"logger"`
	Agent    AgentConfig    `mapstructure:"agent" yaml:"agent"`
	Recorder RecorderConfig `mapstructure:"recorder" yaml:"recorder"`
}

// LoggerConfig controls the global zap logger.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// AgentConfig controls the decision loop for one session.
type AgentConfig struct {
	// MaxActions bounds how many actions one session may submit.
	MaxActions int `mapstructure:"max_actions" yaml:"max_actions"`
	// Seed seeds the random policy; 0 means derive from wall clock.
	Seed int64 `mapstructure:"seed" yaml:"seed"`
	// DoneOnGameOver makes GAME_OVER terminal for the session instead of
	// triggering an automatic RESET-and-retry.
	DoneOnGameOver bool `mapstructure:"done_on_game_over" yaml:"done_on_game_over"`
	// ActionsPerSecond paces submissions to the backend; 0 disables pacing.
	ActionsPerSecond float64 `mapstructure:"actions_per_second" yaml:"actions_per_second"`
}

// RecorderConfig controls per-frame persistence.
type RecorderConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	// Dir is the base directory; records land under Dir/<game_id>/.
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// SetDefaults initializes default values for all configuration parameters.
func SetDefaults(v *viper.Viper) {
	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "gridpilot")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)

	// Agent defaults
	v.SetDefault("agent.max_actions", 80)
	v.SetDefault("agent.seed", 0)
	v.SetDefault("agent.done_on_game_over", false)
	v.SetDefault("agent.actions_per_second", 0.0)

	// Recorder defaults
	v.SetDefault("recorder.enabled", true)
	v.SetDefault("recorder.dir", "frames")
}

// Load applies defaults, unmarshals the resolved viper state and validates it.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the decision loop cannot run with.
func (c *Config) Validate() error {
	if c.Agent.MaxActions <= 0 {
		return fmt.Errorf("agent.max_actions must be positive, got %d", c.Agent.MaxActions)
	}
	if c.Agent.ActionsPerSecond < 0 {
		return fmt.Errorf("agent.actions_per_second must not be negative, got %f", c.Agent.ActionsPerSecond)
	}
	if c.Recorder.Enabled && c.Recorder.Dir == "" {
		return fmt.Errorf("recorder.dir must be set when the recorder is enabled")
	}
	return nil
}
