// Package config handles fairing tool configuration loading and management.
package config

import (
	"github.com/Faultbox/procfairings/pkg/fairing"
)

// Config holds all tool settings.
type Config struct {
	Fairing FairingConfig `yaml:"fairing" json:"fairing"`
	Side    fairing.Side  `yaml:"side" json:"side"`
	Adapter AdapterConfig `yaml:"adapter" json:"adapter"`
	Export  ExportConfig  `yaml:"export" json:"export"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// FairingConfig holds the base settings and the panel layout.
type FairingConfig struct {
	fairing.Base `yaml:",inline"`
	NumSideParts int `yaml:"num_side_parts" json:"num_side_parts" jsonschema:"minimum=1"`
}

// AdapterConfig turns the base into an inline adapter when enabled.
type AdapterConfig struct {
	Enabled         bool `yaml:"enabled" json:"enabled"`
	fairing.Adapter `yaml:",inline"`
}

// ExportConfig holds mesh export settings.
type ExportConfig struct {
	Format string `yaml:"format" json:"format" jsonschema:"enum=obj,enum=stl,enum=json"`
	Dir    string `yaml:"dir" json:"dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" json:"level" jsonschema:"enum=debug,enum=info,enum=warn,enum=error"`
	LogFile string `yaml:"log_file" json:"log_file"`
	JSON    bool   `yaml:"json" json:"json"`
}

// Default returns a Config carrying the stock part values.
func Default() *Config {
	return &Config{
		Fairing: FairingConfig{
			Base:         fairing.DefaultBase(),
			NumSideParts: 2,
		},
		Side: fairing.DefaultSide(),
		Adapter: AdapterConfig{
			Adapter: fairing.DefaultAdapter(),
		},
		Export: ExportConfig{
			Format: "obj",
			Dir:    ".",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Assembly builds an assembly from the settings. The payload is left empty.
func (c *Config) Assembly() *fairing.Assembly {
	a := &fairing.Assembly{
		Base:         c.Fairing.Base,
		Side:         c.Side,
		NumSideParts: c.Fairing.NumSideParts,
	}
	if c.Adapter.Enabled {
		ad := c.Adapter.Adapter
		a.Adapter = &ad
	}
	return a
}
