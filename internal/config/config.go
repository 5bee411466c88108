// internal/config/config.go

// Package config holds app-wide settings that are unmarshalled from
// Viper (flags bound in /internal/cmd plus an optional config file)
// and the YAML schema for scoring settings files.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// RunConfig are the settings shared by the run and search commands.
type RunConfig struct {
	// treat the template as a circular molecule
	Circular bool `mapstructure:"circular"`

	// shortest amplicon reported, in bases
	MinLength int `mapstructure:"min-length"`

	// longest amplicon reported; 0 disables the upper bound
	MaxLength int `mapstructure:"max-length"`

	// worker goroutines used to score templates; 0 means GOMAXPROCS
	Threads int `mapstructure:"threads"`

	// output format: text, tsv, json or fasta
	Format string `mapstructure:"format"`

	// path to a scoring settings YAML; empty selects the built-ins
	Settings string `mapstructure:"settings"`

	// admission cutoffs; negative values keep the settings file's own
	PrimabilityCutoff float64 `mapstructure:"primability-cutoff"`
	StabilityCutoff   float64 `mapstructure:"stability-cutoff"`
}

// MeltConfig are the salt correction inputs for melting temperature.
type MeltConfig struct {
	// monovalent cation concentration in mM
	Monovalent float64 `mapstructure:"monovalent"`

	// divalent cation concentration in mM
	Divalent float64 `mapstructure:"divalent"`

	// primer concentration in nM
	Conc float64 `mapstructure:"conc"`
}

// DimerConfig are the primer-dimer screening thresholds.
type DimerConfig struct {
	// score above which an interaction is flagged
	Threshold float64 `mapstructure:"threshold"`

	// minimum aligned bases for a flagged interaction
	MinOverlap int `mapstructure:"min-overlap"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	// listen address, host:port
	Addr string `mapstructure:"addr"`

	// per-request timeout in seconds
	RequestTimeout int `mapstructure:"request-timeout"`

	// largest accepted template in bases
	MaxTemplateLength int `mapstructure:"max-template-length"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	// debug, info, warn or error
	Level string `mapstructure:"level"`

	// emit JSON log lines instead of console output
	JSON bool `mapstructure:"json"`
}

// Config is the root-level settings struct, a mix of values from an
// optional config file and command line flags.
type Config struct {
	Run    RunConfig    `mapstructure:"run"`
	Melt   MeltConfig   `mapstructure:"melt"`
	Dimer  DimerConfig  `mapstructure:"dimer"`
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
}

// Default returns the built-in configuration used when no flag or
// config file overrides a value.
func Default() Config {
	return Config{
		Run: RunConfig{
			MinLength:         1,
			Format:            "text",
			PrimabilityCutoff: -1,
			StabilityCutoff:   -1,
		},
		Melt: MeltConfig{
			Monovalent: 50,
			Divalent:   1.5,
			Conc:       50,
		},
		Dimer: DimerConfig{
			Threshold:  60,
			MinOverlap: 3,
		},
		Server: ServerConfig{
			Addr:              ":8080",
			RequestTimeout:    30,
			MaxTemplateLength: 10_000_000,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// LoadFile points Viper at an explicit config file and reads it.
func LoadFile(path string) error {
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return nil
}

// FromViper returns Default overlaid with whatever has been bound into
// Viper by the command layer.
func FromViper() (Config, error) {
	c := Default()
	if err := viper.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decode configuration: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks for values no command could act on.
func (c *Config) Validate() error {
	switch c.Run.Format {
	case "text", "tsv", "json", "fasta":
	default:
		return fmt.Errorf("format must be text, tsv, json or fasta, got %q", c.Run.Format)
	}
	if c.Run.MaxLength < 0 {
		return fmt.Errorf("max-length must be >= 0, got %d", c.Run.MaxLength)
	}
	if c.Run.Threads < 0 {
		return fmt.Errorf("threads must be >= 0, got %d", c.Run.Threads)
	}
	if c.Run.PrimabilityCutoff > 1 {
		return fmt.Errorf("primability-cutoff must be <= 1, got %g", c.Run.PrimabilityCutoff)
	}
	if c.Run.StabilityCutoff > 1 {
		return fmt.Errorf("stability-cutoff must be <= 1, got %g", c.Run.StabilityCutoff)
	}
	if c.Melt.Monovalent < 0 || c.Melt.Divalent < 0 || c.Melt.Conc < 0 {
		return fmt.Errorf("salt and primer concentrations must be >= 0")
	}
	if c.Dimer.MinOverlap < 1 {
		return fmt.Errorf("min-overlap must be >= 1, got %d", c.Dimer.MinOverlap)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server addr must not be empty")
	}
	if c.Server.RequestTimeout < 1 {
		return fmt.Errorf("request-timeout must be >= 1, got %d", c.Server.RequestTimeout)
	}
	if c.Server.MaxTemplateLength < 1 {
		return fmt.Errorf("max-template-length must be >= 1, got %d", c.Server.MaxTemplateLength)
	}
	return nil
}
