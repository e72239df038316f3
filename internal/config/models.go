package config

import (
	"github.com/VasenkovAA/codingutils/internal/errors"
	"github.com/VasenkovAA/codingutils/internal/filter"
	"github.com/VasenkovAA/codingutils/internal/tree"
)

// BaseConfig holds options common to all commands
type BaseConfig struct {
	Debug   bool   `mapstructure:"debug"`
	Verbose bool   `mapstructure:"verbose"`
	LogFile string `mapstructure:"log_file"`
}

// StripConfig configures the strip command
type StripConfig struct {
	BaseConfig    `mapstructure:",squash"`
	Filter        filter.Config `mapstructure:"filter"`
	Remove        bool          `mapstructure:"remove"`
	Backup        bool          `mapstructure:"backup"`
	Markers       []string      `mapstructure:"markers"`
	ExcludePrefix string        `mapstructure:"exclude_prefix"`
	Language      string        `mapstructure:"language"`
}

// Validate checks the strip configuration
func (c *StripConfig) Validate() error {
	return c.Filter.Validate()
}

// MergeConfig configures the merge command
type MergeConfig struct {
	BaseConfig `mapstructure:",squash"`
	Filter     filter.Config `mapstructure:"filter"`
	Directory  string        `mapstructure:"directory"`
	Output     string        `mapstructure:"output"`
	Preview    bool          `mapstructure:"preview"`
}

// Validate checks the merge configuration
func (c *MergeConfig) Validate() error {
	if c.Output == "" {
		return errors.NewValidationError("output path must not be empty")
	}
	return c.Filter.Validate()
}

// TreeConfig configures the tree command
type TreeConfig struct {
	BaseConfig `mapstructure:",squash"`
	Filter     filter.Config `mapstructure:"filter"`
	Output     string        `mapstructure:"output"`
	Format     string        `mapstructure:"format"`
}

// Validate checks the tree configuration
func (c *TreeConfig) Validate() error {
	switch c.Format {
	case tree.FormatText, tree.FormatJSON, tree.FormatYAML:
	default:
		return errors.NewValidationError("format must be one of text, json, yaml")
	}
	return c.Filter.Validate()
}
