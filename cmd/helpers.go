package cmd

import (
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/VasenkovAA/codingutils/internal/config"
	"github.com/VasenkovAA/codingutils/internal/filter"
	"github.com/VasenkovAA/codingutils/internal/ignore"
	"github.com/VasenkovAA/codingutils/internal/logging"
)

var (
	headerColor  = color.New(color.Bold)
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
)

// initLogger creates the logger shared by all commands from the
// persistent flags plus the resolved configuration.
func initLogger(base config.BaseConfig) (*logging.Logger, error) {
	consoleLevel := zapcore.WarnLevel
	if base.Verbose {
		consoleLevel = zapcore.InfoLevel
	}
	if base.Debug {
		consoleLevel = zapcore.DebugLevel
	}
	return logging.NewLogger(&logging.Config{
		LogFile:        base.LogFile,
		FileLevel:      zapcore.InfoLevel,
		ConsoleLevel:   consoleLevel,
		EnableCaller:   base.Debug,
		ConsoleEnabled: true,
	})
}

// buildRuleSet creates the ignore rule set for a root when ignore-file
// support is enabled; it returns nil otherwise.
func buildRuleSet(cfg *filter.Config, root string, log *logging.Logger) (*ignore.RuleSet, error) {
	if !cfg.UseIgnoreFile && cfg.CustomIgnoreFile == "" {
		return nil, nil
	}
	rules, err := ignore.NewRuleSet(root, log)
	if err != nil {
		return nil, err
	}
	if !rules.Load(cfg.CustomIgnoreFile) {
		log.Debug("no ignore patterns loaded", logging.String("root", root))
	}
	return rules, nil
}

// override records a CLI flag value in the overrides map, but only
// when the user actually set the flag, so config-file values survive.
func override(m map[string]interface{}, cmd *cobra.Command, flag, key string, value interface{}) {
	if cmd.Flags().Changed(flag) {
		m[key] = value
	}
}

// baseOverrides collects the persistent flags every command honors.
func baseOverrides(cmd *cobra.Command) map[string]interface{} {
	m := map[string]interface{}{}
	override(m, cmd, "debug", "debug", debugFlag)
	override(m, cmd, "verbose", "verbose", verboseFlag)
	override(m, cmd, "log-file", "log_file", logFileFlag)
	return m
}

// colorsEnabled reports whether stdout is a terminal that can take
// colored output.
func colorsEnabled() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
