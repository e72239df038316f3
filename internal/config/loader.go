package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/VasenkovAA/codingutils/internal/errors"
	"github.com/VasenkovAA/codingutils/internal/filter"
)

// ConfigFileName is the per-project and global config file name.
const ConfigFileName = ".codingutils.yaml"

// Loader handles loading configuration from multiple sources
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	// Load .env file if exists
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetEnvPrefix("CODINGUTILS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return &Loader{v: v}
}

// Load assembles configuration for a command.
// Precedence: CLI > ./.codingutils.yaml > ~/.codingutils.yaml > Environment > Defaults
func (l *Loader) Load(workDir string, cliOverrides map[string]interface{}) (*viper.Viper, error) {
	l.setDefaults()

	if err := l.loadGlobalConfig(); err != nil {
		return nil, err
	}
	if err := l.loadProjectConfig(workDir); err != nil {
		return nil, err
	}
	for key, value := range cliOverrides {
		if value != nil {
			l.v.Set(key, value)
		}
	}

	return l.v, nil
}

func (l *Loader) setDefaults() {
	l.v.SetDefault("filter.include_pattern", "*")
	l.v.SetDefault("filter.max_depth", filter.NoMaxDepth)
	l.v.SetDefault("filter.recursive", true)
	l.v.SetDefault("backup", true)
	l.v.SetDefault("output", "")
	l.v.SetDefault("format", "text")
}

// loadGlobalConfig loads configuration from ~/.codingutils.yaml
func (l *Loader) loadGlobalConfig() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil // Not a fatal error
	}

	globalConfig := filepath.Join(homeDir, ConfigFileName)
	if _, err := os.Stat(globalConfig); err != nil {
		return nil // File doesn't exist, skip
	}

	l.v.SetConfigFile(globalConfig)
	if err := l.v.ReadInConfig(); err != nil {
		return errors.NewConfigFileError(globalConfig, err)
	}

	return nil
}

// loadProjectConfig loads configuration from <workDir>/.codingutils.yaml
func (l *Loader) loadProjectConfig(workDir string) error {
	if workDir == "" {
		workDir = "."
	}

	configPath := filepath.Join(workDir, ConfigFileName)
	if _, err := os.Stat(configPath); err != nil {
		return nil // File doesn't exist, skip
	}

	l.v.SetConfigFile(configPath)
	if err := l.v.MergeInConfig(); err != nil {
		return errors.NewConfigFileError(configPath, err)
	}

	return nil
}

// Decode unmarshals the assembled configuration into out.
func Decode(v *viper.Viper, out interface{}) error {
	if err := v.Unmarshal(out); err != nil {
		return errors.WrapError(err, "invalid configuration", errors.ExitConfigError)
	}
	return nil
}
