// Package config loads the tool configuration from fractory.yml or
// fractory.yaml in the working directory, with environment overrides.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config represents the fractory configuration
type Config struct {
	Packages  []string        `mapstructure:"packages"`
	Artifacts ArtifactsConfig `mapstructure:"artifacts"`
	Generate  GenerateConfig  `mapstructure:"generate"`
}

// ArtifactsConfig controls the intermediate artifact store
type ArtifactsConfig struct {
	// Dir is where this compilation unit writes its artifacts.
	Dir string `mapstructure:"dir"`
	// Path is the ordered artifact search path consulted at aggregation
	// time. It defaults to [Dir]; units aggregating over upstream modules
	// list those modules' artifact directories here, in order.
	Path []string `mapstructure:"path"`
}

// GenerateConfig controls source emission
type GenerateConfig struct {
	Suffix string `mapstructure:"suffix"`
}

// Load loads the configuration, falling back to defaults when no config
// file exists.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("packages", []string{"./..."})
	v.SetDefault("artifacts.dir", "build/fractory")
	v.SetDefault("generate.suffix", "_fractory.go")

	v.SetConfigName("fractory")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("FRACTORY")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file - defaults apply
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Artifacts.Dir == "" {
		return nil, fmt.Errorf("artifacts.dir cannot be empty")
	}
	if config.Generate.Suffix == "" {
		return nil, fmt.Errorf("generate.suffix cannot be empty")
	}
	if len(config.Artifacts.Path) == 0 {
		config.Artifacts.Path = []string{config.Artifacts.Dir}
	}

	return &config, nil
}
