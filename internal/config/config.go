// Package config provides centralized configuration management using Viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration values for lettr.
type Config struct {
	APIBaseURL string `mapstructure:"api_base_url" yaml:"api_base_url"`
	TokenFile  string `mapstructure:"token_file" yaml:"token_file"`
	DataDir    string `mapstructure:"data_dir" yaml:"data_dir"`
	LogLevel   string `mapstructure:"log_level" yaml:"log_level"`
	LogFile    string `mapstructure:"log_file" yaml:"log_file"`
	Currency   string `mapstructure:"currency" yaml:"currency"`
	Draft      string `mapstructure:"draft" yaml:"draft"`
}

// Load loads configuration with full precedence:
// CLI flags > ENV vars > project config > XDG global config > defaults
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName("lettr")

	// Set defaults (api_base_url has no default - it's required)
	v.SetDefault("token_file", defaultTokenFile())
	v.SetDefault("data_dir", ".lettr")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("currency", "MYR")
	v.SetDefault("draft", "")

	// Setup ENV binding with LETTR_ prefix
	v.SetEnvPrefix("LETTR")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Explicit ENV bindings for better parsing
	// Note: BindEnv errors are very rare (only invalid key names), but we check them anyway
	bindings := map[string]string{
		"api_base_url": "LETTR_API_BASE_URL",
		"token_file":   "LETTR_TOKEN_FILE",
		"data_dir":     "LETTR_DATA_DIR",
		"log_level":    "LETTR_LOG_LEVEL",
		"log_file":     "LETTR_LOG_FILE",
		"currency":     "LETTR_CURRENCY",
		"draft":        "LETTR_DRAFT",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", key, err)
		}
	}

	// Load global config first (if exists)
	globalPath := GlobalPath()
	if fileExists(globalPath) {
		v.SetConfigFile(globalPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
	}

	// Merge project config on top (if exists)
	projectPath := ProjectPath()
	if fileExists(projectPath) {
		// Need to set config file explicitly for merge
		v.SetConfigFile(projectPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("merging project config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Exists returns true if any config file exists (global or project).
func Exists() bool {
	return fileExists(GlobalPath()) || fileExists(ProjectPath())
}

// GlobalPath returns the XDG global config path.
// Returns ~/.config/lettr/lettr.yml or $XDG_CONFIG_HOME/lettr/lettr.yml.
func GlobalPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "lettr", "lettr.yml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "lettr", "lettr.yml")
}

// ProjectPath returns the project-local config path.
// Returns ./lettr.yml in the current working directory.
func ProjectPath() string {
	return "lettr.yml"
}

// WriteGlobal writes the config to the XDG global location.
func WriteGlobal(cfg *Config) error {
	path := GlobalPath()

	// Create parent directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	// Marshal to YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	// Write file
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// WriteProject writes the config to the project-local location.
func WriteProject(cfg *Config) error {
	path := ProjectPath()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// defaultTokenFile returns the default auth token location under the
// user's home directory.
func defaultTokenFile() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".lettr", "token")
}

// fileExists checks if a file exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
