package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"eduxctl/pkg/edux"

	"dario.cat/mergo"
	"github.com/joho/godotenv"
	"github.com/titanous/json5"
)

// Environment variables that override the config file
const (
	EnvBaseURL     = "EDUXCTL_BASE_URL"
	EnvCookieFile  = "EDUXCTL_COOKIE_FILE"
	EnvHistoryFile = "EDUXCTL_HISTORY_FILE"
	EnvLogLevel    = "EDUXCTL_LOG_LEVEL"
)

// AppConfig holds all user-defined persistent settings
type AppConfig struct {
	BaseURL        string `json:"base_url,omitempty"`
	CookieFile     string `json:"cookie_file,omitempty"`
	HistoryFile    string `json:"history_file,omitempty"`
	AccentColor    string `json:"accent_color,omitempty"`
	LogLevel       string `json:"log_level,omitempty"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty"`
}

// Defaults returns the settings used for anything left unset.
func Defaults() AppConfig {
	return AppConfig{
		BaseURL:        edux.DefaultBaseURL,
		CookieFile:     edux.DefaultCookieFile,
		HistoryFile:    "~/.eduxctl_history",
		AccentColor:    "99",
		LogLevel:       "warn",
		TimeoutSeconds: 10,
	}
}

// getConfigPath returns the absolute path to ~/.eduxctl.json
func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".eduxctl.json"), nil
}

// Load reads the application configuration from disk.
// Returns an empty struct if the file does not exist.
// The file is JSON5, so comments and trailing commas are fine.
func Load() (*AppConfig, error) {
	path, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		// If file doesn't exist, just return an empty default configuration
		if os.IsNotExist(err) {
			return &AppConfig{}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg AppConfig
	if err := json5.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// LoadEffective returns the configuration the application runs with: the
// config file, overridden by the environment (and a .env file in the working
// directory), with defaults for everything still unset.
func LoadEffective() (*AppConfig, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	// A missing .env file is the normal case
	_ = godotenv.Load()

	env := AppConfig{
		BaseURL:     os.Getenv(EnvBaseURL),
		CookieFile:  os.Getenv(EnvCookieFile),
		HistoryFile: os.Getenv(EnvHistoryFile),
		LogLevel:    os.Getenv(EnvLogLevel),
	}
	if err := mergo.Merge(cfg, env, mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}
	if err := mergo.Merge(cfg, Defaults()); err != nil {
		return nil, fmt.Errorf("failed to apply config defaults: %w", err)
	}

	return cfg, nil
}

// Save writes the application configuration back to disk.
func Save(cfg *AppConfig) error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
