package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// AppConfig holds all user-defined persistent settings
type AppConfig struct {
	DefaultCurrency    string `json:"default_currency,omitempty"`
	DefaultTravelClass string `json:"default_travel_class,omitempty"`
	HomeStation        string `json:"home_station,omitempty"`
	DefaultBirthdate   string `json:"default_birthdate,omitempty"`
	AccentColor        string `json:"accent_color,omitempty"`

	// StationCacheDays overrides how many days the downloaded station table
	// is kept before a refresh; 0 keeps the built-in default.
	StationCacheDays int `json:"station_cache_days,omitempty"`
}

// getConfigPath returns the absolute path to ~/.railsearch.json
func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".railsearch.json"), nil
}

// Load reads the application configuration from disk.
// Returns an empty struct if the file does not exist.
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
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
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

// Currency returns the configured currency or the given fallback.
func (c *AppConfig) Currency(fallback string) string {
	if c.DefaultCurrency != "" {
		return c.DefaultCurrency
	}
	return fallback
}
