package config

import (
	"os"
	"path/filepath"
)

// DefaultLoggerConfig returns default logger configuration
func DefaultLoggerConfig() *LoggerConfig {
	return &LoggerConfig{
		Level:    "info",
		FilePath: "", // Resolved to ~/.profiledeck/profiledeck.log at logger setup
		Console:  false,
	}
}

// DefaultSettings returns default application settings
func DefaultSettings() *Settings {
	return &Settings{
		ServerURL:          "http://127.0.0.1:5002",
		TimeoutSeconds:     30,
		LogPollSeconds:     6,
		SummaryPollSeconds: 10,
		LogWindow:          400,
		Logger:             DefaultLoggerConfig(),
		Theme:              "dark",
		ShowTimestamps:     true,
	}
}

// DefaultConfig returns a complete default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:  "1",
		Settings: DefaultSettings(),
	}
}

// GetUserConfigDir returns the user's config directory for profiledeck
func GetUserConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".profiledeck"), nil
}

// GetDefaultLogPath returns the default log file location
func GetDefaultLogPath() string {
	dir, err := GetUserConfigDir()
	if err != nil {
		return "profiledeck.log"
	}
	return filepath.Join(dir, "profiledeck.log")
}
