package config

import "time"

// Config represents the main configuration
type Config struct {
	Version  string    `yaml:"version"`
	Settings *Settings `yaml:"settings"`
}

// Settings represents global application settings
type Settings struct {
	// Orchestrator connection
	ServerURL      string `yaml:"server_url" json:"server_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds" json:"timeout_seconds"`

	// Background polling periods
	LogPollSeconds     int `yaml:"log_poll_seconds" json:"log_poll_seconds"`
	SummaryPollSeconds int `yaml:"summary_poll_seconds" json:"summary_poll_seconds"`

	// Log tail window kept in memory for display
	LogWindow int `yaml:"log_window" json:"log_window"`

	// Logger configuration
	Logger *LoggerConfig `yaml:"logger,omitempty" json:"logger,omitempty"`

	// UI settings
	Theme          string `yaml:"theme" json:"theme"` // dark, light
	ShowTimestamps bool   `yaml:"show_timestamps" json:"show_timestamps"`
}

// LoggerConfig represents logger configuration
type LoggerConfig struct {
	Level    string `yaml:"level" json:"level"`         // debug, info, warn, error
	FilePath string `yaml:"file_path" json:"file_path"` // Log file path (empty = no file)
	Console  bool   `yaml:"console" json:"console"`     // Also log to stderr
}

// RequestTimeout returns the configured HTTP timeout
func (s *Settings) RequestTimeout() time.Duration {
	if s.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// LogPollInterval returns the log polling period
func (s *Settings) LogPollInterval() time.Duration {
	if s.LogPollSeconds <= 0 {
		return 6 * time.Second
	}
	return time.Duration(s.LogPollSeconds) * time.Second
}

// SummaryPollInterval returns the summary polling period
func (s *Settings) SummaryPollInterval() time.Duration {
	if s.SummaryPollSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(s.SummaryPollSeconds) * time.Second
}

// LogWindowSize returns the display log cap
func (s *Settings) LogWindowSize() int {
	if s.LogWindow <= 0 {
		return 400
	}
	return s.LogWindow
}

// GetLoggerConfig returns the logger config, building one from defaults
// when the file omits the section
func (s *Settings) GetLoggerConfig() *LoggerConfig {
	if s.Logger != nil {
		return s.Logger
	}
	return DefaultLoggerConfig()
}
