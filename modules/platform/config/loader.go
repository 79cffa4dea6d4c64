package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigFileName is the default config file name
	DefaultConfigFileName = "profiledeck.yaml"

	// ConfigPathEnv overrides the config search path when set
	ConfigPathEnv = "PROFILEDECK_CONFIG"
)

var (
	// globalConfig is the globally loaded configuration
	globalConfig *Config
	// globalConfigPath is the path to the loaded config file
	globalConfigPath string
	// configMutex protects config access
	configMutex sync.RWMutex
)

// Loader handles configuration loading and saving
type Loader struct {
	configPath string
}

// NewLoader creates a new config loader
func NewLoader(configPath string) *Loader {
	return &Loader{
		configPath: configPath,
	}
}

// Load loads configuration from file
func (l *Loader) Load() (*Config, error) {
	return l.LoadWithCreate(false)
}

// LoadWithCreate loads configuration from file, optionally creating it if missing
func (l *Loader) LoadWithCreate(createIfMissing bool) (*Config, error) {
	if _, err := os.Stat(l.configPath); os.IsNotExist(err) {
		cfg := DefaultConfig()

		if createIfMissing {
			if err := l.Save(cfg); err != nil {
				return nil, fmt.Errorf("failed to create config file: %w", err)
			}
		}

		return cfg, nil
	}

	data, err := os.ReadFile(l.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply defaults for missing fields
	if cfg.Settings == nil {
		cfg.Settings = DefaultSettings()
	} else {
		if cfg.Settings.ServerURL == "" {
			cfg.Settings.ServerURL = DefaultSettings().ServerURL
		}
		if cfg.Settings.Logger == nil {
			cfg.Settings.Logger = DefaultLoggerConfig()
		}
	}

	return &cfg, nil
}

// Save saves configuration to file
func (l *Loader) Save(cfg *Config) error {
	dir := filepath.Dir(l.configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(l.configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetPath returns the config file path
func (l *Loader) GetPath() string {
	return l.configPath
}

// Exists checks if config file exists
func (l *Loader) Exists() bool {
	_, err := os.Stat(l.configPath)
	return err == nil
}

// FindConfigFile searches for config file in standard locations
func FindConfigFile() string {
	// Priority order:
	// 1. PROFILEDECK_CONFIG environment variable
	// 2. Current directory
	// 3. User config directory (~/.profiledeck)

	if envPath := os.Getenv(ConfigPathEnv); envPath != "" {
		return envPath
	}

	cwd, err := os.Getwd()
	if err == nil {
		configPath := filepath.Join(cwd, DefaultConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
	}

	if userDir, err := GetUserConfigDir(); err == nil {
		configPath := filepath.Join(userDir, DefaultConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
	}

	// Default to current directory
	if cwd != "" {
		return filepath.Join(cwd, DefaultConfigFileName)
	}

	return DefaultConfigFileName
}

// LoadGlobal loads configuration globally
func LoadGlobal(configPath string) error {
	configMutex.Lock()
	defer configMutex.Unlock()

	if configPath == "" {
		configPath = FindConfigFile()
	}

	loader := NewLoader(configPath)
	cfg, err := loader.Load()
	if err != nil {
		return err
	}

	globalConfig = cfg
	globalConfigPath = configPath

	return nil
}

// GetGlobal returns the global configuration
func GetGlobal() *Config {
	configMutex.RLock()
	defer configMutex.RUnlock()

	if globalConfig == nil {
		return DefaultConfig()
	}
	return globalConfig
}

// GetGlobalPath returns the global config file path
func GetGlobalPath() string {
	configMutex.RLock()
	defer configMutex.RUnlock()

	return globalConfigPath
}

// SaveGlobal saves the global configuration
func SaveGlobal() error {
	configMutex.Lock()
	defer configMutex.Unlock()

	if globalConfig == nil {
		return fmt.Errorf("no global config loaded")
	}
	if globalConfigPath == "" {
		return fmt.Errorf("no config path set")
	}

	loader := NewLoader(globalConfigPath)
	return loader.Save(globalConfig)
}

// SetGlobal sets the global configuration
func SetGlobal(cfg *Config, configPath string) {
	configMutex.Lock()
	defer configMutex.Unlock()

	globalConfig = cfg
	globalConfigPath = configPath
}
