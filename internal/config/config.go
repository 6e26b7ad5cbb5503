package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// File permission constants
const (
	dirPerm  = 0755 // Standard directory permissions (rwxr-xr-x)
	filePerm = 0644 // Standard file permissions (rw-r--r--)
)

// Config represents the complete configuration for ledge.
type Config struct {
	// Panels is the list of panel profiles keyed by their Name field.
	Panels  []PanelConfig `mapstructure:"panels" yaml:"panels" json:"panels"`
	Theme   ThemeConfig   `mapstructure:"theme" yaml:"theme" json:"theme"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging" json:"logging"`
}

// ThemeConfig holds the colors used to resolve theme-driven panel
// backgrounds.
type ThemeConfig struct {
	// Mode is "dark" or "light".
	Mode string `mapstructure:"mode" yaml:"mode" json:"mode"`
	// DarkColor / LightColor are hex colors used for the respective theme
	// backgrounds.
	DarkColor  string `mapstructure:"dark_color" yaml:"dark_color" json:"dark_color"`
	LightColor string `mapstructure:"light_color" yaml:"light_color" json:"light_color"`
}

// Palette resolves the theme configuration into concrete colors.
func (t ThemeConfig) Palette() Palette {
	dark, err := parseHexColor(t.DarkColor)
	if err != nil {
		dark = RGBA{0.1, 0.1, 0.1, 1.0}
	}
	light, err := parseHexColor(t.LightColor)
	if err != nil {
		light = RGBA{0.9, 0.9, 0.9, 1.0}
	}
	return Palette{
		IsDark: strings.ToLower(t.Mode) != "light",
		Dark:   dark,
		Light:  light,
	}
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" json:"level"`
	Format string `mapstructure:"format" yaml:"format" json:"format"`
}

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool
}

// NewManager creates a new configuration manager.
func NewManager() (*Manager, error) {
	v := viper.New()

	// Configure Viper - supports yaml, json, toml automatically
	v.SetConfigName("config")

	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config directory: %w", err)
	}
	v.AddConfigPath(configDir)
	v.AddConfigPath(".") // Current directory for development

	// Set up environment variable support
	v.SetEnvPrefix("LEDGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindings := map[string]string{
		"theme.mode":        "THEME_MODE",
		"theme.dark_color":  "THEME_DARK_COLOR",
		"theme.light_color": "THEME_LIGHT_COLOR",
		"logging.level":     "LOG_LEVEL",
		"logging.format":    "LOG_FORMAT",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, "LEDGE_"+env); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable %s: %w", env, err)
		}
	}

	return &Manager{
		viper:     v,
		callbacks: make([]func(*Config), 0),
	}, nil
}

// Load loads the configuration from file and environment variables.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to ensure directories: %w", err)
	}

	m.setDefaults()

	if err := m.viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			// Config file not found, create default one
			if err := m.createDefaultConfig(); err != nil {
				return fmt.Errorf("failed to create default config: %w", err)
			}
			if err := m.viper.ReadInConfig(); err != nil {
				return fmt.Errorf("failed to read created config file: %w", err)
			}
		} else {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config, err := m.unmarshal()
	if err != nil {
		return err
	}

	m.config = config
	return nil
}

// unmarshal decodes and validates the current viper state.
func (m *Manager) unmarshal() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	normalizeConfig(config)
	if err := validateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

// Get returns the current configuration (thread-safe).
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	// Return a copy to prevent external modification
	configCopy := *m.config
	configCopy.Panels = make([]PanelConfig, len(m.config.Panels))
	for i := range m.config.Panels {
		configCopy.Panels[i] = m.config.Panels[i].Clone()
	}
	return &configCopy
}

// Watch starts watching the config file for changes and reloads
// automatically.
func (m *Manager) Watch() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.watching {
		return nil // Already watching
	}

	m.viper.WatchConfig()
	m.viper.OnConfigChange(func(_ fsnotify.Event) {
		if err := m.reload(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to reload config: %v\n", err)
			return
		}

		m.mu.RLock()
		config := m.config
		callbacks := make([]func(*Config), len(m.callbacks))
		copy(callbacks, m.callbacks)
		m.mu.RUnlock()

		for _, callback := range callbacks {
			callback(config)
		}
	})

	m.watching = true
	return nil
}

// OnConfigChange registers a callback function to be called when config
// changes.
func (m *Manager) OnConfigChange(callback func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.callbacks = append(m.callbacks, callback)
}

// reload reloads the configuration.
func (m *Manager) reload() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.viper.ReadInConfig(); err != nil {
		return err
	}
	config, err := m.unmarshal()
	if err != nil {
		return err
	}
	m.config = config
	return nil
}

// normalizeConfig fills derived defaults on freshly decoded values.
func normalizeConfig(config *Config) {
	for i := range config.Panels {
		p := &config.Panels[i]
		if p.Anchor == "" {
			p.Anchor = "Top"
		}
		if p.Size == "" {
			p.Size = string(SizeM)
		}
		if p.Output == "" {
			p.Output = "All"
		}
		if p.Background == "" {
			p.Background = string(BackgroundThemeDefault)
		}
		if p.Opacity == 0 {
			p.Opacity = 0.8
		}
	}
	if config.Theme.Mode == "" {
		config.Theme.Mode = "dark"
	}
}

// setDefaults sets default configuration values in Viper.
func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.viper.SetDefault("theme.mode", defaults.Theme.Mode)
	m.viper.SetDefault("theme.dark_color", defaults.Theme.DarkColor)
	m.viper.SetDefault("theme.light_color", defaults.Theme.LightColor)

	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
}

// createDefaultConfig creates a default configuration file.
func (m *Manager) createDefaultConfig() error {
	configFile, err := GetConfigFile()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configFile), dirPerm); err != nil {
		return err
	}

	defaultConfig := DefaultConfig()

	configData, err := json.MarshalIndent(defaultConfig, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}

	if err := os.WriteFile(configFile, configData, filePerm); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Created default configuration file: %s\n", configFile)

	if err := GenerateSchemaFile(); err != nil {
		fmt.Printf("Warning: failed to generate JSON schema: %v\n", err)
	}
	return nil
}

// GetConfigFile returns the path to the configuration file being used.
func (m *Manager) GetConfigFile() string {
	return m.viper.ConfigFileUsed()
}
