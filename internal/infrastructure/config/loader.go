package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool
}

// NewManager creates a manager that looks for config.toml in the XDG config
// directory, then in the working directory.
func NewManager() (*Manager, error) {
	v := viper.New()

	// Configure Viper for TOML as default format
	v.SetConfigName("config")
	v.SetConfigType("toml")

	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
	}
	v.AddConfigPath(configDir)
	v.AddConfigPath(".") // Current directory for development

	return newManager(v)
}

// NewManagerForFile creates a manager bound to one config file. The file
// does not need to exist; defaults apply until it does.
func NewManagerForFile(path string) (*Manager, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	return newManager(v)
}

func newManager(v *viper.Viper) (*Manager, error) {
	// CHROMIC_LAYOUT_CHROME_TOP, CHROMIC_SIDEBAR_DEFAULT_WIDTH, ...
	v.SetEnvPrefix("CHROMIC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv("logging.level", "CHROMIC_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind CHROMIC_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "CHROMIC_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind CHROMIC_LOG_FORMAT: %w", err)
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

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}

	config, err := m.unmarshalConfig()
	if err != nil {
		return err
	}
	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m.config = config
	return nil
}

// readConfigFile reads the config file. A missing file is not an error.
func (m *Manager) readConfigFile() error {
	err := m.viper.ReadInConfig()
	if err == nil {
		return nil
	}

	var configFileNotFoundError viper.ConfigFileNotFoundError
	if errors.As(err, &configFileNotFoundError) || errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	configFile := m.viper.ConfigFileUsed()
	return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", configFile, err)
}

func (m *Manager) unmarshalConfig() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		configFile := m.viper.ConfigFileUsed()
		return nil, fmt.Errorf(
			"failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches",
			configFile,
			err,
		)
	}
	return config, nil
}

func normalizeConfig(config *Config) {
	config.HomePage = strings.TrimSpace(config.HomePage)
	if config.HomePage == "" {
		config.HomePage = DefaultConfig().HomePage
	}
	config.ResourcesDir = strings.TrimSpace(config.ResourcesDir)
	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	config.Logging.Format = strings.ToLower(strings.TrimSpace(config.Logging.Format))
	if config.Logging.Format == "text" {
		config.Logging.Format = "console"
	}
}

// Get returns the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.config == nil {
		return DefaultConfig()
	}
	return m.config
}

// ConfigFile returns the file the configuration was read from, or "" when
// running on defaults.
func (m *Manager) ConfigFile() string {
	return m.viper.ConfigFileUsed()
}

// AllSettings returns the merged settings keyed like the config file.
func (m *Manager) AllSettings() map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.viper.AllSettings()
}

func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.viper.SetDefault("layout.chrome_top", defaults.Layout.ChromeTop)
	m.viper.SetDefault("layout.chrome_bottom", defaults.Layout.ChromeBottom)
	m.viper.SetDefault("layout.side_inset", defaults.Layout.SideInset)
	m.viper.SetDefault("layout.separator_width", defaults.Layout.SeparatorWidth)

	m.viper.SetDefault("sidebar.default_width", defaults.Sidebar.DefaultWidth)
	m.viper.SetDefault("sidebar.min_width", defaults.Sidebar.MinWidth)

	m.viper.SetDefault("window.width", defaults.Window.Width)
	m.viper.SetDefault("window.height", defaults.Window.Height)
	m.viper.SetDefault("window.min_width", defaults.Window.MinWidth)
	m.viper.SetDefault("window.min_height", defaults.Window.MinHeight)

	m.viper.SetDefault("home_page", defaults.HomePage)
	m.viper.SetDefault("resources_dir", defaults.ResourcesDir)
	m.viper.SetDefault("focus.reassert_on_first_paint", defaults.Focus.ReassertOnFirstPaint)

	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
	m.viper.SetDefault("logging.log_dir", defaults.Logging.LogDir)
	m.viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	m.viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
	m.viper.SetDefault("logging.max_age_days", defaults.Logging.MaxAgeDays)
	m.viper.SetDefault("logging.compress", defaults.Logging.Compress)
}
