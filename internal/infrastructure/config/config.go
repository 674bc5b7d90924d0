// Package config loads the shell configuration with viper, watches it with
// fsnotify and describes it as a JSON schema.
package config

import (
	"github.com/bnema/chromic/internal/application/port"
	"github.com/bnema/chromic/internal/application/usecase"
	"github.com/bnema/chromic/internal/domain/geometry"
	"github.com/bnema/chromic/internal/logging"
)

// Config represents the complete configuration for chromic.
type Config struct {
	Layout  LayoutConfig  `mapstructure:"layout" toml:"layout" json:"layout"`
	Sidebar SidebarConfig `mapstructure:"sidebar" toml:"sidebar" json:"sidebar"`
	Window  WindowConfig  `mapstructure:"window" toml:"window" json:"window"`
	// HomePage is loaded by views created without an address.
	HomePage string `mapstructure:"home_page" toml:"home_page" json:"home_page" jsonschema:"default=chromic://home"`
	// ResourcesDir is where named local panel resources are resolved. Empty
	// keeps them on the internal scheme.
	ResourcesDir string        `mapstructure:"resources_dir" toml:"resources_dir" json:"resources_dir,omitempty"`
	Focus        FocusConfig   `mapstructure:"focus" toml:"focus" json:"focus"`
	Logging      LoggingConfig `mapstructure:"logging" toml:"logging" json:"logging"`
}

// LayoutConfig reserves room for the chrome around content.
type LayoutConfig struct {
	// ChromeTop is the height of the tab strip and address bar.
	ChromeTop int `mapstructure:"chrome_top" toml:"chrome_top" json:"chrome_top" jsonschema:"minimum=0,default=118"`
	// ChromeBottom is subtracted from the window height for content.
	ChromeBottom int `mapstructure:"chrome_bottom" toml:"chrome_bottom" json:"chrome_bottom" jsonschema:"minimum=0,default=134"`
	// SideInset is the fixed right-hand margin.
	SideInset int `mapstructure:"side_inset" toml:"side_inset" json:"side_inset" jsonschema:"minimum=0,default=16"`
	// SeparatorWidth is the width of the panel drag strip.
	SeparatorWidth int `mapstructure:"separator_width" toml:"separator_width" json:"separator_width" jsonschema:"minimum=0,default=2"`
}

// SidebarConfig controls side panel widths.
type SidebarConfig struct {
	DefaultWidth int `mapstructure:"default_width" toml:"default_width" json:"default_width" jsonschema:"minimum=1,default=800"`
	MinWidth     int `mapstructure:"min_width" toml:"min_width" json:"min_width" jsonschema:"minimum=1,default=100"`
}

// WindowConfig sizes new host windows.
type WindowConfig struct {
	Width     int `mapstructure:"width" toml:"width" json:"width" jsonschema:"minimum=1,default=1820"`
	Height    int `mapstructure:"height" toml:"height" json:"height" jsonschema:"minimum=1,default=980"`
	MinWidth  int `mapstructure:"min_width" toml:"min_width" json:"min_width" jsonschema:"minimum=0,default=640"`
	MinHeight int `mapstructure:"min_height" toml:"min_height" json:"min_height" jsonschema:"minimum=0,default=640"`
}

// FocusConfig controls how the chrome keeps input focus from new views.
type FocusConfig struct {
	// ReassertOnFirstPaint requests address bar focus again once a new view painted.
	ReassertOnFirstPaint bool `mapstructure:"reassert_on_first_paint" toml:"reassert_on_first_paint" json:"reassert_on_first_paint" jsonschema:"default=true"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" toml:"level" json:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error,default=info"`
	Format string `mapstructure:"format" toml:"format" json:"format" jsonschema:"enum=console,enum=json,default=console"`
	// LogDir enables rotated JSON log files in this directory. Empty disables them.
	LogDir     string `mapstructure:"log_dir" toml:"log_dir" json:"log_dir,omitempty"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" toml:"max_size_mb" json:"max_size_mb" jsonschema:"minimum=1,default=10"`
	MaxBackups int    `mapstructure:"max_backups" toml:"max_backups" json:"max_backups" jsonschema:"minimum=0,default=3"`
	MaxAgeDays int    `mapstructure:"max_age_days" toml:"max_age_days" json:"max_age_days" jsonschema:"minimum=0,default=7"`
	Compress   bool   `mapstructure:"compress" toml:"compress" json:"compress" jsonschema:"default=true"`
}

// Chrome returns the geometry reservation described by the layout section.
func (c *Config) Chrome() geometry.Chrome {
	return geometry.Chrome{
		Top:            c.Layout.ChromeTop,
		Bottom:         c.Layout.ChromeBottom,
		SideInset:      c.Layout.SideInset,
		SeparatorWidth: c.Layout.SeparatorWidth,
	}
}

// PanelLimits returns the side panel width limits.
func (c *Config) PanelLimits() usecase.PanelLimits {
	return usecase.PanelLimits{
		DefaultWidth: c.Sidebar.DefaultWidth,
		MinWidth:     c.Sidebar.MinWidth,
		SideInset:    c.Layout.SideInset,
	}
}

// WindowOptions returns the options used for new host windows.
func (c *Config) WindowOptions() port.WindowOptions {
	return port.WindowOptions{
		Bounds:    geometry.Bounds{Width: c.Window.Width, Height: c.Window.Height},
		MinBounds: geometry.Bounds{Width: c.Window.MinWidth, Height: c.Window.MinHeight},
	}
}

// LogConfig returns the logger configuration.
func (c *Config) LogConfig() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = logging.ParseLevel(c.Logging.Level)
	if c.Logging.Format != "" {
		cfg.Format = c.Logging.Format
	}
	return cfg
}

// LogFileConfig returns the rotated log file settings.
func (c *Config) LogFileConfig() logging.FileConfig {
	return logging.FileConfig{
		Dir:           c.Logging.LogDir,
		MaxSizeMB:     c.Logging.MaxSizeMB,
		MaxBackups:    c.Logging.MaxBackups,
		MaxAgeDays:    c.Logging.MaxAgeDays,
		Compress:      c.Logging.Compress,
		WriteToStderr: true,
	}
}
