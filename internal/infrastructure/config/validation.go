package config

import (
	"fmt"
	"strings"
)

// validateConfig performs validation of configuration values
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateLayout(config)...)
	validationErrors = append(validationErrors, validateSidebar(config)...)
	validationErrors = append(validationErrors, validateWindow(config)...)
	validationErrors = append(validationErrors, validateLogging(config)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}

	return nil
}

func validateLayout(config *Config) []string {
	var validationErrors []string
	for key, v := range map[string]int{
		"layout.chrome_top":      config.Layout.ChromeTop,
		"layout.chrome_bottom":   config.Layout.ChromeBottom,
		"layout.side_inset":      config.Layout.SideInset,
		"layout.separator_width": config.Layout.SeparatorWidth,
	} {
		if v < 0 {
			validationErrors = append(validationErrors, fmt.Sprintf("%s must be non-negative (got: %d)", key, v))
		}
	}
	return validationErrors
}

func validateSidebar(config *Config) []string {
	var validationErrors []string
	if config.Sidebar.MinWidth < 1 {
		validationErrors = append(validationErrors, fmt.Sprintf(
			"sidebar.min_width must be at least 1 (got: %d)", config.Sidebar.MinWidth))
	}
	if config.Sidebar.DefaultWidth < config.Sidebar.MinWidth {
		validationErrors = append(validationErrors, fmt.Sprintf(
			"sidebar.default_width must be >= sidebar.min_width (got: %d < %d)",
			config.Sidebar.DefaultWidth, config.Sidebar.MinWidth))
	}
	return validationErrors
}

func validateWindow(config *Config) []string {
	var validationErrors []string
	if config.Window.Width <= 0 || config.Window.Height <= 0 {
		validationErrors = append(validationErrors, fmt.Sprintf(
			"window.width and window.height must be positive (got: %dx%d)",
			config.Window.Width, config.Window.Height))
	}
	if config.Window.MinWidth < 0 || config.Window.MinHeight < 0 {
		validationErrors = append(validationErrors, "window.min_width and window.min_height must be non-negative")
	}
	return validationErrors
}

func validateLogging(config *Config) []string {
	var validationErrors []string
	switch config.Logging.Level {
	case "trace", "debug", "info", "warn", "error", "":
	default:
		validationErrors = append(validationErrors, fmt.Sprintf(
			"logging.level must be one of: trace, debug, info, warn, error (got: %s)",
			config.Logging.Level,
		))
	}
	switch config.Logging.Format {
	case "json", "console", "":
	default:
		validationErrors = append(validationErrors, fmt.Sprintf(
			"logging.format must be one of: json, console (got: %s)",
			config.Logging.Format,
		))
	}
	if config.Logging.LogDir != "" && config.Logging.MaxSizeMB < 1 {
		validationErrors = append(validationErrors, "logging.max_size_mb must be at least 1 when logging.log_dir is set")
	}
	if config.Logging.MaxBackups < 0 || config.Logging.MaxAgeDays < 0 {
		validationErrors = append(validationErrors, "logging.max_backups and logging.max_age_days must be non-negative")
	}
	return validationErrors
}
