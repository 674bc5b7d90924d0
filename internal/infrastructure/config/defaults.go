package config

import "github.com/bnema/chromic/internal/domain/geometry"

// DefaultConfig returns the stock configuration.
func DefaultConfig() *Config {
	return &Config{
		Layout: LayoutConfig{
			ChromeTop:      geometry.DefaultChromeTop,
			ChromeBottom:   geometry.DefaultChromeBottom,
			SideInset:      geometry.DefaultSideInset,
			SeparatorWidth: geometry.DefaultSeparatorWidth,
		},
		Sidebar: SidebarConfig{
			DefaultWidth: 800,
			MinWidth:     geometry.MinPanelWidth,
		},
		Window: WindowConfig{
			Width:     1820,
			Height:    980,
			MinWidth:  640,
			MinHeight: 640,
		},
		HomePage: "chromic://home",
		Focus: FocusConfig{
			ReassertOnFirstPaint: true,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 7,
			Compress:   true,
		},
	}
}
