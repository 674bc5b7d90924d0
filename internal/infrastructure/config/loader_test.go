package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/chromic/internal/domain/geometry"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestSetDefaults(t *testing.T) {
	mgr := &Manager{viper: viper.New()}
	mgr.setDefaults()

	assert.Equal(t, 118, mgr.viper.GetInt("layout.chrome_top"))
	assert.Equal(t, 800, mgr.viper.GetInt("sidebar.default_width"))
	assert.Equal(t, "chromic://home", mgr.viper.GetString("home_page"))
	assert.True(t, mgr.viper.GetBool("focus.reassert_on_first_paint"))
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	mgr, err := NewManagerForFile(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)

	require.NoError(t, mgr.Load())

	assert.Equal(t, DefaultConfig(), mgr.Get())
	assert.Equal(t, geometry.DefaultChrome(), mgr.Get().Chrome())
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
home_page = "https://start.example"

[layout]
chrome_top = 90

[sidebar]
default_width = 420

[logging]
level = "DEBUG"
format = "text"
`)
	mgr, err := NewManagerForFile(path)
	require.NoError(t, err)

	require.NoError(t, mgr.Load())
	cfg := mgr.Get()

	assert.Equal(t, "https://start.example", cfg.HomePage)
	assert.Equal(t, 90, cfg.Layout.ChromeTop)
	assert.Equal(t, 134, cfg.Layout.ChromeBottom)
	assert.Equal(t, 420, cfg.PanelLimits().DefaultWidth)
	assert.Equal(t, 100, cfg.PanelLimits().MinWidth)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, path, mgr.ConfigFile())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "[window]\nwidth = 1200\n")
	t.Setenv("CHROMIC_WINDOW_WIDTH", "1500")
	t.Setenv("CHROMIC_LOG_LEVEL", "warn")

	mgr, err := NewManagerForFile(path)
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	opts := mgr.Get().WindowOptions()
	assert.Equal(t, geometry.Bounds{Width: 1500, Height: 980}, opts.Bounds)
	assert.Equal(t, geometry.Bounds{Width: 640, Height: 640}, opts.MinBounds)
	assert.Equal(t, "warn", mgr.Get().Logging.Level)
}

func TestLoad_InvalidValuesRejected(t *testing.T) {
	path := writeConfig(t, "[window]\nheight = 0\n[sidebar]\nmin_width = 0\n")
	mgr, err := NewManagerForFile(path)
	require.NoError(t, err)

	err = mgr.Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "window.width and window.height must be positive")
	assert.Contains(t, err.Error(), "sidebar.min_width must be at least 1")
}

func TestLoad_MalformedFile(t *testing.T) {
	path := writeConfig(t, "[layout\nchrome_top = ")
	mgr, err := NewManagerForFile(path)
	require.NoError(t, err)

	err = mgr.Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestNormalizeConfig_EmptyHomePage(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HomePage = "   "

	normalizeConfig(cfg)

	assert.Equal(t, "chromic://home", cfg.HomePage)
}
