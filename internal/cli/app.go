// Package cli holds what the chromic commands share: configuration, the
// styled output theme and the headless session runner.
package cli

import (
	"context"
	"fmt"

	"github.com/bnema/chromic/internal/cli/styles"
	"github.com/bnema/chromic/internal/domain/build"
	"github.com/bnema/chromic/internal/infrastructure/config"
	"github.com/bnema/chromic/internal/logging"
)

// App holds CLI dependencies.
type App struct {
	Config        *config.Config
	ConfigManager *config.Manager
	Theme         *styles.Theme
	BuildInfo     build.Info

	// Context with logger
	ctx        context.Context
	logCleanup func()
}

// NewApp loads the configuration (from configFile when set, from the XDG
// location otherwise) and builds the logger it describes.
func NewApp(configFile string) (*App, error) {
	var (
		mgr *config.Manager
		err error
	)
	if configFile != "" {
		mgr, err = config.NewManagerForFile(configFile)
	} else {
		mgr, err = config.NewManager()
	}
	if err != nil {
		return nil, fmt.Errorf("create config manager: %w", err)
	}
	if err := mgr.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg := mgr.Get()

	logger, logCleanup, err := logging.NewWithFile(cfg.LogConfig(), cfg.LogFileConfig())
	if err != nil {
		logger.Warn().Err(err).Msg("file logging disabled")
	}
	sessionID := logging.GenerateSessionID()
	ctx := logging.WithSessionID(logging.WithContext(context.Background(), logger), sessionID)
	logging.FromContext(ctx).Debug().
		Str("config_file", mgr.ConfigFile()).
		Str("session_id", sessionID).
		Msg("configuration loaded")

	return &App{
		Config:        cfg,
		ConfigManager: mgr,
		Theme:         styles.NewTheme(),
		ctx:           ctx,
		logCleanup:    logCleanup,
	}, nil
}

// Close releases all resources.
func (a *App) Close() error {
	if a.logCleanup != nil {
		a.logCleanup()
	}
	return nil
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}
