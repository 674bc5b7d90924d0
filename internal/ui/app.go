package ui

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/bnema/chromic/internal/app/messaging"
	"github.com/bnema/chromic/internal/application/usecase"
	"github.com/bnema/chromic/internal/domain/entity"
	"github.com/bnema/chromic/internal/infrastructure/config"
	"github.com/bnema/chromic/internal/logging"
	"github.com/bnema/chromic/internal/ui/coordinator"
	"github.com/bnema/chromic/internal/ui/events"
	"github.com/bnema/chromic/internal/ui/mainloop"
)

// App is the application context: it owns the loop, the router, the
// coordinators and the windows. Unless stated otherwise its methods must run
// on the loop (or before Run started it).
type App struct {
	deps *Dependencies
	ctx  context.Context
	loop *mainloop.Loop

	router   *events.Router
	viewsUC  *usecase.ManageViewsUseCase
	panelsUC *usecase.ManagePanelsUseCase

	// Coordinators
	windows *coordinator.WindowController
	views   *coordinator.ViewCoordinator
	panels  *coordinator.PanelCoordinator

	dispatcher *messaging.Dispatcher

	// lifecycle
	done     chan struct{}
	doneOnce sync.Once
	cancel   context.CancelCauseFunc
}

// New creates a new App with the given dependencies.
func New(deps *Dependencies) (*App, error) {
	if err := deps.Validate(); err != nil {
		return nil, err
	}
	if deps.IDGenerator == nil {
		deps.IDGenerator = uuid.NewString
	}

	ctx, cancel := context.WithCancelCause(deps.Ctx)
	cfg := deps.Config

	app := &App{
		deps:     deps,
		ctx:      ctx,
		loop:     deps.Loop,
		router:   events.NewRouter(ctx),
		viewsUC:  usecase.NewManageViewsUseCase(deps.IDGenerator, cfg.HomePage),
		panelsUC: usecase.NewManagePanelsUseCase(cfg.PanelLimits()),
		done:     make(chan struct{}),
		cancel:   cancel,
	}

	app.initCoordinators(ctx)

	app.dispatcher = messaging.NewDispatcher()
	if err := messaging.RegisterAll(app.dispatcher, app.views, app.panels); err != nil {
		cancel(err)
		return nil, err
	}

	return app, nil
}

// initCoordinators creates the coordinators and wires their callbacks.
func (a *App) initCoordinators(ctx context.Context) {
	log := logging.FromContext(ctx)
	log.Debug().Msg("initializing coordinators")
	cfg := a.deps.Config

	// 1. Window controller (no dependencies on other coordinators)
	a.windows = coordinator.NewWindowController(ctx, coordinator.WindowControllerConfig{
		Factory:     a.deps.Windows,
		IDGenerator: a.deps.IDGenerator,
		Options:     cfg.WindowOptions(),
		Post:        a.loop.Post,
	})

	// 2. Panel manager (views are injected by the view registry)
	a.panels = coordinator.NewPanelCoordinator(ctx, coordinator.PanelCoordinatorConfig{
		PanelsUC: a.panelsUC,
		Surfaces: a.deps.Surfaces,
		Windows:  a.windows,
		Post:     a.loop.Post,
	})

	// 3. View registry
	a.views = coordinator.NewViewCoordinator(ctx, coordinator.ViewCoordinatorConfig{
		ViewsUC:           a.viewsUC,
		Surfaces:          a.deps.Surfaces,
		Windows:           a.windows,
		Panels:            a.panels,
		Router:            a.router,
		Post:              a.loop.Post,
		Chrome:            cfg.Chrome(),
		FocusOnFirstPaint: cfg.Focus.ReassertOnFirstPaint,
	})

	a.windows.SetRelayout(a.views.Relayout)
	a.windows.SetOnClosed(a.views.CloseWindowViews)
	a.windows.SetOnLastClosed(a.onLastWindowClosed)

	log.Debug().Msg("coordinators initialized")
}

// Start opens the main window with one view on the home page.
func (a *App) Start(ctx context.Context) (entity.ViewID, error) {
	log := logging.FromContext(ctx)

	if _, err := a.windows.OpenMain(ctx); err != nil {
		return "", err
	}
	id, err := a.views.Create(ctx, coordinator.MainWindowID, "")
	if err != nil {
		return "", err
	}

	log.Info().Str("view_id", string(id)).Msg("application started")
	return id, nil
}

// Run drives the loop until ctx is done or the last window closed. Safe from
// any goroutine; it is the only goroutine that runs loop tasks.
func (a *App) Run(ctx context.Context) error {
	stop := make(chan struct{})
	defer close(stop)

	go func() {
		select {
		case <-a.done:
			a.loop.Close()
		case <-ctx.Done():
		case <-stop:
		}
	}()

	return a.loop.Run(ctx)
}

// Dispatch runs a command on the calling goroutine, which must be the loop.
func (a *App) Dispatch(ctx context.Context, req messaging.Request) messaging.Response {
	return a.dispatcher.Dispatch(ctx, req)
}

// Execute runs a command on the loop and waits for its response. Safe from
// any goroutine other than the loop.
func (a *App) Execute(ctx context.Context, req messaging.Request) messaging.Response {
	var resp messaging.Response
	err := a.loop.Invoke(ctx, func() error {
		resp = a.dispatcher.Dispatch(ctx, req)
		return nil
	})
	if err != nil {
		return messaging.Response{ID: req.ID, Error: err.Error()}
	}
	return resp
}

// AttachUI connects a UI sink to the events of one window (all windows when
// windowID is empty) and pushes the window's current snapshot to it. The
// returned function detaches the sink.
func (a *App) AttachUI(windowID entity.WindowID, sink messaging.Sink) (detach func()) {
	bridge := messaging.NewBridge(a.router, windowID, sink)

	if windowID != "" {
		a.router.Sync(windowID, a.views.Snapshot(windowID))
	} else {
		for _, id := range a.windows.IDs() {
			a.router.Sync(id, a.views.Snapshot(id))
		}
	}

	logging.FromContext(a.ctx).Debug().Str("window_id", string(windowID)).Msg("ui attached")
	return bridge.Close
}

// ApplyConfig re-applies the runtime parts of a configuration: chrome
// offsets, panel limits, home page, focus behavior and new window options.
// Every window is laid out again.
func (a *App) ApplyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	a.deps.Config = cfg
	a.views.SetChrome(cfg.Chrome())
	a.views.SetFocusOnFirstPaint(cfg.Focus.ReassertOnFirstPaint)
	a.viewsUC.SetHomePage(cfg.HomePage)
	a.panelsUC.SetLimits(cfg.PanelLimits())
	a.windows.SetOptions(cfg.WindowOptions())
	a.windows.RequestLayoutAll()

	logging.FromContext(a.ctx).Info().Msg("configuration applied")
}

// Shutdown closes every window and releases the coordinators. The loop stops
// once the queued tasks ran.
func (a *App) Shutdown(ctx context.Context) {
	log := logging.FromContext(ctx)
	log.Debug().Msg("application shutting down")

	a.windows.CloseAll(ctx)
	a.views.Destroy(ctx)
	a.panels.Destroy(ctx)
	a.windows.Destroy()

	a.cancel(errors.New("application shutdown"))
	a.markDone()
	a.loop.Close()

	log.Info().Msg("application shutdown complete")
}

// Done is closed once the last window closed or Shutdown ran. Safe from any goroutine.
func (a *App) Done() <-chan struct{} {
	return a.done
}

// Loop returns the main loop.
func (a *App) Loop() *mainloop.Loop { return a.loop }

// Router returns the event router.
func (a *App) Router() *events.Router { return a.router }

// Views returns the view registry.
func (a *App) Views() *coordinator.ViewCoordinator { return a.views }

// Panels returns the side panel manager.
func (a *App) Panels() *coordinator.PanelCoordinator { return a.panels }

// Windows returns the host window controller.
func (a *App) Windows() *coordinator.WindowController { return a.windows }

// Commands returns the registered command names.
func (a *App) Commands() []string { return a.dispatcher.Commands() }

func (a *App) onLastWindowClosed() {
	logging.FromContext(a.ctx).Info().Msg("last window closed")
	a.markDone()
}

func (a *App) markDone() {
	a.doneOnce.Do(func() { close(a.done) })
}
