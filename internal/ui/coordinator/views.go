package coordinator

import (
	"context"
	"fmt"
	"iter"

	"github.com/bnema/chromic/internal/application/port"
	"github.com/bnema/chromic/internal/application/usecase"
	"github.com/bnema/chromic/internal/domain/entity"
	"github.com/bnema/chromic/internal/domain/geometry"
	"github.com/bnema/chromic/internal/logging"
	"github.com/bnema/chromic/internal/ui/adapter"
	"github.com/bnema/chromic/internal/ui/events"
)

// ViewCoordinator is the view registry: it owns every view, the surface
// backing it and the active view of each window.
type ViewCoordinator struct {
	ctx      context.Context
	viewsUC  *usecase.ManageViewsUseCase
	views    *entity.ViewList
	adapters map[entity.ViewID]*adapter.SurfaceAdapter
	surfaces port.SurfaceFactory
	windows  *WindowController
	panels   *PanelCoordinator
	router   *events.Router
	post     func(func())

	chrome            geometry.Chrome
	focusOnFirstPaint bool
}

// ViewCoordinatorConfig holds configuration for ViewCoordinator.
type ViewCoordinatorConfig struct {
	ViewsUC  *usecase.ManageViewsUseCase
	Views    *entity.ViewList
	Surfaces port.SurfaceFactory
	Windows  *WindowController
	Panels   *PanelCoordinator
	Router   *events.Router
	Post     func(func())
	Chrome   geometry.Chrome
	// FocusOnFirstPaint re-asserts chrome focus once a new view painted.
	FocusOnFirstPaint bool
}

// NewViewCoordinator creates a new ViewCoordinator.
func NewViewCoordinator(ctx context.Context, cfg ViewCoordinatorConfig) *ViewCoordinator {
	ctx = logging.WithComponent(ctx, "views")
	logging.FromContext(ctx).Debug().Msg("creating view coordinator")

	views := cfg.Views
	if views == nil {
		views = entity.NewViewList()
	}

	c := &ViewCoordinator{
		ctx:               ctx,
		viewsUC:           cfg.ViewsUC,
		views:             views,
		adapters:          make(map[entity.ViewID]*adapter.SurfaceAdapter),
		surfaces:          cfg.Surfaces,
		windows:           cfg.Windows,
		panels:            cfg.Panels,
		router:            cfg.Router,
		post:              cfg.Post,
		chrome:            cfg.Chrome,
		focusOnFirstPaint: cfg.FocusOnFirstPaint,
	}
	if c.panels != nil {
		c.panels.SetViews(c)
	}
	return c
}

// SetChrome changes the reserved chrome area. Takes effect on the next layout.
func (c *ViewCoordinator) SetChrome(chrome geometry.Chrome) {
	c.chrome = chrome
}

// Chrome returns the reserved chrome area.
func (c *ViewCoordinator) Chrome() geometry.Chrome {
	return c.chrome
}

// SetFocusOnFirstPaint toggles the first-paint focus re-assertion.
func (c *ViewCoordinator) SetFocusOnFirstPaint(enabled bool) {
	c.focusOnFirstPaint = enabled
}

// Create opens a new view in windowID, loads rawURL (or the home page) and
// activates it.
func (c *ViewCoordinator) Create(ctx context.Context, windowID entity.WindowID, rawURL string) (entity.ViewID, error) {
	log := logging.FromContext(ctx)

	if _, ok := c.windows.Get(windowID); !ok {
		return "", fmt.Errorf("create view: %s: %w", windowID, entity.ErrWindowNotFound)
	}

	surface, err := c.surfaces.Create(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to create content surface")
		return "", fmt.Errorf("create view surface: %w", err)
	}

	view, err := c.viewsUC.Create(ctx, usecase.CreateViewInput{
		Views:    c.views,
		WindowID: windowID,
		URL:      rawURL,
	})
	if err != nil {
		surface.Destroy()
		return "", err
	}

	id := view.ID
	a := adapter.NewSurfaceAdapter(logging.WithViewID(c.ctx, string(id)), surface, c.post, func(p entity.Patch) {
		c.applyPatch(id, p)
	})
	c.adapters[id] = a

	// The surface grabs input focus while it loads; hand it back to the
	// chrome on the next tick and again after the first paint.
	c.post(func() { c.requestFocus(id) })
	if c.focusOnFirstPaint {
		a.OnceFirstPaint(func() { c.post(func() { c.requestFocus(id) }) })
	}

	if err := a.Navigate(ctx, view.URL); err != nil {
		log.Warn().Err(err).Str("view_id", string(id)).Msg("initial load failed")
	}

	c.router.Updated(windowID, id, entity.Patch{URL: entity.Ptr(view.URL), Title: entity.Ptr(view.Title)})

	if err := c.Activate(ctx, windowID, id); err != nil {
		return "", err
	}

	log.Info().
		Str("view_id", string(id)).
		Str("window_id", string(windowID)).
		Str("url", view.URL).
		Msg("view created")

	return id, nil
}

// Activate makes viewID the only visible view of windowID and restores its
// side panel.
func (c *ViewCoordinator) Activate(ctx context.Context, windowID entity.WindowID, viewID entity.ViewID) error {
	log := logging.FromContext(ctx)

	w, ok := c.windows.Get(windowID)
	if !ok {
		return fmt.Errorf("activate %s: %s: %w", viewID, windowID, entity.ErrWindowNotFound)
	}
	target, ok := c.adapters[viewID]
	if !ok {
		return fmt.Errorf("activate %s: %w", viewID, entity.ErrViewNotFound)
	}

	if _, err := c.viewsUC.Activate(ctx, c.views, windowID, viewID); err != nil {
		return err
	}

	for _, v := range c.views.InWindow(windowID) {
		if a := c.adapters[v.ID]; a != nil {
			w.Detach(a.Surface())
		}
	}
	c.panels.HideAll(windowID)
	w.Attach(target.Surface())
	c.panels.Show(ctx, windowID, viewID)

	c.Relayout(ctx, windowID)
	c.router.Activated(windowID, viewID)

	log.Debug().Str("view_id", string(viewID)).Str("window_id", string(windowID)).Msg("view activated")
	return nil
}

// Close destroys a view and its side panel. Closing an unknown view is a no-op.
// When the active view closes, the most recently created remaining view of
// the same window becomes active.
func (c *ViewCoordinator) Close(ctx context.Context, viewID entity.ViewID) error {
	return c.close(ctx, viewID, true)
}

func (c *ViewCoordinator) close(ctx context.Context, viewID entity.ViewID, reactivate bool) error {
	ctx = logging.WithViewID(ctx, string(viewID))
	log := logging.FromContext(ctx)

	view := c.views.Find(viewID)
	if view == nil {
		log.Debug().Msg("view already closed")
		return nil
	}
	windowID := view.WindowID

	c.panels.Close(ctx, viewID)

	if a, ok := c.adapters[viewID]; ok {
		if w, ok := c.windows.Get(windowID); ok {
			w.Detach(a.Surface())
		}
		a.Destroy()
		delete(c.adapters, viewID)
	}

	out, err := c.viewsUC.Close(ctx, c.views, viewID)
	if err != nil {
		return err
	}
	c.router.Closed(windowID, viewID)

	log.Info().
		Str("window_id", string(windowID)).
		Bool("was_active", out.WasActive).
		Str("next_active", string(out.NextActive)).
		Msg("view closed")

	if out.WasActive && reactivate && out.NextActive != "" {
		return c.Activate(ctx, windowID, out.NextActive)
	}
	return nil
}

// CloseWindowViews closes every view owned by a window without activating
// replacements. Used when the window itself goes away.
func (c *ViewCoordinator) CloseWindowViews(ctx context.Context, windowID entity.WindowID) {
	c.views.SetActive(windowID, "")
	for _, v := range c.views.InWindow(windowID) {
		if err := c.close(ctx, v.ID, false); err != nil {
			logging.FromContext(ctx).Warn().Err(err).Str("view_id", string(v.ID)).Msg("failed to close view with its window")
		}
	}
}

// Navigate loads rawURL in a view.
func (c *ViewCoordinator) Navigate(ctx context.Context, viewID entity.ViewID, rawURL string) error {
	a, err := c.adapter(viewID)
	if err != nil {
		return err
	}
	return a.Navigate(ctx, rawURL)
}

// NavigateActive loads rawURL in the active view of a window.
func (c *ViewCoordinator) NavigateActive(ctx context.Context, windowID entity.WindowID, rawURL string) error {
	active := c.views.Active(windowID)
	if active == "" {
		return fmt.Errorf("navigate active view of %s: %w", windowID, entity.ErrViewNotFound)
	}
	return c.Navigate(ctx, active, rawURL)
}

// GoBack navigates a view back. No-op when its history is exhausted.
func (c *ViewCoordinator) GoBack(ctx context.Context, viewID entity.ViewID) error {
	a, err := c.adapter(viewID)
	if err != nil {
		return err
	}
	return a.GoBack(ctx)
}

// GoForward navigates a view forward. No-op when its history is exhausted.
func (c *ViewCoordinator) GoForward(ctx context.Context, viewID entity.ViewID) error {
	a, err := c.adapter(viewID)
	if err != nil {
		return err
	}
	return a.GoForward(ctx)
}

// Reload reloads a view.
func (c *ViewCoordinator) Reload(ctx context.Context, viewID entity.ViewID) error {
	a, err := c.adapter(viewID)
	if err != nil {
		return err
	}
	return a.Reload(ctx)
}

// TearOff moves a view, with its side panel, into a new window where it
// becomes active. The new window receives a tabs.sync snapshot; the old
// window sees the view as closed and activates a replacement.
func (c *ViewCoordinator) TearOff(ctx context.Context, viewID entity.ViewID) (entity.WindowID, error) {
	log := logging.FromContext(ctx)

	view := c.views.Find(viewID)
	a, ok := c.adapters[viewID]
	if view == nil || !ok {
		return "", fmt.Errorf("tear off %s: %w", viewID, entity.ErrViewNotFound)
	}
	from := view.WindowID

	nw, err := c.windows.Open(ctx)
	if err != nil {
		return "", fmt.Errorf("tear off %s: %w", viewID, err)
	}

	out, err := c.viewsUC.Move(ctx, c.views, viewID, nw.ID())
	if err != nil {
		c.windows.Close(ctx, nw.ID())
		return "", fmt.Errorf("tear off %s: %w", viewID, err)
	}

	c.panels.hideIn(from, viewID)
	if old, ok := c.windows.Get(from); ok {
		old.Detach(a.Surface())
	}

	if err := c.Activate(ctx, nw.ID(), viewID); err != nil {
		c.abortTearOff(ctx, viewID, from, nw, out.WasActive)
		return "", fmt.Errorf("tear off %s: %w", viewID, err)
	}

	c.router.Closed(from, viewID)
	if out.WasActive {
		if out.NextActive != "" {
			if err := c.Activate(ctx, from, out.NextActive); err != nil {
				log.Warn().Err(err).Msg("failed to activate replacement view")
			}
		} else {
			c.Relayout(ctx, from)
		}
	}
	c.router.Sync(nw.ID(), c.viewsUC.Snapshot(c.views, nw.ID()))

	log.Info().
		Str("view_id", string(viewID)).
		Str("from", string(from)).
		Str("to", string(nw.ID())).
		Msg("view torn off")

	return nw.ID(), nil
}

// abortTearOff returns a view to the window it was torn from and closes the
// window opened for it.
func (c *ViewCoordinator) abortTearOff(ctx context.Context, viewID entity.ViewID, from entity.WindowID, nw port.HostWindow, wasActive bool) {
	log := logging.FromContext(ctx)

	if a, ok := c.adapters[viewID]; ok {
		nw.Detach(a.Surface())
	}
	c.panels.hideIn(nw.ID(), viewID)

	if _, err := c.viewsUC.Move(ctx, c.views, viewID, from); err != nil {
		log.Warn().Err(err).Str("view_id", string(viewID)).Msg("failed to return torn-off view")
	}
	c.windows.Close(ctx, nw.ID())

	if wasActive {
		if err := c.Activate(ctx, from, viewID); err != nil {
			log.Warn().Err(err).Str("view_id", string(viewID)).Msg("failed to reactivate view after tear-off")
		}
	}
}

// List yields (id, url, title, window) rows for every view, reading the
// live registry each time it is ranged over.
func (c *ViewCoordinator) List() iter.Seq[entity.ViewInfo] {
	return c.views.All()
}

// Snapshot returns the views of a window, or of every window when windowID is empty.
func (c *ViewCoordinator) Snapshot(windowID entity.WindowID) []entity.ViewInfo {
	return c.viewsUC.Snapshot(c.views, windowID)
}

// Active returns the active view of a window, or "".
func (c *ViewCoordinator) Active(windowID entity.WindowID) entity.ViewID {
	return c.views.Active(windowID)
}

// Get returns a copy of a view's metadata.
func (c *ViewCoordinator) Get(viewID entity.ViewID) (entity.View, bool) {
	v := c.views.Find(viewID)
	if v == nil {
		return entity.View{}, false
	}
	return *v, true
}

// WindowOf returns the window owning a view.
func (c *ViewCoordinator) WindowOf(viewID entity.ViewID) (entity.WindowID, bool) {
	v := c.views.Find(viewID)
	if v == nil {
		return "", false
	}
	return v.WindowID, true
}

// IsActive reports whether a view is the active view of its window.
func (c *ViewCoordinator) IsActive(viewID entity.ViewID) bool {
	v := c.views.Find(viewID)
	return v != nil && c.views.Active(v.WindowID) == viewID
}

// Relayout positions the active view of a window and its side panel using
// the window's current bounds.
func (c *ViewCoordinator) Relayout(ctx context.Context, windowID entity.WindowID) {
	w, ok := c.windows.Get(windowID)
	if !ok {
		return
	}
	active := c.views.Active(windowID)
	a, ok := c.adapters[active]
	if !ok {
		return
	}

	bounds := w.Bounds()
	frame := geometry.Layout(bounds, c.chrome, c.panels.LayoutWidth(active, bounds.Width))
	a.Surface().SetBounds(frame.Main)
	c.panels.Place(active, frame)

	logging.FromContext(ctx).Trace().
		Str("window_id", string(windowID)).
		Str("view_id", string(active)).
		Int("main_width", frame.Main.Width).
		Bool("panel", frame.HasPanel).
		Msg("layout applied")
}

// Destroy closes every view.
func (c *ViewCoordinator) Destroy(ctx context.Context) {
	for info := range c.views.All() {
		c.views.SetActive(info.WindowID, "")
	}
	for _, info := range c.Snapshot("") {
		_ = c.close(ctx, info.ID, false)
	}
}

func (c *ViewCoordinator) adapter(viewID entity.ViewID) (*adapter.SurfaceAdapter, error) {
	a, ok := c.adapters[viewID]
	if !ok {
		return nil, fmt.Errorf("view %s: %w", viewID, entity.ErrViewNotFound)
	}
	return a, nil
}

func (c *ViewCoordinator) applyPatch(viewID entity.ViewID, patch entity.Patch) {
	view, ok := c.viewsUC.ApplyPatch(c.views, viewID, patch)
	if !ok {
		return
	}
	c.router.Updated(view.WindowID, viewID, patch)
}

// requestFocus reads the view's current window at fire time; a view closed
// in the meantime is skipped.
func (c *ViewCoordinator) requestFocus(viewID entity.ViewID) {
	windowID, ok := c.WindowOf(viewID)
	if !ok {
		return
	}
	c.router.Focus(windowID, viewID)
}
