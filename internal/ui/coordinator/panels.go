package coordinator

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/chromic/internal/application/port"
	"github.com/bnema/chromic/internal/application/usecase"
	"github.com/bnema/chromic/internal/domain/entity"
	"github.com/bnema/chromic/internal/domain/geometry"
	"github.com/bnema/chromic/internal/domain/url"
	"github.com/bnema/chromic/internal/logging"
	"github.com/bnema/chromic/internal/ui/adapter"
)

const (
	// PlaceholderCSS is injected into a panel before its source loads.
	PlaceholderCSS = "body { margin:0; overflow:auto; }"
	// SeparatorCSS styles the drag strip left of a panel.
	SeparatorCSS = "html, body { margin:0; height:100%; background:#d0d0d0; cursor:col-resize; }"
)

// viewHost is the part of the view registry the panel manager needs.
type viewHost interface {
	WindowOf(viewID entity.ViewID) (entity.WindowID, bool)
	IsActive(viewID entity.ViewID) bool
	Relayout(ctx context.Context, windowID entity.WindowID)
}

type panelSurfaces struct {
	panel     *adapter.SurfaceAdapter
	separator *adapter.SurfaceAdapter
}

// PanelCoordinator is the side panel manager. Each view owns at most one
// panel; only the panel of a window's active view is ever composited.
type PanelCoordinator struct {
	ctx      context.Context
	panelsUC *usecase.ManagePanelsUseCase
	panels   *entity.PanelSet
	surfaces port.SurfaceFactory
	windows  *WindowController
	post     func(func())

	live  map[entity.ViewID]*panelSurfaces
	views viewHost
}

// PanelCoordinatorConfig holds configuration for PanelCoordinator.
type PanelCoordinatorConfig struct {
	PanelsUC *usecase.ManagePanelsUseCase
	Panels   *entity.PanelSet
	Surfaces port.SurfaceFactory
	Windows  *WindowController
	Post     func(func())
}

// NewPanelCoordinator creates a new PanelCoordinator.
func NewPanelCoordinator(ctx context.Context, cfg PanelCoordinatorConfig) *PanelCoordinator {
	ctx = logging.WithComponent(ctx, "panels")
	logging.FromContext(ctx).Debug().Msg("creating panel coordinator")

	panels := cfg.Panels
	if panels == nil {
		panels = entity.NewPanelSet()
	}

	return &PanelCoordinator{
		ctx:      ctx,
		panelsUC: cfg.PanelsUC,
		panels:   panels,
		surfaces: cfg.Surfaces,
		windows:  cfg.Windows,
		post:     cfg.Post,
		live:     make(map[entity.ViewID]*panelSurfaces),
	}
}

// SetViews sets the view registry used to resolve owners.
func (c *PanelCoordinator) SetViews(views viewHost) {
	c.views = views
}

// Open creates the side panel of viewID, replacing any existing one. The
// panel shows a styled blank placeholder until source loads. It is
// composited right away when viewID is active, otherwise it waits detached.
func (c *PanelCoordinator) Open(ctx context.Context, viewID entity.ViewID, source entity.PanelSource) error {
	log := logging.FromContext(ctx)

	windowID, ok := c.views.WindowOf(viewID)
	if !ok {
		return fmt.Errorf("open panel for %s: %w", viewID, entity.ErrViewNotFound)
	}

	c.Close(ctx, viewID)

	panel, _, err := c.panelsUC.Open(ctx, c.panels, viewID, source)
	if err != nil {
		return err
	}

	main, err := c.surfaces.Create(ctx)
	if err != nil {
		c.panelsUC.Close(c.panels, viewID)
		return fmt.Errorf("create panel surface: %w", err)
	}
	sep, err := c.surfaces.Create(ctx)
	if err != nil {
		main.Destroy()
		c.panelsUC.Close(c.panels, viewID)
		return fmt.Errorf("create separator surface: %w", err)
	}

	panelCtx := logging.WithViewID(c.ctx, string(viewID))
	ps := &panelSurfaces{
		panel:     adapter.NewSurfaceAdapter(panelCtx, main, c.post, nil),
		separator: adapter.NewSurfaceAdapter(panelCtx, sep, c.post, nil),
	}
	c.live[viewID] = ps

	ps.panel.OnceReady(func() {
		if c.live[viewID] != ps {
			return
		}
		if err := main.InjectCSS(panelCtx, PlaceholderCSS); err != nil {
			logging.FromContext(panelCtx).Warn().Err(err).Msg("failed to style panel placeholder")
		}
		if err := ps.panel.Load(panelCtx, source); err != nil {
			logging.FromContext(panelCtx).Warn().Err(err).Str("source", source.Value).Msg("failed to load panel source")
		}
	})
	ps.separator.OnceReady(func() {
		if c.live[viewID] != ps {
			return
		}
		if err := sep.InjectCSS(panelCtx, SeparatorCSS); err != nil {
			logging.FromContext(panelCtx).Warn().Err(err).Msg("failed to style separator")
		}
	})

	if err := ps.panel.Navigate(ctx, url.Blank); err != nil {
		log.Warn().Err(err).Msg("failed to load panel placeholder")
	}
	if err := ps.separator.Navigate(ctx, url.Blank); err != nil {
		log.Warn().Err(err).Msg("failed to load separator")
	}

	if c.views.IsActive(viewID) {
		c.attach(windowID, viewID)
		c.views.Relayout(ctx, windowID)
	}

	log.Info().
		Str("view_id", string(viewID)).
		Str("source", source.Value).
		Int("width", panel.Width).
		Bool("attached", panel.Attached).
		Msg("side panel opened")

	return nil
}

// Close destroys the panel of viewID and its separator. No-op when none exists.
func (c *PanelCoordinator) Close(ctx context.Context, viewID entity.ViewID) {
	panel := c.panelsUC.Close(c.panels, viewID)
	ps, ok := c.live[viewID]
	if panel == nil && !ok {
		return
	}
	delete(c.live, viewID)

	windowID, known := c.views.WindowOf(viewID)
	if ok {
		if w, found := c.windows.Get(windowID); known && found {
			w.Detach(ps.separator.Surface())
			w.Detach(ps.panel.Surface())
		}
		ps.separator.Destroy()
		ps.panel.Destroy()
	}

	if panel != nil && panel.Attached && known && c.views.IsActive(viewID) {
		c.views.Relayout(ctx, windowID)
	}

	logging.FromContext(ctx).Info().Str("view_id", string(viewID)).Msg("side panel closed")
}

// Toggle opens the panel when viewID has none and closes it otherwise.
// Returns whether a panel is open afterwards.
func (c *PanelCoordinator) Toggle(ctx context.Context, viewID entity.ViewID, source entity.PanelSource) (bool, error) {
	if c.Has(viewID) {
		c.Close(ctx, viewID)
		return false, nil
	}
	if err := c.Open(ctx, viewID, source); err != nil {
		return false, err
	}
	return true, nil
}

// Resize stores a clamped width and schedules one coalesced layout pass, so
// a burst of calls during a drag produces a single relayout with the last width.
func (c *PanelCoordinator) Resize(ctx context.Context, viewID entity.ViewID, width int) (int, error) {
	windowID, windowWidth, err := c.ownerWindow(viewID)
	if err != nil {
		return 0, err
	}
	stored, err := c.panelsUC.Resize(ctx, c.panels, viewID, width, windowWidth)
	if err != nil {
		return 0, err
	}
	c.scheduleLayout(windowID, viewID)
	return stored, nil
}

// Drag moves the separator by deltaX pixels and resizes like Resize.
func (c *PanelCoordinator) Drag(ctx context.Context, viewID entity.ViewID, deltaX int) (int, error) {
	windowID, windowWidth, err := c.ownerWindow(viewID)
	if err != nil {
		return 0, err
	}
	stored, err := c.panelsUC.Drag(ctx, c.panels, viewID, deltaX, windowWidth)
	if err != nil {
		return 0, err
	}
	c.scheduleLayout(windowID, viewID)
	return stored, nil
}

// Has reports whether viewID owns a panel.
func (c *PanelCoordinator) Has(viewID entity.ViewID) bool {
	return c.panels.Get(viewID) != nil
}

// Width returns the stored width, or the default width when viewID has no panel.
func (c *PanelCoordinator) Width(viewID entity.ViewID) int {
	return c.panelsUC.Width(c.panels, viewID)
}

// IsAttached reports whether the panel of viewID is composited.
func (c *PanelCoordinator) IsAttached(viewID entity.ViewID) bool {
	p := c.panels.Get(viewID)
	return p != nil && p.Attached
}

// Get returns a copy of the panel of viewID.
func (c *PanelCoordinator) Get(viewID entity.ViewID) (entity.SidePanel, bool) {
	p := c.panels.Get(viewID)
	if p == nil {
		return entity.SidePanel{}, false
	}
	return *p, true
}

// Count returns the number of registered panels.
func (c *PanelCoordinator) Count() int {
	return c.panels.Count()
}

// HideAll detaches every panel composited in windowID.
func (c *PanelCoordinator) HideAll(windowID entity.WindowID) {
	w, ok := c.windows.Get(windowID)
	if !ok {
		return
	}
	c.panels.Each(func(p *entity.SidePanel) {
		ps, live := c.live[p.ViewID]
		if !live {
			return
		}
		if owner, _ := c.views.WindowOf(p.ViewID); owner != windowID {
			return
		}
		w.Detach(ps.separator.Surface())
		w.Detach(ps.panel.Surface())
		p.Attached = false
	})
}

// Show composites the panel of viewID, if any, into windowID.
func (c *PanelCoordinator) Show(_ context.Context, windowID entity.WindowID, viewID entity.ViewID) {
	c.attach(windowID, viewID)
}

// Hide detaches the panel of viewID from its owner's window without
// destroying it.
func (c *PanelCoordinator) Hide(_ context.Context, viewID entity.ViewID) {
	windowID, _ := c.views.WindowOf(viewID)
	c.hideIn(windowID, viewID)
}

// hideIn detaches the panel of viewID from windowID, whatever window the
// view currently belongs to.
func (c *PanelCoordinator) hideIn(windowID entity.WindowID, viewID entity.ViewID) {
	p := c.panels.Get(viewID)
	ps, ok := c.live[viewID]
	if p == nil || !ok {
		return
	}
	if w, found := c.windows.Get(windowID); found {
		w.Detach(ps.separator.Surface())
		w.Detach(ps.panel.Surface())
	}
	p.Attached = false
}

// VisibleWidth returns the width to reserve for the panel of viewID, or 0
// when it has no composited panel.
func (c *PanelCoordinator) VisibleWidth(viewID entity.ViewID) int {
	p := c.panels.Get(viewID)
	if p == nil || !p.Attached {
		return 0
	}
	return p.Width
}

// LayoutWidth returns the width to reserve for the panel of viewID in a
// window windowWidth pixels wide, or 0 when it has no composited panel.
func (c *PanelCoordinator) LayoutWidth(viewID entity.ViewID, windowWidth int) int {
	return c.panelsUC.Fit(c.VisibleWidth(viewID), windowWidth)
}

// Place positions the panel of viewID and its separator.
func (c *PanelCoordinator) Place(viewID entity.ViewID, frame geometry.Frame) {
	ps, ok := c.live[viewID]
	if !ok || !frame.HasPanel {
		return
	}
	ps.panel.Surface().SetBounds(frame.Panel)
	ps.separator.Surface().SetBounds(frame.Separator)
}

// Destroy closes every panel.
func (c *PanelCoordinator) Destroy(ctx context.Context) {
	var ids []entity.ViewID
	c.panels.Each(func(p *entity.SidePanel) { ids = append(ids, p.ViewID) })
	for _, id := range ids {
		c.Close(ctx, id)
	}
}

func (c *PanelCoordinator) attach(windowID entity.WindowID, viewID entity.ViewID) {
	p := c.panels.Get(viewID)
	ps, ok := c.live[viewID]
	if p == nil || !ok {
		return
	}
	w, found := c.windows.Get(windowID)
	if !found {
		return
	}
	w.Attach(ps.panel.Surface())
	w.Attach(ps.separator.Surface())
	p.Attached = true
}

func (c *PanelCoordinator) ownerWindow(viewID entity.ViewID) (entity.WindowID, int, error) {
	if !c.Has(viewID) {
		return "", 0, fmt.Errorf("panel of %s: %w", viewID, entity.ErrPanelNotFound)
	}
	windowID, ok := c.views.WindowOf(viewID)
	if !ok {
		return "", 0, fmt.Errorf("panel of %s: %w", viewID, entity.ErrViewNotFound)
	}
	w, ok := c.windows.Get(windowID)
	if !ok {
		return "", 0, fmt.Errorf("panel of %s: %s: %w", viewID, windowID, entity.ErrWindowNotFound)
	}
	return windowID, w.Bounds().Width, nil
}

func (c *PanelCoordinator) scheduleLayout(windowID entity.WindowID, viewID entity.ViewID) {
	if c.IsAttached(viewID) {
		c.windows.RequestLayout(windowID)
	}
}

// IsNotFound reports whether err names an unknown view, panel or window.
func IsNotFound(err error) bool {
	return errors.Is(err, entity.ErrViewNotFound) ||
		errors.Is(err, entity.ErrPanelNotFound) ||
		errors.Is(err, entity.ErrWindowNotFound)
}
