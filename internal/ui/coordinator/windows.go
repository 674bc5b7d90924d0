// Package coordinator holds the stateful parts of the shell: the view
// registry, the side panel manager and the host window controller. All
// methods must run on the main loop.
package coordinator

import (
	"context"
	"fmt"

	"github.com/bnema/chromic/internal/application/port"
	"github.com/bnema/chromic/internal/application/usecase"
	"github.com/bnema/chromic/internal/domain/entity"
	"github.com/bnema/chromic/internal/domain/geometry"
	"github.com/bnema/chromic/internal/logging"
	"github.com/bnema/chromic/internal/ui/mainloop"
)

// MainWindowID is the id of the window opened at startup.
const MainWindowID entity.WindowID = "main"

// WindowController owns the host windows and turns their resize, maximize
// and restore notifications into coalesced layout passes.
type WindowController struct {
	ctx         context.Context
	factory     port.WindowFactory
	idGenerator usecase.IDGenerator
	options     port.WindowOptions
	post        func(func())
	coalescer   *mainloop.Coalescer

	windows map[entity.WindowID]port.HostWindow
	order   []entity.WindowID

	// Callbacks to avoid circular dependencies
	relayout     func(ctx context.Context, windowID entity.WindowID)
	onClosed     func(ctx context.Context, windowID entity.WindowID)
	onLastClosed func()
}

// WindowControllerConfig holds configuration for WindowController.
type WindowControllerConfig struct {
	Factory     port.WindowFactory
	IDGenerator usecase.IDGenerator
	Options     port.WindowOptions
	// Post schedules work on the main loop.
	Post func(func())
}

// NewWindowController creates a new WindowController.
func NewWindowController(ctx context.Context, cfg WindowControllerConfig) *WindowController {
	ctx = logging.WithComponent(ctx, "windows")
	logging.FromContext(ctx).Debug().Msg("creating window controller")

	return &WindowController{
		ctx:         ctx,
		factory:     cfg.Factory,
		idGenerator: cfg.IDGenerator,
		options:     cfg.Options,
		post:        cfg.Post,
		coalescer:   mainloop.NewCoalescer(cfg.Post),
		windows:     make(map[entity.WindowID]port.HostWindow),
	}
}

// SetRelayout sets the function that lays out a window.
func (c *WindowController) SetRelayout(fn func(ctx context.Context, windowID entity.WindowID)) {
	c.relayout = fn
}

// SetOnClosed sets the callback run after a window closed, before it is forgotten.
func (c *WindowController) SetOnClosed(fn func(ctx context.Context, windowID entity.WindowID)) {
	c.onClosed = fn
}

// SetOnLastClosed sets the callback run when no window remains.
func (c *WindowController) SetOnLastClosed(fn func()) {
	c.onLastClosed = fn
}

// SetOptions changes the options used for windows opened from now on.
func (c *WindowController) SetOptions(opts port.WindowOptions) {
	c.options = opts
}

// OpenMain opens the startup window.
func (c *WindowController) OpenMain(ctx context.Context) (port.HostWindow, error) {
	return c.open(ctx, MainWindowID)
}

// Open opens a new window with a fresh id.
func (c *WindowController) Open(ctx context.Context) (port.HostWindow, error) {
	return c.open(ctx, entity.WindowID("window-"+c.idGenerator()))
}

func (c *WindowController) open(ctx context.Context, id entity.WindowID) (port.HostWindow, error) {
	log := logging.FromContext(ctx)

	if _, exists := c.windows[id]; exists {
		return nil, fmt.Errorf("open window %s: already open", id)
	}

	w, err := c.factory.Create(ctx, id, c.options)
	if err != nil {
		return nil, fmt.Errorf("open window %s: %w", id, err)
	}

	w.SetCallbacks(&port.WindowCallbacks{
		OnResized:   func(_ geometry.Bounds) { c.post(func() { c.RequestLayout(id) }) },
		OnMaximized: func() { c.post(func() { c.RequestLayout(id) }) },
		OnRestored:  func() { c.post(func() { c.RequestLayout(id) }) },
		OnClosed:    func() { c.post(func() { c.forget(id) }) },
	})

	c.windows[id] = w
	c.order = append(c.order, id)

	b := w.Bounds()
	log.Info().
		Str("window_id", string(id)).
		Int("width", b.Width).
		Int("height", b.Height).
		Msg("window opened")

	return w, nil
}

// Get returns an open window.
func (c *WindowController) Get(id entity.WindowID) (port.HostWindow, bool) {
	w, ok := c.windows[id]
	return w, ok
}

// IDs returns the open windows in opening order.
func (c *WindowController) IDs() []entity.WindowID {
	out := make([]entity.WindowID, len(c.order))
	copy(out, c.order)
	return out
}

// Count returns the number of open windows.
func (c *WindowController) Count() int {
	return len(c.windows)
}

// RequestLayout schedules one layout pass for the window. Any number of
// requests before the pass runs collapse into it, and the pass reads the
// bounds and panel width current at the time it runs.
func (c *WindowController) RequestLayout(id entity.WindowID) {
	if _, ok := c.windows[id]; !ok {
		return
	}
	c.coalescer.Post(layoutKey(id), func() {
		if _, ok := c.windows[id]; !ok || c.relayout == nil {
			return
		}
		c.relayout(c.ctx, id)
	})
}

// LayoutPending reports whether a layout pass is scheduled for the window.
func (c *WindowController) LayoutPending(id entity.WindowID) bool {
	return c.coalescer.IsPending(layoutKey(id))
}

// RequestLayoutAll schedules a layout pass for every window.
func (c *WindowController) RequestLayoutAll() {
	for _, id := range c.order {
		c.RequestLayout(id)
	}
}

// Close closes a window and releases what it owns. No-op for unknown ids.
func (c *WindowController) Close(ctx context.Context, id entity.WindowID) {
	w, ok := c.windows[id]
	if !ok {
		return
	}
	c.forget(id)
	w.Close()
}

// CloseAll closes every window.
func (c *WindowController) CloseAll(ctx context.Context) {
	for _, id := range c.IDs() {
		c.Close(ctx, id)
	}
}

// Destroy drops pending layout passes.
func (c *WindowController) Destroy() {
	c.coalescer.Destroy()
}

func (c *WindowController) forget(id entity.WindowID) {
	if _, ok := c.windows[id]; !ok {
		return
	}
	log := logging.FromContext(c.ctx)

	if c.onClosed != nil {
		c.onClosed(c.ctx, id)
	}

	c.coalescer.Cancel(layoutKey(id))
	delete(c.windows, id)
	for i, wid := range c.order {
		if wid == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}

	log.Info().Str("window_id", string(id)).Int("remaining", len(c.windows)).Msg("window closed")

	if len(c.windows) == 0 && c.onLastClosed != nil {
		c.onLastClosed()
	}
}

func layoutKey(id entity.WindowID) string {
	return "layout:" + string(id)
}
