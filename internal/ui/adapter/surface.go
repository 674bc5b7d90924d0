// Package adapter wraps content surfaces and normalizes their raw lifecycle
// signals into view patches delivered on the main loop.
package adapter

import (
	"context"
	"fmt"
	"strings"

	"github.com/bnema/chromic/internal/application/port"
	"github.com/bnema/chromic/internal/domain/entity"
	"github.com/bnema/chromic/internal/domain/url"
	"github.com/bnema/chromic/internal/logging"
)

// PatchSink receives normalized patches, always on the main loop.
type PatchSink func(patch entity.Patch)

// SurfaceAdapter owns one content surface. Raw callbacks may fire on any
// goroutine; the adapter re-posts them to the loop, in the order the surface
// raised them, and drops them once the adapter is destroyed.
type SurfaceAdapter struct {
	ctx     context.Context
	surface port.Surface
	post    func(func())
	sink    PatchSink

	readyHooks []func()
	paintHooks []func()
	destroyed  bool
}

// NewSurfaceAdapter wires the surface callbacks. sink may be nil for
// surfaces that do not back a view (side panels, separators).
func NewSurfaceAdapter(ctx context.Context, surface port.Surface, post func(func()), sink PatchSink) *SurfaceAdapter {
	a := &SurfaceAdapter{
		ctx:     ctx,
		surface: surface,
		post:    post,
		sink:    sink,
	}
	surface.SetCallbacks(a.callbacks())
	return a
}

// Surface returns the wrapped surface.
func (a *SurfaceAdapter) Surface() port.Surface {
	return a.surface
}

// OnceReady runs fn on the loop the next time the document is ready.
func (a *SurfaceAdapter) OnceReady(fn func()) {
	a.readyHooks = append(a.readyHooks, fn)
}

// OnceFirstPaint runs fn on the loop the next time the surface paints its
// first frame.
func (a *SurfaceAdapter) OnceFirstPaint(fn func()) {
	a.paintHooks = append(a.paintHooks, fn)
}

// Navigate loads a normalized address.
func (a *SurfaceAdapter) Navigate(ctx context.Context, target string) error {
	target = url.Normalize(target)
	if target == "" {
		return fmt.Errorf("navigate: empty url")
	}
	return a.surface.LoadURI(ctx, target)
}

// Load loads a panel source.
func (a *SurfaceAdapter) Load(ctx context.Context, source entity.PanelSource) error {
	switch source.Kind {
	case entity.PanelSourceResource:
		return a.surface.LoadResource(ctx, source.Value)
	default:
		return a.Navigate(ctx, source.Value)
	}
}

// GoBack navigates back. Exhausted history is not an error.
func (a *SurfaceAdapter) GoBack(ctx context.Context) error {
	if !a.surface.CanGoBack() {
		return nil
	}
	return a.surface.GoBack(ctx)
}

// GoForward navigates forward. Exhausted history is not an error.
func (a *SurfaceAdapter) GoForward(ctx context.Context) error {
	if !a.surface.CanGoForward() {
		return nil
	}
	return a.surface.GoForward(ctx)
}

// Reload reloads the current document.
func (a *SurfaceAdapter) Reload(ctx context.Context) error {
	return a.surface.Reload(ctx)
}

// Destroy detaches callbacks and destroys the surface. Events already queued
// on the loop are dropped. Safe to call twice.
func (a *SurfaceAdapter) Destroy() {
	if a.destroyed {
		return
	}
	a.destroyed = true
	a.readyHooks = nil
	a.paintHooks = nil
	a.surface.SetCallbacks(nil)
	if !a.surface.IsDestroyed() {
		a.surface.Destroy()
	}
}

// IsDestroyed reports whether Destroy was called.
func (a *SurfaceAdapter) IsDestroyed() bool {
	return a.destroyed
}

func (a *SurfaceAdapter) callbacks() *port.SurfaceCallbacks {
	return &port.SurfaceCallbacks{
		OnLoadStarted: func() {
			a.emit(entity.Patch{Loading: entity.Ptr(true)})
		},
		OnLoadStopped: func() {
			patch := entity.Patch{Loading: entity.Ptr(false)}
			if title := strings.TrimSpace(a.surface.Title()); title != "" {
				patch.Title = entity.Ptr(title)
			}
			a.emit(patch)
		},
		OnNavigated: func(uri string, _ bool) {
			a.emit(entity.Patch{URL: entity.Ptr(uri)})
		},
		OnTitleChanged: func(title string) {
			a.emit(entity.Patch{Title: entity.Ptr(title)})
		},
		OnLoadFailed: func(uri string, err error) {
			logging.FromContext(a.ctx).Warn().
				Err(fmt.Errorf("%w: %v", entity.ErrSurfaceLoadFailed, err)).
				Str("url", uri).
				Msg("surface failed to load")
			a.emit(entity.Patch{Loading: entity.Ptr(false)})
		},
		OnReady: func() {
			a.post(func() { a.runHooks(&a.readyHooks) })
		},
		OnFirstPaint: func() {
			a.post(func() { a.runHooks(&a.paintHooks) })
		},
	}
}

func (a *SurfaceAdapter) emit(patch entity.Patch) {
	a.post(func() {
		if a.destroyed || a.sink == nil {
			return
		}
		a.sink(patch)
	})
}

func (a *SurfaceAdapter) runHooks(hooks *[]func()) {
	if a.destroyed {
		return
	}
	pending := *hooks
	*hooks = nil
	for _, fn := range pending {
		fn()
	}
}
