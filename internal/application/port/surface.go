// Package port defines application-layer interfaces for external capabilities.
// Ports abstract the content engine and the windowing system so the core can
// be driven by a real toolkit or by the headless implementations.
package port

import (
	"context"

	"github.com/bnema/chromic/internal/domain/geometry"
)

// SurfaceID uniquely identifies a content surface instance.
type SurfaceID uint64

// SurfaceCallbacks defines handlers for raw surface lifecycle signals.
// Implementations may invoke them from any goroutine; consumers are expected
// to hop onto the main loop before touching shared state.
type SurfaceCallbacks struct {
	// OnLoadStarted is called when a navigation begins.
	OnLoadStarted func()
	// OnLoadStopped is called when the page finished loading.
	OnLoadStopped func()
	// OnNavigated is called when the committed URI changes, including
	// in-page (fragment/history API) navigations.
	OnNavigated func(uri string, inPage bool)
	// OnTitleChanged is called when the document title changes.
	OnTitleChanged func(title string)
	// OnLoadFailed is called when a load could not complete.
	OnLoadFailed func(uri string, err error)
	// OnReady is called when the document is ready for script/style injection.
	OnReady func()
	// OnFirstPaint is called once the surface has painted its first frame
	// for the current document.
	OnFirstPaint func()
}

// Surface is a single content surface: something that can load and render
// an address and report lifecycle events about it.
type Surface interface {
	// ID returns the unique identifier for this surface.
	ID() SurfaceID

	// --- Navigation ---

	// LoadURI navigates to the specified URI.
	LoadURI(ctx context.Context, uri string) error
	// LoadResource loads a named resource bundled with the shell.
	LoadResource(ctx context.Context, name string) error
	// Reload reloads the current page.
	Reload(ctx context.Context) error
	// GoBack navigates back in history.
	GoBack(ctx context.Context) error
	// GoForward navigates forward in history.
	GoForward(ctx context.Context) error

	// --- State Queries ---

	CanGoBack() bool
	CanGoForward() bool
	URI() string
	Title() string

	// InjectCSS adds a user stylesheet to the current document.
	InjectCSS(ctx context.Context, css string) error

	// SetBounds positions the surface inside its host window.
	SetBounds(rect geometry.Rect)

	// SetCallbacks registers callback handlers. Pass nil to clear them.
	SetCallbacks(callbacks *SurfaceCallbacks)

	// --- Lifecycle ---

	IsDestroyed() bool
	// Destroy releases all resources. The surface must not be used afterwards.
	Destroy()
}

// SurfaceFactory creates new content surfaces.
type SurfaceFactory interface {
	Create(ctx context.Context) (Surface, error)
}
