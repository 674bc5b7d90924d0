package port

import (
	"context"

	"github.com/bnema/chromic/internal/domain/entity"
	"github.com/bnema/chromic/internal/domain/geometry"
)

// WindowCallbacks defines handlers for host window events.
type WindowCallbacks struct {
	OnResized   func(bounds geometry.Bounds)
	OnMaximized func()
	OnRestored  func()
	// OnClosed is called after the user or the system closed the window.
	OnClosed func()
}

// HostWindow is a top-level window owning a compositing tree of surfaces.
type HostWindow interface {
	ID() entity.WindowID
	Bounds() geometry.Bounds

	// Attach adds the surface to the compositing tree. No-op when attached.
	Attach(surface Surface)
	// Detach removes the surface from the compositing tree without
	// destroying it. No-op when not attached.
	Detach(surface Surface)
	IsAttached(surface Surface) bool

	SetCallbacks(callbacks *WindowCallbacks)
	Close()
}

// WindowOptions configures a new host window.
type WindowOptions struct {
	Bounds    geometry.Bounds
	MinBounds geometry.Bounds
}

// WindowFactory creates host windows.
type WindowFactory interface {
	Create(ctx context.Context, id entity.WindowID, opts WindowOptions) (HostWindow, error)
}
