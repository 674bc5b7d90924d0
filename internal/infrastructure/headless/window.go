package headless

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/bnema/chromic/internal/application/port"
	"github.com/bnema/chromic/internal/domain/entity"
	"github.com/bnema/chromic/internal/domain/geometry"
)

// Window is an in-memory host window. Its compositing tree is an ordered list
// of attached surfaces, bottom first.
type Window struct {
	id  entity.WindowID
	min geometry.Bounds

	mu        sync.Mutex
	bounds    geometry.Bounds
	restored  geometry.Bounds
	attached  []port.Surface
	callbacks *port.WindowCallbacks
	closed    bool
}

// WindowFactory creates headless windows and remembers them for inspection.
type WindowFactory struct {
	// Screen is the size a window takes when maximized.
	Screen geometry.Bounds

	mu      sync.Mutex
	windows map[entity.WindowID]*Window
	order   []entity.WindowID
}

// NewWindowFactory creates a factory whose windows maximize to screen.
func NewWindowFactory(screen geometry.Bounds) *WindowFactory {
	return &WindowFactory{
		Screen:  screen,
		windows: make(map[entity.WindowID]*Window),
	}
}

// Create implements port.WindowFactory.
func (f *WindowFactory) Create(_ context.Context, id entity.WindowID, opts port.WindowOptions) (port.HostWindow, error) {
	if id == "" {
		return nil, fmt.Errorf("create window: empty id")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.windows[id]; exists {
		return nil, fmt.Errorf("create window: %s already exists", id)
	}

	w := &Window{id: id, min: opts.MinBounds}
	w.bounds = w.clamp(opts.Bounds)
	f.windows[id] = w
	f.order = append(f.order, id)
	return w, nil
}

// Get returns a window created by this factory.
func (f *WindowFactory) Get(id entity.WindowID) *Window {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.windows[id]
}

// Windows returns every window created so far, in creation order.
func (f *WindowFactory) Windows() []*Window {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*Window, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, f.windows[id])
	}
	return out
}

func (w *Window) ID() entity.WindowID { return w.id }

func (w *Window) Bounds() geometry.Bounds {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.bounds
}

// Attach implements port.HostWindow.
func (w *Window) Attach(surface port.Surface) {
	if surface == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed || slices.Contains(w.attached, surface) {
		return
	}
	w.attached = append(w.attached, surface)
}

// Detach implements port.HostWindow.
func (w *Window) Detach(surface port.Surface) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if i := slices.Index(w.attached, surface); i >= 0 {
		w.attached = slices.Delete(w.attached, i, i+1)
	}
}

func (w *Window) IsAttached(surface port.Surface) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return slices.Contains(w.attached, surface)
}

// Attached returns the compositing tree, bottom first.
func (w *Window) Attached() []port.Surface {
	w.mu.Lock()
	defer w.mu.Unlock()
	return slices.Clone(w.attached)
}

func (w *Window) SetCallbacks(callbacks *port.WindowCallbacks) {
	w.mu.Lock()
	w.callbacks = callbacks
	w.mu.Unlock()
}

// Resize simulates the user resizing the window.
func (w *Window) Resize(bounds geometry.Bounds) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.bounds = w.clamp(bounds)
	b := w.bounds
	cb := w.callbacks
	w.mu.Unlock()

	if cb != nil && cb.OnResized != nil {
		cb.OnResized(b)
	}
}

// Maximize simulates maximizing to screen.
func (w *Window) Maximize(screen geometry.Bounds) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.restored = w.bounds
	w.bounds = w.clamp(screen)
	cb := w.callbacks
	w.mu.Unlock()

	if cb != nil && cb.OnMaximized != nil {
		cb.OnMaximized()
	}
}

// Restore simulates leaving the maximized state.
func (w *Window) Restore() {
	w.mu.Lock()
	if w.closed || w.restored == (geometry.Bounds{}) {
		w.mu.Unlock()
		return
	}
	w.bounds = w.restored
	w.restored = geometry.Bounds{}
	cb := w.callbacks
	w.mu.Unlock()

	if cb != nil && cb.OnRestored != nil {
		cb.OnRestored()
	}
}

// Close implements port.HostWindow. OnClosed fires once.
func (w *Window) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	w.attached = nil
	cb := w.callbacks
	w.mu.Unlock()

	if cb != nil && cb.OnClosed != nil {
		cb.OnClosed()
	}
}

// IsClosed reports whether the window was closed.
func (w *Window) IsClosed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closed
}

func (w *Window) clamp(b geometry.Bounds) geometry.Bounds {
	return geometry.Bounds{Width: max(b.Width, w.min.Width), Height: max(b.Height, w.min.Height)}
}
