// Package headless provides in-memory content surfaces and host windows.
// Surfaces keep a navigation history and simulate the load lifecycle by
// raising their callbacks from scheduled tasks, the way a real engine raises
// them from outside the shell's own call stack.
package headless

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/bnema/chromic/internal/application/port"
	"github.com/bnema/chromic/internal/domain/geometry"
	"github.com/bnema/chromic/internal/domain/url"
)

var (
	// ErrDestroyed is returned by operations on a destroyed surface.
	ErrDestroyed = errors.New("surface destroyed")
	// ErrNoHistory is returned by GoBack/GoForward past the history edge.
	ErrNoHistory = errors.New("no history entry")
	// ErrUnreachable is reported through OnLoadFailed for addresses that
	// cannot load (the .invalid TLD and the fail: scheme).
	ErrUnreachable = errors.New("address unreachable")
)

// Surface is an in-memory content surface.
type Surface struct {
	id          port.SurfaceID
	post        func(func())
	resourceDir string

	mu        sync.Mutex
	history   []string
	index     int
	title     string
	css       []string
	bounds    geometry.Rect
	callbacks *port.SurfaceCallbacks
	destroyed bool
	loads     int
}

// SurfaceFactory creates headless surfaces.
type SurfaceFactory struct {
	post        func(func())
	resourceDir string
	nextID      atomic.Uint64

	mu       sync.Mutex
	surfaces []*Surface
}

// NewSurfaceFactory creates a factory. post schedules lifecycle signals; it
// is normally the main loop's Post.
func NewSurfaceFactory(post func(func()), resourceDir string) *SurfaceFactory {
	return &SurfaceFactory{post: post, resourceDir: resourceDir}
}

// Create implements port.SurfaceFactory.
func (f *SurfaceFactory) Create(_ context.Context) (port.Surface, error) {
	s := &Surface{
		id:          port.SurfaceID(f.nextID.Add(1)),
		post:        f.post,
		resourceDir: f.resourceDir,
		index:       -1,
	}
	f.mu.Lock()
	f.surfaces = append(f.surfaces, s)
	f.mu.Unlock()
	return s, nil
}

// Surfaces returns every surface created so far.
func (f *SurfaceFactory) Surfaces() []*Surface {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*Surface, len(f.surfaces))
	copy(out, f.surfaces)
	return out
}

// Live returns the surfaces that were not destroyed.
func (f *SurfaceFactory) Live() []*Surface {
	out := make([]*Surface, 0)
	for _, s := range f.Surfaces() {
		if !s.IsDestroyed() {
			out = append(out, s)
		}
	}
	return out
}

func (s *Surface) ID() port.SurfaceID { return s.id }

// LoadURI implements port.Surface.
func (s *Surface) LoadURI(_ context.Context, uri string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.destroyed {
		return ErrDestroyed
	}
	s.push(uri)
	s.startLoadLocked(uri)
	return nil
}

// LoadResource implements port.Surface. Resources resolve against the
// factory's resource directory, or to an internal address when it is unset.
func (s *Surface) LoadResource(ctx context.Context, name string) error {
	if name == "" {
		return fmt.Errorf("load resource: empty name")
	}
	target := url.InternalScheme + "resources/" + name
	if s.resourceDir != "" {
		target = "file://" + filepath.Join(s.resourceDir, filepath.Clean("/"+name))
	}
	return s.LoadURI(ctx, target)
}

// Reload implements port.Surface.
func (s *Surface) Reload(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.destroyed {
		return ErrDestroyed
	}
	if s.index < 0 {
		return nil
	}
	s.startLoadLocked(s.history[s.index])
	return nil
}

// GoBack implements port.Surface.
func (s *Surface) GoBack(_ context.Context) error {
	return s.step(-1)
}

// GoForward implements port.Surface.
func (s *Surface) GoForward(_ context.Context) error {
	return s.step(1)
}

func (s *Surface) CanGoBack() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index > 0
}

func (s *Surface) CanGoForward() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index >= 0 && s.index < len(s.history)-1
}

func (s *Surface) URI() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index < 0 {
		return ""
	}
	return s.history[s.index]
}

func (s *Surface) Title() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.title
}

// InjectCSS implements port.Surface.
func (s *Surface) InjectCSS(_ context.Context, css string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.destroyed {
		return ErrDestroyed
	}
	s.css = append(s.css, css)
	return nil
}

// InjectedCSS returns the stylesheets injected so far.
func (s *Surface) InjectedCSS() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.css))
	copy(out, s.css)
	return out
}

func (s *Surface) SetBounds(rect geometry.Rect) {
	s.mu.Lock()
	s.bounds = rect
	s.mu.Unlock()
}

// Bounds returns the last rectangle set by the shell.
func (s *Surface) Bounds() geometry.Rect {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bounds
}

func (s *Surface) SetCallbacks(callbacks *port.SurfaceCallbacks) {
	s.mu.Lock()
	s.callbacks = callbacks
	s.mu.Unlock()
}

func (s *Surface) IsDestroyed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.destroyed
}

func (s *Surface) Destroy() {
	s.mu.Lock()
	s.destroyed = true
	s.callbacks = nil
	s.mu.Unlock()
}

// Loads returns how many loads were started, reloads included.
func (s *Surface) Loads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loads
}

func (s *Surface) step(delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.destroyed {
		return ErrDestroyed
	}
	next := s.index + delta
	if s.index < 0 || next < 0 || next >= len(s.history) {
		return ErrNoHistory
	}
	s.index = next
	s.startLoadLocked(s.history[next])
	return nil
}

func (s *Surface) push(uri string) {
	s.history = append(s.history[:s.index+1], uri)
	s.index = len(s.history) - 1
}

// startLoadLocked schedules the lifecycle of one load: start and commit on
// one task, then completion (or failure) on a later one.
func (s *Surface) startLoadLocked(uri string) {
	s.loads++
	load := s.loads

	s.post(func() {
		if s.IsDestroyed() {
			return
		}
		cb := s.currentCallbacks()
		if cb != nil {
			call(cb.OnLoadStarted)
		}
		if unreachable(uri) {
			s.post(func() { s.fail(load, uri) })
			return
		}
		if cb != nil && cb.OnNavigated != nil {
			cb.OnNavigated(uri, false)
		}
		s.post(func() { s.finish(load, uri) })
	})
}

func (s *Surface) finish(load int, uri string) {
	s.mu.Lock()
	if s.destroyed || load != s.loads {
		s.mu.Unlock()
		return
	}
	s.title = titleFor(uri)
	cb := s.callbacks
	title := s.title
	s.mu.Unlock()

	if cb == nil {
		return
	}
	if title != "" && cb.OnTitleChanged != nil {
		cb.OnTitleChanged(title)
	}
	call(cb.OnReady)
	call(cb.OnLoadStopped)
	call(cb.OnFirstPaint)
}

func (s *Surface) fail(load int, uri string) {
	s.mu.Lock()
	if s.destroyed || load != s.loads {
		s.mu.Unlock()
		return
	}
	cb := s.callbacks
	s.mu.Unlock()

	if cb != nil && cb.OnLoadFailed != nil {
		cb.OnLoadFailed(uri, ErrUnreachable)
	}
}

func (s *Surface) currentCallbacks() *port.SurfaceCallbacks {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.destroyed {
		return nil
	}
	return s.callbacks
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}

func unreachable(uri string) bool {
	if strings.HasPrefix(uri, "fail:") {
		return true
	}
	return strings.HasSuffix(url.ExtractDomain(uri), ".invalid")
}

func titleFor(uri string) string {
	switch {
	case uri == url.Blank:
		return ""
	case url.IsInternal(uri):
		name := strings.TrimPrefix(uri, url.InternalScheme)
		name = strings.TrimPrefix(name, "resources/")
		if name == "" {
			return ""
		}
		return strings.ToUpper(name[:1]) + name[1:]
	case strings.HasPrefix(uri, "file://"):
		return filepath.Base(uri)
	}
	return url.ExtractDomain(uri)
}
