// Package events fans out normalized view and window events to UI listeners.
package events

import (
	"context"
	"fmt"
	"sync"

	"github.com/bnema/chromic/internal/domain/entity"
	"github.com/bnema/chromic/internal/logging"
)

// Channel names a multicast point.
type Channel string

const (
	ViewUpdated   Channel = "view.updated"
	ViewActivated Channel = "view.activated"
	ViewClosed    Channel = "view.closed"
	TabsSync      Channel = "tabs.sync"
	FocusRequest  Channel = "focus.request"
)

// Channels lists every channel the router knows about.
var Channels = []Channel{ViewUpdated, ViewActivated, ViewClosed, TabsSync, FocusRequest}

// Event is a single delivery. Patch is set on ViewUpdated, Snapshot on TabsSync.
type Event struct {
	Channel  Channel
	WindowID entity.WindowID
	ViewID   entity.ViewID
	Patch    entity.Patch
	Snapshot []entity.ViewInfo
}

// Listener receives events. A returned error is logged and does not affect
// delivery to other listeners.
type Listener func(Event) error

type subscription struct {
	id       uint64
	listener Listener
}

// Router is a process-scoped multicast point per channel. Delivery is
// synchronous on the publishing goroutine, in subscription order.
type Router struct {
	ctx context.Context

	mu     sync.RWMutex
	subs   map[Channel][]subscription
	nextID uint64
}

// NewRouter creates an empty router.
func NewRouter(ctx context.Context) *Router {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Router{
		ctx:  logging.WithComponent(ctx, "event-router"),
		subs: make(map[Channel][]subscription),
	}
}

// Subscribe registers a listener on a channel. The returned function removes
// it and is safe to call more than once.
func (r *Router) Subscribe(ch Channel, listener Listener) (unsubscribe func()) {
	if listener == nil {
		return func() {}
	}

	r.mu.Lock()
	r.nextID++
	id := r.nextID
	r.subs[ch] = append(r.subs[ch], subscription{id: id, listener: listener})
	r.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { r.remove(ch, id) })
	}
}

// SubscribeAll registers the same listener on every channel.
func (r *Router) SubscribeAll(listener Listener) (unsubscribe func()) {
	unsubs := make([]func(), 0, len(Channels))
	for _, ch := range Channels {
		unsubs = append(unsubs, r.Subscribe(ch, listener))
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

// Publish delivers evt to every listener of its channel.
func (r *Router) Publish(evt Event) {
	r.mu.RLock()
	subs := make([]subscription, len(r.subs[evt.Channel]))
	copy(subs, r.subs[evt.Channel])
	r.mu.RUnlock()

	for _, sub := range subs {
		if err := r.deliver(sub, evt); err != nil {
			logging.FromContext(r.ctx).Warn().
				Err(err).
				Str("channel", string(evt.Channel)).
				Str("view_id", string(evt.ViewID)).
				Msg("listener failed")
		}
	}
}

// SubscriberCount returns the number of listeners on a channel.
func (r *Router) SubscriberCount(ch Channel) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subs[ch])
}

// Updated publishes a patch for a view.
func (r *Router) Updated(windowID entity.WindowID, viewID entity.ViewID, patch entity.Patch) {
	r.Publish(Event{Channel: ViewUpdated, WindowID: windowID, ViewID: viewID, Patch: patch})
}

// Activated publishes a view activation.
func (r *Router) Activated(windowID entity.WindowID, viewID entity.ViewID) {
	r.Publish(Event{Channel: ViewActivated, WindowID: windowID, ViewID: viewID})
}

// Closed publishes a view removal.
func (r *Router) Closed(windowID entity.WindowID, viewID entity.ViewID) {
	r.Publish(Event{Channel: ViewClosed, WindowID: windowID, ViewID: viewID})
}

// Sync publishes a full snapshot addressed to one window.
func (r *Router) Sync(windowID entity.WindowID, snapshot []entity.ViewInfo) {
	r.Publish(Event{Channel: TabsSync, WindowID: windowID, Snapshot: snapshot})
}

// Focus asks the chrome of a window to take input focus.
func (r *Router) Focus(windowID entity.WindowID, viewID entity.ViewID) {
	r.Publish(Event{Channel: FocusRequest, WindowID: windowID, ViewID: viewID})
}

func (r *Router) deliver(sub subscription, evt Event) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("listener panicked: %v", rec)
		}
	}()
	return sub.listener(evt)
}

func (r *Router) remove(ch Channel, id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	subs := r.subs[ch]
	for i, s := range subs {
		if s.id == id {
			r.subs[ch] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}
