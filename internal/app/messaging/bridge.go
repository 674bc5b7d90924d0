package messaging

import (
	"github.com/bnema/chromic/internal/domain/entity"
	"github.com/bnema/chromic/internal/ui/events"
)

// Push event names seen by the UI.
const (
	EventTabsUpdated            = "tabs.updated"
	EventTabsActivated          = "tabs.activated"
	EventTabsClosed             = "tabs.closed"
	EventTabsSync               = "tabs.sync"
	EventFocusRequestAddressBar = "focus.requestAddressBar"
)

// PushEvent is delivered to the UI of one window.
type PushEvent struct {
	Window  entity.WindowID `json:"window"`
	Event   string          `json:"event"`
	Payload any             `json:"payload"`
}

// UpdatedPayload is the payload of tabs.updated.
type UpdatedPayload struct {
	ViewID entity.ViewID `json:"viewId"`
	Patch  entity.Patch  `json:"patch"`
}

// ViewPayload is the payload of tabs.activated and tabs.closed.
type ViewPayload struct {
	ViewID entity.ViewID `json:"viewId"`
}

// Sink receives push events.
type Sink func(PushEvent)

// Bridge forwards router events to a UI sink under their UI names. A bridge
// bound to a window only forwards that window's events.
type Bridge struct {
	windowID     entity.WindowID
	sink         Sink
	unsubscribes []func()
}

// NewBridge subscribes to every router channel. An empty windowID forwards
// the events of all windows.
func NewBridge(router *events.Router, windowID entity.WindowID, sink Sink) *Bridge {
	b := &Bridge{windowID: windowID, sink: sink}
	for _, ch := range events.Channels {
		b.unsubscribes = append(b.unsubscribes, router.Subscribe(ch, b.forward))
	}
	return b
}

// Close unsubscribes the bridge. Safe to call twice.
func (b *Bridge) Close() {
	for _, unsubscribe := range b.unsubscribes {
		unsubscribe()
	}
	b.unsubscribes = nil
}

func (b *Bridge) forward(evt events.Event) error {
	if b.windowID != "" && evt.WindowID != b.windowID {
		return nil
	}
	push, ok := Translate(evt)
	if !ok {
		return nil
	}
	b.sink(push)
	return nil
}

// Translate maps a router event to its UI push event.
func Translate(evt events.Event) (PushEvent, bool) {
	push := PushEvent{Window: evt.WindowID}
	switch evt.Channel {
	case events.ViewUpdated:
		push.Event = EventTabsUpdated
		push.Payload = UpdatedPayload{ViewID: evt.ViewID, Patch: evt.Patch}
	case events.ViewActivated:
		push.Event = EventTabsActivated
		push.Payload = ViewPayload{ViewID: evt.ViewID}
	case events.ViewClosed:
		push.Event = EventTabsClosed
		push.Payload = ViewPayload{ViewID: evt.ViewID}
	case events.TabsSync:
		push.Event = EventTabsSync
		snapshot := evt.Snapshot
		if snapshot == nil {
			snapshot = []entity.ViewInfo{}
		}
		push.Payload = snapshot
	case events.FocusRequest:
		push.Event = EventFocusRequestAddressBar
		push.Payload = struct{}{}
	default:
		return PushEvent{}, false
	}
	return push, true
}
