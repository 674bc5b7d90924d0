// Package entity defines the domain entities of the shell: views, their
// per-window ordering and the side panels docked beside them.
package entity

import "time"

// ViewID uniquely identifies a view. Opaque, allocated at creation time.
type ViewID string

// WindowID uniquely identifies a host window.
type WindowID string

// DefaultViewTitle is shown until the surface reports a title.
const DefaultViewTitle = "New Tab"

// View is a single navigable content tab.
type View struct {
	ID        ViewID
	Title     string
	URL       string
	Loading   bool
	WindowID  WindowID
	CreatedAt time.Time
}

// NewView creates a view owned by the given window.
func NewView(id ViewID, windowID WindowID, url string) *View {
	return &View{
		ID:        id,
		Title:     DefaultViewTitle,
		URL:       url,
		WindowID:  windowID,
		CreatedAt: time.Now(),
	}
}

// Patch is a partial update to a view's metadata. Nil fields are unchanged.
type Patch struct {
	Title   *string `json:"title,omitempty"`
	URL     *string `json:"url,omitempty"`
	Loading *bool   `json:"loading,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.URL == nil && p.Loading == nil
}

// Apply merges the patch into the view.
func (v *View) Apply(p Patch) {
	if p.Title != nil {
		v.Title = *p.Title
	}
	if p.URL != nil {
		v.URL = *p.URL
	}
	if p.Loading != nil {
		v.Loading = *p.Loading
	}
}

// ViewInfo is one row of a view snapshot.
type ViewInfo struct {
	ID       ViewID   `json:"viewId"`
	URL      string   `json:"url"`
	Title    string   `json:"title"`
	WindowID WindowID `json:"windowId"`
}

// Info returns the snapshot row for this view.
func (v *View) Info() ViewInfo {
	title := v.Title
	if title == "" {
		title = DefaultViewTitle
	}
	return ViewInfo{ID: v.ID, URL: v.URL, Title: title, WindowID: v.WindowID}
}
