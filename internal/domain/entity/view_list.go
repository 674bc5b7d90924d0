package entity

import "iter"

// ViewList holds views in creation order and the active view of each window.
type ViewList struct {
	views  []*View
	active map[WindowID]ViewID
}

// NewViewList creates an empty view list.
func NewViewList() *ViewList {
	return &ViewList{
		views:  make([]*View, 0),
		active: make(map[WindowID]ViewID),
	}
}

// Add appends a view. Creation order is preserved.
func (vl *ViewList) Add(v *View) {
	vl.views = append(vl.views, v)
}

// Find returns a view by ID.
func (vl *ViewList) Find(id ViewID) *View {
	for _, v := range vl.views {
		if v.ID == id {
			return v
		}
	}
	return nil
}

// Remove deletes a view and clears the active pointer that referenced it.
func (vl *ViewList) Remove(id ViewID) bool {
	for i, v := range vl.views {
		if v.ID != id {
			continue
		}
		vl.views = append(vl.views[:i], vl.views[i+1:]...)
		if vl.active[v.WindowID] == id {
			delete(vl.active, v.WindowID)
		}
		return true
	}
	return false
}

// Count returns the number of views across all windows.
func (vl *ViewList) Count() int {
	return len(vl.views)
}

// SetActive records the active view of a window. An empty id clears it.
func (vl *ViewList) SetActive(windowID WindowID, id ViewID) {
	if id == "" {
		delete(vl.active, windowID)
		return
	}
	vl.active[windowID] = id
}

// Active returns the active view of a window, or "" when none.
func (vl *ViewList) Active(windowID WindowID) ViewID {
	return vl.active[windowID]
}

// InWindow returns the views owned by a window, in creation order.
func (vl *ViewList) InWindow(windowID WindowID) []*View {
	out := make([]*View, 0, len(vl.views))
	for _, v := range vl.views {
		if v.WindowID == windowID {
			out = append(out, v)
		}
	}
	return out
}

// LastInWindow returns the most recently created view of a window.
func (vl *ViewList) LastInWindow(windowID WindowID) *View {
	for i := len(vl.views) - 1; i >= 0; i-- {
		if vl.views[i].WindowID == windowID {
			return vl.views[i]
		}
	}
	return nil
}

// All yields a snapshot row per view in creation order. Each range over the
// returned sequence reads the live list, so the sequence can be restarted.
func (vl *ViewList) All() iter.Seq[ViewInfo] {
	return func(yield func(ViewInfo) bool) {
		for _, v := range vl.views {
			if !yield(v.Info()) {
				return
			}
		}
	}
}
