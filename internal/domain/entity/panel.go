package entity

// PanelSourceKind distinguishes remote addresses from bundled resources.
type PanelSourceKind int

const (
	// PanelSourceURL loads a remote address.
	PanelSourceURL PanelSourceKind = iota
	// PanelSourceResource loads a named local resource.
	PanelSourceResource
)

// PanelSource is what a side panel displays.
type PanelSource struct {
	Kind  PanelSourceKind
	Value string
}

// URLSource returns a remote-address panel source.
func URLSource(url string) PanelSource {
	return PanelSource{Kind: PanelSourceURL, Value: url}
}

// ResourceSource returns a named local resource panel source.
func ResourceSource(name string) PanelSource {
	return PanelSource{Kind: PanelSourceResource, Value: name}
}

// IsZero reports whether no source was given.
func (s PanelSource) IsZero() bool {
	return s.Value == ""
}

// SidePanel is the auxiliary surface docked beside a view. Keyed by its owner.
type SidePanel struct {
	ViewID   ViewID
	Source   PanelSource
	Width    int
	Attached bool
}

// PanelSet holds at most one side panel per view.
type PanelSet struct {
	panels map[ViewID]*SidePanel
}

// NewPanelSet creates an empty panel set.
func NewPanelSet() *PanelSet {
	return &PanelSet{panels: make(map[ViewID]*SidePanel)}
}

// Put registers a panel, replacing any previous entry for the same view.
func (ps *PanelSet) Put(p *SidePanel) {
	ps.panels[p.ViewID] = p
}

// Get returns the panel for a view.
func (ps *PanelSet) Get(id ViewID) *SidePanel {
	return ps.panels[id]
}

// Delete removes a panel. Returns false when none existed.
func (ps *PanelSet) Delete(id ViewID) bool {
	if _, ok := ps.panels[id]; !ok {
		return false
	}
	delete(ps.panels, id)
	return true
}

// Count returns the number of registered panels.
func (ps *PanelSet) Count() int {
	return len(ps.panels)
}

// Each calls fn for every registered panel.
func (ps *PanelSet) Each(fn func(*SidePanel)) {
	for _, p := range ps.panels {
		fn(p)
	}
}
