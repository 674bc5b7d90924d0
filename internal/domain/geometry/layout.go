// Package geometry computes the pixel rectangles of the active view, its side
// panel and the drag separator. Everything here is pure.
package geometry

const (
	// DefaultChromeTop is the height reserved for the tab strip and address bar.
	DefaultChromeTop = 118
	// DefaultChromeBottom is subtracted from the window height for content.
	DefaultChromeBottom = 134
	// DefaultSideInset is the fixed right-hand margin.
	DefaultSideInset = 16
	// DefaultSeparatorWidth is the width of the panel drag strip.
	DefaultSeparatorWidth = 2
	// MinPanelWidth is the smallest width a side panel can take.
	MinPanelWidth = 100
)

// Bounds is a window size in pixels.
type Bounds struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Rect is a positioned rectangle in window coordinates.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Chrome describes the space the shell reserves around content.
type Chrome struct {
	Top            int
	Bottom         int
	SideInset      int
	SeparatorWidth int
}

// DefaultChrome returns the stock chrome reservation.
func DefaultChrome() Chrome {
	return Chrome{
		Top:            DefaultChromeTop,
		Bottom:         DefaultChromeBottom,
		SideInset:      DefaultSideInset,
		SeparatorWidth: DefaultSeparatorWidth,
	}
}

// Frame is the result of a layout pass. Panel and Separator are only
// meaningful when HasPanel is set.
type Frame struct {
	Main      Rect `json:"main"`
	Panel     Rect `json:"panel"`
	Separator Rect `json:"separator"`
	HasPanel  bool `json:"hasPanel"`
}

// Layout places the active view and, when panelWidth > 0, a side panel docked
// on the right with its separator immediately to its left. All rectangles
// share the same y and height.
func Layout(bounds Bounds, chrome Chrome, panelWidth int) Frame {
	y := chrome.Top
	height := nonNegative(bounds.Height - chrome.Bottom)

	if panelWidth <= 0 {
		return Frame{
			Main: Rect{X: 0, Y: y, Width: nonNegative(bounds.Width - chrome.SideInset), Height: height},
		}
	}

	panelX := bounds.Width - panelWidth - chrome.SideInset
	return Frame{
		Main:      Rect{X: 0, Y: y, Width: nonNegative(panelX), Height: height},
		Panel:     Rect{X: panelX, Y: y, Width: panelWidth, Height: height},
		Separator: Rect{X: panelX - chrome.SeparatorWidth, Y: y, Width: chrome.SeparatorWidth, Height: height},
		HasPanel:  true,
	}
}

// ClampPanelWidth bounds a requested panel width to
// [minWidth, windowWidth - sideInset]. The minimum wins when the window is
// too narrow to honor both.
func ClampPanelWidth(width, windowWidth, minWidth, sideInset int) int {
	if limit := windowWidth - sideInset; width > limit {
		width = limit
	}
	if width < minWidth {
		width = minWidth
	}
	return width
}

func nonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
