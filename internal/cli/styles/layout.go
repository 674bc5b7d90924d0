package styles

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bnema/chromic/internal/domain/geometry"
)

// LayoutRenderer renders computed frames.
type LayoutRenderer struct {
	theme *Theme
}

// NewLayoutRenderer creates a new layout renderer with the given theme.
func NewLayoutRenderer(theme *Theme) *LayoutRenderer {
	return &LayoutRenderer{theme: theme}
}

// Render renders the rectangles of a frame computed for a window.
func (r *LayoutRenderer) Render(bounds geometry.Bounds, frame geometry.Frame) string {
	rows := [][]string{rectRow("main", frame.Main)}
	if frame.HasPanel {
		rows = append(rows,
			rectRow("separator", frame.Separator),
			rectRow("panel", frame.Panel),
		)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("\n  %s %s\n\n",
		r.theme.Highlight.Render(IconPane),
		r.theme.Title.Render(fmt.Sprintf("Window %dx%d", bounds.Width, bounds.Height)),
	))
	sb.WriteString(NewStyledTable(r.theme, []string{"Region", "X", "Y", "Width", "Height"}, rows).Render())
	sb.WriteString("\n")
	return sb.String()
}

func rectRow(name string, rect geometry.Rect) []string {
	return []string{
		name,
		strconv.Itoa(rect.X),
		strconv.Itoa(rect.Y),
		strconv.Itoa(rect.Width),
		strconv.Itoa(rect.Height),
	}
}
