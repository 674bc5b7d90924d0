package styles

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ConfigRenderer renders config messages with styled output.
type ConfigRenderer struct {
	theme *Theme
}

// NewConfigRenderer creates a new config renderer with the given theme.
func NewConfigRenderer(theme *Theme) *ConfigRenderer {
	return &ConfigRenderer{theme: theme}
}

// RenderSettings renders the effective settings as a key/value table.
// Nested sections are flattened to dotted keys.
func (r *ConfigRenderer) RenderSettings(path string, settings map[string]any) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)

	source := path
	if source == "" {
		source = "defaults (no config file)"
	}

	flat := make(map[string]string)
	flatten("", settings, flat)

	rows := make([][]string, 0, len(flat))
	for _, key := range slices.Sorted(maps.Keys(flat)) {
		rows = append(rows, []string{key, flat[key]})
	}

	return fmt.Sprintf("\n  %s Config %s\n\n%s\n",
		iconStyle.Render(IconConfig),
		r.theme.Subtle.Render(source),
		NewStyledTable(r.theme, []string{"Key", "Value"}, rows).Render(),
	)
}

// RenderSchemaWritten renders the path a schema was written to.
func (r *ConfigRenderer) RenderSchemaWritten(path string) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Success)

	return fmt.Sprintf("\n  %s Schema written to %s\n",
		iconStyle.Render(IconCheck),
		r.theme.Subtle.Render(path),
	)
}

// RenderError renders an error message.
func (r *ConfigRenderer) RenderError(err error) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Error)

	return fmt.Sprintf("\n  %s Config error: %v\n", iconStyle.Render(IconX), err)
}

func flatten(prefix string, in map[string]any, out map[string]string) {
	for key, value := range in {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		if nested, ok := value.(map[string]any); ok {
			flatten(full, nested, out)
			continue
		}
		s := fmt.Sprint(value)
		if s == "" {
			s = `""`
		}
		out[full] = strings.TrimSpace(s)
	}
}
