package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/chromic/internal/domain/entity"
)

// TabsModel represents a horizontal tab strip.
type TabsModel struct {
	Tabs   []string
	Active int
	theme  *Theme
}

// NewTabs creates a new tab strip with the given labels.
func NewTabs(theme *Theme, tabs ...string) TabsModel {
	return TabsModel{
		Tabs:   tabs,
		Active: -1,
		theme:  theme,
	}
}

// SetActive sets the active tab index.
func (m *TabsModel) SetActive(index int) {
	if index >= 0 && index < len(m.Tabs) {
		m.Active = index
	}
}

// View renders the tab strip.
func (m TabsModel) View() string {
	tabs := make([]string, 0, len(m.Tabs))
	for i, tab := range m.Tabs {
		style := m.theme.InactiveTab
		if i == m.Active {
			style = m.theme.ActiveTab
		}
		tabs = append(tabs, style.Render(tab))
	}

	gap := lipgloss.NewStyle().
		Foreground(m.theme.Border).
		Render(" │ ")

	return lipgloss.JoinHorizontal(lipgloss.Top, join(tabs, gap)...)
}

// WindowRenderer renders the views of each window as a tab strip.
type WindowRenderer struct {
	theme *Theme
}

// NewWindowRenderer creates a new window renderer with the given theme.
func NewWindowRenderer(theme *Theme) *WindowRenderer {
	return &WindowRenderer{theme: theme}
}

// Render renders one window: its id, view count and a tab per view.
func (r *WindowRenderer) Render(windowID entity.WindowID, views []entity.ViewInfo, active entity.ViewID) string {
	labels := make([]string, 0, len(views))
	tabs := NewTabs(r.theme)
	for i, v := range views {
		labels = append(labels, tabLabel(v))
		if v.ID == active {
			tabs.Active = i
		}
	}
	tabs.Tabs = labels

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("  %s %s %s\n",
		r.theme.Highlight.Render(IconSession),
		r.theme.Title.Render(string(windowID)),
		r.theme.BadgeMuted.Render(formatCount(len(views))),
	))
	if len(views) == 0 {
		sb.WriteString("  " + r.theme.Subtle.Render("no views") + "\n")
		return sb.String()
	}
	sb.WriteString("  " + tabs.View() + "\n")
	return sb.String()
}

const maxTabLabel = 24

func tabLabel(v entity.ViewInfo) string {
	label := v.Title
	if label == "" {
		label = v.URL
	}
	if r := []rune(label); len(r) > maxTabLabel {
		label = string(r[:maxTabLabel-1]) + "…"
	}
	return label
}

// join inserts a separator between items.
func join(items []string, sep string) []string {
	if len(items) == 0 {
		return items
	}
	result := make([]string, 0, len(items)*2-1)
	for i, item := range items {
		if i > 0 {
			result = append(result, sep)
		}
		result = append(result, item)
	}
	return result
}

// formatCount formats a count for display.
func formatCount(n int) string {
	if n >= 1000 {
		return "999+"
	}
	return fmt.Sprintf("%d", n)
}
