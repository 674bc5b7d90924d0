package styles

import (
	"fmt"
	"strings"

	"github.com/bnema/chromic/internal/domain/build"
)

// AboutRenderer renders version and build information.
type AboutRenderer struct {
	theme *Theme
}

// NewAboutRenderer creates a new about renderer with the given theme.
func NewAboutRenderer(theme *Theme) *AboutRenderer {
	return &AboutRenderer{theme: theme}
}

// Render renders the build information box.
func (r *AboutRenderer) Render(info build.Info) string {
	label := r.theme.Subtle
	value := r.theme.Normal

	lines := []string{
		fmt.Sprintf("%s %s", r.theme.Highlight.Render(IconGlobe), r.theme.Title.Render("chromic")),
		"",
		fmt.Sprintf("%s %s", label.Render("Version:"), value.Render(orUnknown(info.Version))),
		fmt.Sprintf("%s %s", label.Render("Commit: "), value.Render(orUnknown(info.Commit))),
		fmt.Sprintf("%s %s", label.Render("Built:  "), value.Render(orUnknown(info.BuildDate))),
		fmt.Sprintf("%s %s", label.Render("Go:     "), value.Render(orUnknown(info.GoVersion))),
		"",
		label.Render(build.RepoURL()),
	}
	return r.theme.Box.Render(strings.Join(lines, "\n"))
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
