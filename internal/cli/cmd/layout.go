package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/chromic/internal/cli/styles"
	"github.com/bnema/chromic/internal/domain/geometry"
)

var (
	layoutWidth  int
	layoutHeight int
	layoutPanel  int
)

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Compute the content rectangles of a window",
	Long: `Print where the active view, the separator and the side panel go for a
window of the given size, using the configured chrome offsets.

The panel width is clamped exactly like a resize request.

Examples:
  chromic layout
  chromic layout --width 1280 --height 800 --panel 420`,
	RunE: runLayout,
}

func init() {
	rootCmd.AddCommand(layoutCmd)
	layoutCmd.Flags().IntVar(&layoutWidth, "width", 0, "window width (default from config)")
	layoutCmd.Flags().IntVar(&layoutHeight, "height", 0, "window height (default from config)")
	layoutCmd.Flags().IntVar(&layoutPanel, "panel", 0, "side panel width, 0 for none")
}

func runLayout(cmd *cobra.Command, _ []string) error {
	a := GetApp()
	if a == nil {
		return fmt.Errorf("app not initialized")
	}

	bounds := a.Config.WindowOptions().Bounds
	if layoutWidth > 0 {
		bounds.Width = layoutWidth
	}
	if layoutHeight > 0 {
		bounds.Height = layoutHeight
	}

	chrome := a.Config.Chrome()
	panel := 0
	if layoutPanel > 0 {
		limits := a.Config.PanelLimits()
		panel = geometry.ClampPanelWidth(layoutPanel, bounds.Width, limits.MinWidth, chrome.SideInset)
	}

	renderer := styles.NewLayoutRenderer(a.Theme)
	fmt.Fprintln(cmd.OutOrStdout(), renderer.Render(bounds, geometry.Layout(bounds, chrome, panel)))
	return nil
}
