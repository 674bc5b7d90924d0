package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/chromic/internal/cli/styles"
)

var aboutCmd = &cobra.Command{
	Use:   "about",
	Short: "Show version and build information",
	Long:  `Display version, build info and repository URL.`,
	RunE:  runAbout,
}

func init() {
	rootCmd.AddCommand(aboutCmd)
}

func runAbout(cmd *cobra.Command, _ []string) error {
	renderer := styles.NewAboutRenderer(styles.NewTheme())
	fmt.Fprintln(cmd.OutOrStdout(), renderer.Render(buildInfo))
	return nil
}
