package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bnema/chromic/internal/cli"
)

var (
	runScript  string
	runSummary bool
	runWatch   bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Drive a headless shell with JSON commands",
	Long: `Boot a headless shell (in-memory surfaces and windows), read one JSON
command per line and print responses and pushed events as JSON lines.

A command looks like:
  {"id":"1","window":"main","command":"tabs.create","args":{"url":"example.com"}}

The window defaults to "main". Lines starting with '#' are ignored.

Examples:
  chromic run --script session.jsonl
  echo '{"command":"tabs.list"}' | chromic run --summary`,
	RunE: runShell,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&runScript, "script", "s", "", "read commands from file instead of stdin")
	runCmd.Flags().BoolVar(&runSummary, "summary", false, "render every window to stderr before exiting")
	runCmd.Flags().BoolVar(&runWatch, "watch", true, "apply config file edits while running")
}

func runShell(cmd *cobra.Command, _ []string) error {
	a := GetApp()
	if a == nil {
		return fmt.Errorf("app not initialized")
	}

	var in io.Reader = cmd.InOrStdin()
	if runScript != "" {
		f, err := os.Open(runScript)
		if err != nil {
			return fmt.Errorf("open script: %w", err)
		}
		defer f.Close()
		in = f
	}

	ctx, stop := signal.NotifyContext(a.Ctx(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := cli.SessionOptions{
		Config: a.Config,
		Input:  in,
		Output: cmd.OutOrStdout(),
		Theme:  a.Theme,
	}
	if runWatch {
		opts.Manager = a.ConfigManager
	}
	if runSummary {
		opts.Summary = cmd.ErrOrStderr()
	}

	return cli.RunSession(ctx, opts)
}
