package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/chromic/internal/cli/styles"
	"github.com/bnema/chromic/internal/infrastructure/config"
)

var schemaOutDir string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
	Long:  `Show the effective configuration or print its JSON schema.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long:  `Display every setting after defaults, the config file and CHROMIC_* environment variables were merged.`,
	RunE:  runConfigShow,
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the configuration JSON schema",
	Long: `Print the JSON schema of the config file, for editor completion and validation.

With --write, the schema is written next to the config file instead.`,
	RunE: runConfigSchema,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSchemaCmd)
	configSchemaCmd.Flags().StringVar(&schemaOutDir, "write", "", "write the schema file into this directory")
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	a := GetApp()
	if a == nil {
		return fmt.Errorf("app not initialized")
	}

	renderer := styles.NewConfigRenderer(a.Theme)
	fmt.Fprintln(cmd.OutOrStdout(), renderer.RenderSettings(a.ConfigManager.ConfigFile(), a.ConfigManager.AllSettings()))
	return nil
}

func runConfigSchema(cmd *cobra.Command, _ []string) error {
	a := GetApp()
	if a == nil {
		return fmt.Errorf("app not initialized")
	}
	renderer := styles.NewConfigRenderer(a.Theme)

	if schemaOutDir != "" {
		path, err := config.GenerateSchemaFile(schemaOutDir)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), renderer.RenderError(err))
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderer.RenderSchemaWritten(path))
		return nil
	}

	schema, err := config.Schema()
	if err != nil {
		return fmt.Errorf("generate schema: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(append(schema, '\n'))
	return err
}
