package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vvka-141/tvload/internal/config"
	"github.com/vvka-141/tvload/internal/tui"
	"github.com/vvka-141/tvload/internal/tui/wizards"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage tvload.yaml configuration",
	Long: `Create or edit the tvload.yaml project configuration.

tvload.yaml supplies connection parameters and load settings (delimiter,
estado fallback, timeout) so they don't have to be repeated on every run.
CLI flags and environment variables always win over it.`,
}

var configInitNoInput bool

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Interactively create or edit tvload.yaml",
	Long: `Launches an interactive wizard to create or edit tvload.yaml.

The wizard guides you through:
  1. Database connection setup (host, port, authentication)
  2. Load settings (delimiter, estado fallback)
  3. Timeout settings

This command requires an interactive terminal. For non-interactive use,
pass --no-input to print a commented template to stdout:

  tvload config init --no-input > tvload.yaml

Examples:
  # Create config in current directory
  tvload config init

  # Create config in a specific project directory
  tvload config init ./mychannels`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigInit,
}

// configTemplate is what --no-input prints. Kept in step with the
// scaffold templates' tvload.yaml.
const configTemplate = `# tvload project configuration
#
# Flags and environment variables always win over this file.
# Credentials never belong here: use PGPASSWORD, ~/.pgpass, or a
# cloud auth method instead.
connection:
  host: localhost
  port: 5432
  username: postgres
  database: tvdb
  sslmode: prefer

load:
  # Field separator used by the listing files in this project.
  delimiter: ","
  # Uncomment to store a fixed estado for rows whose estado does not
  # parse as an integer. Leaving it commented rejects those rows.
  # status_fallback: 0

# Overall time budget for one load run.
timeout: 3m
`

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configInitCmd.Flags().BoolVar(&configInitNoInput, "no-input", false,
		"Print a tvload.yaml template to stdout instead of running the wizard")
	configInitCmd.ValidArgsFunction = completeDirectories
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	if configInitNoInput {
		fmt.Print(configTemplate)
		return nil
	}

	targetDir := "."
	if len(args) > 0 {
		targetDir = args[0]
	}

	// Require interactive terminal
	if !tui.IsInteractive() {
		return fmt.Errorf("config init requires an interactive terminal\n" +
			"For non-interactive use, create tvload.yaml manually or pass --no-input")
	}

	// Check if config already exists
	existingCfg, err := config.Load(targetDir)
	if err == nil && existingCfg != nil {
		fmt.Println("Found existing tvload.yaml")
		if !tui.PromptContinue("Overwrite existing configuration?") {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	// Run connection wizard
	connResult, err := wizards.RunConnectionWizard()
	if err != nil {
		return fmt.Errorf("connection wizard failed: %w", err)
	}
	if connResult.Cancelled {
		fmt.Println("Cancelled.")
		return nil
	}

	// Run config wizard with the connection
	cfgResult, err := wizards.RunConfigWizard(connResult.Config)
	if err != nil {
		return fmt.Errorf("config wizard failed: %w", err)
	}
	if cfgResult.Cancelled {
		fmt.Println("Cancelled.")
		return nil
	}

	if err := cfgResult.SaveConfig(targetDir); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Printf("\n✓ Configuration saved to %s\n", filepath.Join(targetDir, config.ConfigFileName))
	offerSavePgpass(&connResult.Config)
	return nil
}
