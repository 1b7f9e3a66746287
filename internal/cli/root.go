package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const asciiLogo = `
 _           _                  _
| |_ __   __| |  ___    __ _   __| |
| __|\ \ / /| | / _ \  / _' | / _' |
| |_  \ V / | || (_) || (_| || (_| |
 \__|  \_/  |_| \___/  \__,_| \__,_|`

var rootCmd = &cobra.Command{
	Use:   "tvload",
	Short: "TV channel listings loader for PostgreSQL",
	Long: asciiLogo + `

tvload reads a delimited TV channel listings file and appends its channels to
a PostgreSQL database, creating categories on demand. Rows are inserted one at
a time so a bad row never rolls back its neighbours; failures are logged,
skipped and counted instead of aborting the run.

Listings declare a nombre, url, formato, logo, estado, categoria header.
Connection settings come from flags, environment variables or tvload.yaml;
passwords only ever from the environment or ~/.pgpass.

Exit Codes:
  0  - Success
  1  - General error (load or validation failed)
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration or parameters
  11 - Database connection failed
  12 - User denied append approval
  13 - Load failed after connecting
  14 - Listings file missing or invalid`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Bool("help", false, "Help for tvload")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
