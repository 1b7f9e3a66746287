package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/tvload/internal/schema"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the target table DDL",
	Long: `Print the SQL definition of the categorias and canales tables.

The same DDL is applied automatically at the start of every load, so
this command is for provisioning a database ahead of time or reviewing
what a load expects.

Examples:
  # Review the tables a load creates
  tvload schema

  # Provision a database without loading
  tvload schema | psql -d tvdb`,
	Run: func(cmd *cobra.Command, args []string) {
		// DDL to stdout for piping into psql
		fmt.Print(schema.DDL())
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
