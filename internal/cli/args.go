package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RequireListingsPath validates that exactly one listings_file argument is provided.
// Returns a helpful error message with usage and examples if missing or too many.
func RequireListingsPath(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf(`missing required argument: <listings_file>

Usage: %s

Example:
  %s ./channels.csv -d tvdb`, cmd.UseLine(), cmd.CommandPath())
	}
	if len(args) > 1 {
		return fmt.Errorf("accepts 1 arg(s), received %d", len(args))
	}
	return nil
}

// RequireTemplateName validates that exactly one template_name argument is provided.
// Returns a helpful error message with usage and examples if missing or too many.
func RequireTemplateName(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf(`missing required argument: <template_name>

Usage: %s

Example:
  %s basic

Use 'tvload templates list' to see available templates.`, cmd.UseLine(), cmd.CommandPath())
	}
	if len(args) > 1 {
		return fmt.Errorf("accepts 1 arg(s), received %d", len(args))
	}
	return nil
}
