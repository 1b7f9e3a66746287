package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vvka-141/tvload/internal/logging"
	"github.com/vvka-141/tvload/internal/services"
	"github.com/vvka-141/tvload/pkg/tvload"
)

var validateCmd = &cobra.Command{
	Use:   "validate <listings_file>",
	Short: "Check a listings file without loading it",
	Long: `Validate parses a listings file exactly as load would, without touching
any database.

The validate command:
1. Opens the listings file and validates its header
2. Walks every row, applying the same estado policy as load
3. Reports how many rows a load would insert and how many it would skip

Use --strict to fail the command when any row would be skipped, for
example as a pre-load gate in CI.

Arguments:
  listings_file   Path to the delimited listings file

Examples:
  # Check a file before loading
  tvload validate ./channels.csv

  # Semicolon-delimited listings
  tvload validate ./channels.csv --delimiter ';'

  # Fail if any row would be skipped
  tvload validate ./channels.csv --strict

  # Report with the estado fallback a load would use
  tvload validate ./channels.csv --status-fallback 0`,
	Args: RequireListingsPath,
	RunE: runValidate,
}

type validateFlagValues struct {
	delimiter      string
	statusFallback string
	strict         bool
}

var validateFlags validateFlagValues

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateFlags.delimiter, "delimiter", "",
		"Field delimiter in the listings file (single character, or \\t for tab)\n"+
			"Precedence: --delimiter > tvload.yaml load.delimiter > ','")
	validateCmd.Flags().StringVar(&validateFlags.statusFallback, "status-fallback", "",
		"Integer a load would store as estado for rows whose estado does not parse\n"+
			"Precedence: --status-fallback > tvload.yaml load.status_fallback")
	validateCmd.Flags().BoolVar(&validateFlags.strict, "strict", false,
		"Exit with an error when any row would be skipped by a load")

	validateCmd.ValidArgsFunction = completeListingsFiles
}

// buildValidateConfig builds a ValidateConfig from CLI flags and the
// tvload.yaml found in configDir. Extracted for testability; runValidate
// passes the current directory.
func buildValidateConfig(sourcePath, configDir string, verbose bool) (tvload.ValidateConfig, error) {
	projectCfg, err := loadProjectConfig(configDir)
	if err != nil {
		return tvload.ValidateConfig{}, err
	}

	delimiter, err := resolveDelimiter(validateFlags.delimiter, projectCfg)
	if err != nil {
		return tvload.ValidateConfig{}, fmt.Errorf("%w: %w", tvload.ErrInvalidConfig, err)
	}

	statusFallback, err := resolveStatusFallback(validateFlags.statusFallback, projectCfg)
	if err != nil {
		return tvload.ValidateConfig{}, fmt.Errorf("%w: %w", tvload.ErrInvalidConfig, err)
	}

	return tvload.ValidateConfig{
		SourcePath:     sourcePath,
		Delimiter:      delimiter,
		StatusFallback: statusFallback,
		Strict:         validateFlags.strict,
		Verbose:        verbose,
	}, nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	sourcePath := args[0]
	verbose := getVerboseFlag(cmd)

	config, err := buildValidateConfig(sourcePath, ".", verbose)
	if err != nil {
		return err
	}

	logger := logging.NewConsoleLogger(verbose)
	validator := services.NewValidateService(services.CSVSourceFactory, logger)

	report, runErr := validator.Run(context.Background(), config)

	// A report full of zeroes from a file that never opened is noise,
	// so only print once at least the header was read.
	if runErr == nil || report.Records+report.Failed > 0 {
		printValidationReport(sourcePath, report)
	}
	if runErr != nil {
		return fmt.Errorf("validation failed: %w", runErr)
	}
	return nil
}

// printValidationReport writes the human-readable report to stderr.
func printValidationReport(path string, report services.ValidationReport) {
	fmt.Fprintf(os.Stderr, "\nValidation of %s:\n", path)
	fmt.Fprintf(os.Stderr, "  Loadable rows:       %d\n", report.Records)
	fmt.Fprintf(os.Stderr, "  Rows to skip:        %d\n", report.Failed)
	fmt.Fprintf(os.Stderr, "  Distinct categories: %d\n", report.Categories)
	fmt.Fprintf(os.Stderr, "  NULL logos:          %d\n", report.NullLogos)

	if len(report.Problems) > 0 {
		fmt.Fprintln(os.Stderr, "\nProblems:")
		for _, p := range report.Problems {
			fmt.Fprintf(os.Stderr, "  ✗ %s\n", p)
		}
		if report.Failed > len(report.Problems) {
			fmt.Fprintf(os.Stderr, "  ... and %d more\n", report.Failed-len(report.Problems))
		}
	}
	if report.Failed == 0 {
		fmt.Fprintln(os.Stderr, "\n✓ Every row is loadable")
	}
}
