package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vvka-141/tvload/internal/checksum"
	"github.com/vvka-141/tvload/internal/source"
	"github.com/vvka-141/tvload/pkg/tvload"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <listings_file>",
	Short: "Show statistics about a listings file",
	Long: `Inspect summarizes a listings file without loading or validating it.

This command:
1. Opens the listings file and fingerprints its content
2. Walks every row, tallying categories, formats and estado values
3. Prints a summary with per-category channel counts

No database connection required - analysis is purely file-driven.

Examples:
  # Human-readable summary
  tvload inspect ./channels.csv

  # Machine-readable output for scripts
  tvload inspect ./channels.csv --json

  # Semicolon-delimited listings
  tvload inspect ./channels.csv --delimiter ';'`,
	Args: RequireListingsPath,
	RunE: runInspect,
}

var (
	inspectJSON      bool
	inspectDelimiter string
)

// maxInspectProblems caps the malformed rows listed in human output.
const maxInspectProblems = 10

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.ValidArgsFunction = completeListingsFiles

	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "Output statistics as JSON")
	inspectCmd.Flags().StringVar(&inspectDelimiter, "delimiter", "",
		"Field delimiter in the listings file (single character, or \\t for tab)\n"+
			"Precedence: --delimiter > tvload.yaml load.delimiter > ','")
}

func runInspect(cmd *cobra.Command, args []string) error {
	sourcePath := args[0]
	verbose := getVerboseFlag(cmd)

	projectCfg, err := loadProjectConfig(".")
	if err != nil {
		return err
	}

	delimiter, err := resolveDelimiter(inspectDelimiter, projectCfg)
	if err != nil {
		return fmt.Errorf("%w: %w", tvload.ErrInvalidConfig, err)
	}
	if delimiter == 0 {
		delimiter = tvload.DefaultDelimiter
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "[VERBOSE] Listings file: %s\n", sourcePath)
		fmt.Fprintf(os.Stderr, "[VERBOSE] Delimiter: %q\n", delimiter)
	}

	src, err := source.NewCSVSource(sourcePath, delimiter, checksum.New())
	if err != nil {
		return err
	}
	defer src.Close()

	categories := make(map[string]int)
	formats := make(map[string]int)
	statuses := make(map[string]int)
	var rows, malformed, nullLogos, nonIntegerStatus int
	var problems []string

	for {
		record, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var rowErr *tvload.RowError
			if errors.As(err, &rowErr) {
				malformed++
				if len(problems) < maxInspectProblems {
					problems = append(problems, rowErr.Error())
				}
				continue
			}
			return fmt.Errorf("failed to read %s: %w", sourcePath, err)
		}

		rows++
		categories[record.Category]++
		formats[record.Format]++
		statuses[record.Status]++
		if record.Logo == "" {
			nullLogos++
		}
		if _, err := strconv.Atoi(strings.TrimSpace(record.Status)); err != nil {
			nonIntegerStatus++
		}
	}

	if inspectJSON {
		result := map[string]interface{}{
			"file":               sourcePath,
			"checksum":           src.Checksum(),
			"delimiter":          string(delimiter),
			"rows":               rows,
			"malformed_rows":     malformed,
			"null_logos":         nullLogos,
			"non_integer_estado": nonIntegerStatus,
			"categories":         categories,
			"formats":            formats,
			"estado_values":      statuses,
		}
		jsonBytes, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(jsonBytes))
		return nil
	}

	// Human-readable output
	fmt.Fprintf(os.Stderr, "\n%s\n", src.Describe())
	fmt.Fprintf(os.Stderr, "\nSummary:\n")
	fmt.Fprintf(os.Stderr, "  Rows:               %d\n", rows)
	fmt.Fprintf(os.Stderr, "  Malformed rows:     %d\n", malformed)
	fmt.Fprintf(os.Stderr, "  NULL logos:         %d\n", nullLogos)
	fmt.Fprintf(os.Stderr, "  Non-integer estado: %d\n", nonIntegerStatus)

	printCountTable("Categories", categories)
	printCountTable("Formats", formats)
	printCountTable("Estado values", statuses)

	if len(problems) > 0 {
		fmt.Fprintln(os.Stderr, "\nMalformed rows:")
		for _, p := range problems {
			fmt.Fprintf(os.Stderr, "  ✗ %s\n", p)
		}
		if malformed > len(problems) {
			fmt.Fprintf(os.Stderr, "  ... and %d more\n", malformed-len(problems))
		}
	}

	if nonIntegerStatus > 0 {
		fmt.Fprintln(os.Stderr, "\nℹ Rows with non-integer estado are skipped by load unless a status fallback is configured")
	}

	return nil
}

// printCountTable writes a sorted label-count table to stderr. Empty
// labels are shown as (empty) so a missing categoria stands out.
func printCountTable(title string, counts map[string]int) {
	fmt.Fprintf(os.Stderr, "\n%s (%d):\n", title, len(counts))

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		label := k
		if label == "" {
			label = "(empty)"
		}
		fmt.Fprintf(os.Stderr, "  %-24s %d\n", label, counts[k])
	}
}
