package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/vvka-141/tvload/pkg/tvload"
)

// maxReportedProblems caps how many row problems a validation report
// carries; beyond that only the counters grow.
const maxReportedProblems = 10

// ValidationReport is the result of a parse-only dry run over a
// listings file. It predicts what a load with the same settings would
// do, without touching any database.
type ValidationReport struct {
	// Records is the number of well-formed rows a load would insert
	Records int

	// Failed is the number of rows a load would skip
	Failed int

	// Categories is the number of distinct category labels seen on
	// well-formed rows (byte-exact matching, like the loader)
	Categories int

	// NullLogos is the number of well-formed rows whose logo would be
	// stored as NULL
	NullLogos int

	// Problems holds the first few row-level problems, for display
	Problems []string
}

func (r *ValidationReport) addProblem(problem string) {
	if len(r.Problems) < maxReportedProblems {
		r.Problems = append(r.Problems, problem)
	}
}

// ValidateService checks a listings file without loading it: header,
// row shape, and the estado policy are verified exactly as the loader
// would apply them.
type ValidateService struct {
	sourceFactory SourceFactory
	logger        tvload.Logger
}

// NewValidateService creates a new ValidateService.
//
// Panics if any dependency is nil (programmer error, same contract as
// the other service constructors).
func NewValidateService(sourceFactory SourceFactory, logger tvload.Logger) *ValidateService {
	if sourceFactory == nil {
		panic("sourceFactory cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	return &ValidateService{
		sourceFactory: sourceFactory,
		logger:        logger,
	}
}

// Run validates the configured listings file and reports what a load
// would do. With Strict set, any row a load would skip makes the run
// fail with tvload.ErrSourceInvalid.
func (s *ValidateService) Run(ctx context.Context, config tvload.ValidateConfig) (ValidationReport, error) {
	var report ValidationReport

	if err := config.Validate(); err != nil {
		return report, fmt.Errorf("invalid configuration: %w", err)
	}

	s.logger.Verbose("Validating listings file %s...", config.SourcePath)

	src, err := s.sourceFactory(config.SourcePath, config.Delimiter)
	if err != nil {
		return report, err
	}
	defer src.Close()

	categories := make(map[string]struct{})
	for {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("validation aborted: %w", err)
		}

		record, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var rowErr *tvload.RowError
			if errors.As(err, &rowErr) {
				report.Failed++
				report.addProblem(rowErr.Error())
				continue
			}
			return report, fmt.Errorf("%w: reading source: %w", tvload.ErrSourceInvalid, err)
		}

		if _, err := parseStatus(record.Status, config.StatusFallback); err != nil {
			report.Failed++
			report.addProblem(fmt.Sprintf("channel %q: %v", record.Name, err))
			continue
		}

		report.Records++
		if record.Logo == "" {
			report.NullLogos++
		}
		if _, seen := categories[record.Category]; !seen {
			categories[record.Category] = struct{}{}
			report.Categories++
		}
	}

	s.logger.Verbose("Validation finished: %d loadable, %d failing", report.Records, report.Failed)

	if config.Strict && report.Failed > 0 {
		return report, fmt.Errorf("%w: %d row(s) would be skipped by a load", tvload.ErrSourceInvalid, report.Failed)
	}
	return report, nil
}
