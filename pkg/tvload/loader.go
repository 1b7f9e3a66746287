package tvload

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Summary is the observational result of a finished run. It has no
// effect on data correctness.
type Summary struct {
	// RunID identifies this run in log output
	RunID uuid.UUID

	// CategoriesCreated is the number of distinct new category rows
	// created during the run
	CategoriesCreated int

	// ChannelsInserted is the number of channel rows successfully inserted
	ChannelsInserted int

	// RowsFailed is the number of rows skipped after a per-row failure
	// (malformed input, rejected estado, resolution or insert error)
	RowsFailed int

	// Elapsed is the wall-clock duration of the run
	Elapsed time.Duration
}

// Loader is the main interface for executing a load run.
// Implementations handle the full workflow: source reading, category
// resolution, channel insertion, and the final summary.
type Loader interface {
	// Run executes a load using the provided configuration. The returned
	// Summary is valid whenever err is nil; per-row failures do not make
	// the run fail, only connectivity loss or a denied approval do.
	Run(ctx context.Context, config LoadConfig) (Summary, error)
}

// CategoryResolver maps a category label to its stable store-assigned
// id, consulting a run-scoped cache first, then the store, creating the
// row if absent.
//
// Implementations must be safe for concurrent use by multiple goroutines.
type CategoryResolver interface {
	// Resolve returns the category id for name, creating the category
	// if it does not exist. Store failures wrap ErrStoreFailed.
	Resolve(ctx context.Context, name string) (int64, error)

	// CreatedCount reports how many distinct new categories this
	// resolver created so far.
	CreatedCount() int
}
