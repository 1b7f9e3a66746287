package tvload

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // Load/validate completed successfully
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid configuration or parameters
	ExitConnectionError = 11 // Failed to connect to database
	ExitApprovalDenied  = 12 // User denied append approval
	ExitLoadFailed      = 13 // Store rejected the load after connecting
	ExitSourceInvalid   = 14 // Listings file missing or header mismatch
)

const (
	// DefaultRetryInitialDelay is the default initial delay before the first retry attempt.
	DefaultRetryInitialDelay = 100 * time.Millisecond

	// DefaultRetryMaxDelay is the default maximum delay between retry attempts.
	DefaultRetryMaxDelay = 1 * time.Minute

	// DefaultRetryMaxAttempts is the default maximum number of retry attempts.
	DefaultRetryMaxAttempts = 3

	// DefaultDelimiter is the field delimiter used when none is configured.
	DefaultDelimiter = ','

	// CategoriesTable is the category table name in the backing store.
	CategoriesTable = "categorias"

	// ChannelsTable is the channel table name in the backing store.
	ChannelsTable = "canales"
)

// SourceFields lists the header fields a listings file must declare,
// in their canonical order. Header matching is case-insensitive; the
// columns themselves may appear in any order.
var SourceFields = []string{"nombre", "url", "formato", "logo", "estado", "categoria"}
