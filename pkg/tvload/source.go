package tvload

import "fmt"

// Record is one flat row from a listings file. Field values are kept
// exactly as read — no trimming, no case folding. Status stays a string
// here because the estado policy (reject vs fallback) is applied by the
// loader, not the source.
type Record struct {
	Name     string
	URL      string
	Format   string
	Logo     string
	Status   string
	Category string

	// Line is the 1-based physical line in the input file, for error
	// attribution. Zero for records not read from a file.
	Line int
}

// RowError is a recoverable, row-scoped failure with enough context to
// log and move on. A RecordSource returns it from Next for malformed
// rows; the loader counts the row as failed and continues.
type RowError struct {
	File    string // source file path ("" for in-memory sources)
	Line    int    // 1-based line number (0 if unknown)
	Field   string // offending field name, if attributable
	Message string // primary error message
	Err     error  // underlying cause, if any
}

// Error implements the error interface with location context.
func (e *RowError) Error() string {
	location := e.File
	if e.Line > 0 {
		if location != "" {
			location = fmt.Sprintf("%s:%d", location, e.Line)
		} else {
			location = fmt.Sprintf("line %d", e.Line)
		}
	}

	msg := e.Message
	if e.Field != "" {
		msg = fmt.Sprintf("field %s: %s", e.Field, msg)
	}
	if location != "" {
		msg = fmt.Sprintf("%s: %s", location, msg)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying cause for errors.Is/As chains.
func (e *RowError) Unwrap() error {
	return e.Err
}

// RecordSource produces the ordered sequence of records from a listings
// input. Implementations are lazy (rows are read on demand), finite,
// and restartable via Reset.
//
// Implementations are NOT safe for concurrent use. The loader consumes
// a source from a single goroutine.
type RecordSource interface {
	// Next returns the next record in order. It returns io.EOF when the
	// sequence is exhausted. A malformed row is reported as a *RowError;
	// callers log and skip it, then keep calling Next. Any other error
	// means the input itself failed and the read cannot continue.
	Next() (Record, error)

	// Reset restarts the sequence from the first record.
	Reset() error

	// Close releases the underlying input. Idempotent.
	Close() error
}
