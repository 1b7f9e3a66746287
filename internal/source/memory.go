package source

import (
	"fmt"
	"io"

	"github.com/vvka-141/tvload/pkg/tvload"
)

// memoryItem is one scripted Next result: either a record or an error.
type memoryItem struct {
	record tvload.Record
	err    error
}

// MemorySource is an in-memory RecordSource for tests. Items are served
// in the order they were added; errors added with AddError are yielded
// in sequence exactly like records, which lets tests script a malformed
// row between two good ones or a mid-stream input failure.
type MemorySource struct {
	items  []memoryItem
	pos    int
	closed bool
}

// NewMemorySource creates a source that yields the given records in order.
func NewMemorySource(records ...tvload.Record) *MemorySource {
	s := &MemorySource{}
	for _, record := range records {
		s.Add(record)
	}
	return s
}

// Add appends a record to the sequence.
func (s *MemorySource) Add(record tvload.Record) *MemorySource {
	s.items = append(s.items, memoryItem{record: record})
	return s
}

// AddError appends an error to the sequence. Next returns it at that
// position; iteration continues afterwards, matching how a file source
// recovers from a malformed row.
func (s *MemorySource) AddError(err error) *MemorySource {
	s.items = append(s.items, memoryItem{err: err})
	return s
}

// Next returns the next scripted item, or io.EOF past the end.
func (s *MemorySource) Next() (tvload.Record, error) {
	if s.closed {
		return tvload.Record{}, fmt.Errorf("source is closed")
	}
	if s.pos >= len(s.items) {
		return tvload.Record{}, io.EOF
	}
	item := s.items[s.pos]
	s.pos++
	if item.err != nil {
		return tvload.Record{}, item.err
	}
	return item.record, nil
}

// Reset restarts the sequence from the first item.
func (s *MemorySource) Reset() error {
	if s.closed {
		return fmt.Errorf("source is closed")
	}
	s.pos = 0
	return nil
}

// Close marks the source closed. Idempotent.
func (s *MemorySource) Close() error {
	s.closed = true
	return nil
}

// Closed reports whether Close has been called, for release-order
// assertions in session tests.
func (s *MemorySource) Closed() bool {
	return s.closed
}

// Describe returns a log-friendly identity for the source.
func (s *MemorySource) Describe() string {
	return fmt.Sprintf("in-memory (%d items)", len(s.items))
}

// Verify MemorySource implements the interface at compile time
var _ tvload.RecordSource = (*MemorySource)(nil)
