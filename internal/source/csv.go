package source

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vvka-141/tvload/internal/checksum"
	"github.com/vvka-141/tvload/pkg/tvload"
)

// CSVSource reads channel records from a delimited listings file.
//
// The file must start with a header row naming all of nombre, url,
// formato, logo, estado and categoria (any order, case-insensitive).
// Data fields are passed through exactly as written: no trimming and no
// case folding, because category matching downstream is byte-exact.
//
// CSVSource is not safe for concurrent use.
type CSVSource struct {
	path      string
	name      string
	delimiter rune

	file    *os.File
	reader  *csv.Reader
	columns map[string]int // canonical field name -> column index

	checksum string
}

// NewCSVSource opens path, fingerprints its content, and validates the
// header row. A delimiter of 0 selects the default comma. Header
// problems are reported as tvload.ErrSourceInvalid; the file stays
// closed on any error.
// Panics if calculator is nil.
func NewCSVSource(path string, delimiter rune, calculator checksum.Calculator) (*CSVSource, error) {
	if calculator == nil {
		panic("calculator cannot be nil")
	}
	if delimiter == 0 {
		delimiter = tvload.DefaultDelimiter
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open source file: %w", tvload.ErrSourceInvalid, err)
	}

	digest, err := calculator.CalculateReader(file)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("%w: failed to read source file %s: %w", tvload.ErrSourceInvalid, path, err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		file.Close()
		return nil, fmt.Errorf("%w: failed to rewind source file %s: %w", tvload.ErrSourceInvalid, path, err)
	}

	s := &CSVSource{
		path:      path,
		name:      filepath.Base(path),
		delimiter: delimiter,
		file:      file,
		checksum:  digest,
	}
	if err := s.readHeader(); err != nil {
		file.Close()
		return nil, err
	}
	return s, nil
}

// readHeader initializes the csv reader on the current file position and
// consumes the header row, building the column map.
func (s *CSVSource) readHeader() error {
	r := csv.NewReader(bufio.NewReader(s.file))
	r.Comma = s.delimiter
	// Leading whitespace is data, not formatting.
	r.TrimLeadingSpace = false
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return fmt.Errorf("%w: %s is empty, expected a header row", tvload.ErrSourceInvalid, s.name)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: unreadable header row: %v", tvload.ErrSourceInvalid, s.name, err)
	}

	columns := make(map[string]int, len(tvload.SourceFields))
	for i, cell := range header {
		if i == 0 {
			cell = strings.TrimPrefix(cell, "\ufeff")
		}
		name := strings.ToLower(strings.TrimSpace(cell))
		if !isSourceField(name) {
			return fmt.Errorf("%w: %s: unknown header column %q", tvload.ErrSourceInvalid, s.name, cell)
		}
		if _, dup := columns[name]; dup {
			return fmt.Errorf("%w: %s: duplicate header column %q", tvload.ErrSourceInvalid, s.name, cell)
		}
		columns[name] = i
	}
	for _, field := range tvload.SourceFields {
		if _, ok := columns[field]; !ok {
			return fmt.Errorf("%w: %s: missing header column %q", tvload.ErrSourceInvalid, s.name, field)
		}
	}

	// Every data row must have exactly as many fields as the header.
	r.FieldsPerRecord = len(header)
	s.reader = r
	s.columns = columns
	return nil
}

func isSourceField(name string) bool {
	for _, field := range tvload.SourceFields {
		if name == field {
			return true
		}
	}
	return false
}

// Next returns the next record in file order. Malformed rows (wrong
// field count, broken quoting) are reported as *tvload.RowError and the
// reader continues on the following line.
func (s *CSVSource) Next() (tvload.Record, error) {
	if s.reader == nil {
		return tvload.Record{}, fmt.Errorf("source %s is closed", s.name)
	}

	row, err := s.reader.Read()
	if err == io.EOF {
		return tvload.Record{}, io.EOF
	}
	if err != nil {
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			return tvload.Record{}, &tvload.RowError{
				File:    s.name,
				Line:    parseErr.Line,
				Message: "malformed row",
				Err:     parseErr.Err,
			}
		}
		return tvload.Record{}, fmt.Errorf("failed to read %s: %w", s.name, err)
	}

	line, _ := s.reader.FieldPos(0)
	return tvload.Record{
		Name:     row[s.columns["nombre"]],
		URL:      row[s.columns["url"]],
		Format:   row[s.columns["formato"]],
		Logo:     row[s.columns["logo"]],
		Status:   row[s.columns["estado"]],
		Category: row[s.columns["categoria"]],
		Line:     line,
	}, nil
}

// Reset rewinds to the beginning of the file and re-reads the header.
func (s *CSVSource) Reset() error {
	if s.file == nil {
		return fmt.Errorf("source %s is closed", s.name)
	}
	if _, err := s.file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to rewind source file %s: %w", s.path, err)
	}
	return s.readHeader()
}

// Close releases the underlying file. Idempotent.
func (s *CSVSource) Close() error {
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	s.reader = nil
	return err
}

// Checksum returns the SHA-256 hex digest of the file content as read
// at open time.
func (s *CSVSource) Checksum() string {
	return s.checksum
}

// Describe returns a log-friendly identity for the source.
func (s *CSVSource) Describe() string {
	digest := s.checksum
	if len(digest) > 12 {
		digest = digest[:12]
	}
	return fmt.Sprintf("%s (sha256 %s)", s.path, digest)
}

// Verify CSVSource implements the interface at compile time
var _ tvload.RecordSource = (*CSVSource)(nil)
