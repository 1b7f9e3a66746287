// Package fixtures builds throwaway listings files for load tests.
package fixtures

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Header is the canonical listings header row.
const Header = "nombre,url,formato,logo,estado,categoria"

// ListingsBuilder provides a fluent API for building listings files
// used in load tests.
//
// Example usage:
//
//	path := fixtures.NewListingsBuilder().
//	    AddChannel("ESPN", "Sports").
//	    AddRaw("broken,row").
//	    Write(t)
type ListingsBuilder struct {
	delimiter string
	header    string
	rows      []string
}

// NewListingsBuilder creates a builder with the canonical header and a
// comma delimiter.
func NewListingsBuilder() *ListingsBuilder {
	return &ListingsBuilder{
		delimiter: ",",
		header:    Header,
	}
}

// WithDelimiter switches the field delimiter. The canonical header is
// re-joined with it.
func (b *ListingsBuilder) WithDelimiter(delimiter rune) *ListingsBuilder {
	b.delimiter = string(delimiter)
	b.header = strings.ReplaceAll(Header, ",", b.delimiter)
	return b
}

// WithHeader replaces the header row entirely, for malformed-header
// tests.
func (b *ListingsBuilder) WithHeader(header string) *ListingsBuilder {
	b.header = header
	return b
}

// AddChannel adds a well-formed active channel. URL, format and logo
// are derived from the name.
func (b *ListingsBuilder) AddChannel(name, category string) *ListingsBuilder {
	slug := strings.ToLower(strings.ReplaceAll(name, " ", "-"))
	return b.AddChannelDetail(name,
		"http://example.test/"+slug,
		"m3u8",
		"http://example.test/"+slug+".png",
		"1",
		category,
	)
}

// AddChannelDetail adds a row with every field spelled out. Values must
// not contain the delimiter; use AddRaw for rows that need quoting or
// deliberate breakage.
func (b *ListingsBuilder) AddChannelDetail(name, url, format, logo, estado, category string) *ListingsBuilder {
	b.rows = append(b.rows, strings.Join([]string{name, url, format, logo, estado, category}, b.delimiter))
	return b
}

// AddRaw adds a line exactly as given.
func (b *ListingsBuilder) AddRaw(row string) *ListingsBuilder {
	b.rows = append(b.rows, row)
	return b
}

// Content renders the listings file content.
func (b *ListingsBuilder) Content() string {
	lines := append([]string{b.header}, b.rows...)
	return strings.Join(lines, "\n") + "\n"
}

// Write materializes the listings in a temp directory owned by t and
// returns the file path.
func (b *ListingsBuilder) Write(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "channels.csv")
	if err := os.WriteFile(path, []byte(b.Content()), 0o644); err != nil {
		t.Fatalf("Failed to write listings fixture: %v", err)
	}
	return path
}

// Channels generates n well-formed channels spread round-robin over the
// given categories.
func (b *ListingsBuilder) Channels(n int, categories ...string) *ListingsBuilder {
	for i := 0; i < n; i++ {
		category := ""
		if len(categories) > 0 {
			category = categories[i%len(categories)]
		}
		b.AddChannel(fmt.Sprintf("Canal %03d", i+1), category)
	}
	return b
}
