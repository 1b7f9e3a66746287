// Package source implements record sources for channel listings.
//
// CSVSource reads delimited listings files (the production path);
// MemorySource serves tests that need scripted records and injected
// failures without touching the filesystem.
//
// Both implement tvload.RecordSource: lazy iteration via Next, restart
// via Reset, and io.EOF to signal the end of input. Malformed rows come
// back as *tvload.RowError so callers can log, skip, and continue.
package source
