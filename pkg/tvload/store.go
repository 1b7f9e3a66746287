package tvload

import "context"

// Category is a named grouping entity that channels are classified
// under. Owned by the backing store; created lazily on first encounter
// of a new label, never updated or deleted during a run.
type Category struct {
	ID   int64
	Name string
}

// Channel is a single listing row bound for the channel table. Logo is
// nil when the source field was empty — stored as SQL NULL, never as an
// empty string.
type Channel struct {
	Name       string
	URL        string
	Format     string
	Logo       *string
	Status     int
	CategoryID int64
}

// CategoryStore persists category rows.
//
// Stores backed by the single session connection are consumed from one
// goroutine; the loader serializes all store access.
type CategoryStore interface {
	// FindIDByName looks up a category id by exact name match
	// (case-sensitive, whitespace-sensitive). The boolean reports
	// whether a row was found.
	FindIDByName(ctx context.Context, name string) (int64, bool, error)

	// Insert creates a new category row and returns its assigned id.
	// A concurrent insert of the same name surfaces as a unique
	// violation; callers detect it and re-query instead of failing.
	Insert(ctx context.Context, name string) (int64, error)
}

// ChannelStore persists channel rows. Consumed from a single goroutine,
// like CategoryStore.
type ChannelStore interface {
	// Insert creates one channel row. Each call is an independent unit
	// of work — no transaction spans multiple rows.
	Insert(ctx context.Context, ch Channel) error

	// Count reports the number of channel rows currently in the store.
	// Used by the append guard before a run.
	Count(ctx context.Context) (int64, error)
}
