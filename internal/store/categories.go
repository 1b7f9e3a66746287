package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/vvka-141/tvload/pkg/tvload"
)

// Categories is the PostgreSQL-backed CategoryStore.
type Categories struct {
	q Querier
}

// NewCategories creates a category store over q.
// Panics if q is nil.
func NewCategories(q Querier) *Categories {
	if q == nil {
		panic("querier cannot be nil")
	}
	return &Categories{q: q}
}

// FindIDByName looks up a category id by byte-exact name. The boolean
// reports whether a row was found; a missing row is not an error.
func (s *Categories) FindIDByName(ctx context.Context, name string) (int64, bool, error) {
	var id int64
	err := s.q.QueryRow(ctx, queryFindCategoryByName, name).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to look up category %q: %w", name, err)
	}
	return id, true, nil
}

// Insert creates a category row and returns its assigned id. The pgx
// error chain is preserved so callers can detect a unique violation from
// a concurrent insert of the same name.
func (s *Categories) Insert(ctx context.Context, name string) (int64, error) {
	var id int64
	if err := s.q.QueryRow(ctx, queryInsertCategory, name).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to insert category %q: %w", name, err)
	}
	return id, nil
}

// Verify Categories implements the interface at compile time
var _ tvload.CategoryStore = (*Categories)(nil)
