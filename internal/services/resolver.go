package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/vvka-141/tvload/internal/store"
	"github.com/vvka-141/tvload/pkg/tvload"
)

// CategoryResolver maps category labels to their store-assigned ids,
// creating missing categories on first encounter.
//
// Resolution order: run-scoped cache, then store lookup, then insert.
// Labels are matched byte-exact — "Deportes", "deportes" and
// "Deportes " are three different categories, and the empty label is a
// category like any other. The cache never expires; category rows are
// not renamed or deleted while a load runs.
//
// CategoryResolver is safe for concurrent use. The unique constraint on
// the category name is the arbiter when two loaders race to create the
// same label: the loser detects the unique violation and re-queries for
// the winner's row instead of failing.
type CategoryResolver struct {
	store  tvload.CategoryStore
	logger tvload.Logger

	mu      sync.Mutex
	cache   map[string]int64
	created int
}

// NewCategoryResolver creates a resolver over the given store.
//
// Panics if store or logger is nil (programmer error — the load service
// always constructs resolvers with live dependencies).
func NewCategoryResolver(categoryStore tvload.CategoryStore, logger tvload.Logger) *CategoryResolver {
	if categoryStore == nil {
		panic("categoryStore cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	return &CategoryResolver{
		store:  categoryStore,
		logger: logger,
		cache:  make(map[string]int64),
	}
}

// Resolve returns the category id for name, creating the category row
// if it does not exist yet. Store failures wrap tvload.ErrStoreFailed.
func (r *CategoryResolver) Resolve(ctx context.Context, name string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.cache[name]; ok {
		return id, nil
	}

	id, found, err := r.store.FindIDByName(ctx, name)
	if err != nil {
		return 0, fmt.Errorf("%w: looking up category %q: %w", tvload.ErrStoreFailed, name, err)
	}
	if found {
		r.cache[name] = id
		return id, nil
	}

	id, err = r.insert(ctx, name)
	if err != nil {
		return 0, err
	}

	r.cache[name] = id
	return id, nil
}

// insert creates the category row, resolving the create/create race:
// when a concurrent loader wins the insert, the unique violation is the
// signal to re-query and adopt the winner's id.
func (r *CategoryResolver) insert(ctx context.Context, name string) (int64, error) {
	id, err := r.store.Insert(ctx, name)
	if err == nil {
		r.created++
		r.logger.Verbose("Created category %q (id %d)", name, id)
		return id, nil
	}

	if !store.IsUniqueViolation(err) {
		return 0, fmt.Errorf("%w: creating category %q: %w", tvload.ErrStoreFailed, name, err)
	}

	id, found, err := r.store.FindIDByName(ctx, name)
	if err != nil {
		return 0, fmt.Errorf("%w: re-querying category %q after unique violation: %w", tvload.ErrStoreFailed, name, err)
	}
	if !found {
		// Insert hit a duplicate but the row is gone; something outside
		// this run is deleting categories mid-load.
		return 0, fmt.Errorf("%w: category %q vanished after unique violation", tvload.ErrStoreFailed, name)
	}

	r.logger.Verbose("Category %q created concurrently, adopting id %d", name, id)
	return id, nil
}

// CreatedCount reports how many distinct new categories this resolver
// created so far.
func (r *CategoryResolver) CreatedCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.created
}

// Verify CategoryResolver implements the interface at compile time
var _ tvload.CategoryResolver = (*CategoryResolver)(nil)
