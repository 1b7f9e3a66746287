package tvload

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DatabaseManager defines the interface for database management operations.
// tvload itself never creates or drops databases; the test harness uses
// this to provision isolated databases per test.
//
// Implementations are NOT safe for concurrent use. Create separate
// instances for concurrent operations.
type DatabaseManager interface {
	// Exists checks if a database exists.
	Exists(ctx context.Context, pool *pgxpool.Pool, dbName string) (bool, error)

	// Create creates a new database.
	Create(ctx context.Context, pool *pgxpool.Pool, dbName string) error

	// Drop drops the specified database.
	Drop(ctx context.Context, pool *pgxpool.Pool, dbName string) error

	// TerminateConnections terminates all connections to the specified database.
	// This is typically used before dropping a database to ensure no active
	// connections remain.
	TerminateConnections(ctx context.Context, pool *pgxpool.Pool, dbName string) error
}
