// Package manager provides database lifecycle operations for PostgreSQL.
//
// tvload itself only ever loads into an existing database; these
// operations exist for the test harness, which provisions an isolated
// database per test run and drops it afterwards:
//   - Checking database existence
//   - Creating new databases
//   - Dropping existing databases
//   - Terminating active connections
//
// All operations use pgx.Identifier.Sanitize() for safe SQL identifier
// quoting, handling database names with spaces, quotes, or other special
// characters.
//
// # Example Usage
//
//	mgr := manager.New()
//
//	// Check if database exists
//	exists, err := mgr.Exists(ctx, pool, "tvload_test_1")
//
//	// Create a new database
//	err = mgr.Create(ctx, pool, "tvload_test_1")
//
//	// Drop a database (terminate connections first)
//	err = mgr.TerminateConnections(ctx, pool, "tvload_test_1")
//	err = mgr.Drop(ctx, pool, "tvload_test_1")
package manager
