package testing

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vvka-141/tvload/internal/db"
	"github.com/vvka-141/tvload/internal/db/manager"
	"github.com/vvka-141/tvload/internal/logging"
	"github.com/vvka-141/tvload/internal/services"
	"github.com/vvka-141/tvload/internal/testinfra"
	"github.com/vvka-141/tvload/pkg/tvload"
)

var (
	testContainerOnce sync.Once
	testContainerConn string
	testContainerErr  error
)

func getOrStartTestContainer() (string, error) {
	testContainerOnce.Do(func() {
		ctx := context.Background()
		container, err := testinfra.StartPostgres(ctx)
		if err != nil {
			testContainerErr = err
			return
		}
		testContainerConn = container.ConnString
	})
	return testContainerConn, testContainerErr
}

// GetTestConnectionString returns the test database connection string.
// Priority: TVLOAD_TEST_CONN env var > auto-started testcontainer > skip test.
func GetTestConnectionString(t *testing.T) string {
	t.Helper()

	if connString := os.Getenv("TVLOAD_TEST_CONN"); connString != "" {
		return connString
	}

	connString, err := getOrStartTestContainer()
	if err != nil {
		t.Skipf("TVLOAD_TEST_CONN not set and Docker unavailable: %v", err)
	}
	return connString
}

// SkipIfShort skips the test if running in short mode (-short flag).
func SkipIfShort(t *testing.T) {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
}

// RequireDatabase combines SkipIfShort and GetTestConnectionString for convenience.
// Returns the test connection string if available, otherwise skips the test.
func RequireDatabase(t *testing.T) string {
	t.Helper()

	SkipIfShort(t)
	return GetTestConnectionString(t)
}

// NewTestLoader creates a Loader instance configured for testing.
// Uses the standard connector factory, the CSV source factory, and a
// force-approving test approver.
func NewTestLoader(t *testing.T) tvload.Loader {
	t.Helper()

	return NewTestLoaderWithApprover(t, &ForceApprover{})
}

// NewTestLoaderWithApprover creates a Loader instance with a custom
// approver, for exercising the append guard.
func NewTestLoaderWithApprover(t *testing.T, approver tvload.Approver) tvload.Loader {
	t.Helper()

	logger := logging.NewNullLogger()

	// Session manager for shared session initialization logic
	sessionManager := services.NewSessionManager(
		db.NewConnector,
		services.CSVSourceFactory,
		logger,
	)

	return services.NewLoadService(sessionManager, approver, logger)
}

// ForceApprover is a test approver that always approves append requests.
type ForceApprover struct{}

// RequestApproval always returns true (auto-approves).
func (a *ForceApprover) RequestApproval(ctx context.Context, existing int64) (bool, error) {
	return true, nil
}

// DenyApprover is a test approver that always denies append requests.
type DenyApprover struct{}

// RequestApproval always returns false.
func (a *DenyApprover) RequestApproval(ctx context.Context, existing int64) (bool, error) {
	return false, nil
}

// NewLoadConfig builds a LoadConfig pointing a load at the given test
// database.
func NewLoadConfig(t *testing.T, connString, dbName, sourcePath string) tvload.LoadConfig {
	t.Helper()

	config, err := db.ParseConnectionString(connString)
	if err != nil {
		t.Fatalf("Failed to parse connection string: %v", err)
	}
	config.Database = dbName

	return tvload.LoadConfig{
		SourcePath: sourcePath,
		Connection: *config,
	}
}

// CreateTestDB creates a test database with the given name.
// Returns a cleanup function that should be called with t.Cleanup().
func CreateTestDB(t *testing.T, connString, dbName string) func() {
	t.Helper()

	ctx := context.Background()

	// Connect to management database
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		t.Fatalf("Failed to connect for test DB creation: %v", err)
	}

	dbManager := manager.New()
	if err := dbManager.Create(ctx, pool, dbName); err != nil {
		pool.Close()
		t.Fatalf("Failed to create test database %s: %v", dbName, err)
	}

	pool.Close()
	t.Logf("✓ Created test database %s", dbName)

	// Return cleanup function
	return func() {
		CleanupTestDB(t, connString, dbName)
	}
}

// CleanupTestDB drops the test database.
// Safe to call multiple times (a database that is already gone is not
// an error).
func CleanupTestDB(t *testing.T, connString, dbName string) {
	t.Helper()

	ctx := context.Background()

	// Connect to management database
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		t.Logf("Warning: Failed to connect for cleanup: %v", err)
		return
	}
	defer pool.Close()

	dbManager := manager.New()

	exists, err := dbManager.Exists(ctx, pool, dbName)
	if err != nil {
		t.Logf("Warning: Failed to check database %s: %v", dbName, err)
		return
	}
	if !exists {
		return
	}

	if err := dbManager.TerminateConnections(ctx, pool, dbName); err != nil {
		t.Logf("Warning: Failed to terminate connections to %s: %v", dbName, err)
	}

	if err := dbManager.Drop(ctx, pool, dbName); err != nil {
		t.Logf("Warning: Failed to drop database %s: %v", dbName, err)
	} else {
		t.Logf("✓ Cleaned up database %s", dbName)
	}
}

// GetTestPool creates a connection pool to the specified database for testing.
// The pool is automatically closed when the test completes.
func GetTestPool(t *testing.T, connString, dbName string) *pgxpool.Pool {
	t.Helper()

	ctx := context.Background()

	// Parse connection string
	config, err := db.ParseConnectionString(connString)
	if err != nil {
		t.Fatalf("Failed to parse connection string: %v", err)
	}

	// Override database name
	config.Database = dbName

	// Build connection string for target database
	targetConnString := db.BuildConnectionString(config)

	// Create pool
	pool, err := pgxpool.New(ctx, targetConnString)
	if err != nil {
		t.Fatalf("Failed to create connection pool: %v", err)
	}

	// Register cleanup
	t.Cleanup(func() {
		pool.Close()
	})

	return pool
}
