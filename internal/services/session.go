package services

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vvka-141/tvload/internal/checksum"
	"github.com/vvka-141/tvload/internal/schema"
	"github.com/vvka-141/tvload/internal/source"
	"github.com/vvka-141/tvload/pkg/tvload"
)

// SourceFactory opens a listings file as a record source. A delimiter
// of 0 selects the default comma.
type SourceFactory func(path string, delimiter rune) (tvload.RecordSource, error)

// CSVSourceFactory is the production SourceFactory: a delimited text
// file with a validated header row, fingerprinted on open.
func CSVSourceFactory(path string, delimiter rune) (tvload.RecordSource, error) {
	return source.NewCSVSource(path, delimiter, checksum.New())
}

// SessionManager handles session initialization for a load run.
// Responsibility: open the listings file, connect to the database,
// prepare the session (single connection, target tables).
//
// SessionManager is thread-safe for concurrent use as long as the
// injected dependencies (connectorFactory, sourceFactory, logger) are
// also thread-safe.
type SessionManager struct {
	connectorFactory func(*tvload.ConnectionConfig) (tvload.Connector, error)
	sourceFactory    SourceFactory
	logger           tvload.Logger
}

// NewSessionManager creates a new SessionManager with all dependencies injected.
//
// Panics if any dependency is nil. This is intentional fail-fast behavior
// to prevent cryptic nil pointer dereferences later. Panics indicate
// programmer error (incorrect dependency injection setup).
func NewSessionManager(
	connectorFactory func(*tvload.ConnectionConfig) (tvload.Connector, error),
	sourceFactory SourceFactory,
	logger tvload.Logger,
) *SessionManager {
	if connectorFactory == nil {
		panic("connectorFactory cannot be nil")
	}
	if sourceFactory == nil {
		panic("sourceFactory cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	return &SessionManager{
		connectorFactory: connectorFactory,
		sourceFactory:    sourceFactory,
		logger:           logger,
	}
}

// PrepareSession opens the listings file, connects to the database, and
// initializes the load session.
//
// Returns:
//   - Session object encapsulating pool, connection, and record source
//   - Error if any step fails
//
// The caller is responsible for:
//   - Closing the session: defer session.Close()
//
// The Session object provides access to Pool(), Conn(), and Source()
// and manages cleanup of all resources through a single Close() method.
func (sm *SessionManager) PrepareSession(
	ctx context.Context,
	config *tvload.LoadConfig,
) (*tvload.Session, error) {
	// Open and validate the listings file before dialing anything; a
	// bad source must fail without touching the database.
	src, err := sm.openSource(config)
	if err != nil {
		return nil, fmt.Errorf("source preparation failed: %w", err)
	}

	// Connect to target database
	pool, err := sm.connectToDatabase(ctx, &config.Connection)
	if err != nil {
		src.Close()
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Acquire a single connection for the entire session. Every
	// statement of the run — schema bootstrap, category lookups,
	// channel inserts — goes through this connection.
	conn, err := pool.Acquire(ctx)
	if err != nil {
		pool.Close()
		src.Close()
		return nil, fmt.Errorf("%w: failed to acquire session connection: %w", tvload.ErrConnectionFailed, err)
	}

	// Prepare session (target tables)
	if err := sm.prepareSessionTables(ctx, conn); err != nil {
		conn.Release()
		pool.Close()
		src.Close()
		return nil, fmt.Errorf("session preparation failed: %w", err)
	}

	// Create Session object to encapsulate resources
	session := tvload.NewSession(pool, conn, src)
	return session, nil
}

// openSource opens the listings file and validates its header.
func (sm *SessionManager) openSource(config *tvload.LoadConfig) (tvload.RecordSource, error) {
	sm.logger.Verbose("Opening listings file %s...", config.SourcePath)

	src, err := sm.sourceFactory(config.SourcePath, config.Delimiter)
	if err != nil {
		return nil, err
	}

	if fp, ok := src.(interface{ Checksum() string }); ok {
		sm.logger.Verbose("Source checksum: %s", fp.Checksum())
	}

	return src, nil
}

// connectToDatabase establishes a connection to the target database.
func (sm *SessionManager) connectToDatabase(
	ctx context.Context,
	connConfig *tvload.ConnectionConfig,
) (*pgxpool.Pool, error) {
	sm.logger.Verbose("Connecting to database '%s'", connConfig.Database)

	connector, err := sm.connectorFactory(connConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connector: %w", err)
	}

	pool, err := connector.Connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database %q: %w", connConfig.Database, err)
	}

	return pool, nil
}

// prepareSessionTables ensures the categorias and canales tables exist
// before any row is loaded.
func (sm *SessionManager) prepareSessionTables(ctx context.Context, conn *pgxpool.Conn) error {
	sm.logger.Verbose("Ensuring categorias and canales tables exist...")
	if err := schema.Apply(ctx, conn); err != nil {
		return fmt.Errorf("%w: %w", tvload.ErrStoreFailed, err)
	}
	sm.logger.Verbose("✓ Target tables ready")
	return nil
}

// Verify SessionManager implements the interface at compile time
var _ tvload.SessionPreparer = (*SessionManager)(nil)
