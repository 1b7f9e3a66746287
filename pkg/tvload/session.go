package tvload

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SessionPreparer abstracts session preparation for testability.
type SessionPreparer interface {
	PrepareSession(ctx context.Context, config *LoadConfig) (*Session, error)
}

// Session encapsulates a prepared load session: the connection pool,
// the single acquired connection every statement of the run uses, and
// the opened record source.
//
// Session manages the lifecycle of its resources and ensures proper
// cleanup through a single Close() method.
//
// Thread-Safety: NOT safe for concurrent use. Each goroutine should have
// its own Session instance.
//
// Lifecycle:
//  1. Created by SessionManager.PrepareSession()
//  2. Used for one load run
//  3. Cleaned up via Close() (idempotent) — deferred by the caller so
//     it runs even when the run aborts
//
// Example usage:
//
//	session, err := sessionManager.PrepareSession(ctx, config)
//	if err != nil {
//	    return err
//	}
//	defer session.Close()
//
//	// Use session.Pool(), session.Conn(), session.Source()
type Session struct {
	pool   *pgxpool.Pool
	conn   *pgxpool.Conn
	source RecordSource
}

// NewSession creates a new Session instance.
// This is intended to be called by SessionManager, not by external code.
//
// Panics if pool, conn, or source is nil (programmer error —
// SessionManager should never create a Session with nil resources).
func NewSession(pool *pgxpool.Pool, conn *pgxpool.Conn, source RecordSource) *Session {
	if pool == nil {
		panic("pool cannot be nil")
	}
	if conn == nil {
		panic("conn cannot be nil")
	}
	if source == nil {
		panic("source cannot be nil")
	}

	return &Session{
		pool:   pool,
		conn:   conn,
		source: source,
	}
}

// Pool returns the connection pool for the session.
// The pool is valid until Close() is called.
func (s *Session) Pool() *pgxpool.Pool {
	return s.pool
}

// Conn returns the acquired pooled connection for the session.
// A single connection is held for the duration of the run; every
// statement — schema bootstrap, category resolution, channel insert —
// goes through it. The connection is valid until Close() is called.
func (s *Session) Conn() *pgxpool.Conn {
	return s.conn
}

// Source returns the opened record source for the session.
func (s *Session) Source() RecordSource {
	return s.source
}

// Close releases all resources associated with the session.
// This method is idempotent and safe to call multiple times.
//
// Resource cleanup order:
//  1. Close the record source
//  2. Release the acquired connection back to the pool
//  3. Close the connection pool
//
// After calling Close(), the Session should not be used.
func (s *Session) Close() error {
	if s.source != nil {
		s.source.Close()
		s.source = nil
	}

	if s.conn != nil {
		s.conn.Release()
		s.conn = nil
	}

	if s.pool != nil {
		s.pool.Close()
		s.pool = nil
	}

	return nil
}
