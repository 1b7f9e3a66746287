package retry

import (
	"errors"
	"net"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgconn"
)

// Transient SQLSTATE codes outside the class-level matches below.
// See: https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgCodeSerializationFailure = "40001"
	pgCodeDeadlockDetected     = "40P01"
	pgCodeLockNotAvailable     = "55P03"
)

// Entire SQLSTATE classes treated as transient:
// 08 connection exception, 53 insufficient resources, 57 operator intervention.
var transientCodeClasses = []string{"08", "53", "57"}

// Syscall errors that indicate a retryable network condition.
var transientSyscallErrors = []error{
	syscall.ECONNREFUSED,
	syscall.ECONNRESET,
	syscall.ENETUNREACH,
	syscall.EHOSTUNREACH,
}

// Message fragments matched (case-insensitively) against errors that carry
// no structured type, e.g. failures surfaced by the pgx connect path as
// plain strings. "no such host" is deliberately absent: a name that does
// not resolve will not start resolving on the next attempt.
var transientMessagePatterns = []string{
	"connection refused",
	"connection reset",
	"connection timeout",
	"connection failure",
	"network is unreachable",
	"i/o timeout",
	"broken pipe",
	"too many connections",
	"server closed the connection",
	"unexpected eof",
	"connection pool exhausted",
}

// PostgreSQLErrorClassifier implements ErrorClassifier for errors produced
// while connecting to and querying PostgreSQL.
type PostgreSQLErrorClassifier struct{}

// NewPostgreSQLErrorClassifier creates a new PostgreSQL error classifier.
func NewPostgreSQLErrorClassifier() *PostgreSQLErrorClassifier {
	return &PostgreSQLErrorClassifier{}
}

// IsTransient reports whether err is temporary and worth retrying.
func (c *PostgreSQLErrorClassifier) IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return c.isTransientCode(pgErr.Code)
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		// A missing record is not transient; a misbehaving or slow
		// resolver is.
		if dnsErr.IsNotFound {
			return false
		}
		if dnsErr.Temporary() || dnsErr.Timeout() {
			return true
		}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if opErr.Timeout() || opErr.Temporary() {
			return true
		}
		for _, target := range transientSyscallErrors {
			if errors.Is(opErr.Err, target) {
				return true
			}
		}
	}

	return c.matchesTransientMessage(err.Error())
}

func (c *PostgreSQLErrorClassifier) isTransientCode(code string) bool {
	for _, class := range transientCodeClasses {
		if strings.HasPrefix(code, class) {
			return true
		}
	}
	switch code {
	case pgCodeSerializationFailure, pgCodeDeadlockDetected, pgCodeLockNotAvailable:
		return true
	}
	return false
}

func (c *PostgreSQLErrorClassifier) matchesTransientMessage(msg string) bool {
	msg = strings.ToLower(msg)
	for _, pattern := range transientMessagePatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}
