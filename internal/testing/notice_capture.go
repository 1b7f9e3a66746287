package testing

import (
	"strings"
	"sync"

	"github.com/jackc/pgx/v5/pgconn"
)

// NoticeCapture collects PostgreSQL NOTICE and WARNING messages raised
// on a connection. The schema bootstrap is expected to stay silent even
// against an already provisioned database; tests use this capture to
// prove it.
//
// Thread-safe for concurrent use.
type NoticeCapture struct {
	mu       sync.Mutex
	messages []string
}

// NewNoticeCapture creates a new NoticeCapture instance.
func NewNoticeCapture() *NoticeCapture {
	return &NoticeCapture{}
}

// Handler returns a function suitable for pgx's OnNotice callback.
func (nc *NoticeCapture) Handler() func(*pgconn.PgConn, *pgconn.Notice) {
	return func(_ *pgconn.PgConn, n *pgconn.Notice) {
		if n == nil {
			return
		}

		nc.mu.Lock()
		defer nc.mu.Unlock()
		nc.messages = append(nc.messages, n.Severity+": "+n.Message)
	}
}

// Messages returns a copy of all captured messages.
func (nc *NoticeCapture) Messages() []string {
	nc.mu.Lock()
	defer nc.mu.Unlock()

	result := make([]string, len(nc.messages))
	copy(result, nc.messages)
	return result
}

// Containing returns the captured messages that contain substr.
func (nc *NoticeCapture) Containing(substr string) []string {
	nc.mu.Lock()
	defer nc.mu.Unlock()

	var result []string
	for _, m := range nc.messages {
		if strings.Contains(m, substr) {
			result = append(result, m)
		}
	}
	return result
}

// Reset clears all captured messages.
func (nc *NoticeCapture) Reset() {
	nc.mu.Lock()
	defer nc.mu.Unlock()

	nc.messages = nil
}

// Count returns the number of captured messages.
func (nc *NoticeCapture) Count() int {
	nc.mu.Lock()
	defer nc.mu.Unlock()

	return len(nc.messages)
}
