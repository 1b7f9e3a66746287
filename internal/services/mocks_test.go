package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vvka-141/tvload/pkg/tvload"
)

type mockConnector struct {
	pool *pgxpool.Pool
	err  error
}

func (m *mockConnector) Connect(_ context.Context) (*pgxpool.Pool, error) {
	return m.pool, m.err
}

type mockApprover struct {
	approved bool
	err      error

	calls    int
	existing int64
}

func (m *mockApprover) RequestApproval(_ context.Context, existing int64) (bool, error) {
	m.calls++
	m.existing = existing
	return m.approved, m.err
}

type mockSessionPreparer struct {
	session *tvload.Session
	err     error

	calls     int
	gotConfig *tvload.LoadConfig
}

func (m *mockSessionPreparer) PrepareSession(_ context.Context, config *tvload.LoadConfig) (*tvload.Session, error) {
	m.calls++
	m.gotConfig = config
	return m.session, m.err
}

// fakeCategoryStore is a scriptable in-memory CategoryStore.
type fakeCategoryStore struct {
	rows   map[string]int64
	nextID int64

	findErr   error // returned by every FindIDByName when set
	insertErr error // returned by every Insert when set

	// raceWith simulates a concurrent loader: the named categories
	// appear in the store just before the insert runs, so the insert
	// fails with a unique violation and a re-query finds them.
	raceWith map[string]int64

	findCalls   int
	insertCalls int
}

func newFakeCategoryStore() *fakeCategoryStore {
	return &fakeCategoryStore{rows: make(map[string]int64)}
}

func (f *fakeCategoryStore) FindIDByName(_ context.Context, name string) (int64, bool, error) {
	f.findCalls++
	if f.findErr != nil {
		return 0, false, f.findErr
	}
	id, ok := f.rows[name]
	return id, ok, nil
}

func (f *fakeCategoryStore) Insert(_ context.Context, name string) (int64, error) {
	f.insertCalls++
	if f.insertErr != nil {
		return 0, f.insertErr
	}
	if id, ok := f.raceWith[name]; ok {
		f.rows[name] = id
		return 0, uniqueViolation(name)
	}
	if _, ok := f.rows[name]; ok {
		return 0, uniqueViolation(name)
	}
	f.nextID++
	f.rows[name] = f.nextID
	return f.nextID, nil
}

// uniqueViolation mimics the error chain the real store produces for a
// duplicate category name.
func uniqueViolation(name string) error {
	pgErr := &pgconn.PgError{
		Code:           "23505",
		ConstraintName: "categorias_nombre_key",
	}
	return fmt.Errorf("failed to insert category %q: %w", name, pgErr)
}

// fakeChannelStore is a scriptable in-memory ChannelStore.
type fakeChannelStore struct {
	count    int64
	countErr error

	insertErr error           // returned by every Insert when set
	failNames map[string]bool // Insert fails only for these channel names

	inserted    []tvload.Channel
	insertCalls int
}

func (f *fakeChannelStore) Insert(_ context.Context, ch tvload.Channel) error {
	f.insertCalls++
	if f.insertErr != nil {
		return f.insertErr
	}
	if f.failNames[ch.Name] {
		return fmt.Errorf("failed to insert channel %q: fake rejection", ch.Name)
	}
	f.inserted = append(f.inserted, ch)
	return nil
}

func (f *fakeChannelStore) Count(_ context.Context) (int64, error) {
	return f.count, f.countErr
}

// mockLogger records log lines so tests can assert what a run reported.
type mockLogger struct {
	mu      sync.Mutex
	verbose []string
	infos   []string
	errors  []string
}

func (m *mockLogger) Verbose(format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.verbose = append(m.verbose, fmt.Sprintf(format, args...))
}

func (m *mockLogger) Info(format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.infos = append(m.infos, fmt.Sprintf(format, args...))
}

func (m *mockLogger) Error(format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors = append(m.errors, fmt.Sprintf(format, args...))
}

func (m *mockLogger) errorLines() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.errors...)
}
