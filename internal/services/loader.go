package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vvka-141/tvload/internal/store"
	"github.com/vvka-141/tvload/pkg/tvload"
)

// LoadService orchestrates a complete load run: session preparation,
// the append guard, the record loop, and the final summary.
//
// Per-row failures (malformed rows, rejected estado values, rejected
// inserts) are logged, counted, and skipped; the run only aborts when
// the configuration is invalid, the source is unreadable, approval is
// denied, or the database connection is lost.
type LoadService struct {
	sessions tvload.SessionPreparer
	approver tvload.Approver
	logger   tvload.Logger

	// newStores builds the run's stores over the session connection.
	// Overridable in tests to avoid a live pool.
	newStores func(conn *pgxpool.Conn) (tvload.CategoryStore, tvload.ChannelStore)

	// connClosed reports whether the session connection died. Checked
	// after a failed insert to tell a rejected row from a lost
	// connection. Overridable in tests.
	connClosed func(conn *pgxpool.Conn) bool
}

// NewLoadService creates a new LoadService with all dependencies injected.
//
// Panics if any dependency is nil. This is intentional fail-fast behavior
// to prevent cryptic nil pointer dereferences later. Panics indicate
// programmer error (incorrect dependency injection setup).
func NewLoadService(
	sessions tvload.SessionPreparer,
	approver tvload.Approver,
	logger tvload.Logger,
) *LoadService {
	if sessions == nil {
		panic("sessions cannot be nil")
	}
	if approver == nil {
		panic("approver cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	return &LoadService{
		sessions: sessions,
		approver: approver,
		logger:   logger,
		newStores: func(conn *pgxpool.Conn) (tvload.CategoryStore, tvload.ChannelStore) {
			return store.NewCategories(conn), store.NewChannels(conn)
		},
		connClosed: func(conn *pgxpool.Conn) bool {
			return conn.Conn().IsClosed()
		},
	}
}

// Run executes a load using the provided configuration.
//
// The returned Summary is meaningful even on failure: it reflects what
// was loaded before the run aborted.
func (s *LoadService) Run(ctx context.Context, config tvload.LoadConfig) (tvload.Summary, error) {
	summary := tvload.Summary{RunID: uuid.New()}
	started := time.Now()

	if err := config.Validate(); err != nil {
		return summary, fmt.Errorf("invalid configuration: %w", err)
	}

	s.logger.Verbose("Starting load %s", summary.RunID)
	s.logger.Verbose("Source file: %s", config.SourcePath)

	session, err := s.sessions.PrepareSession(ctx, &config)
	if err != nil {
		summary.Elapsed = time.Since(started)
		return summary, err
	}
	defer session.Close()

	categories, channels := s.newStores(session.Conn())

	if err := s.confirmAppend(ctx, channels, config.Force); err != nil {
		summary.Elapsed = time.Since(started)
		return summary, err
	}

	resolver := NewCategoryResolver(categories, s.logger)
	alive := func() bool { return !s.connClosed(session.Conn()) }

	err = s.loadRecords(ctx, session.Source(), resolver, channels, alive, config.StatusFallback, &summary)
	summary.CategoriesCreated = resolver.CreatedCount()
	summary.Elapsed = time.Since(started)
	if err != nil {
		return summary, err
	}

	s.reportSummary(&summary)
	return summary, nil
}

// confirmAppend enforces the append guard: loading into a channel table
// that already has rows requires either --force or user approval.
func (s *LoadService) confirmAppend(ctx context.Context, channels tvload.ChannelStore, force bool) error {
	existing, err := channels.Count(ctx)
	if err != nil {
		return fmt.Errorf("%w: failed to count existing channels: %w", tvload.ErrStoreFailed, err)
	}
	if existing == 0 {
		return nil
	}

	if force {
		s.logger.Verbose("Target already holds %d channel(s); appending without confirmation (force)", existing)
		return nil
	}

	approved, err := s.approver.RequestApproval(ctx, existing)
	if err != nil {
		return fmt.Errorf("approval request failed: %w", err)
	}
	if !approved {
		return fmt.Errorf("load cancelled by user: %w", tvload.ErrApprovalDenied)
	}
	return nil
}

// loadRecords drains the source into the stores. It returns only
// run-fatal errors; row-level failures are logged, counted in the
// summary, and skipped.
func (s *LoadService) loadRecords(
	ctx context.Context,
	src tvload.RecordSource,
	resolver tvload.CategoryResolver,
	channels tvload.ChannelStore,
	alive func() bool,
	statusFallback *int,
	summary *tvload.Summary,
) error {
	for {
		record, err := src.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			var rowErr *tvload.RowError
			if errors.As(err, &rowErr) {
				s.logger.Error("Skipping row: %v", rowErr)
				summary.RowsFailed++
				continue
			}
			// The input itself failed mid-read; no further rows can be
			// trusted.
			return fmt.Errorf("%w: reading source: %w", tvload.ErrSourceInvalid, err)
		}

		if err := s.loadOne(ctx, resolver, channels, statusFallback, record); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return fmt.Errorf("%w: run aborted: %w", tvload.ErrLoadFailed, ctxErr)
			}
			if !alive() {
				return fmt.Errorf("%w: connection lost while loading channel %q: %w", tvload.ErrConnectionFailed, record.Name, err)
			}
			s.logger.Error("Skipping channel %q: %v", record.Name, err)
			summary.RowsFailed++
			continue
		}

		summary.ChannelsInserted++
		s.logger.Verbose("Loaded channel %q", record.Name)
	}
}

// loadOne processes a single record: estado policy, category
// resolution, then the insert. Each insert is its own implicit
// transaction — a failure here affects no other row.
func (s *LoadService) loadOne(
	ctx context.Context,
	resolver tvload.CategoryResolver,
	channels tvload.ChannelStore,
	statusFallback *int,
	record tvload.Record,
) error {
	status, err := parseStatus(record.Status, statusFallback)
	if err != nil {
		return err
	}

	categoryID, err := resolver.Resolve(ctx, record.Category)
	if err != nil {
		return err
	}

	channel := tvload.Channel{
		Name:       record.Name,
		URL:        record.URL,
		Format:     record.Format,
		Logo:       logoValue(record.Logo),
		Status:     status,
		CategoryID: categoryID,
	}
	if err := channels.Insert(ctx, channel); err != nil {
		return fmt.Errorf("%w: %w", tvload.ErrStoreFailed, err)
	}
	return nil
}

// reportSummary prints the closing run summary.
func (s *LoadService) reportSummary(summary *tvload.Summary) {
	s.logger.Info("✓ Load completed successfully")
	s.logger.Info("  Categories created: %d", summary.CategoriesCreated)
	s.logger.Info("  Channels inserted:  %d", summary.ChannelsInserted)
	if summary.RowsFailed > 0 {
		s.logger.Info("  Rows skipped:       %d", summary.RowsFailed)
	}
	s.logger.Verbose("Run %s finished in %s", summary.RunID, summary.Elapsed.Round(time.Millisecond))
}

// parseStatus applies the estado policy. The field must parse as an
// integer, with surrounding whitespace tolerated (label fields are
// never normalized, numeric fields are). An unparseable estado rejects
// the row unless a fallback status was configured.
func parseStatus(raw string, fallback *int) (int, error) {
	status, err := strconv.Atoi(strings.TrimSpace(raw))
	if err == nil {
		return status, nil
	}
	if fallback != nil {
		return *fallback, nil
	}
	return 0, fmt.Errorf("estado %q is not an integer", raw)
}

// logoValue maps an empty logo field to NULL. A channel without a logo
// has no logo, not an empty-string one.
func logoValue(logo string) *string {
	if logo == "" {
		return nil
	}
	return &logo
}

// Verify LoadService implements the interface at compile time
var _ tvload.Loader = (*LoadService)(nil)
