package store

import (
	"context"
	"fmt"

	"github.com/vvka-141/tvload/pkg/tvload"
)

// Channels is the PostgreSQL-backed ChannelStore.
type Channels struct {
	q Querier
}

// NewChannels creates a channel store over q.
// Panics if q is nil.
func NewChannels(q Querier) *Channels {
	if q == nil {
		panic("querier cannot be nil")
	}
	return &Channels{q: q}
}

// Insert creates one channel row. Each call is its own implicit
// transaction; a failed insert affects no other row. A nil Logo is
// stored as SQL NULL.
func (s *Channels) Insert(ctx context.Context, ch tvload.Channel) error {
	_, err := s.q.Exec(ctx, queryInsertChannel,
		ch.Name, ch.URL, ch.Format, ch.Logo, ch.Status, ch.CategoryID)
	if err != nil {
		return fmt.Errorf("failed to insert channel %q: %w", ch.Name, err)
	}
	return nil
}

// Count reports the number of channel rows.
func (s *Channels) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.q.QueryRow(ctx, queryCountChannels).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count channels: %w", err)
	}
	return count, nil
}

// Verify Channels implements the interface at compile time
var _ tvload.ChannelStore = (*Channels)(nil)
