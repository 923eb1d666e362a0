package adapters

import (
	"context"
	"time"

	"github.com/Lednacek-Dev/converter/internal/cnb"
	"github.com/Lednacek-Dev/converter/internal/domain"
)

// FeedClient retrieves a parsed CNB daily feed. A nil date requests the
// latest publication, otherwise the concrete date is requested.
type FeedClient interface {
	FetchDaily(ctx context.Context, date *time.Time) (cnb.Feed, error)
}

type RateRepository interface {
	HasDate(ctx context.Context, date string) (bool, error)
	// LatestDate returns the greatest stored date, or "" when the store
	// is empty.
	LatestDate(ctx context.Context) (string, error)
	GetByDate(ctx context.Context, date string) ([]domain.Rate, error)
	// GetByCodeSince returns rates for one currency from the given date
	// on, ordered by date ascending.
	GetByCodeSince(ctx context.Context, code string, since string) ([]domain.Rate, error)
	// InsertBatch commits records whose (date, currencyCode) is absent
	// and silently ignores the rest.
	InsertBatch(ctx context.Context, rates []domain.Rate) error
}

// DateCache remembers dates confirmed present in the store. Rates are
// never deleted, so presence can be cached indefinitely.
type DateCache interface {
	Seen(date string) bool
	MarkSeen(date string)
}

// Ingestor guarantees rate data is present before queries read it.
type Ingestor interface {
	EnsureToday(ctx context.Context) error
	EnsureHistory(ctx context.Context, days int) error
}
