package rate

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
	xrate "golang.org/x/time/rate"

	"github.com/Lednacek-Dev/converter/internal/adapters"
	"github.com/Lednacek-Dev/converter/internal/cnb"
	"github.com/Lednacek-Dev/converter/internal/domain"
)

const dateLayout = "2006-01-02"

// Coordinator makes sure rate data is present in the store before it is
// read. Concurrent callers of the same operation share one in-flight
// attempt through the owned singleflight group; once the attempt
// settles, success or not, a later call may try again.
type Coordinator struct {
	repo      adapters.RateRepository
	client    adapters.FeedClient
	dateCache adapters.DateCache
	clock     clockwork.Clock
	limiter   *xrate.Limiter

	flight singleflight.Group
}

// NewCoordinator builds a Coordinator. fetchDelay is the minimum
// interval between consecutive upstream fetches during backfill; zero
// disables pacing. dateCache may be nil.
func NewCoordinator(repo adapters.RateRepository, client adapters.FeedClient, dateCache adapters.DateCache, clock clockwork.Clock, fetchDelay time.Duration) *Coordinator {
	return &Coordinator{
		repo:      repo,
		client:    client,
		dateCache: dateCache,
		clock:     clock,
		limiter:   xrate.NewLimiter(xrate.Every(fetchDelay), 1),
	}
}

// EnsureToday stores the current publication unless it is already
// present. An upstream or parse failure surfaces to the caller: today's
// feed is expected to be fetchable.
func (c *Coordinator) EnsureToday(ctx context.Context) error {
	_, err, _ := c.flight.Do("today", func() (any, error) {
		return nil, c.ensureToday(ctx)
	})
	return err
}

func (c *Coordinator) ensureToday(ctx context.Context) error {
	today := c.clock.Now().Format(dateLayout)

	present, err := c.hasDate(ctx, today)
	if err != nil {
		return err
	}
	if present {
		return nil
	}

	feed, err := c.client.FetchDaily(ctx, nil)
	if err != nil {
		return err
	}
	if len(feed.Rates) == 0 {
		// CNB has not published yet; nothing to store.
		return nil
	}

	// The feed's own date label wins over the wall clock: before the
	// daily fixing CNB still serves the previous publication.
	if err = c.repo.InsertBatch(ctx, feedToRates(feed)); err != nil {
		return err
	}
	c.markSeen(feed.Date)

	logrus.Infof("Fetched rates for %s: %d currencies", feed.Date, len(feed.Rates))
	return nil
}

// EnsureHistory backfills the last days of history, walking from today
// backward. The walk is sequential and best-effort: weekend dates are
// skipped (CNB does not publish on Saturday and Sunday), already-stored
// dates are skipped, and a failure on one date is logged and does not
// stop the walk. The call fails only on context cancellation.
func (c *Coordinator) EnsureHistory(ctx context.Context, days int) error {
	_, err, _ := c.flight.Do("history", func() (any, error) {
		return nil, c.ensureHistory(ctx, days)
	})
	return err
}

func (c *Coordinator) ensureHistory(ctx context.Context, days int) error {
	today := c.clock.Now()

	for i := 0; i <= days; i++ {
		date := today.AddDate(0, 0, -i)
		if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		dateStr := date.Format(dateLayout)

		present, err := c.hasDate(ctx, dateStr)
		if err != nil {
			logrus.WithError(err).Errorf("Failed to check stored rates for %s", dateStr)
			continue
		}
		if present {
			continue
		}

		// Pacing applies to attempted fetches only; skipped dates do
		// not consume tokens.
		if err = c.limiter.Wait(ctx); err != nil {
			return err
		}
		if err = c.fetchAndStore(ctx, date); err != nil {
			logrus.WithError(err).Errorf("Failed to backfill rates for %s", dateStr)
		}
	}
	return nil
}

func (c *Coordinator) fetchAndStore(ctx context.Context, date time.Time) error {
	feed, err := c.client.FetchDaily(ctx, &date)
	if err != nil {
		return err
	}
	if len(feed.Rates) == 0 {
		return nil
	}

	if err = c.repo.InsertBatch(ctx, feedToRates(feed)); err != nil {
		return err
	}
	c.markSeen(feed.Date)

	logrus.Infof("Fetched historical rates for %s: %d currencies", feed.Date, len(feed.Rates))
	return nil
}

func (c *Coordinator) hasDate(ctx context.Context, date string) (bool, error) {
	if c.dateCache != nil && c.dateCache.Seen(date) {
		return true, nil
	}

	present, err := c.repo.HasDate(ctx, date)
	if err != nil {
		return false, fmt.Errorf("failed to check stored rates for %q: %w", date, err)
	}
	if present {
		c.markSeen(date)
	}
	return present, nil
}

func (c *Coordinator) markSeen(date string) {
	if c.dateCache != nil {
		c.dateCache.MarkSeen(date)
	}
}

func feedToRates(feed cnb.Feed) []domain.Rate {
	rates := make([]domain.Rate, 0, len(feed.Rates))
	for _, line := range feed.Rates {
		rates = append(rates, domain.Rate{
			Date:         feed.Date,
			CurrencyCode: line.CurrencyCode,
			Country:      line.Country,
			CurrencyName: line.CurrencyName,
			Amount:       line.Amount,
			Value:        line.Value,
		})
	}
	return rates
}
