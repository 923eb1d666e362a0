package rate

import (
	"context"

	"github.com/jonboulle/clockwork"

	"github.com/Lednacek-Dev/converter/internal/adapters"
	"github.com/Lednacek-Dev/converter/internal/domain"
)

// AggregateWeek folds daily history into one record per week.
const AggregateWeek = "week"

type Service struct {
	ingestor adapters.Ingestor
	repo     adapters.RateRepository
	clock    clockwork.Clock
}

// LatestRates returns every quotation for the most recent stored date,
// fetching today's publication first if it is missing. An empty store
// yields an empty slice.
func (s *Service) LatestRates(ctx context.Context) ([]domain.Rate, error) {
	if err := s.ingestor.EnsureToday(ctx); err != nil {
		return nil, err
	}

	latest, err := s.repo.LatestDate(ctx)
	if err != nil {
		return nil, err
	}
	if latest == "" {
		return []domain.Rate{}, nil
	}
	return s.repo.GetByDate(ctx, latest)
}

// Currencies projects the latest snapshot down to currency metadata.
func (s *Service) Currencies(ctx context.Context) ([]domain.Currency, error) {
	rates, err := s.LatestRates(ctx)
	if err != nil {
		return nil, err
	}

	currencies := make([]domain.Currency, 0, len(rates))
	for _, rt := range rates {
		currencies = append(currencies, domain.Currency{
			CurrencyCode: rt.CurrencyCode,
			CurrencyName: rt.CurrencyName,
			Country:      rt.Country,
			Amount:       rt.Amount,
		})
	}
	return currencies, nil
}

// History returns one currency's quotations for the last days,
// backfilling the window first. Inputs are expected pre-validated by
// the route layer. With aggregate == AggregateWeek the dailies are
// folded into weekly records.
func (s *Service) History(ctx context.Context, code string, days int, aggregate string) ([]domain.Rate, error) {
	if err := s.ingestor.EnsureHistory(ctx, days); err != nil {
		return nil, err
	}

	since := s.clock.Now().AddDate(0, 0, -days).Format(dateLayout)
	rates, err := s.repo.GetByCodeSince(ctx, code, since)
	if err != nil {
		return nil, err
	}

	if aggregate == AggregateWeek {
		return aggregateWeekly(rates), nil
	}
	return rates, nil
}

func NewService(ingestor adapters.Ingestor, repo adapters.RateRepository, clock clockwork.Clock) *Service {
	return &Service{ingestor: ingestor, repo: repo, clock: clock}
}
