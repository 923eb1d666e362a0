package rate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"slices"
	"sort"
	"sync"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/Lednacek-Dev/converter/internal/adapters/httpclient"
	"github.com/Lednacek-Dev/converter/internal/domain"
)

// memRepo is a minimal in-memory RateRepository for wiring the real
// fetch-parse-store path without Postgres.
type memRepo struct {
	mu    sync.Mutex
	rates map[string]map[string]domain.Rate // date -> code -> rate
}

func newMemRepo() *memRepo {
	return &memRepo{rates: make(map[string]map[string]domain.Rate)}
}

func (m *memRepo) HasDate(_ context.Context, date string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rates[date]) > 0, nil
}

func (m *memRepo) LatestDate(_ context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	latest := ""
	for date := range m.rates {
		if date > latest {
			latest = date
		}
	}
	return latest, nil
}

func (m *memRepo) GetByDate(_ context.Context, date string) ([]domain.Rate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Rate
	for _, rt := range m.rates[date] {
		out = append(out, rt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CurrencyCode < out[j].CurrencyCode })
	return out, nil
}

func (m *memRepo) GetByCodeSince(_ context.Context, code string, since string) ([]domain.Rate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	dates := make([]string, 0, len(m.rates))
	for date := range m.rates {
		dates = append(dates, date)
	}
	slices.Sort(dates)

	var out []domain.Rate
	for _, date := range dates {
		if date < since {
			continue
		}
		if rt, ok := m.rates[date][code]; ok {
			out = append(out, rt)
		}
	}
	return out, nil
}

func (m *memRepo) InsertBatch(_ context.Context, rates []domain.Rate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rt := range rates {
		byCode := m.rates[rt.Date]
		if byCode == nil {
			byCode = make(map[string]domain.Rate)
			m.rates[rt.Date] = byCode
		}
		if _, exists := byCode[rt.CurrencyCode]; exists {
			continue // insert-if-absent, never overwrite
		}
		byCode[rt.CurrencyCode] = rt
	}
	return nil
}

func TestLatestRates_EndToEnd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("15 Dec 2024 #242\nCountry|Currency|Amount|Code|Rate\nEMU|euro|1|EUR|25.500"))
	}))
	t.Cleanup(srv.Close)

	repo := newMemRepo()
	client := httpclient.NewCNBFeedClient(srv.Client(), srv.URL)
	clock := clockwork.NewFakeClockAt(testNow)
	coordinator := NewCoordinator(repo, client, nil, clock, 0)
	svc := NewService(coordinator, repo, clock)

	rates, err := svc.LatestRates(context.Background())

	require.NoError(t, err)
	require.Equal(t, []domain.Rate{{
		Date:         "2024-12-15",
		CurrencyCode: "EUR",
		Country:      "EMU",
		CurrencyName: "euro",
		Amount:       1,
		Value:        25.5,
	}}, rates)

	// A second call finds the snapshot already stored: the wall-clock
	// date is still missing, so the feed is asked again, but the
	// publication it returns is already present and stays intact.
	rates2, err := svc.LatestRates(context.Background())
	require.NoError(t, err)
	require.Equal(t, rates, rates2)
}
