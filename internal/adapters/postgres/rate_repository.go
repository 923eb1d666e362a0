package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Lednacek-Dev/converter/internal/domain"
)

type RateRepository struct {
	pool *pgxpool.Pool
}

func (r *RateRepository) HasDate(ctx context.Context, date string) (bool, error) {
	const q = `select exists (select 1 from rates where date = $1)`

	var present bool
	if err := r.pool.QueryRow(ctx, q, date).Scan(&present); err != nil {
		return false, fmt.Errorf("failed to check rates presence for %q: %w", date, err)
	}
	return present, nil
}

func (r *RateRepository) LatestDate(ctx context.Context) (string, error) {
	const q = `select date from rates order by date desc limit 1`

	var date string
	if err := r.pool.QueryRow(ctx, q).Scan(&date); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("failed to select latest rates date: %w", err)
	}
	return date, nil
}

func (r *RateRepository) GetByDate(ctx context.Context, date string) ([]domain.Rate, error) {
	const q = `
        select date, currency_code, country, currency_name, amount, rate
        from rates
        where date = $1
        order by currency_code;
    `

	rows, err := r.pool.Query(ctx, q, date)
	if err != nil {
		return nil, fmt.Errorf("failed to select rates for %q: %w", date, err)
	}
	defer rows.Close()

	return scanRates(rows)
}

func (r *RateRepository) GetByCodeSince(ctx context.Context, code string, since string) ([]domain.Rate, error) {
	const q = `
        select date, currency_code, country, currency_name, amount, rate
        from rates
        where currency_code = $1 and date >= $2
        order by date;
    `

	rows, err := r.pool.Query(ctx, q, code, since)
	if err != nil {
		return nil, fmt.Errorf("failed to select rates for %q since %q: %w", code, since, err)
	}
	defer rows.Close()

	return scanRates(rows)
}

// InsertBatch writes all records in one transaction. Records whose
// (date, currency_code) already exists are left untouched.
func (r *RateRepository) InsertBatch(ctx context.Context, rates []domain.Rate) error {
	if len(rates) == 0 {
		return nil
	}

	const q = `
        insert into rates (date, currency_code, country, currency_name, amount, rate)
        values ($1, $2, $3, $4, $5, $6)
        on conflict (date, currency_code) do nothing;
    `

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin rates insert: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	batch := &pgx.Batch{}
	for _, rt := range rates {
		batch.Queue(q, rt.Date, rt.CurrencyCode, rt.Country, rt.CurrencyName, rt.Amount, rt.Value)
	}
	if err = tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert rates batch: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit rates batch: %w", err)
	}
	return nil
}

func scanRates(rows pgx.Rows) ([]domain.Rate, error) {
	var rates []domain.Rate
	for rows.Next() {
		var rt domain.Rate
		if err := rows.Scan(&rt.Date, &rt.CurrencyCode, &rt.Country, &rt.CurrencyName, &rt.Amount, &rt.Value); err != nil {
			return nil, fmt.Errorf("failed to scan rate row: %w", err)
		}
		rates = append(rates, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rate rows: %w", err)
	}
	return rates, nil
}

func NewRateRepository(pool *pgxpool.Pool) *RateRepository {
	return &RateRepository{pool: pool}
}
