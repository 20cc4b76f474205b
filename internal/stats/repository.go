package stats

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dompetku/dompetku/internal/classifier"
	"github.com/dompetku/dompetku/internal/forecast"
	"github.com/dompetku/dompetku/internal/ledger"
)

// Repository provides PostgreSQL backed projections over expense records.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// TotalsByCategory aggregates one owner's spending by assigned category,
// largest first.
func (r *Repository) TotalsByCategory(ctx context.Context, owner string) ([]CategoryTotal, error) {
	query := `
		SELECT category, COALESCE(SUM(daily_spend), 0) AS total
		FROM expense_records
		WHERE owner_email = $1
		GROUP BY category
		ORDER BY total DESC, category`

	rows, err := r.pool.Query(ctx, query, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var totals []CategoryTotal
	for rows.Next() {
		var ct CategoryTotal
		var category string
		if err := rows.Scan(&category, &ct.Total); err != nil {
			return nil, err
		}
		ct.Category = classifier.Label(category)
		totals = append(totals, ct)
	}
	return totals, rows.Err()
}

// MonthRecords returns one owner's records for a calendar month, newest
// first. Records are stored in UTC, so the month boundary is evaluated in UTC
// regardless of the session timezone.
func (r *Repository) MonthRecords(ctx context.Context, owner string, month, year int) ([]ledger.ExpenseRecord, error) {
	query := `
		SELECT id, owner_email, description, balance, daily_spend,
			category, self_reported_category, days, zone, message, created_at
		FROM expense_records
		WHERE owner_email = $1
			AND EXTRACT(MONTH FROM created_at AT TIME ZONE 'UTC') = $2
			AND EXTRACT(YEAR FROM created_at AT TIME ZONE 'UTC') = $3
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, owner, month, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []ledger.ExpenseRecord
	for rows.Next() {
		var rec ledger.ExpenseRecord
		var category, zone string
		var selfReported *string
		err := rows.Scan(
			&rec.ID, &rec.Owner, &rec.Description, &rec.Balance, &rec.DailySpend,
			&category, &selfReported, &rec.Days, &zone, &rec.Message, &rec.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		rec.Category = classifier.Label(category)
		rec.Zone = forecast.Zone(zone)
		if selfReported != nil {
			rec.SelfReported = classifier.Label(*selfReported)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
