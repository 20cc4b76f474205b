package ledger

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dompetku/dompetku/internal/classifier"
	"github.com/dompetku/dompetku/internal/forecast"
	"github.com/dompetku/dompetku/internal/shared"
)

// Repository provides PostgreSQL backed persistence for expense records.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Insert persists a fully derived record.
func (r *Repository) Insert(ctx context.Context, rec ExpenseRecord) error {
	query := `
		INSERT INTO expense_records (
			id, owner_email, description, balance, daily_spend,
			category, self_reported_category, days, zone, message, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	var selfReported *string
	if rec.SelfReported != "" {
		s := string(rec.SelfReported)
		selfReported = &s
	}

	_, err := r.pool.Exec(ctx, query,
		rec.ID,
		rec.Owner,
		rec.Description,
		rec.Balance,
		rec.DailySpend,
		string(rec.Category),
		selfReported,
		rec.Days,
		string(rec.Zone),
		rec.Message,
		rec.CreatedAt,
	)
	return err
}

// List returns one owner's records, newest first. The current-month filter
// uses the database clock so the boundary cannot be steered by the client.
// Records are stored in UTC, so the comparison pins both sides to UTC rather
// than the session timezone.
func (r *Repository) List(ctx context.Context, owner string, filter ListFilter) ([]ExpenseRecord, error) {
	query := `
		SELECT id, owner_email, description, balance, daily_spend,
			category, self_reported_category, days, zone, message, created_at
		FROM expense_records
		WHERE owner_email = $1`
	if filter.CurrentMonthOnly {
		query += ` AND date_trunc('month', created_at AT TIME ZONE 'UTC') = date_trunc('month', now() AT TIME ZONE 'UTC')`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []ExpenseRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Delete removes exactly the record matching both id and owner. A missing row
// and a foreign row both surface as shared.ErrNotFound so existence never
// leaks across owners.
func (r *Repository) Delete(ctx context.Context, owner string, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx,
		`DELETE FROM expense_records WHERE id = $1 AND owner_email = $2`, id, owner)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func scanRecord(rows pgx.Rows) (ExpenseRecord, error) {
	var rec ExpenseRecord
	var category, zone string
	var selfReported *string

	err := rows.Scan(
		&rec.ID, &rec.Owner, &rec.Description, &rec.Balance, &rec.DailySpend,
		&category, &selfReported, &rec.Days, &zone, &rec.Message, &rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ExpenseRecord{}, shared.ErrNotFound
		}
		return ExpenseRecord{}, err
	}

	rec.Category = classifier.Label(category)
	rec.Zone = forecast.Zone(zone)
	if selfReported != nil {
		rec.SelfReported = classifier.Label(*selfReported)
	}
	return rec, nil
}
