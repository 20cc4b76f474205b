package goals

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dompetku/dompetku/internal/shared"
)

// Repository persists savings goals in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Insert stores a freshly opened goal.
func (r *Repository) Insert(ctx context.Context, goal SavingsGoal) error {
	query := `
		INSERT INTO savings_goals
			(id, owner_email, label, target, accumulated, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.pool.Exec(ctx, query,
		goal.ID, goal.Owner, goal.Label, goal.Target,
		goal.Accumulated, string(goal.Status), goal.CreatedAt, goal.UpdatedAt,
	)
	return err
}

// List returns one owner's goals, newest first.
func (r *Repository) List(ctx context.Context, owner string) ([]SavingsGoal, error) {
	query := `
		SELECT id, owner_email, label, target, accumulated, status, created_at, updated_at
		FROM savings_goals
		WHERE owner_email = $1
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []SavingsGoal
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}
	return goals, rows.Err()
}

// Contribute adds amount to a running goal in one statement so concurrent
// contributions never lose an update. The status flip to achieved happens in
// the same statement the moment the target is reached.
func (r *Repository) Contribute(ctx context.Context, owner string, id uuid.UUID, amount float64, at time.Time) (SavingsGoal, error) {
	query := `
		UPDATE savings_goals
		SET accumulated = accumulated + $4,
			status = CASE WHEN accumulated + $4 >= target THEN 'achieved' ELSE status END,
			updated_at = $5
		WHERE id = $1 AND owner_email = $2 AND status = $3
		RETURNING id, owner_email, label, target, accumulated, status, created_at, updated_at`

	row := r.pool.QueryRow(ctx, query, id, owner, string(StatusRunning), amount, at)
	goal, err := scanGoal(row)
	if err == nil {
		return goal, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return SavingsGoal{}, err
	}

	// No running goal matched. Look it up to tell a missing goal apart from
	// an already achieved one.
	check := `
		SELECT status FROM savings_goals
		WHERE id = $1 AND owner_email = $2`
	var status string
	if err := r.pool.QueryRow(ctx, check, id, owner).Scan(&status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return SavingsGoal{}, shared.ErrNotFound
		}
		return SavingsGoal{}, err
	}
	return SavingsGoal{}, shared.ErrGoalClosed
}

func scanGoal(row pgx.Row) (SavingsGoal, error) {
	var goal SavingsGoal
	var status string
	err := row.Scan(
		&goal.ID, &goal.Owner, &goal.Label, &goal.Target,
		&goal.Accumulated, &status, &goal.CreatedAt, &goal.UpdatedAt,
	)
	if err != nil {
		return SavingsGoal{}, err
	}
	goal.Status = Status(status)
	goal.refreshPercent()
	return goal, nil
}
