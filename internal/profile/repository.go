package profile

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dompetku/dompetku/internal/platform/db"
	"github.com/dompetku/dompetku/internal/shared"
)

// Repository persists profiles in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Insert registers a new profile. A duplicate email fails with
// shared.ErrInvalidInput.
func (r *Repository) Insert(ctx context.Context, user User) error {
	query := `
		INSERT INTO users
			(email, name, occupation, age, birth_date, last_name_change_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.pool.Exec(ctx, query,
		user.Email, user.Name, user.Occupation, user.Age,
		user.BirthDate, user.LastNameChangeAt, user.CreatedAt, user.UpdatedAt,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return shared.Invalidf("email already registered")
	}
	return err
}

// Get returns the profile for one email.
func (r *Repository) Get(ctx context.Context, email string) (User, error) {
	query := `
		SELECT email, name, occupation, age, birth_date, last_name_change_at, created_at, updated_at
		FROM users
		WHERE email = $1`

	user, err := scanUser(r.pool.QueryRow(ctx, query, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, shared.ErrNotFound
	}
	return user, err
}

// Update applies mutate to the stored profile inside one transaction, holding
// a row lock so two concurrent renames cannot both pass the cooldown check.
func (r *Repository) Update(ctx context.Context, email string, mutate func(*User) error) (User, error) {
	var updated User
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		query := `
			SELECT email, name, occupation, age, birth_date, last_name_change_at, created_at, updated_at
			FROM users
			WHERE email = $1
			FOR UPDATE`

		user, err := scanUser(tx.QueryRow(ctx, query, email))
		if errors.Is(err, pgx.ErrNoRows) {
			return shared.ErrNotFound
		}
		if err != nil {
			return err
		}

		if err := mutate(&user); err != nil {
			return err
		}

		write := `
			UPDATE users
			SET name = $2, occupation = $3, age = $4, birth_date = $5,
				last_name_change_at = $6, updated_at = $7
			WHERE email = $1`
		_, err = tx.Exec(ctx, write,
			user.Email, user.Name, user.Occupation, user.Age,
			user.BirthDate, user.LastNameChangeAt, user.UpdatedAt,
		)
		if err != nil {
			return err
		}
		updated = user
		return nil
	})
	if err != nil {
		return User{}, err
	}
	return updated, nil
}

func scanUser(row pgx.Row) (User, error) {
	var user User
	err := row.Scan(
		&user.Email, &user.Name, &user.Occupation, &user.Age,
		&user.BirthDate, &user.LastNameChangeAt, &user.CreatedAt, &user.UpdatedAt,
	)
	return user, err
}
