package profile

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/dompetku/dompetku/internal/shared"
)

// NameChangeCooldown is the minimum interval between display-name changes.
// The clock starts at the previous change, not at registration.
const NameChangeCooldown = 30 * 24 * time.Hour

// RepositoryPort defines the persistence contract for profiles.
type RepositoryPort interface {
	Insert(ctx context.Context, user User) error
	Get(ctx context.Context, email string) (User, error)
	Update(ctx context.Context, email string, mutate func(*User) error) (User, error)
}

// Service implements profile use cases.
type Service struct {
	repo   RepositoryPort
	logger *slog.Logger
	now    func() time.Time
}

// NewService builds Service instance.
func NewService(repo RepositoryPort, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// Register creates a new profile. The first name is free; only later renames
// start the cooldown clock.
func (s *Service) Register(ctx context.Context, input RegisterInput) (User, error) {
	input.Email = shared.NormalizeOwner(input.Email)
	if input.Email == "" || !strings.Contains(input.Email, "@") {
		return User{}, shared.Invalidf("valid email required")
	}
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return User{}, shared.Invalidf("name required")
	}
	if input.Age != 0 && (input.Age < 1 || input.Age > 150) {
		return User{}, shared.Invalidf("age out of range")
	}

	now := s.now().UTC()
	user := User{
		Email:      input.Email,
		Name:       input.Name,
		Occupation: strings.TrimSpace(input.Occupation),
		Age:        input.Age,
		BirthDate:  input.BirthDate,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Insert(ctx, user); err != nil {
		return User{}, err
	}
	s.logger.Info("profile registered", slog.String("email", user.Email))
	return user, nil
}

// Get returns the profile for one email.
func (s *Service) Get(ctx context.Context, email string) (User, error) {
	email = shared.NormalizeOwner(email)
	if email == "" {
		return User{}, shared.Invalidf("owner required")
	}
	return s.repo.Get(ctx, email)
}

// Update applies a partial update. A rename inside the cooldown window fails
// with shared.ErrCooldownActive and leaves every field untouched; the check
// happens lazily at write time, no background job expires anything.
func (s *Service) Update(ctx context.Context, email string, input UpdateInput) (User, error) {
	email = shared.NormalizeOwner(email)
	if email == "" {
		return User{}, shared.Invalidf("owner required")
	}

	now := s.now().UTC()
	return s.repo.Update(ctx, email, func(user *User) error {
		if input.Name != nil {
			name := strings.TrimSpace(*input.Name)
			if name == "" {
				return shared.Invalidf("name must not be empty")
			}
			if name != user.Name {
				if user.LastNameChangeAt != nil && now.Sub(*user.LastNameChangeAt) < NameChangeCooldown {
					return shared.ErrCooldownActive
				}
				user.Name = name
				changedAt := now
				user.LastNameChangeAt = &changedAt
			}
		}
		if input.Occupation != nil {
			user.Occupation = strings.TrimSpace(*input.Occupation)
		}
		if input.Age != nil {
			if *input.Age < 1 || *input.Age > 150 {
				return shared.Invalidf("age out of range")
			}
			user.Age = *input.Age
		}
		if input.BirthDate != nil {
			user.BirthDate = input.BirthDate
		}
		user.UpdatedAt = now
		return nil
	})
}
