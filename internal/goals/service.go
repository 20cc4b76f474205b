package goals

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dompetku/dompetku/internal/shared"
)

// RepositoryPort defines the persistence contract for savings goals.
type RepositoryPort interface {
	Insert(ctx context.Context, goal SavingsGoal) error
	List(ctx context.Context, owner string) ([]SavingsGoal, error)
	Contribute(ctx context.Context, owner string, id uuid.UUID, amount float64, at time.Time) (SavingsGoal, error)
}

// Service implements savings goal use cases.
type Service struct {
	repo   RepositoryPort
	logger *slog.Logger
	now    func() time.Time
}

// NewService builds Service instance.
func NewService(repo RepositoryPort, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// Create opens a new running goal with zero progress.
func (s *Service) Create(ctx context.Context, input CreateInput) (SavingsGoal, error) {
	input.Owner = shared.NormalizeOwner(input.Owner)
	if input.Owner == "" {
		return SavingsGoal{}, shared.Invalidf("owner required")
	}
	input.Label = strings.TrimSpace(input.Label)
	if input.Label == "" {
		return SavingsGoal{}, shared.Invalidf("label required")
	}
	if input.Target <= 0 {
		return SavingsGoal{}, shared.Invalidf("target must be positive")
	}

	now := s.now().UTC()
	goal := SavingsGoal{
		ID:        uuid.New(),
		Owner:     input.Owner,
		Label:     input.Label,
		Target:    input.Target,
		Status:    StatusRunning,
		CreatedAt: now,
		UpdatedAt: now,
	}
	goal.refreshPercent()

	if err := s.repo.Insert(ctx, goal); err != nil {
		return SavingsGoal{}, err
	}
	s.logger.Info("savings goal opened",
		slog.String("goal_id", goal.ID.String()),
		slog.String("owner", goal.Owner),
	)
	return goal, nil
}

// List returns the owner's goals.
func (s *Service) List(ctx context.Context, owner string) ([]SavingsGoal, error) {
	owner = shared.NormalizeOwner(owner)
	if owner == "" {
		return nil, shared.Invalidf("owner required")
	}
	return s.repo.List(ctx, owner)
}

// Contribute adds a positive amount to a running goal. Contributions to an
// achieved goal fail with shared.ErrGoalClosed.
func (s *Service) Contribute(ctx context.Context, owner string, id uuid.UUID, amount float64) (SavingsGoal, error) {
	owner = shared.NormalizeOwner(owner)
	if owner == "" {
		return SavingsGoal{}, shared.Invalidf("owner required")
	}
	if id == uuid.Nil {
		return SavingsGoal{}, shared.Invalidf("goal id required")
	}
	if amount <= 0 {
		return SavingsGoal{}, shared.Invalidf("amount must be positive")
	}

	goal, err := s.repo.Contribute(ctx, owner, id, amount, s.now().UTC())
	if err != nil {
		return SavingsGoal{}, err
	}
	if goal.Status == StatusAchieved {
		s.logger.Info("savings goal achieved",
			slog.String("goal_id", goal.ID.String()),
			slog.String("owner", goal.Owner),
		)
	}
	return goal, nil
}
