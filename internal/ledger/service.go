package ledger

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dompetku/dompetku/internal/classifier"
	"github.com/dompetku/dompetku/internal/forecast"
	"github.com/dompetku/dompetku/internal/shared"
)

// RepositoryPort defines data access methods for the ledger.
type RepositoryPort interface {
	Insert(ctx context.Context, rec ExpenseRecord) error
	List(ctx context.Context, owner string, filter ListFilter) ([]ExpenseRecord, error)
	Delete(ctx context.Context, owner string, id uuid.UUID) error
}

// AccuracyEnqueuer schedules the background classifier-accuracy scan.
type AccuracyEnqueuer interface {
	EnqueueAccuracyScan(ctx context.Context, owner string) error
}

// Service runs the record-creation pipeline: classify, forecast, persist.
type Service struct {
	repo       RepositoryPort
	forecaster *forecast.Forecaster
	enqueuer   AccuracyEnqueuer
	logger     *slog.Logger
	now        func() time.Time
}

// NewService builds Service instance. The enqueuer may be nil when no worker
// is deployed.
func NewService(repo RepositoryPort, forecaster *forecast.Forecaster, enqueuer AccuracyEnqueuer, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:       repo,
		forecaster: forecaster,
		enqueuer:   enqueuer,
		logger:     logger,
		now:        time.Now,
	}
}

// Append validates the raw inputs, derives category and forecast, and persists
// the resulting record. Validation happens before any mutation.
func (s *Service) Append(ctx context.Context, input AppendInput) (*ExpenseRecord, error) {
	owner := shared.NormalizeOwner(input.Owner)
	if owner == "" {
		return nil, shared.Invalidf("owner required")
	}
	if input.SelfReported != "" && !classifier.Valid(input.SelfReported) {
		return nil, shared.Invalidf("unknown category %q", input.SelfReported)
	}

	result, err := s.forecaster.Forecast(input.Balance, input.DailySpend)
	if err != nil {
		return nil, err
	}

	rec := ExpenseRecord{
		ID:           uuid.New(),
		Owner:        owner,
		Description:  input.Description,
		Balance:      input.Balance,
		DailySpend:   input.DailySpend,
		Category:     classifier.Classify(input.Description),
		SelfReported: input.SelfReported,
		Days:         result.Days,
		Zone:         result.Zone,
		Message:      result.Message,
		CreatedAt:    s.now().UTC(),
	}

	if err := s.repo.Insert(ctx, rec); err != nil {
		return nil, err
	}

	if s.enqueuer != nil && rec.SelfReported != "" {
		if err := s.enqueuer.EnqueueAccuracyScan(ctx, owner); err != nil {
			s.logger.Warn("enqueue accuracy scan", slog.Any("error", err))
		}
	}

	return &rec, nil
}

// List returns the owner's records, newest first.
func (s *Service) List(ctx context.Context, owner string, filter ListFilter) ([]ExpenseRecord, error) {
	owner = shared.NormalizeOwner(owner)
	if owner == "" {
		return nil, shared.Invalidf("owner required")
	}
	return s.repo.List(ctx, owner, filter)
}

// Delete removes one record scoped to its owner. Deleting an absent or
// foreign record fails with shared.ErrNotFound; a duplicate delete of an
// already-deleted id fails the same way.
func (s *Service) Delete(ctx context.Context, owner string, id uuid.UUID) error {
	owner = shared.NormalizeOwner(owner)
	if owner == "" {
		return shared.Invalidf("owner required")
	}
	if id == uuid.Nil {
		return shared.Invalidf("record id required")
	}
	return s.repo.Delete(ctx, owner, id)
}
