package stats

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dompetku/dompetku/internal/ledger"
	"github.com/dompetku/dompetku/internal/shared"
)

// RepositoryPort defines projection queries over the ledger.
type RepositoryPort interface {
	TotalsByCategory(ctx context.Context, owner string) ([]CategoryTotal, error)
	MonthRecords(ctx context.Context, owner string, month, year int) ([]ledger.ExpenseRecord, error)
}

// SnapshotPort loads the classifier accuracy snapshot.
type SnapshotPort interface {
	Load(ctx context.Context) (AccuracyReport, error)
}

// Service computes aggregation views. Every call reads the ledger as it is
// right now.
type Service struct {
	repo     RepositoryPort
	snapshot SnapshotPort
	now      func() time.Time
}

// NewService builds Service instance. snapshot may be nil when no worker and
// Redis are deployed.
func NewService(repo RepositoryPort, snapshot SnapshotPort) *Service {
	return &Service{repo: repo, snapshot: snapshot, now: time.Now}
}

// TotalsByCategory returns the owner's spending grouped by assigned category.
func (s *Service) TotalsByCategory(ctx context.Context, owner string) ([]CategoryTotal, error) {
	owner = shared.NormalizeOwner(owner)
	if owner == "" {
		return nil, shared.Invalidf("owner required")
	}
	return s.repo.TotalsByCategory(ctx, owner)
}

// TotalsByMonth returns one month's records with their spend total. A zero
// month or year defaults to the server's current month, never the client's.
func (s *Service) TotalsByMonth(ctx context.Context, owner string, month, year int) (MonthlySummary, error) {
	owner = shared.NormalizeOwner(owner)
	if owner == "" {
		return MonthlySummary{}, shared.Invalidf("owner required")
	}
	now := s.now()
	if month == 0 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}
	if month < 1 || month > 12 {
		return MonthlySummary{}, shared.Invalidf("month must be between 1 and 12")
	}
	if year < 2000 || year > 2200 {
		return MonthlySummary{}, shared.Invalidf("year out of range")
	}

	records, err := s.repo.MonthRecords(ctx, owner, month, year)
	if err != nil {
		return MonthlySummary{}, err
	}

	summary := MonthlySummary{Month: month, Year: year, Records: records}
	if summary.Records == nil {
		summary.Records = []ledger.ExpenseRecord{}
	}
	for _, rec := range records {
		summary.Total += rec.DailySpend
	}
	return summary, nil
}

// Dashboard fans out the category and current-month projections concurrently;
// both legs still read the live ledger.
func (s *Service) Dashboard(ctx context.Context, owner string) (Dashboard, error) {
	owner = shared.NormalizeOwner(owner)
	if owner == "" {
		return Dashboard{}, shared.Invalidf("owner required")
	}

	var dashboard Dashboard
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		totals, err := s.repo.TotalsByCategory(gctx, owner)
		if err != nil {
			return err
		}
		dashboard.Categories = totals
		return nil
	})
	g.Go(func() error {
		summary, err := s.TotalsByMonth(gctx, owner, 0, 0)
		if err != nil {
			return err
		}
		dashboard.CurrentMonth = summary
		return nil
	})
	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}
	if dashboard.Categories == nil {
		dashboard.Categories = []CategoryTotal{}
	}
	return dashboard, nil
}

// Accuracy returns the latest classifier audit snapshot.
func (s *Service) Accuracy(ctx context.Context) (AccuracyReport, error) {
	if s.snapshot == nil {
		return AccuracyReport{}, shared.ErrNotFound
	}
	return s.snapshot.Load(ctx)
}
