package ledger

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/dompetku/dompetku/internal/classifier"
	"github.com/dompetku/dompetku/internal/forecast"
	"github.com/dompetku/dompetku/internal/shared"
)

type memoryLedgerRepo struct {
	records map[uuid.UUID]ExpenseRecord
	now     func() time.Time
}

func newMemoryLedgerRepo() *memoryLedgerRepo {
	return &memoryLedgerRepo{
		records: make(map[uuid.UUID]ExpenseRecord),
		now:     time.Now,
	}
}

func (r *memoryLedgerRepo) Insert(ctx context.Context, rec ExpenseRecord) error {
	r.records[rec.ID] = rec
	return nil
}

func (r *memoryLedgerRepo) List(ctx context.Context, owner string, filter ListFilter) ([]ExpenseRecord, error) {
	var out []ExpenseRecord
	now := r.now()
	for _, rec := range r.records {
		if rec.Owner != owner {
			continue
		}
		if filter.CurrentMonthOnly {
			created, ref := rec.CreatedAt.UTC(), now.UTC()
			if created.Year() != ref.Year() || created.Month() != ref.Month() {
				continue
			}
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memoryLedgerRepo) Delete(ctx context.Context, owner string, id uuid.UUID) error {
	rec, ok := r.records[id]
	if !ok || rec.Owner != owner {
		return shared.ErrNotFound
	}
	delete(r.records, id)
	return nil
}

func newTestService(repo RepositoryPort) *Service {
	return NewService(repo, forecast.New(forecast.DefaultThresholds()), nil, nil)
}

func TestAppendDerivesFields(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryLedgerRepo()
	svc := newTestService(repo)

	rec, err := svc.Append(ctx, AppendInput{
		Owner:       "Budi@Example.com",
		Description: "nasi ayam dekat kampus",
		Balance:     20000,
		DailySpend:  4000,
	})
	require.NoError(t, err)
	require.Equal(t, "budi@example.com", rec.Owner)
	require.Equal(t, classifier.LabelMakan, rec.Category)
	require.Equal(t, 5, rec.Days)
	require.Equal(t, forecast.ZoneRed, rec.Zone)
	require.NotEmpty(t, rec.Message)
	require.False(t, rec.CreatedAt.IsZero())
	require.Len(t, repo.records, 1)
}

func TestAppendKeepsSelfReportedAsMetadata(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryLedgerRepo()
	svc := newTestService(repo)

	rec, err := svc.Append(ctx, AppendInput{
		Owner:        "budi@example.com",
		Description:  "nonton bioskop",
		Balance:      100000,
		DailySpend:   5000,
		SelfReported: classifier.LabelMakan,
	})
	require.NoError(t, err)
	// The classifier's label is authoritative; the self-reported one rides
	// along for accuracy analysis.
	require.Equal(t, classifier.LabelHiburan, rec.Category)
	require.Equal(t, classifier.LabelMakan, rec.SelfReported)
}

func TestAppendRejectsInvalidInputs(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newMemoryLedgerRepo())

	_, err := svc.Append(ctx, AppendInput{Owner: "", Balance: 100, DailySpend: 10})
	require.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = svc.Append(ctx, AppendInput{Owner: "a@b.id", Balance: 100, DailySpend: 0})
	require.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = svc.Append(ctx, AppendInput{Owner: "a@b.id", Balance: -1, DailySpend: 10})
	require.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = svc.Append(ctx, AppendInput{
		Owner: "a@b.id", Balance: 100, DailySpend: 10,
		SelfReported: classifier.Label("Cicilan"),
	})
	require.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestAppendEmptyDescriptionFallsBack(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newMemoryLedgerRepo())

	rec, err := svc.Append(ctx, AppendInput{Owner: "a@b.id", Balance: 100000, DailySpend: 5000})
	require.NoError(t, err)
	require.Equal(t, classifier.LabelLainnya, rec.Category)
}

func TestDeleteIsOwnerScoped(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryLedgerRepo()
	svc := newTestService(repo)

	rec, err := svc.Append(ctx, AppendInput{Owner: "budi@example.com", Balance: 9000, DailySpend: 3000})
	require.NoError(t, err)

	err = svc.Delete(ctx, "intan@example.com", rec.ID)
	require.ErrorIs(t, err, shared.ErrNotFound)
	require.Len(t, repo.records, 1)

	require.NoError(t, svc.Delete(ctx, "budi@example.com", rec.ID))
	require.Empty(t, repo.records)
}

func TestDeleteTwiceFailsNotFound(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newMemoryLedgerRepo())

	rec, err := svc.Append(ctx, AppendInput{Owner: "budi@example.com", Balance: 9000, DailySpend: 3000})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "budi@example.com", rec.ID))
	err = svc.Delete(ctx, "budi@example.com", rec.ID)
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestListScopedAndOrdered(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryLedgerRepo()
	svc := newTestService(repo)

	base := time.Date(2026, 8, 10, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		stamp := base.Add(time.Duration(i) * time.Hour)
		svc.now = func() time.Time { return stamp }
		_, err := svc.Append(ctx, AppendInput{Owner: "budi@example.com", Balance: 9000, DailySpend: 3000})
		require.NoError(t, err)
	}
	svc.now = time.Now
	_, err := svc.Append(ctx, AppendInput{Owner: "intan@example.com", Balance: 9000, DailySpend: 3000})
	require.NoError(t, err)

	records, err := svc.List(ctx, "budi@example.com", ListFilter{})
	require.NoError(t, err)
	require.Len(t, records, 3)
	for i := 1; i < len(records); i++ {
		require.True(t, records[i-1].CreatedAt.After(records[i].CreatedAt))
	}
}

func TestListCurrentMonthFilter(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryLedgerRepo()
	svc := newTestService(repo)

	now := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }

	svc.now = func() time.Time { return now.AddDate(0, -1, 0) }
	_, err := svc.Append(ctx, AppendInput{Owner: "budi@example.com", Balance: 9000, DailySpend: 3000})
	require.NoError(t, err)

	svc.now = func() time.Time { return now }
	_, err = svc.Append(ctx, AppendInput{Owner: "budi@example.com", Balance: 50000, DailySpend: 5000})
	require.NoError(t, err)

	all, err := svc.List(ctx, "budi@example.com", ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)

	current, err := svc.List(ctx, "budi@example.com", ListFilter{CurrentMonthOnly: true})
	require.NoError(t, err)
	require.Len(t, current, 1)
	require.Equal(t, 10, current[0].Days)
}

func TestListCurrentMonthBoundaryInUTC(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryLedgerRepo()
	svc := newTestService(repo)

	jakarta := time.FixedZone("WIB", 7*3600)
	repo.now = func() time.Time { return time.Date(2026, 8, 31, 23, 30, 0, 0, time.UTC) }

	// 2026-09-01 06:00 WIB is still 2026-08-31 23:00 UTC, so it belongs to
	// August no matter the local wall clock.
	svc.now = func() time.Time { return time.Date(2026, 9, 1, 6, 0, 0, 0, jakarta) }
	_, err := svc.Append(ctx, AppendInput{Owner: "budi@example.com", Balance: 9000, DailySpend: 3000})
	require.NoError(t, err)

	current, err := svc.List(ctx, "budi@example.com", ListFilter{CurrentMonthOnly: true})
	require.NoError(t, err)
	require.Len(t, current, 1)
}
