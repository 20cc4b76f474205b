package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dompetku/dompetku/internal/classifier"
	jobmetrics "github.com/dompetku/dompetku/internal/jobs"
	"github.com/dompetku/dompetku/internal/stats"
)

var defaultJobMetrics = jobmetrics.NewMetrics(nil)

// SnapshotWriter persists the computed accuracy report.
type SnapshotWriter interface {
	Save(ctx context.Context, report stats.AccuracyReport) error
}

// AccuracyScanJob compares assigned categories against self-reported ones
// across the whole ledger and stores the result as the current snapshot.
type AccuracyScanJob struct {
	Pool    *pgxpool.Pool
	Store   SnapshotWriter
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
	clock   func() time.Time
}

// NewAccuracyScanJob initialises the accuracy scan handler.
func NewAccuracyScanJob(pool *pgxpool.Pool, store SnapshotWriter, logger *slog.Logger, metrics *jobmetrics.Metrics) *AccuracyScanJob {
	return &AccuracyScanJob{
		Pool:    pool,
		Store:   store,
		Logger:  logger,
		Metrics: metrics,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle executes the accuracy scan logic.
func (j *AccuracyScanJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil {
		return errors.New("accuracy scan: handler not configured")
	}
	var payload AccuracyScanPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	tracker := j.metrics().Track(TaskClassifierAccuracyScan)
	var resultErr error
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := j.logger()
	logger.Info("starting accuracy scan")

	report, err := j.scan(ctx)
	if err != nil {
		resultErr = err
		logger.Error("scan failed", slog.Any("error", err))
		return resultErr
	}

	for _, pc := range report.PerCategory {
		mismatches := pc.Total - pc.Matches
		if mismatches > 0 {
			j.metrics().AddMismatches(string(pc.Category), mismatches)
		}
	}

	if err := j.store().Save(ctx, report); err != nil {
		resultErr = err
		logger.Error("store snapshot", slog.Any("error", err))
		return resultErr
	}

	logger.Info("completed accuracy scan",
		slog.Int("sample_size", report.SampleSize),
		slog.Float64("overall", report.Overall),
	)
	return resultErr
}

func (j *AccuracyScanJob) scan(ctx context.Context) (stats.AccuracyReport, error) {
	if j.Pool == nil {
		return stats.AccuracyReport{}, errors.New("accuracy scan: pool not configured")
	}

	rows, err := j.Pool.Query(ctx, `
		SELECT category, self_reported_category
		FROM expense_records
		WHERE self_reported_category IS NOT NULL`)
	if err != nil {
		return stats.AccuracyReport{}, err
	}
	defer rows.Close()

	type tally struct {
		matches int
		total   int
	}
	tallies := make(map[string]*tally)
	var order []string
	sampleSize := 0
	overallMatches := 0

	for rows.Next() {
		var assigned, reported string
		if err := rows.Scan(&assigned, &reported); err != nil {
			return stats.AccuracyReport{}, err
		}
		entry, ok := tallies[assigned]
		if !ok {
			entry = &tally{}
			tallies[assigned] = entry
			order = append(order, assigned)
		}
		entry.total++
		sampleSize++
		if assigned == reported {
			entry.matches++
			overallMatches++
		}
	}
	if err := rows.Err(); err != nil {
		return stats.AccuracyReport{}, err
	}

	report := stats.AccuracyReport{
		GeneratedAt: j.now(),
		SampleSize:  sampleSize,
		PerCategory: make([]stats.CategoryAccuracy, 0, len(order)),
	}
	if sampleSize > 0 {
		report.Overall = float64(overallMatches) / float64(sampleSize)
	}
	for _, category := range order {
		entry := tallies[category]
		pc := stats.CategoryAccuracy{
			Category: classifier.Label(category),
			Matches:  entry.matches,
			Total:    entry.total,
		}
		if entry.total > 0 {
			pc.Accuracy = float64(entry.matches) / float64(entry.total)
		}
		report.PerCategory = append(report.PerCategory, pc)
	}
	return report, nil
}

func (j *AccuracyScanJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskClassifierAccuracyScan))
	}
	return slog.Default().With(slog.String("job", TaskClassifierAccuracyScan))
}

func (j *AccuracyScanJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return defaultJobMetrics
}

func (j *AccuracyScanJob) store() SnapshotWriter {
	if j.Store != nil {
		return j.Store
	}
	return noopSnapshot{}
}

func (j *AccuracyScanJob) now() time.Time {
	if j.clock != nil {
		return j.clock()
	}
	return time.Now().UTC()
}

type noopSnapshot struct{}

func (noopSnapshot) Save(context.Context, stats.AccuracyReport) error { return nil }
