package stats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dompetku/dompetku/internal/shared"
)

// accuracyKey holds the latest audit snapshot. There is exactly one; each scan
// replaces the previous one.
const accuracyKey = "classifier:accuracy:snapshot"

// AccuracyStore persists the classifier accuracy snapshot in Redis. The
// snapshot is audit metadata, so unlike the ledger projections it may be
// served from this store between scans.
type AccuracyStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewAccuracyStore constructs the store. A zero ttl keeps snapshots until the
// next scan overwrites them.
func NewAccuracyStore(client *redis.Client, ttl time.Duration) *AccuracyStore {
	return &AccuracyStore{client: client, ttl: ttl}
}

// Save replaces the current snapshot.
func (s *AccuracyStore) Save(ctx context.Context, report AccuracyReport) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("stats: marshal accuracy report: %w", err)
	}
	return s.client.Set(ctx, accuracyKey, data, s.ttl).Err()
}

// Load returns the latest snapshot, or shared.ErrNotFound when no scan has
// run yet.
func (s *AccuracyStore) Load(ctx context.Context) (AccuracyReport, error) {
	data, err := s.client.Get(ctx, accuracyKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return AccuracyReport{}, shared.ErrNotFound
		}
		return AccuracyReport{}, err
	}
	var report AccuracyReport
	if err := json.Unmarshal(data, &report); err != nil {
		return AccuracyReport{}, fmt.Errorf("stats: unmarshal accuracy report: %w", err)
	}
	return report, nil
}
