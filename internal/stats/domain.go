// Package stats derives read-model projections from the ledger: per-category
// totals, per-month totals, and the classifier accuracy audit. Projections are
// recomputed from live ledger state on every call; nothing here is cached.
package stats

import (
	"time"

	"github.com/dompetku/dompetku/internal/classifier"
	"github.com/dompetku/dompetku/internal/ledger"
)

// CategoryTotal is one row of the per-category spending projection. Grouping
// is by the classifier-assigned category, never the self-reported one.
type CategoryTotal struct {
	Category classifier.Label `json:"category"`
	Total    float64          `json:"total"`
}

// MonthlySummary is the spending view for one calendar month.
type MonthlySummary struct {
	Month   int                    `json:"month"`
	Year    int                    `json:"year"`
	Total   float64                `json:"total"`
	Records []ledger.ExpenseRecord `json:"records"`
}

// Dashboard combines the category and current-month projections.
type Dashboard struct {
	Categories   []CategoryTotal `json:"categories"`
	CurrentMonth MonthlySummary  `json:"current_month"`
}

// CategoryAccuracy compares self-reported against classifier-assigned labels
// for one category.
type CategoryAccuracy struct {
	Category classifier.Label `json:"category"`
	Matches  int              `json:"matches"`
	Total    int              `json:"total"`
	Accuracy float64          `json:"accuracy"`
}

// AccuracyReport is the audit snapshot produced by the background scan. It is
// metadata about classifier quality, not an input to classification.
type AccuracyReport struct {
	GeneratedAt time.Time          `json:"generated_at"`
	SampleSize  int                `json:"sample_size"`
	Overall     float64            `json:"overall"`
	PerCategory []CategoryAccuracy `json:"per_category"`
}
