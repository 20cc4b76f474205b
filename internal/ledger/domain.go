// Package ledger owns the append-only record of expense entries per user.
package ledger

import (
	"time"

	"github.com/google/uuid"

	"github.com/dompetku/dompetku/internal/classifier"
	"github.com/dompetku/dompetku/internal/forecast"
)

// ExpenseRecord is one spending event. Derived fields (category, days, zone,
// message) are always recomputed from the raw inputs at write time; a record
// is immutable once created except for deletion.
type ExpenseRecord struct {
	ID           uuid.UUID        `json:"id"`
	Owner        string           `json:"owner"`
	Description  string           `json:"description,omitempty"`
	Balance      float64          `json:"balance"`
	DailySpend   float64          `json:"daily_spend"`
	Category     classifier.Label `json:"category"`
	SelfReported classifier.Label `json:"self_reported_category,omitempty"`
	Days         int              `json:"days"`
	Zone         forecast.Zone    `json:"zone"`
	Message      string           `json:"message"`
	CreatedAt    time.Time        `json:"created_at"`
}

// AppendInput carries the raw inputs for a new record. SelfReported is the
// user's own category guess, kept as audit metadata only; the classifier's
// label is authoritative for storage and statistics.
type AppendInput struct {
	Owner        string
	Description  string
	Balance      float64
	DailySpend   float64
	SelfReported classifier.Label
}

// ListFilter narrows a listing. CurrentMonthOnly restricts to the current
// calendar month by the server clock, never a client-supplied boundary.
type ListFilter struct {
	CurrentMonthOnly bool
}
