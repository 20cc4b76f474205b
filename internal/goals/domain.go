package goals

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Status of a savings goal. A goal starts running and flips to achieved once
// its accumulated amount reaches the target. There is no way back.
type Status string

const (
	StatusRunning  Status = "running"
	StatusAchieved Status = "achieved"
)

// SavingsGoal is an owner's named target amount with its progress so far.
// Accumulated only ever grows; there are no withdrawals.
type SavingsGoal struct {
	ID          uuid.UUID `json:"id"`
	Owner       string    `json:"owner_email"`
	Label       string    `json:"label"`
	Target      float64   `json:"target"`
	Accumulated float64   `json:"accumulated"`
	Percent     float64   `json:"percent"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// refreshPercent recomputes the display progress from the stored amounts.
// Capped at 100 even when the final contribution overshoots the target.
func (g *SavingsGoal) refreshPercent() {
	if g.Target <= 0 {
		g.Percent = 0
		return
	}
	ratio := g.Accumulated / g.Target
	if ratio > 1 {
		ratio = 1
	}
	g.Percent = math.Round(ratio*1000) / 10
}

// CreateInput carries the fields needed to open a goal.
type CreateInput struct {
	Owner  string
	Label  string
	Target float64
}
