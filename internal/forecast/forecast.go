// Package forecast computes how many days a balance can sustain a daily
// spending rate and classifies the result into a risk zone.
package forecast

import (
	"fmt"
	"math"

	"github.com/dompetku/dompetku/internal/shared"
)

// Zone is the risk classification derived from survival days.
type Zone string

const (
	ZoneGreen Zone = "green"
	ZoneRed   Zone = "red"
	ZoneBlack Zone = "black"
)

// Thresholds is the single source of truth for the zone policy. The zone is a
// pure function of days: days <= BlackMax is black, days >= GreenMin is green,
// everything between is red.
//
// The defaults (3 and 10) are a documented policy decision, not UI logic: at
// three days of runway the user is effectively broke, at ten days or more the
// situation is considered safe.
type Thresholds struct {
	BlackMax int
	GreenMin int
}

// DefaultThresholds returns the documented zone policy.
func DefaultThresholds() Thresholds {
	return Thresholds{BlackMax: 3, GreenMin: 10}
}

// Validate rejects threshold configurations that would make a zone unreachable.
func (t Thresholds) Validate() error {
	if t.BlackMax < 0 {
		return shared.Invalidf("black threshold must not be negative")
	}
	if t.GreenMin <= t.BlackMax {
		return shared.Invalidf("green threshold must be above black threshold")
	}
	return nil
}

// Zone classifies a day count under this policy.
func (t Thresholds) Zone(days int) Zone {
	switch {
	case days <= t.BlackMax:
		return ZoneBlack
	case days >= t.GreenMin:
		return ZoneGreen
	default:
		return ZoneRed
	}
}

// MaxDays caps the reported runway at a century. Beyond that the number stops
// meaning anything, and the cap keeps extreme balance/spend ratios from
// overflowing the int conversion.
const MaxDays = 36500

// Result is a survival forecast: runway in whole days, the risk zone, and a
// human-readable message keyed by zone.
type Result struct {
	Days    int    `json:"days"`
	Zone    Zone   `json:"zone"`
	Message string `json:"message"`
}

// Forecaster computes survival forecasts under a fixed zone policy.
type Forecaster struct {
	thresholds Thresholds
}

// New builds a Forecaster. Invalid thresholds fall back to the defaults.
func New(thresholds Thresholds) *Forecaster {
	if err := thresholds.Validate(); err != nil {
		thresholds = DefaultThresholds()
	}
	return &Forecaster{thresholds: thresholds}
}

// Thresholds exposes the active zone policy.
func (f *Forecaster) Thresholds() Thresholds {
	return f.thresholds
}

// Forecast computes floor(balance/dailySpend) survival days and the matching
// zone. A zero daily spend is a domain error, never an infinite result.
func (f *Forecaster) Forecast(balance, dailySpend float64) (Result, error) {
	if balance < 0 {
		return Result{}, shared.Invalidf("balance must not be negative")
	}
	if dailySpend <= 0 {
		return Result{}, shared.Invalidf("daily spend must be positive")
	}

	ratio := math.Floor(balance / dailySpend)
	days := MaxDays
	if ratio < MaxDays {
		days = int(ratio)
	}
	zone := f.thresholds.Zone(days)
	return Result{
		Days:    days,
		Zone:    zone,
		Message: message(zone, days),
	}, nil
}

func message(zone Zone, days int) string {
	switch zone {
	case ZoneBlack:
		return fmt.Sprintf("BLACK ZONE!! Saldo hanya cukup untuk %d hari lagi, segera keluar dari zona ini!", days)
	case ZoneRed:
		return fmt.Sprintf("RED ZONE! Sisa %d hari, hemat lagi ya jangan boros-boros.", days)
	default:
		return fmt.Sprintf("Green zone, aman. Saldo masih cukup untuk %d hari.", days)
	}
}
