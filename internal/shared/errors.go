package shared

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput indicates malformed or out-of-range input; the
	// operation is rejected before any mutation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound indicates the referenced record or goal is absent or not
	// owned by the caller. The two cases are deliberately indistinguishable.
	ErrNotFound = errors.New("not found")
	// ErrCooldownActive indicates a display-name change attempted before the
	// 30-day cooldown elapsed.
	ErrCooldownActive = errors.New("cooldown active")
	// ErrGoalClosed indicates a contribution to an already-achieved goal.
	ErrGoalClosed = errors.New("goal closed")
)

// Invalidf wraps ErrInvalidInput with a caller-facing detail.
func Invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidInput}, args...)...)
}
