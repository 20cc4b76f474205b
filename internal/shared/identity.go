package shared

import (
	"strings"
)

// NormalizeOwner canonicalises an owner email: trimmed and lower-cased so the
// same identity always maps to the same rows regardless of how the auth edge
// spells it.
func NormalizeOwner(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
