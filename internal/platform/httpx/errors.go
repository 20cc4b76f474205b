package httpx

import (
	"errors"
	"net/http"

	"github.com/dompetku/dompetku/internal/shared"
)

// RespondError maps engine errors to HTTP responses using RFC7807. Every
// domain error kind stays structurally distinguishable for the UI client;
// anything unrecognised is reported as an opaque internal error.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrInvalidInput):
		Problem(w, http.StatusBadRequest, "Invalid Input", err.Error())
	case errors.Is(err, shared.ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, shared.ErrCooldownActive):
		Problem(w, http.StatusConflict, "Cooldown Active", err.Error())
	case errors.Is(err, shared.ErrGoalClosed):
		Problem(w, http.StatusConflict, "Goal Closed", err.Error())
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
