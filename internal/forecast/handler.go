package forecast

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/dompetku/dompetku/internal/platform/httpx"
	"github.com/dompetku/dompetku/internal/shared"
)

// Handler serves the interactive forecast preview. Nothing here persists.
type Handler struct {
	logger     *slog.Logger
	forecaster *Forecaster
	validator  *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, forecaster *Forecaster) *Handler {
	return &Handler{
		logger:     logger,
		forecaster: forecaster,
		validator:  validator.New(),
	}
}

// MountRoutes registers forecast routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/", h.preview)
}

type previewRequest struct {
	Balance    float64 `json:"balance" validate:"gte=0"`
	DailySpend float64 `json:"daily_spend" validate:"required"`
}

func (h *Handler) preview(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, shared.Invalidf("malformed request body"))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, shared.Invalidf("%s", err.Error()))
		return
	}

	result, err := h.forecaster.Forecast(req.Balance, req.DailySpend)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	h.logger.Info("forecast preview",
		slog.Int("days", result.Days),
		slog.String("zone", string(result.Zone)))
	httpx.JSON(w, http.StatusOK, result)
}
