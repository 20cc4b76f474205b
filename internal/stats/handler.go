package stats

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dompetku/dompetku/internal/platform/httpx"
	"github.com/dompetku/dompetku/internal/shared"
)

// Handler manages aggregation endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers stats routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/categories", h.categories)
	r.Get("/monthly", h.monthly)
	r.Get("/dashboard", h.dashboard)
	r.Get("/accuracy", h.accuracy)
}

func (h *Handler) categories(w http.ResponseWriter, r *http.Request) {
	owner := shared.OwnerFromContext(r.Context())
	if owner == "" {
		httpx.RespondError(w, shared.Invalidf("owner identity missing"))
		return
	}

	totals, err := h.service.TotalsByCategory(r.Context(), owner)
	if err != nil {
		h.logger.Error("category totals", slog.Any("error", err), slog.String("owner", owner))
		httpx.RespondError(w, err)
		return
	}
	if totals == nil {
		totals = []CategoryTotal{}
	}
	httpx.JSON(w, http.StatusOK, totals)
}

func (h *Handler) monthly(w http.ResponseWriter, r *http.Request) {
	owner := shared.OwnerFromContext(r.Context())
	if owner == "" {
		httpx.RespondError(w, shared.Invalidf("owner identity missing"))
		return
	}

	month, err := queryInt(r, "month")
	if err != nil {
		httpx.RespondError(w, shared.Invalidf("invalid month"))
		return
	}
	year, err := queryInt(r, "year")
	if err != nil {
		httpx.RespondError(w, shared.Invalidf("invalid year"))
		return
	}

	summary, err := h.service.TotalsByMonth(r.Context(), owner, month, year)
	if err != nil {
		h.logger.Error("monthly totals", slog.Any("error", err), slog.String("owner", owner))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, summary)
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	owner := shared.OwnerFromContext(r.Context())
	if owner == "" {
		httpx.RespondError(w, shared.Invalidf("owner identity missing"))
		return
	}

	dashboard, err := h.service.Dashboard(r.Context(), owner)
	if err != nil {
		h.logger.Error("dashboard", slog.Any("error", err), slog.String("owner", owner))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, dashboard)
}

func (h *Handler) accuracy(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Accuracy(r.Context())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

func queryInt(r *http.Request, key string) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
