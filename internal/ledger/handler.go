package ledger

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/dompetku/dompetku/internal/classifier"
	"github.com/dompetku/dompetku/internal/platform/httpx"
	"github.com/dompetku/dompetku/internal/shared"
)

// Handler manages expense record endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes registers ledger routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/", h.createRecord)
	r.Get("/", h.listRecords)
	r.Delete("/{id}", h.deleteRecord)
}

type createRecordRequest struct {
	Description          string  `json:"description" validate:"max=200"`
	Balance              float64 `json:"balance" validate:"gte=0"`
	DailySpend           float64 `json:"daily_spend" validate:"required"`
	SelfReportedCategory string  `json:"self_reported_category"`
}

func (h *Handler) createRecord(w http.ResponseWriter, r *http.Request) {
	owner := shared.OwnerFromContext(r.Context())
	if owner == "" {
		httpx.RespondError(w, shared.Invalidf("owner identity missing"))
		return
	}

	var req createRecordRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, shared.Invalidf("malformed request body"))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, shared.Invalidf("%s", err.Error()))
		return
	}

	rec, err := h.service.Append(r.Context(), AppendInput{
		Owner:        owner,
		Description:  req.Description,
		Balance:      req.Balance,
		DailySpend:   req.DailySpend,
		SelfReported: classifier.Label(req.SelfReportedCategory),
	})
	if err != nil {
		h.logger.Error("append record", slog.Any("error", err), slog.String("owner", owner))
		httpx.RespondError(w, err)
		return
	}

	h.logger.Info("record created",
		slog.String("owner", owner),
		slog.String("category", string(rec.Category)),
		slog.String("zone", string(rec.Zone)))
	httpx.JSON(w, http.StatusCreated, rec)
}

func (h *Handler) listRecords(w http.ResponseWriter, r *http.Request) {
	owner := shared.OwnerFromContext(r.Context())
	if owner == "" {
		httpx.RespondError(w, shared.Invalidf("owner identity missing"))
		return
	}

	filter := ListFilter{CurrentMonthOnly: r.URL.Query().Get("month") == "current"}

	records, err := h.service.List(r.Context(), owner, filter)
	if err != nil {
		h.logger.Error("list records", slog.Any("error", err), slog.String("owner", owner))
		httpx.RespondError(w, err)
		return
	}
	if records == nil {
		records = []ExpenseRecord{}
	}
	httpx.JSON(w, http.StatusOK, records)
}

func (h *Handler) deleteRecord(w http.ResponseWriter, r *http.Request) {
	owner := shared.OwnerFromContext(r.Context())
	if owner == "" {
		httpx.RespondError(w, shared.Invalidf("owner identity missing"))
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, shared.Invalidf("invalid record id"))
		return
	}

	if err := h.service.Delete(r.Context(), owner, id); err != nil {
		httpx.RespondError(w, err)
		return
	}

	h.logger.Info("record deleted", slog.String("owner", owner), slog.String("id", id.String()))
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
