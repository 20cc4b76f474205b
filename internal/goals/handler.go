package goals

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/dompetku/dompetku/internal/platform/httpx"
	"github.com/dompetku/dompetku/internal/shared"
)

// Handler manages savings goal endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes registers goal routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Post("/{id}/contributions", h.contribute)
}

type createGoalRequest struct {
	Label  string  `json:"label" validate:"required,max=120"`
	Target float64 `json:"target" validate:"required,gt=0"`
}

type contributionRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	owner := shared.OwnerFromContext(r.Context())
	if owner == "" {
		httpx.RespondError(w, shared.Invalidf("owner identity missing"))
		return
	}

	var req createGoalRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, shared.Invalidf("invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, shared.Invalidf("%s", err.Error()))
		return
	}

	goal, err := h.service.Create(r.Context(), CreateInput{
		Owner:  owner,
		Label:  req.Label,
		Target: req.Target,
	})
	if err != nil {
		h.logger.Error("create goal", slog.Any("error", err), slog.String("owner", owner))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, goal)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	owner := shared.OwnerFromContext(r.Context())
	if owner == "" {
		httpx.RespondError(w, shared.Invalidf("owner identity missing"))
		return
	}

	goals, err := h.service.List(r.Context(), owner)
	if err != nil {
		h.logger.Error("list goals", slog.Any("error", err), slog.String("owner", owner))
		httpx.RespondError(w, err)
		return
	}
	if goals == nil {
		goals = []SavingsGoal{}
	}
	httpx.JSON(w, http.StatusOK, goals)
}

func (h *Handler) contribute(w http.ResponseWriter, r *http.Request) {
	owner := shared.OwnerFromContext(r.Context())
	if owner == "" {
		httpx.RespondError(w, shared.Invalidf("owner identity missing"))
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, shared.Invalidf("invalid goal id"))
		return
	}

	var req contributionRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, shared.Invalidf("invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, shared.Invalidf("%s", err.Error()))
		return
	}

	goal, err := h.service.Contribute(r.Context(), owner, id, req.Amount)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, goal)
}
