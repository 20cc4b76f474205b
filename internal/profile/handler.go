package profile

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/dompetku/dompetku/internal/platform/httpx"
	"github.com/dompetku/dompetku/internal/shared"
)

// Handler manages profile endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes registers profile routes. Register takes its email from the
// body since the caller has no identity yet; read and update use the owner
// already bound to the request.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/register", h.register)
	r.Get("/", h.get)
	r.Put("/", h.update)
}

type registerRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Name       string `json:"name" validate:"required,max=120"`
	Occupation string `json:"occupation" validate:"max=120"`
	Age        int    `json:"age" validate:"gte=0,lte=150"`
	BirthDate  string `json:"birth_date"`
}

type updateRequest struct {
	Name       *string `json:"name" validate:"omitempty,max=120"`
	Occupation *string `json:"occupation" validate:"omitempty,max=120"`
	Age        *int    `json:"age" validate:"omitempty,gte=1,lte=150"`
	BirthDate  *string `json:"birth_date"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, shared.Invalidf("invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, shared.Invalidf("%s", err.Error()))
		return
	}

	birthDate, err := parseBirthDate(req.BirthDate)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	user, err := h.service.Register(r.Context(), RegisterInput{
		Email:      req.Email,
		Name:       req.Name,
		Occupation: req.Occupation,
		Age:        req.Age,
		BirthDate:  birthDate,
	})
	if err != nil {
		h.logger.Error("register profile", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, user)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	owner := shared.OwnerFromContext(r.Context())
	if owner == "" {
		httpx.RespondError(w, shared.Invalidf("owner identity missing"))
		return
	}

	user, err := h.service.Get(r.Context(), owner)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	owner := shared.OwnerFromContext(r.Context())
	if owner == "" {
		httpx.RespondError(w, shared.Invalidf("owner identity missing"))
		return
	}

	var req updateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, shared.Invalidf("invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, shared.Invalidf("%s", err.Error()))
		return
	}

	input := UpdateInput{Name: req.Name, Occupation: req.Occupation, Age: req.Age}
	if req.BirthDate != nil {
		birthDate, err := parseBirthDate(*req.BirthDate)
		if err != nil {
			httpx.RespondError(w, err)
			return
		}
		input.BirthDate = birthDate
	}

	user, err := h.service.Update(r.Context(), owner, input)
	if err != nil {
		h.logger.Warn("update profile", slog.Any("error", err), slog.String("owner", owner))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}

func parseBirthDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, shared.Invalidf("birth_date must be YYYY-MM-DD")
	}
	return &parsed, nil
}
