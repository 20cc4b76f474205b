package profile

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/dompetku/dompetku/internal/platform/httpx"
	"github.com/dompetku/dompetku/internal/shared"
)

func newHandlerRouter(svc *Service) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewHandler(logger, svc)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			owner := shared.NormalizeOwner(req.Header.Get("X-Owner-Email"))
			next.ServeHTTP(w, req.WithContext(shared.ContextWithOwner(req.Context(), owner)))
		})
	})
	r.Route("/profile", handler.MountRoutes)
	return r
}

func decodeProblem(t *testing.T, rr *httptest.ResponseRecorder) httpx.ProblemDetail {
	t.Helper()
	var problem httpx.ProblemDetail
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &problem))
	return problem
}

func TestRenameInsideCooldownEndpoint(t *testing.T) {
	ctx := context.Background()
	svc := newProfileService(newMemoryProfileRepo())
	router := newHandlerRouter(svc)

	start := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return start }

	_, err := svc.Register(ctx, RegisterInput{Email: "budi@example.com", Name: "Budi"})
	require.NoError(t, err)
	_, err = svc.Update(ctx, "budi@example.com", UpdateInput{Name: strPtr("Budi Santoso")})
	require.NoError(t, err)

	svc.now = func() time.Time { return start.Add(24 * time.Hour) }
	req := httptest.NewRequest(http.MethodPut, "/profile", strings.NewReader(`{"name":"Budi Baru"}`))
	req.Header.Set("X-Owner-Email", "budi@example.com")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusConflict, rr.Code)
	problem := decodeProblem(t, rr)
	require.Equal(t, "Cooldown Active", problem.Title)
	require.Equal(t, http.StatusConflict, problem.Status)
}

func TestGetProfileRequiresOwnerHeader(t *testing.T) {
	router := newHandlerRouter(newProfileService(newMemoryProfileRepo()))

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	problem := decodeProblem(t, rr)
	require.Equal(t, "Invalid Input", problem.Title)
	require.Contains(t, problem.Detail, "owner identity missing")
}

func TestGetUnknownProfileEndpoint(t *testing.T) {
	router := newHandlerRouter(newProfileService(newMemoryProfileRepo()))

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.Header.Set("X-Owner-Email", "ghost@example.com")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)
	require.Equal(t, "Not Found", decodeProblem(t, rr).Title)
}

func TestRegisterValidatorDetailForwarded(t *testing.T) {
	router := newHandlerRouter(newProfileService(newMemoryProfileRepo()))

	req := httptest.NewRequest(http.MethodPost, "/profile/register", strings.NewReader(`{"email":"not-an-email","name":"Budi"}`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	problem := decodeProblem(t, rr)
	require.Equal(t, "Invalid Input", problem.Title)
	require.Contains(t, problem.Detail, "Email")
}
