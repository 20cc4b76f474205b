package app

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/dompetku/dompetku/internal/shared"
)

func newStackedRouter(t *testing.T, next http.HandlerFunc) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := chi.NewRouter()
	for _, mw := range MiddlewareStack(MiddlewareConfig{Logger: logger, Config: &Config{}}) {
		r.Use(mw)
	}
	r.Get("/probe", next)
	return r
}

func TestOwnerMiddlewareBindsNormalizedEmail(t *testing.T) {
	var seen string
	router := newStackedRouter(t, func(w http.ResponseWriter, r *http.Request) {
		seen = shared.OwnerFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set(OwnerHeader, " Budi@Example.com ")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "budi@example.com", seen)
}

func TestOwnerMiddlewareLeavesContextEmptyWithoutHeader(t *testing.T) {
	var seen string
	router := newStackedRouter(t, func(w http.ResponseWriter, r *http.Request) {
		seen = shared.OwnerFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Empty(t, seen)
}

func TestSecureHeadersApplied(t *testing.T) {
	router := newStackedRouter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
	require.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
}
