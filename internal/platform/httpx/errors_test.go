package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dompetku/dompetku/internal/shared"
)

func TestRespondErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantTitle  string
		wantDetail string
	}{
		{
			name:       "invalid input",
			err:        shared.Invalidf("daily spend must be positive"),
			wantStatus: http.StatusBadRequest,
			wantTitle:  "Invalid Input",
			wantDetail: "invalid input: daily spend must be positive",
		},
		{
			name:       "not found",
			err:        shared.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantTitle:  "Not Found",
			wantDetail: shared.ErrNotFound.Error(),
		},
		{
			name:       "cooldown active",
			err:        shared.ErrCooldownActive,
			wantStatus: http.StatusConflict,
			wantTitle:  "Cooldown Active",
			wantDetail: shared.ErrCooldownActive.Error(),
		},
		{
			name:       "goal closed",
			err:        shared.ErrGoalClosed,
			wantStatus: http.StatusConflict,
			wantTitle:  "Goal Closed",
			wantDetail: shared.ErrGoalClosed.Error(),
		},
		{
			name:       "wrapped sentinel still maps",
			err:        fmt.Errorf("contribute: %w", shared.ErrGoalClosed),
			wantStatus: http.StatusConflict,
			wantTitle:  "Goal Closed",
			wantDetail: fmt.Errorf("contribute: %w", shared.ErrGoalClosed).Error(),
		},
		{
			name:       "unknown error stays opaque",
			err:        errors.New("pool exhausted"),
			wantStatus: http.StatusInternalServerError,
			wantTitle:  "Internal Error",
			wantDetail: "",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			RespondError(rr, tc.err)

			require.Equal(t, tc.wantStatus, rr.Code)
			var problem ProblemDetail
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &problem))
			require.Equal(t, tc.wantTitle, problem.Title)
			require.Equal(t, tc.wantStatus, problem.Status)
			require.Equal(t, tc.wantDetail, problem.Detail)
		})
	}
}
