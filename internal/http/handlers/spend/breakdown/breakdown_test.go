package breakdown

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/subscription-tracker/internal/models"
	"github.com/magabrotheeeer/subscription-tracker/internal/services/tracker"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) SpendBySubscription(ctx context.Context, userID int64) (models.SpendBreakdown, error) {
	args := m.Called(ctx, userID)
	if res := args.Get(0); res != nil {
		return res.(models.SpendBreakdown), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestBreakdownHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mockService := new(MockService)
	mockService.On("SpendBySubscription", mock.Anything, int64(1)).Return(models.SpendBreakdown{
		"Netflix": decimal.RequireFromString("150.00"),
		"Spotify": decimal.RequireFromString("25.00"),
	}, nil)
	mockService.On("SpendBySubscription", mock.Anything, int64(2)).
		Return(nil, fmt.Errorf("%w: user 2", tracker.ErrNotFound))

	r := chi.NewRouter()
	r.Get("/users/{id}/spend/breakdown", New(logger, mockService).ServeHTTP)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/1/spend/breakdown", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status string `json:"status"`
		Data   struct {
			Breakdown map[string]decimal.Decimal `json:"breakdown"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "OK", body.Status)
	assert.True(t, decimal.NewFromInt(150).Equal(body.Data.Breakdown["Netflix"]))
	assert.True(t, decimal.NewFromInt(25).Equal(body.Data.Breakdown["Spotify"]))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/2/spend/breakdown", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
