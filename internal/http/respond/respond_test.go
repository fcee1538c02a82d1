package respond_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/cardly/internal/apperr"
	"github.com/MrJamesThe3rd/cardly/internal/http/respond"
)

func TestServiceError(t *testing.T) {
	type testCase struct {
		name       string
		err        error
		wantStatus int
		wantKind   string
		wantMsg    string
	}

	tests := []testCase{
		{
			name:       "Validation",
			err:        apperr.Validation("amount must be positive"),
			wantStatus: http.StatusBadRequest,
			wantKind:   "validation",
			wantMsg:    "amount must be positive",
		},
		{
			name:       "NotFound",
			err:        fmt.Errorf("get card: %w", apperr.NotFound("card", "x")),
			wantStatus: http.StatusNotFound,
			wantKind:   "not_found",
			wantMsg:    "get card: card not found: x",
		},
		{
			name:       "Forbidden",
			err:        apperr.Forbidden("card is outside the caller's scope"),
			wantStatus: http.StatusForbidden,
			wantKind:   "forbidden",
			wantMsg:    "card is outside the caller's scope",
		},
		{
			name:       "InvalidTransition",
			err:        apperr.InvalidTransition("request", "PENDING", "DELIVERED"),
			wantStatus: http.StatusConflict,
			wantKind:   "invalid_transition",
			wantMsg:    "request cannot transition from PENDING to DELIVERED",
		},
		{
			name:       "InsufficientBalance",
			err:        apperr.InsufficientBalance(decimal.NewFromInt(5), decimal.NewFromInt(10)),
			wantStatus: http.StatusUnprocessableEntity,
			wantKind:   "insufficient_balance",
			wantMsg:    "insufficient balance: available=5.00 required=10.00",
		},
		{
			name:       "Conflict",
			err:        apperr.Conflict("card has transactions"),
			wantStatus: http.StatusConflict,
			wantKind:   "conflict",
			wantMsg:    "card has transactions",
		},
		{
			name:       "UntypedIsInternal",
			err:        errors.New("pq: connection reset"),
			wantStatus: http.StatusInternalServerError,
			wantKind:   "internal",
			wantMsg:    "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respond.ServiceError(rec, tt.err, zap.NewNop())

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantKind, body["kind"])
			assert.Equal(t, tt.wantMsg, body["error"])
		})
	}
}

func TestQueryDate(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?start_date=2024-03-01&end_date=03/05/2024", nil)

	got, err := respond.QueryDate(r, "start_date")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2024-03-01", got.Format("2006-01-02"))

	_, err = respond.QueryDate(r, "end_date")
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	got, err = respond.QueryDate(r, "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}
