package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/cardly/cmd/tui/internal/client"
)

func TestClient_Use(t *testing.T) {
	cardID := uuid.New()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/cards/"+cardID.String(), r.URL.Path)
		assert.Equal(t, "use", r.URL.Query().Get("action"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("Idempotency-Key"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "40", body["amount"])
		assert.Equal(t, "Ana", body["customer_name"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"` + cardID.String() + `","code":"CRD-1","balance":"60.00","status":"ACTIVE",` +
			`"transaction":{"id":"` + uuid.NewString() + `","kind":"USAGE","amount":"40.00","commission_amount":"6.00"}}`))
	}))
	defer srv.Close()

	c := client.New(srv.URL, "tok", time.Second)

	card, err := c.Use(context.Background(), cardID, client.LedgerParams{
		Amount:       decimal.NewFromInt(40),
		CustomerName: "Ana",
	})
	require.NoError(t, err)

	assert.True(t, card.Balance.Equal(decimal.NewFromInt(60)))
	require.NotNil(t, card.Transaction)
	require.NotNil(t, card.Transaction.CommissionAmount)
	assert.Equal(t, "6", card.Transaction.CommissionAmount.String())
}

func TestClient_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":"insufficient balance: available=5.00 required=10.00","kind":"insufficient_balance"}`))
	}))
	defer srv.Close()

	c := client.New(srv.URL, "tok", time.Second)

	_, err := c.Use(context.Background(), uuid.New(), client.LedgerParams{Amount: decimal.NewFromInt(10)})

	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Equal(t, "insufficient_balance", apiErr.Kind)
}

func TestClient_Transactions(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "USAGE", r.URL.Query().Get("kind"))
		assert.Equal(t, "2024-03-01", r.URL.Query().Get("start_date"))
		assert.Empty(t, r.Header.Get("Idempotency-Key"))

		_, _ = w.Write([]byte(`{"items":[],"total":0,"summary":{"count":0,"volume":"0.00","average":"0.00","by_status":{}}}`))
	}))
	defer srv.Close()

	page, err := client.New(srv.URL, "tok", time.Second).Transactions(context.Background(), client.TransactionFilter{
		Kind:      "USAGE",
		StartDate: &start,
	})
	require.NoError(t, err)
	require.NotNil(t, page.Summary)
	assert.Zero(t, page.Summary.Count)
}
