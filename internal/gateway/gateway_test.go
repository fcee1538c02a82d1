package gateway_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/cardly/internal/gateway"
	"github.com/MrJamesThe3rd/cardly/internal/observability"
	"github.com/MrJamesThe3rd/cardly/internal/resilience"
)

func newClient(url string) *gateway.HTTPClient {
	return gateway.NewHTTPClient(
		&http.Client{Timeout: time.Second},
		url,
		"test-key",
		resilience.NewCircuitBreaker("gateway-test"),
		resilience.Config{MaxRetries: 2, InitialBackoff: time.Millisecond},
	)
}

func TestHTTPClient_CreateCustomer(t *testing.T) {
	var calls atomic.Int32

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)

		assert.Equal(t, "/customers", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "12345678000199", body["cpfCnpj"])

		if n == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"cus_000123"}`))
	}))
	defer ts.Close()

	id, err := newClient(ts.URL).CreateCustomer(context.Background(), gateway.Customer{
		Name:              "Padaria Central",
		Document:          "12345678000199",
		ExternalReference: "est-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "cus_000123", id)
	assert.Equal(t, int32(2), calls.Load())
}

func TestHTTPClient_RejectedIsNotRetried(t *testing.T) {
	var calls atomic.Int32

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "invalid cpfCnpj", http.StatusBadRequest)
	}))
	defer ts.Close()

	_, err := newClient(ts.URL).CreateCustomer(context.Background(), gateway.Customer{Name: "X"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid cpfCnpj")
	assert.Equal(t, int32(1), calls.Load())
}

type stubClient struct {
	id  string
	err error
}

func (s stubClient) CreateCustomer(context.Context, gateway.Customer) (string, error) {
	return s.id, s.err
}

func TestLinker_Link(t *testing.T) {
	type testCase struct {
		name   string
		client gateway.Client
		want   gateway.Linkage
	}

	tests := []testCase{
		{name: "NoClient", client: nil, want: gateway.Unlinked()},
		{name: "Linked", client: stubClient{id: "cus_1"}, want: gateway.Linked("cus_1")},
		{name: "Failed", client: stubClient{err: errors.New("gateway down")}, want: gateway.Failed("gateway down")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			linker := gateway.NewLinker(tt.client, time.Second, observability.NewMetrics(), zap.NewNop())
			assert.Equal(t, tt.want, linker.Link(context.Background(), gateway.Customer{Name: "X"}))
		})
	}
}
