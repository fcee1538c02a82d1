// Package client is the operator console's view of the cardly REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// APIError is a non-2xx answer from the API.
type APIError struct {
	Status  int
	Kind    string
	Message string
}

func (e *APIError) Error() string {
	if e.Kind != "" {
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, e.Message)
	}

	return fmt.Sprintf("status %d: %s", e.Status, e.Message)
}

type Client struct {
	http    *http.Client
	baseURL string
	token   string
}

func New(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/") + "/api/v1",
		token:   token,
	}
}

type Card struct {
	ID           uuid.UUID       `json:"id"`
	Code         string          `json:"code"`
	Balance      decimal.Decimal `json:"balance"`
	Status       string          `json:"status"`
	FranchiseeID uuid.UUID       `json:"franchisee_id"`
	Transaction  *LedgerEntry    `json:"transaction,omitempty"`
}

type LedgerEntry struct {
	ID               uuid.UUID        `json:"id"`
	Kind             string           `json:"kind"`
	Amount           decimal.Decimal  `json:"amount"`
	CommissionAmount *decimal.Decimal `json:"commission_amount,omitempty"`
}

type Transaction struct {
	ID           uuid.UUID       `json:"id"`
	Kind         string          `json:"kind"`
	Amount       decimal.Decimal `json:"amount"`
	Status       string          `json:"status"`
	CardID       uuid.UUID       `json:"card_id"`
	CustomerName string          `json:"customer_name"`
	CreatedAt    time.Time       `json:"created_at"`
}

type Summary struct {
	Count    int             `json:"count"`
	Volume   decimal.Decimal `json:"volume"`
	Average  decimal.Decimal `json:"average"`
	ByStatus map[string]int  `json:"by_status"`
}

type TransactionPage struct {
	Items   []Transaction `json:"items"`
	Total   int           `json:"total"`
	Summary *Summary      `json:"summary"`
}

type TransactionFilter struct {
	Kind      string
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
}

type CardRequest struct {
	ID          uuid.UUID  `json:"id"`
	Quantity    int        `json:"quantity"`
	Status      string     `json:"status"`
	Notes       string     `json:"notes"`
	ShippedAt   *time.Time `json:"shipped_at"`
	DeliveredAt *time.Time `json:"delivered_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

// LedgerParams is a recharge or use performed at the operator's establishment.
type LedgerParams struct {
	Amount        decimal.Decimal `json:"amount"`
	CustomerName  string          `json:"customer_name,omitempty"`
	CustomerPhone string          `json:"customer_phone,omitempty"`
}

func (c *Client) CardByCode(ctx context.Context, code string) (*Card, error) {
	var card Card
	if err := c.do(ctx, http.MethodGet, "/cards/code/"+url.PathEscape(code), nil, "", &card); err != nil {
		return nil, err
	}

	return &card, nil
}

// Recharge and Use send a fresh idempotency key, so a retried call of the
// same invocation cannot apply twice.
func (c *Client) Recharge(ctx context.Context, cardID uuid.UUID, params LedgerParams) (*Card, error) {
	return c.ledger(ctx, cardID, "recharge", params)
}

func (c *Client) Use(ctx context.Context, cardID uuid.UUID, params LedgerParams) (*Card, error) {
	return c.ledger(ctx, cardID, "use", params)
}

func (c *Client) ledger(ctx context.Context, cardID uuid.UUID, action string, params LedgerParams) (*Card, error) {
	var card Card

	path := "/cards/" + cardID.String() + "?action=" + action
	if err := c.do(ctx, http.MethodPost, path, params, uuid.NewString(), &card); err != nil {
		return nil, err
	}

	return &card, nil
}

func (c *Client) Transactions(ctx context.Context, f TransactionFilter) (*TransactionPage, error) {
	q := url.Values{}

	if f.Kind != "" {
		q.Set("kind", f.Kind)
	}

	if f.StartDate != nil {
		q.Set("start_date", f.StartDate.Format(time.DateOnly))
	}

	if f.EndDate != nil {
		q.Set("end_date", f.EndDate.Format(time.DateOnly))
	}

	if f.Limit > 0 {
		q.Set("limit", fmt.Sprint(f.Limit))
	}

	var page TransactionPage
	if err := c.do(ctx, http.MethodGet, "/transactions?"+q.Encode(), nil, "", &page); err != nil {
		return nil, err
	}

	return &page, nil
}

func (c *Client) Requests(ctx context.Context) ([]CardRequest, error) {
	var requests []CardRequest
	if err := c.do(ctx, http.MethodGet, "/requests", nil, "", &requests); err != nil {
		return nil, err
	}

	return requests, nil
}

// CreateRequest asks the franchisee for quantity new cards. The establishment
// is taken from the operator's token.
func (c *Client) CreateRequest(ctx context.Context, quantity int, notes string) (*CardRequest, error) {
	body := map[string]any{"quantity": quantity, "notes": notes}

	var cr CardRequest
	if err := c.do(ctx, http.MethodPost, "/requests", body, "", &cr); err != nil {
		return nil, err
	}

	return &cr, nil
}

func (c *Client) CancelRequest(ctx context.Context, id uuid.UUID, reason string) (*CardRequest, error) {
	var cr CardRequest

	path := "/requests/" + id.String() + "?reason=" + url.QueryEscape(reason)
	if err := c.do(ctx, http.MethodDelete, path, nil, "", &cr); err != nil {
		return nil, err
	}

	return &cr, nil
}

func (c *Client) do(ctx context.Context, method, path string, in any, idempotencyKey string, out any) error {
	var body io.Reader

	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}

		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)

	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}

		var payload struct {
			Error string `json:"error"`
			Kind  string `json:"kind"`
		}

		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
			apiErr.Kind = payload.Kind
			apiErr.Message = payload.Error
		}

		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}
