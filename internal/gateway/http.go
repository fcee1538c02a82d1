package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/MrJamesThe3rd/cardly/internal/resilience"
)

// HTTPClient talks to the gateway's REST API.
type HTTPClient struct {
	http    *http.Client
	baseURL string
	apiKey  string
	cb      *gobreaker.CircuitBreaker
	retry   resilience.Config
}

func NewHTTPClient(httpClient *http.Client, baseURL, apiKey string, cb *gobreaker.CircuitBreaker, retry resilience.Config) *HTTPClient {
	return &HTTPClient{
		http:    httpClient,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		cb:      cb,
		retry:   retry,
	}
}

type createCustomerRequest struct {
	Name              string `json:"name"`
	CpfCnpj           string `json:"cpfCnpj"`
	ExternalReference string `json:"externalReference"`
}

type createCustomerResponse struct {
	ID string `json:"id"`
}

func (c *HTTPClient) CreateCustomer(ctx context.Context, cust Customer) (string, error) {
	body, err := json.Marshal(createCustomerRequest{
		Name:              cust.Name,
		CpfCnpj:           cust.Document,
		ExternalReference: cust.ExternalReference,
	})
	if err != nil {
		return "", fmt.Errorf("encoding customer: %w", err)
	}

	var id string

	err = resilience.RetryWithBackoff(ctx, c.retry, func() error {
		res, err := c.cb.Execute(func() (any, error) {
			return c.post(ctx, "/customers", body)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
				return resilience.Permanent(err)
			}

			return err
		}

		id = res.(string)

		return nil
	})
	if err != nil {
		return "", fmt.Errorf("creating gateway customer: %w", err)
	}

	return id, nil
}

func (c *HTTPClient) post(ctx context.Context, path string, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return "", resilience.Permanent(fmt.Errorf("creating request: %w", err))
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return "", fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}

	if resp.StatusCode >= 400 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", resilience.Permanent(fmt.Errorf("gateway rejected request (%d): %s", resp.StatusCode, strings.TrimSpace(string(msg))))
	}

	var out createCustomerResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	if out.ID == "" {
		return "", resilience.Permanent(errors.New("gateway response without customer id"))
	}

	return out.ID, nil
}
