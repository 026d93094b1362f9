// Package client is the HTTP client for the payment instructions service.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Account is one entry of the account snapshot sent with an instruction.
type Account struct {
	ID       string `json:"id"`
	Balance  int64  `json:"balance"`
	Currency string `json:"currency"`
}

// AccountView is an involved account as returned by the service.
type AccountView struct {
	ID            string `json:"id"`
	Balance       int64  `json:"balance"`
	BalanceBefore int64  `json:"balance_before"`
	Currency      string `json:"currency"`
}

// TransactionResponse is the outcome of one instruction.
type TransactionResponse struct {
	Type          *string       `json:"type"`
	Amount        *int64        `json:"amount"`
	Currency      *string       `json:"currency"`
	DebitAccount  *string       `json:"debit_account"`
	CreditAccount *string       `json:"credit_account"`
	ExecuteBy     *string       `json:"execute_by"`
	Status        string        `json:"status"`
	StatusReason  string        `json:"status_reason"`
	StatusCode    string        `json:"status_code"`
	Accounts      []AccountView `json:"accounts"`
}

// APIError is returned for responses that do not carry a transaction outcome,
// and for server failures.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Detail)
}

// ErrServerFailure marks a 500 answered with the fallback outcome.
var ErrServerFailure = errors.New("instruction service failure")

// ProcessOptions are optional request headers.
type ProcessOptions struct {
	IdempotencyKey string
	TraceID        string
}

// Client talks to the payment instructions HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a client. A nil httpClient gets a 30s timeout; a nil logger discards.
func NewClient(baseURL string, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

// Process submits an instruction. Failed outcomes (HTTP 400) are returned as a response,
// not an error; callers inspect StatusCode. A 500 returns the fallback response together
// with an error wrapping ErrServerFailure.
func (c *Client) Process(ctx context.Context, instruction string, accounts []Account, opts ProcessOptions) (*TransactionResponse, error) {
	if accounts == nil {
		accounts = []Account{}
	}
	body, err := json.Marshal(map[string]interface{}{
		"instruction": instruction,
		"accounts":    accounts,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/payment-instructions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if opts.IdempotencyKey != "" {
		req.Header.Set("Idempotency-Key", opts.IdempotencyKey)
	}
	if opts.TraceID != "" {
		req.Header.Set("X-Trace-ID", opts.TraceID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusBadRequest, http.StatusInternalServerError:
	default:
		return nil, c.parseErrorResponse(resp)
	}

	if !strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		return nil, c.parseErrorResponse(resp)
	}

	var out TransactionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	c.logger.Debug("instruction processed",
		zap.Int("http_status", resp.StatusCode),
		zap.String("status_code", out.StatusCode),
		zap.String("replay", resp.Header.Get("X-Idempotent-Replay")),
	)

	if resp.StatusCode == http.StatusInternalServerError {
		return &out, fmt.Errorf("%w: %s", ErrServerFailure, out.StatusReason)
	}
	return &out, nil
}

// Health reports whether the service is ready.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/readyz", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.parseErrorResponse(resp)
	}
	return nil
}

// parseErrorResponse reads an RFC 7807 body when present, else the raw text.
func (c *Client) parseErrorResponse(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var problem struct {
		Detail string `json:"detail"`
		Title  string `json:"title"`
	}
	detail := strings.TrimSpace(string(data))
	if json.Unmarshal(data, &problem) == nil {
		switch {
		case problem.Detail != "":
			detail = problem.Detail
		case problem.Title != "":
			detail = problem.Title
		}
	}
	if detail == "" {
		detail = http.StatusText(resp.StatusCode)
	}
	return &APIError{StatusCode: resp.StatusCode, Detail: detail}
}
