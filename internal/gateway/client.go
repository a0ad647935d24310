// Package gateway implements the stateless facade over the remote expense
// REST API. Every call carries the caller's bearer credential; no request
// is retried and no response is cached here.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shobhitrastogi/expense-tracker-frontend/internal/core"
)

const (
	apiPrefix    = "/api"
	expensesPath = apiPrefix + "/expenses"
	summaryPath  = apiPrefix + "/expenses/summary/all"
	profilePath  = apiPrefix + "/auth/profile"
)

// Client talks HTTP to the expense API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

var _ Gateway = (*Client)(nil)

// NewClient creates a gateway client for the given API origin.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
	}
}

type (
	listResponse struct {
		Expenses []core.Expense `json:"expenses"`
	}

	getResponse struct {
		Expense core.Expense `json:"expense"`
	}

	profileResponse struct {
		User core.User `json:"user"`
	}

	errorResponse struct {
		Message string `json:"message"`
	}
)

// ListExpenses fetches one page of expenses filtered by the serialized
// FilterState. A response without an expenses field yields an empty list.
func (c *Client) ListExpenses(ctx context.Context, token string, filter core.FilterState) ([]core.Expense, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	var out listResponse
	if err := c.do(ctx, http.MethodGet, expensesPath, filter.Values(), token, nil, &out); err != nil {
		return nil, err
	}
	return out.Expenses, nil
}

// GetExpense fetches a single record by id.
func (c *Client) GetExpense(ctx context.Context, token string, id core.ID) (core.Expense, error) {
	var out getResponse
	if err := c.do(ctx, http.MethodGet, expensesPath+"/"+url.PathEscape(id.String()), nil, token, nil, &out); err != nil {
		return core.Expense{}, err
	}
	return out.Expense, nil
}

// CreateExpense submits a new record and returns the server's copy.
func (c *Client) CreateExpense(ctx context.Context, token string, p core.ExpensePayload) (core.Expense, error) {
	var out core.Expense
	if err := c.do(ctx, http.MethodPost, expensesPath, nil, token, &p, &out); err != nil {
		return core.Expense{}, err
	}
	return out, nil
}

// UpdateExpense replaces an existing record and returns the server's copy.
func (c *Client) UpdateExpense(ctx context.Context, token string, id core.ID, p core.ExpensePayload) (core.Expense, error) {
	var out core.Expense
	if err := c.do(ctx, http.MethodPut, expensesPath+"/"+url.PathEscape(id.String()), nil, token, &p, &out); err != nil {
		return core.Expense{}, err
	}
	return out, nil
}

// DeleteExpense removes a record by id.
func (c *Client) DeleteExpense(ctx context.Context, token string, id core.ID) error {
	return c.do(ctx, http.MethodDelete, expensesPath+"/"+url.PathEscape(id.String()), nil, token, nil, nil)
}

// ReadSummary fetches one period-scoped aggregation. The all-time window
// omits the period parameter, matching the API contract.
func (c *Client) ReadSummary(ctx context.Context, token string, period core.Period) (core.Summary, error) {
	if !period.IsValid() {
		return core.Summary{}, fmt.Errorf("invalid period %q", period)
	}
	var query url.Values
	if period != core.PeriodAll {
		query = url.Values{"period": {string(period)}}
	}
	var out core.Summary
	if err := c.do(ctx, http.MethodGet, summaryPath, query, token, nil, &out); err != nil {
		return core.Summary{}, err
	}
	return out, nil
}

// ReadProfile fetches the authenticated user's profile.
func (c *Client) ReadProfile(ctx context.Context, token string) (core.User, error) {
	var out profileResponse
	if err := c.do(ctx, http.MethodGet, profilePath, nil, token, nil, &out); err != nil {
		return core.User{}, err
	}
	return out.User, nil
}

// do issues one request and decodes the response. Non-2xx responses become
// an *APIError carrying the server's {message} body when it parses.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, token string, in, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var errResp errorResponse
		if json.Unmarshal(data, &errResp) == nil {
			apiErr.Message = errResp.Message
		}
		return apiErr
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
