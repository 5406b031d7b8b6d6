// Package api provides the HTTP client for the expense tracker REST API.
// A single Client carries the base URL and the bearer token; every call is a
// single request with no retry, dedup, or caching. Error responses are
// decoded from the {success:false, error, code} envelope and surfaced as
// *APIError values so callers can show the server's message verbatim.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"minflow/internal/dto"
	"minflow/internal/models"
)

const defaultTimeout = 30 * time.Second

// APIError is a non-2xx response from the server. Message holds the
// envelope's error field, or a generic fallback when the body carried none.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Client talks to the expense tracker API. Not safe for concurrent use; the
// terminal client is single-threaded.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a client for the given base URL, e.g.
// "http://localhost:8080/api". The trailing slash is optional.
func NewClient(baseURL string) *Client {
	for len(baseURL) > 0 && baseURL[len(baseURL)-1] == '/' {
		baseURL = baseURL[:len(baseURL)-1]
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// SetToken sets the bearer token attached to every subsequent request
func (c *Client) SetToken(token string) {
	c.token = token
}

// ClearToken removes the bearer token
func (c *Client) ClearToken() {
	c.token = ""
}

// successEnvelope mirrors the server's success response wrapper
type successEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Total   int64           `json:"total"`
	Limit   int             `json:"limit"`
	Offset  int             `json:"offset"`
}

type errorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

// do issues one request and decodes the envelope. A nil out skips data
// decoding. Returns the envelope for callers needing list metadata.
func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) (*successEnvelope, error) {
	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request: %w", err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeError(resp.StatusCode, raw)
	}

	var envelope successEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if out != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return nil, fmt.Errorf("decoding response data: %w", err)
		}
	}
	return &envelope, nil
}

// decodeError extracts the envelope's error message, falling back to a
// generic one when the body is not the expected shape
func decodeError(status int, raw []byte) *APIError {
	apiErr := &APIError{
		StatusCode: status,
		Message:    fmt.Sprintf("request failed with status %d", status),
	}
	var envelope errorEnvelope
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error != "" {
		apiErr.Message = envelope.Error
		apiErr.Code = envelope.Code
	}
	return apiErr
}

// Login authenticates and returns the token and user
func (c *Client) Login(ctx context.Context, email, password string) (*dto.AuthData, error) {
	req := dto.LoginRequest{Email: email, Password: password}
	var data dto.AuthData
	if _, err := c.do(ctx, http.MethodPost, "/auth/login", req, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// Signup registers a new account and returns the token and user
func (c *Client) Signup(ctx context.Context, email, password, name string) (*dto.AuthData, error) {
	req := dto.SignupRequest{Email: email, Password: password, Name: name}
	var data dto.AuthData
	if _, err := c.do(ctx, http.MethodPost, "/auth/signup", req, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// ListCategories returns the categories visible to the caller
func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if _, err := c.do(ctx, http.MethodGet, "/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateCategory creates a user-scoped category
func (c *Client) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	req := dto.CreateCategoryRequest{Name: name}
	var category models.Category
	if _, err := c.do(ctx, http.MethodPost, "/categories", req, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// ExpensePage is one page of the caller's expenses
type ExpensePage struct {
	Expenses []models.Expense
	Total    int64
	Limit    int
	Offset   int
}

// ListExpenses returns the caller's expenses, newest expense date first
func (c *Client) ListExpenses(ctx context.Context, limit, offset int) (*ExpensePage, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", fmt.Sprintf("%d", limit))
	}
	if offset > 0 {
		query.Set("offset", fmt.Sprintf("%d", offset))
	}
	path := "/expenses"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var expenses []models.Expense
	envelope, err := c.do(ctx, http.MethodGet, path, nil, &expenses)
	if err != nil {
		return nil, err
	}
	return &ExpensePage{
		Expenses: expenses,
		Total:    envelope.Total,
		Limit:    envelope.Limit,
		Offset:   envelope.Offset,
	}, nil
}

// CreateExpense records a new expense. The server computes and returns the
// authoritative total.
func (c *Client) CreateExpense(ctx context.Context, req *dto.CreateExpenseRequest) (*models.Expense, error) {
	var expense models.Expense
	if _, err := c.do(ctx, http.MethodPost, "/expenses", req, &expense); err != nil {
		return nil, err
	}
	return &expense, nil
}

// DeleteExpense deletes an expense owned by the caller
func (c *Client) DeleteExpense(ctx context.Context, id uint) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/expenses/%d", id), nil, nil)
	return err
}

// DateRange returns the span of the caller's recorded expenses. The server
// responds 404 when no expenses exist; callers distinguish that from other
// failures via APIError.StatusCode.
func (c *Client) DateRange(ctx context.Context) (*dto.DateRange, error) {
	var dateRange dto.DateRange
	if _, err := c.do(ctx, http.MethodGet, "/expenses/date-range", nil, &dateRange); err != nil {
		return nil, err
	}
	return &dateRange, nil
}

// Analytics returns aggregated spending for the date range, both YYYY-MM-DD
func (c *Client) Analytics(ctx context.Context, startDate, endDate string) (*dto.AnalyticsResult, error) {
	query := url.Values{}
	query.Set("start_date", startDate)
	query.Set("end_date", endDate)

	var result dto.AnalyticsResult
	if _, err := c.do(ctx, http.MethodGet, "/expenses/analytics?"+query.Encode(), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Extract sends a free-text paragraph to the extraction proxy. The proxy
// passes the upstream response through unchanged, so the extraction envelope
// is decoded directly rather than via the API envelope.
func (c *Client) Extract(ctx context.Context, req *dto.ExtractRequest) (*dto.ExtractResponse, error) {
	buf, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/expenses/extract", bytes.NewReader(buf))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	var result dto.ExtractResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, decodeError(resp.StatusCode, raw)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := fmt.Sprintf("extraction failed with status %d", resp.StatusCode)
		if result.Error != nil && *result.Error != "" {
			message = *result.Error
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: message}
	}
	return &result, nil
}

// ListUsers returns all users. Admin only.
func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if _, err := c.do(ctx, http.MethodGet, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// DeleteUser deletes a user account. Admin only; admins cannot be deleted.
func (c *Client) DeleteUser(ctx context.Context, id uint) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", id), nil, nil)
	return err
}
