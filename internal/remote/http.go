package remote

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

	"taskmaster/internal/domain"
	"taskmaster/internal/errors"
)

const (
	// DefaultBaseURL is where the server listens unless configured otherwise
	DefaultBaseURL = "http://localhost:8080"

	maxErrorBody = 4 << 10 // 4KB
)

// HTTPClient implements Remote against the JSON REST contract
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

var _ Remote = (*HTTPClient)(nil)

// NewHTTPClient creates a client for baseURL. timeout bounds each request.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the server origin requests are sent to
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// ListTodos fetches every todo
func (c *HTTPClient) ListTodos(ctx context.Context) ([]domain.Todo, error) {
	var todos []domain.Todo
	if err := c.do(ctx, http.MethodGet, "/todos", nil, &todos); err != nil {
		return nil, err
	}
	if todos == nil {
		todos = []domain.Todo{}
	}
	return todos, nil
}

// ListCategories fetches every category
func (c *HTTPClient) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if err := c.do(ctx, http.MethodGet, "/categories", nil, &categories); err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []domain.Category{}
	}
	return categories, nil
}

// CreateTodo posts a new todo
func (c *HTTPClient) CreateTodo(ctx context.Context, todo domain.Todo) error {
	return c.do(ctx, http.MethodPost, "/todos", todo, nil)
}

// UpdateTodo replaces the server copy of a todo
func (c *HTTPClient) UpdateTodo(ctx context.Context, todo domain.Todo) error {
	return c.do(ctx, http.MethodPut, "/todos/"+url.PathEscape(todo.ID), todo, nil)
}

// DeleteTodo deletes a todo by id
func (c *HTTPClient) DeleteTodo(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/todos/"+url.PathEscape(id), nil, nil)
}

// CreateCategory posts a new category
func (c *HTTPClient) CreateCategory(ctx context.Context, category domain.Category) error {
	return c.do(ctx, http.MethodPost, "/categories", category, nil)
}

// DeleteCategory deletes a category by id
func (c *HTTPClient) DeleteCategory(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/categories/"+url.PathEscape(id), nil, nil)
}

// do sends one request. in is encoded as the JSON body when non-nil; out is
// decoded from a 2xx response when non-nil.
func (c *HTTPClient) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return errors.NewNetworkError(method, path, 0, fmt.Errorf("failed to marshal request: %w", err))
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return errors.NewNetworkError(method, path, 0, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.NewNetworkError(method, path, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		var cause error
		if msg := errorMessage(snippet); msg != "" {
			cause = fmt.Errorf("%s", msg)
		}
		return errors.NewNetworkError(method, path, resp.StatusCode, cause)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.NewNetworkError(method, path, resp.StatusCode, fmt.Errorf("failed to decode response: %w", err))
	}
	return nil
}

// errorMessage pulls the server's {"error": "..."} text out of a failed
// response, falling back to the raw body
func errorMessage(body []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &payload) == nil && payload.Error != "" {
		return payload.Error
	}
	return strings.TrimSpace(string(body))
}
