// Package client is a typed HTTP client for the book catalog API.
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

	"book-catalog/internal/domains/book/model"
)

// APIError is a non-2xx answer from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

// BookClient is the subset of the API the client pages use.
type BookClient interface {
	ListBooks(ctx context.Context) (*model.ListBooksResponse, error)
	GetBook(ctx context.Context, id string) (*model.Book, error)
	CreateBook(ctx context.Context, fields model.BookFields) (*model.Book, error)
	UpdateBook(ctx context.Context, id string, fields model.BookFields) error
	DeleteBook(ctx context.Context, id string) error
}

type httpClient struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures the client.
type Option func(*httpClient)

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *httpClient) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.httpClient = hc
	}
}

// New returns a client for the API rooted at baseURL (e.g. "http://localhost:5555").
func New(baseURL string, opts ...Option) BookClient {
	c := &httpClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) ListBooks(ctx context.Context) (*model.ListBooksResponse, error) {
	var result model.ListBooksResponse
	if err := c.do(ctx, http.MethodGet, "/books", nil, http.StatusOK, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *httpClient) GetBook(ctx context.Context, id string) (*model.Book, error) {
	var book model.Book
	if err := c.do(ctx, http.MethodGet, "/books/"+url.PathEscape(id), nil, http.StatusOK, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

func (c *httpClient) CreateBook(ctx context.Context, fields model.BookFields) (*model.Book, error) {
	var book model.Book
	if err := c.do(ctx, http.MethodPost, "/books", fields, http.StatusCreated, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

func (c *httpClient) UpdateBook(ctx context.Context, id string, fields model.BookFields) error {
	return c.do(ctx, http.MethodPut, "/books/"+url.PathEscape(id), fields, http.StatusOK, nil)
}

func (c *httpClient) DeleteBook(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/books/"+url.PathEscape(id), nil, http.StatusOK, nil)
}

// do sends body as JSON and decodes the response into out when the status matches want.
func (c *httpClient) do(ctx context.Context, method, path string, body any, want int, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != want {
		return parseError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func parseError(resp *http.Response) error {
	var body model.MessageResponse
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err := json.Unmarshal(data, &body); err != nil || body.Message == "" {
		body.Message = strings.TrimSpace(string(data))
		if body.Message == "" {
			body.Message = http.StatusText(resp.StatusCode)
		}
	}
	return &APIError{StatusCode: resp.StatusCode, Message: body.Message}
}
