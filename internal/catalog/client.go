package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/muurk/catalog-admin/internal/logging"
)

const (
	// DefaultBaseURL is the products resource of a locally running backend
	DefaultBaseURL = "http://localhost:5000/products"

	// BulkFetchLimit is the page size used to load the whole catalog at once
	BulkFetchLimit = 1000

	// RequestIDHeader carries a per-request id so backend logs can be correlated
	RequestIDHeader = "X-Request-ID"

	// maxErrorBody bounds how much of an error response is read
	maxErrorBody = 64 << 10
)

type requestIDKey struct{}

// WithRequestID makes every API call made with ctx carry id, so one console
// action can be followed through the backend logs
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFrom returns the id stored by WithRequestID, or ""
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Client talks to the catalog products resource
type Client struct {
	// BaseURL is the products resource URL (e.g., "http://localhost:5000/products")
	BaseURL string

	// HTTPClient is the underlying HTTP client. Timeout 0 means no timeout.
	HTTPClient *http.Client
}

// NewClient creates a client for the given products URL.
// An empty URL selects DefaultBaseURL.
func NewClient(baseURL string) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{},
	}
}

// SetTimeout sets the HTTP request timeout (0 disables it)
func (c *Client) SetTimeout(timeout time.Duration) {
	c.HTTPClient.Timeout = timeout
}

// Ping checks that the products resource answers a minimal list request
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.List(ctx, 0, 1, 0)
	return err
}

// List fetches one page of products.
// minPrice is sent as min_price only when it is greater than zero.
func (c *Client) List(ctx context.Context, skip, limit int, minPrice float64) (*ProductPage, error) {
	params := url.Values{}
	params.Set("skip", strconv.Itoa(skip))
	params.Set("limit", strconv.Itoa(limit))
	if minPrice > 0 {
		params.Set("min_price", strconv.FormatFloat(minPrice, 'f', -1, 64))
	}
	endpoint := c.BaseURL + "?" + params.Encode()

	resp, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, NewNetworkError("failed to fetch products", endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if !success(resp) {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
		return nil, NewHTTPError(resp.StatusCode, statusText(resp), "failed to fetch products")
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewNetworkError("failed to read response body", endpoint, err)
	}

	page, err := decodeProductPage(body, skip, limit)
	if err != nil {
		return nil, err
	}
	return page, nil
}

// Get fetches a single product by id
func (c *Client) Get(ctx context.Context, id int) (*Product, error) {
	endpoint := c.productURL(id)

	resp, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, NewNetworkError("failed to fetch product", endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if !success(resp) {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
		status := statusText(resp)
		return nil, NewHTTPError(resp.StatusCode, status, "failed to fetch product: "+status)
	}

	var product Product
	if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
		return nil, NewParseError("failed to parse product", err)
	}
	return &product, nil
}

// Create adds a product and returns it as stored by the backend
func (c *Client) Create(ctx context.Context, input ProductInput) (*Product, error) {
	return c.send(ctx, http.MethodPost, c.BaseURL, input)
}

// Update replaces the fields of an existing product
func (c *Client) Update(ctx context.Context, id int, input ProductInput) (*Product, error) {
	return c.send(ctx, http.MethodPut, c.productURL(id), input)
}

// Delete removes a product
func (c *Client) Delete(ctx context.Context, id int) (*DeleteResult, error) {
	endpoint := c.productURL(id)

	resp, err := c.do(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return nil, NewNetworkError("failed to delete product", endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if !success(resp) {
		return nil, errorFromResponse(resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewNetworkError("failed to read response body", endpoint, err)
	}

	result := &DeleteResult{}
	if len(bytes.TrimSpace(body)) == 0 {
		return result, nil
	}
	if err := json.Unmarshal(body, result); err != nil {
		return nil, NewParseError("failed to parse delete response", err)
	}
	return result, nil
}

// send performs a create or update and decodes the returned product
func (c *Client) send(ctx context.Context, method, endpoint string, input ProductInput) (*Product, error) {
	resp, err := c.do(ctx, method, endpoint, input)
	if err != nil {
		return nil, NewNetworkError("failed to save product", endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if !success(resp) {
		return nil, errorFromResponse(resp)
	}

	var product Product
	if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
		return nil, NewParseError("failed to parse product", err)
	}
	return &product, nil
}

// do builds and sends one request. Transport errors are returned unwrapped
// so callers can classify them with their own message.
func (c *Client) do(ctx context.Context, method, endpoint string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, err
	}

	requestID := RequestIDFrom(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logging.LogAPIRequest(method, endpoint, requestID)
	start := time.Now()

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		logging.LogAPIResponse(method, endpoint, 0, time.Since(start), requestID)
		return nil, err
	}

	logging.LogAPIResponse(method, endpoint, resp.StatusCode, time.Since(start), requestID)
	return resp, nil
}

func (c *Client) productURL(id int) string {
	return fmt.Sprintf("%s/%d", c.BaseURL, id)
}

func success(resp *http.Response) bool {
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

// decodeProductPage accepts either the {items,total,skip,limit} envelope or a bare array
func decodeProductPage(body []byte, skip, limit int) (*ProductPage, error) {
	trimmed := bytes.TrimSpace(body)

	if bytes.HasPrefix(trimmed, []byte("[")) {
		var items []Product
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, NewParseError("failed to parse product list", err)
		}
		return &ProductPage{Items: items, Total: len(items), Skip: skip, Limit: limit}, nil
	}

	var page ProductPage
	if err := json.Unmarshal(trimmed, &page); err != nil {
		return nil, NewParseError("failed to parse product list", err)
	}
	if page.Items == nil {
		page.Items = []Product{}
	}
	return &page, nil
}

// errorFromResponse builds the error for a failed mutation: the body's detail
// when it can be read, otherwise "<code>: <status text>".
func errorFromResponse(resp *http.Response) *APIError {
	status := statusText(resp)
	message := fmt.Sprintf("%d: %s", resp.StatusCode, status)

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err == nil {
		if detail, ok := parseDetail(body); ok {
			message = detail
		}
	}

	return NewHTTPError(resp.StatusCode, status, message)
}

// parseDetail extracts the detail field of an error body.
// FastAPI validation errors come as a list and are flattened to "loc: msg".
func parseDetail(body []byte) (string, bool) {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return "", false
	}

	switch detail := eb.Detail.(type) {
	case string:
		if detail == "" {
			return "", false
		}
		return detail, true
	case []any:
		var parts []string
		for _, item := range detail {
			entry, ok := item.(map[string]any)
			if !ok {
				continue
			}
			msg, _ := entry["msg"].(string)
			if loc := formatLoc(entry["loc"]); loc != "" {
				msg = loc + ": " + msg
			}
			if msg != "" {
				parts = append(parts, msg)
			}
		}
		if len(parts) == 0 {
			return "", false
		}
		return strings.Join(parts, "; "), true
	case map[string]any:
		keys := make([]string, 0, len(detail))
		for k := range detail {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s: %v", k, detail[k]))
		}
		return strings.Join(parts, "; "), len(parts) > 0
	default:
		return "", false
	}
}

func formatLoc(loc any) string {
	items, ok := loc.([]any)
	if !ok {
		return ""
	}
	parts := make([]string, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case string:
			parts = append(parts, v)
		case float64:
			parts = append(parts, strconv.Itoa(int(v)))
		}
	}
	return strings.Join(parts, ".")
}
