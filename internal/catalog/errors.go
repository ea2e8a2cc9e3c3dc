package catalog

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"syscall"
)

// ErrorType represents the category of error that occurred
type ErrorType int

const (
	// ErrTypeNetwork indicates a network-level error (connection reset, unreachable host, etc.)
	ErrTypeNetwork ErrorType = iota
	// ErrTypeHTTP indicates a non-success HTTP status from the catalog API
	ErrTypeHTTP
	// ErrTypeNotFound indicates the requested product does not exist (HTTP 404)
	ErrTypeNotFound
	// ErrTypeParse indicates a response body that could not be decoded
	ErrTypeParse
	// ErrTypeValidation indicates product data rejected before any request was sent
	ErrTypeValidation
	// ErrTypeTimeout indicates a request timeout
	ErrTypeTimeout
	// ErrTypeConnectionRefused indicates the API refused the connection
	ErrTypeConnectionRefused
	// ErrTypeDNS indicates a DNS resolution failure
	ErrTypeDNS
	// ErrTypeUnknown indicates an unknown or unexpected error
	ErrTypeUnknown
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeNetwork:
		return "Network Error"
	case ErrTypeHTTP:
		return "HTTP Error"
	case ErrTypeNotFound:
		return "Not Found"
	case ErrTypeParse:
		return "Parse Error"
	case ErrTypeValidation:
		return "Validation Error"
	case ErrTypeTimeout:
		return "Timeout"
	case ErrTypeConnectionRefused:
		return "Connection Refused"
	case ErrTypeDNS:
		return "DNS Error"
	case ErrTypeUnknown:
		return "Unknown Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// APIError represents an error that occurred while talking to the catalog API
type APIError struct {
	Type       ErrorType // Category of error
	Message    string    // Human-readable message (the backend's detail when it sent one)
	StatusCode int       // HTTP status code (if applicable)
	Status     string    // HTTP status text, e.g. "Not Found" (if applicable)
	Err        error     // Underlying error (if any)
	Endpoint   string    // Request URL (for context)
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *APIError) Unwrap() error {
	return e.Err
}

// ClassifyNetworkError analyzes a transport error and returns a more specific error type
func ClassifyNetworkError(err error, endpoint string) *APIError {
	if err == nil {
		return nil
	}

	if os.IsTimeout(err) {
		return &APIError{
			Type:     ErrTypeTimeout,
			Message:  "request timed out",
			Err:      err,
			Endpoint: endpoint,
		}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &APIError{
			Type:     ErrTypeDNS,
			Message:  fmt.Sprintf("DNS resolution failed for %s", dnsErr.Name),
			Err:      err,
			Endpoint: endpoint,
		}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && errors.Is(opErr.Err, syscall.ECONNREFUSED) {
		return &APIError{
			Type:     ErrTypeConnectionRefused,
			Message:  "catalog API refused connection",
			Err:      err,
			Endpoint: endpoint,
		}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != err {
		return ClassifyNetworkError(urlErr.Err, endpoint)
	}

	return &APIError{
		Type:     ErrTypeNetwork,
		Message:  "network error occurred",
		Err:      err,
		Endpoint: endpoint,
	}
}

// NewNetworkError creates a network-level error with automatic classification
func NewNetworkError(message string, endpoint string, err error) *APIError {
	classified := ClassifyNetworkError(err, endpoint)
	if classified != nil {
		classified.Message = message
		return classified
	}
	return &APIError{
		Type:     ErrTypeNetwork,
		Message:  message,
		Err:      err,
		Endpoint: endpoint,
	}
}

// NewHTTPError creates an HTTP-level error. A 404 is reported as ErrTypeNotFound.
func NewHTTPError(statusCode int, status string, message string) *APIError {
	errType := ErrTypeHTTP
	if statusCode == http.StatusNotFound {
		errType = ErrTypeNotFound
	}
	return &APIError{
		Type:       errType,
		Message:    message,
		StatusCode: statusCode,
		Status:     status,
	}
}

// NewParseError creates a parsing error
func NewParseError(message string, err error) *APIError {
	return &APIError{
		Type:    ErrTypeParse,
		Message: message,
		Err:     err,
	}
}

// NewValidationError creates a validation error
func NewValidationError(message string) *APIError {
	return &APIError{
		Type:    ErrTypeValidation,
		Message: message,
	}
}

func asAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsNetworkError checks if an error is a network error (including timeout, connection refused, DNS)
func IsNetworkError(err error) bool {
	if apiErr, ok := asAPIError(err); ok {
		return apiErr.Type == ErrTypeNetwork ||
			apiErr.Type == ErrTypeTimeout ||
			apiErr.Type == ErrTypeConnectionRefused ||
			apiErr.Type == ErrTypeDNS
	}
	return false
}

// IsHTTPError checks if an error is an HTTP error (any non-success status)
func IsHTTPError(err error) bool {
	if apiErr, ok := asAPIError(err); ok {
		return apiErr.Type == ErrTypeHTTP || apiErr.Type == ErrTypeNotFound
	}
	return false
}

// IsNotFound checks if an error reports a missing product
func IsNotFound(err error) bool {
	if apiErr, ok := asAPIError(err); ok {
		return apiErr.Type == ErrTypeNotFound
	}
	return false
}

// IsParseError checks if an error is a parse error
func IsParseError(err error) bool {
	if apiErr, ok := asAPIError(err); ok {
		return apiErr.Type == ErrTypeParse
	}
	return false
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	if apiErr, ok := asAPIError(err); ok {
		return apiErr.Type == ErrTypeValidation
	}
	return false
}

// ShortMessage returns the concise message shown in the error banner.
// HTTP and validation errors carry the backend's or validator's own text.
func ShortMessage(err error) string {
	if err == nil {
		return ""
	}
	apiErr, ok := asAPIError(err)
	if !ok {
		return err.Error()
	}

	switch apiErr.Type {
	case ErrTypeTimeout:
		return "catalog API not responding (timeout)"
	case ErrTypeConnectionRefused:
		return "catalog API refused connection - is the backend running?"
	case ErrTypeDNS:
		return "cannot resolve catalog API hostname"
	case ErrTypeNetwork:
		return "network error - check connection to the catalog API"
	case ErrTypeParse:
		return "failed to parse catalog API response"
	default:
		return apiErr.Message
	}
}

// TroubleshootingHint returns user-friendly troubleshooting advice for an error
func TroubleshootingHint(err error) []string {
	apiErr, ok := asAPIError(err)
	if !ok {
		return []string{"An unexpected error occurred. Please try again."}
	}

	switch apiErr.Type {
	case ErrTypeTimeout:
		return []string{
			"The catalog API did not respond in time",
			"Check that the backend is not overloaded",
			"Try increasing --timeout",
		}
	case ErrTypeConnectionRefused:
		return []string{
			"Ensure the catalog backend is running",
			"Verify the API URL and port (default " + DefaultBaseURL + ")",
			"Use 'catalog-admin scan' to look for APIs on the local network",
		}
	case ErrTypeDNS:
		return []string{
			"Use an IP address instead of a hostname",
			"Check your network DNS settings",
		}
	case ErrTypeNetwork:
		return []string{
			"Check your network connection",
			"Verify the API URL with 'catalog-admin config show'",
		}
	case ErrTypeNotFound:
		return []string{
			"The product may have been deleted by another operator",
			"Run 'catalog-admin list' to see current product ids",
		}
	case ErrTypeHTTP:
		if apiErr.StatusCode >= 500 {
			return []string{
				fmt.Sprintf("The catalog API failed internally (HTTP %d)", apiErr.StatusCode),
				"Check the backend logs",
			}
		}
		return []string{"The catalog API rejected the request. Check the values you sent."}
	case ErrTypeParse:
		return []string{
			"The API answered with an unexpected body",
			"Verify the API URL points at the products resource",
		}
	case ErrTypeValidation:
		return []string{"Name and SKU are required and price must be greater than zero."}
	default:
		return []string{"Check the error message for details."}
	}
}

// statusText extracts the reason phrase from a response status line ("404 Not Found" -> "Not Found")
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, fmt.Sprintf("%d", resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}
