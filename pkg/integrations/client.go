package integrations

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/nfalab/machina/pkg/errors"
	"github.com/nfalab/machina/pkg/observability"
)

const httpTimeout = 10 * time.Second

// maxErrorBody bounds how much of an error response is read for messages.
const maxErrorBody = 4 << 10

// Client provides shared HTTP functionality for service API clients.
// It handles JSON encoding, status mapping, and common request headers.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	http    *http.Client
	baseURL string
	headers map[string]string
}

// NewClient creates a Client for the service at baseURL.
// Pass nil for headers if no default headers are needed.
func NewClient(baseURL string, headers map[string]string) (*Client, error) {
	if err := apperrors.ValidateURL(baseURL); err != nil {
		return nil, err
	}
	return &Client{
		http:    NewHTTPClient(),
		baseURL: strings.TrimRight(baseURL, "/"),
		headers: headers,
	}, nil
}

// NewHTTPClient creates an HTTP client with the standard timeout for
// service requests.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

// BaseURL returns the configured service base URL without a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

// SetTimeout overrides the default per-request timeout.
// Non-positive values are ignored.
func (c *Client) SetTimeout(d time.Duration) {
	if d > 0 {
		c.http.Timeout = d
	}
}

// PostJSON sends body as JSON to path under the base URL and decodes the
// response into out. Pass nil for out to discard the response body.
//
// Requests are attempted exactly once. Callers that want fresher results
// resubmit; the client never retries on its own.
func (c *Client) PostJSON(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, err, "encode request for %s", path)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, err, "build request for %s", path)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	observability.HTTP().OnRequest(ctx, req.Method, req.URL.Host, req.URL.Path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		observability.HTTP().OnError(ctx, req.Method, req.URL.Host, req.URL.Path, err)
		code := apperrors.ErrCodeNetwork
		if isTimeout(err) {
			code = apperrors.ErrCodeTimeout
		}
		return apperrors.Wrap(code, err, "request %s", req.URL.Path)
	}
	defer resp.Body.Close()

	observability.HTTP().OnResponse(ctx, req.Method, req.URL.Host, req.URL.Path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "decode response from %s", req.URL.Path)
	}
	return nil
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// checkStatus maps HTTP status codes onto structured errors. 4xx responses
// carry the service's own message when one can be extracted from the body.
func checkStatus(resp *http.Response) error {
	code := resp.StatusCode
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return apperrors.New(apperrors.ErrCodeNotFound, "%s not found", resp.Request.URL.Path)
	case code >= 400 && code < 500:
		return apperrors.New(apperrors.ErrCodeInvalidInput, "service rejected request: %s", errorMessage(resp))
	default:
		return apperrors.New(apperrors.ErrCodeNetwork, "unexpected status %d from %s", code, resp.Request.URL.Path)
	}
}

// errorMessage extracts a human-readable message from an error response.
// It understands the {"error": "..."} and {"message": "..."} conventions
// and falls back to a trimmed body snippet.
func errorMessage(resp *http.Response) string {
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(data) == 0 {
		return resp.Status
	}

	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		if body.Error != "" {
			return body.Error
		}
		if body.Message != "" {
			return body.Message
		}
	}

	snippet := strings.TrimSpace(string(data))
	if snippet == "" {
		return resp.Status
	}
	return snippet
}
