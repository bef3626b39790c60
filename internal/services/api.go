// API service for making raw HTTP requests to the Sports Hub API
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/sportshub/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "http://127.0.0.1:5000"
	maxBodyBytes   = 1 << 20
	requestIDKey   = "X-Request-ID"
)

// APIService provides methods for making raw JSON requests to the Sports Hub API.
//
// Every call ends in one of three outcomes: a 2xx [APIResponse], a non-2xx [APIResponse]
// (see [APIResponse.Err]), or a [shared.TransportError] when no response was obtained.
type APIService struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *log.Logger
}

// APIOption configures an [APIService].
type APIOption func(*APIService)

// WithRateLimit caps outgoing requests per second. Zero disables the limit.
func WithRateLimit(rps float64) APIOption {
	return func(a *APIService) {
		if rps > 0 {
			a.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *log.Logger) APIOption {
	return func(a *APIService) { a.logger = l }
}

// NewAPIService creates a new API service instance for the Sports Hub API.
func NewAPIService(baseURL string, client *http.Client, opts ...APIOption) *APIService {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	a := &APIService{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: client,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = log.New(io.Discard)
	}
	return a
}

// NewAPIServiceFromConfig builds an [APIService] from the [api] config section.
func NewAPIServiceFromConfig(cfg shared.APIConfig, logger *log.Logger) *APIService {
	client := &http.Client{Timeout: cfg.Timeout}
	return NewAPIService(cfg.BaseURL, client, WithRateLimit(cfg.RequestsPerSecond), WithLogger(logger))
}

// BaseURL returns the configured base URL without a trailing slash.
func (a *APIService) BaseURL() string { return a.baseURL }

// APIResponse represents a raw API response with status and body.
type APIResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	IsJSON     bool
	JSONData   any
}

// OK reports whether the status code is 2xx.
func (r *APIResponse) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Decode unmarshals the body into v.
func (r *APIResponse) Decode(v any) error {
	if len(bytes.TrimSpace(r.Body)) == 0 {
		return fmt.Errorf("empty response body (status %d)", r.StatusCode)
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Err converts a non-2xx response into a [shared.ServerError].
//
// The message is the body's "error" or "message" field, or fallback when neither is present.
// Returns nil for 2xx responses.
func (r *APIResponse) Err(fallback string) error {
	if r.OK() {
		return nil
	}
	msg := fallback
	if m, ok := r.JSONData.(map[string]any); ok {
		for _, key := range []string{"error", "message"} {
			if s, ok := m[key].(string); ok && strings.TrimSpace(s) != "" {
				msg = s
				break
			}
		}
	}
	if msg == "" {
		msg = http.StatusText(r.StatusCode)
	}
	return &shared.ServerError{StatusCode: r.StatusCode, Message: msg}
}

// Do sends a JSON request to path. The bearer header is attached when token is non-empty and
// body, when non-nil, is encoded as JSON.
func (a *APIService) Do(ctx context.Context, method, path, token string, body any) (*APIResponse, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}).SetAuthHeader(req)
	}
	requestID := shared.GenerateID()
	req.Header.Set(requestIDKey, requestID)

	if a.limiter != nil {
		if err := a.limiter.Wait(ctx); err != nil {
			return nil, &shared.TransportError{Err: err}
		}
	}

	a.logger.Debug("api request", "method", method, "path", path, "request_id", requestID, "auth", token != "")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, &shared.TransportError{Err: fmt.Errorf("request failed: %w", err)}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &shared.TransportError{Err: fmt.Errorf("failed to read response: %w", err)}
	}

	apiResp := &APIResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       data,
	}

	var jsonData any
	if err := json.Unmarshal(data, &jsonData); err == nil {
		apiResp.IsJSON = true
		apiResp.JSONData = jsonData
	}

	a.logger.Debug("api response", "method", method, "path", path, "request_id", requestID, "status", resp.StatusCode)
	return apiResp, nil
}

// Get performs a GET request to the specified path and returns the raw response.
func (a *APIService) Get(ctx context.Context, path, token string) (*APIResponse, error) {
	return a.Do(ctx, http.MethodGet, path, token, nil)
}

// Post performs a POST request with body encoded as JSON.
func (a *APIService) Post(ctx context.Context, path, token string, body any) (*APIResponse, error) {
	return a.Do(ctx, http.MethodPost, path, token, body)
}

// Put performs a PUT request with body encoded as JSON.
func (a *APIService) Put(ctx context.Context, path, token string, body any) (*APIResponse, error) {
	return a.Do(ctx, http.MethodPut, path, token, body)
}

// Delete performs a DELETE request to the specified path.
func (a *APIService) Delete(ctx context.Context, path, token string) (*APIResponse, error) {
	return a.Do(ctx, http.MethodDelete, path, token, nil)
}

// call performs a request and decodes a 2xx body into out when out is non-nil.
// Non-2xx responses become a [shared.ServerError] carrying fallback when the body has no message.
func (a *APIService) call(ctx context.Context, method, path, token string, body, out any, fallback string) error {
	resp, err := a.Do(ctx, method, path, token, body)
	if err != nil {
		return err
	}
	if err := resp.Err(fallback); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return resp.Decode(out)
}
