package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"oficina-desk/internal/metrics"

	"github.com/google/uuid"
)

// HeaderSource supplies the per-request session headers. The session
// manager implements it; the client never reads session storage directly.
type HeaderSource interface {
	SessionHeaders() map[string]string
}

// Client is the single adapter through which every backend request goes.
// It owns the base URL, the static API key header, session header
// stamping, error classification, and the global 401/403 interception.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	headers HeaderSource

	onAuthFailure func()
	authFired     atomic.Bool
}

func New(baseURL, apiKey string, timeout time.Duration, headers HeaderSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
		headers: headers,
	}
}

// OnAuthFailure registers the hook run when any request is rejected with
// 401 or 403. The hook fires at most once per session epoch, no matter
// how many concurrent requests fail together.
func (c *Client) OnAuthFailure(fn func()) {
	c.onAuthFailure = fn
}

// ResetAuthGate re-arms the auth-failure hook. Called after a successful
// login starts a new session epoch.
func (c *Client) ResetAuthGate() {
	c.authFired.Store(false)
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, query url.Values) error {
	return c.do(ctx, http.MethodDelete, path, query, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &APIError{Kind: KindDecode, Err: err}
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return &APIError{Kind: KindTransport, Err: err}
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}
	if c.headers != nil {
		for k, v := range c.headers.SessionHeaders() {
			req.Header.Set(k, v)
		}
	}

	resource := resourceLabel(path)
	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.APIRequestDuration.WithLabelValues(method, resource).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.APIRequestsTotal.WithLabelValues(method, resource, "transport").Inc()
		log.Printf("[API] %s %s failed (request %s): %v", method, path, requestID, err)
		return &APIError{Kind: KindTransport, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.APIRequestsTotal.WithLabelValues(method, resource, "transport").Inc()
		log.Printf("[API] %s %s body read failed (request %s): %v", method, path, requestID, err)
		return &APIError{Kind: KindTransport, Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		metrics.APIRequestsTotal.WithLabelValues(method, resource, "ok").Inc()
		if out == nil {
			return nil
		}
		if err := json.Unmarshal(data, out); err != nil {
			log.Printf("[API] %s %s decode failed (request %s): %v", method, path, requestID, err)
			return &APIError{Kind: KindDecode, Status: resp.StatusCode, Err: err}
		}
		return nil
	}

	apiErr := c.classify(resp.StatusCode, data)
	metrics.APIRequestsTotal.WithLabelValues(method, resource, apiErr.Kind.String()).Inc()
	log.Printf("[API] %s %s rejected with %d (request %s): %s", method, path, resp.StatusCode, requestID, apiErr.Detail)

	if apiErr.Kind == KindAuth && c.onAuthFailure != nil {
		// Fire the global handler once even when several in-flight
		// requests see 401 in the same tick.
		if c.authFired.CompareAndSwap(false, true) {
			c.onAuthFailure()
		}
	}

	return apiErr
}

func (c *Client) classify(status int, body []byte) *APIError {
	detail := extractDetail(body)
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &APIError{Kind: KindAuth, Status: status, Detail: detail}
	case status == http.StatusNotFound:
		return &APIError{Kind: KindNotFound, Status: status, Detail: detail}
	case status >= 400 && status < 500:
		return &APIError{Kind: KindValidation, Status: status, Detail: detail}
	default:
		return &APIError{Kind: KindServer, Status: status, Detail: detail}
	}
}

// extractDetail pulls the server's {"detail": "..."} message when present.
func extractDetail(body []byte) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Detail
}

// resourceLabel reduces a request path to a low-cardinality metrics label:
// the first path segment after /api/, or the first segment otherwise.
func resourceLabel(path string) string {
	trimmed := strings.TrimPrefix(path, "/api/")
	trimmed = strings.TrimPrefix(trimmed, "/")
	if i := strings.IndexByte(trimmed, '/'); i > 0 {
		trimmed = trimmed[:i]
	}
	if trimmed == "" {
		return "root"
	}
	return trimmed
}
