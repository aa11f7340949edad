// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Endpoint paths and limits.
const (
	// DefaultBaseURL is where the backend listens in local development.
	DefaultBaseURL = "http://127.0.0.1:8000"

	AnalyzePath      = "/api/analyze_title"
	ChatPath         = "/api/chat"
	RebuildIndexPath = "/api/admin/rebuild_index"
	StatusPath       = "/"

	// MaxResponseSize caps how much of a response body is read.
	MaxResponseSize = 10 * 1024 * 1024 // 10MB

	// maxLoggedBody bounds the body snippet kept on a BackendError.
	maxLoggedBody = 512
)

// sharedHTTPClient pools connections across clients. It has no Timeout:
// requests are bounded by their context and by Client.timeout when set.
var sharedHTTPClient = &http.Client{
	Transport: &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 4,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
}

// Client talks to one StreamIntel360 backend. It is safe for concurrent use;
// the base URL and timeout may be changed while requests are in flight and
// apply to requests started afterwards.
type Client struct {
	mu         sync.RWMutex
	baseURL    string
	timeout    time.Duration
	userAgent  string
	httpClient *http.Client
}

// NewClient creates a client for baseURL. An empty baseURL selects
// DefaultBaseURL.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  "streamintel/dev",
		httpClient: sharedHTTPClient,
	}
}

// WithTimeout bounds every request. Zero leaves requests bounded only by the
// caller's context and the transport defaults.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.SetTimeout(timeout)
	return c
}

// WithHTTPClient replaces the underlying HTTP client (tests, proxies).
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.mu.Lock()
	c.httpClient = hc
	c.mu.Unlock()
	return c
}

// WithUserAgent sets the User-Agent header.
func (c *Client) WithUserAgent(ua string) *Client {
	c.mu.Lock()
	c.userAgent = ua
	c.mu.Unlock()
	return c
}

// SetBaseURL points the client at another backend.
func (c *Client) SetBaseURL(baseURL string) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c.mu.Lock()
	c.baseURL = strings.TrimRight(baseURL, "/")
	c.mu.Unlock()
}

// SetTimeout changes the per-request timeout.
func (c *Client) SetTimeout(timeout time.Duration) {
	if timeout < 0 {
		timeout = 0
	}
	c.mu.Lock()
	c.timeout = timeout
	c.mu.Unlock()
}

// BaseURL returns the backend base URL.
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

// Timeout returns the per-request timeout (zero means none).
func (c *Client) Timeout() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.timeout
}

// =============================================================================
// HIGH LEVEL OPERATIONS
// =============================================================================

// SubmitAnalysis asks the backend to analyze a title.
//
// regionsInput is free text separated by commas (see ParseRegions). On success
// the backend's answer is returned untouched. On any backend failure the
// returned answer is FallbackMessage and err matches ErrBackendUnavailable.
// If ctx is cancelled the answer is empty and err is the context error.
func (c *Client) SubmitAnalysis(ctx context.Context, titleName, description, regionsInput string) (string, error) {
	resp, err := c.Analyze(ctx, NewAnalyzeRequest(titleName, description, regionsInput))
	if err != nil {
		return c.fallback("analyze_title", err)
	}
	return resp.Answer, nil
}

// SubmitChatMessage sends one chat message with the texts of the earlier
// turns, oldest first. A message that is blank after trimming returns
// ErrEmptyMessage without touching the network. Failures behave as in
// SubmitAnalysis.
func (c *Client) SubmitChatMessage(ctx context.Context, message string, history []string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", ErrEmptyMessage
	}
	resp, err := c.Chat(ctx, NewChatRequest(message, history))
	if err != nil {
		return c.fallback("chat", err)
	}
	return resp.Answer, nil
}

// fallback logs err and maps it to what the caller should display.
func (c *Client) fallback(op string, err error) (string, error) {
	if errors.Is(err, context.Canceled) {
		log.Printf("API_CANCELLED | op=%s", op)
		return "", err
	}
	log.Printf("API_FAILURE | op=%s base_url=%s error=%v", op, c.BaseURL(), err)
	return FallbackMessage, err
}

// =============================================================================
// LOW LEVEL OPERATIONS
// =============================================================================

// Analyze posts req to /api/analyze_title.
func (c *Client) Analyze(ctx context.Context, req AnalyzeRequest) (*AnalyzeResponse, error) {
	var out AnalyzeResponse
	if err := c.do(ctx, "analyze_title", http.MethodPost, AnalyzePath, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Chat posts req to /api/chat. A nil History is sent as an empty list.
func (c *Client) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if req.History == nil {
		req.History = []string{}
	}
	var out ChatResponse
	if err := c.do(ctx, "chat", http.MethodPost, ChatPath, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RebuildIndex asks the backend to rebuild its retrieval index.
func (c *Client) RebuildIndex(ctx context.Context) (*AdminResponse, error) {
	var out AdminResponse
	if err := c.do(ctx, "rebuild_index", http.MethodPost, RebuildIndexPath, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Status fetches the backend root document.
func (c *Client) Status(ctx context.Context) (*StatusResponse, error) {
	var out StatusResponse
	if err := c.do(ctx, "status", http.MethodGet, StatusPath, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// do performs one request without retries and decodes a JSON body into out.
// Every failure except cancellation is returned as a *BackendError.
func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	c.mu.RLock()
	baseURL, timeout, ua, hc := c.baseURL, c.timeout, c.userAgent, c.httpClient
	c.mu.RUnlock()

	endpoint, err := url.JoinPath(baseURL, path)
	if err != nil {
		return &BackendError{Op: op, Err: fmt.Errorf("invalid backend url: %w", err)}
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return &BackendError{Op: op, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", ua)
	req.Header.Set("X-Request-Id", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logRequest(op, req, requestID)
	start := time.Now()
	resp, err := hc.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); errors.Is(ctxErr, context.Canceled) {
			return ctxErr
		}
		return &BackendError{Op: op, Err: fmt.Errorf("request failed: %w", err)}
	}
	defer resp.Body.Close()
	logResponse(op, resp, time.Since(start), requestID)

	data, err := readResponse(resp)
	if err != nil {
		if ctxErr := ctx.Err(); errors.Is(ctxErr, context.Canceled) {
			return ctxErr
		}
		return &BackendError{Op: op, StatusCode: statusIfError(resp), Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &BackendError{Op: op, StatusCode: resp.StatusCode, Body: snippet(data)}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return &BackendError{Op: op, Body: snippet(data), Err: fmt.Errorf("failed to parse response: %w", err)}
	}
	return nil
}

// readResponse reads at most MaxResponseSize bytes of the body.
func readResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if len(body) > MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}
	return body, nil
}

func statusIfError(resp *http.Response) int {
	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		return 0
	}
	return resp.StatusCode
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxLoggedBody {
		s = s[:maxLoggedBody] + "..."
	}
	return s
}

// logRequest records the outgoing call. Bodies are not logged: they carry
// user-entered text.
func logRequest(op string, req *http.Request, requestID string) {
	log.Printf("API_REQUEST | op=%s method=%s path=%s request_id=%s", op, req.Method, req.URL.Path, requestID)
}

func logResponse(op string, resp *http.Response, duration time.Duration, requestID string) {
	log.Printf("API_RESPONSE | op=%s status=%d duration=%v request_id=%s", op, resp.StatusCode, duration.Round(time.Millisecond), requestID)
}
