// Package apiclient is the single choke point for calls to the
// marketplace backend.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"admin-console/internal/model"
	"admin-console/internal/session"
	"admin-console/pkg/apierror"
)

const apiPrefix = "/api/v1"

// ResolveBaseURL picks the backend base once at startup. A stored override
// wins; otherwise local console addresses route to the local backend.
func ResolveBaseURL(override string, consoleURL string, localBase string, prodBase string) string {
	if override = strings.TrimSpace(override); override != "" {
		override = strings.TrimSuffix(override, "/")
		override = strings.TrimSuffix(override, apiPrefix)
		return override + apiPrefix
	}

	parsed, err := url.Parse(strings.TrimSpace(consoleURL))
	if err != nil {
		return prodBase
	}

	switch {
	case parsed.Scheme == "file":
		return localBase
	case parsed.Hostname() == "localhost", parsed.Hostname() == "127.0.0.1", parsed.Hostname() == "":
		return localBase
	default:
		return prodBase
	}
}

type RequestOptions struct {
	Method  string
	Body    any
	Headers map[string]string
}

type PingResult struct {
	OK     bool
	Status int
	Data   json.RawMessage
	Error  string
}

type Client struct {
	baseURL string
	http    *http.Client
	session *session.Store

	mu             sync.RWMutex
	onUnauthorized func(context.Context)
}

func New(baseURL string, sessions *session.Store, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    httpClient,
		session: sessions,
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// OnUnauthorized registers the navigation hook fired after a 401 has
// cleared the session.
func (c *Client) OnUnauthorized(fn func(context.Context)) {
	c.mu.Lock()
	c.onUnauthorized = fn
	c.mu.Unlock()
}

// Request performs an authenticated call and returns the JSON body of a
// 2xx response. Non-JSON bodies read as {}.
func (c *Client) Request(ctx context.Context, path string, opts RequestOptions) (json.RawMessage, error) {
	token, ok := c.session.Token(ctx)
	if !ok {
		return nil, apierror.Unauthenticated()
	}

	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	headers := map[string]string{
		"Content-Type":  "application/json",
		"Authorization": "Bearer " + token,
	}
	for key, value := range opts.Headers {
		headers[key] = value
	}

	status, data, err := c.do(ctx, method, path, opts.Body, headers)
	if err != nil {
		return nil, err
	}

	if status == http.StatusUnauthorized {
		c.expire(ctx)
		return nil, apierror.Unauthorized()
	}

	if status < 200 || status > 299 {
		return nil, apierror.RequestFailed(detailMessage(data), status)
	}

	return data, nil
}

// Ping checks backend reachability without credentials.
func (c *Client) Ping(ctx context.Context) PingResult {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/ping", nil)
	if err != nil {
		return PingResult{Error: err.Error()}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		slog.Warn("backend unreachable", "base_url", c.baseURL, "error", err)
		return PingResult{Error: err.Error()}
	}
	defer resp.Body.Close()

	result := PingResult{OK: resp.StatusCode >= 200 && resp.StatusCode <= 299, Status: resp.StatusCode, Data: json.RawMessage("{}")}
	if result.OK {
		raw, _ := io.ReadAll(resp.Body)
		if json.Valid(raw) {
			result.Data = raw
		}
	}

	slog.Info("backend ping", "base_url", c.baseURL, "ok", result.OK, "status", result.Status)
	return result
}

// Login exchanges credentials for a token. It does not touch the session;
// callers store the result.
func (c *Client) Login(ctx context.Context, email string, password string) (model.LoginResponse, error) {
	body, err := json.Marshal(model.LoginRequest{Email: email, Password: password})
	if err != nil {
		return model.LoginResponse{}, fmt.Errorf("encode login: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/admin/auth/login", bytes.NewReader(body))
	if err != nil {
		return model.LoginResponse{}, fmt.Errorf("build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return model.LoginResponse{}, apierror.NetworkUnreachable(c.baseURL, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.LoginResponse{}, apierror.NetworkUnreachable(c.baseURL, err)
	}

	if !isJSON(resp.Header.Get("Content-Type")) {
		if resp.StatusCode >= 500 {
			msg := fmt.Sprintf("Backend unreachable (e.g. %d). Is the API running at %s?", resp.StatusCode, c.baseURL)
			return model.LoginResponse{}, apierror.RequestFailed(msg, resp.StatusCode)
		}
		msg := strings.TrimSpace(string(raw))
		if msg == "" {
			msg = "Server returned non-JSON. Check API URL."
		}
		return model.LoginResponse{}, apierror.RequestFailed(msg, resp.StatusCode)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := detailMessage(raw)
		if msg == "" {
			msg = "Login failed"
		}
		return model.LoginResponse{}, apierror.RequestFailed(msg, resp.StatusCode)
	}

	var out model.LoginResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return model.LoginResponse{}, fmt.Errorf("decode login response: %w", err)
	}
	if out.AccessToken == "" {
		return model.LoginResponse{}, apierror.RequestFailed("Login failed", resp.StatusCode)
	}

	return out, nil
}

func (c *Client) do(ctx context.Context, method string, path string, body any, headers map[string]string) (int, json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		slog.Debug("backend request failed", "method", method, "path", path, "error", err)
		return 0, nil, apierror.NetworkUnreachable(c.baseURL, err)
	}
	defer resp.Body.Close()

	slog.Debug("backend request", "method", method, "path", path, "status", resp.StatusCode)

	data := json.RawMessage("{}")
	if isJSON(resp.Header.Get("Content-Type")) {
		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return 0, nil, apierror.NetworkUnreachable(c.baseURL, err)
		}
		if len(bytes.TrimSpace(raw)) > 0 {
			data = raw
		}
	} else {
		_, _ = io.Copy(io.Discard, resp.Body)
	}

	return resp.StatusCode, data, nil
}

func (c *Client) expire(ctx context.Context) {
	if err := c.session.Clear(ctx); err != nil {
		slog.Error("failed to clear session after 401", "error", err)
	}

	c.mu.RLock()
	hook := c.onUnauthorized
	c.mu.RUnlock()

	if hook != nil {
		hook(ctx)
	}
}

func isJSON(contentType string) bool {
	return strings.Contains(strings.ToLower(contentType), "application/json")
}

// detailMessage extracts the backend's detail field, which is either a
// string or a list of validation entries carrying msg.
func detailMessage(data json.RawMessage) string {
	var body model.ErrorBody
	if err := json.Unmarshal(data, &body); err != nil || len(body.Detail) == 0 {
		return ""
	}

	var text string
	if err := json.Unmarshal(body.Detail, &text); err == nil {
		return strings.TrimSpace(text)
	}

	var entries []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(body.Detail, &entries); err == nil {
		msgs := make([]string, 0, len(entries))
		for _, entry := range entries {
			if entry.Msg != "" {
				msgs = append(msgs, entry.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}

	return ""
}
