package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

const (
	// DefaultBaseURL is the orchestrator's default listen address
	DefaultBaseURL = "http://127.0.0.1:5002"

	// AuthHeader carries the session token on authenticated requests
	AuthHeader = "X-Auth-Token"

	defaultTimeout = 30 * time.Second
)

// Client talks to the browser-profile orchestrator. It owns the session
// token: the token is absent until a successful Login, attached to every
// request afterwards, and never set by a failed login. Token access is
// mutex-guarded so the client stays correct if callers move to goroutines.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

// NewClient creates a client for the orchestrator at baseURL. An empty
// baseURL selects the local default.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// NewClientWithTimeout creates a client with an explicit request timeout
func NewClientWithTimeout(baseURL string, timeout time.Duration) *Client {
	c := NewClient(baseURL)
	if timeout > 0 {
		c.http.Timeout = timeout
	}
	return c
}

// BaseURL returns the configured orchestrator address
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Token returns the current session token, empty if not logged in
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// HasToken reports whether a login has succeeded on this client
func (c *Client) HasToken() bool {
	return c.Token() != ""
}

// ClearToken drops the session token (logout / session end)
func (c *Client) ClearToken() {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
}

// okEnvelope is implemented by every response type via the embedded envelope
type okEnvelope interface {
	env() *envelope
}

func (e *envelope) env() *envelope { return e }

// newRequest builds a request with the JSON content type and, when a token
// is held, the auth header. Requests issued before login carry no token.
func (c *Client) newRequest(ctx context.Context, method, path string, body []byte) (*http.Request, error) {
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	if token := c.Token(); token != "" {
		req.Header.Set(AuthHeader, token)
	}

	return req, nil
}

// get performs a query call. Non-2xx statuses are transport failures;
// an ok=false envelope is an application rejection.
func (c *Client) get(ctx context.Context, path string, out okEnvelope, fallback string) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &TransportError{Status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}

	env := out.env()
	if !env.OK {
		return rejected(env.Error, fallback)
	}
	return nil
}

// post performs a command call. The ok flag in the body is authoritative;
// the status code is ignored so rejections delivered with 4xx/5xx statuses
// still surface the server's message.
func (c *Client) post(ctx context.Context, path string, body interface{}, out okEnvelope, fallback string) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", path, err)
		}
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, payload)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}

	env := out.env()
	if !env.OK {
		return rejected(env.Error, fallback)
	}
	return nil
}

// command is a post with no payload beyond the envelope
func (c *Client) command(ctx context.Context, path string, body interface{}, fallback string) error {
	var resp envelope
	return c.post(ctx, path, body, &resp, fallback)
}

// Login authenticates with the orchestrator. On success the returned token
// is stored and attached to every subsequent call. On failure no token is
// stored: repeated failed attempts leave the client unauthenticated.
func (c *Client) Login(ctx context.Context, password string) error {
	var resp loginResponse
	if err := c.post(ctx, "/auth/login", loginRequest{Password: password}, &resp, "Login failed"); err != nil {
		return err
	}
	if resp.Token == "" {
		return &RejectedError{Message: "Login failed"}
	}

	c.mu.Lock()
	c.token = resp.Token
	c.mu.Unlock()
	return nil
}

// Profiles fetches the full managed profile set
func (c *Client) Profiles(ctx context.Context) ([]Profile, error) {
	var resp profilesResponse
	if err := c.get(ctx, "/profiles", &resp, "Failed to list profiles"); err != nil {
		return nil, err
	}
	return resp.Profiles, nil
}

// Launch asks the orchestrator to open one profile
func (c *Client) Launch(ctx context.Context, profile, email string) error {
	return c.command(ctx, "/launch", launchRequest{Profile: profile, Email: email}, "Launch failed")
}

// LaunchAll asks the orchestrator to open every managed profile
func (c *Client) LaunchAll(ctx context.Context) error {
	return c.command(ctx, "/launch_all", nil, "Launch all failed")
}

// StartRefresh starts the server's rotating refresh worker
func (c *Client) StartRefresh(ctx context.Context) error {
	return c.command(ctx, "/start_refresh", nil, "Start refresh failed")
}

// StopRefresh stops the server's rotating refresh worker
func (c *Client) StopRefresh(ctx context.Context) error {
	return c.command(ctx, "/stop_refresh", nil, "Stop refresh failed")
}

// SafeRefresh runs a single refresh cycle over the next rotation group
func (c *Client) SafeRefresh(ctx context.Context) error {
	return c.command(ctx, "/safe_refresh", nil, "Safe refresh failed")
}

// AddProxies assigns proxies to profiles, keyed by profile name
func (c *Client) AddProxies(ctx context.Context, proxies map[string]string) error {
	return c.command(ctx, "/add_proxies", addProxiesRequest{Proxies: proxies}, "Add proxies failed")
}

// ChangePassword sets a new panel password on the server
func (c *Client) ChangePassword(ctx context.Context, newPassword string) error {
	return c.command(ctx, "/change_password", changePasswordRequest{NewPassword: newPassword}, "Change password failed")
}

// Logs fetches the orchestrator activity log in server (chronological) order
func (c *Client) Logs(ctx context.Context) ([]string, error) {
	var resp logsResponse
	if err := c.get(ctx, "/logs", &resp, "Failed to fetch logs"); err != nil {
		return nil, err
	}
	return resp.Logs, nil
}

// CloseAll closes every open browser profile
func (c *Client) CloseAll(ctx context.Context) error {
	return c.command(ctx, "/close_all", nil, "Close all failed")
}

// Summary fetches the dashboard aggregate. A nil summary with ok=true is
// possible and treated as "nothing to show" by the caller.
func (c *Client) Summary(ctx context.Context) (*Summary, error) {
	var resp summaryResponse
	if err := c.get(ctx, "/dashboard/summary", &resp, "Failed to fetch summary"); err != nil {
		return nil, err
	}
	return resp.Summary, nil
}

// Quarantine lists profiles currently excluded from automated refresh
func (c *Client) Quarantine(ctx context.Context) ([]QuarantineEntry, error) {
	var resp quarantineResponse
	if err := c.get(ctx, "/quarantine/list", &resp, "Failed to list quarantine"); err != nil {
		return nil, err
	}
	return resp.Quarantined, nil
}

// ResetQuarantine clears quarantine and backoff state for one profile
func (c *Client) ResetQuarantine(ctx context.Context, profile string) error {
	return c.command(ctx, "/quarantine/reset", resetQuarantineRequest{Profile: profile}, "Reset quarantine failed")
}

// Ping probes the orchestrator root endpoint without authentication. The
// root serves the panel page rather than JSON, so only reachability and
// status are checked.
func (c *Client) Ping(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodGet, "/", nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request /: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &TransportError{Status: resp.StatusCode}
	}
	return nil
}
