package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hupe1980/agentos-go/logging"
)

// DefaultRefreshPath is the backend's session renewal endpoint.
const DefaultRefreshPath = "/auth/refresh"

// defaultTimeout bounds each HTTP attempt. The refresh guard has no
// timeout of its own; a hung refresh is bounded by this value only.
const defaultTimeout = 30 * time.Second

// exemptPaths are never part of the refresh-and-retry cycle and never
// trigger the OnUnauthenticated hook: a 401 from login or register means
// bad credentials, not an expired session. The refresh endpoint itself is
// exempted separately so it can never recurse.
var exemptPaths = map[string]struct{}{
	"/auth/login":    {},
	"/auth/register": {},
}

// Options configures a Client.
type Options struct {
	// HTTPClient performs the actual requests. When nil, a client with a
	// fresh in-memory cookie jar and a default timeout is created.
	HTTPClient *http.Client

	// Jar overrides the cookie jar of the default HTTP client. Ignored
	// when HTTPClient is set. Supply a persistable jar (see the session
	// package) to keep credentials across process restarts.
	Jar http.CookieJar

	// Timeout for the default HTTP client. Zero means defaultTimeout.
	Timeout time.Duration

	// RefreshPath is the session renewal endpoint. Empty disables the
	// refresh-and-retry cycle entirely; a 401 then fails immediately.
	RefreshPath string

	// OnUnauthenticated runs after a request terminally fails with 401
	// (refresh failed or unavailable). It replaces the browser client's
	// hardcoded login redirect: a CLI prints a hint, a long-lived process
	// drops its session. Fire-and-forget; the failed request still
	// returns its error.
	OnUnauthenticated func()

	// Logger receives request, refresh and retry events. Defaults to NoOp.
	Logger logging.Logger

	// UserAgent is sent with every request when non-empty.
	UserAgent string
}

// Client is the authenticated API client. All service packages share one
// instance so they share its cookie session and refresh guard. Safe for
// concurrent use.
type Client struct {
	base        *url.URL
	http        *http.Client
	refreshPath string
	onUnauth    func()
	logger      logging.Logger
	userAgent   string
	refresh     refreshGuard
}

// New creates a Client for the backend at baseURL.
func New(baseURL string, optFns ...func(o *Options)) (*Client, error) {
	opts := Options{
		RefreshPath: DefaultRefreshPath,
		Timeout:     defaultTimeout,
		Logger:      logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base URL %q: %w", baseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base URL %q must be absolute", baseURL)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		jar := opts.Jar
		if jar == nil {
			jar, err = cookiejar.New(nil)
			if err != nil {
				return nil, fmt.Errorf("create cookie jar: %w", err)
			}
		}
		httpClient = &http.Client{Jar: jar, Timeout: opts.Timeout}
	}

	return &Client{
		base:        base,
		http:        httpClient,
		refreshPath: opts.RefreshPath,
		onUnauth:    opts.OnUnauthenticated,
		logger:      opts.Logger,
		userAgent:   opts.UserAgent,
	}, nil
}

// RequestOption customizes a single request.
type RequestOption func(r *requestConfig)

type requestConfig struct {
	header http.Header
	query  url.Values
}

// WithHeader sets (or overrides) a request header.
func WithHeader(key, value string) RequestOption {
	return func(r *requestConfig) {
		if r.header == nil {
			r.header = http.Header{}
		}
		r.header.Set(key, value)
	}
}

// WithQuery attaches URL query parameters to the request.
func WithQuery(q url.Values) RequestOption {
	return func(r *requestConfig) { r.query = q }
}

// Get issues a GET request and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, out any, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodGet, path, nil, out, opts...)
}

// Post issues a POST request with in as the JSON body.
func (c *Client) Post(ctx context.Context, path string, in, out any, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodPost, path, in, out, opts...)
}

// Put issues a PUT request with in as the JSON body.
func (c *Client) Put(ctx context.Context, path string, in, out any, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodPut, path, in, out, opts...)
}

// Patch issues a PATCH request with in as the JSON body.
func (c *Client) Patch(ctx context.Context, path string, in, out any, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodPatch, path, in, out, opts...)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, out any, opts ...RequestOption) error {
	return c.Do(ctx, http.MethodDelete, path, nil, out, opts...)
}

// Do performs an authenticated request against the backend.
//
// in, when non-nil, is marshaled once and sent as a JSON body (the byte
// form is reused verbatim if the request is retried after a refresh).
// On a 2xx response whose content type declares JSON the body is decoded
// into out; a 2xx response with any other content type leaves out
// untouched — some endpoints return no body. Every failure is an *Error;
// Do never panics and wraps nothing else except JSON encode/decode
// defects, which indicate a client bug rather than an API outcome.
func (c *Client) Do(ctx context.Context, method, path string, in, out any, opts ...RequestOption) error {
	var payload []byte
	if in != nil {
		var err error
		payload, err = json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
	}

	resp, body, err := c.roundTrip(ctx, method, path, payload, opts)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil || !isJSON(resp.Header.Get("Content-Type")) || len(body) == 0 {
			return nil
		}
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("decode response body: %w", err)
		}
		return nil
	}

	return c.fail(path, resp.StatusCode, body)
}

// Raw is the result of a DoRaw call, for endpoints that return binary
// bodies (artifact exports) instead of JSON.
type Raw struct {
	Body        []byte
	ContentType string

	// Disposition is the Content-Disposition header, which carries the
	// suggested filename on export endpoints.
	Disposition string
}

// DoRaw performs the same credentialed request cycle as Do — including
// refresh-and-retry on 401 — but returns the raw response body.
func (c *Client) DoRaw(ctx context.Context, method, path string, opts ...RequestOption) (*Raw, error) {
	resp, body, err := c.roundTrip(ctx, method, path, nil, opts)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return &Raw{
			Body:        body,
			ContentType: resp.Header.Get("Content-Type"),
			Disposition: resp.Header.Get("Content-Disposition"),
		}, nil
	}
	return nil, c.fail(path, resp.StatusCode, body)
}

// roundTrip sends the request, driving the refresh-and-retry cycle on 401.
// It returns the terminal response with its fully read body, or an *Error
// for transport-level failures.
func (c *Client) roundTrip(ctx context.Context, method, path string, payload []byte, opts []RequestOption) (*http.Response, []byte, error) {
	cfg := requestConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	requestID := uuid.NewString()

	start := time.Now()
	resp, body, err := c.send(ctx, method, path, payload, &cfg, requestID)
	if err != nil {
		c.logger.Warn("request failed", "method", method, "path", path, "error", err)
		return nil, nil, transportError(err)
	}

	if resp.StatusCode == http.StatusUnauthorized && c.refreshPath != "" && !c.exempt(path) {
		if c.refreshSession(ctx) {
			c.logger.Debug("retrying after session refresh", "method", method, "path", path)
			resp, body, err = c.send(ctx, method, path, payload, &cfg, requestID)
			if err != nil {
				return nil, nil, transportError(err)
			}
		}
	}

	c.logger.Debug("request completed",
		"method", method, "path", path,
		"status", resp.StatusCode, "duration", time.Since(start))
	return resp, body, nil
}

// send performs a single HTTP attempt and reads the full body.
func (c *Client) send(ctx context.Context, method, path string, payload []byte, cfg *requestConfig, requestID string) (*http.Response, []byte, error) {
	u := c.resolve(path)
	if cfg.query != nil {
		u.RawQuery = cfg.query.Encode()
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	for key, values := range cfg.header {
		req.Header.Del(key)
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, err
	}
	return resp, body, nil
}

// fail converts a terminal non-2xx response into an *Error, firing the
// OnUnauthenticated hook for unrecovered 401s outside the auth endpoints.
func (c *Client) fail(path string, status int, body []byte) *Error {
	if status == http.StatusUnauthorized && !c.exempt(path) && c.onUnauth != nil {
		c.onUnauth()
	}
	message := strings.TrimSpace(string(body))
	if message == "" {
		message = fmt.Sprintf("HTTP %d", status)
	}
	return &Error{Status: status, Message: message}
}

func (c *Client) exempt(path string) bool {
	if path == c.refreshPath || path == DefaultRefreshPath {
		return true
	}
	_, ok := exemptPaths[path]
	return ok
}

// resolve joins a relative resource path onto the configured base address.
func (c *Client) resolve(path string) *url.URL {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(path, "/")
	return &u
}

// transportError maps a round-trip failure to the status-0 taxonomy.
func transportError(err error) *Error {
	message := err.Error()
	if message == "" {
		message = "network error"
	}
	return &Error{Status: 0, Message: message}
}

func isJSON(contentType string) bool {
	mediaType := strings.TrimSpace(strings.Split(contentType, ";")[0])
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}
