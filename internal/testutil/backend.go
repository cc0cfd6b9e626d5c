package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/hupe1980/agentos-go/transport"
)

// Backend is a scripted fake of the Agent OS REST API.
type Backend struct {
	t   *testing.T
	srv *httptest.Server

	mu       sync.Mutex
	routes   map[string]response
	requests []Request
}

type response struct {
	status      int
	contentType string
	disposition string
	body        []byte
}

// Request is one recorded call to the fake backend.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   []byte
}

// JSON decodes the recorded request body into out.
func (r Request) JSON(t *testing.T, out any) {
	t.Helper()
	if err := json.Unmarshal(r.Body, out); err != nil {
		t.Fatalf("decode recorded body %q: %v", r.Body, err)
	}
}

// NewBackend starts the fake backend; it shuts down with the test.
func NewBackend(t *testing.T) *Backend {
	t.Helper()
	b := &Backend{t: t, routes: make(map[string]response)}
	b.srv = httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(b.srv.Close)
	return b
}

// URL returns the fake backend's base URL.
func (b *Backend) URL() string { return b.srv.URL }

// Client returns a transport client pointed at the fake backend.
func (b *Backend) Client(optFns ...func(o *transport.Options)) *transport.Client {
	b.t.Helper()
	c, err := transport.New(b.srv.URL, optFns...)
	if err != nil {
		b.t.Fatalf("new transport client: %v", err)
	}
	return c
}

// Respond registers a canned JSON response for method+path. payload may be
// a struct, map, or raw string of JSON.
func (b *Backend) Respond(method, path string, status int, payload any) {
	b.t.Helper()
	var body []byte
	switch p := payload.(type) {
	case nil:
	case string:
		body = []byte(p)
	default:
		var err error
		body, err = json.Marshal(p)
		if err != nil {
			b.t.Fatalf("marshal canned response for %s %s: %v", method, path, err)
		}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.routes[method+" "+path] = response{status: status, contentType: "application/json", body: body}
}

// RespondRaw registers a canned non-JSON response, e.g. a PDF export.
// disposition is sent as Content-Disposition when non-empty.
func (b *Backend) RespondRaw(method, path string, status int, contentType, disposition string, body []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.routes[method+" "+path] = response{status: status, contentType: contentType, disposition: disposition, body: body}
}

// Requests returns the recorded calls matching method+path, in order.
func (b *Backend) Requests(method, path string) []Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []Request
	for _, r := range b.requests {
		if r.Method == method && r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

// LastRequest returns the most recent call matching method+path, failing
// the test when none was recorded.
func (b *Backend) LastRequest(method, path string) Request {
	b.t.Helper()
	matches := b.Requests(method, path)
	if len(matches) == 0 {
		b.t.Fatalf("no recorded %s %s request", method, path)
	}
	return matches[len(matches)-1]
}

func (b *Backend) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	b.mu.Lock()
	b.requests = append(b.requests, Request{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.Query(),
		Body:   body,
	})
	resp, ok := b.routes[r.Method+" "+r.URL.Path]
	b.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Not found"}`))
		return
	}
	if resp.contentType != "" && len(resp.body) > 0 {
		w.Header().Set("Content-Type", resp.contentType)
	}
	if resp.disposition != "" {
		w.Header().Set("Content-Disposition", resp.disposition)
	}
	w.WriteHeader(resp.status)
	_, _ = w.Write(resp.body)
}
