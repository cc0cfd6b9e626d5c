package session

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Jar is a serializable cookie jar. It implements http.CookieJar with the
// subset of cookie semantics the backend relies on: host-scoped storage,
// path scoping (the refresh cookie is restricted to the refresh endpoint),
// Max-Age/Expires expiry, and deletion via a negative Max-Age. Safe for
// concurrent use.
//
// Unlike a browser it persists "session" cookies (those without an expiry)
// too; the backend sets explicit lifetimes on both auth cookies, so this
// only matters for test servers.
type Jar struct {
	mu      sync.Mutex
	entries map[string]map[string]entry // host -> name;path -> entry
}

type entry struct {
	Name    string    `json:"name"`
	Value   string    `json:"value"`
	Path    string    `json:"path"`
	Expires time.Time `json:"expires,omitzero"`
}

func (e entry) expired(now time.Time) bool {
	return !e.Expires.IsZero() && !e.Expires.After(now)
}

// NewJar returns an empty jar.
func NewJar() *Jar {
	return &Jar{entries: make(map[string]map[string]entry)}
}

// SetCookies implements http.CookieJar.
func (j *Jar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.Lock()
	defer j.mu.Unlock()

	host := u.Hostname()
	byKey := j.entries[host]
	if byKey == nil {
		byKey = make(map[string]entry)
		j.entries[host] = byKey
	}

	now := time.Now()
	for _, c := range cookies {
		if c.Name == "" {
			continue
		}
		path := c.Path
		if path == "" {
			path = "/"
		}
		key := c.Name + ";" + path

		if c.MaxAge < 0 {
			delete(byKey, key)
			continue
		}

		e := entry{Name: c.Name, Value: c.Value, Path: path}
		switch {
		case c.MaxAge > 0:
			e.Expires = now.Add(time.Duration(c.MaxAge) * time.Second)
		case !c.Expires.IsZero():
			e.Expires = c.Expires
		}
		if e.expired(now) {
			delete(byKey, key)
			continue
		}
		byKey[key] = e
	}
}

// Cookies implements http.CookieJar.
func (j *Jar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.Lock()
	defer j.mu.Unlock()

	byKey := j.entries[u.Hostname()]
	if len(byKey) == 0 {
		return nil
	}

	reqPath := u.Path
	if reqPath == "" {
		reqPath = "/"
	}

	now := time.Now()
	var out []*http.Cookie
	for key, e := range byKey {
		if e.expired(now) {
			delete(byKey, key)
			continue
		}
		if !pathMatches(reqPath, e.Path) {
			continue
		}
		out = append(out, &http.Cookie{Name: e.Name, Value: e.Value})
	}
	return out
}

// pathMatches implements RFC 6265 path-match: the cookie path is a prefix
// of the request path ending at a path boundary.
func pathMatches(reqPath, cookiePath string) bool {
	if reqPath == cookiePath {
		return true
	}
	if !strings.HasPrefix(reqPath, cookiePath) {
		return false
	}
	return strings.HasSuffix(cookiePath, "/") || reqPath[len(cookiePath)] == '/'
}

// Clear removes every cookie, e.g. on logout.
func (j *Jar) Clear() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = make(map[string]map[string]entry)
}

// Save writes the jar to path as JSON, creating parent directories as
// needed. The file is written with 0600 permissions: it holds live
// credentials.
func (j *Jar) Save(path string) error {
	j.mu.Lock()
	data, err := json.MarshalIndent(j.entries, "", "  ")
	j.mu.Unlock()
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create session directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

// Load reads a jar previously written by Save. A missing file yields an
// empty jar, not an error — first run is not a failure.
func Load(path string) (*Jar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewJar(), nil
		}
		return nil, fmt.Errorf("read session file %s: %w", path, err)
	}

	j := NewJar()
	if err := json.Unmarshal(data, &j.entries); err != nil {
		return nil, fmt.Errorf("parse session file %s: %w", path, err)
	}
	if j.entries == nil {
		j.entries = make(map[string]map[string]entry)
	}
	return j, nil
}
