package session

import (
	"net/http"
	"net/url"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Interface compliance (compile-time assertion)
var _ http.CookieJar = (*Jar)(nil)

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse %s: %v", raw, err)
	}
	return u
}

func cookieNames(cookies []*http.Cookie) []string {
	names := make([]string, 0, len(cookies))
	for _, c := range cookies {
		names = append(names, c.Name)
	}
	return names
}

func TestJar_PathScoping(t *testing.T) {
	j := NewJar()
	api := mustURL(t, "http://api.local/auth/login")
	j.SetCookies(api, []*http.Cookie{
		{Name: "access", Value: "a", Path: "/"},
		{Name: "refresh", Value: "r", Path: "/auth/refresh"},
	})

	// The refresh cookie is sent only to the refresh endpoint.
	assert.ElementsMatch(t, []string{"access"}, cookieNames(j.Cookies(mustURL(t, "http://api.local/workspaces"))))
	assert.ElementsMatch(t, []string{"access", "refresh"}, cookieNames(j.Cookies(mustURL(t, "http://api.local/auth/refresh"))))

	// Path prefix must end on a segment boundary.
	assert.ElementsMatch(t, []string{"access"}, cookieNames(j.Cookies(mustURL(t, "http://api.local/auth/refreshx"))))
}

func TestJar_HostScoping(t *testing.T) {
	j := NewJar()
	j.SetCookies(mustURL(t, "http://api.local/"), []*http.Cookie{{Name: "access", Value: "a"}})

	assert.Empty(t, j.Cookies(mustURL(t, "http://other.local/")))
}

func TestJar_ExpiryAndDeletion(t *testing.T) {
	j := NewJar()
	u := mustURL(t, "http://api.local/")

	j.SetCookies(u, []*http.Cookie{{Name: "gone", Value: "x", Expires: time.Now().Add(-time.Hour)}})
	assert.Empty(t, j.Cookies(u))

	j.SetCookies(u, []*http.Cookie{{Name: "access", Value: "a", MaxAge: 3600}})
	assert.Len(t, j.Cookies(u), 1)

	// MaxAge < 0 deletes, the way the backend clears cookies on logout.
	j.SetCookies(u, []*http.Cookie{{Name: "access", Value: "", MaxAge: -1}})
	assert.Empty(t, j.Cookies(u))
}

func TestJar_OverwriteKeepsLatestValue(t *testing.T) {
	j := NewJar()
	u := mustURL(t, "http://api.local/")

	j.SetCookies(u, []*http.Cookie{{Name: "access", Value: "old"}})
	j.SetCookies(u, []*http.Cookie{{Name: "access", Value: "new"}})

	cookies := j.Cookies(u)
	if assert.Len(t, cookies, 1) {
		assert.Equal(t, "new", cookies[0].Value)
	}
}

func TestJar_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agentos", "session.json")
	u := mustURL(t, "http://api.local/")

	j := NewJar()
	j.SetCookies(u, []*http.Cookie{
		{Name: "access", Value: "a", MaxAge: 3600},
		{Name: "refresh", Value: "r", Path: "/auth/refresh", MaxAge: 86400},
	})
	assert.NoError(t, j.Save(path))

	loaded, err := Load(path)
	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{"access", "refresh"},
		cookieNames(loaded.Cookies(mustURL(t, "http://api.local/auth/refresh"))))
}

func TestLoad_MissingFileIsEmptyJar(t *testing.T) {
	j, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.NoError(t, err)
	assert.Empty(t, j.Cookies(mustURL(t, "http://api.local/")))
}

func TestJar_Clear(t *testing.T) {
	j := NewJar()
	u := mustURL(t, "http://api.local/")
	j.SetCookies(u, []*http.Cookie{{Name: "access", Value: "a"}})
	j.Clear()
	assert.Empty(t, j.Cookies(u))
}
