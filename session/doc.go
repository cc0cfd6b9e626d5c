// Package session holds the client side of the backend's cookie session:
// a serializable http.CookieJar. The backend authenticates with two
// HttpOnly cookies (a short-lived access token and a rotating refresh
// token scoped to the refresh endpoint); a browser keeps those between
// visits, so a CLI or daemon needs an equivalent — a jar that survives
// process restarts.
//
// The Jar persists to a single JSON file. Load it before constructing the
// transport client, pass it via Options.Jar, and Save it after the last
// request (typically deferred in the CLI entry point).
package session
