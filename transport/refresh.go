package transport

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"golang.org/x/sync/singleflight"
)

// refreshGuard deduplicates session renewal. It holds at most one
// in-flight refresh; callers arriving while one is running join it and
// observe the same outcome. singleflight forgets the key the moment the
// call settles, which is exactly the required slot lifecycle: a later 401
// (the renewed session expired too) starts a fresh refresh rather than
// reusing a stale result.
type refreshGuard struct {
	group singleflight.Group
}

// refreshSession triggers (or joins) the shared refresh operation and
// reports whether the session was renewed.
func (c *Client) refreshSession(ctx context.Context) bool {
	v, _, shared := c.refresh.group.Do("session", func() (any, error) {
		return c.doRefresh(ctx), nil
	})
	ok := v.(bool)
	if ok {
		c.logger.Debug("session refreshed", "shared", shared)
	} else {
		c.logger.Warn("session refresh failed")
	}
	return ok
}

// doRefresh posts an empty JSON object to the refresh endpoint with
// credentials included. The session is renewed only on a 2xx; any
// transport failure or non-2xx counts as a failed refresh. This path
// deliberately bypasses roundTrip so it can neither recurse into another
// refresh nor fire the OnUnauthenticated hook.
func (c *Client) doRefresh(ctx context.Context) bool {
	u := c.resolve(c.refreshPath)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader([]byte("{}")))
	if err != nil {
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	// Drain so the connection is reusable; the body contract is status-only.
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
