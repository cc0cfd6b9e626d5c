// Package transport implements the authenticated HTTP client every service
// package is built on. It wraps each request to the Agent OS backend with
// cookie-carried session credentials, converts every outcome into a typed
// *Error (transport failure, authentication failure, application failure)
// and transparently renews an expired session: on a 401 it joins the single
// shared refresh operation, retries the original request exactly once on
// success, and invokes the caller-supplied OnUnauthenticated hook when the
// session cannot be recovered.
//
// Concurrency: any number of callers may observe a 401 at the same time;
// exactly one POST to the refresh endpoint is issued and all callers wait
// for its shared outcome. The refresh slot is released as soon as that call
// settles, so a later 401 starts a fresh cycle instead of reusing a stale
// result.
package transport
