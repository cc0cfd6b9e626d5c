// Package artifact covers the versioned markdown documents a run produces
// and their review workflow.
//
// Artifacts are grouped by a logical key within their run; every revision
// is a new immutable row and the backend assigns version numbers
// (max existing version for the key, plus one). Status moves through
// draft, in_review and final; publishing is a status update, not a
// separate operation. Export endpoints return rendered binary documents
// rather than JSON.
package artifact
