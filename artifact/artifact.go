package artifact

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"net/url"

	"github.com/hupe1980/agentos-go/transport"
)

// Artifact statuses in workflow order.
const (
	StatusDraft    = "draft"
	StatusInReview = "in_review"
	StatusFinal    = "final"
)

// Artifact is one version of a markdown document produced by a run.
type Artifact struct {
	ID         string `json:"id"`
	RunID      string `json:"run_id"`
	Type       string `json:"type"`
	Title      string `json:"title"`
	ContentMD  string `json:"content_md"`
	LogicalKey string `json:"logical_key"`
	Version    int    `json:"version"`
	Status     string `json:"status"`
}

// CreateInput is the request body for creating an artifact. The backend
// assigns the version and starts the artifact in draft.
type CreateInput struct {
	Type       string `json:"type"`
	Title      string `json:"title"`
	ContentMD  string `json:"content_md"`
	LogicalKey string `json:"logical_key"`
}

// UpdateInput patches an artifact in place. Nil fields are left unchanged.
// In-place updates do not bump the version; use NewVersion for that.
type UpdateInput struct {
	Title     *string `json:"title,omitempty"`
	ContentMD *string `json:"content_md,omitempty"`
	Status    *string `json:"status,omitempty"`
}

// VersionInput creates a new version under the same logical key. A nil
// Title inherits the previous version's title.
type VersionInput struct {
	Title     *string `json:"title,omitempty"`
	ContentMD string  `json:"content_md"`
	Status    string  `json:"status"`
}

// Export is a rendered artifact document (PDF today).
type Export struct {
	// Body is the raw document bytes.
	Body []byte
	// ContentType is the document media type, e.g. "application/pdf".
	ContentType string
	// Filename is the backend's suggested filename, derived from the
	// logical key and version, or empty when none was offered.
	Filename string
}

// Service calls the artifact endpoints.
type Service struct {
	client *transport.Client
}

// NewService creates an artifact service on the shared transport client.
func NewService(client *transport.Client) *Service {
	return &Service{client: client}
}

// Create adds a new artifact to the run. If the logical key already has
// versions, the new artifact becomes the next version.
func (s *Service) Create(ctx context.Context, runID string, in CreateInput) (*Artifact, error) {
	var a Artifact
	path := fmt.Sprintf("/runs/%s/artifacts", url.PathEscape(runID))
	if err := s.client.Post(ctx, path, in, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// List returns the run's artifacts (all logical keys, all versions),
// newest first.
func (s *Service) List(ctx context.Context, runID string) ([]Artifact, error) {
	var out []Artifact
	path := fmt.Sprintf("/runs/%s/artifacts", url.PathEscape(runID))
	if err := s.client.Get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns a single artifact version by id.
func (s *Service) Get(ctx context.Context, artifactID string) (*Artifact, error) {
	var a Artifact
	if err := s.client.Get(ctx, "/artifacts/"+url.PathEscape(artifactID), &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Update edits the artifact in place.
func (s *Service) Update(ctx context.Context, artifactID string, in UpdateInput) (*Artifact, error) {
	var a Artifact
	if err := s.client.Put(ctx, "/artifacts/"+url.PathEscape(artifactID), in, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// NewVersion snapshots new content as the next version under the
// artifact's logical key.
func (s *Service) NewVersion(ctx context.Context, artifactID string, in VersionInput) (*Artifact, error) {
	var a Artifact
	path := fmt.Sprintf("/artifacts/%s/versions", url.PathEscape(artifactID))
	if err := s.client.Post(ctx, path, in, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// SetStatus is a convenience wrapper around Update for workflow
// transitions (draft -> in_review -> final).
func (s *Service) SetStatus(ctx context.Context, artifactID, status string) (*Artifact, error) {
	return s.Update(ctx, artifactID, UpdateInput{Status: &status})
}

// ExportPDF downloads the artifact rendered as a PDF.
func (s *Service) ExportPDF(ctx context.Context, artifactID string) (*Export, error) {
	path := fmt.Sprintf("/artifacts/%s/export/pdf", url.PathEscape(artifactID))
	raw, err := s.client.DoRaw(ctx, http.MethodGet, path)
	if err != nil {
		return nil, err
	}
	return &Export{
		Body:        raw.Body,
		ContentType: raw.ContentType,
		Filename:    dispositionFilename(raw.Disposition),
	}, nil
}

// dispositionFilename extracts the filename parameter from a
// Content-Disposition header value.
func dispositionFilename(disposition string) string {
	if disposition == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(disposition)
	if err != nil {
		return ""
	}
	return params["filename"]
}
