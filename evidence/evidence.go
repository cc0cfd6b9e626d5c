// Package evidence attaches supporting material to runs. Evidence records
// are small typed snippets (quotes, links, retrieval hits) that ground an
// artifact's claims. They can be added by hand or collected automatically
// from the workspace's retrieval index.
package evidence

import (
	"context"
	"fmt"
	"net/url"

	"github.com/hupe1980/agentos-go/transport"
)

// Evidence is one supporting record attached to a run.
//
// Automatically collected evidence has kind "snippet" and source name
// "retrieval"; its SourceRef points at the originating document and chunk
// ("doc:<id>#chunk:<id>") and its Meta carries the retrieval rank and
// hybrid score.
type Evidence struct {
	ID         string         `json:"id"`
	RunID      string         `json:"run_id"`
	Kind       string         `json:"kind"`
	SourceName string         `json:"source_name"`
	SourceRef  *string        `json:"source_ref"`
	Excerpt    string         `json:"excerpt"`
	Meta       map[string]any `json:"metadata"`
}

// AddInput is the request body for manually attaching evidence.
type AddInput struct {
	Kind       string         `json:"kind"`
	SourceName string         `json:"source_name,omitempty"`
	SourceRef  *string        `json:"source_ref,omitempty"`
	Excerpt    string         `json:"excerpt"`
	Meta       map[string]any `json:"meta,omitempty"`
}

// AutoInput drives automatic evidence collection. The query runs a hybrid
// search over the workspace index; each hit becomes an evidence record.
type AutoInput struct {
	// Query is the search text, between 2 and 500 characters.
	Query string `json:"query"`
	// K caps the number of hits, 1 to 20. Zero means the server default.
	K int `json:"k,omitempty"`
	// Alpha weights vector similarity against full-text rank, 0 to 1.
	// Zero means the server default.
	Alpha float64 `json:"alpha,omitempty"`
}

// Service calls the evidence endpoints.
type Service struct {
	client *transport.Client
}

// NewService creates an evidence service on the shared transport client.
func NewService(client *transport.Client) *Service {
	return &Service{client: client}
}

// Add attaches an evidence record to the run. Requires member role.
func (s *Service) Add(ctx context.Context, runID string, in AddInput) (*Evidence, error) {
	var ev Evidence
	if err := s.client.Post(ctx, s.path(runID), in, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}

// List returns the run's evidence, newest first.
func (s *Service) List(ctx context.Context, runID string) ([]Evidence, error) {
	var out []Evidence
	if err := s.client.Get(ctx, s.path(runID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Auto searches the workspace index and attaches the hits as evidence.
// Returns the created records in rank order; an empty slice means the
// search found nothing.
func (s *Service) Auto(ctx context.Context, runID string, in AutoInput) ([]Evidence, error) {
	var out []Evidence
	if err := s.client.Post(ctx, s.path(runID)+"/auto", in, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) path(runID string) string {
	return fmt.Sprintf("/runs/%s/evidence", url.PathEscape(runID))
}
