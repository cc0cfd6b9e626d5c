// Package agentdef reads the catalog of agent definitions a run can be
// created against. The catalog is global (seeded server-side), read-only
// from the client, and each definition carries the JSON schema its input
// payload must satisfy.
package agentdef

import (
	"context"
	"net/url"

	"github.com/hupe1980/agentos-go/transport"
)

// Definition describes one agent: what it generates and what input it
// expects.
type Definition struct {
	ID                  string         `json:"id"`
	Name                string         `json:"name"`
	Description         string         `json:"description"`
	Version             string         `json:"version"`
	InputSchema         map[string]any `json:"input_schema"`
	OutputArtifactTypes []string       `json:"output_artifact_types"`
	DefaultArtifactType string         `json:"default_artifact_type"`
}

// Service calls the /agents catalog endpoints.
type Service struct {
	client *transport.Client
}

// NewService creates an agent catalog service on the shared transport client.
func NewService(client *transport.Client) *Service {
	return &Service{client: client}
}

// List returns every agent definition, ordered by id.
func (s *Service) List(ctx context.Context) ([]Definition, error) {
	var out []Definition
	if err := s.client.Get(ctx, "/agents", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns a single agent definition.
func (s *Service) Get(ctx context.Context, agentID string) (*Definition, error) {
	var def Definition
	if err := s.client.Get(ctx, "/agents/"+url.PathEscape(agentID), &def); err != nil {
		return nil, err
	}
	return &def, nil
}
