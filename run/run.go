// Package run covers single agent invocations: creating a run against an
// agent definition, listing a workspace's runs, and recording status
// transitions as the backend executes it.
package run

import (
	"context"
	"fmt"
	"net/url"

	"github.com/hupe1980/agentos-go/transport"
)

// Run statuses as reported by the backend.
const (
	StatusCreated   = "created"
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Run is one execution of an agent against an input payload.
type Run struct {
	ID              string         `json:"id"`
	WorkspaceID     string         `json:"workspace_id"`
	AgentID         string         `json:"agent_id"`
	CreatedByUserID string         `json:"created_by_user_id"`
	Status          string         `json:"status"`
	InputPayload    map[string]any `json:"input_payload"`
	OutputSummary   *string        `json:"output_summary"`
}

// CreateInput is the request body for creating a run.
type CreateInput struct {
	AgentID      string         `json:"agent_id"`
	InputPayload map[string]any `json:"input_payload"`
}

// StatusUpdate records a run status transition, optionally with a short
// output summary.
type StatusUpdate struct {
	Status        string  `json:"status"`
	OutputSummary *string `json:"output_summary,omitempty"`
}

// Service calls the run endpoints.
type Service struct {
	client *transport.Client
}

// NewService creates a run service on the shared transport client.
func NewService(client *transport.Client) *Service {
	return &Service{client: client}
}

// Create starts a run of the given agent in the workspace. The backend
// rejects unknown agent ids with a 400.
func (s *Service) Create(ctx context.Context, workspaceID string, in CreateInput) (*Run, error) {
	var r Run
	path := fmt.Sprintf("/workspaces/%s/runs", url.PathEscape(workspaceID))
	if err := s.client.Post(ctx, path, in, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// List returns the workspace's runs, newest first.
func (s *Service) List(ctx context.Context, workspaceID string) ([]Run, error) {
	var out []Run
	path := fmt.Sprintf("/workspaces/%s/runs", url.PathEscape(workspaceID))
	if err := s.client.Get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns a single run by id.
func (s *Service) Get(ctx context.Context, runID string) (*Run, error) {
	var r Run
	if err := s.client.Get(ctx, "/runs/"+url.PathEscape(runID), &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// UpdateStatus transitions the run's status and returns the updated run.
func (s *Service) UpdateStatus(ctx context.Context, runID string, in StatusUpdate) (*Run, error) {
	var r Run
	path := fmt.Sprintf("/runs/%s/status", url.PathEscape(runID))
	if err := s.client.Post(ctx, path, in, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
