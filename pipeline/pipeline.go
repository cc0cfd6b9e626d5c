// Package pipeline chains agent runs into multi-step workflows. A template
// declares the step sequence (one agent per step); starting it produces a
// pipeline run whose steps advance one at a time, each step creating a
// regular agent run in the workspace.
package pipeline

import (
	"context"
	"fmt"
	"net/url"

	"github.com/hupe1980/agentos-go/transport"
)

// Pipeline run and step statuses.
const (
	StatusCreated   = "created"
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Template is a reusable step-sequence definition. DefinitionJSON holds a
// "steps" list of {agent_id, name} objects.
type Template struct {
	ID             string         `json:"id"`
	WorkspaceID    string         `json:"workspace_id"`
	Name           string         `json:"name"`
	Description    string         `json:"description"`
	DefinitionJSON map[string]any `json:"definition_json"`
}

// TemplateInput is the request body for creating a template.
type TemplateInput struct {
	Name           string         `json:"name"`
	Description    string         `json:"description,omitempty"`
	DefinitionJSON map[string]any `json:"definition_json"`
}

// Step is one slot in a pipeline run. RunID is set once the step has
// executed and links to the agent run it created.
type Step struct {
	ID            string         `json:"id"`
	PipelineRunID string         `json:"pipeline_run_id"`
	StepIndex     int            `json:"step_index"`
	StepName      string         `json:"step_name"`
	AgentID       string         `json:"agent_id"`
	Status        string         `json:"status"`
	InputPayload  map[string]any `json:"input_payload"`
	RunID         *string        `json:"run_id"`

	// PrevContextAttached reports whether the previous step's output was
	// carried into this step's run input.
	PrevContextAttached *bool `json:"prev_context_attached,omitempty"`

	// Latest artifact snapshot for the step's run, when one exists.
	AutoRegenerated       *bool   `json:"auto_regenerated,omitempty"`
	LatestArtifactID      *string `json:"latest_artifact_id,omitempty"`
	LatestArtifactVersion *int    `json:"latest_artifact_version,omitempty"`
	LatestArtifactType    *string `json:"latest_artifact_type,omitempty"`
	LatestArtifactTitle   *string `json:"latest_artifact_title,omitempty"`
}

// Run is one execution of a template. CurrentStepIndex points at the next
// step to execute; once it passes the last step the run is completed.
type Run struct {
	ID               string         `json:"id"`
	WorkspaceID      string         `json:"workspace_id"`
	TemplateID       string         `json:"template_id"`
	CreatedByUserID  string         `json:"created_by_user_id"`
	Status           string         `json:"status"`
	CurrentStepIndex int            `json:"current_step_index"`
	InputPayload     map[string]any `json:"input_payload"`
	Steps            []Step         `json:"steps"`
}

// StartInput is the request body for starting a pipeline run.
type StartInput struct {
	TemplateID   string         `json:"template_id"`
	InputPayload map[string]any `json:"input_payload,omitempty"`
}

// NextResult reports one step advance. CreatedRunID is nil when the
// advance executed no step, for example when the run was already complete.
type NextResult struct {
	OK           bool    `json:"ok"`
	PipelineRun  Run     `json:"pipeline_run"`
	CreatedRunID *string `json:"created_run_id"`
}

// ExecuteAllResult reports a run-to-completion advance with the agent runs
// it created, in step order.
type ExecuteAllResult struct {
	OK            bool     `json:"ok"`
	PipelineRun   Run      `json:"pipeline_run"`
	CreatedRunIDs []string `json:"created_run_ids"`
}

// Service calls the pipeline endpoints.
type Service struct {
	client *transport.Client
}

// NewService creates a pipeline service on the shared transport client.
func NewService(client *transport.Client) *Service {
	return &Service{client: client}
}

// CreateTemplate adds a template to the workspace. The backend rejects
// definitions without a non-empty steps list when a run is started.
func (s *Service) CreateTemplate(ctx context.Context, workspaceID string, in TemplateInput) (*Template, error) {
	var t Template
	path := fmt.Sprintf("/workspaces/%s/pipelines/templates", url.PathEscape(workspaceID))
	if err := s.client.Post(ctx, path, in, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// ListTemplates returns the workspace's templates, newest first.
func (s *Service) ListTemplates(ctx context.Context, workspaceID string) ([]Template, error) {
	var out []Template
	path := fmt.Sprintf("/workspaces/%s/pipelines/templates", url.PathEscape(workspaceID))
	if err := s.client.Get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Start instantiates a template as a new pipeline run with its step rows
// created and the run moved to running.
func (s *Service) Start(ctx context.Context, workspaceID string, in StartInput) (*Run, error) {
	var r Run
	path := fmt.Sprintf("/workspaces/%s/pipelines/runs", url.PathEscape(workspaceID))
	if err := s.client.Post(ctx, path, in, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Get returns a pipeline run with its steps in index order.
func (s *Service) Get(ctx context.Context, pipelineRunID string) (*Run, error) {
	var r Run
	if err := s.client.Get(ctx, "/pipelines/runs/"+url.PathEscape(pipelineRunID), &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Next advances the run by one step, creating an agent run for it.
func (s *Service) Next(ctx context.Context, pipelineRunID string) (*NextResult, error) {
	var res NextResult
	path := fmt.Sprintf("/pipelines/runs/%s/next", url.PathEscape(pipelineRunID))
	if err := s.client.Post(ctx, path, struct{}{}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ExecuteAll advances the run until every step has executed.
func (s *Service) ExecuteAll(ctx context.Context, pipelineRunID string) (*ExecuteAllResult, error) {
	var res ExecuteAllResult
	path := fmt.Sprintf("/pipelines/runs/%s/execute-all", url.PathEscape(pipelineRunID))
	if err := s.client.Post(ctx, path, struct{}{}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
