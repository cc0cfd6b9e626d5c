// Package workspace covers tenant containers and their membership. Every
// run, pipeline and retrieval resource nests under a workspace; access is
// role-based with viewer < member < admin (the owner is always admin).
package workspace

import (
	"context"
	"fmt"
	"net/url"

	"github.com/hupe1980/agentos-go/transport"
)

// Roles in ascending order of privilege.
const (
	RoleViewer = "viewer"
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// Workspace is a tenant-scoped container for runs, pipelines and members.
type Workspace struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	OwnerUserID string `json:"owner_user_id"`
}

// Member is a user's membership in a workspace.
type Member struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// Role reports the calling user's role in one workspace.
type Role struct {
	WorkspaceID string `json:"workspace_id"`
	Role        string `json:"role"`
}

// Service calls the workspace endpoints.
type Service struct {
	client *transport.Client
}

// NewService creates a workspace service on the shared transport client.
func NewService(client *transport.Client) *Service {
	return &Service{client: client}
}

// Create makes a new workspace owned by the calling user.
func (s *Service) Create(ctx context.Context, name string) (*Workspace, error) {
	var ws Workspace
	in := struct {
		Name string `json:"name"`
	}{Name: name}
	if err := s.client.Post(ctx, "/workspaces", in, &ws); err != nil {
		return nil, err
	}
	return &ws, nil
}

// List returns the calling user's workspaces, newest first.
func (s *Service) List(ctx context.Context) ([]Workspace, error) {
	var out []Workspace
	if err := s.client.Get(ctx, "/workspaces", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns a single workspace. Workspaces the user cannot access read
// as 404, not 403 — the backend hides their existence.
func (s *Service) Get(ctx context.Context, workspaceID string) (*Workspace, error) {
	var ws Workspace
	if err := s.client.Get(ctx, "/workspaces/"+url.PathEscape(workspaceID), &ws); err != nil {
		return nil, err
	}
	return &ws, nil
}

// InviteMember adds a user (by email) to the workspace with the given
// role. Admin only.
func (s *Service) InviteMember(ctx context.Context, workspaceID, email, role string) (*Member, error) {
	var member Member
	in := struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	}{Email: email, Role: role}
	path := fmt.Sprintf("/workspaces/%s/members", url.PathEscape(workspaceID))
	if err := s.client.Post(ctx, path, in, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

// ListMembers returns the workspace's members.
func (s *Service) ListMembers(ctx context.Context, workspaceID string) ([]Member, error) {
	var out []Member
	path := fmt.Sprintf("/workspaces/%s/members", url.PathEscape(workspaceID))
	if err := s.client.Get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MyRole returns the calling user's role in the workspace.
func (s *Service) MyRole(ctx context.Context, workspaceID string) (*Role, error) {
	var role Role
	path := fmt.Sprintf("/workspaces/%s/members/me", url.PathEscape(workspaceID))
	if err := s.client.Get(ctx, path, &role); err != nil {
		return nil, err
	}
	return &role, nil
}
