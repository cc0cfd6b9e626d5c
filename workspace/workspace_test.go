package workspace

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/agentos-go/internal/testutil"
	"github.com/hupe1980/agentos-go/transport"
)

func TestService_CreateAndList(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.Respond(http.MethodPost, "/workspaces", 200, Workspace{ID: "ws1", Name: "Launch Q3", OwnerUserID: "u1"})
	backend.Respond(http.MethodGet, "/workspaces", 200, []Workspace{
		{ID: "ws2", Name: "Platform", OwnerUserID: "u1"},
		{ID: "ws1", Name: "Launch Q3", OwnerUserID: "u1"},
	})

	svc := NewService(backend.Client())

	ws, err := svc.Create(context.Background(), "Launch Q3")
	assert.NoError(t, err)
	assert.Equal(t, "ws1", ws.ID)

	var sent map[string]string
	backend.LastRequest(http.MethodPost, "/workspaces").JSON(t, &sent)
	assert.Equal(t, "Launch Q3", sent["name"])

	list, err := svc.List(context.Background())
	assert.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestService_GetHiddenWorkspaceIs404(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.Respond(http.MethodGet, "/workspaces/ws9", 404, `{"detail":"Workspace not found"}`)

	svc := NewService(backend.Client())
	_, err := svc.Get(context.Background(), "ws9")
	assert.True(t, transport.IsNotFound(err))
}

func TestService_Members(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.Respond(http.MethodPost, "/workspaces/ws1/members", 200, Member{UserID: "u2", Email: "dev@example.com", Role: RoleMember})
	backend.Respond(http.MethodGet, "/workspaces/ws1/members", 200, []Member{
		{UserID: "u1", Email: "pm@example.com", Role: RoleAdmin},
		{UserID: "u2", Email: "dev@example.com", Role: RoleMember},
	})
	backend.Respond(http.MethodGet, "/workspaces/ws1/members/me", 200, Role{WorkspaceID: "ws1", Role: RoleAdmin})

	svc := NewService(backend.Client())

	member, err := svc.InviteMember(context.Background(), "ws1", "dev@example.com", RoleMember)
	assert.NoError(t, err)
	assert.Equal(t, RoleMember, member.Role)

	members, err := svc.ListMembers(context.Background(), "ws1")
	assert.NoError(t, err)
	assert.Len(t, members, 2)

	role, err := svc.MyRole(context.Background(), "ws1")
	assert.NoError(t, err)
	assert.Equal(t, RoleAdmin, role.Role)
}
