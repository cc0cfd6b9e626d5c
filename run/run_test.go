package run

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/agentos-go/internal/testutil"
	"github.com/hupe1980/agentos-go/transport"
)

func TestService_Create(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.Respond(http.MethodPost, "/workspaces/ws1/runs", 200, Run{
		ID:          "r1",
		WorkspaceID: "ws1",
		AgentID:     "discovery_synthesizer",
		Status:      StatusCreated,
	})

	svc := NewService(backend.Client())
	r, err := svc.Create(context.Background(), "ws1", CreateInput{
		AgentID:      "discovery_synthesizer",
		InputPayload: map[string]any{"goal": "summarize interviews"},
	})
	assert.NoError(t, err)
	assert.Equal(t, StatusCreated, r.Status)

	var sent CreateInput
	backend.LastRequest(http.MethodPost, "/workspaces/ws1/runs").JSON(t, &sent)
	assert.Equal(t, "discovery_synthesizer", sent.AgentID)
	assert.Equal(t, "summarize interviews", sent.InputPayload["goal"])
}

func TestService_CreateUnknownAgent(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.Respond(http.MethodPost, "/workspaces/ws1/runs", 400, `{"detail":"Invalid agent_id"}`)

	svc := NewService(backend.Client())
	_, err := svc.Create(context.Background(), "ws1", CreateInput{AgentID: "nope"})
	assert.Equal(t, 400, transport.StatusOf(err))
}

func TestService_UpdateStatus(t *testing.T) {
	backend := testutil.NewBackend(t)
	summary := "3 artifacts generated"
	backend.Respond(http.MethodPost, "/runs/r1/status", 200, Run{
		ID:            "r1",
		Status:        StatusCompleted,
		OutputSummary: &summary,
	})

	svc := NewService(backend.Client())
	r, err := svc.UpdateStatus(context.Background(), "r1", StatusUpdate{
		Status:        StatusCompleted,
		OutputSummary: &summary,
	})
	assert.NoError(t, err)
	assert.Equal(t, StatusCompleted, r.Status)
	if assert.NotNil(t, r.OutputSummary) {
		assert.Equal(t, summary, *r.OutputSummary)
	}
}

func TestService_ListAndGet(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.Respond(http.MethodGet, "/workspaces/ws1/runs", 200, []Run{{ID: "r2"}, {ID: "r1"}})
	backend.Respond(http.MethodGet, "/runs/r1", 200, Run{ID: "r1", Status: StatusRunning})

	svc := NewService(backend.Client())

	runs, err := svc.List(context.Background(), "ws1")
	assert.NoError(t, err)
	assert.Len(t, runs, 2)

	r, err := svc.Get(context.Background(), "r1")
	assert.NoError(t, err)
	assert.Equal(t, StatusRunning, r.Status)
}
