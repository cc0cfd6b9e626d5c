package artifact

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
	backend.Respond(http.MethodPost, "/runs/r1/artifacts", 200, Artifact{
		ID:         "a1",
		RunID:      "r1",
		Type:       "prd",
		Title:      "Checkout PRD",
		LogicalKey: "prd:checkout",
		Version:    1,
		Status:     StatusDraft,
	})

	svc := NewService(backend.Client())
	a, err := svc.Create(context.Background(), "r1", CreateInput{
		Type:       "prd",
		Title:      "Checkout PRD",
		ContentMD:  "# Checkout\n\nScope...",
		LogicalKey: "prd:checkout",
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, a.Version)
	assert.Equal(t, StatusDraft, a.Status)

	var sent CreateInput
	backend.LastRequest(http.MethodPost, "/runs/r1/artifacts").JSON(t, &sent)
	assert.Equal(t, "prd:checkout", sent.LogicalKey)
	assert.Equal(t, "# Checkout\n\nScope...", sent.ContentMD)
}

func TestService_ListAndGet(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.Respond(http.MethodGet, "/runs/r1/artifacts", 200, []Artifact{
		{ID: "a2", Version: 2},
		{ID: "a1", Version: 1},
	})
	backend.Respond(http.MethodGet, "/artifacts/a2", 200, Artifact{ID: "a2", Version: 2})

	svc := NewService(backend.Client())

	all, err := svc.List(context.Background(), "r1")
	assert.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, 2, all[0].Version)

	a, err := svc.Get(context.Background(), "a2")
	assert.NoError(t, err)
	assert.Equal(t, "a2", a.ID)
}

func TestService_UpdateSendsOnlySetFields(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.Respond(http.MethodPut, "/artifacts/a1", 200, Artifact{ID: "a1", Status: StatusInReview})

	svc := NewService(backend.Client())
	status := StatusInReview
	a, err := svc.Update(context.Background(), "a1", UpdateInput{Status: &status})
	assert.NoError(t, err)
	assert.Equal(t, StatusInReview, a.Status)

	var sent map[string]any
	backend.LastRequest(http.MethodPut, "/artifacts/a1").JSON(t, &sent)
	assert.Equal(t, map[string]any{"status": "in_review"}, sent)
}

func TestService_SetStatus(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.Respond(http.MethodPut, "/artifacts/a1", 200, Artifact{ID: "a1", Status: StatusFinal})

	svc := NewService(backend.Client())
	a, err := svc.SetStatus(context.Background(), "a1", StatusFinal)
	assert.NoError(t, err)
	assert.Equal(t, StatusFinal, a.Status)
}

func TestService_NewVersion(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.Respond(http.MethodPost, "/artifacts/a1/versions", 200, Artifact{
		ID:         "a2",
		LogicalKey: "prd:checkout",
		Version:    2,
		Status:     StatusDraft,
	})

	svc := NewService(backend.Client())
	a, err := svc.NewVersion(context.Background(), "a1", VersionInput{
		ContentMD: "# Checkout v2",
		Status:    StatusDraft,
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, a.Version)

	var sent map[string]any
	backend.LastRequest(http.MethodPost, "/artifacts/a1/versions").JSON(t, &sent)
	assert.NotContains(t, sent, "title")
	assert.Equal(t, "# Checkout v2", sent["content_md"])
}

func TestService_ExportPDF(t *testing.T) {
	backend := testutil.NewBackend(t)
	pdf := []byte("%PDF-1.4 fake")
	backend.RespondRaw(http.MethodGet, "/artifacts/a1/export/pdf", 200,
		"application/pdf", `attachment; filename="prd-checkout-v1.pdf"`, pdf)

	svc := NewService(backend.Client())
	exp, err := svc.ExportPDF(context.Background(), "a1")
	assert.NoError(t, err)
	assert.Equal(t, pdf, exp.Body)
	assert.Equal(t, "application/pdf", exp.ContentType)
	assert.Equal(t, "prd-checkout-v1.pdf", exp.Filename)
}

func TestService_GetHiddenReturnsNotFound(t *testing.T) {
	backend := testutil.NewBackend(t)

	svc := NewService(backend.Client())
	_, err := svc.Get(context.Background(), "someone-elses")
	assert.True(t, transport.IsNotFound(err))
}
