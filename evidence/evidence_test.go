package evidence

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/agentos-go/internal/testutil"
	"github.com/hupe1980/agentos-go/transport"
)

func TestService_Add(t *testing.T) {
	backend := testutil.NewBackend(t)
	ref := "https://example.com/interview-7"
	backend.Respond(http.MethodPost, "/runs/r1/evidence", 200, Evidence{
		ID:         "e1",
		RunID:      "r1",
		Kind:       "quote",
		SourceName: "manual",
		SourceRef:  &ref,
		Excerpt:    "Users abandon checkout at the shipping step.",
	})

	svc := NewService(backend.Client())
	ev, err := svc.Add(context.Background(), "r1", AddInput{
		Kind:      "quote",
		SourceRef: &ref,
		Excerpt:   "Users abandon checkout at the shipping step.",
	})
	assert.NoError(t, err)
	assert.Equal(t, "quote", ev.Kind)
	assert.Equal(t, "manual", ev.SourceName)

	var sent map[string]any
	backend.LastRequest(http.MethodPost, "/runs/r1/evidence").JSON(t, &sent)
	assert.Equal(t, "quote", sent["kind"])
	assert.NotContains(t, sent, "source_name")
}

func TestService_List(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.Respond(http.MethodGet, "/runs/r1/evidence", 200, []Evidence{
		{ID: "e2", Kind: "snippet"},
		{ID: "e1", Kind: "quote"},
	})

	svc := NewService(backend.Client())
	items, err := svc.List(context.Background(), "r1")
	assert.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, "snippet", items[0].Kind)
}

func TestService_Auto(t *testing.T) {
	backend := testutil.NewBackend(t)
	ref := "doc:d1#chunk:c9"
	backend.Respond(http.MethodPost, "/runs/r1/evidence/auto", 200, []Evidence{
		{
			ID:         "e3",
			RunID:      "r1",
			Kind:       "snippet",
			SourceName: "retrieval",
			SourceRef:  &ref,
			Excerpt:    "Checkout funnel drops 40% at shipping.",
			Meta:       map[string]any{"rank": float64(1), "score_hybrid": 0.83},
		},
	})

	svc := NewService(backend.Client())
	items, err := svc.Auto(context.Background(), "r1", AutoInput{
		Query: "checkout drop-off",
		K:     6,
		Alpha: 0.65,
	})
	assert.NoError(t, err)
	if assert.Len(t, items, 1) {
		assert.Equal(t, "retrieval", items[0].SourceName)
		assert.Equal(t, 0.83, items[0].Meta["score_hybrid"])
	}

	var sent AutoInput
	backend.LastRequest(http.MethodPost, "/runs/r1/evidence/auto").JSON(t, &sent)
	assert.Equal(t, "checkout drop-off", sent.Query)
	assert.Equal(t, 6, sent.K)
}

func TestService_AutoEmptyIndex(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.Respond(http.MethodPost, "/runs/r1/evidence/auto", 200, "[]")

	svc := NewService(backend.Client())
	items, err := svc.Auto(context.Background(), "r1", AutoInput{Query: "anything"})
	assert.NoError(t, err)
	assert.Empty(t, items)
}

func TestService_AddUnknownRun(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.Respond(http.MethodPost, "/runs/nope/evidence", 404, `{"detail":"Run not found"}`)

	svc := NewService(backend.Client())
	_, err := svc.Add(context.Background(), "nope", AddInput{Kind: "quote"})
	assert.True(t, transport.IsNotFound(err))
	assert.EqualError(t, err, `{"detail":"Run not found"}`)
}
