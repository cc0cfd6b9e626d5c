// Package agentos is a client for the Agent OS API: multi-tenant
// workspaces in which configured agents run, produce versioned artifacts,
// and ground their output in retrieved evidence. Most applications
// interact with this package by:
//  1. Creating a Client via New() pointed at an API base URL
//  2. Signing in through client.Auth (the session lives in cookies and
//     renews itself transparently on expiry)
//  3. Calling the typed services (Workspaces, Runs, Artifacts, ...)
//
// The façade shares one transport.Client across all services, so the
// session, retry and logging behavior is uniform. Construction options
// are the transport's; see transport.Options.
package agentos

import (
	"github.com/hupe1980/agentos-go/agentdef"
	"github.com/hupe1980/agentos-go/artifact"
	"github.com/hupe1980/agentos-go/auth"
	"github.com/hupe1980/agentos-go/evidence"
	"github.com/hupe1980/agentos-go/pipeline"
	"github.com/hupe1980/agentos-go/retrieval"
	"github.com/hupe1980/agentos-go/run"
	"github.com/hupe1980/agentos-go/transport"
	"github.com/hupe1980/agentos-go/workspace"
)

// Client aggregates the typed API services over a shared transport.
type Client struct {
	// Transport is the underlying authenticated HTTP client, exposed for
	// callers that need endpoints not covered by the typed services.
	Transport *transport.Client

	Auth       *auth.Service
	Workspaces *workspace.Service
	Agents     *agentdef.Service
	Runs       *run.Service
	Artifacts  *artifact.Service
	Evidence   *evidence.Service
	Pipelines  *pipeline.Service
	Retrieval  *retrieval.Service
}

// New creates a Client for the API at baseURL.
func New(baseURL string, optFns ...func(o *transport.Options)) (*Client, error) {
	t, err := transport.New(baseURL, optFns...)
	if err != nil {
		return nil, err
	}
	return &Client{
		Transport:  t,
		Auth:       auth.NewService(t),
		Workspaces: workspace.NewService(t),
		Agents:     agentdef.NewService(t),
		Runs:       run.NewService(t),
		Artifacts:  artifact.NewService(t),
		Evidence:   evidence.NewService(t),
		Pipelines:  pipeline.NewService(t),
		Retrieval:  retrieval.NewService(t),
	}, nil
}
