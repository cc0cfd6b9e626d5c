package agentos

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/agentos-go/transport"
)

func TestNew(t *testing.T) {
	c, err := New("https://api.example.com", func(o *transport.Options) {
		o.UserAgent = "agentos-test"
	})
	assert.NoError(t, err)
	assert.NotNil(t, c.Transport)
	assert.NotNil(t, c.Auth)
	assert.NotNil(t, c.Workspaces)
	assert.NotNil(t, c.Agents)
	assert.NotNil(t, c.Runs)
	assert.NotNil(t, c.Artifacts)
	assert.NotNil(t, c.Evidence)
	assert.NotNil(t, c.Pipelines)
	assert.NotNil(t, c.Retrieval)
}

func TestNew_InvalidBaseURL(t *testing.T) {
	_, err := New("not a url")
	assert.Error(t, err)
}
