// Package retrieval manages the workspace knowledge index: registering
// sources, ingesting documents, embedding chunks, and hybrid search over
// the result. Search blends full-text rank with vector similarity; alpha
// weights the vector side.
//
// Every search is traced server-side. The trace endpoints expose past
// requests and their ranked hits for audit.
package retrieval

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/hupe1980/agentos-go/transport"
)

// Timeframe presets accepted by Query.TimeframePreset.
const (
	Timeframe7d  = "7d"
	Timeframe30d = "30d"
	Timeframe90d = "90d"
)

// Source is a registered content origin inside a workspace, one per type
// (docs, manual, github, ...).
type Source struct {
	ID          string         `json:"id"`
	WorkspaceID string         `json:"workspace_id"`
	Type        string         `json:"type"`
	Name        string         `json:"name"`
	Config      map[string]any `json:"config"`
}

// Document is ingested content, chunked for search.
type Document struct {
	ID          string         `json:"id"`
	WorkspaceID string         `json:"workspace_id"`
	SourceID    string         `json:"source_id"`
	Title       string         `json:"title"`
	ExternalID  *string        `json:"external_id"`
	Meta        map[string]any `json:"meta"`
}

// IngestInput is a plain-text document to index.
type IngestInput struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	// ExternalID ties the document to an upstream identity, e.g. a file
	// path or ticket key.
	ExternalID *string `json:"external_id,omitempty"`
}

// IngestResult reports a completed ingestion.
type IngestResult struct {
	Document      Document `json:"document"`
	ChunksCreated int      `json:"chunks_created"`
}

// EmbedResult reports an embedding pass over a document's chunks.
// ChunksEmbedded is zero when every chunk already had a vector.
type EmbedResult struct {
	DocumentID     string `json:"document_id"`
	Model          string `json:"model"`
	ChunksEmbedded int    `json:"chunks_embedded"`
}

// Item is one ranked search hit. Scores are min-max normalized to 0..1;
// ScoreHybrid is the alpha-weighted blend the ranking is ordered by.
type Item struct {
	ChunkID       string         `json:"chunk_id"`
	DocumentID    string         `json:"document_id"`
	SourceID      string         `json:"source_id"`
	DocumentTitle string         `json:"document_title"`
	ChunkIndex    int            `json:"chunk_index"`
	Snippet       string         `json:"snippet"`
	Meta          map[string]any `json:"meta"`
	ScoreFTS      float64        `json:"score_fts"`
	ScoreVec      float64        `json:"score_vec"`
	ScoreHybrid   float64        `json:"score_hybrid"`
}

// Response is a ranked search result echoing the effective parameters.
type Response struct {
	OK    bool    `json:"ok"`
	Q     string  `json:"q"`
	K     int     `json:"k"`
	Alpha float64 `json:"alpha"`
	Items []Item  `json:"items"`
}

// Query parameterizes a search. Only Q is required; zero values fall back
// to server defaults (k=8, alpha=0.65, no filters).
type Query struct {
	// Q is the search text, 1 to 500 characters.
	Q string
	// K caps the number of hits, 1 to 50.
	K int
	// Alpha weights vector similarity against full-text rank, 0 to 1.
	Alpha float64
	// SourceTypes restricts hits to these source types.
	SourceTypes []string
	// TimeframePreset is one of the Timeframe constants. Mutually
	// exclusive with StartDate/EndDate.
	TimeframePreset string
	// StartDate and EndDate bound a custom timeframe, YYYY-MM-DD.
	// EndDate is inclusive.
	StartDate string
	EndDate   string
}

func (q Query) values() url.Values {
	v := url.Values{}
	v.Set("q", q.Q)
	if q.K > 0 {
		v.Set("k", strconv.Itoa(q.K))
	}
	if q.Alpha > 0 {
		v.Set("alpha", strconv.FormatFloat(q.Alpha, 'f', -1, 64))
	}
	if len(q.SourceTypes) > 0 {
		v.Set("source_types", strings.Join(q.SourceTypes, ","))
	}
	if q.TimeframePreset != "" {
		v.Set("timeframe_preset", q.TimeframePreset)
	}
	if q.StartDate != "" {
		v.Set("start_date", q.StartDate)
	}
	if q.EndDate != "" {
		v.Set("end_date", q.EndDate)
	}
	return v
}

// Request is a recorded search, as returned by the trace endpoints.
type Request struct {
	ID              string         `json:"id"`
	WorkspaceID     string         `json:"workspace_id"`
	CreatedByUserID string         `json:"created_by_user_id"`
	Q               string         `json:"q"`
	K               int            `json:"k"`
	Alpha           float64        `json:"alpha"`
	SourceTypes     *string        `json:"source_types"`
	Timeframe       map[string]any `json:"timeframe"`
	CreatedAt       string         `json:"created_at"`
}

// RequestItem is one recorded hit of a traced search. The chunk, document,
// and source ids are nil when the underlying rows were deleted since.
type RequestItem struct {
	ID          string         `json:"id"`
	RequestID   string         `json:"request_id"`
	Rank        int            `json:"rank"`
	ChunkID     *string        `json:"chunk_id"`
	DocumentID  *string        `json:"document_id"`
	SourceID    *string        `json:"source_id"`
	Snippet     string         `json:"snippet"`
	Meta        map[string]any `json:"meta"`
	ScoreFTS    float64        `json:"score_fts"`
	ScoreVec    float64        `json:"score_vec"`
	ScoreHybrid float64        `json:"score_hybrid"`
	CreatedAt   string         `json:"created_at"`
}

// Service calls the retrieval endpoints.
type Service struct {
	client *transport.Client
}

// NewService creates a retrieval service on the shared transport client.
func NewService(client *transport.Client) *Service {
	return &Service{client: client}
}

// ListSources returns the workspace's sources, newest first.
func (s *Service) ListSources(ctx context.Context, workspaceID string) ([]Source, error) {
	var out []Source
	path := fmt.Sprintf("/workspaces/%s/sources", url.PathEscape(workspaceID))
	if err := s.client.Get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// EnsureDocsSource creates the workspace's docs source, or renames the
// existing one. Requires member role.
func (s *Service) EnsureDocsSource(ctx context.Context, workspaceID, name string) (*Source, error) {
	var src Source
	path := fmt.Sprintf("/workspaces/%s/sources/docs", url.PathEscape(workspaceID))
	in := struct {
		Name string `json:"name"`
	}{Name: name}
	if err := s.client.Post(ctx, path, in, &src); err != nil {
		return nil, err
	}
	return &src, nil
}

// IngestText indexes a plain-text document under the docs source, creating
// the source on first use. The text is chunked immediately; embedding is a
// separate step.
func (s *Service) IngestText(ctx context.Context, workspaceID string, in IngestInput) (*IngestResult, error) {
	var res IngestResult
	path := fmt.Sprintf("/workspaces/%s/documents/docs", url.PathEscape(workspaceID))
	if err := s.client.Post(ctx, path, in, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ListDocuments returns the workspace's documents, newest first.
// sourceType filters by source when non-empty.
func (s *Service) ListDocuments(ctx context.Context, workspaceID, sourceType string) ([]Document, error) {
	var out []Document
	path := fmt.Sprintf("/workspaces/%s/documents", url.PathEscape(workspaceID))
	var opts []transport.RequestOption
	if sourceType != "" {
		opts = append(opts, transport.WithQuery(url.Values{"source_type": {sourceType}}))
	}
	if err := s.client.Get(ctx, path, &out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// EmbedDocument computes embeddings for the document's chunks. Chunks that
// already have a vector are skipped unless force is set.
func (s *Service) EmbedDocument(ctx context.Context, documentID string, force bool) (*EmbedResult, error) {
	var res EmbedResult
	path := fmt.Sprintf("/documents/%s/embed", url.PathEscape(documentID))
	var opts []transport.RequestOption
	if force {
		opts = append(opts, transport.WithQuery(url.Values{"force": {"true"}}))
	}
	if err := s.client.Post(ctx, path, struct{}{}, &res, opts...); err != nil {
		return nil, err
	}
	return &res, nil
}

// Retrieve runs a hybrid search over the workspace index. The search is
// recorded server-side and shows up in the trace endpoints.
func (s *Service) Retrieve(ctx context.Context, workspaceID string, q Query) (*Response, error) {
	var res Response
	path := fmt.Sprintf("/workspaces/%s/retrieve", url.PathEscape(workspaceID))
	if err := s.client.Get(ctx, path, &res, transport.WithQuery(q.values())); err != nil {
		return nil, err
	}
	return &res, nil
}

// ListRequests returns the workspace's recorded searches, newest first.
// limit caps the page at 1 to 200 rows; zero means the server default.
func (s *Service) ListRequests(ctx context.Context, workspaceID string, limit int) ([]Request, error) {
	var out []Request
	path := fmt.Sprintf("/workspaces/%s/retrieval-requests", url.PathEscape(workspaceID))
	var opts []transport.RequestOption
	if limit > 0 {
		opts = append(opts, transport.WithQuery(url.Values{"limit": {strconv.Itoa(limit)}}))
	}
	if err := s.client.Get(ctx, path, &out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// GetRequest returns one recorded search.
func (s *Service) GetRequest(ctx context.Context, requestID string) (*Request, error) {
	var r Request
	if err := s.client.Get(ctx, "/retrieval-requests/"+url.PathEscape(requestID), &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// ListRequestItems returns a recorded search's hits in rank order.
func (s *Service) ListRequestItems(ctx context.Context, requestID string) ([]RequestItem, error) {
	var out []RequestItem
	path := fmt.Sprintf("/retrieval-requests/%s/items", url.PathEscape(requestID))
	if err := s.client.Get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}
