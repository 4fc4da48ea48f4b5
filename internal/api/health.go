// ABOUTME: GET /health - backend liveness probe.
// ABOUTME: Failure here means the whole session is non-functional, not one turn.

package api

import "context"

// HealthResponse describes a reachable backend.
type HealthResponse struct {
	Status         string `json:"status"`
	Version        string `json:"version"`
	ChromaDBCount  int    `json:"chromadb_count"`
	Model          string `json:"model"`
	EmbeddingModel string `json:"embedding_model"`
}

// Health probes the backend.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var resp HealthResponse
	if err := c.getJSON(ctx, "/health", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
