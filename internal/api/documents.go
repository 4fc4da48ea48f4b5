// ABOUTME: GET /documents and DELETE /documents/{vendor}/{document}.
// ABOUTME: The document list is always consumed as a full replacement snapshot.

package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// DocumentRecord summarizes one indexed document as the backend sees it.
type DocumentRecord struct {
	Vendor     string `json:"vendor"`
	Document   string `json:"document"`
	ChunkCount int    `json:"chunk_count"`
	PageCount  int    `json:"page_count"`
}

// DocumentList is the full index listing.
type DocumentList struct {
	Documents   []DocumentRecord `json:"documents"`
	TotalChunks int              `json:"total_chunks"`
}

// DeleteResponse reports how many chunks a delete removed.
type DeleteResponse struct {
	Status         string `json:"status"`
	Vendor         string `json:"vendor"`
	Document       string `json:"document"`
	ChunksRemoved  int    `json:"chunks_removed"`
	TotalRemaining int    `json:"total_remaining"`
}

// ListDocuments fetches the current index contents.
func (c *Client) ListDocuments(ctx context.Context) (*DocumentList, error) {
	var resp DocumentList
	if err := c.getJSON(ctx, "/documents", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteDocument removes all chunks of one document, keyed by the
// (vendor, document) pair. Both path segments are URL-escaped.
func (c *Client) DeleteDocument(ctx context.Context, vendor, document string) (*DeleteResponse, error) {
	path := fmt.Sprintf("/documents/%s/%s", url.PathEscape(vendor), url.PathEscape(document))

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	var resp DeleteResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
