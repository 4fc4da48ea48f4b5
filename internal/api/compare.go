// ABOUTME: POST /compare - side-by-side vendor comparison on a topic.
// ABOUTME: Stateless; no session id or conversation history is involved.

package api

import "context"

// CompareRequest asks for a comparison of two or more vendors on a topic.
type CompareRequest struct {
	Vendors []string `json:"vendors"`
	Topic   string   `json:"topic"`
	TopK    int      `json:"top_k"`
}

// CompareResponse carries the comparison text, the vendors the backend
// actually found documentation for, and the combined citations.
type CompareResponse struct {
	Comparison   string       `json:"comparison"`
	VendorsFound []string     `json:"vendors_found"`
	Sources      []SourceInfo `json:"sources"`
}

// Compare requests a vendor comparison.
func (c *Client) Compare(ctx context.Context, req CompareRequest) (*CompareResponse, error) {
	var resp CompareResponse
	if err := c.postJSON(ctx, "/compare", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
