// ABOUTME: POST /config-gen - configuration snippet generation from documentation.
// ABOUTME: Stateless; an optional vendor narrows retrieval to one vendor's docs.

package api

import "context"

// ConfigGenRequest describes the configuration the user wants generated.
type ConfigGenRequest struct {
	Request string `json:"request"`
	Vendor  string `json:"vendor,omitempty"`
	TopK    int    `json:"top_k"`
}

// ConfigGenResponse carries the generated configuration and its citations.
type ConfigGenResponse struct {
	Config  string       `json:"config"`
	Sources []SourceInfo `json:"sources"`
}

// GenerateConfig requests a configuration snippet.
func (c *Client) GenerateConfig(ctx context.Context, req ConfigGenRequest) (*ConfigGenResponse, error) {
	var resp ConfigGenResponse
	if err := c.postJSON(ctx, "/config-gen", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
