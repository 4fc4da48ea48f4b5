// ABOUTME: GET /config and POST /config - backend model settings.
// ABOUTME: Lets the client inspect and switch the generation model.

package api

import "context"

// SettingsResponse describes the backend's current model configuration.
type SettingsResponse struct {
	Model          string `json:"model"`
	EmbeddingModel string `json:"embedding_model"`
	HasAPIKey      bool   `json:"has_api_key"`
}

// SettingsUpdate changes backend model settings. Empty fields are left as-is.
type SettingsUpdate struct {
	AnthropicModel string `json:"anthropic_model,omitempty"`
}

// Settings fetches the backend's model configuration.
func (c *Client) Settings(ctx context.Context) (*SettingsResponse, error) {
	var resp SettingsResponse
	if err := c.getJSON(ctx, "/config", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateSettings applies a settings change and returns the resulting state.
func (c *Client) UpdateSettings(ctx context.Context, update SettingsUpdate) (*SettingsResponse, error) {
	var resp SettingsResponse
	if err := c.postJSON(ctx, "/config", update, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
