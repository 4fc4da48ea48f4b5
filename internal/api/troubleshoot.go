// ABOUTME: POST /troubleshoot - multi-step troubleshooting with conversation memory.
// ABOUTME: Session-aware like /query; returns a diagnosis instead of an answer.

package api

import "context"

// TroubleshootRequest describes a problem to diagnose, with prior turns for
// multi-step back-and-forth.
type TroubleshootRequest struct {
	Problem             string        `json:"problem"`
	SessionID           string        `json:"session_id,omitempty"`
	TopK                int           `json:"top_k"`
	ConversationHistory []MessageItem `json:"conversation_history"`
}

// TroubleshootResponse carries the diagnosis and its citations.
type TroubleshootResponse struct {
	Diagnosis string       `json:"diagnosis"`
	Sources   []SourceInfo `json:"sources"`
	SessionID string       `json:"session_id"`
}

// Troubleshoot sends a problem description and returns a diagnosis.
func (c *Client) Troubleshoot(ctx context.Context, req TroubleshootRequest) (*TroubleshootResponse, error) {
	var resp TroubleshootResponse
	if err := c.postJSON(ctx, "/troubleshoot", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
