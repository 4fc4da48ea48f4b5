// ABOUTME: POST /query - multi-turn question answering with hybrid retrieval.
// ABOUTME: Session-aware; the backend assigns a session id on the first turn.

package api

import "context"

// QueryRequest asks the backend a question. SessionID is empty on the first
// turn of a conversation; the backend mints one and returns it.
type QueryRequest struct {
	Question            string        `json:"question"`
	SessionID           string        `json:"session_id,omitempty"`
	TopK                int           `json:"top_k"`
	ConversationHistory []MessageItem `json:"conversation_history"`
}

// QueryResponse carries the generated answer and its citations.
type QueryResponse struct {
	Answer    string       `json:"answer"`
	Sources   []SourceInfo `json:"sources"`
	SessionID string       `json:"session_id"`
}

// Query sends a question with conversation context and returns the answer.
func (c *Client) Query(ctx context.Context, req QueryRequest) (*QueryResponse, error) {
	var resp QueryResponse
	if err := c.postJSON(ctx, "/query", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
