// ABOUTME: Wire types shared across backend operations.
// ABOUTME: Shapes mirror the backend's pydantic models field for field.

package api

// MessageItem is one prior turn sent back to the backend as conversation
// context. Only the role and content travel; client-side metadata does not.
type MessageItem struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// SourceInfo is a citation attached to a generated answer. The client never
// interprets it beyond display.
type SourceInfo struct {
	Vendor   string `json:"vendor"`
	Document string `json:"document"`
	Page     string `json:"page,omitempty"`
	Chunk    *int   `json:"chunk,omitempty"`
}
