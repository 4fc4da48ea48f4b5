// ABOUTME: GET /analytics - backend usage statistics for the dashboard view.
// ABOUTME: Read-only; the client renders these figures and never mutates them.

package api

import "context"

// TopicCount is one entry in the popular-topics ranking.
type TopicCount struct {
	Topic string `json:"topic"`
	Count int    `json:"count"`
}

// RecentQuery is one entry in the recent-queries feed.
type RecentQuery struct {
	Question     string  `json:"question"`
	Timestamp    float64 `json:"timestamp"`
	ResponseTime float64 `json:"response_time"`
}

// AnalyticsResponse is the backend's usage snapshot.
type AnalyticsResponse struct {
	TotalQueries    int           `json:"total_queries"`
	ActiveSessions  int           `json:"active_sessions"`
	AvgResponseTime float64       `json:"avg_response_time"`
	PopularTopics   []TopicCount  `json:"popular_topics"`
	RecentQueries   []RecentQuery `json:"recent_queries"`
	TotalDocuments  int           `json:"total_documents"`
}

// Analytics fetches the current usage statistics.
func (c *Client) Analytics(ctx context.Context) (*AnalyticsResponse, error) {
	var resp AnalyticsResponse
	if err := c.getJSON(ctx, "/analytics", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
