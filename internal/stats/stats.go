// ABOUTME: Eventually-consistent snapshot of backend document and usage statistics.
// ABOUTME: Refreshes replace the whole snapshot; the last fetch wins, no merging.

package stats

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/2389/rag-console/internal/api"
)

// Snapshot is one full read of the backend's document list and analytics.
// It is never patched incrementally; a refresh replaces it wholesale.
type Snapshot struct {
	Documents   []api.DocumentRecord
	TotalChunks int
	Analytics   *api.AnalyticsResponse
	FetchedAt   time.Time
}

// Gateway is what the tracker needs from the backend client.
type Gateway interface {
	ListDocuments(ctx context.Context) (*api.DocumentList, error)
	Analytics(ctx context.Context) (*api.AnalyticsResponse, error)
}

// Tracker holds the latest snapshot. Concurrent refreshes are allowed and
// unordered: readers observe whichever fetch finished last.
type Tracker struct {
	gateway Gateway
	logger  *slog.Logger

	mu       sync.RWMutex
	snapshot Snapshot
}

// NewTracker creates a Tracker with an empty snapshot.
func NewTracker(gateway Gateway, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{
		gateway: gateway,
		logger:  logger.With("component", "stats"),
	}
}

// Refresh fetches the document list and analytics and replaces the snapshot.
// A partial failure keeps the previous snapshot and reports the error.
func (t *Tracker) Refresh(ctx context.Context) error {
	docs, err := t.gateway.ListDocuments(ctx)
	if err != nil {
		return err
	}
	analytics, err := t.gateway.Analytics(ctx)
	if err != nil {
		return err
	}

	next := Snapshot{
		Documents:   docs.Documents,
		TotalChunks: docs.TotalChunks,
		Analytics:   analytics,
		FetchedAt:   time.Now(),
	}

	t.mu.Lock()
	t.snapshot = next
	t.mu.Unlock()

	t.logger.Debug("stats refreshed",
		"documents", len(next.Documents),
		"total_chunks", next.TotalChunks,
	)
	return nil
}

// Current returns the latest snapshot. The zero Snapshot means no refresh
// has succeeded yet.
func (t *Tracker) Current() Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := t.snapshot
	out.Documents = make([]api.DocumentRecord, len(t.snapshot.Documents))
	copy(out.Documents, t.snapshot.Documents)
	return out
}
