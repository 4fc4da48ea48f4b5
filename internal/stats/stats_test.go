// ABOUTME: Tests for the statistics snapshot tracker.
// ABOUTME: Wholesale replacement, partial-failure behavior, delete visibility.

package stats

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389/rag-console/internal/api"
)

type stubGateway struct {
	docs         *api.DocumentList
	analytics    *api.AnalyticsResponse
	docsErr      error
	analyticsErr error
}

func (g *stubGateway) ListDocuments(context.Context) (*api.DocumentList, error) {
	if g.docsErr != nil {
		return nil, g.docsErr
	}
	return g.docs, nil
}

func (g *stubGateway) Analytics(context.Context) (*api.AnalyticsResponse, error) {
	if g.analyticsErr != nil {
		return nil, g.analyticsErr
	}
	return g.analytics, nil
}

func TestTracker_Refresh_ReplacesSnapshot(t *testing.T) {
	gateway := &stubGateway{
		docs: &api.DocumentList{
			Documents: []api.DocumentRecord{
				{Vendor: "Cisco", Document: "a.pdf", ChunkCount: 10},
				{Vendor: "Dell", Document: "b.pdf", ChunkCount: 5},
			},
			TotalChunks: 15,
		},
		analytics: &api.AnalyticsResponse{TotalQueries: 3},
	}
	tracker := NewTracker(gateway, nil)

	require.NoError(t, tracker.Refresh(context.Background()))
	snap := tracker.Current()
	assert.Len(t, snap.Documents, 2)
	assert.Equal(t, 15, snap.TotalChunks)
	assert.Equal(t, 3, snap.Analytics.TotalQueries)
	assert.False(t, snap.FetchedAt.IsZero())

	// A document disappears backend-side; the next refresh replaces the
	// list wholesale rather than merging.
	gateway.docs = &api.DocumentList{
		Documents:   []api.DocumentRecord{{Vendor: "Dell", Document: "b.pdf", ChunkCount: 5}},
		TotalChunks: 5,
	}
	require.NoError(t, tracker.Refresh(context.Background()))

	snap = tracker.Current()
	require.Len(t, snap.Documents, 1)
	assert.Equal(t, "Dell", snap.Documents[0].Vendor)
	for _, doc := range snap.Documents {
		assert.False(t, doc.Vendor == "Cisco" && doc.Document == "a.pdf", "deleted pair must be gone")
	}
}

func TestTracker_Refresh_PartialFailureKeepsPrevious(t *testing.T) {
	gateway := &stubGateway{
		docs:      &api.DocumentList{TotalChunks: 8},
		analytics: &api.AnalyticsResponse{TotalQueries: 1},
	}
	tracker := NewTracker(gateway, nil)
	require.NoError(t, tracker.Refresh(context.Background()))

	gateway.analyticsErr = errors.New("analytics unavailable")
	require.Error(t, tracker.Refresh(context.Background()))

	assert.Equal(t, 8, tracker.Current().TotalChunks)
	assert.Equal(t, 1, tracker.Current().Analytics.TotalQueries)
}

func TestTracker_Current_EmptyBeforeFirstRefresh(t *testing.T) {
	tracker := NewTracker(&stubGateway{}, nil)

	snap := tracker.Current()
	assert.Empty(t, snap.Documents)
	assert.Nil(t, snap.Analytics)
	assert.True(t, snap.FetchedAt.IsZero())
}

func TestTracker_Current_ReturnsCopy(t *testing.T) {
	gateway := &stubGateway{
		docs:      &api.DocumentList{Documents: []api.DocumentRecord{{Vendor: "IBM", Document: "x.pdf"}}},
		analytics: &api.AnalyticsResponse{},
	}
	tracker := NewTracker(gateway, nil)
	require.NoError(t, tracker.Refresh(context.Background()))

	snap := tracker.Current()
	snap.Documents[0].Vendor = "mutated"
	assert.Equal(t, "IBM", tracker.Current().Documents[0].Vendor)
}
