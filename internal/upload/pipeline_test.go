// ABOUTME: Tests for the upload pipeline with a stub gateway.
// ABOUTME: Validation rejects, concurrent terminal states, removal, delete refresh.

package upload

import (
	"context"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389/rag-console/internal/api"
)

// stubGateway answers uploads from a per-filename table and counts calls.
type stubGateway struct {
	mu          sync.Mutex
	uploadCalls int
	deleteCalls int
	responses   map[string]*api.UploadResponse
	errs        map[string]error
	deleteErr   error
}

func (g *stubGateway) Upload(_ context.Context, filename, vendor string, _ io.Reader) (*api.UploadResponse, error) {
	g.mu.Lock()
	g.uploadCalls++
	g.mu.Unlock()
	if err := g.errs[filename]; err != nil {
		return nil, err
	}
	if resp := g.responses[filename]; resp != nil {
		return resp, nil
	}
	return &api.UploadResponse{Filename: filename, Vendor: vendor, ChunksAdded: 1}, nil
}

func (g *stubGateway) DeleteDocument(_ context.Context, vendor, document string) (*api.DeleteResponse, error) {
	g.mu.Lock()
	g.deleteCalls++
	g.mu.Unlock()
	if g.deleteErr != nil {
		return nil, g.deleteErr
	}
	return &api.DeleteResponse{Status: "deleted", Vendor: vendor, Document: document, ChunksRemoved: 3}, nil
}

func (g *stubGateway) uploads() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.uploadCalls
}

// countingStats counts Refresh invocations.
type countingStats struct {
	calls atomic.Int32
}

func (s *countingStats) Refresh(context.Context) error {
	s.calls.Add(1)
	return nil
}

func waitTerminal(t *testing.T, p *Pipeline, want int) []Item {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		items := p.Items()
		terminal := 0
		for _, it := range items {
			if it.Status != StatusUploading {
				terminal++
			}
		}
		if terminal >= want {
			return items
		}
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for %d terminal items, have %d", want, terminal)
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestPipeline_Accept_RejectsUnsupportedExtension(t *testing.T) {
	gateway := &stubGateway{}
	p := New(gateway, Options{})

	p.Accept(context.Background(), "", File{Name: "notes.txt", Size: 10, Content: strings.NewReader("x")})

	items := p.Items()
	require.Len(t, items, 1)
	assert.Equal(t, StatusError, items[0].Status)
	assert.Equal(t, unsupportedMessage, items[0].StatusMessage)
	assert.Zero(t, gateway.uploads(), "rejected files must not reach the network")
}

func TestPipeline_Accept_ExtensionCheckIsCaseInsensitive(t *testing.T) {
	gateway := &stubGateway{}
	p := New(gateway, Options{})

	p.Accept(context.Background(), "Fortinet",
		File{Name: "GUIDE.PDF", Size: 100, Content: strings.NewReader("pdf")},
		File{Name: "Page.Htm", Size: 50, Content: strings.NewReader("html")},
	)

	items := waitTerminal(t, p, 2)
	for _, it := range items {
		assert.Equal(t, StatusDone, it.Status)
	}
	assert.Equal(t, 2, gateway.uploads())
}

func TestPipeline_Accept_IndependentLifecycles(t *testing.T) {
	gateway := &stubGateway{
		responses: map[string]*api.UploadResponse{
			"a.pdf":  {ChunksAdded: 12},
			"b.html": {ChunksAdded: 7},
		},
		errs: map[string]error{
			"c.pdf": &api.Error{Status: 500, Detail: "ingestion failed"},
		},
	}
	stats := &countingStats{}
	p := New(gateway, Options{Stats: stats})

	p.Accept(context.Background(), "Cisco",
		File{Name: "a.pdf", Size: 1 << 20, Content: strings.NewReader("a")},
		File{Name: "b.html", Size: 2048, Content: strings.NewReader("b")},
		File{Name: "c.pdf", Size: 512, Content: strings.NewReader("c")},
	)

	items := waitTerminal(t, p, 3)
	require.Len(t, items, 3)

	byName := map[string]Item{}
	for _, it := range items {
		byName[it.DisplayName] = it
	}

	assert.Equal(t, StatusDone, byName["a.pdf"].Status)
	assert.Equal(t, 12, byName["a.pdf"].ChunksIndexed)
	assert.Equal(t, StatusDone, byName["b.html"].Status)
	assert.Equal(t, 7, byName["b.html"].ChunksIndexed)

	// One failure does not abort the siblings.
	assert.Equal(t, StatusError, byName["c.pdf"].Status)
	assert.Equal(t, "ingestion failed", byName["c.pdf"].StatusMessage)

	// Refresh fires once per successful item, not for the failure.
	assert.Eventually(t, func() bool { return stats.calls.Load() == 2 }, 2*time.Second, 5*time.Millisecond)
}

func TestPipeline_Accept_HumanReadableSize(t *testing.T) {
	p := New(&stubGateway{}, Options{})

	p.Accept(context.Background(), "", File{Name: "big.pdf", Size: 2 * 1000 * 1000, Content: strings.NewReader("x")})

	items := p.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "2.0 MB", items[0].HumanSize)
}

func TestPipeline_Remove_AnyState(t *testing.T) {
	p := New(&stubGateway{}, Options{})

	p.Accept(context.Background(), "", File{Name: "bad.txt", Size: 1, Content: strings.NewReader("x")})
	items := p.Items()
	require.Len(t, items, 1)

	assert.True(t, p.Remove(items[0].ID))
	assert.Empty(t, p.Items())

	assert.False(t, p.Remove("no-such-id"))
}

func TestPipeline_DeleteDocument_RefreshOnSuccessOnly(t *testing.T) {
	gateway := &stubGateway{}
	stats := &countingStats{}
	p := New(gateway, Options{Stats: stats})

	resp, err := p.DeleteDocument(context.Background(), "Cisco", "guide.pdf")
	require.NoError(t, err)
	assert.Equal(t, 3, resp.ChunksRemoved)
	assert.Equal(t, int32(1), stats.calls.Load())

	gateway.deleteErr = &api.Error{Status: 404, Detail: "Document not found in index."}
	_, err = p.DeleteDocument(context.Background(), "Cisco", "missing.pdf")
	require.Error(t, err)
	assert.Equal(t, int32(1), stats.calls.Load(), "failed delete must not refresh")
}

func TestPipeline_Notify_FiresOnItemChanges(t *testing.T) {
	var notifications atomic.Int32
	p := New(&stubGateway{}, Options{Notify: func() { notifications.Add(1) }})

	p.Accept(context.Background(), "", File{Name: "doc.pdf", Size: 1, Content: strings.NewReader("x")})
	waitTerminal(t, p, 1)

	// One for acceptance, one for the terminal transition.
	assert.Eventually(t, func() bool { return notifications.Load() == 2 }, 2*time.Second, 5*time.Millisecond)
}
