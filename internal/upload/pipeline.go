// ABOUTME: Upload pipeline tracking independent per-file ingestion lifecycles.
// ABOUTME: Deliberately unbounded: accepted files dispatch without waiting on each other.

package upload

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/2389/rag-console/internal/api"
)

// Status is the lifecycle state of one upload item. Transitions never go
// backward; done and error are terminal.
type Status string

const (
	StatusUploading Status = "uploading"
	StatusDone      Status = "done"
	StatusError     Status = "error"
)

// unsupportedMessage is shown for files rejected by the extension check.
const unsupportedMessage = "Unsupported format"

// allowedExtensions is the client-side ingestion allow-list, matched on the
// filename suffix only; there is no content sniffing.
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".html": true,
	".htm":  true,
}

// File is one file handed to Accept.
type File struct {
	Name    string
	Size    int64
	Content io.Reader
}

// Item is the tracked lifecycle of one submitted file.
type Item struct {
	ID            string
	DisplayName   string
	HumanSize     string
	Status        Status
	StatusMessage string
	ChunksIndexed int
}

// Gateway is what the pipeline needs from the backend client.
type Gateway interface {
	Upload(ctx context.Context, filename, vendor string, content io.Reader) (*api.UploadResponse, error)
	DeleteDocument(ctx context.Context, vendor, document string) (*api.DeleteResponse, error)
}

// StatsRefresher re-reads the document/analytics snapshot. The pipeline
// calls it best-effort after each completed mutation; failures are logged
// and dropped.
type StatsRefresher interface {
	Refresh(ctx context.Context) error
}

// Pipeline manages a queue of independent per-file upload state machines.
// Unlike the chat path there is no shared concurrency limit: every accepted
// file gets its own goroutine immediately.
type Pipeline struct {
	gateway Gateway
	stats   StatsRefresher
	notify  func()
	logger  *slog.Logger

	mu    sync.Mutex
	items []*Item
}

// Options tune a Pipeline.
type Options struct {
	// Stats, when set, is refreshed after successful uploads and deletes.
	Stats StatsRefresher

	// Notify fires after every item change.
	Notify func()

	Logger *slog.Logger
}

// New creates a Pipeline over the given gateway.
func New(gateway Gateway, opts Options) *Pipeline {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Pipeline{
		gateway: gateway,
		stats:   opts.Stats,
		notify:  opts.Notify,
		logger:  opts.Logger.With("component", "upload"),
	}
}

// Accept validates and dispatches each file independently. Files failing the
// extension check become terminal error items without any network call;
// the rest start uploading immediately, all at once.
func (p *Pipeline) Accept(ctx context.Context, vendor string, files ...File) {
	if vendor == "" {
		vendor = "Uploaded"
	}

	for _, f := range files {
		item := &Item{
			ID:          uuid.New().String(),
			DisplayName: f.Name,
			HumanSize:   humanize.Bytes(uint64(f.Size)),
		}

		ext := strings.ToLower(filepath.Ext(f.Name))
		if !allowedExtensions[ext] {
			item.Status = StatusError
			item.StatusMessage = unsupportedMessage
			p.add(item)
			continue
		}

		item.Status = StatusUploading
		item.StatusMessage = "Uploading..."
		p.add(item)

		go p.run(ctx, item.ID, f.Name, vendor, f.Content)
	}
}

// run performs one upload and records the terminal state.
func (p *Pipeline) run(ctx context.Context, id, filename, vendor string, content io.Reader) {
	resp, err := p.gateway.Upload(ctx, filename, vendor, content)
	if err != nil {
		p.logger.Warn("upload failed", "file", filename, "error", err)
		p.update(id, func(it *Item) {
			it.Status = StatusError
			it.StatusMessage = api.ErrorMessage(err)
		})
		return
	}

	p.update(id, func(it *Item) {
		it.Status = StatusDone
		it.ChunksIndexed = resp.ChunksAdded
		it.StatusMessage = fmt.Sprintf("%d chunks indexed", resp.ChunksAdded)
	})
	p.refreshStats(ctx)
}

// Remove drops an item from the display queue regardless of its state. It
// deletes the record; nothing backend-side changes. Returns false when the
// id is unknown.
func (p *Pipeline) Remove(id string) bool {
	p.mu.Lock()
	removed := false
	for i, it := range p.items {
		if it.ID == id {
			p.items = append(p.items[:i], p.items[i+1:]...)
			removed = true
			break
		}
	}
	p.mu.Unlock()

	if removed && p.notify != nil {
		p.notify()
	}
	return removed
}

// DeleteDocument removes an indexed document keyed by (vendor, document).
// Success triggers a stats refresh; failure changes nothing locally.
func (p *Pipeline) DeleteDocument(ctx context.Context, vendor, document string) (*api.DeleteResponse, error) {
	resp, err := p.gateway.DeleteDocument(ctx, vendor, document)
	if err != nil {
		return nil, err
	}
	p.refreshStats(ctx)
	return resp, nil
}

// Items returns a snapshot copy of the current queue, oldest first.
func (p *Pipeline) Items() []Item {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Item, len(p.items))
	for i, it := range p.items {
		out[i] = *it
	}
	return out
}

func (p *Pipeline) add(item *Item) {
	p.mu.Lock()
	p.items = append(p.items, item)
	p.mu.Unlock()

	if p.notify != nil {
		p.notify()
	}
}

func (p *Pipeline) update(id string, fn func(*Item)) {
	p.mu.Lock()
	for _, it := range p.items {
		if it.ID == id {
			fn(it)
			break
		}
	}
	p.mu.Unlock()

	if p.notify != nil {
		p.notify()
	}
}

// refreshStats is best-effort and not synchronized with in-flight uploads;
// concurrent refreshes race and the last fetch wins.
func (p *Pipeline) refreshStats(ctx context.Context) {
	if p.stats == nil {
		return
	}
	if err := p.stats.Refresh(ctx); err != nil {
		p.logger.Debug("stats refresh failed", "error", err)
	}
}
