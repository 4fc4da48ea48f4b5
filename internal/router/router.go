// ABOUTME: Routes one chat input onto the four backend operations.
// ABOUTME: Record first, then act: the user message lands before any suspension.

package router

import (
	"context"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/2389/rag-console/internal/api"
	"github.com/2389/rag-console/internal/session"
)

// Mode selects the backend operation family for a chat turn.
type Mode string

const (
	ModeQuery        Mode = "query"
	ModeCompare      Mode = "compare"
	ModeConfigGen    Mode = "config-gen"
	ModeTroubleshoot Mode = "troubleshoot"
)

// Modes lists all valid modes in display order.
var Modes = []Mode{ModeQuery, ModeCompare, ModeConfigGen, ModeTroubleshoot}

// ParseMode maps a user-entered name to a Mode.
func ParseMode(s string) (Mode, bool) {
	for _, m := range Modes {
		if string(m) == s {
			return m, true
		}
	}
	return "", false
}

// SessionAware reports whether the mode reads and updates the session id and
// sends the conversation context window.
func (m Mode) SessionAware() bool {
	return m == ModeQuery || m == ModeTroubleshoot
}

// defaultTopK is the retrieval depth sent with every mode call.
const defaultTopK = 5

// errorPrefix flags assistant messages that report a failed turn.
const errorPrefix = "⚠️ "

// Gateway is what the router needs from the backend client.
type Gateway interface {
	Query(ctx context.Context, req api.QueryRequest) (*api.QueryResponse, error)
	Compare(ctx context.Context, req api.CompareRequest) (*api.CompareResponse, error)
	GenerateConfig(ctx context.Context, req api.ConfigGenRequest) (*api.ConfigGenResponse, error)
	Troubleshoot(ctx context.Context, req api.TroubleshootRequest) (*api.TroubleshootResponse, error)
}

// Router is the single entry point for chat turns. It serializes the chat
// path: at most one turn is in flight per conversation, and a Submit while
// one is outstanding is a no-op.
type Router struct {
	gateway Gateway
	store   *session.Store
	vendors VendorExtractor
	topK    int
	notify  func()
	logger  *slog.Logger
	busy    atomic.Bool
}

// Options tune a Router. Zero values select the defaults.
type Options struct {
	// Vendors is the extraction strategy for compare and config-gen.
	// Defaults to NewVocabularyExtractor().
	Vendors VendorExtractor

	// TopK overrides the retrieval depth. Defaults to 5.
	TopK int

	// Notify fires after every message append, once the transcript has
	// settled; the display layer uses it to follow the tail.
	Notify func()

	Logger *slog.Logger
}

// New creates a Router over the given gateway and store.
func New(gateway Gateway, store *session.Store, opts Options) *Router {
	if opts.Vendors == nil {
		opts.Vendors = NewVocabularyExtractor()
	}
	if opts.TopK <= 0 {
		opts.TopK = defaultTopK
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Router{
		gateway: gateway,
		store:   store,
		vendors: opts.Vendors,
		topK:    opts.TopK,
		notify:  opts.Notify,
		logger:  opts.Logger.With("component", "router"),
	}
}

// Busy reports whether a turn is currently in flight.
func (r *Router) Busy() bool {
	return r.busy.Load()
}

// SetVendors swaps the vendor extraction strategy.
func (r *Router) SetVendors(v VendorExtractor) {
	r.vendors = v
}

// Submit starts one chat turn. It returns false without side effects when
// the text trims empty or another turn is in flight. Otherwise the user
// message is appended synchronously, the mode call runs asynchronously, and
// the reply (or an error-flagged message - the transcript is never left
// without one) is appended when it completes.
func (r *Router) Submit(ctx context.Context, text string, mode Mode) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	if !r.busy.CompareAndSwap(false, true) {
		r.logger.Debug("turn in flight, input dropped", "mode", mode)
		return false
	}

	// Context for this turn is the history before this input; the backend
	// receives the new text in its own request field.
	window := r.store.ContextWindow()
	sessionID := r.store.SessionID()

	r.append(session.NewMessage(session.RoleUser, text, nil))

	go func() {
		result, err := r.dispatch(ctx, text, mode, window, sessionID)

		var reply session.Message
		if err != nil {
			r.logger.Warn("turn failed", "mode", mode, "error", err)
			reply = session.NewMessage(session.RoleAssistant, errorPrefix+api.ErrorMessage(err), nil)
		} else {
			if mode.SessionAware() && result.sessionID != "" {
				r.store.SetSessionID(result.sessionID)
			}
			reply = session.NewMessage(session.RoleAssistant, result.content, result.sources)
		}

		r.append(reply)
		r.busy.Store(false)
	}()

	return true
}

// append stores a message and schedules the follow-tail notification.
func (r *Router) append(msg session.Message) {
	r.store.Append(msg)
	if r.notify != nil {
		r.notify()
	}
}

// turn is the normalized outcome of one mode call: whatever kind of response
// the backend produced, flattened to what the transcript needs.
type turn struct {
	content   string
	sources   []api.SourceInfo
	sessionID string
}

// dispatch builds the mode-specific request, calls the gateway, and
// normalizes the kind-specific response into a turn.
func (r *Router) dispatch(ctx context.Context, text string, mode Mode, window []api.MessageItem, sessionID string) (*turn, error) {
	switch mode {
	case ModeCompare:
		resp, err := r.gateway.Compare(ctx, api.CompareRequest{
			Vendors: r.vendors.Pair(text),
			Topic:   text,
			TopK:    r.topK,
		})
		if err != nil {
			return nil, err
		}
		return normalizeComparison(resp), nil

	case ModeConfigGen:
		req := api.ConfigGenRequest{Request: text, TopK: r.topK}
		if matches := r.vendors.Match(text); len(matches) == 1 {
			req.Vendor = matches[0]
		}
		resp, err := r.gateway.GenerateConfig(ctx, req)
		if err != nil {
			return nil, err
		}
		return normalizeConfig(resp), nil

	case ModeTroubleshoot:
		resp, err := r.gateway.Troubleshoot(ctx, api.TroubleshootRequest{
			Problem:             text,
			SessionID:           sessionID,
			TopK:                r.topK,
			ConversationHistory: window,
		})
		if err != nil {
			return nil, err
		}
		return normalizeDiagnosis(resp), nil

	default: // ModeQuery
		resp, err := r.gateway.Query(ctx, api.QueryRequest{
			Question:            text,
			SessionID:           sessionID,
			TopK:                r.topK,
			ConversationHistory: window,
		})
		if err != nil {
			return nil, err
		}
		return normalizeAnswer(resp), nil
	}
}

func normalizeAnswer(resp *api.QueryResponse) *turn {
	return &turn{content: resp.Answer, sources: resp.Sources, sessionID: resp.SessionID}
}

func normalizeComparison(resp *api.CompareResponse) *turn {
	return &turn{content: resp.Comparison, sources: resp.Sources}
}

func normalizeConfig(resp *api.ConfigGenResponse) *turn {
	return &turn{content: resp.Config, sources: resp.Sources}
}

func normalizeDiagnosis(resp *api.TroubleshootResponse) *turn {
	return &turn{content: resp.Diagnosis, sources: resp.Sources, sessionID: resp.SessionID}
}
