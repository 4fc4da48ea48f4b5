// ABOUTME: Interactive terminal client for the RAG assistant backend.
// ABOUTME: Readline-style loop with mode switching, uploads, and index management.

package main

import (
	"bufio"
	"bytes"
	"context"
	"flag"
	"fmt"
	"html"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"github.com/2389/rag-console/internal/api"
	"github.com/2389/rag-console/internal/config"
	"github.com/2389/rag-console/internal/markdown"
	"github.com/2389/rag-console/internal/router"
	"github.com/2389/rag-console/internal/session"
	"github.com/2389/rag-console/internal/stats"
	"github.com/2389/rag-console/internal/upload"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	server := flag.String("server", "", "Backend URL (overrides config)")
	vendor := flag.String("vendor", "", "Default vendor label for uploads (overrides config)")
	startMode := flag.String("mode", "query", "Initial mode: query, compare, config-gen, troubleshoot")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *server != "" {
		cfg.Backend.URL = *server
	}
	if *vendor != "" {
		cfg.Upload.Vendor = *vendor
	}

	mode, ok := router.ParseMode(*startMode)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", *startMode)
		os.Exit(1)
	}

	logger := setupLogger(cfg.Logging)

	// Setup context with signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	app := newApp(cfg, mode, logger)
	app.banner(ctx)

	if err := app.run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\nGoodbye!")
}

// loadConfig resolves the config file path: flag, then env var, then the XDG
// location. A missing file falls back to defaults; a broken one is an error.
func loadConfig(flagPath string) (*config.Config, error) {
	path := flagPath
	if path == "" {
		path = os.Getenv("RAG_CONSOLE_CONFIG")
	}
	if path == "" {
		configDir := os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			homeDir, err := os.UserHomeDir()
			if err == nil {
				configDir = filepath.Join(homeDir, ".config")
			}
		}
		if configDir != "" {
			candidate := filepath.Join(configDir, "rag-console", "config.yaml")
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
			}
		}
	}

	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func setupLogger(cfg config.Logging) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	// Logs go to stderr so they never interleave with the prompt.
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

// app wires the client components together for one interactive session.
type app struct {
	cfg     *config.Config
	client  *api.Client
	store   *session.Store
	tracker *stats.Tracker
	uploads *upload.Pipeline
	router  *router.Router
	logger  *slog.Logger

	mode    router.Mode
	turns   chan struct{}
	printed int

	reporter *uploadReporter
}

func newApp(cfg *config.Config, mode router.Mode, logger *slog.Logger) *app {
	client := api.New(api.Config{BaseURL: cfg.Backend.URL, Logger: logger})
	store := session.NewStore()
	tracker := stats.NewTracker(client, logger)

	a := &app{
		cfg:     cfg,
		client:  client,
		store:   store,
		tracker: tracker,
		logger:  logger,
		mode:    mode,
		turns:   make(chan struct{}, 16),
	}

	a.reporter = newUploadReporter()
	a.uploads = upload.New(client, upload.Options{
		Stats:  tracker,
		Logger: logger,
		Notify: func() { a.reporter.report(a.uploads.Items()) },
	})
	a.router = router.New(client, store, router.Options{
		TopK:   cfg.Chat.TopK,
		Logger: logger,
		Notify: func() {
			select {
			case a.turns <- struct{}{}:
			default:
			}
		},
	})
	return a
}

// banner prints the connection header and the startup health check. An
// unreachable backend is a session-level condition, painted as its own
// banner rather than a per-turn error.
func (a *app) banner(ctx context.Context) {
	fmt.Printf("rag-console connected to %s\n", a.client.BaseURL())

	health, err := a.client.Health(ctx)
	if err != nil {
		color.New(color.FgRed, color.Bold).Println("⚠ backend unreachable - answers will fail until it comes back")
		a.logger.Warn("health check failed", "error", err)
	} else {
		color.Green("✓ backend %s healthy: %d chunks indexed, model %s", health.Version, health.ChromaDBCount, health.Model)
	}

	fmt.Println("Type a message and press Enter. /help for commands. Ctrl+C to quit.")
	fmt.Println()
}

func (a *app) run(ctx context.Context) error {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("[%s]> ", a.mode)

		// Read input with context awareness
		inputCh := make(chan string, 1)
		errCh := make(chan error, 1)

		go func() {
			if scanner.Scan() {
				inputCh <- scanner.Text()
			} else {
				if err := scanner.Err(); err != nil {
					errCh <- err
				} else {
					errCh <- io.EOF
				}
			}
		}()

		var input string
		select {
		case <-ctx.Done():
			return nil
		case err := <-errCh:
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("reading input: %w", err)
		case input = <-inputCh:
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if input == "/quit" || input == "/exit" || input == "/q" {
			return nil
		}

		if strings.HasPrefix(input, "/") {
			a.handleCommand(ctx, input)
			fmt.Println()
			continue
		}

		a.submitTurn(ctx, input)
		fmt.Println()
	}
}

// submitTurn sends one chat turn and prints the reply when it lands.
func (a *app) submitTurn(ctx context.Context, text string) {
	a.printed = a.store.Len()

	if !a.router.Submit(ctx, text, a.mode) {
		color.Yellow("[busy] a turn is already in flight")
		return
	}

	// The user message is recorded synchronously; wait for the reply.
	for a.router.Busy() {
		select {
		case <-ctx.Done():
			return
		case <-a.turns:
		case <-time.After(100 * time.Millisecond):
		}
	}
	a.printNewMessages()
}

// printNewMessages renders everything appended since the last print mark.
func (a *app) printNewMessages() {
	msgs := a.store.Messages()
	for ; a.printed < len(msgs); a.printed++ {
		msg := msgs[a.printed]
		if msg.Role != session.RoleAssistant {
			continue
		}
		fmt.Println(msg.Content)
		if len(msg.Sources) > 0 {
			gray := color.New(color.FgHiBlack)
			gray.Println("sources:")
			for _, src := range msg.Sources {
				if src.Page != "" && src.Page != "n/a" {
					gray.Printf("  - %s / %s (p. %s)\n", src.Vendor, src.Document, src.Page)
				} else {
					gray.Printf("  - %s / %s\n", src.Vendor, src.Document)
				}
			}
		}
	}
}

func (a *app) handleCommand(ctx context.Context, input string) {
	cmd, args, _ := strings.Cut(input, " ")
	args = strings.TrimSpace(args)

	switch cmd {
	case "/help":
		printHelp()
	case "/mode":
		a.cmdMode(args)
	case "/vendors":
		a.cmdVendors(args)
	case "/upload":
		a.cmdUpload(ctx, args)
	case "/uploads":
		a.cmdUploads()
	case "/remove":
		a.cmdRemove(args)
	case "/docs":
		a.cmdDocs(ctx)
	case "/delete":
		a.cmdDelete(ctx, args)
	case "/stats":
		a.cmdStats(ctx)
	case "/health":
		a.cmdHealth(ctx)
	case "/model":
		a.cmdModel(ctx, args)
	case "/export":
		a.cmdExport(args)
	case "/clear":
		a.store.Reset()
		fmt.Println("Conversation cleared")
	default:
		color.Yellow("Unknown command %s (try /help)", cmd)
	}
}

func printHelp() {
	fmt.Println("Commands:")
	fmt.Println("  /mode [name]             Show or switch mode (query, compare, config-gen, troubleshoot)")
	fmt.Println("  /vendors [a,b|clear]     Pin vendors for compare, or clear back to auto-detection")
	fmt.Println("  /upload <files...>       Upload PDF/HTML documents for ingestion")
	fmt.Println("  /uploads                 Show the upload queue")
	fmt.Println("  /remove <n>              Remove entry n from the upload queue")
	fmt.Println("  /docs                    List indexed documents")
	fmt.Println("  /delete <vendor> <doc>   Delete a document from the index")
	fmt.Println("  /stats                   Show backend usage statistics")
	fmt.Println("  /health                  Probe the backend")
	fmt.Println("  /model [name]            Show or switch the backend model")
	fmt.Println("  /export <file.html>      Export the transcript as HTML")
	fmt.Println("  /clear                   Clear the conversation and session")
	fmt.Println("  /quit                    Exit")
}

func (a *app) cmdMode(args string) {
	if args == "" {
		fmt.Printf("Mode: %s\n", a.mode)
		return
	}
	mode, ok := router.ParseMode(args)
	if !ok {
		color.Yellow("Unknown mode %q", args)
		return
	}
	a.mode = mode
	fmt.Printf("Now in %s mode\n", mode)
}

func (a *app) cmdVendors(args string) {
	switch args {
	case "":
		fmt.Printf("Known vendors: %s\n", strings.Join(router.DefaultVocabulary, ", "))
	case "clear":
		a.router.SetVendors(router.NewVocabularyExtractor())
		fmt.Println("Vendor auto-detection restored")
	default:
		var vendors []string
		for _, v := range strings.Split(args, ",") {
			if v = strings.TrimSpace(v); v != "" {
				vendors = append(vendors, v)
			}
		}
		a.router.SetVendors(router.StaticVendors(vendors))
		fmt.Printf("Compare pinned to: %s\n", strings.Join(vendors, ", "))
	}
}

func (a *app) cmdUpload(ctx context.Context, args string) {
	if args == "" {
		color.Yellow("Usage: /upload <files...>")
		return
	}

	var files []upload.File
	for _, path := range strings.Fields(args) {
		data, err := os.ReadFile(path)
		if err != nil {
			color.Red("%s: %v", path, err)
			continue
		}
		files = append(files, upload.File{
			Name:    filepath.Base(path),
			Size:    int64(len(data)),
			Content: bytes.NewReader(data),
		})
	}
	if len(files) == 0 {
		return
	}

	a.uploads.Accept(ctx, a.cfg.Upload.Vendor, files...)
	fmt.Printf("Dispatched %d file(s) as vendor %q\n", len(files), a.cfg.Upload.Vendor)
}

func (a *app) cmdUploads() {
	items := a.uploads.Items()
	if len(items) == 0 {
		fmt.Println("Upload queue is empty")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tFILE\tSIZE\tSTATUS\tDETAIL")
	for i, it := range items {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", i+1, it.DisplayName, it.HumanSize, it.Status, it.StatusMessage)
	}
	w.Flush()
}

func (a *app) cmdRemove(args string) {
	n, err := strconv.Atoi(args)
	if err != nil || n < 1 {
		color.Yellow("Usage: /remove <n> (see /uploads)")
		return
	}
	items := a.uploads.Items()
	if n > len(items) {
		color.Yellow("No upload entry %d", n)
		return
	}
	a.uploads.Remove(items[n-1].ID)
	fmt.Printf("Removed %s from the queue\n", items[n-1].DisplayName)
}

func (a *app) cmdDocs(ctx context.Context) {
	if err := a.tracker.Refresh(ctx); err != nil {
		color.Red("Error: %s", api.ErrorMessage(err))
		return
	}
	snap := a.tracker.Current()
	if len(snap.Documents) == 0 {
		fmt.Println("No documents indexed")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "VENDOR\tDOCUMENT\tCHUNKS\tPAGES")
	for _, doc := range snap.Documents {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\n", doc.Vendor, doc.Document, doc.ChunkCount, doc.PageCount)
	}
	w.Flush()
	fmt.Printf("%d chunks total\n", snap.TotalChunks)
}

func (a *app) cmdDelete(ctx context.Context, args string) {
	vendor, document, ok := strings.Cut(args, " ")
	if !ok {
		color.Yellow("Usage: /delete <vendor> <document>")
		return
	}
	resp, err := a.uploads.DeleteDocument(ctx, vendor, strings.TrimSpace(document))
	if err != nil {
		color.Red("Error: %s", api.ErrorMessage(err))
		return
	}
	color.Green("Deleted %s/%s (%d chunks removed)", resp.Vendor, resp.Document, resp.ChunksRemoved)
}

func (a *app) cmdStats(ctx context.Context) {
	if err := a.tracker.Refresh(ctx); err != nil {
		color.Red("Error: %s", api.ErrorMessage(err))
		return
	}
	snap := a.tracker.Current()
	an := snap.Analytics
	if an == nil {
		fmt.Println("No statistics yet")
		return
	}

	cyan := color.New(color.FgCyan)
	cyan.Println("Usage")
	fmt.Printf("  queries: %d  sessions: %d  avg response: %.2fs\n", an.TotalQueries, an.ActiveSessions, an.AvgResponseTime)
	fmt.Printf("  documents: %d  chunks: %d\n", len(snap.Documents), snap.TotalChunks)

	if len(an.PopularTopics) > 0 {
		cyan.Println("Popular topics")
		for i, topic := range an.PopularTopics {
			if i == 5 {
				break
			}
			fmt.Printf("  %s (%d)\n", topic.Topic, topic.Count)
		}
	}
	if len(an.RecentQueries) > 0 {
		cyan.Println("Recent queries")
		for _, q := range an.RecentQueries {
			fmt.Printf("  %.2fs  %s\n", q.ResponseTime, q.Question)
		}
	}
}

func (a *app) cmdHealth(ctx context.Context) {
	health, err := a.client.Health(ctx)
	if err != nil {
		color.New(color.FgRed, color.Bold).Println("⚠ backend unreachable")
		fmt.Println(api.ErrorMessage(err))
		return
	}
	color.Green("✓ %s (version %s)", health.Status, health.Version)
	fmt.Printf("  chunks: %d\n  model: %s\n  embeddings: %s\n", health.ChromaDBCount, health.Model, health.EmbeddingModel)
}

func (a *app) cmdModel(ctx context.Context, args string) {
	var settings *api.SettingsResponse
	var err error
	if args == "" {
		settings, err = a.client.Settings(ctx)
	} else {
		settings, err = a.client.UpdateSettings(ctx, api.SettingsUpdate{AnthropicModel: args})
	}
	if err != nil {
		color.Red("Error: %s", api.ErrorMessage(err))
		return
	}
	fmt.Printf("model: %s\nembeddings: %s\napi key: %v\n", settings.Model, settings.EmbeddingModel, settings.HasAPIKey)
}

// cmdExport renders the transcript to a standalone HTML file. Assistant
// messages go through the markdown renderer; user messages are escaped as-is.
func (a *app) cmdExport(args string) {
	if args == "" {
		color.Yellow("Usage: /export <file.html>")
		return
	}

	msgs := a.store.Messages()
	if len(msgs) == 0 {
		fmt.Println("Nothing to export")
		return
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>rag-console transcript</title>\n</head>\n<body>\n")
	for _, msg := range msgs {
		switch msg.Role {
		case session.RoleUser:
			fmt.Fprintf(&b, "<div class=\"user\"><b>you:</b> %s</div>\n", html.EscapeString(msg.Content))
		case session.RoleAssistant:
			fmt.Fprintf(&b, "<div class=\"assistant\">%s</div>\n", markdown.Render(msg.Content))
			for _, src := range msg.Sources {
				fmt.Fprintf(&b, "<div class=\"source\">%s / %s</div>\n",
					html.EscapeString(src.Vendor), html.EscapeString(src.Document))
			}
		}
	}
	b.WriteString("</body>\n</html>\n")

	if err := os.WriteFile(args, []byte(b.String()), 0644); err != nil {
		color.Red("Error: %v", err)
		return
	}
	fmt.Printf("Exported %d messages to %s\n", len(msgs), args)
}

// uploadReporter prints one line per upload item when it reaches a terminal
// state. Upload goroutines fire the notifications, so it locks around the
// seen map.
type uploadReporter struct {
	mu   sync.Mutex
	seen map[string]upload.Status
}

func newUploadReporter() *uploadReporter {
	return &uploadReporter{seen: make(map[string]upload.Status)}
}

func (r *uploadReporter) report(items []upload.Item) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, it := range items {
		if it.Status == upload.StatusUploading || r.seen[it.ID] == it.Status {
			continue
		}
		r.seen[it.ID] = it.Status
		if it.Status == upload.StatusDone {
			color.Green("[upload] %s: %s", it.DisplayName, it.StatusMessage)
		} else {
			color.Red("[upload] %s: %s", it.DisplayName, it.StatusMessage)
		}
	}
}
