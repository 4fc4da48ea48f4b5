// ABOUTME: Tests for the backend HTTP client against httptest stub servers.
// ABOUTME: Covers request shapes, response decoding, and error body handling.

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Query_RoundTrip(t *testing.T) {
	var got QueryRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/query", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		json.NewEncoder(w).Encode(QueryResponse{
			Answer:    "A FortiGate is a firewall appliance.",
			Sources:   []SourceInfo{{Vendor: "Fortinet", Document: "FortiGate-200_Administration_Guide.pdf", Page: "12"}},
			SessionID: "abc123",
		})
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL})
	resp, err := client.Query(context.Background(), QueryRequest{
		Question:            "What is FortiGate?",
		TopK:                5,
		ConversationHistory: []MessageItem{},
	})
	require.NoError(t, err)

	assert.Equal(t, "What is FortiGate?", got.Question)
	assert.Empty(t, got.SessionID)
	assert.Equal(t, 5, got.TopK)
	assert.NotNil(t, got.ConversationHistory)
	assert.Empty(t, got.ConversationHistory)

	assert.Equal(t, "A FortiGate is a firewall appliance.", resp.Answer)
	assert.Equal(t, "abc123", resp.SessionID)
	require.Len(t, resp.Sources, 1)
	assert.Equal(t, "Fortinet", resp.Sources[0].Vendor)
}

func TestClient_Query_OmitsEmptySessionID(t *testing.T) {
	var raw map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		json.NewEncoder(w).Encode(QueryResponse{Answer: "ok", SessionID: "s1"})
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL})
	_, err := client.Query(context.Background(), QueryRequest{Question: "q", TopK: 5})
	require.NoError(t, err)

	_, present := raw["session_id"]
	assert.False(t, present, "empty session_id must be omitted, not sent as empty string")
}

func TestClient_Compare_RoundTrip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/compare", r.URL.Path)

		var req CompareRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []string{"Cisco", "Fortinet"}, req.Vendors)
		assert.Equal(t, "firewall policies", req.Topic)

		json.NewEncoder(w).Encode(CompareResponse{
			Comparison:   "Cisco uses ACLs; Fortinet uses policies.",
			VendorsFound: []string{"Cisco", "Fortinet"},
		})
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL})
	resp, err := client.Compare(context.Background(), CompareRequest{
		Vendors: []string{"Cisco", "Fortinet"},
		Topic:   "firewall policies",
		TopK:    5,
	})
	require.NoError(t, err)
	assert.Equal(t, "Cisco uses ACLs; Fortinet uses policies.", resp.Comparison)
}

func TestClient_DecodesDetailErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Only PDF and HTML files are supported."})
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL})
	_, err := client.Upload(context.Background(), "notes.txt", "Uploaded", strings.NewReader("text"))
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Only PDF and HTML files are supported.", apiErr.Detail)
}

func TestClient_NonJSONErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL})
	_, err := client.Health(context.Background())
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Empty(t, apiErr.Detail)
}

func TestClient_Health_RoundTrip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		json.NewEncoder(w).Encode(HealthResponse{
			Status:         "healthy",
			Version:        "2.0.0",
			ChromaDBCount:  1042,
			Model:          "claude-sonnet-4-20250514",
			EmbeddingModel: "BAAI/bge-base-en-v1.5",
		})
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL})
	resp, err := client.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, 1042, resp.ChromaDBCount)
}

func TestClient_TrimsTrailingSlash(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		json.NewEncoder(w).Encode(HealthResponse{Status: "healthy"})
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL + "/"})
	_, err := client.Health(context.Background())
	require.NoError(t, err)
}
