// ABOUTME: Tests for multipart upload and document delete requests.
// ABOUTME: Verifies form field names, path escaping, and response decoding.

package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Upload_MultipartFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "Fortinet", r.FormValue("vendor"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "guide.pdf", header.Filename)

		content, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "%PDF-1.7 fake", string(content))

		json.NewEncoder(w).Encode(UploadResponse{
			Status:      "success",
			Filename:    "guide.pdf",
			Vendor:      "Fortinet",
			ChunksAdded: 42,
		})
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL})
	resp, err := client.Upload(context.Background(), "guide.pdf", "Fortinet", strings.NewReader("%PDF-1.7 fake"))
	require.NoError(t, err)
	assert.Equal(t, 42, resp.ChunksAdded)
}

func TestClient_DeleteDocument_EscapesPathSegments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/documents/EUC/Dell%20EUC%20Overview.html", r.URL.EscapedPath())
		json.NewEncoder(w).Encode(DeleteResponse{Status: "deleted", ChunksRemoved: 7})
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL})
	resp, err := client.DeleteDocument(context.Background(), "EUC", "Dell EUC Overview.html")
	require.NoError(t, err)
	assert.Equal(t, 7, resp.ChunksRemoved)
}

func TestClient_ListDocuments_RoundTrip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/documents", r.URL.Path)
		json.NewEncoder(w).Encode(DocumentList{
			Documents: []DocumentRecord{
				{Vendor: "Cisco", Document: "IT_Wireless_LAN_Design_Guide.pdf", ChunkCount: 120, PageCount: 33},
			},
			TotalChunks: 120,
		})
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL})
	list, err := client.ListDocuments(context.Background())
	require.NoError(t, err)
	require.Len(t, list.Documents, 1)
	assert.Equal(t, "Cisco", list.Documents[0].Vendor)
	assert.Equal(t, 120, list.TotalChunks)
}
