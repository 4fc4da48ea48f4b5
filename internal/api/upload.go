// ABOUTME: POST /upload - multipart document ingestion into the backend index.
// ABOUTME: Sends the file under "file" and the owning vendor under "vendor".

package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// UploadResponse reports the outcome of an ingestion.
type UploadResponse struct {
	Status            string `json:"status"`
	Filename          string `json:"filename"`
	Vendor            string `json:"vendor"`
	ChunksAdded       int    `json:"chunks_added"`
	TotalInCollection int    `json:"total_in_collection"`
}

// Upload sends one file for ingestion. The content is read fully while
// building the multipart body; the caller keeps ownership of the reader.
func (c *Client) Upload(ctx context.Context, filename, vendor string, content io.Reader) (*UploadResponse, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("building multipart body: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("reading file content: %w", err)
	}
	if err := writer.WriteField("vendor", vendor); err != nil {
		return nil, fmt.Errorf("building multipart body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("building multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", &body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var resp UploadResponse
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
