// Package api is the typed HTTP client for the RAG assistant backend.
//
// # Overview
//
// The backend is a stateless REST service: every conversational operation
// takes its full context in the request and returns a self-contained
// response. This package maps each endpoint to one method on Client and
// keeps no state beyond the construction-time configuration.
//
// # Endpoints
//
//   - Health: GET /health liveness probe
//   - Query: POST /query multi-turn question answering
//   - Compare: POST /compare vendor comparison
//   - GenerateConfig: POST /config-gen configuration generation
//   - Troubleshoot: POST /troubleshoot multi-step diagnosis
//   - Upload: POST /upload multipart document ingestion
//   - ListDocuments / DeleteDocument: index inspection and removal
//   - Analytics: GET /analytics usage statistics
//   - Settings / UpdateSettings: backend model configuration
//
// # Errors
//
// Non-2xx responses become *Error carrying the backend's structured
// "detail" field when present. ErrorMessage flattens any error from this
// package into a display string with a fixed precedence: structured detail,
// transport description, fallback.
//
// # Usage
//
//	client := api.New(api.Config{BaseURL: "http://localhost:8000"})
//	resp, err := client.Query(ctx, api.QueryRequest{Question: "...", TopK: 5})
package api
