// Package config handles configuration loading for rag-console.
//
// # Overview
//
// Configuration is loaded from YAML files with environment variable
// expansion. The package provides validation and sensible defaults; a
// missing file is not an error at the call site - the command falls back
// to Default().
//
// # Configuration File
//
// Default locations (in order):
//
//  1. Path from the -config flag
//  2. RAG_CONSOLE_CONFIG environment variable
//  3. ~/.config/rag-console/config.yaml
//
// # Environment Variable Expansion
//
// Configuration values can reference environment variables:
//
//	backend:
//	  url: "http://${RAG_BACKEND_HOST}:8000"
//
// Syntax: ${VAR_NAME}
//
// # Example
//
//	backend:
//	  url: "http://localhost:8000"
//	upload:
//	  vendor: "Uploaded"
//	chat:
//	  top_k: 5
//	logging:
//	  level: "info"
//	  format: "text"
package config
