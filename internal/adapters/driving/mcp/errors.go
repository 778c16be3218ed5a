// Package mcp provides an MCP (Model Context Protocol) server adapter for Verity.
// It lets assistants score documents and browse saved reports.
package mcp

import "errors"

// ErrMissingAnalysisService is returned when the analysis service is not provided.
var ErrMissingAnalysisService = errors.New("mcp: analysis service is required")
