package mcp

import (
	"github.com/custodia-labs/verity/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the MCP server.
type Ports struct {
	// Analysis runs the originality pipeline.
	Analysis driving.AnalysisService

	// History lists saved reports. Optional.
	History driving.HistoryService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Analysis == nil {
		return ErrMissingAnalysisService
	}
	return nil
}
