// Package tui provides an interactive terminal user interface for verity.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/verity/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the TUI.
type Ports struct {
	// Analysis runs the originality pipeline.
	Analysis driving.AnalysisService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(analysis driving.AnalysisService) *Ports {
	return &Ports{Analysis: analysis}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Analysis == nil {
		return ErrMissingAnalysisService
	}
	return nil
}
