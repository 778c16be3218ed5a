// Package messages defines Bubbletea message types for the TUI.
package messages

import (
	"github.com/custodia-labs/verity/internal/core/domain"
)

// AnalysisRequested asks the app to run the pipeline again.
type AnalysisRequested struct{}

// AnalysisCompleted carries the report back to the model.
type AnalysisCompleted struct {
	Report *domain.Report
	Err    error
}

// SourceSelected is sent when a source is opened for highlighting.
type SourceSelected struct {
	Index int
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewAnalysing shows progress while the pipeline runs.
	ViewAnalysing ViewType = iota
	// ViewReport shows the score and the source list.
	ViewReport
	// ViewSource shows the text with one source highlighted.
	ViewSource
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewAnalysing:
		return "analysing"
	case ViewReport:
		return "report"
	case ViewSource:
		return "source"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}
