package tui

import "errors"

// ErrMissingAnalysisService is returned when the analysis service is not provided.
var ErrMissingAnalysisService = errors.New("tui: analysis service is required")

// ErrEmptyDocument is returned when there is no text to analyse.
var ErrEmptyDocument = errors.New("tui: document has no text")
