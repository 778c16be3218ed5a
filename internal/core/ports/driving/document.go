package driving

import "context"

// DocumentService loads the text of documents submitted for analysis.
type DocumentService interface {
	// Load returns the plain text of the file at path.
	Load(ctx context.Context, path string) (string, error)

	// Supports reports whether the file type can be loaded.
	Supports(path string) bool
}
