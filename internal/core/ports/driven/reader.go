package driven

import "context"

// DocumentReader extracts plain text from a file.
type DocumentReader interface {
	// Read returns the text content of the file at path.
	// Returns domain.ErrUnsupportedType for formats it cannot convert.
	Read(ctx context.Context, path string) (string, error)

	// Supports reports whether the file extension can be read.
	Supports(path string) bool
}
