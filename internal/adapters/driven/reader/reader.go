// Package reader extracts plain text from document files for analysis.
//
// Plain text is read as-is, Markdown and HTML have their markup stripped.
// PDF, DOCX, ODT, RTF and XML files are converted with docconv; PDF and RTF
// conversion need the pdftotext and unrtf tools on PATH.
package reader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"code.sajari.com/docconv/v2"

	"github.com/custodia-labs/verity/internal/core/domain"
	"github.com/custodia-labs/verity/internal/core/ports/driven"
	"github.com/custodia-labs/verity/internal/normalisers/html"
	"github.com/custodia-labs/verity/internal/normalisers/markdown"
)

// Ensure FileReader implements the interface.
var _ driven.DocumentReader = (*FileReader)(nil)

// textFilter turns the raw content of a text-based file into prose.
type textFilter func(string) string

func asIs(s string) string { return s }

var plainExtensions = map[string]textFilter{
	".txt":      asIs,
	".text":     asIs,
	".md":       markdown.Strip,
	".markdown": markdown.Strip,
	".html":     html.Strip,
	".htm":      html.Strip,
}

var convertedExtensions = map[string]struct{}{
	".pdf":  {},
	".docx": {},
	".odt":  {},
	".rtf":  {},
	".xml":  {},
}

// FileReader reads text from files on disk.
type FileReader struct{}

// New creates a file reader.
func New() *FileReader {
	return &FileReader{}
}

// Supports reports whether the file extension can be read.
func (r *FileReader) Supports(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	_, plain := plainExtensions[ext]
	_, converted := convertedExtensions[ext]
	return plain || converted
}

// Read returns the text content of the file at path.
func (r *FileReader) Read(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(path))
	if filter, ok := plainExtensions[ext]; ok {
		text, err := readPlain(path)
		if err != nil {
			return "", err
		}
		return filter(text), nil
	}
	if _, ok := convertedExtensions[ext]; !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedType, ext)
	}

	res, err := docconv.ConvertPath(path)
	if err != nil {
		return "", fmt.Errorf("converting %s: %w", filepath.Base(path), err)
	}
	return res.Body, nil
}

func readPlain(path string) (string, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading text file: %w", err)
	}
	if !utf8.Valid(buf) {
		return "", fmt.Errorf("%w: %s is not valid UTF-8", domain.ErrUnsupportedType, filepath.Base(path))
	}
	return string(buf), nil
}
