package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/verity/internal/core/domain"
	"github.com/custodia-labs/verity/internal/core/ports/driven"
	"github.com/custodia-labs/verity/internal/core/ports/driving"
	"github.com/custodia-labs/verity/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService extracts document text through a reader.
type DocumentService struct {
	reader driven.DocumentReader
}

// NewDocumentService creates a new document service.
func NewDocumentService(reader driven.DocumentReader) *DocumentService {
	return &DocumentService{reader: reader}
}

// Load returns the text of the file at path.
func (s *DocumentService) Load(ctx context.Context, path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("%w: path is required", domain.ErrInvalidInput)
	}
	if !s.reader.Supports(path) {
		return "", fmt.Errorf("load %s: %w", path, domain.ErrUnsupportedType)
	}

	text, err := s.reader.Read(ctx, path)
	if err != nil {
		return "", fmt.Errorf("load %s: %w", path, err)
	}
	logger.Debug("loaded %s (%d bytes)", path, len(text))
	return text, nil
}

// Supports reports whether the reader handles the file type.
func (s *DocumentService) Supports(path string) bool {
	return s.reader.Supports(path)
}
