package extractor

import (
	"context"
	"fmt"

	"grantflow/internal/domain"
	"grantflow/internal/port"
)

// Registry dispatches extraction to the first extractor claiming the file's
// MIME type.
type Registry struct {
	extractors []port.TextExtractor
}

// NewRegistry builds a registry over the given extractors, consulted in
// order.
func NewRegistry(extractors ...port.TextExtractor) *Registry {
	return &Registry{extractors: extractors}
}

// Extract converts the file to plain text, or fails with
// ErrUnsupportedFileType when no extractor claims the MIME type.
func (r *Registry) Extract(ctx context.Context, data []byte, mimeType string) (string, error) {
	for _, e := range r.extractors {
		if e.Supports(mimeType) {
			return e.Extract(ctx, data)
		}
	}
	return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedFileType, mimeType)
}
