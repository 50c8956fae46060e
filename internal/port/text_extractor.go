package port

import "context"

// TextExtractor converts a file of one MIME type into plain text.
type TextExtractor interface {
	Extract(ctx context.Context, data []byte) (string, error)
	Supports(mimeType string) bool
}
