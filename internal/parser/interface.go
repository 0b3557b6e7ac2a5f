package parser

import "context"

// Parser extracts plain text from an uploaded document
type Parser interface {
	// Extract returns the document's plain text
	Extract(ctx context.Context, data []byte) (string, error)

	// SupportedFormats returns the file extensions this parser handles
	SupportedFormats() []string
}
