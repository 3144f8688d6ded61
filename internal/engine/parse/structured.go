package parse

import (
	"fmt"
	"strings"
)

// DocDecoder decodes one whole self-describing document into records.
// Decoders must treat schema violations (missing expected fields) as errors
// even when the input is syntactically valid.
type DocDecoder func(data []byte) ([]Record, error)

// StructuredExtractor parses the entire text as a single document.
type StructuredExtractor struct {
	decode DocDecoder
}

// NewStructuredExtractor creates an extractor around a document decoder.
func NewStructuredExtractor(decode DocDecoder) *StructuredExtractor {
	return &StructuredExtractor{decode: decode}
}

// Extract implements Extractor. Strict mode requires the whole input to
// decode. Lenient mode behaves identically: a partially decoded document is
// worse than an honest failure, so the Controller falls back to a pattern
// extractor over the same text instead.
func (e *StructuredExtractor) Extract(text string, _ Mode) ([]Record, []string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, nil, nil
	}

	records, err := e.decode([]byte(trimmed))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformedStructured, err)
	}
	return records, nil, nil
}
