package parse

import "strings"

// PlainExtractor turns every non-blank line into an informational record.
// It is used for tools whose output is already line-oriented prose (logs,
// one-line status responses) where the value lives in deduplication and
// bounded rendering, not in parsing.
type PlainExtractor struct{}

// NewPlainExtractor creates a PlainExtractor.
func NewPlainExtractor() *PlainExtractor {
	return &PlainExtractor{}
}

// Extract implements Extractor. It cannot fail in either mode.
func (e *PlainExtractor) Extract(text string, _ Mode) ([]Record, []string, error) {
	var records []Record
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		records = append(records, Record{
			Kind:    KindInfo,
			Message: trimmed,
			Raw:     line,
		})
	}
	return records, nil, nil
}
