package parse

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"
)

// LineDecoder accumulates newline-delimited events and builds records once
// the stream ends. A fresh decoder is created per extraction, so decoders
// may keep per-run state (e.g. output buffered per test name).
type LineDecoder interface {
	// Line feeds one non-blank line. An error marks the line as malformed.
	Line(data []byte) error
	// Finish returns the records accumulated from all accepted lines.
	Finish() []Record
}

// StreamExtractor parses text as a sequence of independent self-describing
// records, one per line.
type StreamExtractor struct {
	newDecoder func() LineDecoder
}

// NewStreamExtractor creates an extractor around a line decoder factory.
func NewStreamExtractor(newDecoder func() LineDecoder) *StreamExtractor {
	return &StreamExtractor{newDecoder: newDecoder}
}

// maxStreamLine bounds a single event line. go test and similar emitters
// stay far below this; anything larger is not an event stream.
const maxStreamLine = 4 * 1024 * 1024

// Extract implements Extractor.
//
// In strict mode a single malformed line fails the whole extraction —
// correctness over resilience at this tier. In lenient mode malformed lines
// are skipped and counted in the returned warnings.
func (e *StreamExtractor) Extract(text string, mode Mode) ([]Record, []string, error) {
	dec := e.newDecoder()

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), maxStreamLine)

	skipped := 0
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		if err := dec.Line(line); err != nil {
			if mode == Strict {
				return nil, nil, fmt.Errorf("%w: line %d: %v", ErrMalformedStreamLine, lineNo, err)
			}
			skipped++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("%w: scanning input: %v", ErrMalformedStreamLine, err)
	}

	var warnings []string
	if skipped > 0 {
		if skipped == 1 {
			warnings = append(warnings, "1 line skipped")
		} else {
			warnings = append(warnings, fmt.Sprintf("%d lines skipped", skipped))
		}
	}

	return dec.Finish(), warnings, nil
}
