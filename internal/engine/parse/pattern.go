package parse

import (
	"regexp"
	"strconv"
	"strings"
)

// Template is one regex rule producing records of a fixed kind. Capture
// groups are bound by name: file, line, col, code, msg. Templates are tried
// in declaration order and the first match wins; overlapping templates are
// a configuration bug, not a runtime condition.
type Template struct {
	Kind Kind
	Re   *regexp.Regexp
}

// Apply matches the template against one line. The second return value
// reports whether the template matched.
func (t Template) Apply(line string) (Record, bool) {
	m := t.Re.FindStringSubmatch(line)
	if m == nil {
		return Record{}, false
	}

	rec := Record{Kind: t.Kind, Raw: line}
	var loc Location

	for i, name := range t.Re.SubexpNames() {
		if i == 0 || i >= len(m) || m[i] == "" {
			continue
		}
		switch name {
		case "file":
			loc.File = m[i]
		case "line":
			loc.Line, _ = strconv.Atoi(m[i])
		case "col":
			loc.Column, _ = strconv.Atoi(m[i])
		case "code":
			rec.Code = m[i]
		case "msg":
			rec.Message = strings.TrimSpace(m[i])
		}
	}

	if loc.File != "" || loc.Line != 0 {
		rec.Loc = &loc
	}
	if rec.Message == "" {
		rec.Message = strings.TrimSpace(line)
	}
	return rec, true
}

// PatternExtractor extracts records by matching each line against an ordered
// template list. Unmatched lines are not records; they only survive through
// the passthrough renderer as context.
type PatternExtractor struct {
	templates []Template
	// lenient templates are additionally tried in lenient mode, after the
	// declared ones. They are loose keyword matchers for degraded parses.
	lenient []Template
}

// NewPatternExtractor creates an extractor over ordered templates.
func NewPatternExtractor(templates []Template) *PatternExtractor {
	return &PatternExtractor{templates: templates}
}

// WithLenient adds extra templates tried only in lenient mode.
func (e *PatternExtractor) WithLenient(templates []Template) *PatternExtractor {
	e.lenient = templates
	return e
}

// Extract implements Extractor. Strict mode fails with ErrNoPatternMatch
// when non-blank input produced zero records; strict can therefore never
// return fewer records than lenient on the same input.
func (e *PatternExtractor) Extract(text string, mode Mode) ([]Record, []string, error) {
	templates := e.templates
	if mode == Lenient {
		templates = append(append([]Template{}, e.templates...), e.lenient...)
	}

	var records []Record
	blank := true
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		blank = false
		for _, t := range templates {
			if rec, ok := t.Apply(line); ok {
				records = append(records, rec)
				break
			}
		}
	}

	if mode == Strict && len(records) == 0 && !blank {
		return nil, nil, ErrNoPatternMatch
	}
	return records, nil, nil
}

// GenericDiagnosticTemplates is the shared lenient fallback used when a
// structured or streaming parse fails: loose matchers for the common
// file:line diagnostic shapes and bare error/warning keywords.
func GenericDiagnosticTemplates() []Template {
	return []Template{
		{Kind: KindError, Re: regexp.MustCompile(`^(?P<file>[^\s:]+\.\w+):(?P<line>\d+)(?::(?P<col>\d+))?:?\s*(?:error|ERROR|E)\b[:\s]*(?P<msg>.*)$`)},
		{Kind: KindWarning, Re: regexp.MustCompile(`^(?P<file>[^\s:]+\.\w+):(?P<line>\d+)(?::(?P<col>\d+))?:?\s*(?:warning|WARNING|W)\b[:\s]*(?P<msg>.*)$`)},
		{Kind: KindError, Re: regexp.MustCompile(`(?i)^\s*(?:error|fatal|panic|exception)\b[:\s]*(?P<msg>.*)$`)},
		{Kind: KindWarning, Re: regexp.MustCompile(`(?i)^\s*(?:warning|warn)\b[:\s]*(?P<msg>.*)$`)},
	}
}
