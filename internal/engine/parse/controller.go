package parse

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// DefaultMaxPassthrough is the byte ceiling applied to passthrough text
// when the Controller is constructed with no explicit limit.
const DefaultMaxPassthrough = 64 * 1024

// NoOutputSentinel is rendered for empty input at the Full tier.
const NoOutputSentinel = "(no output)"

// Spec binds one tool to its extraction pipeline. Specs come from the tool
// registry; per-tool differences reduce to the data inside the extractor
// (templates, phase tables, decoders), never to controller branches.
type Spec struct {
	Tool     string
	Strategy Strategy
	// Extractor is tried first in strict mode.
	Extractor Extractor
	// Fallback, when set, is used for the lenient retry instead of
	// Extractor. Structured and streaming tools set a pattern extractor
	// here, since re-running a broken document parse leniently cannot
	// recover anything.
	Fallback Extractor
	// Render builds the final text from extracted records.
	Render Renderer
}

// Controller orchestrates the three-tier fallback around an extractor.
// It is stateless and safe for concurrent use; each call owns its input.
type Controller struct {
	// MaxPassthrough bounds rendered passthrough text in bytes.
	// Zero means DefaultMaxPassthrough.
	MaxPassthrough int
}

// NewController creates a Controller with the given passthrough ceiling.
func NewController(maxPassthrough int) *Controller {
	return &Controller{MaxPassthrough: maxPassthrough}
}

// Parse transforms raw output according to the tool's spec. It always
// returns a result: extraction failures escalate to lower tiers instead of
// propagating. The result's exit code always equals raw.ExitCode.
func (c *Controller) Parse(raw RawOutput, spec Spec) ParseResult {
	text := combinedText(raw)

	if strings.TrimSpace(text) == "" {
		return ParseResult{
			Tier:     TierFull,
			Rendered: c.finishRendered(NoOutputSentinel, nil, raw.ExitCode),
			ExitCode: raw.ExitCode,
		}
	}

	// Tier 1: strict extraction with the declared extractor.
	records, warnings, err := spec.Extractor.Extract(text, Strict)
	if err == nil {
		return ParseResult{
			Tier:     TierFull,
			Records:  records,
			Rendered: c.finishRendered(spec.Render(records, raw.ExitCode), records, raw.ExitCode),
			ExitCode: raw.ExitCode,
			Warnings: warnings,
		}
	}
	strictErr := err

	// Tier 2: lenient retry, possibly with a pattern fallback extractor.
	fallback := spec.Fallback
	if fallback == nil {
		fallback = spec.Extractor
	}
	records, warnings, err = fallback.Extract(text, Lenient)
	if err == nil && len(records) > 0 {
		allWarnings := append([]string{
			fmt.Sprintf("degraded parse: %v", strictErr),
		}, warnings...)
		rendered := degradedMarker + "\n" + spec.Render(records, raw.ExitCode)
		return ParseResult{
			Tier:     TierDegraded,
			Records:  records,
			Rendered: c.finishRendered(rendered, records, raw.ExitCode),
			ExitCode: raw.ExitCode,
			Warnings: allWarnings,
		}
	}

	// Tier 3: passthrough of the raw text, bounded.
	result := ParseResult{
		Tier:     TierPassthrough,
		Rendered: c.truncate(text),
		ExitCode: raw.ExitCode,
		Warnings: []string{fmt.Sprintf("parse failed, raw output follows: %v", strictErr)},
	}
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("lenient parse failed: %v", err))
	}
	return result
}

const degradedMarker = "⚠ partial parse — summary may be incomplete"

// finishRendered surfaces a non-zero exit code prominently when no
// error-kind record already carries the failure signal. Suppressing failure
// is the one error class this engine must never commit.
func (c *Controller) finishRendered(rendered string, records []Record, exitCode int) string {
	if exitCode == 0 || hasKind(records, KindError) {
		return rendered
	}
	return fmt.Sprintf("✗ exit %d\n%s", exitCode, rendered)
}

func (c *Controller) truncate(text string) string {
	limit := c.MaxPassthrough
	if limit <= 0 {
		limit = DefaultMaxPassthrough
	}
	if len(text) <= limit {
		return text
	}
	cut := limit
	// Never split a multibyte rune at the boundary.
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + fmt.Sprintf("\n--- truncated at %d bytes ---", limit)
}

func hasKind(records []Record, kind Kind) bool {
	for _, r := range records {
		if r.Kind == kind {
			return true
		}
	}
	return false
}

// combinedText joins stdout and stderr in that order, the same order a
// terminal user would scan them. Passthrough rendering must contain both.
func combinedText(raw RawOutput) string {
	out := string(raw.Stdout)
	errText := string(raw.Stderr)
	switch {
	case out == "":
		return errText
	case errText == "":
		return out
	default:
		if !strings.HasSuffix(out, "\n") {
			out += "\n"
		}
		return out + errText
	}
}
