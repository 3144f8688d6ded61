// Package render turns extracted record sequences into the final compact
// text. Each renderer is a pure function of the records; exit-code
// decoration and tier markers belong to the parse Controller.
package render

import (
	"fmt"
	"strings"

	"github.com/sahilmgandhi/rtk/internal/engine/aggregate"
	"github.com/sahilmgandhi/rtk/internal/engine/parse"
)

// FailuresOnly renders error records plus trailing summary records and
// drops everything else. Used for test runners, where passing output is
// pure token waste.
func FailuresOnly() parse.Renderer {
	return func(records []parse.Record, exitCode int) string {
		var b strings.Builder
		failures := 0
		for _, rec := range records {
			if rec.Kind != parse.KindError {
				continue
			}
			failures++
			b.WriteString("✗ ")
			if loc := formatLoc(rec.Loc); loc != "" {
				b.WriteString(loc)
				b.WriteString(" ")
			}
			if rec.Code != "" {
				b.WriteString(rec.Code)
				b.WriteString(" ")
			}
			b.WriteString(firstLine(rec.Message))
			b.WriteString("\n")
		}

		wroteSummary := false
		for _, rec := range records {
			if rec.Kind == parse.KindSummary {
				b.WriteString(rec.Message)
				b.WriteString("\n")
				wroteSummary = true
			}
		}
		if failures == 0 && !wroteSummary {
			return "all passed"
		}
		return strings.TrimRight(b.String(), "\n")
	}
}

// GroupedByFile renders diagnostics grouped by file in first-appearance
// order, at most perFile entries per file. Used for linters and compilers.
func GroupedByFile(perFile int) parse.Renderer {
	return func(records []parse.Record, exitCode int) string {
		var diags, summaries []parse.Record
		for _, rec := range records {
			if rec.Kind == parse.KindSummary {
				summaries = append(summaries, rec)
			} else {
				diags = append(diags, rec)
			}
		}

		var b strings.Builder
		for _, group := range aggregate.GroupByFile(diags) {
			name := group.Key
			if name == "" {
				name = "(general)"
			}
			fmt.Fprintf(&b, "%s (%d)\n", name, len(group.Records))
			for i, rec := range group.Records {
				if perFile > 0 && i == perFile {
					fmt.Fprintf(&b, "  ... +%d more\n", len(group.Records)-perFile)
					break
				}
				b.WriteString("  ")
				b.WriteString(formatEntry(rec))
				b.WriteString("\n")
			}
		}
		for _, rec := range summaries {
			b.WriteString(rec.Message)
			b.WriteString("\n")
		}
		if b.Len() == 0 {
			return "clean"
		}
		return strings.TrimRight(b.String(), "\n")
	}
}

// OneLine renders each record's message on one line, capped at max lines.
// Used for version-control status/log style output.
func OneLine(max int) parse.Renderer {
	return func(records []parse.Record, exitCode int) string {
		var b strings.Builder
		for i, rec := range records {
			if max > 0 && i == max {
				fmt.Fprintf(&b, "... +%d more\n", len(records)-max)
				break
			}
			b.WriteString(firstLine(rec.Message))
			b.WriteString("\n")
		}
		if b.Len() == 0 {
			return parse.NoOutputSentinel
		}
		return strings.TrimRight(b.String(), "\n")
	}
}

// DedupedCounts collapses repeated records and annotates counts. Used for
// log output, where the same line often repeats thousands of times.
func DedupedCounts(max int) parse.Renderer {
	return func(records []parse.Record, exitCode int) string {
		collapsed := aggregate.Dedupe(records)
		var b strings.Builder
		for i, c := range collapsed {
			if max > 0 && i == max {
				fmt.Fprintf(&b, "... +%d more\n", len(collapsed)-max)
				break
			}
			b.WriteString(aggregate.NormalizeMessage(c.Record.Message))
			if c.Count > 1 {
				fmt.Fprintf(&b, " ×%d", c.Count)
			}
			b.WriteString("\n")
		}
		if b.Len() == 0 {
			return parse.NoOutputSentinel
		}
		return strings.TrimRight(b.String(), "\n")
	}
}

func formatEntry(rec parse.Record) string {
	var parts []string
	if rec.Loc != nil && (rec.Loc.Line > 0 || rec.Loc.Column > 0) {
		loc := fmt.Sprintf("L%d", rec.Loc.Line)
		if rec.Loc.Column > 0 {
			loc += fmt.Sprintf(":%d", rec.Loc.Column)
		}
		parts = append(parts, loc)
	}
	if rec.Kind == parse.KindWarning {
		parts = append(parts, "warn")
	}
	if rec.Code != "" {
		parts = append(parts, "["+rec.Code+"]")
	}
	parts = append(parts, firstLine(rec.Message))
	return strings.Join(parts, " ")
}

func formatLoc(loc *parse.Location) string {
	if loc == nil || loc.File == "" {
		return ""
	}
	s := loc.File
	if loc.Line > 0 {
		s += fmt.Sprintf(":%d", loc.Line)
	}
	return s
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
