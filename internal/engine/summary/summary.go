// Package summary condenses opaque command output with an LLM, with a
// heuristic fallback when no API key is configured.
package summary

import (
	"context"
	"fmt"
	"strings"

	"github.com/sahilmgandhi/rtk/internal/engine/aggregate"
	"github.com/sahilmgandhi/rtk/internal/engine/parse"
)

// Client abstracts LLM summarization for testability.
type Client interface {
	// Summarize condenses raw command output into a short report.
	Summarize(ctx context.Context, command, output string) (string, error)
}

const promptTemplate = `You are condensing terminal output for a coding agent with a small context window.
Command: %s

Summarize the output below in at most 10 short lines. Keep every error message,
failing test name, file path and exit status verbatim. Drop progress bars,
timestamps, download noise and repeated lines. Respond with plain text only.

%s`

// BuildPrompt constructs the summarization prompt.
func BuildPrompt(command, output string) string {
	return fmt.Sprintf(promptTemplate, command, output)
}

// maxPromptBytes caps how much raw output goes to the model. The tail is
// kept because failure detail tends to be there.
const maxPromptBytes = 32 * 1024

// ClampOutput trims output to fit the prompt budget, keeping the tail.
func ClampOutput(output string) string {
	if len(output) <= maxPromptBytes {
		return output
	}
	trimmed := output[len(output)-maxPromptBytes:]
	if i := strings.IndexByte(trimmed, '\n'); i >= 0 {
		trimmed = trimmed[i+1:]
	}
	return "(earlier output omitted)\n" + trimmed
}

// Heuristic is a no-network fallback: it runs the plain extractor,
// deduplicates, and keeps lines that look like failures.
type Heuristic struct {
	MaxLines int
}

// Summarize implements Client without calling any API.
func (h *Heuristic) Summarize(_ context.Context, _, output string) (string, error) {
	maxLines := h.MaxLines
	if maxLines <= 0 {
		maxLines = 10
	}

	records, _, _ := parse.NewPlainExtractor().Extract(output, parse.Lenient)
	counted := aggregate.Dedupe(records)

	var picked []aggregate.Counted
	for _, c := range counted {
		if looksImportant(c.Record.Message) {
			picked = append(picked, c)
		}
	}
	if len(picked) == 0 {
		// Nothing failure-shaped; fall back to the last lines.
		start := len(counted) - maxLines
		if start < 0 {
			start = 0
		}
		picked = counted[start:]
	}
	if len(picked) > maxLines {
		picked = picked[:maxLines]
	}

	var b strings.Builder
	for _, c := range picked {
		b.WriteString(c.Record.Message)
		if c.Count > 1 {
			fmt.Fprintf(&b, " ×%d", c.Count)
		}
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

var importantMarkers = []string{
	"error", "fail", "fatal", "panic", "warning", "denied",
	"not found", "exception", "refused", "timeout",
}

func looksImportant(msg string) bool {
	lower := strings.ToLower(msg)
	for _, m := range importantMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}
