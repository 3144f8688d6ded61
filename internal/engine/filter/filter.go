// Package filter implements language-aware source reduction for code
// reading. Three aggressiveness levels are supported; filtering is a pure
// function of (text, language, level) and is idempotent for Minimal and
// Aggressive.
package filter

import (
	"fmt"
	"strings"

	"github.com/sahilmgandhi/rtk/internal/engine/lexer"
)

// Level controls how much of the source is stripped.
type Level string

const (
	// LevelNone is the identity transform.
	LevelNone Level = "none"
	// LevelMinimal strips comments and collapses blank line runs. String
	// and character literal contents are never altered.
	LevelMinimal Level = "minimal"
	// LevelAggressive additionally replaces function bodies with a
	// one-line elision marker, preserving the signature and the
	// declaration braces.
	LevelAggressive Level = "aggressive"
)

// ParseLevel converts a user-supplied string to a Level.
func ParseLevel(s string) (Level, error) {
	switch Level(strings.ToLower(s)) {
	case LevelNone:
		return LevelNone, nil
	case LevelMinimal:
		return LevelMinimal, nil
	case LevelAggressive:
		return LevelAggressive, nil
	}
	return "", fmt.Errorf("unknown filter level %q (want none, minimal, or aggressive)", s)
}

// elisionMarker replaces a function body. It is deliberately not a comment
// so that re-filtering already-filtered text leaves it in place.
const elisionMarker = "..."

// Source filters text for the named language. Unknown or unsupported
// languages behave as LevelNone regardless of the requested level: a
// skipped filter beats a corrupted one.
func Source(text, language string, level Level) string {
	lang, ok := lexer.ByName(language)
	if !ok || level == LevelNone {
		return text
	}

	out := minimal(text, lang)
	if level == LevelAggressive && lang.FuncRe != nil {
		if lang.Indent {
			out = elideIndentBodies(out, lang)
		} else {
			out = elideBraceBodies(out, lang)
		}
	}
	return out
}

// SourceFile filters text using the language detected from the file path.
func SourceFile(text, path string, level Level) string {
	lang, ok := lexer.Detect(path)
	if !ok {
		return text
	}
	return Source(text, lang.Name, level)
}

// minimal drops comment segments, trims trailing whitespace, and collapses
// runs of blank lines to a single blank line.
func minimal(text string, lang *lexer.Language) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, seg := range lexer.Scan(text, lang) {
		switch seg.Kind {
		case lexer.SegLineComment:
			// A shebang lexes as a line comment but is the interpreter
			// directive, not commentary. Keep it.
			if seg.Start == 0 && strings.HasPrefix(text, "#!") {
				b.WriteString(text[seg.Start:seg.End])
			}
		case lexer.SegBlockComment:
			// Keep interior newlines so later line handling stays aligned
			// with the original layout; the blank lines collapse below.
			b.WriteString(strings.Map(func(r rune) rune {
				if r == '\n' {
					return '\n'
				}
				return -1
			}, text[seg.Start:seg.End]))
		default:
			b.WriteString(text[seg.Start:seg.End])
		}
	}

	lines := strings.Split(b.String(), "\n")
	out := make([]string, 0, len(lines))
	blankRun := 0
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			blankRun++
			if blankRun > 1 {
				continue
			}
		} else {
			blankRun = 0
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// elideBraceBodies replaces multi-line function bodies with the elision
// marker for brace-delimited languages. Depth tracking only counts braces
// in code segments, so braces inside string literals never perturb it.
func elideBraceBodies(text string, lang *lexer.Language) string {
	mask := lexer.CodeMask(text, lang)
	lines, offsets := splitWithOffsets(text)

	var out []string
	i := 0
	for i < len(lines) {
		line := lines[i]
		if !lang.FuncRe.MatchString(line) {
			out = append(out, line)
			i++
			continue
		}

		// The opening brace may sit on the signature line or the next one.
		searchEnd := len(text)
		if i+2 < len(offsets) {
			searchEnd = offsets[i+2]
		}
		bracePos := findCodeByte(text, mask, offsets[i], searchEnd, '{')
		if bracePos < 0 {
			out = append(out, line)
			i++
			continue
		}

		closePos := matchBrace(text, mask, bracePos)
		if closePos < 0 {
			out = append(out, line)
			i++
			continue
		}

		braceLine := lineAt(offsets, bracePos)
		closeLine := lineAt(offsets, closePos)
		if closeLine == braceLine {
			// Body already fits on the signature line; nothing to elide.
			for ; i <= braceLine; i++ {
				out = append(out, lines[i])
			}
			continue
		}

		for ; i <= braceLine; i++ {
			out = append(out, lines[i])
		}
		out = append(out, bodyIndent(lines, braceLine+1, closeLine)+elisionMarker)
		out = append(out, lines[closeLine])
		i = closeLine + 1
	}
	return strings.Join(out, "\n")
}

// elideIndentBodies replaces function bodies for indentation-delimited
// languages. A line that starts inside a multi-line string literal is part
// of the body regardless of its visual indentation.
func elideIndentBodies(text string, lang *lexer.Language) string {
	mask := lexer.CodeMask(text, lang)
	lines, offsets := splitWithOffsets(text)

	var out []string
	i := 0
	for i < len(lines) {
		line := lines[i]
		if !lang.FuncRe.MatchString(line) {
			out = append(out, line)
			i++
			continue
		}

		defIndent := indentWidth(line)
		end := i + 1
		sawBody := false
		for end < len(lines) {
			l := lines[end]
			if strings.TrimSpace(l) == "" {
				end++
				continue
			}
			if insideLiteral(mask, offsets, end) || indentWidth(l) > defIndent {
				sawBody = true
				end++
				continue
			}
			break
		}

		if !sawBody {
			out = append(out, line)
			i++
			continue
		}

		out = append(out, line)
		out = append(out, bodyIndent(lines, i+1, end)+elisionMarker)
		i = end
	}
	return strings.Join(out, "\n")
}

func splitWithOffsets(text string) ([]string, []int) {
	lines := strings.Split(text, "\n")
	offsets := make([]int, len(lines))
	pos := 0
	for i, line := range lines {
		offsets[i] = pos
		pos += len(line) + 1
	}
	return lines, offsets
}

func lineAt(offsets []int, pos int) int {
	line := 0
	for i, off := range offsets {
		if off > pos {
			break
		}
		line = i
	}
	return line
}

func findCodeByte(text string, mask []bool, from, to int, want byte) int {
	if to > len(text) {
		to = len(text)
	}
	for i := from; i < to; i++ {
		if mask[i] && text[i] == want {
			return i
		}
	}
	return -1
}

// matchBrace returns the offset of the brace closing the one at open,
// counting only code bytes. Returns -1 for an unbalanced body.
func matchBrace(text string, mask []bool, open int) int {
	depth := 0
	for i := open; i < len(text); i++ {
		if !mask[i] {
			continue
		}
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// bodyIndent picks the marker indentation from the first non-blank body
// line, so re-filtering reproduces the same output byte for byte.
func bodyIndent(lines []string, from, to int) string {
	for i := from; i < to && i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) != "" {
			return lines[i][:len(lines[i])-len(strings.TrimLeft(lines[i], " \t"))]
		}
	}
	return "\t"
}

func indentWidth(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}

func insideLiteral(mask []bool, offsets []int, line int) bool {
	pos := offsets[line]
	return pos < len(mask) && !mask[pos]
}
