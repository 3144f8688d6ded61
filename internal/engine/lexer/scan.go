package lexer

import "strings"

// SegmentKind classifies a scanned span.
type SegmentKind int

const (
	SegCode SegmentKind = iota
	SegLineComment
	SegBlockComment
	SegString
)

// Segment is a half-open byte span [Start, End) of uniform kind. Scan
// returns contiguous segments covering the whole input.
type Segment struct {
	Kind  SegmentKind
	Start int
	End   int
}

// Scan performs a single lexical pass over src. It is resilient to invalid
// source: unterminated strings end at the next unescaped newline, and
// unterminated comments or raw strings run to EOF.
func Scan(src string, lang *Language) []Segment {
	var segs []Segment
	codeStart := 0
	i := 0

	emit := func(kind SegmentKind, start, end int) {
		if start > codeStart {
			segs = append(segs, Segment{Kind: SegCode, Start: codeStart, End: start})
		}
		segs = append(segs, Segment{Kind: kind, Start: start, End: end})
		codeStart = end
	}

	for i < len(src) {
		c := src[i]

		if lang.TripleQuotes && (c == '"' || c == '\'') && hasTriple(src, i, c) {
			end := scanTriple(src, i+3, c)
			emit(SegString, i, end)
			i = end
			continue
		}

		if lang.RawDelim != 0 && c == lang.RawDelim {
			end := scanUntilByte(src, i+1, lang.RawDelim)
			emit(SegString, i, end)
			i = end
			continue
		}

		if isQuote(lang.NoEscapeQuotes, c) {
			end := scanUntilByte(src, i+1, c)
			emit(SegString, i, end)
			i = end
			continue
		}

		if isQuote(lang.Quotes, c) {
			end := scanQuoted(src, i+1, c)
			emit(SegString, i, end)
			i = end
			continue
		}

		if marker := matchMarker(src, i, lang.LineComments); marker != "" {
			end := i
			for end < len(src) && src[end] != '\n' {
				end++
			}
			emit(SegLineComment, i, end)
			i = end
			continue
		}

		if open, clos := matchBlock(src, i, lang.BlockComments); open != "" {
			end := scanBlock(src, i+len(open), open, clos, lang.NestedBlocks)
			emit(SegBlockComment, i, end)
			i = end
			continue
		}

		i++
	}

	if codeStart < len(src) {
		segs = append(segs, Segment{Kind: SegCode, Start: codeStart, End: len(src)})
	}
	return segs
}

func isQuote(quotes []byte, c byte) bool {
	for _, q := range quotes {
		if q == c {
			return true
		}
	}
	return false
}

func hasTriple(src string, i int, q byte) bool {
	return i+2 < len(src) && src[i+1] == q && src[i+2] == q
}

func scanTriple(src string, i int, q byte) int {
	for i < len(src) {
		if src[i] == '\\' {
			i += 2
			continue
		}
		if src[i] == q && hasTriple(src, i, q) {
			return i + 3
		}
		i++
	}
	return len(src)
}

// scanUntilByte scans to the byte after the next occurrence of delim,
// with no escape processing.
func scanUntilByte(src string, i int, delim byte) int {
	for i < len(src) {
		if src[i] == delim {
			return i + 1
		}
		i++
	}
	return len(src)
}

// scanQuoted scans a quoted literal with backslash escapes. An unescaped
// newline terminates the literal, which keeps the scanner sane on broken
// input.
func scanQuoted(src string, i int, q byte) int {
	for i < len(src) {
		switch src[i] {
		case '\\':
			i += 2
			continue
		case q:
			return i + 1
		case '\n':
			return i
		}
		i++
	}
	return len(src)
}

func matchMarker(src string, i int, markers []string) string {
	for _, m := range markers {
		if strings.HasPrefix(src[i:], m) {
			return m
		}
	}
	return ""
}

func matchBlock(src string, i int, blocks [][2]string) (string, string) {
	for _, b := range blocks {
		if strings.HasPrefix(src[i:], b[0]) {
			return b[0], b[1]
		}
	}
	return "", ""
}

func scanBlock(src string, i int, open, clos string, nested bool) int {
	depth := 1
	for i < len(src) {
		if strings.HasPrefix(src[i:], clos) {
			depth--
			i += len(clos)
			if depth == 0 {
				return i
			}
			continue
		}
		if nested && strings.HasPrefix(src[i:], open) {
			depth++
			i += len(open)
			continue
		}
		i++
	}
	return len(src)
}

// CodeMask returns a per-byte mask that is true where src is code — not a
// comment and not inside any literal. Brace and indentation depth tracking
// must only consider masked bytes.
func CodeMask(src string, lang *Language) []bool {
	mask := make([]bool, len(src))
	for _, seg := range Scan(src, lang) {
		if seg.Kind != SegCode {
			continue
		}
		for i := seg.Start; i < seg.End; i++ {
			mask[i] = true
		}
	}
	return mask
}
