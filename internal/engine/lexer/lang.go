// Package lexer provides per-language lexical scanning: it classifies
// source text into code, comment, and literal segments so that higher
// layers can strip or elide without corrupting syntax. Scanning is purely
// lexical — no parsing, no symbol resolution.
package lexer

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Language describes the lexical surface of one language well enough to
// scan it: comment markers, string forms, escape rules, and how bodies are
// delimited (braces vs indentation).
type Language struct {
	Name string

	LineComments  []string
	BlockComments [][2]string
	// NestedBlocks is true for languages whose block comments nest (Rust).
	NestedBlocks bool

	// Quotes lists the plain string/char delimiters. Escapes apply inside.
	Quotes []byte
	// TripleQuotes enables Python-style """...""" and '''...''' strings.
	TripleQuotes bool
	// RawDelim is a raw-string delimiter with no escape processing
	// (Go's backtick). Zero means none.
	RawDelim byte
	// NoEscapeQuotes lists quotes without backslash escapes (shell '...').
	NoEscapeQuotes []byte

	// Indent is true for indentation-delimited bodies (Python).
	Indent bool
	// FuncRe recognizes a function or method signature line after comment
	// stripping. Languages without one simply never elide bodies.
	FuncRe *regexp.Regexp
}

var languages = map[string]*Language{
	"go": {
		Name:          "go",
		LineComments:  []string{"//"},
		BlockComments: [][2]string{{"/*", "*/"}},
		Quotes:        []byte{'"', '\''},
		RawDelim:      '`',
		FuncRe:        regexp.MustCompile(`^\s*func\b`),
	},
	"rust": {
		Name:          "rust",
		LineComments:  []string{"//"},
		BlockComments: [][2]string{{"/*", "*/"}},
		NestedBlocks:  true,
		Quotes:        []byte{'"'},
		FuncRe:        regexp.MustCompile(`^\s*(?:pub(?:\([^)]*\))?\s+)?(?:const\s+)?(?:async\s+)?(?:unsafe\s+)?fn\s+\w+`),
	},
	"javascript": {
		Name:          "javascript",
		LineComments:  []string{"//"},
		BlockComments: [][2]string{{"/*", "*/"}},
		Quotes:        []byte{'"', '\''},
		RawDelim:      '`',
		FuncRe:        regexp.MustCompile(`^\s*(?:export\s+)?(?:default\s+)?(?:(?:async\s+)?function\b|(?:const|let|var)\s+\w+\s*=\s*(?:async\s*)?\([^)]*\)\s*=>\s*\{\s*$)`),
	},
	"typescript": {
		Name:          "typescript",
		LineComments:  []string{"//"},
		BlockComments: [][2]string{{"/*", "*/"}},
		Quotes:        []byte{'"', '\''},
		RawDelim:      '`',
		FuncRe:        regexp.MustCompile(`^\s*(?:export\s+)?(?:default\s+)?(?:(?:async\s+)?function\b|(?:const|let|var)\s+\w+\s*=\s*(?:async\s*)?\([^)]*\)\s*=>\s*\{\s*$)`),
	},
	"python": {
		Name:         "python",
		LineComments: []string{"#"},
		Quotes:       []byte{'"', '\''},
		TripleQuotes: true,
		Indent:       true,
		FuncRe:       regexp.MustCompile(`^\s*(?:async\s+)?def\s+\w+.*:\s*$`),
	},
	"c": {
		Name:          "c",
		LineComments:  []string{"//"},
		BlockComments: [][2]string{{"/*", "*/"}},
		Quotes:        []byte{'"', '\''},
		FuncRe:        regexp.MustCompile(`^[A-Za-z_][^=;{}]*\([^;{}]*\)\s*\{?\s*$`),
	},
	"cpp": {
		Name:          "cpp",
		LineComments:  []string{"//"},
		BlockComments: [][2]string{{"/*", "*/"}},
		Quotes:        []byte{'"', '\''},
		FuncRe:        regexp.MustCompile(`^[A-Za-z_][^=;{}]*\([^;{}]*\)\s*\{?\s*$`),
	},
	"java": {
		Name:          "java",
		LineComments:  []string{"//"},
		BlockComments: [][2]string{{"/*", "*/"}},
		Quotes:        []byte{'"', '\''},
		FuncRe:        regexp.MustCompile(`^\s*(?:(?:public|private|protected|static|final|synchronized|abstract)\s+)+[\w<>\[\],\s]*\w\s+\w+\s*\([^;{}]*\)`),
	},
	"shell": {
		Name:           "shell",
		LineComments:   []string{"#"},
		Quotes:         []byte{'"'},
		NoEscapeQuotes: []byte{'\''},
		FuncRe:         regexp.MustCompile(`^\s*(?:function\s+)?[\w.-]+\s*\(\)\s*\{?\s*$`),
	},
}

var extensions = map[string]string{
	".go":   "go",
	".rs":   "rust",
	".js":   "javascript",
	".jsx":  "javascript",
	".mjs":  "javascript",
	".cjs":  "javascript",
	".ts":   "typescript",
	".tsx":  "typescript",
	".py":   "python",
	".c":    "c",
	".h":    "c",
	".cc":   "cpp",
	".cpp":  "cpp",
	".hpp":  "cpp",
	".cxx":  "cpp",
	".java": "java",
	".sh":   "shell",
	".bash": "shell",
}

// ByName returns the language definition for a canonical name.
func ByName(name string) (*Language, bool) {
	lang, ok := languages[strings.ToLower(name)]
	return lang, ok
}

// Detect resolves a language from a file path's extension. The second
// return value is false for unknown or unsupported languages; callers are
// expected to degrade to identity behavior in that case.
func Detect(path string) (*Language, bool) {
	name, ok := extensions[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, false
	}
	return languages[name], true
}
