package lexer

import "testing"

func mustLang(t *testing.T, name string) *Language {
	t.Helper()
	lang, ok := ByName(name)
	if !ok {
		t.Fatalf("unknown language %q", name)
	}
	return lang
}

// kindsOf extracts the segment kinds in order, ignoring code segments.
func kindsOf(segs []Segment) []SegmentKind {
	var out []SegmentKind
	for _, s := range segs {
		if s.Kind != SegCode {
			out = append(out, s.Kind)
		}
	}
	return out
}

func TestScan_SegmentsCoverInput(t *testing.T) {
	src := "x := 1 // set x\ns := \"hi\"\n/* block */\n"
	segs := Scan(src, mustLang(t, "go"))

	pos := 0
	for _, s := range segs {
		if s.Start != pos {
			t.Fatalf("gap or overlap at %d (segment starts %d)", pos, s.Start)
		}
		if s.End <= s.Start {
			t.Fatalf("empty segment at %d", s.Start)
		}
		pos = s.End
	}
	if pos != len(src) {
		t.Fatalf("segments cover %d of %d bytes", pos, len(src))
	}
}

func TestScan_CommentMarkerInsideString(t *testing.T) {
	src := `s := "not // a comment"` + "\n"
	segs := Scan(src, mustLang(t, "go"))

	for _, s := range segs {
		if s.Kind == SegLineComment {
			t.Fatalf("comment recognized inside string literal: %q", src[s.Start:s.End])
		}
	}
}

func TestScan_QuoteInsideComment(t *testing.T) {
	src := "// it's fine\nx := 1\n"
	segs := Scan(src, mustLang(t, "go"))

	kinds := kindsOf(segs)
	if len(kinds) != 1 || kinds[0] != SegLineComment {
		t.Fatalf("expected single line comment, got %v", kinds)
	}
	if src[segs[0].Start:segs[0].End] != "// it's fine" {
		t.Errorf("comment span wrong: %q", src[segs[0].Start:segs[0].End])
	}
}

func TestScan_EscapedQuote(t *testing.T) {
	src := `s := "she said \"hi\"" // trailing` + "\n"
	segs := Scan(src, mustLang(t, "go"))

	var str, comment string
	for _, s := range segs {
		switch s.Kind {
		case SegString:
			str = src[s.Start:s.End]
		case SegLineComment:
			comment = src[s.Start:s.End]
		}
	}
	if str != `"she said \"hi\""` {
		t.Errorf("string span wrong: %q", str)
	}
	if comment != "// trailing" {
		t.Errorf("comment span wrong: %q", comment)
	}
}

func TestScan_GoRawString(t *testing.T) {
	src := "s := `raw \\ // not comment`\n"
	segs := Scan(src, mustLang(t, "go"))

	for _, s := range segs {
		if s.Kind == SegLineComment {
			t.Fatal("comment recognized inside raw string")
		}
		if s.Kind == SegString && src[s.Start:s.End] != "`raw \\ // not comment`" {
			t.Errorf("raw string span wrong: %q", src[s.Start:s.End])
		}
	}
}

func TestScan_RustNestedBlockComments(t *testing.T) {
	src := "/* outer /* inner */ still comment */ let x = 1;\n"
	segs := Scan(src, mustLang(t, "rust"))

	if segs[0].Kind != SegBlockComment {
		t.Fatalf("expected block comment first, got %v", segs[0].Kind)
	}
	want := "/* outer /* inner */ still comment */"
	if got := src[segs[0].Start:segs[0].End]; got != want {
		t.Errorf("nested block span wrong: %q", got)
	}
}

func TestScan_PythonTripleQuote(t *testing.T) {
	src := `x = """doc
# not a comment
"""` + "\ny = 1\n"
	segs := Scan(src, mustLang(t, "python"))

	for _, s := range segs {
		if s.Kind == SegLineComment {
			t.Fatal("comment recognized inside triple-quoted string")
		}
	}
}

func TestScan_ShellSingleQuoteNoEscape(t *testing.T) {
	src := `echo 'a \' "b"` + "\n"
	segs := Scan(src, mustLang(t, "shell"))

	// The backslash does not escape inside shell single quotes, so the
	// literal ends at the second quote and "b" opens a fresh double-quoted
	// string.
	var strs []string
	for _, s := range segs {
		if s.Kind == SegString {
			strs = append(strs, src[s.Start:s.End])
		}
	}
	if len(strs) != 2 || strs[0] != `'a \'` || strs[1] != `"b"` {
		t.Errorf("unexpected string spans: %v", strs)
	}
}

func TestScan_UnterminatedStringEndsAtNewline(t *testing.T) {
	src := "s := \"broken\nx := 1 // real comment\n"
	segs := Scan(src, mustLang(t, "go"))

	found := false
	for _, s := range segs {
		if s.Kind == SegLineComment && src[s.Start:s.End] == "// real comment" {
			found = true
		}
	}
	if !found {
		t.Error("scanner did not recover after unterminated string")
	}
}

func TestCodeMask(t *testing.T) {
	src := `x := "{" // {`
	mask := CodeMask(src, mustLang(t, "go"))

	if len(mask) != len(src) {
		t.Fatalf("mask length %d, want %d", len(mask), len(src))
	}
	// Neither brace is code: one is in a string, one in a comment.
	for i := range src {
		if src[i] == '{' && mask[i] {
			t.Errorf("byte %d wrongly masked as code", i)
		}
	}
	if !mask[0] {
		t.Error("identifier byte should be code")
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		path string
		name string
		ok   bool
	}{
		{"main.go", "go", true},
		{"lib.rs", "rust", true},
		{"app.TSX", "typescript", true},
		{"notes.txt", "", false},
		{"Makefile", "", false},
	}
	for _, tt := range tests {
		lang, ok := Detect(tt.path)
		if ok != tt.ok {
			t.Errorf("Detect(%q) ok = %v, want %v", tt.path, ok, tt.ok)
			continue
		}
		if ok && lang.Name != tt.name {
			t.Errorf("Detect(%q) = %s, want %s", tt.path, lang.Name, tt.name)
		}
	}
}
