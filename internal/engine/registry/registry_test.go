package registry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sahilmgandhi/rtk/internal/engine/parse"
)

func TestRegistry_GetOrDefault(t *testing.T) {
	r := NewWithBuiltins()

	spec, ok := r.Get("git-status")
	if !ok {
		t.Fatal("expected git-status builtin")
	}
	if spec.Strategy != parse.StrategyPattern {
		t.Errorf("expected pattern strategy, got %s", spec.Strategy)
	}

	fallback := r.GetOrDefault("no-such-tool")
	if fallback.Tool != "no-such-tool" {
		t.Errorf("expected generic spec carrying the tool name, got %q", fallback.Tool)
	}
	if fallback.Strategy != parse.StrategyPattern {
		t.Errorf("expected pattern strategy for generic spec, got %s", fallback.Strategy)
	}
}

func TestRegistry_RegisterReplaces(t *testing.T) {
	r := NewWithBuiltins()
	custom := parse.Spec{Tool: "git-status", Strategy: parse.StrategyPlain, Extractor: parse.NewPlainExtractor()}
	r.Register(custom)

	spec, _ := r.Get("git-status")
	if spec.Strategy != parse.StrategyPlain {
		t.Errorf("override did not replace builtin, got %s", spec.Strategy)
	}
}

func TestBuiltin_GitStatus(t *testing.T) {
	input := `## main...origin/main
M  internal/engine/parse/controller.go
 M cmd/rtk/commands/root.go
?? notes.md
`
	spec, _ := NewWithBuiltins().Get("git-status")
	res := parse.NewController(0).Parse(parse.RawOutput{Stdout: []byte(input), Tool: "git-status"}, spec)

	if res.Tier != parse.TierFull {
		t.Fatalf("expected full tier, got %s (warnings %v)", res.Tier, res.Warnings)
	}
	if !strings.Contains(res.Rendered, "📌 main...origin/main") {
		t.Errorf("branch line missing: %q", res.Rendered)
	}
	if !strings.Contains(res.Rendered, "✅ staged: 1") {
		t.Errorf("staged bucket wrong: %q", res.Rendered)
	}
	if !strings.Contains(res.Rendered, "📝 modified: 1") {
		t.Errorf("modified bucket wrong: %q", res.Rendered)
	}
	if !strings.Contains(res.Rendered, "❓ untracked: 1") {
		t.Errorf("untracked bucket wrong: %q", res.Rendered)
	}
}

func TestBuiltin_Ls(t *testing.T) {
	input := `total 48
-rw-r--r--  1 user  staff  1234 Jan  1 12:00 main.go
drwxr-xr-x  2 user  staff    64 Jan  1 12:00 internal
`
	spec, _ := NewWithBuiltins().Get("ls")
	res := parse.NewController(0).Parse(parse.RawOutput{Stdout: []byte(input), Tool: "ls"}, spec)

	if res.Tier != parse.TierFull {
		t.Fatalf("expected full tier, got %s (warnings %v)", res.Tier, res.Warnings)
	}
	if strings.Contains(res.Rendered, "total 48") {
		t.Errorf("total line should be dropped: %q", res.Rendered)
	}
	if !strings.Contains(res.Rendered, "main.go") || !strings.Contains(res.Rendered, "internal") {
		t.Errorf("entries missing: %q", res.Rendered)
	}
}

func TestBuiltin_Ls_EmptyDirectory(t *testing.T) {
	spec, _ := NewWithBuiltins().Get("ls")
	res := parse.NewController(0).Parse(parse.RawOutput{Stdout: []byte("total 0\n"), Tool: "ls"}, spec)

	if res.Rendered != parse.NoOutputSentinel {
		t.Errorf("expected sentinel for empty listing, got %q", res.Rendered)
	}
}

func TestBuiltin_GitDiff(t *testing.T) {
	input := `diff --git a/main.go b/main.go
index 1111111..2222222 100644
--- a/main.go
+++ b/main.go
@@ -1,3 +1,4 @@
 package main
+import "fmt"
-var x = 1
`
	spec, _ := NewWithBuiltins().Get("git-diff")
	res := parse.NewController(0).Parse(parse.RawOutput{Stdout: []byte(input), Tool: "git-diff"}, spec)

	if res.Tier != parse.TierFull {
		t.Fatalf("expected full tier, got %s (warnings %v)", res.Tier, res.Warnings)
	}
	if !strings.Contains(res.Rendered, "📄 main.go") {
		t.Errorf("file marker missing: %q", res.Rendered)
	}
	if !strings.Contains(res.Rendered, "@@ -1,3 +1,4 @@") {
		t.Errorf("hunk header missing: %q", res.Rendered)
	}
	if !strings.Contains(res.Rendered, `+import "fmt"`) {
		t.Errorf("added line missing: %q", res.Rendered)
	}
	// Context lines are not records.
	if strings.Contains(res.Rendered, "package main") {
		t.Errorf("context line leaked: %q", res.Rendered)
	}
}

func TestBuiltin_Pytest(t *testing.T) {
	input := `==================== test session starts ====================
collected 10 items

tests/test_auth.py ......F.                               [ 80%]
tests/test_db.py .F                                       [100%]

==================== short test summary info ====================
FAILED tests/test_auth.py::test_login - AssertionError: bad token
FAILED tests/test_db.py::test_connect - TimeoutError
==================== 8 passed, 2 failed in 1.24s ====================
`
	spec, _ := NewWithBuiltins().Get("pytest")
	res := parse.NewController(0).Parse(parse.RawOutput{Stdout: []byte(input), ExitCode: 1, Tool: "pytest"}, spec)

	if res.Tier != parse.TierFull {
		t.Fatalf("expected full tier, got %s (warnings %v)", res.Tier, res.Warnings)
	}

	var errs, summaries int
	for _, rec := range res.Records {
		switch rec.Kind {
		case parse.KindError:
			errs++
		case parse.KindSummary:
			summaries++
		}
	}
	if errs != 2 {
		t.Errorf("expected 2 failure records, got %d", errs)
	}
	if summaries != 1 {
		t.Errorf("expected 1 summary record, got %d", summaries)
	}
	if !strings.Contains(res.Rendered, "✗ tests/test_auth.py test_login AssertionError: bad token") {
		t.Errorf("failure line missing: %q", res.Rendered)
	}
	if !strings.Contains(res.Rendered, "8 passed, 2 failed") {
		t.Errorf("summary missing: %q", res.Rendered)
	}
	if res.ExitCode != 1 {
		t.Errorf("expected exit 1, got %d", res.ExitCode)
	}
}

func TestBuiltin_GenericDiagnostics(t *testing.T) {
	input := `main.c:10:5: error: expected ';' before return
main.c:12:1: warning: unused variable 'x'
lib.py:3:1: E302 expected 2 blank lines
pkg/server.go:44:9: undefined: handler
`
	spec := GenericSpec("generic")
	records, _, err := spec.Extractor.Extract(input, parse.Strict)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("expected 4 records, got %d", len(records))
	}
	if records[0].Kind != parse.KindError || records[0].Loc.Column != 5 {
		t.Errorf("unexpected gcc record: %+v", records[0])
	}
	if records[2].Code != "E302" {
		t.Errorf("flake8 code not captured: %+v", records[2])
	}
	if records[3].Kind != parse.KindError || records[3].Message != "undefined: handler" {
		t.Errorf("go vet record wrong: %+v", records[3])
	}
}

func TestLoadOverrides(t *testing.T) {
	yamlContent := `tools:
  - name: mytool
    strategy: pattern
    renderer: failures
    templates:
      - kind: error
        regex: '^BAD (?P<msg>.*)$'
  - name: chatter
    strategy: plain
    renderer: deduped
`
	path := filepath.Join(t.TempDir(), "tools.yaml")
	if err := os.WriteFile(path, []byte(yamlContent), 0o600); err != nil {
		t.Fatal(err)
	}

	r := NewWithBuiltins()
	if err := LoadOverrides(r, path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	spec, ok := r.Get("mytool")
	if !ok {
		t.Fatal("mytool not registered")
	}
	records, _, err := spec.Extractor.Extract("BAD things happened\n", parse.Strict)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 || records[0].Message != "things happened" {
		t.Fatalf("unexpected records: %+v", records)
	}

	if _, ok := r.Get("chatter"); !ok {
		t.Error("plain tool not registered")
	}
}

func TestLoadOverrides_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing name", "tools:\n  - strategy: plain\n"},
		{"bad strategy", "tools:\n  - name: x\n    strategy: phased\n"},
		{"no templates", "tools:\n  - name: x\n    strategy: pattern\n"},
		{"bad regex", "tools:\n  - name: x\n    templates:\n      - regex: '['\n"},
		{"bad renderer", "tools:\n  - name: x\n    renderer: fancy\n    templates:\n      - regex: ok\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "tools.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0o600); err != nil {
				t.Fatal(err)
			}
			if err := LoadOverrides(New(), path); err == nil {
				t.Error("expected error")
			}
		})
	}
}
