package render

import (
	"strings"
	"testing"

	"github.com/sahilmgandhi/rtk/internal/engine/parse"
)

func TestFailuresOnly_DropsPassingRecords(t *testing.T) {
	records := []parse.Record{
		{Kind: parse.KindInfo, Message: "TestAlpha passed"},
		{Kind: parse.KindError, Message: "assertion failed", Loc: &parse.Location{File: "pkg/a", Line: 0}, Code: "TestBeta"},
		{Kind: parse.KindSummary, Message: "1 passed, 1 failed"},
	}

	out := FailuresOnly()(records, 1)
	if strings.Contains(out, "TestAlpha") {
		t.Errorf("passing record leaked into output: %q", out)
	}
	if !strings.Contains(out, "✗ pkg/a TestBeta assertion failed") {
		t.Errorf("unexpected failure line: %q", out)
	}
	if !strings.Contains(out, "1 passed, 1 failed") {
		t.Errorf("summary missing: %q", out)
	}
}

func TestFailuresOnly_AllPassed(t *testing.T) {
	records := []parse.Record{
		{Kind: parse.KindInfo, Message: "TestAlpha passed"},
	}
	if out := FailuresOnly()(records, 0); out != "all passed" {
		t.Errorf("expected all passed, got %q", out)
	}
}

func TestGroupedByFile_TopNPerFile(t *testing.T) {
	var records []parse.Record
	for i := 1; i <= 5; i++ {
		records = append(records, parse.Record{
			Kind:    parse.KindError,
			Message: "bad thing",
			Loc:     &parse.Location{File: "a.go", Line: i},
		})
	}

	out := GroupedByFile(3)(records, 1)
	if !strings.HasPrefix(out, "a.go (5)") {
		t.Errorf("expected file header with total, got %q", out)
	}
	if !strings.Contains(out, "... +2 more") {
		t.Errorf("expected overflow marker, got %q", out)
	}
	if n := strings.Count(out, "bad thing"); n != 3 {
		t.Errorf("expected 3 entries shown, got %d", n)
	}
}

func TestGroupedByFile_Clean(t *testing.T) {
	if out := GroupedByFile(10)(nil, 0); out != "clean" {
		t.Errorf("expected clean, got %q", out)
	}
}

func TestGroupedByFile_NoLocationGroup(t *testing.T) {
	records := []parse.Record{
		{Kind: parse.KindError, Message: "link failed"},
	}
	out := GroupedByFile(10)(records, 1)
	if !strings.HasPrefix(out, "(general) (1)") {
		t.Errorf("expected general group, got %q", out)
	}
}

func TestOneLine_Capped(t *testing.T) {
	records := []parse.Record{
		{Kind: parse.KindInfo, Message: "first\nwith detail"},
		{Kind: parse.KindInfo, Message: "second"},
		{Kind: parse.KindInfo, Message: "third"},
	}

	out := OneLine(2)(records, 0)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 2 entries plus marker, got %q", out)
	}
	if lines[0] != "first" {
		t.Errorf("expected first line only, got %q", lines[0])
	}
	if lines[2] != "... +1 more" {
		t.Errorf("expected overflow marker, got %q", lines[2])
	}
}

func TestDedupedCounts(t *testing.T) {
	records := []parse.Record{
		{Kind: parse.KindInfo, Message: "retrying"},
		{Kind: parse.KindInfo, Message: "retrying"},
		{Kind: parse.KindInfo, Message: "retrying"},
		{Kind: parse.KindInfo, Message: "connected"},
	}

	out := DedupedCounts(0)(records, 0)
	if !strings.Contains(out, "retrying ×3") {
		t.Errorf("expected count annotation, got %q", out)
	}
	if strings.Contains(out, "connected ×") {
		t.Errorf("single occurrence should not be annotated: %q", out)
	}
}

func TestDedupedCounts_Empty(t *testing.T) {
	if out := DedupedCounts(10)(nil, 0); out != parse.NoOutputSentinel {
		t.Errorf("expected sentinel, got %q", out)
	}
}
