package tracking

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "usage.db"))
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestEstimateTokens(t *testing.T) {
	tests := []struct {
		bytes int64
		want  int64
	}{
		{0, 0},
		{3, 0},
		{4, 1},
		{4096, 1024},
		{-100, 0},
	}
	for _, tt := range tests {
		if got := EstimateTokens(tt.bytes); got != tt.want {
			t.Errorf("EstimateTokens(%d) = %d, want %d", tt.bytes, got, tt.want)
		}
	}
}

func TestStore_RecordAndSummary(t *testing.T) {
	s := openTestStore(t)

	invocations := []Invocation{
		{Tool: "git-status", Strategy: "pattern", Tier: "full", InputBytes: 4000, OutputBytes: 400, ExitCode: 0, Duration: 20 * time.Millisecond},
		{Tool: "git-status", Strategy: "pattern", Tier: "full", InputBytes: 2000, OutputBytes: 200, ExitCode: 0, Duration: 10 * time.Millisecond},
		{Tool: "go-test", Strategy: "streaming", Tier: "degraded", InputBytes: 10000, OutputBytes: 1000, ExitCode: 1, Duration: 900 * time.Millisecond},
	}
	for _, inv := range invocations {
		if err := s.Record(inv); err != nil {
			t.Fatalf("recording: %v", err)
		}
	}

	sum, err := s.Summary()
	if err != nil {
		t.Fatalf("summarizing: %v", err)
	}
	if sum.TotalCommands != 3 {
		t.Errorf("expected 3 commands, got %d", sum.TotalCommands)
	}
	if sum.TotalInput != 16000 || sum.TotalOutput != 1600 {
		t.Errorf("unexpected totals: in %d out %d", sum.TotalInput, sum.TotalOutput)
	}
	if want := EstimateTokens(16000 - 1600); sum.SavedTokens != want {
		t.Errorf("expected %d saved tokens, got %d", want, sum.SavedTokens)
	}
	if sum.AvgSavingsPct < 89 || sum.AvgSavingsPct > 91 {
		t.Errorf("expected ~90%% savings, got %.1f", sum.AvgSavingsPct)
	}

	if len(sum.ByTool) != 2 {
		t.Fatalf("expected 2 tool rows, got %d", len(sum.ByTool))
	}
	// Ordered by saved bytes descending: go-test saved 9000, git-status 5400.
	if sum.ByTool[0].Tool != "go-test" || sum.ByTool[0].Count != 1 {
		t.Errorf("unexpected first tool row: %+v", sum.ByTool[0])
	}
	if sum.ByTool[1].Tool != "git-status" || sum.ByTool[1].Count != 2 {
		t.Errorf("unexpected second tool row: %+v", sum.ByTool[1])
	}

	if len(sum.ByDay) != 1 {
		t.Errorf("expected 1 day row, got %d", len(sum.ByDay))
	}
}

func TestStore_EmptySummary(t *testing.T) {
	s := openTestStore(t)

	sum, err := s.Summary()
	if err != nil {
		t.Fatalf("summarizing empty store: %v", err)
	}
	if sum.TotalCommands != 0 || sum.SavedTokens != 0 || sum.AvgSavingsPct != 0 {
		t.Errorf("unexpected empty summary: %+v", sum)
	}
}

func TestStore_Recent(t *testing.T) {
	s := openTestStore(t)

	for i := 0; i < 5; i++ {
		inv := Invocation{Tool: "log", Strategy: "plain", Tier: "full", InputBytes: 1000, OutputBytes: 100}
		if i == 4 {
			inv.Tool = "latest"
		}
		if err := s.Record(inv); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := s.Recent(3)
	if err != nil {
		t.Fatalf("reading history: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Tool != "latest" {
		t.Errorf("expected newest first, got %q", entries[0].Tool)
	}
	if entries[0].SavedTokens != EstimateTokens(900) {
		t.Errorf("unexpected saved tokens: %d", entries[0].SavedTokens)
	}
	if entries[0].SavingsPct != 90 {
		t.Errorf("expected 90%% savings, got %.1f", entries[0].SavingsPct)
	}
}
