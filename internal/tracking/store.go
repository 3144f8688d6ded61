// Package tracking persists per-invocation usage numbers in SQLite so that
// `rtk gain` can report accumulated token savings. The store is a one-way
// sink: commands write after rendering, the parse engine never touches it.
package tracking

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

const schema = `
CREATE TABLE IF NOT EXISTS invocations (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	ts           TEXT    NOT NULL,
	tool         TEXT    NOT NULL,
	strategy     TEXT    NOT NULL,
	tier         TEXT    NOT NULL,
	input_bytes  INTEGER NOT NULL,
	output_bytes INTEGER NOT NULL,
	exit_code    INTEGER NOT NULL,
	duration_ms  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_invocations_tool ON invocations(tool);
CREATE INDEX IF NOT EXISTS idx_invocations_ts   ON invocations(ts);
`

// Store wraps the tracking database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the tracking database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("creating tracking directory: %w", err)
		}
	}

	db, err := openDB("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening tracking database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing tracking schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Invocation is one recorded rtk run.
type Invocation struct {
	Tool        string
	Strategy    string
	Tier        string
	InputBytes  int
	OutputBytes int
	ExitCode    int
	Duration    time.Duration
}

// Record inserts one invocation.
func (s *Store) Record(inv Invocation) error {
	_, err := s.db.Exec(
		`INSERT INTO invocations (ts, tool, strategy, tier, input_bytes, output_bytes, exit_code, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339),
		inv.Tool, inv.Strategy, inv.Tier,
		inv.InputBytes, inv.OutputBytes, inv.ExitCode,
		inv.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("recording invocation: %w", err)
	}
	return nil
}

// EstimateTokens converts a byte count to a rough token count. Four bytes
// per token is the usual planning figure for English-heavy tool output.
func EstimateTokens(bytes int64) int64 {
	if bytes < 0 {
		return 0
	}
	return bytes / 4
}

// ToolStats aggregates savings for one tool.
type ToolStats struct {
	Tool          string
	Count         int
	SavedTokens   int64
	AvgSavingsPct float64
	AvgDurationMs int64
}

// DayStats is one day of savings.
type DayStats struct {
	Day         string
	SavedTokens int64
}

// Summary is the aggregate view over all recorded invocations.
type Summary struct {
	TotalCommands int
	TotalInput    int64
	TotalOutput   int64
	SavedTokens   int64
	AvgSavingsPct float64
	ByTool        []ToolStats
	ByDay         []DayStats
}

// Summary computes the aggregate savings view.
func (s *Store) Summary() (*Summary, error) {
	sum := &Summary{}

	row := s.db.QueryRow(`SELECT COUNT(*), COALESCE(SUM(input_bytes),0), COALESCE(SUM(output_bytes),0) FROM invocations`)
	if err := row.Scan(&sum.TotalCommands, &sum.TotalInput, &sum.TotalOutput); err != nil {
		return nil, fmt.Errorf("summarizing invocations: %w", err)
	}
	sum.SavedTokens = EstimateTokens(sum.TotalInput - sum.TotalOutput)
	if sum.TotalInput > 0 {
		sum.AvgSavingsPct = float64(sum.TotalInput-sum.TotalOutput) / float64(sum.TotalInput) * 100
	}

	rows, err := s.db.Query(`
		SELECT tool, COUNT(*),
		       COALESCE(SUM(input_bytes),0), COALESCE(SUM(output_bytes),0),
		       COALESCE(AVG(duration_ms),0)
		FROM invocations GROUP BY tool ORDER BY SUM(input_bytes)-SUM(output_bytes) DESC`)
	if err != nil {
		return nil, fmt.Errorf("summarizing by tool: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var ts ToolStats
		var in, out int64
		var avgMs float64
		if err := rows.Scan(&ts.Tool, &ts.Count, &in, &out, &avgMs); err != nil {
			return nil, fmt.Errorf("scanning tool stats: %w", err)
		}
		ts.SavedTokens = EstimateTokens(in - out)
		if in > 0 {
			ts.AvgSavingsPct = float64(in-out) / float64(in) * 100
		}
		ts.AvgDurationMs = int64(avgMs)
		sum.ByTool = append(sum.ByTool, ts)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading tool stats: %w", err)
	}

	dayRows, err := s.db.Query(`
		SELECT substr(ts, 1, 10) AS day,
		       COALESCE(SUM(input_bytes),0), COALESCE(SUM(output_bytes),0)
		FROM invocations
		GROUP BY day ORDER BY day DESC LIMIT 30`)
	if err != nil {
		return nil, fmt.Errorf("summarizing by day: %w", err)
	}
	defer dayRows.Close()
	for dayRows.Next() {
		var ds DayStats
		var in, out int64
		if err := dayRows.Scan(&ds.Day, &in, &out); err != nil {
			return nil, fmt.Errorf("scanning day stats: %w", err)
		}
		ds.SavedTokens = EstimateTokens(in - out)
		sum.ByDay = append(sum.ByDay, ds)
	}
	if err := dayRows.Err(); err != nil {
		return nil, fmt.Errorf("reading day stats: %w", err)
	}

	return sum, nil
}

// HistoryEntry is one recent invocation for `rtk gain --history`.
type HistoryEntry struct {
	TS          time.Time
	Tool        string
	Tier        string
	SavedTokens int64
	SavingsPct  float64
}

// Recent returns the newest n invocations, newest first.
func (s *Store) Recent(n int) ([]HistoryEntry, error) {
	rows, err := s.db.Query(`
		SELECT ts, tool, tier, input_bytes, output_bytes
		FROM invocations ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}
	defer rows.Close()

	var out []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		var ts string
		var in, outBytes int64
		if err := rows.Scan(&ts, &e.Tool, &e.Tier, &in, &outBytes); err != nil {
			return nil, fmt.Errorf("scanning history: %w", err)
		}
		e.TS, _ = time.Parse(time.RFC3339, ts)
		e.SavedTokens = EstimateTokens(in - outBytes)
		if in > 0 {
			e.SavingsPct = float64(in-outBytes) / float64(in) * 100
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
