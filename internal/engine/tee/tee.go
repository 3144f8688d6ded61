// Package tee spills raw command output to disk before condensation, so
// the full text can be recovered when the summary is not enough. It is a
// convenience around the engine, never part of it.
package tee

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Mode controls when raw output is written.
type Mode string

const (
	ModeAlways   Mode = "always"
	ModeFailures Mode = "failures"
	ModeNever    Mode = "never"
)

const (
	// minSize is the smallest output worth spilling; anything shorter is
	// cheap to re-run.
	minSize = 500

	defaultMaxFiles    = 20
	defaultMaxFileSize = 1 << 20
)

// Writer spills raw output into a directory with rotation.
type Writer struct {
	Dir         string
	Mode        Mode
	MaxFiles    int
	MaxFileSize int

	// now is overridable for tests.
	now func() time.Time
}

// NewWriter creates a Writer for the given directory and mode.
func NewWriter(dir string, mode Mode) *Writer {
	return &Writer{
		Dir:         dir,
		Mode:        mode,
		MaxFiles:    defaultMaxFiles,
		MaxFileSize: defaultMaxFileSize,
		now:         time.Now,
	}
}

// Write spills raw output if the mode, exit code, and size thresholds call
// for it. It returns the file path, or "" when skipped. Spilling is best
// effort: failures are reported, never fatal to the caller's flow.
func (w *Writer) Write(raw, commandSlug string, exitCode int) (string, error) {
	if w == nil || w.Dir == "" {
		return "", nil
	}
	switch w.Mode {
	case ModeAlways:
	case ModeNever:
		return "", nil
	default:
		// ModeFailures; unrecognized modes (config typos) get the same
		// conservative gate instead of silently spilling everything.
		if exitCode == 0 {
			return "", nil
		}
	}
	if len(raw) < minSize {
		return "", nil
	}

	if err := os.MkdirAll(w.Dir, 0o750); err != nil {
		return "", fmt.Errorf("creating tee directory: %w", err)
	}

	maxSize := w.MaxFileSize
	if maxSize <= 0 {
		maxSize = defaultMaxFileSize
	}
	content := raw
	if len(content) > maxSize {
		content = fmt.Sprintf("%s\n\n--- truncated at %d bytes ---", raw[:maxSize], maxSize)
	}

	name := fmt.Sprintf("%d_%s.log", w.now().Unix(), sanitizeSlug(commandSlug))
	path := filepath.Join(w.Dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return "", fmt.Errorf("writing tee file: %w", err)
	}

	w.rotate()
	return path, nil
}

// rotate keeps only the newest MaxFiles logs. Filenames start with an
// epoch timestamp, so lexical order is chronological.
func (w *Writer) rotate() {
	maxFiles := w.MaxFiles
	if maxFiles <= 0 {
		maxFiles = defaultMaxFiles
	}

	entries, err := os.ReadDir(w.Dir)
	if err != nil {
		return
	}
	var logs []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".log") {
			logs = append(logs, e.Name())
		}
	}
	if len(logs) <= maxFiles {
		return
	}
	sort.Strings(logs)
	for _, name := range logs[:len(logs)-maxFiles] {
		_ = os.Remove(filepath.Join(w.Dir, name))
	}
}

// sanitizeSlug makes a command string filename-safe and bounded.
func sanitizeSlug(slug string) string {
	var b strings.Builder
	for _, r := range slug {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	s := b.String()
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
