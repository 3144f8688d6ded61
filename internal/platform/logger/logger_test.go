package logger

import (
	"context"
	"log/slog"
	"testing"
)

func TestNew_Defaults(t *testing.T) {
	l := New(0)
	if l == nil {
		t.Fatal("New returned nil")
	}
	if !l.Enabled(context.Background(), slog.LevelWarn) {
		t.Error("expected Warn level to be enabled by default")
	}
	if l.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("expected Info level to be disabled by default")
	}
}

func TestNew_Verbose(t *testing.T) {
	l := New(1)
	if !l.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("expected Info level to be enabled at verbosity 1")
	}
	if l.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("expected Debug level to remain disabled at verbosity 1")
	}

	l = New(2)
	if !l.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("expected Debug level to be enabled at verbosity 2")
	}
}

func TestContext(t *testing.T) {
	l := New(0)
	ctx := context.Background()

	// Default when missing
	l1 := FromContext(ctx)
	if l1 == nil {
		t.Fatal("FromContext returned nil for empty context")
	}

	// With context
	ctx = WithContext(ctx, l)
	l2 := FromContext(ctx)
	if l2 != l {
		t.Error("FromContext did not return the logger injected with WithContext")
	}
}
