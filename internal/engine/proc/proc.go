// Package proc captures the output of child processes. It owns spawning,
// timeout, and cancellation; the parse engine only ever sees output of an
// already-terminated process.
package proc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/sahilmgandhi/rtk/internal/engine/parse"
	"github.com/sahilmgandhi/rtk/internal/platform/logger"
)

// Capture runs a command and returns its raw output. A non-zero exit code
// is data, not an error: the returned error is non-nil only when the
// process could not be run at all (missing binary, cancelled context).
func Capture(ctx context.Context, tool, name string, args ...string) (parse.RawOutput, time.Duration, error) {
	log := logger.FromContext(ctx)
	log.Debug("running command", "tool", tool, "cmd", name, "args", args)
	start := time.Now()

	cmd := exec.CommandContext(ctx, name, args...) // #nosec G204 -- argv comes from the rtk CLI surface, forwarded verbatim
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	elapsed := time.Since(start)

	raw := parse.RawOutput{
		Stdout: stdout.Bytes(),
		Stderr: stderr.Bytes(),
		Tool:   tool,
	}

	if err != nil {
		// A context kill also surfaces as an ExitError, so cancellation is
		// checked first.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return raw, elapsed, fmt.Errorf("running %s: %w", name, ctxErr)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			raw.ExitCode = exitErr.ExitCode()
			return raw, elapsed, nil
		}
		return raw, elapsed, fmt.Errorf("running %s: %w", name, err)
	}
	return raw, elapsed, nil
}

// CaptureShell runs a command line through the shell, for user-supplied
// command strings that may contain pipes or quoting.
func CaptureShell(ctx context.Context, tool, commandLine string) (parse.RawOutput, time.Duration, error) {
	return Capture(ctx, tool, "sh", "-c", commandLine)
}
