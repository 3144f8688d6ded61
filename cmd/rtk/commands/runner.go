package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sahilmgandhi/rtk/internal/engine/parse"
	"github.com/sahilmgandhi/rtk/internal/engine/proc"
	"github.com/sahilmgandhi/rtk/internal/engine/tee"
	"github.com/sahilmgandhi/rtk/internal/platform/logger"
	"github.com/sahilmgandhi/rtk/internal/tracking"
)

// runTool captures one external command, condenses it, and exits with the
// captured exit code. Commands are thin adapters over this pipeline.
func runTool(cmd *cobra.Command, toolID, slug, name string, args ...string) error {
	raw, dur, err := proc.Capture(cmd.Context(), toolID, name, args...)
	if err != nil {
		return err
	}
	return emit(cmd, raw, dur, slug)
}

// runShell is runTool for a full shell command line.
func runShell(cmd *cobra.Command, toolID, slug, commandLine string) error {
	raw, dur, err := proc.CaptureShell(cmd.Context(), toolID, commandLine)
	if err != nil {
		return err
	}
	return emit(cmd, raw, dur, slug)
}

// emit runs captured output through the parse controller, prints the
// condensed text, and feeds the tee and tracking sinks. When the wrapped
// command failed, emit exits the process with the same code so that rtk is
// transparent to shell scripts and CI.
func emit(cmd *cobra.Command, raw parse.RawOutput, dur time.Duration, slug string) error {
	ctx := cmd.Context()
	log := logger.FromContext(ctx)

	spec := reg.GetOrDefault(raw.Tool)
	ctl := parse.NewController(appCfg.Output.MaxPassthrough)
	result := ctl.Parse(raw, spec)

	log.Debug("parsed output",
		"tool", raw.Tool,
		"strategy", spec.Strategy,
		"tier", result.Tier,
		"records", len(result.Records),
	)
	for _, w := range result.Warnings {
		log.Warn("parse warning", "tool", raw.Tool, "warning", w)
	}

	fmt.Fprintln(cmd.OutOrStdout(), result.Rendered)

	spill(cmd, raw, slug, result.ExitCode)
	record(cmd, raw, string(spec.Strategy), result, dur)

	if result.ExitCode != 0 {
		os.Exit(result.ExitCode)
	}
	return nil
}

// spill writes raw output to the tee directory when configured.
func spill(cmd *cobra.Command, raw parse.RawOutput, slug string, exitCode int) {
	if !appCfg.Tee.Enabled {
		return
	}
	log := logger.FromContext(cmd.Context())

	w := tee.NewWriter(appCfg.Tee.Dir, tee.Mode(appCfg.Tee.Mode))
	if appCfg.Tee.MaxFiles > 0 {
		w.MaxFiles = appCfg.Tee.MaxFiles
	}
	if appCfg.Tee.MaxFileSize > 0 {
		w.MaxFileSize = int(appCfg.Tee.MaxFileSize)
	}

	combined := string(raw.Stdout) + string(raw.Stderr)
	path, err := w.Write(combined, slug, exitCode)
	if err != nil {
		log.Warn("tee spill failed", "error", err)
		return
	}
	if path != "" {
		log.Debug("raw output spilled", "path", path)
	}
}

// record stores invocation stats in the usage database. Tracking is best
// effort: a broken database never breaks the wrapped command.
func record(cmd *cobra.Command, raw parse.RawOutput, strategy string, result parse.ParseResult, dur time.Duration) {
	if !appCfg.Track.Enabled {
		return
	}
	log := logger.FromContext(cmd.Context())

	store, err := tracking.Open(appCfg.Track.Path)
	if err != nil {
		log.Warn("tracking unavailable", "error", err)
		return
	}
	defer store.Close()

	err = store.Record(tracking.Invocation{
		Tool:        raw.Tool,
		Strategy:    strategy,
		Tier:        string(result.Tier),
		InputBytes:  len(raw.Stdout) + len(raw.Stderr),
		OutputBytes: len(result.Rendered),
		ExitCode:    result.ExitCode,
		Duration:    dur,
	})
	if err != nil {
		log.Warn("tracking write failed", "error", err)
	}
}
