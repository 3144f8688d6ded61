package registry

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sahilmgandhi/rtk/internal/engine/parse"
)

// goTestEvent is a single event emitted by `go test -json`.
// See: https://pkg.go.dev/cmd/test2json#hdr-Output_Format
type goTestEvent struct {
	Action  string  `json:"Action"`
	Package string  `json:"Package"`
	Test    string  `json:"Test"`
	Output  string  `json:"Output"`
	Elapsed float64 `json:"Elapsed"`
}

// goTestDecoder accumulates test events and reduces them to failure records
// plus a pass/fail summary. Output lines are buffered per test so a failure
// record carries its own assertion output.
type goTestDecoder struct {
	outputs map[string][]string
	fails   []goTestEvent
	passed  int
	failed  int
	skipped int
}

func newGoTestDecoder() *goTestDecoder {
	return &goTestDecoder{outputs: make(map[string][]string)}
}

func (d *goTestDecoder) Line(data []byte) error {
	var ev goTestEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return err
	}
	// An event stream always names an action; plain text that happens to be
	// valid JSON (e.g. a bare number) is not an event.
	if ev.Action == "" {
		return fmt.Errorf("not a test event")
	}

	switch ev.Action {
	case "output":
		key := ev.Package + "::" + ev.Test
		d.outputs[key] = append(d.outputs[key], ev.Output)
	case "pass":
		if ev.Test != "" {
			d.passed++
		}
	case "skip":
		if ev.Test != "" {
			d.skipped++
		}
	case "fail":
		if ev.Test != "" {
			d.failed++
		}
		d.fails = append(d.fails, ev)
	}
	return nil
}

func (d *goTestDecoder) Finish() []parse.Record {
	var records []parse.Record
	failedPackages := make(map[string]bool)

	// Test-level failures first; remember their packages so the package
	// fail event is not double-reported.
	for _, ev := range d.fails {
		if ev.Test == "" {
			continue
		}
		failedPackages[ev.Package] = true

		msg := strings.TrimSpace(strings.Join(d.outputs[ev.Package+"::"+ev.Test], ""))
		if msg == "" {
			msg = fmt.Sprintf("test %s failed", ev.Test)
		}
		records = append(records, parse.Record{
			Kind:    parse.KindError,
			Loc:     &parse.Location{File: ev.Package},
			Code:    ev.Test,
			Message: msg,
		})
	}

	// Package-level failures only when no test inside failed (build errors
	// fail the package without running anything).
	for _, ev := range d.fails {
		if ev.Test != "" || failedPackages[ev.Package] {
			continue
		}
		msg := strings.TrimSpace(strings.Join(d.outputs[ev.Package+"::"], ""))
		if msg == "" {
			msg = fmt.Sprintf("package %s failed", ev.Package)
		}
		records = append(records, parse.Record{
			Kind:    parse.KindError,
			Loc:     &parse.Location{File: ev.Package},
			Message: msg,
		})
	}

	if d.passed+d.failed+d.skipped > 0 {
		summary := fmt.Sprintf("%d passed, %d failed", d.passed, d.failed)
		if d.skipped > 0 {
			summary += fmt.Sprintf(", %d skipped", d.skipped)
		}
		records = append(records, parse.Record{Kind: parse.KindSummary, Message: summary})
	}
	return records
}
