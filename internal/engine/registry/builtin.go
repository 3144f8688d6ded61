package registry

import (
	"regexp"

	"github.com/sahilmgandhi/rtk/internal/engine/parse"
	"github.com/sahilmgandhi/rtk/internal/engine/render"
)

// diagnosticTemplates are the ordered regex rules for free-form compiler
// and linter output. Multiple templates exist because tool dialects vary in
// file:line:col ordering and separators; declaration order decides ties,
// first match wins.
func diagnosticTemplates() []parse.Template {
	return []parse.Template{
		// gcc/clang/rustc-style with column
		{Kind: parse.KindError, Re: regexp.MustCompile(`^(?P<file>[^\s:]+):(?P<line>\d+):(?P<col>\d+):\s*(?:fatal error|error)(?:\[(?P<code>[A-Z]+\d+)\])?:\s*(?P<msg>.*)$`)},
		{Kind: parse.KindWarning, Re: regexp.MustCompile(`^(?P<file>[^\s:]+):(?P<line>\d+):(?P<col>\d+):\s*warning(?:\[(?P<code>[A-Z]+\d+)\])?:\s*(?P<msg>.*)$`)},
		// same without column
		{Kind: parse.KindError, Re: regexp.MustCompile(`^(?P<file>[^\s:]+):(?P<line>\d+):\s*(?:fatal error|error):\s*(?P<msg>.*)$`)},
		{Kind: parse.KindWarning, Re: regexp.MustCompile(`^(?P<file>[^\s:]+):(?P<line>\d+):\s*warning:\s*(?P<msg>.*)$`)},
		// flake8/ruff-style code-first diagnostics
		{Kind: parse.KindWarning, Re: regexp.MustCompile(`^(?P<file>[^\s:]+):(?P<line>\d+):(?P<col>\d+):?\s+(?P<code>[A-Z]{1,4}\d{3,4})\s+(?P<msg>.*)$`)},
		// go build/vet diagnostics carry no severity keyword
		{Kind: parse.KindError, Re: regexp.MustCompile(`^(?P<file>[^\s:]+\.go):(?P<line>\d+):(?P<col>\d+):\s+(?P<msg>.*)$`)},
		// bare keyword lines
		{Kind: parse.KindError, Re: regexp.MustCompile(`(?i)^(?:error|fatal|panic):\s*(?P<msg>.*)$`)},
		{Kind: parse.KindWarning, Re: regexp.MustCompile(`(?i)^(?:warning|warn):\s*(?P<msg>.*)$`)},
	}
}

func gitStatusTemplates() []parse.Template {
	return []parse.Template{
		{Kind: parse.KindSummary, Re: regexp.MustCompile(`^## (?P<msg>.*)$`)},
		{Kind: parse.KindInfo, Re: regexp.MustCompile(`^(?P<code>[MADRCU?! ][MADRCU?! ]) (?P<file>.+)$`)},
	}
}

func gitLogTemplates() []parse.Template {
	return []parse.Template{
		{Kind: parse.KindInfo, Re: regexp.MustCompile(`^(?P<code>[0-9a-f]{7,40}) (?P<msg>.*)$`)},
	}
}

// gitDiffTable drives the unified-diff state machine: file headers open a
// file phase, hunk headers open a hunk phase, and only hunk content becomes
// records. Everything else (index lines, mode lines) is free context.
func gitDiffTable() parse.PhaseTable {
	const (
		preamble parse.Phase = "preamble"
		file     parse.Phase = "file"
		hunk     parse.Phase = "hunk"
	)
	toFile := parse.PhaseRule{Prefix: "diff --git", To: file}
	toHunk := parse.PhaseRule{Prefix: "@@", To: hunk}

	return parse.PhaseTable{
		Start: preamble,
		Rules: map[parse.Phase][]parse.PhaseRule{
			preamble: {toFile},
			file:     {toHunk, toFile},
			hunk:     {toFile, toHunk},
		},
		Templates: map[parse.Phase][]parse.Template{
			file: {
				{Kind: parse.KindInfo, Re: regexp.MustCompile(`^diff --git a/.* b/(?P<msg>.*)$`)},
			},
			hunk: {
				{Kind: parse.KindInfo, Re: regexp.MustCompile(`^@@ (?P<msg>[-+0-9, ]*) @@`)},
				{Kind: parse.KindInfo, Re: regexp.MustCompile(`^(?P<msg>\+[^+].*|\+|-[^-].*|-)$`)},
			},
		},
	}
}

// pytestTable models a pytest run: header, collection, failure detail, the
// short summary (where FAILED lines live), and the final result line.
func pytestTable() parse.PhaseTable {
	const (
		header     parse.Phase = "header"
		collecting parse.Phase = "collecting"
		failures   parse.Phase = "failures"
		summary    parse.Phase = "summary"
	)
	resultRe := regexp.MustCompile(`^=+ .*\d+ (?:passed|failed|error|skipped).* =+$`)

	return parse.PhaseTable{
		Start: header,
		Rules: map[parse.Phase][]parse.PhaseRule{
			header: {
				{Re: regexp.MustCompile(`^=+ test session starts =+$`), To: collecting},
			},
			collecting: {
				{Re: regexp.MustCompile(`^=+ (?:FAILURES|ERRORS|short test summary info) =+$`), To: failures},
				{Re: resultRe, To: summary},
			},
			failures: {
				{Re: resultRe, To: summary},
			},
		},
		Templates: map[parse.Phase][]parse.Template{
			failures: {
				{Kind: parse.KindError, Re: regexp.MustCompile(`^(?:FAILED|ERROR) (?P<file>[^:]+)::(?P<code>\S+)(?: - (?P<msg>.*))?$`)},
			},
			summary: {
				{Kind: parse.KindSummary, Re: regexp.MustCompile(`^=+ (?P<msg>.*\d+ (?:passed|failed|error|skipped).*?) =+$`)},
			},
		},
	}
}

func dockerPsTemplates() []parse.Template {
	return []parse.Template{
		{Kind: parse.KindInfo, Re: regexp.MustCompile(`^(?P<code>[0-9a-f]{12})\s+(?P<msg>.*)$`)},
	}
}

func dockerImagesTemplates() []parse.Template {
	return []parse.Template{
		{Kind: parse.KindInfo, Re: regexp.MustCompile(`^(?P<msg>\S+\s+\S+\s+(?P<code>[0-9a-f]{12})\s+.*)$`)},
	}
}

func kubectlPodsTemplates() []parse.Template {
	return []parse.Template{
		// NAMESPACE NAME READY STATUS RESTARTS AGE (kubectl -A)
		{Kind: parse.KindInfo, Re: regexp.MustCompile(`^(?P<msg>\S+\s+\S+\s+\d+/\d+\s+\S+\s+\d+\S*\s+\S+)$`)},
		// NAME READY STATUS RESTARTS AGE
		{Kind: parse.KindInfo, Re: regexp.MustCompile(`^(?P<msg>\S+\s+\d+/\d+\s+\S+\s+\d+\S*\s+\S+)$`)},
	}
}

func kubectlServicesTemplates() []parse.Template {
	return []parse.Template{
		{Kind: parse.KindInfo, Re: regexp.MustCompile(`^(?P<msg>\S+\s+(?:\S+\s+)?(?:ClusterIP|NodePort|LoadBalancer|ExternalName)\s+.*)$`)},
	}
}

// builtinSpecs is the builtin tool table. New tools are one entry here:
// a strategy plus its data.
func builtinSpecs() []parse.Spec {
	lenient := parse.GenericDiagnosticTemplates()
	pat := func(tool string, templates []parse.Template, r parse.Renderer) parse.Spec {
		return parse.Spec{
			Tool:      tool,
			Strategy:  parse.StrategyPattern,
			Extractor: parse.NewPatternExtractor(templates).WithLenient(lenient),
			Render:    r,
		}
	}
	plain := func(tool string, r parse.Renderer) parse.Spec {
		return parse.Spec{
			Tool:      tool,
			Strategy:  parse.StrategyPlain,
			Extractor: parse.NewPlainExtractor(),
			Render:    r,
		}
	}
	// structured and streaming tools fall back to pattern extraction over
	// the same text when the document or stream is broken.
	patternFallback := parse.NewPatternExtractor(diagnosticTemplates()).
		WithLenient(lenient)

	return []parse.Spec{
		GenericSpec("generic"),

		pat("git-status", gitStatusTemplates(), gitStatusRenderer()),
		pat("git-log", gitLogTemplates(), render.OneLine(0)),
		{
			Tool:      "git-diff",
			Strategy:  parse.StrategyPhased,
			Extractor: parse.NewPhasedExtractor(gitDiffTable()),
			Render:    diffRenderer(100),
		},
		plain("git-plain", render.OneLine(5)),

		{
			Tool:      "go-test",
			Strategy:  parse.StrategyStreaming,
			Extractor: parse.NewStreamExtractor(func() parse.LineDecoder { return newGoTestDecoder() }),
			Fallback:  patternFallback,
			Render:    render.FailuresOnly(),
		},
		{
			Tool:      "pytest",
			Strategy:  parse.StrategyPhased,
			Extractor: parse.NewPhasedExtractor(pytestTable()),
			Render:    render.FailuresOnly(),
		},
		{
			Tool:      "sarif",
			Strategy:  parse.StrategyStructured,
			Extractor: parse.NewStructuredExtractor(decodeSarif),
			Fallback:  patternFallback,
			Render:    render.GroupedByFile(10),
		},

		pat("docker-ps", dockerPsTemplates(), render.OneLine(0)),
		pat("docker-images", dockerImagesTemplates(), render.OneLine(0)),
		plain("docker-logs", render.DedupedCounts(200)),
		pat("kubectl-pods", kubectlPodsTemplates(), render.OneLine(0)),
		pat("kubectl-services", kubectlServicesTemplates(), render.OneLine(0)),
		plain("kubectl-logs", render.DedupedCounts(200)),

		plain("log", render.DedupedCounts(500)),
		plain("ls", lsRenderer()),
	}
}
