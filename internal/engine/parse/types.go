// Package parse implements the output transformation engine: it takes the
// raw captured output of an already-executed tool and produces a condensed,
// semantically faithful representation.
//
// The single entry point is Controller.Parse. It never fails — parse errors
// are absorbed into lower confidence tiers (Full → Degraded → Passthrough)
// so that failure information is never silently dropped or fabricated.
package parse

// Strategy is the extraction dialect bound to a tool's output format.
// It is bound per tool at configuration time, never sniffed from content.
type Strategy string

const (
	// StrategyStructured parses the whole output as one self-describing document.
	StrategyStructured Strategy = "structured"
	// StrategyStreaming parses newline-delimited self-describing records.
	StrategyStreaming Strategy = "streaming"
	// StrategyPattern applies ordered regex templates per record kind.
	StrategyPattern Strategy = "pattern"
	// StrategyPhased runs an explicit state machine over lines.
	StrategyPhased Strategy = "phased"
	// StrategyPlain passes lines through as informational records.
	StrategyPlain Strategy = "plain"
)

// Kind classifies a Record.
type Kind string

const (
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
	KindError   Kind = "error"
	KindSummary Kind = "summary"
)

// Tier is the confidence level of a parse result.
type Tier string

const (
	// TierFull means the declared extractor succeeded in strict mode.
	TierFull Tier = "full"
	// TierDegraded means a lenient/regex fallback produced the records.
	TierDegraded Tier = "degraded"
	// TierPassthrough means parsing failed entirely and Rendered carries
	// the original raw output, possibly truncated.
	TierPassthrough Tier = "passthrough"
)

// Location points into a source file.
type Location struct {
	File   string `json:"file"`
	Line   int    `json:"line,omitempty"`
	Column int    `json:"column,omitempty"`
}

// Record is one normalized unit of information extracted from tool output.
// Records are value types; a run produces them in the tool's emission order.
type Record struct {
	Kind    Kind      `json:"kind"`
	Loc     *Location `json:"loc,omitempty"`
	Code    string    `json:"code,omitempty"`
	Message string    `json:"message"`
	Raw     string    `json:"raw,omitempty"`
}

// RawOutput is the captured output of one finished command execution.
type RawOutput struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
	Tool     string
}

// ParseResult is the engine's output for one invocation. It is constructed
// once by the Controller and never mutated after return. ExitCode always
// equals the input's exit code — the engine never alters exit semantics.
type ParseResult struct {
	Tier     Tier     `json:"tier"`
	Records  []Record `json:"records,omitempty"`
	Rendered string   `json:"rendered"`
	ExitCode int      `json:"exit_code"`
	Warnings []string `json:"warnings,omitempty"`
}

// Mode selects strict or lenient extraction.
type Mode int

const (
	// Strict treats malformed structured input as a hard failure.
	Strict Mode = iota
	// Lenient extracts what it can and reports what it skipped.
	Lenient
)

// Extractor turns raw output text into records. Implementations return the
// extracted records, human-readable warnings about anything skipped, and an
// error when extraction fails as a whole for the requested mode.
type Extractor interface {
	Extract(text string, mode Mode) ([]Record, []string, error)
}

// Renderer turns an ordered record sequence into the final compact text.
// Selection of a renderer is a pure function of (strategy, tool), resolved
// once per invocation by the tool registry.
type Renderer func(records []Record, exitCode int) string
