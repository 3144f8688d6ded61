package parse

import (
	"regexp"
	"strings"
)

// Phase names one stage of multi-part textual output.
type Phase string

// PhaseRule is a transition predicate. A rule fires when the line starts
// with Prefix (when set) or matches Re (when set); the machine then moves
// to the To phase. The triggering line is also offered to the new phase's
// templates, so marker lines can double as records (e.g. a summary line).
type PhaseRule struct {
	Prefix string
	Re     *regexp.Regexp
	To     Phase
}

func (r PhaseRule) matches(line string) bool {
	if r.Prefix != "" {
		return strings.HasPrefix(line, r.Prefix)
	}
	if r.Re != nil {
		return r.Re.MatchString(line)
	}
	return false
}

// PhaseTable is the per-tool state machine definition: a start phase,
// transition rules per phase, and the record templates active in each phase.
type PhaseTable struct {
	Start     Phase
	Rules     map[Phase][]PhaseRule
	Templates map[Phase][]Template
}

// PhasedExtractor runs an explicit finite state machine over lines. Lines
// that match no transition and no template for the current phase are
// tolerated as free context — phased tools are high-volume and noisy, so
// strictness here would defeat the fallback value.
type PhasedExtractor struct {
	table PhaseTable
}

// NewPhasedExtractor creates an extractor over a phase table.
func NewPhasedExtractor(table PhaseTable) *PhasedExtractor {
	return &PhasedExtractor{table: table}
}

// Extract implements Extractor. Strict mode fails with ErrNoPhaseMatch only
// when the machine never left its start phase and produced no records, i.e.
// the input is not recognizably this tool's dialect at all. Lenient mode
// returns whatever was collected.
func (e *PhasedExtractor) Extract(text string, mode Mode) ([]Record, []string, error) {
	current := e.table.Start
	moved := false
	var records []Record

	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		if to, ok := e.transition(current, line); ok {
			current = to
			moved = true
		}

		for _, t := range e.table.Templates[current] {
			if rec, ok := t.Apply(line); ok {
				records = append(records, rec)
				break
			}
		}
	}

	if mode == Strict && !moved && len(records) == 0 && strings.TrimSpace(text) != "" {
		return nil, nil, ErrNoPhaseMatch
	}
	return records, nil, nil
}

func (e *PhasedExtractor) transition(current Phase, line string) (Phase, bool) {
	for _, rule := range e.table.Rules[current] {
		if rule.matches(line) {
			return rule.To, true
		}
	}
	return current, false
}
