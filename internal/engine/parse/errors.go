package parse

import "errors"

// Extraction failure kinds. None of these ever escape Controller.Parse;
// the tiering absorbs each one into a Degraded or Passthrough result plus
// an explicit warning string.
var (
	// ErrMalformedStructured means the document did not parse, or parsed
	// but violated the expected schema.
	ErrMalformedStructured = errors.New("malformed structured document")

	// ErrMalformedStreamLine means a newline-delimited record failed to
	// decode in strict mode.
	ErrMalformedStreamLine = errors.New("malformed streaming line")

	// ErrNoPatternMatch means no template matched any line of non-empty input.
	ErrNoPatternMatch = errors.New("no pattern matched")

	// ErrNoPhaseMatch means the state machine recognized nothing: it never
	// left its start phase and extracted no records.
	ErrNoPhaseMatch = errors.New("no phase marker recognized")
)
