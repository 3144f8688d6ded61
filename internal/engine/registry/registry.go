// Package registry binds tool identities to extraction strategies. The
// registry is built once at process start and passed by handle into the
// engine; per-tool differences are data (regex templates, phase tables,
// document decoders), not code branches.
package registry

import (
	"sync"

	"github.com/sahilmgandhi/rtk/internal/engine/parse"
	"github.com/sahilmgandhi/rtk/internal/engine/render"
)

// Registry maps tool names to their parse specs.
type Registry struct {
	mu    sync.RWMutex
	specs map[string]parse.Spec
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{specs: make(map[string]parse.Spec)}
}

// NewWithBuiltins creates a Registry pre-populated with the builtin tools.
func NewWithBuiltins() *Registry {
	r := New()
	for _, spec := range builtinSpecs() {
		r.Register(spec)
	}
	return r
}

// Register adds or replaces a tool spec.
func (r *Registry) Register(spec parse.Spec) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.specs[spec.Tool] = spec
}

// Get returns the spec bound to a tool name.
func (r *Registry) Get(tool string) (parse.Spec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	spec, ok := r.specs[tool]
	return spec, ok
}

// GetOrDefault returns the spec for a tool, or the generic diagnostic spec
// when the tool is unknown.
func (r *Registry) GetOrDefault(tool string) parse.Spec {
	if spec, ok := r.Get(tool); ok {
		return spec
	}
	return GenericSpec(tool)
}

// Tools returns the registered tool names, unordered.
func (r *Registry) Tools() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.specs))
	for name := range r.specs {
		names = append(names, name)
	}
	return names
}

// GenericSpec builds the fallback spec used for arbitrary commands: ordered
// diagnostic templates for the common compiler/linter dialects, grouped by
// file.
func GenericSpec(tool string) parse.Spec {
	return parse.Spec{
		Tool:     tool,
		Strategy: parse.StrategyPattern,
		Extractor: parse.NewPatternExtractor(diagnosticTemplates()).
			WithLenient(parse.GenericDiagnosticTemplates()),
		Render: render.GroupedByFile(10),
	}
}
