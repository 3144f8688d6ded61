package registry

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/sahilmgandhi/rtk/internal/engine/parse"
	"github.com/sahilmgandhi/rtk/internal/engine/render"
)

// overrideFile is the YAML shape for user-defined tools. Only pattern and
// plain strategies are supported here: structured document decoders and
// phase machines need code, not configuration.
type overrideFile struct {
	Tools []toolOverride `yaml:"tools"`
}

type toolOverride struct {
	Name      string             `yaml:"name"`
	Strategy  string             `yaml:"strategy"`
	Renderer  string             `yaml:"renderer"`
	Templates []templateOverride `yaml:"templates"`
}

type templateOverride struct {
	Kind  string `yaml:"kind"`
	Regex string `yaml:"regex"`
}

// LoadOverrides reads user-defined pattern tools from a YAML file and
// registers them, replacing builtins on name collision.
func LoadOverrides(r *Registry, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading tool overrides: %w", err)
	}

	var file overrideFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parsing tool overrides: %w", err)
	}

	for _, tool := range file.Tools {
		spec, err := buildOverride(tool)
		if err != nil {
			return fmt.Errorf("tool %q: %w", tool.Name, err)
		}
		r.Register(spec)
	}
	return nil
}

func buildOverride(tool toolOverride) (parse.Spec, error) {
	if tool.Name == "" {
		return parse.Spec{}, fmt.Errorf("missing name")
	}

	renderer, err := rendererByName(tool.Renderer)
	if err != nil {
		return parse.Spec{}, err
	}

	switch tool.Strategy {
	case "plain":
		return parse.Spec{
			Tool:      tool.Name,
			Strategy:  parse.StrategyPlain,
			Extractor: parse.NewPlainExtractor(),
			Render:    renderer,
		}, nil
	case "pattern", "":
		if len(tool.Templates) == 0 {
			return parse.Spec{}, fmt.Errorf("pattern tool needs at least one template")
		}
		templates := make([]parse.Template, 0, len(tool.Templates))
		for _, t := range tool.Templates {
			kind, err := kindByName(t.Kind)
			if err != nil {
				return parse.Spec{}, err
			}
			re, err := regexp.Compile(t.Regex)
			if err != nil {
				return parse.Spec{}, fmt.Errorf("template regex: %w", err)
			}
			templates = append(templates, parse.Template{Kind: kind, Re: re})
		}
		return parse.Spec{
			Tool:     tool.Name,
			Strategy: parse.StrategyPattern,
			Extractor: parse.NewPatternExtractor(templates).
				WithLenient(parse.GenericDiagnosticTemplates()),
			Render: renderer,
		}, nil
	default:
		return parse.Spec{}, fmt.Errorf("unsupported strategy %q (want pattern or plain)", tool.Strategy)
	}
}

func rendererByName(name string) (parse.Renderer, error) {
	switch name {
	case "grouped", "":
		return render.GroupedByFile(10), nil
	case "failures":
		return render.FailuresOnly(), nil
	case "oneline":
		return render.OneLine(0), nil
	case "deduped":
		return render.DedupedCounts(200), nil
	}
	return nil, fmt.Errorf("unknown renderer %q", name)
}

func kindByName(name string) (parse.Kind, error) {
	switch name {
	case "error":
		return parse.KindError, nil
	case "warning":
		return parse.KindWarning, nil
	case "info", "":
		return parse.KindInfo, nil
	case "summary":
		return parse.KindSummary, nil
	}
	return "", fmt.Errorf("unknown record kind %q", name)
}
