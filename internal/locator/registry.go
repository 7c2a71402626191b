package locator

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

var (
	ErrUnknownConcept = errors.New("unknown locator concept")
	ErrMissingParam   = errors.New("missing locator parameter")
)

var placeholder = regexp.MustCompile(`\{([A-Za-z][A-Za-z0-9]*)\}`)

// Params fills {name} placeholders in a concept's selectors and texts
type Params map[string]string

// P is shorthand for a single-parameter Params
func P(name, value string) Params {
	return Params{name: value}
}

func (p Params) expand(s string) (string, error) {
	var missing string
	out := placeholder.ReplaceAllStringFunc(s, func(m string) string {
		name := m[1 : len(m)-1]
		v, ok := p[name]
		if !ok {
			if missing == "" {
				missing = name
			}
			return m
		}
		return v
	})
	if missing != "" {
		return "", fmt.Errorf("%w: {%s}", ErrMissingParam, missing)
	}
	return out, nil
}

// Registry maps concepts to their location strategy
type Registry struct {
	concepts map[Concept][]Step
}

// Load parses a YAML catalog of concept → steps
func Load(r io.Reader) (*Registry, error) {
	var raw map[string][]Step
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode locator catalog: %w", err)
	}

	reg := &Registry{concepts: make(map[Concept][]Step, len(raw))}
	for name, steps := range raw {
		if len(steps) == 0 {
			return nil, fmt.Errorf("concept %s has no steps", name)
		}
		for i, s := range steps {
			if err := s.validate(); err != nil {
				return nil, fmt.Errorf("concept %s step %d: %w", name, i, err)
			}
		}
		reg.concepts[Concept(name)] = steps
	}
	return reg, nil
}

// Default returns the registry built from the embedded catalog
func Default() *Registry {
	reg, err := Load(bytes.NewReader(defaultCatalog))
	if err != nil {
		panic(err)
	}
	return reg
}

// Resolve turns a concept into a query, filling its placeholders from params
func (r *Registry) Resolve(c Concept, params Params) (Query, error) {
	steps, ok := r.concepts[c]
	if !ok {
		return Query{}, fmt.Errorf("%w: %s", ErrUnknownConcept, c)
	}

	q := Query{Concept: c, Steps: make([]Step, len(steps))}
	for i, s := range steps {
		resolved, err := s.substitute(params)
		if err != nil {
			return Query{}, fmt.Errorf("concept %s: %w", c, err)
		}
		q.Steps[i] = resolved
	}
	return q, nil
}

// Has reports whether the concept is in the catalog
func (r *Registry) Has(c Concept) bool {
	_, ok := r.concepts[c]
	return ok
}

// Concepts lists the catalog, sorted
func (r *Registry) Concepts() []Concept {
	out := make([]Concept, 0, len(r.concepts))
	for c := range r.concepts {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
