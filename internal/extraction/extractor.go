// Package extraction locates raw field values in document text.
package extraction

import (
	"fmt"
	"sort"

	"docverify/internal/domain"
)

// StrategyRegex is the name of the regular-expression extractor.
const StrategyRegex = "regex"

// Extractor scans document text for one field. Not finding the field is a
// valid outcome reported through a result with a nil Value; errors are
// reserved for configuration problems.
type Extractor interface {
	Extract(text string, cfg domain.StrategyConfig, fieldName string) (*domain.ExtractionResult, error)
}

// Registry maps strategy names to Extractor implementations. It is populated
// at construction and read-only afterwards.
type Registry struct {
	extractors map[string]Extractor
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{extractors: make(map[string]Extractor)}
}

// DefaultRegistry returns a Registry holding the built-in extractors.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(StrategyRegex, NewRegexExtractor())
	return r
}

// Register adds an extractor under name, replacing any previous entry.
func (r *Registry) Register(name string, e Extractor) {
	r.extractors[name] = e
}

// Get returns the extractor registered under name.
func (r *Registry) Get(name string) (Extractor, error) {
	e, ok := r.extractors[name]
	if !ok {
		return nil, fmt.Errorf("%w: no extractor registered for strategy %q", domain.ErrUnknownStrategy, name)
	}
	return e, nil
}

// Has reports whether a strategy is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.extractors[name]
	return ok
}

// Names returns the registered strategy names, sorted.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.extractors))
	for name := range r.extractors {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
