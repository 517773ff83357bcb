// Package comparison scores agreement between expected and extracted values.
package comparison

import (
	"fmt"
	"sort"

	"docverify/internal/domain"
)

const (
	StrategyExact   = "exact"
	StrategyFuzzy   = "fuzzy"
	StrategyNumeric = "numeric"
	StrategyDate    = "date"
)

// DefaultFuzzyThreshold is used when no threshold is configured anywhere.
const DefaultFuzzyThreshold = 0.85

// Comparator scores one expected/actual pair. Missing or malformed values
// never produce an error: they are reported as a failed outcome with a zero
// score. Errors are reserved for invalid strategy parameters.
type Comparator interface {
	Compare(fieldName string, expected, actual *string, cfg domain.StrategyConfig) (*domain.ComparisonOutcome, error)
}

// Registry maps strategy names to Comparator implementations. It is populated
// at construction and read-only afterwards.
type Registry struct {
	comparators map[string]Comparator
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{comparators: make(map[string]Comparator)}
}

// DefaultRegistry returns a Registry with the built-in comparators. The fuzzy
// comparator falls back to fuzzyThreshold when a field sets no threshold.
func DefaultRegistry(fuzzyThreshold float64) *Registry {
	r := NewRegistry()
	r.Register(StrategyExact, ExactComparator{})
	r.Register(StrategyFuzzy, NewFuzzyComparator(fuzzyThreshold))
	r.Register(StrategyNumeric, NumericComparator{})
	r.Register(StrategyDate, DateComparator{})
	return r
}

// Register adds a comparator under name, replacing any previous entry.
func (r *Registry) Register(name string, c Comparator) {
	r.comparators[name] = c
}

// Get returns the comparator registered under name.
func (r *Registry) Get(name string) (Comparator, error) {
	c, ok := r.comparators[name]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported comparison strategy %q", domain.ErrUnknownStrategy, name)
	}
	return c, nil
}

// Has reports whether a strategy is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.comparators[name]
	return ok
}

// Names returns the registered strategy names, sorted.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.comparators))
	for name := range r.comparators {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func outcome(field string, expected, actual *string, passed bool, score float64, msg string) *domain.ComparisonOutcome {
	return &domain.ComparisonOutcome{
		FieldName: field,
		Expected:  expected,
		Actual:    actual,
		Passed:    passed,
		Score:     score,
		Message:   msg,
	}
}

// missingMessage describes which side of a comparison is absent, or returns
// "" when both are present.
func missingMessage(expected, actual *string) string {
	switch {
	case expected == nil && actual == nil:
		return "no expected value and no extracted value"
	case expected == nil:
		return "no expected value supplied"
	case actual == nil:
		return "no value extracted from document"
	default:
		return ""
	}
}
