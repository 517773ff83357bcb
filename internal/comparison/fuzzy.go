package comparison

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cast"

	"docverify/internal/domain"
)

// FuzzyComparator passes when the similarity ratio of the two values reaches
// the threshold. The score is the ratio whether or not the field passes.
type FuzzyComparator struct {
	defaultThreshold float64
}

// NewFuzzyComparator creates a FuzzyComparator; a non-positive default falls
// back to DefaultFuzzyThreshold.
func NewFuzzyComparator(defaultThreshold float64) *FuzzyComparator {
	if defaultThreshold <= 0 {
		defaultThreshold = DefaultFuzzyThreshold
	}
	return &FuzzyComparator{defaultThreshold: defaultThreshold}
}

func (c *FuzzyComparator) Compare(field string, expected, actual *string, cfg domain.StrategyConfig) (*domain.ComparisonOutcome, error) {
	threshold := c.defaultThreshold
	if raw, ok := cfg.Param("threshold"); ok {
		t, err := cast.ToFloat64E(raw)
		if err != nil || t < 0 || t > 1 {
			return nil, fmt.Errorf("%w: field %q threshold %v is not a number in [0,1]", domain.ErrStrategyConfig, field, raw)
		}
		threshold = t
	}

	if msg := missingMessage(expected, actual); msg != "" {
		return outcome(field, expected, actual, false, 0, msg), nil
	}

	ratio := Similarity(*expected, *actual)
	msg := fmt.Sprintf("similarity %.2f, threshold %.2f", ratio, threshold)
	return outcome(field, expected, actual, ratio >= threshold, ratio, msg), nil
}

// Similarity returns twice the number of matched characters in the matching
// blocks divided by the combined length of a and b. The inputs are put in a
// fixed order first so the result does not depend on argument position.
func Similarity(a, b string) float64 {
	if a > b {
		a, b = b, a
	}
	return difflib.NewMatcher(splitRunes(a), splitRunes(b)).Ratio()
}

func splitRunes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
