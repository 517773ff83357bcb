package comparison

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"

	"docverify/internal/domain"
	"docverify/internal/normalizer"
)

// NumericComparator compares decimal values within an absolute tolerance
// ("tolerance" parameter, default 0). The score degrades with the relative
// difference, so near misses still surface a non-zero score.
type NumericComparator struct{}

func (NumericComparator) Compare(field string, expected, actual *string, cfg domain.StrategyConfig) (*domain.ComparisonOutcome, error) {
	tolerance := decimal.Zero
	if raw, ok := cfg.Param("tolerance"); ok {
		t, ok := normalizer.ParseDecimal(strings.TrimSpace(cast.ToString(raw)))
		if !ok || t.IsNegative() {
			return nil, fmt.Errorf("%w: field %q tolerance %v is not a non-negative decimal", domain.ErrStrategyConfig, field, raw)
		}
		tolerance = t
	}

	if msg := missingMessage(expected, actual); msg != "" {
		return outcome(field, expected, actual, false, 0, msg), nil
	}

	exp, ok := normalizer.ParseDecimal(strings.TrimSpace(*expected))
	if !ok {
		return outcome(field, expected, actual, false, 0, fmt.Sprintf("expected value %q is not a number", *expected)), nil
	}
	act, ok := normalizer.ParseDecimal(strings.TrimSpace(*actual))
	if !ok {
		return outcome(field, expected, actual, false, 0, fmt.Sprintf("extracted value %q is not a number", *actual)), nil
	}

	diff := exp.Sub(act).Abs()
	passed := diff.LessThanOrEqual(tolerance)
	msg := fmt.Sprintf("difference %s, tolerance %s", diff.String(), tolerance.String())
	return outcome(field, expected, actual, passed, numericScore(exp, diff), msg), nil
}

// numericScore is 1 - diff/|expected| clamped to [0,1]. An exact match scores
// 1; any difference against a zero expectation scores 0.
func numericScore(expected, diff decimal.Decimal) float64 {
	if diff.IsZero() {
		return 1
	}
	if expected.IsZero() {
		return 0
	}
	score := decimal.NewFromInt(1).Sub(diff.Div(expected.Abs()))
	if score.IsNegative() {
		return 0
	}
	return score.InexactFloat64()
}
