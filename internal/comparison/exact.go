package comparison

import (
	"docverify/internal/domain"
)

// ExactComparator passes when both values are present and byte-for-byte equal.
type ExactComparator struct{}

func (ExactComparator) Compare(field string, expected, actual *string, _ domain.StrategyConfig) (*domain.ComparisonOutcome, error) {
	if msg := missingMessage(expected, actual); msg != "" {
		return outcome(field, expected, actual, false, 0, msg), nil
	}
	if *expected != *actual {
		return outcome(field, expected, actual, false, 0, "values differ"), nil
	}
	return outcome(field, expected, actual, true, 1, "values match"), nil
}

// DateComparator passes when both canonical date strings are present and
// equal. Dates are expected to be normalized before they get here.
type DateComparator struct{}

func (DateComparator) Compare(field string, expected, actual *string, _ domain.StrategyConfig) (*domain.ComparisonOutcome, error) {
	if msg := missingMessage(expected, actual); msg != "" {
		return outcome(field, expected, actual, false, 0, msg), nil
	}
	if *expected != *actual {
		return outcome(field, expected, actual, false, 0, "dates differ"), nil
	}
	return outcome(field, expected, actual, true, 1, "dates match"), nil
}
