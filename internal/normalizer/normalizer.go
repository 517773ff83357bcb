// Package normalizer holds the pure value canonicalizers applied to extracted
// field values before comparison.
package normalizer

import (
	"docverify/internal/domain"
)

const (
	NameDate    = "date"
	NameNumeric = "numeric"
)

// Table maps normalizer names, as referenced by template definitions, to
// their implementations.
type Table map[string]domain.NormalizeFunc

// DefaultTable returns the built-in normalizers.
func DefaultTable() Table {
	return Table{
		NameDate:    Date,
		NameNumeric: Numeric,
	}
}

// Lookup returns the normalizer registered under name.
func (t Table) Lookup(name string) (domain.NormalizeFunc, bool) {
	fn, ok := t[name]
	return fn, ok
}
