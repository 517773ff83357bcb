package normalizer_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docverify/internal/domain"
	"docverify/internal/normalizer"
)

func TestNumeric(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"100,000.00", "100000"},
		{"100000.00", "100000"},
		{" 1,234.50 ", "1234.5"},
		{"0.10", "0.1"},
		{"-42.000", "-42"},
		{"0.00", "0"},
		{"1e3", "1000"},
		{"12345678901234567890.123", "12345678901234567890.123"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := normalizer.Numeric(domain.StringPtr(tt.input))
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestNumeric_Absent(t *testing.T) {
	assert.Nil(t, normalizer.Numeric(nil))
	assert.Nil(t, normalizer.Numeric(domain.StringPtr("")))
	assert.Nil(t, normalizer.Numeric(domain.StringPtr(" , ")))
	assert.Nil(t, normalizer.Numeric(domain.StringPtr("12abc")))
	assert.Nil(t, normalizer.Numeric(domain.StringPtr("壹万元")))
}

func TestNumeric_RejectsExtremeExponents(t *testing.T) {
	start := time.Now()
	for _, in := range []string{"1e50000000", "1e-50000000", "1e65", "1e-65"} {
		assert.Nil(t, normalizer.Numeric(domain.StringPtr(in)), in)
	}
	assert.Less(t, time.Since(start), time.Second)

	got := normalizer.Numeric(domain.StringPtr("1e64"))
	require.NotNil(t, got)
	assert.Len(t, *got, 65)
}

func TestParseDecimal(t *testing.T) {
	d, ok := normalizer.ParseDecimal("100.50")
	require.True(t, ok)
	assert.Equal(t, "100.5", d.String())

	_, ok = normalizer.ParseDecimal("1" + strings.Repeat("0", normalizer.MaxDecimalDigits) + ".5")
	assert.False(t, ok)
	_, ok = normalizer.ParseDecimal("abc")
	assert.False(t, ok)
}

func TestDefaultTable(t *testing.T) {
	table := normalizer.DefaultTable()

	fn, ok := table.Lookup(normalizer.NameNumeric)
	require.True(t, ok)
	assert.Equal(t, "5", *fn(domain.StringPtr("5.0")))

	_, ok = table.Lookup(normalizer.NameDate)
	assert.True(t, ok)

	_, ok = table.Lookup("uppercase")
	assert.False(t, ok)
}
