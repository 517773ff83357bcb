package normalizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docverify/internal/domain"
	"docverify/internal/normalizer"
)

func TestDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"iso", "2024-05-20", "2024-05-20"},
		{"slash", "2024/05/20", "2024-05-20"},
		{"dot", "2024.05.20", "2024-05-20"},
		{"compact", "20240520", "2024-05-20"},
		{"with_time", "2024-05-20 13:45:00", "2024-05-20"},
		{"unpadded", "2024-5-2", "2024-05-02"},
		{"cjk", "2024年5月20日", "2024-05-20"},
		{"cjk_padded", "2024年05月20日", "2024-05-20"},
		{"surrounding_space", "  2024-05-20\n", "2024-05-20"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizer.Date(domain.StringPtr(tt.input))
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestDate_Absent(t *testing.T) {
	assert.Nil(t, normalizer.Date(nil))
	assert.Nil(t, normalizer.Date(domain.StringPtr("")))
	assert.Nil(t, normalizer.Date(domain.StringPtr("   ")))
	assert.Nil(t, normalizer.Date(domain.StringPtr("20 May 2024")))
	assert.Nil(t, normalizer.Date(domain.StringPtr("2024-02-30")))
	assert.Nil(t, normalizer.Date(domain.StringPtr("not a date")))
}

func TestDate_Idempotent(t *testing.T) {
	inputs := []string{"2024/05/20", "20231231", "2020年2月29日", "1999.1.1 ", "2024-05-20 00:00:00"}
	for _, in := range inputs {
		first := normalizer.Date(domain.StringPtr(in))
		require.NotNil(t, first, in)
		second := normalizer.Date(first)
		require.NotNil(t, second, in)
		assert.Equal(t, *first, *second, in)
	}
}
