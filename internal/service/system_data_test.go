package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docverify/internal/service"
)

func TestDecodeSystemData(t *testing.T) {
	got, err := service.DecodeSystemData([]byte(
		`{"id_number":110101199003071234,"amount":50000.5,"name":"张三","vip":false,"branch":null}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"id_number": "110101199003071234",
		"amount":    "50000.5",
		"name":      "张三",
		"vip":       "false",
	}, got)
}

func TestDecodeSystemData_Invalid(t *testing.T) {
	for _, in := range []string{``, `null`, `[1]`, `"x"`, `{"a":{"b":1}}`, `{"a":[1]}`} {
		_, err := service.DecodeSystemData([]byte(in))
		assert.Error(t, err, in)
	}
}

func TestSystemData_NativeTypes(t *testing.T) {
	got, err := service.SystemData(map[string]interface{}{"n": 42, "f": 1.5, "s": "x"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"n": "42", "f": "1.5", "s": "x"}, got)
}
