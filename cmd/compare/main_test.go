package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"docverify/internal/domain"
)

func TestParseFlags(t *testing.T) {
	o, err := parseFlags([]string{"-expected", "e.json", "-text", "姓名：张三", "-format", "csv"})
	require.NoError(t, err)
	assert.Equal(t, "csv", o.format)
	assert.Equal(t, "姓名：张三", o.text)

	_, err = parseFlags([]string{"-text", "x"})
	assert.Error(t, err)
	_, err = parseFlags([]string{"-expected", "e.json"})
	assert.Error(t, err)
	_, err = parseFlags([]string{"-expected", "e.json", "-doc", "a.pdf", "-format", "pdf"})
	assert.Error(t, err)
}

func TestReadExpected_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expected.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"id_number":110101199003071234,"customer_name":"张三"}`), 0o600))

	got, err := readExpected(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"id_number": "110101199003071234", "customer_name": "张三"}, got)
}

func TestReadExpected_XLSX(t *testing.T) {
	f := excelize.NewFile()
	rows := [][]interface{}{
		{"Field", "Value"},
		{"customer_name", "张三"},
		{"amount", "50000.00"},
		{"signing_date"},
		{"", "orphan"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	path := filepath.Join(t.TempDir(), "expected.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	got, err := readExpected(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"customer_name": "张三", "amount": "50000.00"}, got)
}

func TestWriteReport_JSON(t *testing.T) {
	name := "张三"
	report := &domain.ComparisonReport{
		ReportID:    uuid.New(),
		TemplateID:  "promise_letter",
		Status:      domain.ReportStatusPass,
		GeneratedAt: time.Now(),
		Fields:      []domain.FieldComparison{{FieldName: "customer_name", Required: true, ExtractedValue: &name, Passed: true, Score: 1}},
	}

	var buf bytes.Buffer
	require.NoError(t, writeReport(&buf, "json", report))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "pass", decoded["status"])
	assert.Contains(t, buf.String(), "张三")
}
