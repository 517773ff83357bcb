package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"docverify/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// Columns defines the header row shared by the CSV and XLSX exports.
var Columns = []string{
	"Report ID",
	"Template",
	"Report Status",
	"Field",
	"Required",
	"Extracted Value",
	"Normalized Value",
	"Expected Value",
	"Passed",
	"Score",
	"Confidence",
	"Message",
	"Raw Match",
	"Generated At",
}

// Writer wraps csv.Writer for exporting comparison reports as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(Columns)
}

// WriteReport writes one row per field of the report.
func (w *Writer) WriteReport(report *domain.ComparisonReport) error {
	for i := range report.Fields {
		if err := w.csv.Write(FieldRow(report, &report.Fields[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// FieldRow converts one report row to a slice aligned with Columns. Absent
// values are written as empty cells.
func FieldRow(report *domain.ComparisonReport, f *domain.FieldComparison) []string {
	return []string{
		report.ReportID.String(),
		report.TemplateID,
		string(report.Status),
		f.FieldName,
		formatBool(f.Required),
		domain.StringValue(f.ExtractedValue),
		domain.StringValue(f.NormalizedValue),
		domain.StringValue(f.ExpectedValue),
		formatBool(f.Passed),
		formatScore(f.Score),
		formatScore(f.Confidence),
		f.Message,
		domain.StringValue(f.RawMatch),
		report.GeneratedAt.Format(time.RFC3339),
	}
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

func formatBool(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a template id for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		s = "report"
	}
	return s
}

// BuildFilename returns a sanitized filename for Content-Disposition header.
// Format: {sanitized_template_id}_{YYYY-MM-DD}.{ext}
func BuildFilename(templateID, ext string) string {
	sanitized := SanitizeFilename(templateID)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.%s", sanitized, date, ext)
}
