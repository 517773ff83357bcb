// Package xlsxexport renders comparison reports as Excel workbooks.
package xlsxexport

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"docverify/internal/csvexport"
	"docverify/internal/domain"
)

const (
	FieldsSheet  = "Fields"
	SummarySheet = "Summary"
)

// Write renders the report as a workbook with a per-field sheet and a summary
// sheet, and writes it to w.
func Write(w io.Writer, report *domain.ComparisonReport) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", FieldsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(FieldsSheet, "A1", &csvexport.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i := range report.Fields {
		row := csvexport.FieldRow(report, &report.Fields[i])
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(FieldsSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	if err := f.SetPanes(FieldsSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}

	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("add summary sheet: %w", err)
	}
	summary := [][]interface{}{
		{"Report ID", report.ReportID.String()},
		{"Template", report.TemplateID},
		{"Description", report.Description},
		{"Status", string(report.Status)},
		{"Total Fields", report.Summary.Total},
		{"Passed", report.Summary.Passed},
		{"Failed", report.Summary.Failed},
		{"Required Failed", report.Summary.RequiredFailed},
		{"Generated At", report.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
	}
	for i, row := range summary {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(SummarySheet, cell, &row); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
