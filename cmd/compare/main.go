// Command compare runs one document comparison from the command line.
//
// Usage:
//
//	go run ./cmd/compare -template promise_letter -expected expected.json -doc letter.pdf
//	go run ./cmd/compare -expected expected.xlsx -text "姓名：张三" -format csv -out report.csv
//
// Expected values come from a JSON object or from the first sheet of an
// .xlsx workbook holding field names in column A and values in column B.
// The exit status is 0 when the report passes, 1 when it fails and 2 on error.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"docverify/internal/app"
	"docverify/internal/config"
	"docverify/internal/csvexport"
	"docverify/internal/document"
	"docverify/internal/domain"
	"docverify/internal/service"
	"docverify/internal/xlsxexport"
)

const (
	exitPass  = 0
	exitFail  = 1
	exitError = 2
)

func main() {
	code, err := run(os.Args[1:])
	if err != nil {
		log.Printf("compare: %v", err)
		os.Exit(exitError)
	}
	os.Exit(code)
}

type options struct {
	templateID string
	expected   string
	doc        string
	text       string
	format     string
	out        string
}

func parseFlags(args []string) (*options, error) {
	fs := flag.NewFlagSet("compare", flag.ContinueOnError)
	o := &options{}
	fs.StringVar(&o.templateID, "template", "", "template id (default: configured default template)")
	fs.StringVar(&o.expected, "expected", "", "expected values file (.json or .xlsx)")
	fs.StringVar(&o.doc, "doc", "", "document path or s3://bucket/key")
	fs.StringVar(&o.text, "text", "", "literal document text")
	fs.StringVar(&o.format, "format", "json", "output format: json, csv or xlsx")
	fs.StringVar(&o.out, "out", "", "output file (default: stdout)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if o.expected == "" {
		return nil, errors.New("-expected is required")
	}
	if o.doc == "" && o.text == "" {
		return nil, errors.New("one of -doc or -text is required")
	}
	switch o.format {
	case "json", "csv", "xlsx":
	default:
		return nil, fmt.Errorf("unknown -format %q", o.format)
	}
	return o, nil
}

func run(args []string) (int, error) {
	o, err := parseFlags(args)
	if err != nil {
		return exitError, err
	}

	systemData, err := readExpected(o.expected)
	if err != nil {
		return exitError, err
	}

	cfg, err := config.Load()
	if err != nil {
		return exitError, fmt.Errorf("failed to load config: %w", err)
	}

	ctx := context.Background()
	a, err := app.New(ctx, cfg, app.Options{UnrestrictedPaths: true})
	if err != nil {
		return exitError, err
	}
	defer a.Close()

	report, err := a.Service.Compare(ctx, service.CompareInput{
		TemplateID: o.templateID,
		SystemData: systemData,
		Document:   document.Source{Text: o.text, Path: o.doc},
	})
	if err != nil {
		return exitError, err
	}

	var w io.Writer = os.Stdout
	if o.out != "" {
		f, err := os.Create(o.out)
		if err != nil {
			return exitError, fmt.Errorf("create output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		w = f
	}
	if err := writeReport(w, o.format, report); err != nil {
		return exitError, err
	}

	log.Printf("compare: template %s: %s (%d/%d fields passed)",
		report.TemplateID, report.Status, report.Summary.Passed, report.Summary.Total)
	if !report.Passed() {
		return exitFail, nil
	}
	return exitPass, nil
}

func writeReport(w io.Writer, format string, report *domain.ComparisonReport) error {
	switch format {
	case "csv":
		cw := csvexport.NewWriter(w)
		if err := cw.WriteHeader(); err != nil {
			return err
		}
		if err := cw.WriteReport(report); err != nil {
			return err
		}
		cw.Flush()
		return cw.Error()
	case "xlsx":
		return xlsxexport.Write(w, report)
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(report)
	}
}

func readExpected(path string) (map[string]string, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return readExpectedSheet(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read expected values: %w", err)
	}
	return service.DecodeSystemData(data)
}

// readExpectedSheet reads field/value pairs from the first sheet. A leading
// "field" header row is skipped. Rows without a value are left out so the
// field compares as absent.
func readExpectedSheet(path string) (map[string]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open Excel file: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("read sheet: %w", err)
	}

	out := make(map[string]string, len(rows))
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		name := strings.TrimSpace(row[0])
		if name == "" || (i == 0 && strings.EqualFold(name, "field")) {
			continue
		}
		if len(row) < 2 || strings.TrimSpace(row[1]) == "" {
			continue
		}
		out[name] = strings.TrimSpace(row[1])
	}
	return out, nil
}
