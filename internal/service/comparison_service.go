package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"docverify/internal/comparison"
	"docverify/internal/config"
	"docverify/internal/document"
	"docverify/internal/domain"
	"docverify/internal/extraction"
)

// CompareInput holds the parameters for one comparison run.
type CompareInput struct {
	// TemplateID selects the template; empty means the configured default.
	TemplateID string
	// SystemData holds the expected value per field name. Fields without an
	// entry are compared against an absent expectation.
	SystemData map[string]string
	Document   document.Source
}

// TemplateCatalog resolves template ids to loaded templates.
type TemplateCatalog interface {
	Load(ctx context.Context, id string) (*domain.Template, error)
	List(ctx context.Context) ([]string, error)
}

// TextSource obtains the raw text of a document.
type TextSource interface {
	Text(ctx context.Context, src document.Source) (string, error)
}

// ComparisonService runs the extraction, normalization and comparison
// pipeline for a document against expected system values.
type ComparisonService interface {
	Compare(ctx context.Context, input CompareInput) (*domain.ComparisonReport, error)
	ListTemplates(ctx context.Context) ([]string, error)
	GetTemplate(ctx context.Context, id string) (*domain.Template, error)
}

type comparisonService struct {
	templates   TemplateCatalog
	texts       TextSource
	extractors  *extraction.Registry
	comparators *comparison.Registry
	cfg         config.ComparisonConfig
	now         func() time.Time
}

// NewComparisonService creates a new ComparisonService implementation.
func NewComparisonService(
	templates TemplateCatalog,
	texts TextSource,
	extractors *extraction.Registry,
	comparators *comparison.Registry,
	cfg config.ComparisonConfig,
) ComparisonService {
	return &comparisonService{
		templates:   templates,
		texts:       texts,
		extractors:  extractors,
		comparators: comparators,
		cfg:         cfg,
		now:         time.Now,
	}
}

func (s *comparisonService) Compare(ctx context.Context, input CompareInput) (*domain.ComparisonReport, error) {
	templateID := input.TemplateID
	if templateID == "" {
		templateID = s.cfg.DefaultTemplateID
	}
	tpl, err := s.templates.Load(ctx, templateID)
	if err != nil {
		return nil, err
	}

	text, err := s.texts.Text(ctx, input.Document)
	if err != nil {
		return nil, err
	}

	report := &domain.ComparisonReport{
		ReportID:    uuid.New(),
		TemplateID:  tpl.ID,
		Description: tpl.Description,
		Status:      domain.ReportStatusPass,
		Fields:      make([]domain.FieldComparison, 0, len(tpl.Fields)),
	}

	for i := range tpl.Fields {
		field := &tpl.Fields[i]
		row, err := s.compareField(text, field, input.SystemData)
		if err != nil {
			return nil, err
		}

		report.Summary.Total++
		if row.Passed {
			report.Summary.Passed++
		} else {
			report.Summary.Failed++
		}
		// A required field fails the report when its comparator fails or when
		// nothing was extracted, whatever the comparator concluded.
		if field.Required && (!row.Passed || row.ExtractedValue == nil) {
			report.Summary.RequiredFailed++
			report.Status = domain.ReportStatusFail
		}
		report.Fields = append(report.Fields, *row)
	}
	report.GeneratedAt = s.now().UTC()

	log.Printf("comparisonService.Compare: template=%s report=%s status=%s passed=%d/%d",
		tpl.ID, report.ReportID, report.Status, report.Summary.Passed, report.Summary.Total)
	return report, nil
}

func (s *comparisonService) compareField(text string, field *domain.FieldSpec, systemData map[string]string) (*domain.FieldComparison, error) {
	extractor, err := s.extractors.Get(strategyName(field.Extraction, extraction.StrategyRegex))
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", field.Name, err)
	}
	extracted, err := extractor.Extract(text, field.Extraction, field.Name)
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", field.Name, err)
	}

	normalized := field.Normalize(extracted.Value)

	var expected *string
	if v, ok := systemData[field.Name]; ok {
		expected = &v
	}

	actual := normalized
	if actual == nil || *actual == "" {
		actual = extracted.Value
	}

	comparator, err := s.comparators.Get(strategyName(field.Comparison, comparison.StrategyExact))
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", field.Name, err)
	}
	outcome, err := comparator.Compare(field.Name, expected, actual, field.Comparison)
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", field.Name, err)
	}

	return &domain.FieldComparison{
		FieldName:       field.Name,
		Required:        field.Required,
		ExtractedValue:  extracted.Value,
		NormalizedValue: normalized,
		ExpectedValue:   expected,
		Passed:          outcome.Passed,
		Score:           outcome.Score,
		Message:         outcome.Message,
		Confidence:      extracted.Confidence,
		RawMatch:        extracted.RawMatch,
	}, nil
}

func strategyName(cfg domain.StrategyConfig, fallback string) string {
	if cfg.Strategy == "" {
		return fallback
	}
	return cfg.Strategy
}

func (s *comparisonService) ListTemplates(ctx context.Context) ([]string, error) {
	return s.templates.List(ctx)
}

func (s *comparisonService) GetTemplate(ctx context.Context, id string) (*domain.Template, error) {
	return s.templates.Load(ctx, id)
}
