package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NormalizeFunc canonicalizes an extracted value. A nil input or an
// unparsable value yields nil.
type NormalizeFunc func(value *string) *string

// StrategyConfig names a strategy and carries its strategy-specific parameters.
type StrategyConfig struct {
	Strategy string
	Params   map[string]any
}

// MarshalJSON flattens the strategy name into the parameter map, matching the
// on-disk definition shape.
func (c StrategyConfig) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(c.Params)+1)
	for k, v := range c.Params {
		m[k] = v
	}
	m["strategy"] = c.Strategy
	return json.Marshal(m)
}

// Param returns a strategy parameter and whether it was set.
func (c StrategyConfig) Param(key string) (any, bool) {
	v, ok := c.Params[key]
	return v, ok && v != nil
}

// FieldSpec is the static definition of one field within a template.
type FieldSpec struct {
	Name            string          `json:"name"`
	Extraction      StrategyConfig  `json:"extractor"`
	Required        bool            `json:"required"`
	Comparison      StrategyConfig  `json:"comparison"`
	NormalizerNames []string        `json:"normalizers"`
	Normalizers     []NormalizeFunc `json:"-"`
}

// Normalize runs the field's normalizer chain in declaration order.
func (f *FieldSpec) Normalize(value *string) *string {
	result := value
	for _, fn := range f.Normalizers {
		result = fn(result)
	}
	return result
}

// Template is the declarative definition of one document type. It is built
// once by the template registry and shared read-only afterwards.
type Template struct {
	ID          string      `json:"template_id"`
	Description string      `json:"description"`
	Fields      []FieldSpec `json:"fields"`

	index map[string]int
}

// NewTemplate builds a Template, enforcing non-empty and unique field names.
func NewTemplate(id, description string, fields []FieldSpec) (*Template, error) {
	index := make(map[string]int, len(fields))
	for i := range fields {
		name := fields[i].Name
		if name == "" {
			return nil, fmt.Errorf("%w: template %q field #%d has no name", ErrInvalidTemplate, id, i+1)
		}
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("%w: template %q declares field %q more than once", ErrInvalidTemplate, id, name)
		}
		index[name] = i
	}
	return &Template{ID: id, Description: description, Fields: fields, index: index}, nil
}

// Field looks up a field by name.
func (t *Template) Field(name string) (*FieldSpec, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return &t.Fields[i], true
}

// ExtractionResult is the outcome of running one extractor for one field.
type ExtractionResult struct {
	FieldName  string  `json:"field_name"`
	Value      *string `json:"value"`
	Confidence float64 `json:"confidence"`
	RawMatch   *string `json:"raw_match"`
}

// Found reports whether the extractor produced a value.
func (r *ExtractionResult) Found() bool {
	return r.Value != nil
}

// ComparisonOutcome is the verdict of one comparator for one field.
type ComparisonOutcome struct {
	FieldName string  `json:"field_name"`
	Expected  *string `json:"expected"`
	Actual    *string `json:"actual"`
	Passed    bool    `json:"passed"`
	Score     float64 `json:"score"`
	Message   string  `json:"message"`
}

// FieldComparison is one row of a comparison report.
type FieldComparison struct {
	FieldName       string  `json:"field_name"`
	Required        bool    `json:"required"`
	ExtractedValue  *string `json:"extracted_value"`
	NormalizedValue *string `json:"normalized_value"`
	ExpectedValue   *string `json:"expected_value"`
	Passed          bool    `json:"passed"`
	Score           float64 `json:"score"`
	Message         string  `json:"message"`
	Confidence      float64 `json:"confidence"`
	RawMatch        *string `json:"raw_match"`
}

// ReportSummary holds aggregate counts over a report's rows.
type ReportSummary struct {
	Total          int `json:"total"`
	Passed         int `json:"passed"`
	Failed         int `json:"failed"`
	RequiredFailed int `json:"required_failed"`
}

// ComparisonReport is the result of one comparison run.
type ComparisonReport struct {
	ReportID    uuid.UUID         `json:"report_id"`
	TemplateID  string            `json:"template_id"`
	Description string            `json:"description"`
	Status      ReportStatus      `json:"status"`
	Summary     ReportSummary     `json:"summary"`
	Fields      []FieldComparison `json:"fields"`
	GeneratedAt time.Time         `json:"generated_at"`
}

// Passed reports whether the overall verdict is a pass.
func (r *ComparisonReport) Passed() bool {
	return r.Status == ReportStatusPass
}
