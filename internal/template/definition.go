// Package template turns stored template definitions into immutable
// domain.Template values and caches them by id.
package template

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"docverify/internal/domain"
	"docverify/internal/normalizer"
)

const (
	defaultExtractionStrategy = "regex"
	defaultComparisonStrategy = "exact"
)

//go:embed schema.json
var schemaJSON []byte

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func definitionSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("template.schema.json", bytes.NewReader(schemaJSON)); err != nil {
			schemaErr = fmt.Errorf("add template schema: %w", err)
			return
		}
		schema, schemaErr = compiler.Compile("template.schema.json")
	})
	return schema, schemaErr
}

type rawDefinition struct {
	Template rawTemplate `json:"template"`
}

type rawTemplate struct {
	Description string     `json:"description"`
	Fields      []rawField `json:"fields"`
}

type rawField struct {
	Name        string         `json:"name"`
	Required    *bool          `json:"required"`
	Extractor   map[string]any `json:"extractor"`
	Comparison  map[string]any `json:"comparison"`
	Normalizers []string       `json:"normalizers"`
}

// Parse decodes a YAML or JSON definition, validates it against the template
// schema and resolves its normalizer names through table (the built-in
// normalizers when nil).
func Parse(id string, format domain.TemplateFormat, data []byte, table normalizer.Table) (*domain.Template, error) {
	if table == nil {
		table = normalizer.DefaultTable()
	}
	doc, err := decode(format, data)
	if err != nil {
		return nil, fmt.Errorf("%w: template %q: %v", domain.ErrInvalidTemplate, id, err)
	}

	s, err := definitionSchema()
	if err != nil {
		return nil, err
	}
	if err := s.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: template %q: %v", domain.ErrInvalidTemplate, id, err)
	}

	// Round-trip through JSON for typed access.
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: template %q: %v", domain.ErrInvalidTemplate, id, err)
	}
	var raw rawDefinition
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("%w: template %q: %v", domain.ErrInvalidTemplate, id, err)
	}

	fields := make([]domain.FieldSpec, 0, len(raw.Template.Fields))
	for _, rf := range raw.Template.Fields {
		spec := domain.FieldSpec{
			Name:            rf.Name,
			Required:        rf.Required == nil || *rf.Required,
			Extraction:      strategyConfig(rf.Extractor, defaultExtractionStrategy),
			Comparison:      strategyConfig(rf.Comparison, defaultComparisonStrategy),
			NormalizerNames: rf.Normalizers,
		}
		for _, name := range rf.Normalizers {
			fn, ok := table.Lookup(name)
			if !ok {
				return nil, fmt.Errorf("%w: template %q field %q references %q", domain.ErrUnknownNormalizer, id, rf.Name, name)
			}
			spec.Normalizers = append(spec.Normalizers, fn)
		}
		fields = append(fields, spec)
	}

	return domain.NewTemplate(id, raw.Template.Description, fields)
}

// decode yields JSON-compatible generic data for either format.
func decode(format domain.TemplateFormat, data []byte) (any, error) {
	var doc any
	switch format {
	case domain.TemplateFormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
		// Normalise YAML scalars (ints, non-string keys) to their JSON forms.
		b, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("convert yaml: %w", err)
		}
		doc = nil
		if err := json.Unmarshal(b, &doc); err != nil {
			return nil, fmt.Errorf("convert yaml: %w", err)
		}
	case domain.TemplateFormatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported template format %q", format)
	}
	return doc, nil
}

// strategyConfig splits a strategy block into its name and parameters.
func strategyConfig(block map[string]any, fallback string) domain.StrategyConfig {
	cfg := domain.StrategyConfig{Strategy: fallback, Params: make(map[string]any, len(block))}
	for k, v := range block {
		if k == "strategy" {
			if s, ok := v.(string); ok && s != "" {
				cfg.Strategy = s
			}
			continue
		}
		cfg.Params[k] = v
	}
	return cfg
}
