package extraction

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/spf13/cast"

	"docverify/internal/domain"
)

const valueGroup = "value"

// RegexExtractor returns the first match of a configured pattern.
//
// Parameters:
//   - pattern (required): RE2 expression. A group named "value" holds the
//     field value; without one the first positional group is used, and a
//     pattern with no groups yields the whole match.
//   - flags: "i" case-insensitive. Other characters are ignored.
//   - confidence: reported verbatim on a match, default 1.0.
type RegexExtractor struct {
	cache sync.Map // flag prefix + pattern -> *regexp.Regexp
}

// NewRegexExtractor creates a RegexExtractor.
func NewRegexExtractor() *RegexExtractor {
	return &RegexExtractor{}
}

func (e *RegexExtractor) Extract(text string, cfg domain.StrategyConfig, fieldName string) (*domain.ExtractionResult, error) {
	pattern := ""
	if raw, ok := cfg.Param("pattern"); ok {
		pattern = cast.ToString(raw)
	}
	if pattern == "" {
		return nil, fmt.Errorf("%w: regex extractor for field %q requires a 'pattern'", domain.ErrStrategyConfig, fieldName)
	}

	confidence := 1.0
	if raw, ok := cfg.Param("confidence"); ok {
		c, err := cast.ToFloat64E(raw)
		if err != nil || c < 0 || c > 1 {
			return nil, fmt.Errorf("%w: field %q confidence %v is not a number in [0,1]", domain.ErrStrategyConfig, fieldName, raw)
		}
		confidence = c
	}

	flags := ""
	if raw, ok := cfg.Param("flags"); ok {
		flags = cast.ToString(raw)
	}

	re, err := e.compile(pattern, flags)
	if err != nil {
		return nil, fmt.Errorf("%w: field %q: %v", domain.ErrStrategyConfig, fieldName, err)
	}

	loc := re.FindStringSubmatchIndex(text)
	if loc == nil {
		return &domain.ExtractionResult{FieldName: fieldName, Confidence: 0}, nil
	}

	group := func(i int) *string {
		if loc[2*i] < 0 {
			return nil
		}
		s := text[loc[2*i]:loc[2*i+1]]
		return &s
	}

	var value *string
	switch idx := re.SubexpIndex(valueGroup); {
	case idx >= 0:
		value = group(idx)
	case re.NumSubexp() >= 1:
		value = group(1)
	default:
		value = group(0)
	}

	return &domain.ExtractionResult{
		FieldName:  fieldName,
		Value:      value,
		Confidence: confidence,
		RawMatch:   group(0),
	}, nil
}

func (e *RegexExtractor) compile(pattern, flags string) (*regexp.Regexp, error) {
	prefix := flagPrefix(flags)
	key := prefix + pattern
	if re, ok := e.cache.Load(key); ok {
		return re.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(prefix + pattern)
	if err != nil {
		return nil, fmt.Errorf("compiling pattern: %w", err)
	}
	e.cache.Store(key, re)
	return re, nil
}

// flagPrefix converts the flags parameter into an RE2 inline flag group.
func flagPrefix(flags string) string {
	if strings.ContainsAny(flags, "iI") {
		return "(?i)"
	}
	return ""
}
