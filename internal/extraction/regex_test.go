package extraction_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docverify/internal/domain"
	"docverify/internal/extraction"
)

const letter = "承诺书\n姓名：张三\n身份证号：110101199001011234\n金额：100,000.00\n日期：2024-05-20"

func regexCfg(params map[string]any) domain.StrategyConfig {
	return domain.StrategyConfig{Strategy: extraction.StrategyRegex, Params: params}
}

func TestRegexExtractor_PositionalGroup(t *testing.T) {
	e := extraction.NewRegexExtractor()

	res, err := e.Extract(letter, regexCfg(map[string]any{"pattern": `金额[:：]\s*([\d,\.]+)`}), "amount")
	require.NoError(t, err)
	require.NotNil(t, res.Value)
	assert.Equal(t, "amount", res.FieldName)
	assert.Equal(t, "100,000.00", *res.Value)
	require.NotNil(t, res.RawMatch)
	assert.Equal(t, "金额：100,000.00", *res.RawMatch)
	assert.Equal(t, 1.0, res.Confidence)
}

func TestRegexExtractor_NamedValueGroupWins(t *testing.T) {
	e := extraction.NewRegexExtractor()

	res, err := e.Extract(letter, regexCfg(map[string]any{
		"pattern": `(身份证号)[:：](?P<value>\d{17}[\dXx])`,
	}), "id_number")
	require.NoError(t, err)
	require.NotNil(t, res.Value)
	assert.Equal(t, "110101199001011234", *res.Value)
}

func TestRegexExtractor_NoGroupsUsesWholeMatch(t *testing.T) {
	e := extraction.NewRegexExtractor()

	res, err := e.Extract(letter, regexCfg(map[string]any{"pattern": `\d{4}-\d{2}-\d{2}`}), "signing_date")
	require.NoError(t, err)
	require.NotNil(t, res.Value)
	assert.Equal(t, "2024-05-20", *res.Value)
}

func TestRegexExtractor_NoMatch(t *testing.T) {
	e := extraction.NewRegexExtractor()

	res, err := e.Extract(letter, regexCfg(map[string]any{"pattern": `电话[:：](\d+)`, "confidence": 0.7}), "phone")
	require.NoError(t, err)
	assert.False(t, res.Found())
	assert.Nil(t, res.Value)
	assert.Nil(t, res.RawMatch)
	assert.Equal(t, 0.0, res.Confidence)
}

func TestRegexExtractor_UnmatchedOptionalGroup(t *testing.T) {
	e := extraction.NewRegexExtractor()

	res, err := e.Extract("姓名：", regexCfg(map[string]any{"pattern": `姓名[:：](\S+)?`}), "customer_name")
	require.NoError(t, err)
	assert.Nil(t, res.Value)
	require.NotNil(t, res.RawMatch)
	assert.Equal(t, "姓名：", *res.RawMatch)
}

func TestRegexExtractor_CaseInsensitiveFlag(t *testing.T) {
	e := extraction.NewRegexExtractor()
	text := "Contract No: AB-1029"

	res, err := e.Extract(text, regexCfg(map[string]any{"pattern": `contract no:\s*(\S+)`}), "contract_no")
	require.NoError(t, err)
	assert.Nil(t, res.Value)

	res, err = e.Extract(text, regexCfg(map[string]any{"pattern": `contract no:\s*(\S+)`, "flags": "i"}), "contract_no")
	require.NoError(t, err)
	require.NotNil(t, res.Value)
	assert.Equal(t, "AB-1029", *res.Value)
}

func TestRegexExtractor_ConfiguredConfidence(t *testing.T) {
	e := extraction.NewRegexExtractor()

	t.Run("float", func(t *testing.T) {
		res, err := e.Extract(letter, regexCfg(map[string]any{"pattern": `姓名[:：](\S+)`, "confidence": 0.8}), "customer_name")
		require.NoError(t, err)
		assert.Equal(t, 0.8, res.Confidence)
	})

	t.Run("string", func(t *testing.T) {
		res, err := e.Extract(letter, regexCfg(map[string]any{"pattern": `姓名[:：](\S+)`, "confidence": "0.6"}), "customer_name")
		require.NoError(t, err)
		assert.Equal(t, 0.6, res.Confidence)
	})

	t.Run("out_of_range", func(t *testing.T) {
		_, err := e.Extract(letter, regexCfg(map[string]any{"pattern": `姓名[:：](\S+)`, "confidence": 1.5}), "customer_name")
		assert.ErrorIs(t, err, domain.ErrStrategyConfig)
	})
}

func TestRegexExtractor_ConfigErrors(t *testing.T) {
	e := extraction.NewRegexExtractor()

	t.Run("missing_pattern", func(t *testing.T) {
		_, err := e.Extract(letter, regexCfg(nil), "amount")
		assert.ErrorIs(t, err, domain.ErrStrategyConfig)
		assert.Contains(t, err.Error(), "pattern")
	})

	t.Run("empty_pattern", func(t *testing.T) {
		_, err := e.Extract(letter, regexCfg(map[string]any{"pattern": ""}), "amount")
		assert.ErrorIs(t, err, domain.ErrStrategyConfig)
	})

	t.Run("invalid_pattern", func(t *testing.T) {
		_, err := e.Extract(letter, regexCfg(map[string]any{"pattern": `(unclosed`}), "amount")
		assert.ErrorIs(t, err, domain.ErrStrategyConfig)
	})
}

func TestRegistry(t *testing.T) {
	r := extraction.DefaultRegistry()

	e, err := r.Get(extraction.StrategyRegex)
	require.NoError(t, err)
	assert.NotNil(t, e)
	assert.True(t, r.Has(extraction.StrategyRegex))
	assert.Equal(t, []string{"regex"}, r.Names())

	_, err = r.Get("layout")
	assert.ErrorIs(t, err, domain.ErrUnknownStrategy)
	assert.Contains(t, err.Error(), "layout")
}

type fixedExtractor struct{ value string }

func (f fixedExtractor) Extract(_ string, _ domain.StrategyConfig, field string) (*domain.ExtractionResult, error) {
	return &domain.ExtractionResult{FieldName: field, Value: domain.StringPtr(f.value), Confidence: 0.5}, nil
}

func TestRegistry_CustomStrategy(t *testing.T) {
	r := extraction.DefaultRegistry()
	r.Register("fixed", fixedExtractor{value: "x"})

	e, err := r.Get("fixed")
	require.NoError(t, err)
	res, err := e.Extract("", domain.StrategyConfig{Strategy: "fixed"}, "f")
	require.NoError(t, err)
	assert.Equal(t, "x", *res.Value)
	assert.Equal(t, []string{"fixed", "regex"}, r.Names())
}

func TestRegexExtractor_OnlyCaseFlagHonoured(t *testing.T) {
	e := extraction.NewRegexExtractor()
	text := "x\nContract No: AB-1029"

	res, err := e.Extract(text, regexCfg(map[string]any{"pattern": `^contract no:\s*(\S+)`, "flags": "im"}), "contract_no")
	require.NoError(t, err)
	assert.Nil(t, res.Value, "multi-line flag must not apply")

	res, err = e.Extract("a\nb", regexCfg(map[string]any{"pattern": `(a.b)`, "flags": "s"}), "span")
	require.NoError(t, err)
	assert.Nil(t, res.Value, "dot-all flag must not apply")
}
