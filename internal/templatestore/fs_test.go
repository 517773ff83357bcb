package templatestore_test

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docverify/internal/domain"
	"docverify/internal/templatestore"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"promise_letter.yaml": {Data: []byte("template: {fields: []}")},
		"promise_letter.json": {Data: []byte(`{"template":{}}`)},
		"loan.yml":            {Data: []byte("template: {}")},
		"receipt.json":        {Data: []byte(`{"template":{}}`)},
		"README.md":           {Data: []byte("# templates")},
		"archive/old.yaml":    {Data: []byte("template: {}")},
	}
}

func TestFSStore_Load_PrefersYAML(t *testing.T) {
	s := templatestore.NewFSStore(testFS())

	def, err := s.Load(context.Background(), "promise_letter")
	require.NoError(t, err)
	assert.Equal(t, "promise_letter", def.ID)
	assert.Equal(t, domain.TemplateFormatYAML, def.Format)
	assert.Equal(t, "template: {fields: []}", string(def.Data))
}

func TestFSStore_Load_FallsBackThroughExtensions(t *testing.T) {
	s := templatestore.NewFSStore(testFS())

	def, err := s.Load(context.Background(), "loan")
	require.NoError(t, err)
	assert.Equal(t, domain.TemplateFormatYAML, def.Format)

	def, err = s.Load(context.Background(), "receipt")
	require.NoError(t, err)
	assert.Equal(t, domain.TemplateFormatJSON, def.Format)
}

func TestFSStore_Load_NotFound(t *testing.T) {
	s := templatestore.NewFSStore(testFS())

	for _, id := range []string{"missing", "", "../promise_letter", "archive/old", `archive\old`, ".."} {
		_, err := s.Load(context.Background(), id)
		assert.ErrorIs(t, err, domain.ErrTemplateNotFound, "id %q", id)
	}
}

func TestFSStore_List(t *testing.T) {
	s := templatestore.NewFSStore(testFS())

	ids, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"loan", "promise_letter", "receipt"}, ids)
}

func TestDirStore(t *testing.T) {
	s := templatestore.NewDirStore(t.TempDir())

	_, err := s.Load(context.Background(), "anything")
	assert.ErrorIs(t, err, domain.ErrTemplateNotFound)

	ids, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}
