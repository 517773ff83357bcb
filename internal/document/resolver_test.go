package document_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docverify/internal/document"
	"docverify/internal/domain"
	"docverify/mocks"
)

const letter = "承诺书\n姓名：张三\n身份证号：110101199001011234\n金额：100,000.00\n日期：2024-05-20"

func textOnlyResolver(storage *mocks.MockObjectStorage, baseDir string, maxSize int64) *document.Resolver {
	reg := document.NewRegistry()
	reg.Register(domain.FileTypeTXT, document.DecoderFunc(document.DecodeText))
	if storage == nil {
		return document.NewResolver(reg, nil, baseDir, maxSize)
	}
	return document.NewResolver(reg, storage, baseDir, maxSize)
}

func TestResolver_LiteralTextWins(t *testing.T) {
	r := textOnlyResolver(nil, "", 0)

	text, err := r.Text(context.Background(), document.Source{Text: letter, Path: "/does/not/exist.pdf"})
	require.NoError(t, err)
	assert.Equal(t, letter, text)
}

func TestResolver_NoInput(t *testing.T) {
	r := textOnlyResolver(nil, "", 0)

	_, err := r.Text(context.Background(), document.Source{Text: "   "})
	require.ErrorIs(t, err, domain.ErrDocumentSource)
	assert.Contains(t, err.Error(), "no input")
}

func TestResolver_LocalFileUnderBaseDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "letter.txt"), []byte(letter), 0o600))
	r := textOnlyResolver(nil, dir, 0)

	text, err := r.Text(context.Background(), document.Source{Path: "letter.txt"})
	require.NoError(t, err)
	assert.Equal(t, letter, text)

	text, err = r.Text(context.Background(), document.Source{Path: filepath.Join(dir, "letter.txt")})
	require.NoError(t, err)
	assert.Equal(t, letter, text)
}

func TestResolver_LocalPathErrors(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "big.txt"), make([]byte, 64), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o700))
	r := textOnlyResolver(nil, dir, 32)

	tests := []struct {
		name string
		path string
		want error
	}{
		{"missing file", "missing.txt", domain.ErrDocumentSource},
		{"escapes base dir", "../outside.txt", domain.ErrDocumentSource},
		{"absolute outside base dir", "/etc/hostname", domain.ErrDocumentSource},
		{"directory", "sub", domain.ErrDocumentSource},
		{"too large", "big.txt", domain.ErrFileTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Text(context.Background(), document.Source{Path: tt.path})
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, domain.ErrDocumentSource)
		})
	}
}

func TestResolver_UploadedContent(t *testing.T) {
	r := textOnlyResolver(nil, "", 1024)

	text, err := r.Text(context.Background(), document.Source{Content: []byte(letter), Filename: "scan.TXT"})
	require.NoError(t, err)
	assert.Equal(t, letter, text)

	_, err = r.Text(context.Background(), document.Source{Content: make([]byte, 2048), Filename: "big.txt"})
	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
}

func TestResolver_UnsupportedAndUnregisteredFormats(t *testing.T) {
	r := textOnlyResolver(nil, "", 0)

	_, err := r.Text(context.Background(), document.Source{Content: []byte{0x00, 0x01, 0x02}, Filename: "data.bin"})
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
	assert.ErrorIs(t, err, domain.ErrDocumentSource)

	_, err = r.Text(context.Background(), document.Source{Content: []byte("%PDF-1.4\n"), Filename: "letter.pdf"})
	require.ErrorIs(t, err, domain.ErrDocumentSource)
	assert.Contains(t, err.Error(), "no decoder available for pdf")
}

func TestResolver_DecoderFailure(t *testing.T) {
	reg := document.NewRegistry()
	reg.Register(domain.FileTypePDF, document.DecoderFunc(func(context.Context, []byte) (string, error) {
		return "", errors.New("pdftotext: executable file not found")
	}))
	r := document.NewResolver(reg, nil, "", 0)

	_, err := r.Text(context.Background(), document.Source{Content: []byte("%PDF-1.4\n"), Filename: "letter.pdf"})
	require.ErrorIs(t, err, domain.ErrDocumentSource)
	assert.Contains(t, err.Error(), "decoding failed")
}

func TestResolver_S3Reference(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	storage.On("Download", mock.Anything, "docs", "2024/letter.txt").Return([]byte(letter), nil)
	storage.On("Download", mock.Anything, "docs", "missing.txt").Return(nil, domain.ErrObjectNotFound)
	r := textOnlyResolver(storage, "", 0)

	text, err := r.Text(context.Background(), document.Source{Path: "s3://docs/2024/letter.txt"})
	require.NoError(t, err)
	assert.Equal(t, letter, text)

	_, err = r.Text(context.Background(), document.Source{Path: "s3://docs/missing.txt"})
	assert.ErrorIs(t, err, domain.ErrDocumentSource)

	_, err = r.Text(context.Background(), document.Source{Path: "s3://docs"})
	assert.ErrorIs(t, err, domain.ErrDocumentSource)
}

func TestResolver_S3WithoutStorage(t *testing.T) {
	r := textOnlyResolver(nil, "", 0)

	_, err := r.Text(context.Background(), document.Source{Path: "s3://docs/letter.txt"})
	require.ErrorIs(t, err, domain.ErrDocumentSource)
	assert.Contains(t, err.Error(), "not configured")
}
