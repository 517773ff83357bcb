//go:build !nodocconv

package document

import (
	"bytes"
	"context"
	"fmt"

	"code.sajari.com/docconv"

	"docverify/internal/domain"
)

// docconvTypes are the formats handed to docconv. PDF, DOC and RTF shell out
// to poppler, wv and unrtf; images need a binary built with the ocr tag.
// A missing tool surfaces as a decoding error on first use.
var docconvTypes = []domain.FileType{
	domain.FileTypePDF,
	domain.FileTypeDOCX,
	domain.FileTypeDOC,
	domain.FileTypeODT,
	domain.FileTypeRTF,
	domain.FileTypeHTML,
	domain.FileTypeJPG,
	domain.FileTypePNG,
	domain.FileTypeTIFF,
}

type docconvDecoder struct {
	mimeType    string
	readability bool
}

func registerDocconv(r *Registry, readability bool) {
	for _, ft := range docconvTypes {
		r.Register(ft, &docconvDecoder{mimeType: domain.FileTypeMIME[ft], readability: readability})
	}
}

func (d *docconvDecoder) Decode(ctx context.Context, data []byte) (string, error) {
	res, err := docconv.Convert(bytes.NewReader(data), d.mimeType, d.readability)
	if err != nil {
		return "", fmt.Errorf("docconv %s: %w", d.mimeType, err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return res.Body, nil
}
