package document

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"docverify/internal/domain"
)

// DetectFileType picks the document format from the file name extension,
// falling back to content sniffing when the name has no known extension.
func DetectFileType(name string, data []byte) (domain.FileType, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	if ft, ok := domain.AllowedExtensions[ext]; ok {
		return ft, nil
	}

	for mt := mimetype.Detect(data); mt != nil; mt = mt.Parent() {
		for ft, mime := range domain.FileTypeMIME {
			if mt.Is(mime) {
				return ft, nil
			}
		}
	}
	if ext == "" {
		return "", fmt.Errorf("%w: cannot determine format of %q", domain.ErrUnsupportedFileType, name)
	}
	return "", fmt.Errorf("%w: .%s", domain.ErrUnsupportedFileType, ext)
}
