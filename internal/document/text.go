package document

import (
	"bytes"
	"context"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DecodeText decodes plain text. UTF-8 is used when the bytes are valid UTF-8;
// a UTF-16 byte order mark switches to UTF-16; anything else is read as
// GB18030, which covers GBK and GB2312 exports from older systems.
func DecodeText(_ context.Context, data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(bytes.TrimPrefix(data, utf8BOM)), nil
	}
	out, _, err := transform.Bytes(unicode.BOMOverride(simplifiedchinese.GB18030.NewDecoder()), data)
	if err != nil {
		return "", fmt.Errorf("decoding text: %w", err)
	}
	return string(out), nil
}
