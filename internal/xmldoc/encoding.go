package xmldoc

import (
	"bytes"
	"regexp"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// declEncodingRegex matches the encoding pseudo-attribute of an XML declaration
var declEncodingRegex = regexp.MustCompile(`^(<\?xml[^>]*?encoding\s*=\s*)("[^"]*"|'[^']*')`)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF16LE = []byte{0xFF, 0xFE}
)

// DecodeText converts raw manifest bytes to UTF-8 text.
// A UTF-8 or UTF-16 byte order mark selects the source encoding and is
// dropped; content without a BOM is taken as UTF-8.
func DecodeText(content []byte) (string, error) {
	if !hasUTF16BOM(content) {
		return string(bytes.TrimPrefix(content, bomUTF8)), nil
	}

	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(decoder, content)
	if err != nil {
		return "", err
	}

	// the declaration still names UTF-16, which would make the parser
	// transcode a second time
	out = declEncodingRegex.ReplaceAll(out, []byte(`${1}"UTF-8"`))
	return string(out), nil
}

func hasUTF16BOM(content []byte) bool {
	return bytes.HasPrefix(content, bomUTF16BE) || bytes.HasPrefix(content, bomUTF16LE)
}
