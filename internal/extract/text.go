package extract

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// plainText decodes a text upload. Files that are not valid UTF-8 are read
// as Windows-1252, the usual encoding of German exports.
func plainText(data []byte) string {
	var s string
	if utf8.Valid(data) {
		s = string(data)
	} else if decoded, err := charmap.Windows1252.NewDecoder().Bytes(data); err == nil {
		s = string(decoded)
	} else {
		s = strings.ToValidUTF8(string(data), "\ufffd")
	}
	s = strings.TrimPrefix(s, "\ufeff")
	return strings.ReplaceAll(s, "\r\n", "\n")
}
