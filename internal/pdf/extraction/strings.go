package extraction

import (
	"bytes"
	"encoding/hex"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

var utf16BOM = []byte{0xFE, 0xFF}

// unescapeLiteral resolves the backslash escapes of a PDF literal string body
// (the bytes between the outer parentheses).
func unescapeLiteral(raw []byte) []byte {
	if bytes.IndexByte(raw, '\\') < 0 {
		return raw
	}

	out := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c != '\\' || i+1 == len(raw) {
			out = append(out, c)
			continue
		}

		i++
		switch e := raw[i]; e {
		case 'n':
			out = append(out, '\n')
		case 'r':
			out = append(out, '\r')
		case 't':
			out = append(out, '\t')
		case 'b':
			out = append(out, '\b')
		case 'f':
			out = append(out, '\f')
		case '(', ')', '\\':
			out = append(out, e)
		case '\r':
			// line continuation, \r\n counts as one end-of-line
			if i+1 < len(raw) && raw[i+1] == '\n' {
				i++
			}
		case '\n':
		default:
			if e >= '0' && e <= '7' {
				v := int(e - '0')
				for n := 1; n < 3 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; n++ {
					i++
					v = v*8 + int(raw[i]-'0')
				}
				out = append(out, byte(v))
				continue
			}
			out = append(out, e)
		}
	}
	return out
}

// decodeHexString decodes the body of a <...> string. Whitespace is ignored and
// an odd trailing digit is padded with 0.
func decodeHexString(raw []byte) []byte {
	digits := strings.Join(strings.Fields(string(raw)), "")
	if len(digits)%2 == 1 {
		digits += "0"
	}
	b, err := hex.DecodeString(digits)
	if err != nil {
		return nil
	}
	return b
}

// decodeTextString converts PDF text-string bytes to UTF-8. Strings starting with
// the UTF-16BE byte order mark are decoded as UTF-16; everything else is treated
// as single-byte Latin-1, so every input byte yields exactly one character.
func decodeTextString(b []byte) string {
	if bytes.HasPrefix(b, utf16BOM) {
		dec := unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder()
		if s, err := dec.Bytes(b); err == nil {
			return string(s)
		}
	}

	s, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(s)
}
