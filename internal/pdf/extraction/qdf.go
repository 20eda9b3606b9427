package extraction

import (
	"regexp"
	"strconv"
)

const number = `[-+]?(?:\d+\.?\d*|\.\d+)`

var (
	// Lazy so each match ends at the first endobj after its header.
	objectPattern = regexp.MustCompile(`(?s)(\d+)\s+(\d+)\s+obj.*?endobj`)
	widgetPattern = regexp.MustCompile(`/Subtype\s*/Widget\b`)
	namePattern   = regexp.MustCompile(`/T\s*(?:\(((?:\\[\s\S]|[^\\)])*)\)|<([0-9A-Fa-f\s]*)>)`)
	rectPattern   = regexp.MustCompile(`/Rect\s*\[\s*(` + number + `)\s+(` + number + `)\s+(` +
		number + `)\s+(` + number + `)\s*\]`)
)

// ScanStats counts what a QDF scan saw
type ScanStats struct {
	Objects int `json:"objects"`
	Widgets int `json:"widgets"`
	NoRect  int `json:"no_rect"`
}

// ScanQDF finds the widget annotations in qpdf --qdf output. The data is handled
// as raw bytes, one byte per character, so binary stream content cannot break
// decoding. Widgets without a parseable /Rect are skipped.
func ScanQDF(data []byte) ([]FieldRecord, ScanStats) {
	var (
		fields []FieldRecord
		stats  ScanStats
	)

	for _, m := range objectPattern.FindAllSubmatchIndex(data, -1) {
		stats.Objects++
		obj := data[m[0]:m[1]]

		if !widgetPattern.Match(obj) {
			continue
		}
		stats.Widgets++

		rect, ok := parseRect(obj)
		if !ok {
			stats.NoRect++
			continue
		}

		field := NewFieldRecord(parseName(obj), rect)
		num, errNum := strconv.Atoi(string(data[m[2]:m[3]]))
		gen, errGen := strconv.Atoi(string(data[m[4]:m[5]]))
		if errNum == nil && errGen == nil {
			field.Object = &ObjectID{Number: num, Generation: gen}
		}
		fields = append(fields, field)
	}

	return fields, stats
}

// parseName returns the first /T string of an object, or UnknownFieldName
func parseName(obj []byte) string {
	m := namePattern.FindSubmatchIndex(obj)
	if m == nil {
		return UnknownFieldName
	}
	if m[2] >= 0 {
		return decodeTextString(unescapeLiteral(obj[m[2]:m[3]]))
	}
	return decodeTextString(decodeHexString(obj[m[4]:m[5]]))
}

// parseRect reads the four numbers of the first /Rect array of an object
func parseRect(obj []byte) (Rect, bool) {
	m := rectPattern.FindSubmatch(obj)
	if m == nil {
		return Rect{}, false
	}

	var r Rect
	for i := range r {
		v, err := strconv.ParseFloat(string(m[i+1]), 64)
		if err != nil {
			return Rect{}, false
		}
		r[i] = v
	}
	return r, true
}
