package extraction

import (
	"context"
	"fmt"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	pdferrors "github.com/a3tai/pdf-tab-order/internal/pdf/errors"
)

// LedongthucFormExtractor finds widget annotations through the page tree: every
// page's /Annots array is scanned, so each record also carries its page number.
// Widgets that no page references are not reported.
type LedongthucFormExtractor struct {
	logger *zap.Logger
}

// NewLedongthucFormExtractor creates a widget extractor using ledongthuc/pdf
func NewLedongthucFormExtractor(logger *zap.Logger) *LedongthucFormExtractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LedongthucFormExtractor{logger: logger}
}

// Extract opens the PDF at path and returns the widgets of all pages
func (le *LedongthucFormExtractor) Extract(ctx context.Context, path string) (fields []FieldRecord, err error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, pdferrors.NewInvalidInputError(path, "ledongthuc/pdf could not open the document", err)
	}
	defer f.Close()

	// ledongthuc/pdf panics on some malformed objects
	defer func() {
		if r := recover(); r != nil {
			fields = nil
			err = pdferrors.NewInvalidInputError(path, "malformed PDF structure", fmt.Errorf("%v", r))
		}
	}()

	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		fields = append(fields, le.pageWidgets(page.V.Key("Annots"), pageNum)...)
	}

	le.logger.Debug("walked page annotations",
		zap.String("path", path),
		zap.Int("pages", reader.NumPage()),
		zap.Int("fields", len(fields)))

	return fields, nil
}

// pageWidgets returns the widgets of one page's Annots array
func (le *LedongthucFormExtractor) pageWidgets(annots pdf.Value, pageNum int) []FieldRecord {
	if annots.IsNull() || annots.Kind() != pdf.Array {
		return nil
	}

	var fields []FieldRecord
	for i := 0; i < annots.Len(); i++ {
		annot := annots.Index(i)
		if annot.IsNull() || annot.Key("Subtype").Name() != "Widget" {
			continue
		}

		rect, ok := valueRect(annot.Key("Rect"))
		if !ok {
			le.logger.Debug("widget without rect", zap.Int("page", pageNum), zap.Int("index", i))
			continue
		}

		name := UnknownFieldName
		if t := annot.Key("T"); t.Kind() == pdf.String {
			name = t.Text()
		}

		field := NewFieldRecord(name, rect)
		field.Page = pageNum
		fields = append(fields, field)
	}
	return fields
}

// valueRect converts a four-number array value
func valueRect(v pdf.Value) (Rect, bool) {
	if v.IsNull() || v.Kind() != pdf.Array || v.Len() != 4 {
		return Rect{}, false
	}

	var r Rect
	for i := range r {
		coord := v.Index(i)
		switch coord.Kind() {
		case pdf.Integer:
			r[i] = float64(coord.Int64())
		case pdf.Real:
			r[i] = coord.Float64()
		default:
			return Rect{}, false
		}
	}
	return r, true
}
