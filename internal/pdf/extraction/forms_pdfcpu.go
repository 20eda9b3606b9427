package extraction

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"go.uber.org/zap"

	pdferrors "github.com/a3tai/pdf-tab-order/internal/pdf/errors"
)

// PDFCPUFormExtractor finds widget annotations by walking the cross-reference
// table that pdfcpu loads in process. No external tool or temporary file is used.
type PDFCPUFormExtractor struct {
	logger *zap.Logger
}

// NewPDFCPUFormExtractor creates a new widget extractor using pdfcpu
func NewPDFCPUFormExtractor(logger *zap.Logger) *PDFCPUFormExtractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PDFCPUFormExtractor{logger: logger}
}

// Extract reads the PDF at path and returns its widgets
func (fe *PDFCPUFormExtractor) Extract(ctx context.Context, path string) ([]FieldRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF file: %w", err)
	}
	defer file.Close()

	fields, err := fe.ExtractFromReader(file)
	if err != nil {
		return nil, pdferrors.NewInvalidInputError(path, "pdfcpu could not read the document", err)
	}
	return fields, nil
}

// ExtractFromReader extracts widgets from an io.ReadSeeker
func (fe *PDFCPUFormExtractor) ExtractFromReader(reader io.ReadSeeker) ([]FieldRecord, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	pdfCtx, err := api.ReadContext(reader, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF context: %w", err)
	}

	return fe.extractWidgets(pdfCtx), nil
}

// extractWidgets visits every in-use object in object-number order
func (fe *PDFCPUFormExtractor) extractWidgets(pdfCtx *model.Context) []FieldRecord {
	objNrs := make([]int, 0, len(pdfCtx.XRefTable.Table))
	for objNr := range pdfCtx.XRefTable.Table {
		objNrs = append(objNrs, objNr)
	}
	sort.Ints(objNrs)

	var (
		fields  []FieldRecord
		widgets int
	)
	for _, objNr := range objNrs {
		entry := pdfCtx.XRefTable.Table[objNr]
		if entry == nil || entry.Free || entry.Object == nil {
			continue
		}

		dict, ok := entry.Object.(types.Dict)
		if !ok || !isWidget(dict) {
			continue
		}
		widgets++

		id := ObjectID{Number: objNr}
		if entry.Generation != nil {
			id.Generation = *entry.Generation
		}

		rect, ok := fe.parseRect(pdfCtx, dict)
		if !ok {
			fe.logger.Debug("widget without rect", zap.Stringer("object", id))
			continue
		}

		field := NewFieldRecord(fe.fieldName(pdfCtx, dict), rect)
		field.Object = &id
		fields = append(fields, field)
	}

	fe.logger.Debug("walked xref table",
		zap.Int("objects", len(objNrs)),
		zap.Int("widgets", widgets),
		zap.Int("fields", len(fields)))

	return fields
}

func isWidget(dict types.Dict) bool {
	subtype := dict.NameEntry("Subtype")
	return subtype != nil && *subtype == "Widget"
}

// fieldName reads the widget's own T entry
func (fe *PDFCPUFormExtractor) fieldName(pdfCtx *model.Context, dict types.Dict) string {
	nameObj, found := dict.Find("T")
	if !found {
		return UnknownFieldName
	}
	name, err := pdfCtx.DereferenceStringOrHexLiteral(nameObj, model.V10, nil)
	if err != nil {
		return UnknownFieldName
	}
	return name
}

// parseRect reads a four-number Rect entry
func (fe *PDFCPUFormExtractor) parseRect(pdfCtx *model.Context, dict types.Dict) (Rect, bool) {
	rectObj, found := dict.Find("Rect")
	if !found {
		return Rect{}, false
	}

	rectArray, err := pdfCtx.DereferenceArray(rectObj)
	if err != nil || len(rectArray) != 4 {
		return Rect{}, false
	}

	var r Rect
	for i, coord := range rectArray {
		f, err := pdfCtx.DereferenceNumber(coord)
		if err != nil {
			return Rect{}, false
		}
		r[i] = f
	}
	return r, true
}
