package pdf

import (
	"github.com/a3tai/pdf-tab-order/internal/pdf/extraction"
	"github.com/a3tai/pdf-tab-order/internal/pdf/wrapper"
)

// PDFTabOrderRequest asks for the tab order of one file
type PDFTabOrderRequest struct {
	Path   string              `json:"path"`
	Engine wrapper.LibraryType `json:"engine,omitempty"`
}

// PDFTabOrderResult holds the fields of a file in tab order
type PDFTabOrderResult struct {
	Path   string                   `json:"path"`
	Engine wrapper.LibraryType      `json:"engine"`
	Fields []extraction.FieldRecord `json:"fields"`
}

// PDFValidateFileRequest asks whether a file can be analyzed
type PDFValidateFileRequest struct {
	Path string `json:"path"`
}

// PDFValidateFileResult reports the outcome of a validation
type PDFValidateFileResult struct {
	Path    string `json:"path"`
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}
