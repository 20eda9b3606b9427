package wrapper

import (
	"fmt"
	"strings"
)

// LibraryType names the backend used to find widget annotations
type LibraryType string

const (
	LibraryQPDF       LibraryType = "qpdf"       // external qpdf normalization + QDF scan
	LibraryPDFCPU     LibraryType = "pdfcpu"     // in-process xref walk
	LibraryLedongthuc LibraryType = "ledongthuc" // in-process page /Annots walk
	LibraryAuto       LibraryType = "auto"       // qpdf when installed, pdfcpu otherwise
)

// ParseLibraryType converts a user-supplied engine name
func ParseLibraryType(s string) (LibraryType, error) {
	lt := LibraryType(strings.ToLower(strings.TrimSpace(s)))
	switch lt {
	case LibraryQPDF, LibraryPDFCPU, LibraryLedongthuc, LibraryAuto:
		return lt, nil
	case "":
		return LibraryQPDF, nil
	default:
		return "", &WrapperError{
			Library: lt,
			Op:      "parse",
			Err:     fmt.Errorf("unsupported library type: %s", s),
		}
	}
}

// Error types for wrapper operations
type WrapperError struct {
	Library LibraryType `json:"library"`
	Op      string      `json:"operation"`
	Err     error       `json:"error"`
}

func (e *WrapperError) Error() string {
	return fmt.Sprintf("PDF %s library error in %s: %v", e.Library, e.Op, e.Err)
}

func (e *WrapperError) Unwrap() error {
	return e.Err
}
