// Package testpdf writes small single-page PDF files with annotation objects for
// tests. Offsets in the cross-reference table are computed, so the output is
// readable by qpdf, pdfcpu and ledongthuc/pdf alike.
package testpdf

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Widget returns a widget annotation dictionary with a /T name and /Rect
func Widget(name string, rect [4]float64) string {
	return fmt.Sprintf("<< /Type /Annot /Subtype /Widget /FT /Tx /T (%s) /Rect [%s] /F 4 >>",
		name, formatRect(rect))
}

// UnnamedWidget returns a widget annotation without a /T entry
func UnnamedWidget(rect [4]float64) string {
	return fmt.Sprintf("<< /Type /Annot /Subtype /Widget /FT /Btn /Rect [%s] /F 4 >>", formatRect(rect))
}

// RectlessWidget returns a named widget annotation without a /Rect entry
func RectlessWidget(name string) string {
	return fmt.Sprintf("<< /Type /Annot /Subtype /Widget /FT /Tx /T (%s) /F 4 >>", name)
}

// Link returns a non-widget annotation that still has a /T and /Rect
func Link(name string, rect [4]float64) string {
	return fmt.Sprintf("<< /Type /Annot /Subtype /Link /T (%s) /Rect [%s] /Border [0 0 0] >>",
		name, formatRect(rect))
}

func formatRect(r [4]float64) string {
	parts := make([]string, len(r))
	for i, v := range r {
		parts[i] = fmt.Sprintf("%g", v)
	}
	return strings.Join(parts, " ")
}

// Build returns a PDF whose only page references annots, in order. Objects 1-3
// are the catalog, page tree and page; annotation i is object 4+i.
func Build(annots ...string) []byte {
	refs := make([]string, len(annots))
	for i := range annots {
		refs[i] = fmt.Sprintf("%d 0 R", 4+i)
	}
	refList := strings.Join(refs, " ")

	objects := []string{
		fmt.Sprintf("<< /Type /Catalog /Pages 2 0 R /AcroForm << /Fields [%s] >> >>", refList),
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Annots [%s] >>", refList),
	}
	objects = append(objects, annots...)

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.7\n%\xE2\xE3\xCF\xD3\n")

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	return buf.Bytes()
}

// Write builds a PDF into dir/name and returns its path
func Write(t testing.TB, dir, name string, annots ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, Build(annots...), 0o600); err != nil {
		t.Fatalf("failed to write test PDF: %v", err)
	}
	return path
}
