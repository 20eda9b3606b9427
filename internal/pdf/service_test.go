package pdf

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pdferrors "github.com/a3tai/pdf-tab-order/internal/pdf/errors"
	"github.com/a3tai/pdf-tab-order/internal/pdf/extraction"
	"github.com/a3tai/pdf-tab-order/internal/pdf/testpdf"
	"github.com/a3tai/pdf-tab-order/internal/pdf/wrapper"
)

const contactQDF = `%PDF-1.7
%QDF-1.0

5 0 obj
<<
  /Rect [
    100
    650
    200
    670
  ]
  /Subtype /Widget
  /T (Email)
>>
endobj

4 0 obj
<<
  /Rect [
    100
    700
    200
    720
  ]
  /Subtype /Widget
  /T (Name)
>>
endobj
`

func qdfRunner(qdf string) extraction.CommandRunner {
	return func(_ context.Context, _ string, args ...string) ([]byte, error) {
		return nil, os.WriteFile(args[len(args)-1], []byte(qdf), 0o600)
	}
}

func fieldNames(fields []extraction.FieldRecord) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}

func TestService_PDFTabOrder_QPDF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "contact.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.7\n"), 0o600))

	factory := wrapper.NewPDFLibraryFactoryWithConfig(wrapper.FactoryConfig{Runner: qdfRunner(contactQDF)})
	service := NewService(1024*1024, factory, wrapper.LibraryQPDF, nil)

	result, err := service.PDFTabOrder(context.Background(), PDFTabOrderRequest{Path: path})
	require.NoError(t, err)

	assert.Equal(t, wrapper.LibraryQPDF, result.Engine)
	assert.Equal(t, []string{"Name", "Email"}, fieldNames(result.Fields))
	assert.Equal(t, 710.0, result.Fields[0].CenterY)
	assert.Equal(t, 660.0, result.Fields[1].CenterY)
}

func TestService_PDFTabOrder_SameRow(t *testing.T) {
	dir := t.TempDir()
	path := testpdf.Write(t, dir, "row.pdf",
		testpdf.Widget("Right", [4]float64{140, 490, 160, 510}),
		testpdf.Widget("Left", [4]float64{40, 490, 60, 510}),
	)

	service := NewService(1024*1024, nil, wrapper.LibraryPDFCPU, nil)
	result, err := service.PDFTabOrder(context.Background(), PDFTabOrderRequest{Path: path})
	require.NoError(t, err)

	require.Len(t, result.Fields, 2)
	assert.Equal(t, []string{"Left", "Right"}, fieldNames(result.Fields))
	assert.Equal(t, 50.0, result.Fields[0].CenterX)
	assert.Equal(t, 150.0, result.Fields[1].CenterX)
}

func TestService_PDFTabOrder_EngineOverride(t *testing.T) {
	dir := t.TempDir()
	path := testpdf.Write(t, dir, "form.pdf",
		testpdf.Widget("Email", [4]float64{100, 650, 200, 670}),
		testpdf.Widget("Name", [4]float64{100, 700, 200, 720}),
	)

	service := NewService(1024*1024, nil, wrapper.LibraryPDFCPU, nil)
	result, err := service.PDFTabOrder(context.Background(),
		PDFTabOrderRequest{Path: path, Engine: wrapper.LibraryLedongthuc})
	require.NoError(t, err)

	assert.Equal(t, wrapper.LibraryLedongthuc, result.Engine)
	assert.Equal(t, []string{"Name", "Email"}, fieldNames(result.Fields))
}

func TestService_PDFTabOrder_MissingFile(t *testing.T) {
	calls := 0
	runner := func(context.Context, string, ...string) ([]byte, error) {
		calls++
		return nil, nil
	}
	factory := wrapper.NewPDFLibraryFactoryWithConfig(wrapper.FactoryConfig{Runner: runner})
	service := NewService(1024, factory, wrapper.LibraryQPDF, nil)

	_, err := service.PDFTabOrder(context.Background(),
		PDFTabOrderRequest{Path: filepath.Join(t.TempDir(), "missing.pdf")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, pdferrors.ErrInputNotFound))
	assert.Zero(t, calls, "qpdf must not run for a missing input")
}

func TestService_PDFTabOrder_ToolFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.pdf")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o600))

	runner := func(context.Context, string, ...string) ([]byte, error) {
		return []byte("qpdf: broken.pdf: can't find PDF header"), errors.New("exit status 2")
	}
	factory := wrapper.NewPDFLibraryFactoryWithConfig(wrapper.FactoryConfig{Runner: runner})
	service := NewService(1024, factory, "", nil)

	_, err := service.PDFTabOrder(context.Background(), PDFTabOrderRequest{Path: path})
	require.Error(t, err)
	assert.True(t, errors.Is(err, pdferrors.ErrExternalTool))
	assert.Contains(t, err.Error(), "can't find PDF header")
}

func TestService_PDFTabOrder_UnknownEngine(t *testing.T) {
	dir := t.TempDir()
	path := testpdf.Write(t, dir, "form.pdf")

	service := NewService(1024*1024, nil, wrapper.LibraryPDFCPU, nil)
	_, err := service.PDFTabOrder(context.Background(), PDFTabOrderRequest{Path: path, Engine: "custom"})
	var we *wrapper.WrapperError
	assert.True(t, errors.As(err, &we))
}

func TestService_Engines(t *testing.T) {
	service := NewService(1024, nil, "", nil)
	engines := service.Engines()
	assert.Contains(t, engines, wrapper.LibraryQPDF)
	assert.Contains(t, engines, wrapper.LibraryPDFCPU)
	assert.Contains(t, engines, wrapper.LibraryLedongthuc)
}
