package extraction

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pdferrors "github.com/a3tai/pdf-tab-order/internal/pdf/errors"
	"github.com/a3tai/pdf-tab-order/internal/pdf/testpdf"
)

func sampleAnnotations() []string {
	return []string{
		testpdf.Widget("Name", [4]float64{100, 700, 200, 720}),
		testpdf.Link("Link", [4]float64{0, 0, 10, 10}),
		testpdf.RectlessWidget("Ghost"),
		testpdf.UnnamedWidget([4]float64{300, 650, 320, 670}),
		testpdf.Widget("Email", [4]float64{100, 650, 200, 670}),
	}
}

func byName(fields []FieldRecord) map[string]FieldRecord {
	m := make(map[string]FieldRecord, len(fields))
	for _, f := range fields {
		m[f.Name] = f
	}
	return m
}

func TestEngines_SameWidgets(t *testing.T) {
	dir := t.TempDir()
	path := testpdf.Write(t, dir, "sample.pdf", sampleAnnotations()...)

	engines := map[string]Extractor{
		"pdfcpu":     NewPDFCPUFormExtractor(nil),
		"ledongthuc": NewLedongthucFormExtractor(nil),
	}

	for name, engine := range engines {
		t.Run(name, func(t *testing.T) {
			fields, err := engine.Extract(context.Background(), path)
			require.NoError(t, err)
			require.Len(t, fields, 3)

			got := byName(fields)
			require.Contains(t, got, "Name")
			require.Contains(t, got, "Email")
			require.Contains(t, got, UnknownFieldName)
			assert.NotContains(t, got, "Link")
			assert.NotContains(t, got, "Ghost")

			assert.Equal(t, Rect{100, 700, 200, 720}, got["Name"].Rect)
			assert.Equal(t, 150.0, got["Name"].CenterX)
			assert.Equal(t, 710.0, got["Name"].CenterY)
			assert.Equal(t, 660.0, got["Email"].CenterY)
			assert.Equal(t, 310.0, got[UnknownFieldName].CenterX)
		})
	}
}

func TestPDFCPUFormExtractor_ObjectNumbers(t *testing.T) {
	dir := t.TempDir()
	path := testpdf.Write(t, dir, "sample.pdf", sampleAnnotations()...)

	fields, err := NewPDFCPUFormExtractor(nil).Extract(context.Background(), path)
	require.NoError(t, err)

	var nums []int
	for _, f := range fields {
		require.NotNil(t, f.Object)
		nums = append(nums, f.Object.Number)
	}
	assert.True(t, sort.IntsAreSorted(nums))
	// Name is object 4, the unnamed widget 7 and Email 8
	assert.Equal(t, []int{4, 7, 8}, nums)
}

func TestPDFCPUFormExtractor_ExtractFromReader(t *testing.T) {
	data := testpdf.Build(testpdf.Widget("Only", [4]float64{0, 0, 50, 50}))

	fields, err := NewPDFCPUFormExtractor(nil).ExtractFromReader(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, fields, 1)
	assert.Equal(t, "Only", fields[0].Name)
}

func TestLedongthucFormExtractor_PageNumbers(t *testing.T) {
	dir := t.TempDir()
	path := testpdf.Write(t, dir, "sample.pdf", sampleAnnotations()...)

	fields, err := NewLedongthucFormExtractor(nil).Extract(context.Background(), path)
	require.NoError(t, err)
	for _, f := range fields {
		assert.Equal(t, 1, f.Page, f.Name)
	}
}

func TestEngines_NotAPDF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plain.pdf")
	require.NoError(t, os.WriteFile(path, []byte("this is not a pdf"), 0o600))

	engines := map[string]Extractor{
		"pdfcpu":     NewPDFCPUFormExtractor(nil),
		"ledongthuc": NewLedongthucFormExtractor(nil),
	}
	for name, engine := range engines {
		t.Run(name, func(t *testing.T) {
			_, err := engine.Extract(context.Background(), path)
			require.Error(t, err)
			assert.True(t, pdferrors.IsType(err, pdferrors.ErrorTypeInvalidInput))
		})
	}
}
