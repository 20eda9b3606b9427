package pdf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pdferrors "github.com/a3tai/pdf-tab-order/internal/pdf/errors"
)

func TestValidator_CheckInput(t *testing.T) {
	dir := t.TempDir()

	regular := filepath.Join(dir, "form.pdf")
	require.NoError(t, os.WriteFile(regular, []byte("%PDF-1.7\n"), 0o600))

	noExt := filepath.Join(dir, "form")
	require.NoError(t, os.WriteFile(noExt, []byte("%PDF-1.7\n"), 0o600))

	empty := filepath.Join(dir, "empty.pdf")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))

	large := filepath.Join(dir, "large.pdf")
	require.NoError(t, os.WriteFile(large, make([]byte, 2048), 0o600))

	tests := []struct {
		name     string
		path     string
		wantType pdferrors.ErrorType
		wantErr  bool
	}{
		{"regular file", regular, 0, false},
		{"no extension is accepted", noExt, 0, false},
		{"missing file", filepath.Join(dir, "missing.pdf"), pdferrors.ErrorTypeInputNotFound, true},
		{"empty path", "", pdferrors.ErrorTypeInputNotFound, true},
		{"directory", dir, pdferrors.ErrorTypeInputNotFound, true},
		{"empty file", empty, pdferrors.ErrorTypeInvalidInput, true},
		{"too large", large, pdferrors.ErrorTypeInvalidInput, true},
	}

	validator := NewValidator(1024)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.CheckInput(tt.path)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, pdferrors.IsType(err, tt.wantType), "got %v", err)
		})
	}
}

func TestValidator_ZeroMeansNoLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scan.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.7\n"), 0o600))
	require.NoError(t, os.Truncate(path, 101*1024*1024))

	assert.NoError(t, NewValidator(0).CheckInput(path))
	assert.True(t, pdferrors.IsType(NewValidator(1024).CheckInput(path), pdferrors.ErrorTypeInvalidInput))
}

func TestValidator_ValidateFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "form.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.7\n"), 0o600))

	validator := NewValidator(1024)

	result, err := validator.ValidateFile(PDFValidateFileRequest{Path: path})
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Message)

	result, err = validator.ValidateFile(PDFValidateFileRequest{Path: filepath.Join(dir, "nope.pdf")})
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Contains(t, result.Message, "file not found")
}
