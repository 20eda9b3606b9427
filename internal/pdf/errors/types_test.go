package errors

import (
	stderrors "errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorType_String(t *testing.T) {
	tests := []struct {
		errorType ErrorType
		expected  string
	}{
		{ErrorTypeUsage, "USAGE"},
		{ErrorTypeInputNotFound, "INPUT_NOT_FOUND"},
		{ErrorTypeExternalTool, "EXTERNAL_TOOL"},
		{ErrorTypeInvalidInput, "INVALID_INPUT"},
		{ErrorTypeUnknown, "UNKNOWN"},
		{ErrorType(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.errorType.String())
		})
	}
}

func TestTabOrderError_Error(t *testing.T) {
	err := NewInputNotFoundError("/tmp/missing.pdf", os.ErrNotExist)
	assert.Equal(t, "[INPUT_NOT_FOUND] file not found: /tmp/missing.pdf: file does not exist", err.Error())

	usage := NewUsageError("expected exactly one PDF path")
	assert.Equal(t, "[USAGE] expected exactly one PDF path", usage.Error())

	tool := NewExternalToolError("qpdf", "form.pdf", fmt.Errorf("exit status 2"), "qpdf: form.pdf: not a PDF file")
	assert.Contains(t, tool.Error(), "[EXTERNAL_TOOL] qpdf failed: form.pdf: exit status 2")
	assert.Contains(t, tool.Error(), "not a PDF file")
}

func TestTabOrderError_IsAndAs(t *testing.T) {
	cause := fmt.Errorf("exec: \"qpdf\": executable file not found in $PATH")
	wrapped := fmt.Errorf("extract fields: %w", NewExternalToolError("qpdf", "a.pdf", cause, ""))

	assert.True(t, stderrors.Is(wrapped, ErrExternalTool))
	assert.False(t, stderrors.Is(wrapped, ErrInputNotFound))
	assert.True(t, stderrors.Is(wrapped, cause))

	var te *TabOrderError
	if assert.True(t, stderrors.As(wrapped, &te)) {
		assert.Equal(t, "qpdf", te.Tool)
		assert.Equal(t, "a.pdf", te.Path)
	}

	assert.True(t, IsType(wrapped, ErrorTypeExternalTool))
	assert.False(t, IsType(wrapped, ErrorTypeUsage))
	assert.False(t, IsType(fmt.Errorf("plain"), ErrorTypeUsage))
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 1, ExitCode(NewUsageError("x")))
	assert.Equal(t, 1, ExitCode(NewInputNotFoundError("x", nil)))
	assert.Equal(t, 1, ExitCode(fmt.Errorf("untyped")))
}
