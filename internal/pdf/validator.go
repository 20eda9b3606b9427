package pdf

import (
	"errors"
	"fmt"
	"os"

	pdferrors "github.com/a3tai/pdf-tab-order/internal/pdf/errors"
)

// Validator checks an input path before any extraction starts
type Validator struct {
	maxFileSize int64
}

// NewValidator creates a new PDF validator with the specified constraints
func NewValidator(maxFileSize int64) *Validator {
	return &Validator{
		maxFileSize: maxFileSize,
	}
}

// ValidateFile reports whether a file can be analyzed without failing the call
func (v *Validator) ValidateFile(req PDFValidateFileRequest) (*PDFValidateFileResult, error) {
	result := &PDFValidateFileResult{
		Path:  req.Path,
		Valid: false,
	}

	if err := v.CheckInput(req.Path); err != nil {
		result.Message = err.Error()
		return result, nil //nolint:nilerr // validation failures are reported in the result
	}

	result.Valid = true
	return result, nil
}

// CheckInput returns an InputNotFound error when filePath does not resolve to an
// existing regular file, and an InvalidInput error when it is empty or too large.
// The extension is not checked.
func (v *Validator) CheckInput(filePath string) error {
	if filePath == "" {
		return pdferrors.NewInputNotFoundError(filePath, errors.New("path cannot be empty"))
	}

	fileInfo, err := os.Stat(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return pdferrors.NewInputNotFoundError(filePath, nil)
		}
		return pdferrors.NewInvalidInputError(filePath, "cannot access file", err)
	}

	if fileInfo.IsDir() {
		return pdferrors.NewInputNotFoundError(filePath, errors.New("path is a directory, not a file"))
	}

	if fileInfo.Size() == 0 {
		return pdferrors.NewInvalidInputError(filePath, "file is empty", nil)
	}

	if v.maxFileSize > 0 && fileInfo.Size() > v.maxFileSize {
		return pdferrors.NewInvalidInputError(filePath,
			fmt.Sprintf("file too large: %d bytes (max: %d bytes)", fileInfo.Size(), v.maxFileSize), nil)
	}

	return nil
}
