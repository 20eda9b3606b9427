// Package security confines the paths MCP clients may analyze to one directory.
package security

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	pdferrors "github.com/a3tai/pdf-tab-order/internal/pdf/errors"
)

// PathValidator resolves client-supplied paths against the configured directory
type PathValidator struct {
	configuredDirectory string
}

// NewPathValidator creates a new path validator for the given directory
func NewPathValidator(configuredDirectory string) (*PathValidator, error) {
	if configuredDirectory == "" {
		return nil, fmt.Errorf("configured directory cannot be empty")
	}

	absDir, err := filepath.Abs(configuredDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve configured directory: %w", err)
	}
	return &PathValidator{configuredDirectory: filepath.Clean(absDir)}, nil
}

// GetConfiguredDirectory returns the configured directory path
func (v *PathValidator) GetConfiguredDirectory() string {
	return v.configuredDirectory
}

// Resolve returns the absolute path for path, which may be relative to the
// configured directory. Paths escaping the directory, directly or through a
// symlink, are rejected as invalid input.
func (v *PathValidator) Resolve(path string) (string, error) {
	path = strings.ReplaceAll(path, "\x00", "")
	if strings.TrimSpace(path) == "" {
		return "", pdferrors.NewUsageError("path cannot be empty")
	}

	if !filepath.IsAbs(path) {
		path = filepath.Join(v.configuredDirectory, path)
	}
	absPath := filepath.Clean(path)

	within, err := v.IsPathWithinDirectory(absPath)
	if err != nil {
		return "", pdferrors.NewInvalidInputError(path, "path validation failed", err)
	}
	if !within {
		return "", pdferrors.NewInvalidInputError(path, "path is outside the configured directory", nil)
	}
	return absPath, nil
}

// IsPathWithinDirectory checks if an absolute path is within the configured
// directory, following symlinks on both sides when they exist.
func (v *PathValidator) IsPathWithinDirectory(absPath string) (bool, error) {
	if !filepath.IsAbs(absPath) {
		return false, fmt.Errorf("path is not absolute: %s", absPath)
	}
	cleanPath := filepath.Clean(absPath)

	realDir := v.configuredDirectory
	if resolved, err := filepath.EvalSymlinks(realDir); err == nil {
		realDir = resolved
	}

	realPath := cleanPath
	if resolved, err := filepath.EvalSymlinks(cleanPath); err == nil {
		realPath = resolved
	} else if !os.IsNotExist(err) {
		return false, err
	}

	pathOk := within(cleanPath, v.configuredDirectory) || within(cleanPath, realDir)
	realPathOk := within(realPath, v.configuredDirectory) || within(realPath, realDir)
	return pathOk && realPathOk, nil
}

func within(path, dir string) bool {
	if path == dir {
		return true
	}
	if !strings.HasSuffix(dir, string(filepath.Separator)) {
		dir += string(filepath.Separator)
	}
	return strings.HasPrefix(path, dir)
}
