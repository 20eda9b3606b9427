package extraction

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	pdferrors "github.com/a3tai/pdf-tab-order/internal/pdf/errors"
)

const (
	// DefaultQPDFBinary is looked up on PATH
	DefaultQPDFBinary = "qpdf"

	// TempSuffix replaces the input's extension to name the normalized output
	TempSuffix = ".temp.qdf"
)

// CommandRunner runs an external program to completion and returns what it wrote
// to stderr.
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecRunner is the CommandRunner backed by os/exec
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stderr.Bytes(), err
}

// QPDFConfig configures a QPDFExtractor
type QPDFConfig struct {
	// Binary is the qpdf executable, DefaultQPDFBinary when empty
	Binary string

	// KeepTemp leaves the .temp.qdf file in place for inspection
	KeepTemp bool

	// Runner overrides how qpdf is started, ExecRunner when nil
	Runner CommandRunner

	Logger *zap.Logger
}

// QPDFExtractor finds widgets by normalizing the PDF with qpdf and scanning the
// QDF text it writes.
type QPDFExtractor struct {
	binary   string
	keepTemp bool
	run      CommandRunner
	logger   *zap.Logger
}

// NewQPDFExtractor creates an extractor from cfg, filling in defaults
func NewQPDFExtractor(cfg QPDFConfig) *QPDFExtractor {
	e := &QPDFExtractor{
		binary:   cfg.Binary,
		keepTemp: cfg.KeepTemp,
		run:      cfg.Runner,
		logger:   cfg.Logger,
	}
	if e.binary == "" {
		e.binary = DefaultQPDFBinary
	}
	if e.run == nil {
		e.run = ExecRunner
	}
	if e.logger == nil {
		e.logger = zap.NewNop()
	}
	return e
}

// TempPath returns the normalized output path for input: the input's directory
// and stem with TempSuffix, e.g. forms/w2.pdf -> forms/w2.temp.qdf.
func TempPath(input string) string {
	base := filepath.Base(input)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		stem = base
	}
	return filepath.Join(filepath.Dir(input), stem+TempSuffix)
}

// Extract runs qpdf on path and returns the widgets found in its output.
// The temporary QDF file is removed before returning.
func (e *QPDFExtractor) Extract(ctx context.Context, path string) ([]FieldRecord, error) {
	out := TempPath(path)
	args := []string{"--qdf", "--object-streams=disable", path, out}

	e.logger.Debug("running qpdf",
		zap.String("binary", e.binary),
		zap.Strings("args", args))

	stderr, err := e.run(ctx, e.binary, args...)
	if err != nil {
		e.removeTemp(out)
		return nil, pdferrors.NewExternalToolError(e.binary, path, err, strings.TrimSpace(string(stderr)))
	}
	defer e.removeTemp(out)

	data, err := os.ReadFile(out)
	if err != nil {
		return nil, pdferrors.NewExternalToolError(e.binary, path,
			fmt.Errorf("read normalized output %s: %w", out, err), "")
	}

	fields, stats := ScanQDF(data)
	e.logger.Debug("scanned qdf output",
		zap.String("path", path),
		zap.Int("bytes", len(data)),
		zap.Int("objects", stats.Objects),
		zap.Int("widgets", stats.Widgets),
		zap.Int("dropped_no_rect", stats.NoRect),
		zap.Int("fields", len(fields)))

	return fields, nil
}

func (e *QPDFExtractor) removeTemp(path string) {
	if e.keepTemp {
		e.logger.Info("keeping normalized output", zap.String("path", path))
		return
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		e.logger.Warn("failed to remove normalized output",
			zap.String("path", path),
			zap.Error(err))
	}
}
