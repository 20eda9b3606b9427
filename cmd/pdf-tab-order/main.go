package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/a3tai/pdf-tab-order/internal/config"
	"github.com/a3tai/pdf-tab-order/internal/logger"
	"github.com/a3tai/pdf-tab-order/internal/pdf"
	pdferrors "github.com/a3tai/pdf-tab-order/internal/pdf/errors"
	"github.com/a3tai/pdf-tab-order/internal/pdf/extraction"
	"github.com/a3tai/pdf-tab-order/internal/pdf/report"
	"github.com/a3tai/pdf-tab-order/internal/pdf/wrapper"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

// app holds the process streams and the qpdf runner so run can be tested
type app struct {
	stdout io.Writer
	stderr io.Writer
	runner extraction.CommandRunner
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := (&app{stdout: os.Stdout, stderr: os.Stderr}).run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

// run executes one invocation and returns the process exit status
func (a *app) run(ctx context.Context, args []string) int {
	loader := config.NewLoader(config.ProgramCLI, a.stdout)
	cfg, err := loader.Load(args)
	switch {
	case errors.Is(err, config.ErrVersionRequested):
		printVersion(a.stdout)
		return 0
	case errors.Is(err, pflag.ErrHelp):
		return 0
	case err != nil:
		return a.fail(pdferrors.NewUsageError(err.Error()))
	}

	if len(loader.Args()) != 1 {
		loader.PrintUsage()
		return pdferrors.ExitCode(pdferrors.NewUsageError("expected exactly one PDF file"))
	}
	path := loader.Args()[0]

	log, err := logger.New(cfg.LogLevel, a.stderr)
	if err != nil {
		return a.fail(err)
	}
	defer logger.Sync(log)
	log.Debug("loaded configuration", zap.Stringer("config", cfg))

	factory := wrapper.NewPDFLibraryFactoryWithConfig(wrapper.FactoryConfig{
		QPDFBinary: cfg.QPDFPath,
		KeepTemp:   cfg.KeepTemp,
		Runner:     a.runner,
		Logger:     log,
	})
	service := pdf.NewService(cfg.MaxFileSize, factory, cfg.EngineType(), log)

	result, err := service.PDFTabOrder(ctx, pdf.PDFTabOrderRequest{Path: path})
	if err != nil {
		return a.fail(err)
	}

	rep := report.Report{Source: path, Engine: string(result.Engine), Fields: result.Fields}
	if err := report.Render(a.stdout, rep, report.Options{Format: cfg.ReportFormat(), NameWidth: cfg.NameWidth}); err != nil {
		return a.fail(err)
	}
	return 0
}

// fail prints err to stderr and returns its exit status
func (a *app) fail(err error) int {
	var te *pdferrors.TabOrderError
	if errors.As(err, &te) && te.Type == pdferrors.ErrorTypeInputNotFound {
		fmt.Fprintf(a.stderr, "Error: %s not found\n", te.Path)
	} else {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
	}
	return pdferrors.ExitCode(err)
}

// printVersion prints version information
func printVersion(w io.Writer) {
	fmt.Fprintf(w, "PDF Tab Order\n")
	fmt.Fprintf(w, "Version: %s\n", version)
	fmt.Fprintf(w, "Build Time: %s\n", buildTime)
	fmt.Fprintf(w, "Git Commit: %s\n", gitCommit)
	fmt.Fprintf(w, "Built with: %s\n", runtime.Version())
}
