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
	"github.com/a3tai/pdf-tab-order/internal/mcp"
	"github.com/a3tai/pdf-tab-order/internal/pdf"
	"github.com/a3tai/pdf-tab-order/internal/pdf/wrapper"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

func main() {
	// Usage goes to stderr, stdout carries the protocol
	loader := config.NewLoader(config.ProgramMCP, os.Stderr)
	cfg, err := loader.Load(os.Args[1:])
	switch {
	case errors.Is(err, config.ErrVersionRequested):
		printVersion(os.Stdout)
		return
	case errors.Is(err, pflag.ErrHelp):
		return
	case err != nil:
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if version != "dev" {
		cfg.Version = version
	}

	log, err := logger.NewStderr(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync(log)

	server, err := newServer(cfg, log)
	if err != nil {
		log.Fatal("failed to create MCP server", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	if err := server.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("server error", zap.Error(err))
		logger.Sync(log)
		os.Exit(1)
	}
	log.Info("server stopped")
}

// newServer wires the extraction stack behind the MCP tools
func newServer(cfg *config.Config, log *zap.Logger) (*mcp.Server, error) {
	factory := wrapper.NewPDFLibraryFactoryWithConfig(wrapper.FactoryConfig{
		QPDFBinary: cfg.QPDFPath,
		KeepTemp:   cfg.KeepTemp,
		Logger:     log,
	})
	service := pdf.NewService(cfg.MaxFileSize, factory, cfg.EngineType(), log)
	return mcp.NewServer(cfg, service, log)
}

// printVersion prints version information
func printVersion(w io.Writer) {
	fmt.Fprintf(w, "PDF Tab Order MCP Server\n")
	fmt.Fprintf(w, "Version: %s\n", version)
	fmt.Fprintf(w, "Build Time: %s\n", buildTime)
	fmt.Fprintf(w, "Git Commit: %s\n", gitCommit)
	fmt.Fprintf(w, "Built with: %s\n", runtime.Version())
}
