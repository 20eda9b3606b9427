package mcp

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/a3tai/pdf-tab-order/internal/config"
	"github.com/a3tai/pdf-tab-order/internal/descriptions"
	"github.com/a3tai/pdf-tab-order/internal/pdf"
	"github.com/a3tai/pdf-tab-order/internal/pdf/report"
	"github.com/a3tai/pdf-tab-order/internal/pdf/security"
	"github.com/a3tai/pdf-tab-order/internal/pdf/wrapper"
)

// Server represents the MCP server instance
type Server struct {
	config     *config.Config
	pdfService *pdf.Service
	paths      *security.PathValidator
	mcpServer  *server.MCPServer
	logger     *zap.Logger
}

// NewServer creates a new MCP server instance. Tool paths are confined to
// cfg.PDFDirectory.
func NewServer(cfg *config.Config, pdfService *pdf.Service, logger *zap.Logger) (*Server, error) {
	if pdfService == nil {
		return nil, fmt.Errorf("pdfService cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	paths, err := security.NewPathValidator(cfg.PDFDirectory)
	if err != nil {
		return nil, fmt.Errorf("invalid PDF directory: %w", err)
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false),
	)

	s := &Server{
		config:     cfg,
		pdfService: pdfService,
		paths:      paths,
		mcpServer:  mcpServer,
		logger:     logger,
	}
	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	pdfTabOrderTool := mcp.NewTool(
		"pdf_tab_order",
		mcp.WithDescription(descriptions.PDFTabOrderDescription),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("PDF file, absolute or relative to the server directory"),
		),
		mcp.WithString("engine",
			mcp.Description("Extraction engine (uses the server default if empty)"),
			mcp.Enum(engineNames()...),
		),
		mcp.WithString("format",
			mcp.Description("Report format (uses the server default if empty)"),
			mcp.Enum(formatNames()...),
		),
	)
	s.mcpServer.AddTool(pdfTabOrderTool, s.handlePDFTabOrder)

	pdfValidateFileTool := mcp.NewTool(
		"pdf_validate_file",
		mcp.WithDescription(descriptions.PDFValidateFileDescription),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("PDF file, absolute or relative to the server directory"),
		),
	)
	s.mcpServer.AddTool(pdfValidateFileTool, s.handlePDFValidateFile)

	pdfEnginesTool := mcp.NewTool(
		"pdf_engines",
		mcp.WithDescription(descriptions.PDFEnginesDescription),
	)
	s.mcpServer.AddTool(pdfEnginesTool, s.handlePDFEngines)
}

func engineNames() []string {
	return []string{
		string(wrapper.LibraryQPDF),
		string(wrapper.LibraryPDFCPU),
		string(wrapper.LibraryLedongthuc),
		string(wrapper.LibraryAuto),
	}
}

func formatNames() []string {
	formats := report.Formats()
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return names
}

func (s *Server) handlePDFTabOrder(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	args := request.GetArguments()

	var engine wrapper.LibraryType
	if e, ok := args["engine"].(string); ok && e != "" {
		if engine, err = wrapper.ParseLibraryType(e); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	format := s.config.ReportFormat()
	if f, ok := args["format"].(string); ok && f != "" {
		if format, err = report.ParseFormat(f); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	resolved, err := s.paths.Resolve(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.pdfService.PDFTabOrder(ctx, pdf.PDFTabOrderRequest{Path: resolved, Engine: engine})
	if err != nil {
		s.logger.Warn("tab order request failed", zap.String("path", resolved), zap.Error(err))
		return mcp.NewToolResultError(err.Error()), nil
	}

	var buf bytes.Buffer
	rep := report.Report{Source: result.Path, Engine: string(result.Engine), Fields: result.Fields}
	if err := report.Render(&buf, rep, report.Options{Format: format, NameWidth: s.config.NameWidth}); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(buf.String()), nil
}

func (s *Server) handlePDFValidateFile(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	resolved, err := s.paths.Resolve(path)
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("PDF validation failed for %s: %s", path, err)), nil
	}

	result, err := s.pdfService.PDFValidateFile(pdf.PDFValidateFileRequest{Path: resolved})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var responseText string
	if result.Valid {
		responseText = fmt.Sprintf("PDF file %s is valid and readable", result.Path)
	} else {
		responseText = fmt.Sprintf("PDF validation failed for %s: %s", result.Path, result.Message)
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handlePDFEngines(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(s.formatEngines(s.pdfService.Engines())), nil
}

func (s *Server) formatEngines(engines map[wrapper.LibraryType]wrapper.LibraryCapabilities) string {
	names := make([]string, 0, len(engines))
	for lt := range engines {
		names = append(names, string(lt))
	}
	sort.Strings(names)

	var b strings.Builder
	fmt.Fprintf(&b, "%s v%s - extraction engines (default: %s)\n\n",
		s.config.ServerName, s.config.Version, s.config.EngineType())
	for _, name := range names {
		caps := engines[wrapper.LibraryType(name)]
		var notes []string
		if caps.ExternalTool {
			notes = append(notes, "runs qpdf")
		}
		if caps.PureGo {
			notes = append(notes, "in process")
		}
		if caps.ObjectNumbers {
			notes = append(notes, "object numbers")
		}
		if caps.PageNumbers {
			notes = append(notes, "page numbers")
		}
		fmt.Fprintf(&b, "• %s: %s\n", name, strings.Join(notes, ", "))
	}
	return b.String()
}

// Run serves MCP over the process's stdin and stdout
func (s *Server) Run(ctx context.Context) error {
	return s.Serve(ctx, os.Stdin, os.Stdout)
}

// Serve serves MCP over the given streams until in is exhausted or ctx is done
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	s.logger.Info("serving MCP over stdio",
		zap.String("server", s.config.ServerName),
		zap.String("directory", s.config.PDFDirectory))

	stdio := server.NewStdioServer(s.mcpServer)
	stdio.SetErrorLogger(zap.NewStdLog(s.logger))
	if err := stdio.Listen(ctx, in, out); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}
