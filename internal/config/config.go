package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/a3tai/pdf-tab-order/internal/logger"
	"github.com/a3tai/pdf-tab-order/internal/pdf/report"
	"github.com/a3tai/pdf-tab-order/internal/pdf/wrapper"
)

const (
	// Program names
	ProgramCLI = "pdf-tab-order"
	ProgramMCP = "pdf-tab-order-mcp"

	// EnvPrefix is prepended to upper-cased keys, e.g. PDF_TAB_ORDER_ENGINE
	EnvPrefix = "PDF_TAB_ORDER"

	// Default values
	DefaultEngine      = string(wrapper.LibraryQPDF)
	DefaultQPDFPath    = "qpdf"
	DefaultFormat      = string(report.FormatText)
	DefaultNameWidth   = report.DefaultNameWidth
	DefaultLogLevel    = "warn"
	DefaultMaxFileSize = 0                 // no limit
	DefaultMCPFileSize = 100 * 1024 * 1024 // 100MB

	// Directory permissions
	DefaultDirPerm = 0o750
)

// ErrVersionRequested is returned by Load when --version is given
var ErrVersionRequested = errors.New("version requested")

// Config holds the settings shared by the CLI and the MCP server
type Config struct {
	// Extraction
	Engine      string
	QPDFPath    string
	KeepTemp    bool
	MaxFileSize int64 // Maximum PDF file size in bytes, 0 for no limit

	// Report
	Format    string
	NameWidth int

	// MCP server only
	PDFDirectory string
	ServerName   string

	// Application
	Version  string
	LogLevel string
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Engine:      DefaultEngine,
		QPDFPath:    DefaultQPDFPath,
		MaxFileSize: DefaultMaxFileSize,
		Format:      DefaultFormat,
		NameWidth:   DefaultNameWidth,
		ServerName:  ProgramMCP,
		Version:     "1.0.0",
		LogLevel:    DefaultLogLevel,
	}
}

// Loader resolves a Config from flags, environment and defaults, in that order
// of precedence.
type Loader struct {
	program string
	out     io.Writer
	flags   *pflag.FlagSet
	v       *viper.Viper
}

// NewLoader creates a loader for program. Usage and flag errors are written to
// out.
func NewLoader(program string, out io.Writer) *Loader {
	l := &Loader{
		program: program,
		out:     out,
		flags:   pflag.NewFlagSet(program, pflag.ContinueOnError),
		v:       viper.New(),
	}
	l.flags.SetOutput(out)
	l.flags.SortFlags = false

	cfg := DefaultConfig()
	if program == ProgramMCP {
		cfg.MaxFileSize = DefaultMCPFileSize
		if dir, err := os.Getwd(); err == nil {
			cfg.PDFDirectory = dir
		} else {
			cfg.PDFDirectory = "."
		}
	}

	l.setupViperEnvironment(cfg)
	l.defineCommandLineFlags(cfg)
	l.bindFlagsToViper()
	l.flags.Usage = l.PrintUsage
	return l
}

// setupViperEnvironment configures viper with environment variables and defaults
func (l *Loader) setupViperEnvironment(cfg *Config) {
	l.v.SetEnvPrefix(EnvPrefix)
	l.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	l.v.AutomaticEnv()

	l.v.SetDefault("engine", cfg.Engine)
	l.v.SetDefault("qpdf", cfg.QPDFPath)
	l.v.SetDefault("keep-temp", cfg.KeepTemp)
	l.v.SetDefault("max-file-size", cfg.MaxFileSize)
	l.v.SetDefault("format", cfg.Format)
	l.v.SetDefault("name-width", cfg.NameWidth)
	l.v.SetDefault("log-level", cfg.LogLevel)
	l.v.SetDefault("dir", cfg.PDFDirectory)
	l.v.SetDefault("server-name", cfg.ServerName)
}

// defineCommandLineFlags sets up all command line flags
func (l *Loader) defineCommandLineFlags(cfg *Config) {
	l.flags.String("engine", cfg.Engine, "Extraction engine (qpdf, pdfcpu, ledongthuc, auto)")
	l.flags.String("qpdf", cfg.QPDFPath, "qpdf executable name or path")
	l.flags.Bool("keep-temp", cfg.KeepTemp, "Keep the normalized .temp.qdf file")
	l.flags.Int64("max-file-size", cfg.MaxFileSize, "Maximum PDF file size in bytes (0 for no limit)")
	l.flags.String("format", cfg.Format, "Report format (text, json, yaml)")
	l.flags.Int("name-width", cfg.NameWidth, "Width of the field name column in text reports")
	l.flags.String("log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	if l.program == ProgramMCP {
		l.flags.String("dir", cfg.PDFDirectory, "Directory containing PDF files")
		l.flags.String("server-name", cfg.ServerName, "Name reported to MCP clients")
	}
	l.flags.BoolP("version", "v", false, "Print version information and exit")
}

// bindFlagsToViper binds command line flags to viper configuration
func (l *Loader) bindFlagsToViper() {
	l.flags.VisitAll(func(f *pflag.Flag) {
		if f.Name == "version" {
			return
		}
		_ = l.v.BindPFlag(f.Name, f)
	})
}

// PrintUsage writes the usage message to the loader's output
func (l *Loader) PrintUsage() {
	w := l.out
	if l.program == ProgramMCP {
		fmt.Fprintf(w, "Usage: %s [options]\n", l.program)
		fmt.Fprintf(w, "\nMCP server reporting the tab order of PDF form fields\n\n")
	} else {
		fmt.Fprintf(w, "Usage: %s [options] <pdf_file>\n", l.program)
		fmt.Fprintf(w, "\nPrints form fields in the order a viewer tabs through them\n")
		fmt.Fprintf(w, "The report is written to stdout, errors such as a missing file to stderr\n\n")
	}
	fmt.Fprintf(w, "Options:\n")
	l.flags.PrintDefaults()
	fmt.Fprintf(w, "\nEnvironment Variables:\n")
	l.flags.VisitAll(func(f *pflag.Flag) {
		if f.Name == "version" {
			return
		}
		fmt.Fprintf(w, "  %s\n", EnvVar(f.Name))
	})
}

// EnvVar returns the environment variable read for a configuration key
func EnvVar(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
}

// Load parses args (without the program name) and returns the configuration.
// ErrVersionRequested and pflag.ErrHelp are returned unwrapped.
func (l *Loader) Load(args []string) (*Config, error) {
	if err := l.flags.Parse(args); err != nil {
		return nil, err
	}
	if version, _ := l.flags.GetBool("version"); version {
		return nil, ErrVersionRequested
	}

	cfg := DefaultConfig()
	cfg.Engine = l.v.GetString("engine")
	cfg.QPDFPath = l.v.GetString("qpdf")
	cfg.KeepTemp = l.v.GetBool("keep-temp")
	cfg.MaxFileSize = l.v.GetInt64("max-file-size")
	cfg.Format = l.v.GetString("format")
	cfg.NameWidth = l.v.GetInt("name-width")
	cfg.LogLevel = l.v.GetString("log-level")
	if l.program == ProgramMCP {
		cfg.PDFDirectory = l.v.GetString("dir")
		cfg.ServerName = l.v.GetString("server-name")
	}

	if cfg.PDFDirectory != "" {
		if expandedPath, err := filepath.Abs(cfg.PDFDirectory); err == nil {
			cfg.PDFDirectory = expandedPath
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Args returns the positional arguments left after Load
func (l *Loader) Args() []string {
	return l.flags.Args()
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if _, err := wrapper.ParseLibraryType(c.Engine); err != nil {
		return fmt.Errorf("invalid engine: %s (must be one of: qpdf, pdfcpu, ledongthuc, auto)", c.Engine)
	}

	if strings.TrimSpace(c.QPDFPath) == "" {
		return errors.New("qpdf path cannot be empty")
	}

	if _, err := report.ParseFormat(c.Format); err != nil {
		return err
	}

	if c.NameWidth <= 0 {
		return errors.New("name width must be positive")
	}

	if c.MaxFileSize < 0 {
		return errors.New("maximum file size cannot be negative")
	}

	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return err
	}

	if c.PDFDirectory != "" {
		if _, err := os.Stat(c.PDFDirectory); os.IsNotExist(err) {
			if err := os.MkdirAll(c.PDFDirectory, DefaultDirPerm); err != nil {
				return fmt.Errorf("cannot create PDF directory %s: %w", c.PDFDirectory, err)
			}
		} else if err != nil {
			return fmt.Errorf("cannot access PDF directory %s: %w", c.PDFDirectory, err)
		}
	}

	return nil
}

// EngineType returns the configured engine as a library type
func (c *Config) EngineType() wrapper.LibraryType {
	lt, err := wrapper.ParseLibraryType(c.Engine)
	if err != nil {
		return wrapper.LibraryQPDF
	}
	return lt
}

// ReportFormat returns the configured report format
func (c *Config) ReportFormat() report.Format {
	f, err := report.ParseFormat(c.Format)
	if err != nil {
		return report.FormatText
	}
	return f
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{Engine: %s, QPDFPath: %s, Format: %s, NameWidth: %d, LogLevel: %s, "+
		"MaxFileSize: %d, KeepTemp: %t, PDFDirectory: %s}",
		c.Engine, c.QPDFPath, c.Format, c.NameWidth, c.LogLevel, c.MaxFileSize, c.KeepTemp, c.PDFDirectory)
}
