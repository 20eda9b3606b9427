package wrapper

import (
	"fmt"
	"os/exec"

	"go.uber.org/zap"

	"github.com/a3tai/pdf-tab-order/internal/pdf/extraction"
)

// PDFLibraryFactory creates widget extractors for each supported backend
type PDFLibraryFactory struct {
	config FactoryConfig
}

// FactoryConfig contains configuration options for the factory
type FactoryConfig struct {
	// PreferredLibrary is used when LibraryAuto cannot decide
	PreferredLibrary LibraryType `json:"preferred_library"`

	// QPDFBinary is the qpdf executable name or path
	QPDFBinary string `json:"qpdf_binary"`

	// KeepTemp leaves qpdf's .temp.qdf output on disk
	KeepTemp bool `json:"keep_temp"`

	// Runner replaces process execution for the qpdf backend
	Runner extraction.CommandRunner `json:"-"`

	// LookPath resolves QPDFBinary for auto selection, exec.LookPath when nil
	LookPath func(file string) (string, error) `json:"-"`

	Logger *zap.Logger `json:"-"`
}

// NewPDFLibraryFactory creates a new factory with default configuration
func NewPDFLibraryFactory() *PDFLibraryFactory {
	return NewPDFLibraryFactoryWithConfig(FactoryConfig{})
}

// NewPDFLibraryFactoryWithConfig creates a factory with custom configuration
func NewPDFLibraryFactoryWithConfig(config FactoryConfig) *PDFLibraryFactory {
	if config.PreferredLibrary == "" || config.PreferredLibrary == LibraryAuto {
		config.PreferredLibrary = LibraryPDFCPU
	}
	if config.QPDFBinary == "" {
		config.QPDFBinary = extraction.DefaultQPDFBinary
	}
	if config.LookPath == nil {
		config.LookPath = exec.LookPath
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}
	return &PDFLibraryFactory{config: config}
}

// Create instantiates the extractor of the specified type
func (f *PDFLibraryFactory) Create(libType LibraryType) (extraction.Extractor, error) {
	switch libType {
	case LibraryQPDF:
		return f.createQPDFExtractor(), nil
	case LibraryPDFCPU:
		return extraction.NewPDFCPUFormExtractor(f.config.Logger), nil
	case LibraryLedongthuc:
		return extraction.NewLedongthucFormExtractor(f.config.Logger), nil
	case LibraryAuto:
		return f.Create(f.Resolve(libType))
	default:
		return nil, &WrapperError{
			Library: libType,
			Op:      "create",
			Err:     fmt.Errorf("unknown library type: %s", libType),
		}
	}
}

// Resolve maps LibraryAuto to a concrete backend: qpdf when its binary can be
// found, the preferred in-process library otherwise. Other types are returned
// unchanged.
func (f *PDFLibraryFactory) Resolve(libType LibraryType) LibraryType {
	if libType != LibraryAuto {
		return libType
	}
	if _, err := f.config.LookPath(f.config.QPDFBinary); err == nil {
		return LibraryQPDF
	}
	f.config.Logger.Debug("qpdf not found, using in-process library",
		zap.String("binary", f.config.QPDFBinary),
		zap.String("library", string(f.config.PreferredLibrary)))
	return f.config.PreferredLibrary
}

func (f *PDFLibraryFactory) createQPDFExtractor() *extraction.QPDFExtractor {
	return extraction.NewQPDFExtractor(extraction.QPDFConfig{
		Binary:   f.config.QPDFBinary,
		KeepTemp: f.config.KeepTemp,
		Runner:   f.config.Runner,
		Logger:   f.config.Logger,
	})
}

// GetConfig returns the current factory configuration
func (f *PDFLibraryFactory) GetConfig() FactoryConfig {
	return f.config
}

// GetSupportedLibraries returns a list of all supported library types
func (f *PDFLibraryFactory) GetSupportedLibraries() []LibraryType {
	return []LibraryType{
		LibraryQPDF,
		LibraryPDFCPU,
		LibraryLedongthuc,
		LibraryAuto,
	}
}

// ValidateLibraryType checks if a library type is supported
func (f *PDFLibraryFactory) ValidateLibraryType(libType LibraryType) error {
	for _, supported := range f.GetSupportedLibraries() {
		if libType == supported {
			return nil
		}
	}
	return &WrapperError{
		Library: libType,
		Op:      "validate",
		Err:     fmt.Errorf("unsupported library type: %s", libType),
	}
}

// LibraryCapabilities describes what each backend needs and reports
type LibraryCapabilities struct {
	ExternalTool  bool `json:"external_tool"`
	TempFile      bool `json:"temp_file"`
	ObjectNumbers bool `json:"object_numbers"`
	PageNumbers   bool `json:"page_numbers"`
	PureGo        bool `json:"pure_go"`
}

// GetLibraryCapabilities returns the capabilities of each library
func (f *PDFLibraryFactory) GetLibraryCapabilities() map[LibraryType]LibraryCapabilities {
	return map[LibraryType]LibraryCapabilities{
		LibraryQPDF: {
			ExternalTool:  true,
			TempFile:      true,
			ObjectNumbers: true,
		},
		LibraryPDFCPU: {
			ObjectNumbers: true,
			PureGo:        true,
		},
		LibraryLedongthuc: {
			PageNumbers: true,
			PureGo:      true,
		},
	}
}
