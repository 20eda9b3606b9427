package pdf

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/a3tai/pdf-tab-order/internal/pdf/order"
	"github.com/a3tai/pdf-tab-order/internal/pdf/wrapper"
)

// Service runs the tab-order pipeline: validate, extract, sort
type Service struct {
	validator     *Validator
	factory       *wrapper.PDFLibraryFactory
	defaultEngine wrapper.LibraryType
	logger        *zap.Logger
}

// NewService creates a service. Requests without an engine use defaultEngine.
func NewService(maxFileSize int64, factory *wrapper.PDFLibraryFactory, defaultEngine wrapper.LibraryType,
	logger *zap.Logger,
) *Service {
	if factory == nil {
		factory = wrapper.NewPDFLibraryFactory()
	}
	if defaultEngine == "" {
		defaultEngine = wrapper.LibraryQPDF
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		validator:     NewValidator(maxFileSize),
		factory:       factory,
		defaultEngine: defaultEngine,
		logger:        logger,
	}
}

// PDFTabOrder extracts the widgets of req.Path and returns them in tab order
func (s *Service) PDFTabOrder(ctx context.Context, req PDFTabOrderRequest) (*PDFTabOrderResult, error) {
	if err := s.validator.CheckInput(req.Path); err != nil {
		return nil, err
	}

	engine := req.Engine
	if engine == "" {
		engine = s.defaultEngine
	}
	engine = s.factory.Resolve(engine)

	extractor, err := s.factory.Create(engine)
	if err != nil {
		return nil, err
	}

	fields, err := extractor.Extract(ctx, req.Path)
	if err != nil {
		return nil, fmt.Errorf("extract fields: %w", err)
	}

	s.logger.Debug("extracted fields",
		zap.String("path", req.Path),
		zap.String("engine", string(engine)),
		zap.Int("count", len(fields)))

	return &PDFTabOrderResult{
		Path:   req.Path,
		Engine: engine,
		Fields: order.Sort(fields),
	}, nil
}

// PDFValidateFile performs validation on a PDF file
func (s *Service) PDFValidateFile(req PDFValidateFileRequest) (*PDFValidateFileResult, error) {
	return s.validator.ValidateFile(req)
}

// Engines returns the engines the service can run with their capabilities
func (s *Service) Engines() map[wrapper.LibraryType]wrapper.LibraryCapabilities {
	return s.factory.GetLibraryCapabilities()
}
