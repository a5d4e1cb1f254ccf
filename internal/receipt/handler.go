package receipt

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Service wires config, validation, and the generator into HTTP
// handlers. It plays the caller role from the generation core's point
// of view: requests are validated here before Data is constructed.
type Service struct {
	cfg       Config
	validator Validator
	generator *Generator
	logger    *slog.Logger
}

func NewService(cfg Config, generator *Generator, logger *slog.Logger) Service {
	return Service{
		cfg:       cfg,
		validator: Validator{Config: cfg},
		generator: generator,
		logger:    logger,
	}
}

// CreateReceipt matches POST /receipts: validate, generate into the
// output directory, report derived amounts and the written path.
func (s Service) CreateReceipt(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"code": "BAD_REQUEST", "message": err.Error()})
		return
	}

	result := s.validator.Validate(req)
	if !result.Valid {
		writeJSON(w, http.StatusBadRequest, map[string]any{"code": "VALIDATION_FAILED", "errors": result.Errors})
		return
	}

	if err := os.MkdirAll(s.cfg.OutputDir, 0o755); err != nil {
		s.logger.Error("output dir unavailable", "dir", s.cfg.OutputDir, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"code": "INTERNAL_ERROR", "message": "output directory unavailable"})
		return
	}

	receiptID := uuid.NewString()
	name := req.Filename
	if name == "" {
		name = fmt.Sprintf("receipt-%s.pdf", receiptID)
	} else if !strings.HasSuffix(name, ".pdf") {
		name += ".pdf"
	}
	outputPath := filepath.Join(s.cfg.OutputDir, name)

	data := buildData(req)
	if err := s.generator.Generate(outputPath, data); err != nil {
		s.writeGenerateError(w, err)
		return
	}

	s.logger.Info("receipt generated", "receiptId", receiptID, "path", outputPath, "total", data.TotalAmount())
	writeJSON(w, http.StatusCreated, GenerateResponse{
		ReceiptID:    receiptID,
		Path:         outputPath,
		TaxAmount:    data.TaxAmount(),
		TotalAmount:  data.TotalAmount(),
		DegradedFont: s.generator.DegradedFont(),
	})
}

// PreviewReceipt matches POST /receipts/preview: same body as
// CreateReceipt, returns the rendered PDF inline without writing a
// file.
func (s Service) PreviewReceipt(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"code": "BAD_REQUEST", "message": err.Error()})
		return
	}

	result := s.validator.Validate(req)
	if !result.Valid {
		writeJSON(w, http.StatusBadRequest, map[string]any{"code": "VALIDATION_FAILED", "errors": result.Errors})
		return
	}

	if _, err := os.Stat(s.cfg.TemplatePath); err != nil {
		s.writeGenerateError(w, fmt.Errorf("%w: %s", ErrTemplateNotFound, s.cfg.TemplatePath))
		return
	}

	out, err := s.generator.Render(buildData(req))
	if err != nil {
		s.writeGenerateError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

// writeGenerateError maps core failures onto the response taxonomy:
// a missing template is a configuration problem, a locked destination
// is retryable after the user closes the file, anything else is
// unexpected.
func (s Service) writeGenerateError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrTemplateNotFound):
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"code":      "TEMPLATE_NOT_FOUND",
			"message":   err.Error(),
			"retryable": false,
		})
	case errors.Is(err, fs.ErrPermission):
		writeJSON(w, http.StatusConflict, map[string]any{
			"code":      "OUTPUT_LOCKED",
			"message":   "destination file is not writable; close it and retry",
			"retryable": true,
		})
	default:
		s.logger.Error("receipt generation failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"code":      "INTERNAL_ERROR",
			"message":   "receipt generation failed",
			"retryable": false,
		})
	}
}

// buildData converts a validated request into the core input record.
// A preformatted date string wins over the ISO issue date.
func buildData(req GenerateRequest) Data {
	date := strings.TrimSpace(req.Date)
	if date == "" && req.IssueDate != nil {
		date = formatIssueDate(req.IssueDate.Time)
	}
	return Data{
		Date:              date,
		Name:              strings.TrimSpace(req.Name),
		AmountTaxExcluded: req.AmountTaxExcluded,
		Description:       req.Description,
	}
}

func decodeRequest(body io.ReadCloser) (GenerateRequest, error) {
	defer body.Close()
	var req GenerateRequest
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		return req, fmt.Errorf("invalid JSON: %w", err)
	}
	return req, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
