package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"minflow/internal/config"
	"minflow/internal/dto"
)

var (
	ErrExtractorNotConfigured = errors.New("AI service not configured")
	ErrExtractorUpstream      = errors.New("failed to connect to AI service")
	ErrExtractorBadResponse   = errors.New("failed to parse AI response")
	ErrParagraphRequired      = errors.New("paragraph is required")
)

// ExtractionService proxies expense extraction requests to the external AI
// service. The API key is held server-side and injected here; the request
// body is forwarded unchanged and the upstream response passed through with
// its status code.
type ExtractionService struct {
	config  config.ExtractorConfig
	client  *http.Client
	metrics MetricsRecorderInterface
	logger  *slog.Logger
}

// NewExtractionService creates a new extraction service
func NewExtractionService(cfg config.ExtractorConfig, metrics MetricsRecorderInterface, logger *slog.Logger) ExtractionServiceInterface {
	return &ExtractionService{
		config: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		metrics: metrics,
		logger:  logger,
	}
}

// Extract forwards the extraction request upstream. It returns the parsed
// upstream response together with the upstream HTTP status.
func (s *ExtractionService) Extract(ctx context.Context, req *dto.ExtractRequest) (*dto.ExtractResponse, int, error) {
	if req == nil || req.InputData.Paragraph == "" {
		return nil, 0, ErrParagraphRequired
	}

	if s.config.APIKey == "" {
		s.logger.Error("extraction requested but AI_EXPENSE_API_KEY is not set")
		return nil, 0, ErrExtractorNotConfigured
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to marshal extraction request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.URL, bytes.NewReader(body))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build extraction request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-API-Key", s.config.APIKey)

	s.logger.Info("forwarding extraction request",
		"paragraph_length", len(req.InputData.Paragraph),
		"categories", len(req.InputData.Categories))

	start := time.Now()
	resp, err := s.client.Do(httpReq)
	if err != nil {
		s.recordOutcome("upstream_error", start)
		return nil, 0, fmt.Errorf("%w: %v", ErrExtractorUpstream, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		s.recordOutcome("read_error", start)
		return nil, 0, fmt.Errorf("failed to read extraction response: %w", err)
	}

	var extractResp dto.ExtractResponse
	if err := json.Unmarshal(respBody, &extractResp); err != nil {
		s.logger.Error("unparseable extraction response",
			"status", resp.StatusCode,
			"body_length", len(respBody))
		s.recordOutcome("parse_error", start)
		return nil, 0, ErrExtractorBadResponse
	}

	expenseCount := 0
	if extractResp.OutputData != nil {
		expenseCount = len(extractResp.OutputData.Expenses)
	}

	if extractResp.Success && expenseCount == 0 {
		s.logger.Warn("extraction succeeded but returned no expenses")
	}

	s.logger.Info("extraction response received",
		"status", resp.StatusCode,
		"success", extractResp.Success,
		"expenses", expenseCount)
	s.recordOutcome("success", start)

	return &extractResp, resp.StatusCode, nil
}

func (s *ExtractionService) recordOutcome(status string, start time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.IncrementCounter("extraction_request", map[string]string{"status": status})
	s.metrics.RecordProcessingTime("extraction_request", time.Since(start))
}
