package handlers

import (
	"errors"

	"minflow/internal/dto"
	apierrors "minflow/internal/errors"
	"minflow/internal/services"

	"github.com/labstack/echo/v4"
)

// ExtractHandler proxies free-text expense extraction to the external AI
// service. The caller never sees or supplies the upstream API key.
type ExtractHandler struct {
	extractionService services.ExtractionServiceInterface
}

// NewExtractHandler creates a new extraction proxy handler
func NewExtractHandler(extractionService services.ExtractionServiceInterface) *ExtractHandler {
	return &ExtractHandler{
		extractionService: extractionService,
	}
}

// Extract forwards the extraction request upstream and passes the response
// through with the upstream status code
func (h *ExtractHandler) Extract(c echo.Context) error {
	if _, err := getUserIDFromContext(c); err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	var req dto.ExtractRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithMessage("Invalid request body"))
	}

	resp, status, err := h.extractionService.Extract(c.Request().Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrParagraphRequired):
			return SendError(c, apierrors.ExtractEmptyInput)
		case errors.Is(err, services.ErrExtractorNotConfigured):
			return SendError(c, apierrors.ExtractNotConfigured)
		case errors.Is(err, services.ErrExtractorUpstream),
			errors.Is(err, services.ErrExtractorBadResponse):
			return SendError(c, apierrors.ExtractUpstream)
		default:
			return SendSystemError(c, err)
		}
	}

	// Upstream response body and status pass through unchanged
	return c.JSON(status, resp)
}
