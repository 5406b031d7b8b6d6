package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"minflow/internal/dto"
	"minflow/internal/services"
	"minflow/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

func TestExtractHandler(t *testing.T) {
	suite.Run(t, new(ExtractHandlerSuite))
}

type ExtractHandlerSuite struct {
	suite.Suite
	ctrl              *gomock.Controller
	extractionService *service_mocks.MockExtractionServiceInterface
	handler           *ExtractHandler
	e                 *echo.Echo
}

func (s *ExtractHandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.extractionService = service_mocks.NewMockExtractionServiceInterface(s.ctrl)
	s.handler = NewExtractHandler(s.extractionService)
	s.e = echo.New()
	s.e.Validator = NewValidator()
}

func (s *ExtractHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ExtractHandlerSuite) newContext(body interface{}, userID uint) (echo.Context, *httptest.ResponseRecorder) {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/api/expenses/extract", bytes.NewBuffer(raw))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)
	if userID != 0 {
		c.Set("user_id", userID)
	}
	return c, rec
}

func extractBody(paragraph string) map[string]interface{} {
	return map[string]interface{}{
		"input_data": map[string]interface{}{
			"paragraph": paragraph,
			"categories": []map[string]interface{}{
				{"category_id": "1", "name": "Food & Dining", "is_default": true},
			},
		},
		"conversation_history": []interface{}{},
	}
}

func (s *ExtractHandlerSuite) TestExtract_Success() {
	upstreamResp := &dto.ExtractResponse{
		Success: true,
		OutputData: &dto.ExtractOutputData{
			Expenses: []dto.ExtractedExpense{
				{Amount: 12.50, Category: "Food & Dining", CategoryID: "1", Description: "lunch"},
			},
		},
	}

	s.extractionService.EXPECT().Extract(gomock.Any(), gomock.Any()).Return(upstreamResp, http.StatusOK, nil).Times(1)

	c, rec := s.newContext(extractBody("I spent 12.50 on lunch"), 1)
	s.NoError(s.handler.Extract(c))
	s.Equal(http.StatusOK, rec.Code)

	var response dto.ExtractResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.True(response.Success)
	s.Require().NotNil(response.OutputData)
	s.Len(response.OutputData.Expenses, 1)
}

func (s *ExtractHandlerSuite) TestExtract_UpstreamStatusPassedThrough() {
	errMsg := "model overloaded"
	upstreamResp := &dto.ExtractResponse{Success: false, Error: &errMsg}

	s.extractionService.EXPECT().Extract(gomock.Any(), gomock.Any()).Return(upstreamResp, http.StatusBadGateway, nil).Times(1)

	c, rec := s.newContext(extractBody("some text"), 1)
	s.NoError(s.handler.Extract(c))
	s.Equal(http.StatusBadGateway, rec.Code)
}

func (s *ExtractHandlerSuite) TestExtract_EmptyParagraph() {
	s.extractionService.EXPECT().Extract(gomock.Any(), gomock.Any()).Return(nil, 0, services.ErrParagraphRequired).Times(1)

	c, rec := s.newContext(extractBody(""), 1)
	s.NoError(s.handler.Extract(c))
	s.Equal(http.StatusBadRequest, rec.Code)

	var response ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal("EXTRACT_003", response.Code)
}

func (s *ExtractHandlerSuite) TestExtract_NotConfigured() {
	s.extractionService.EXPECT().Extract(gomock.Any(), gomock.Any()).Return(nil, 0, services.ErrExtractorNotConfigured).Times(1)

	c, rec := s.newContext(extractBody("some text"), 1)
	s.NoError(s.handler.Extract(c))
	s.Equal(http.StatusInternalServerError, rec.Code)

	var response ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal("AI service not configured", response.Error)
}

func (s *ExtractHandlerSuite) TestExtract_UpstreamUnreachable() {
	s.extractionService.EXPECT().Extract(gomock.Any(), gomock.Any()).Return(nil, 0, services.ErrExtractorUpstream).Times(1)

	c, rec := s.newContext(extractBody("some text"), 1)
	s.NoError(s.handler.Extract(c))
	s.Equal(http.StatusInternalServerError, rec.Code)
}

func (s *ExtractHandlerSuite) TestExtract_Unauthenticated() {
	c, rec := s.newContext(extractBody("some text"), 0)
	s.NoError(s.handler.Extract(c))
	s.Equal(http.StatusUnauthorized, rec.Code)
}
