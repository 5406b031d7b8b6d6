package services

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"minflow/internal/config"
	"minflow/internal/dto"

	"github.com/stretchr/testify/suite"
)

type ExtractionServiceTestSuite struct {
	suite.Suite
}

func TestExtractionServiceSuite(t *testing.T) {
	suite.Run(t, new(ExtractionServiceTestSuite))
}

func (s *ExtractionServiceTestSuite) newService(url, apiKey string) ExtractionServiceInterface {
	return NewExtractionService(config.ExtractorConfig{
		APIKey:  apiKey,
		URL:     url,
		Timeout: 5 * time.Second,
	}, nil, slog.Default())
}

func (s *ExtractionServiceTestSuite) newRequest(paragraph string) *dto.ExtractRequest {
	return &dto.ExtractRequest{
		InputData: dto.ExtractInputData{
			Paragraph: paragraph,
			Categories: []dto.ExtractCategory{
				{CategoryID: "1", Name: "Food & Dining", IsDefault: true},
				{CategoryID: "10", Name: "Other", IsDefault: true},
			},
		},
		ConversationHistory: []interface{}{},
	}
}

func (s *ExtractionServiceTestSuite) TestExtract_Success() {
	var gotAPIKey string
	var gotBody dto.ExtractRequest

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAPIKey = r.Header.Get("X-API-Key")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotBody)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(dto.ExtractResponse{
			Success: true,
			OutputData: &dto.ExtractOutputData{
				Expenses: []dto.ExtractedExpense{
					{Amount: 12.50, Category: "Food & Dining", CategoryID: "1", Description: "lunch"},
				},
			},
		})
	}))
	defer upstream.Close()

	service := s.newService(upstream.URL, "server-side-key")
	resp, status, err := service.Extract(context.Background(), s.newRequest("I spent 12.50 on lunch"))

	s.NoError(err)
	s.Equal(http.StatusOK, status)
	s.True(resp.Success)
	s.Require().NotNil(resp.OutputData)
	s.Len(resp.OutputData.Expenses, 1)
	s.Equal(12.50, resp.OutputData.Expenses[0].Amount)

	// The key is injected server-side, never supplied by the caller
	s.Equal("server-side-key", gotAPIKey)
	s.Equal("I spent 12.50 on lunch", gotBody.InputData.Paragraph)
	s.Len(gotBody.InputData.Categories, 2)
}

func (s *ExtractionServiceTestSuite) TestExtract_UpstreamErrorStatusPassedThrough() {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		errMsg := "model overloaded"
		_ = json.NewEncoder(w).Encode(dto.ExtractResponse{
			Success: false,
			Error:   &errMsg,
		})
	}))
	defer upstream.Close()

	service := s.newService(upstream.URL, "key")
	resp, status, err := service.Extract(context.Background(), s.newRequest("some text"))

	s.NoError(err)
	s.Equal(http.StatusBadGateway, status)
	s.False(resp.Success)
	s.Require().NotNil(resp.Error)
	s.Equal("model overloaded", *resp.Error)
}

func (s *ExtractionServiceTestSuite) TestExtract_MissingAPIKey() {
	service := s.newService("http://localhost:1", "")

	resp, _, err := service.Extract(context.Background(), s.newRequest("some text"))
	s.ErrorIs(err, ErrExtractorNotConfigured)
	s.Nil(resp)
}

func (s *ExtractionServiceTestSuite) TestExtract_EmptyParagraph() {
	service := s.newService("http://localhost:1", "key")

	resp, _, err := service.Extract(context.Background(), s.newRequest(""))
	s.ErrorIs(err, ErrParagraphRequired)
	s.Nil(resp)

	resp, _, err = service.Extract(context.Background(), nil)
	s.ErrorIs(err, ErrParagraphRequired)
	s.Nil(resp)
}

func (s *ExtractionServiceTestSuite) TestExtract_UnreachableUpstream() {
	// Port 1 refuses connections
	service := s.newService("http://127.0.0.1:1", "key")

	resp, _, err := service.Extract(context.Background(), s.newRequest("some text"))
	s.ErrorIs(err, ErrExtractorUpstream)
	s.Nil(resp)
}

func (s *ExtractionServiceTestSuite) TestExtract_UnparseableResponse() {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html>gateway timeout</html>"))
	}))
	defer upstream.Close()

	service := s.newService(upstream.URL, "key")
	resp, _, err := service.Extract(context.Background(), s.newRequest("some text"))

	s.ErrorIs(err, ErrExtractorBadResponse)
	s.Nil(resp)
}

func (s *ExtractionServiceTestSuite) TestExtract_ContextCancelled() {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	}))
	defer upstream.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	service := s.newService(upstream.URL, "key")
	resp, _, err := service.Extract(ctx, s.newRequest("some text"))

	s.Error(err)
	s.Nil(resp)
}
