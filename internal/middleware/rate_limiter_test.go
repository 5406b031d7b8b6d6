package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

type RateLimiterTestSuite struct {
	suite.Suite
	echo *echo.Echo
}

func (s *RateLimiterTestSuite) SetupTest() {
	s.echo = echo.New()
	// Reset shared state so tests don't bleed into each other
	mu.Lock()
	visitors = make(map[string]*visitor)
	mu.Unlock()
}

func TestRateLimiterTestSuite(t *testing.T) {
	suite.Run(t, new(RateLimiterTestSuite))
}

func (s *RateLimiterTestSuite) doRequest(handler echo.HandlerFunc, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Real-IP", ip)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	_ = handler(c)
	return rec
}

func (s *RateLimiterTestSuite) TestAllowsWithinBurst() {
	handler := RateLimiterWithConfig(5, 10)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	for i := 0; i < 10; i++ {
		rec := s.doRequest(handler, "10.0.0.1")
		s.Equal(http.StatusOK, rec.Code, "request %d should pass", i)
	}
}

func (s *RateLimiterTestSuite) TestRejectsBeyondBurst() {
	handler := RateLimiterWithConfig(1, 2)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	s.Equal(http.StatusOK, s.doRequest(handler, "10.0.0.2").Code)
	s.Equal(http.StatusOK, s.doRequest(handler, "10.0.0.2").Code)
	s.Equal(http.StatusTooManyRequests, s.doRequest(handler, "10.0.0.2").Code)
}

func (s *RateLimiterTestSuite) TestLimitsPerIP() {
	handler := RateLimiterWithConfig(1, 1)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	// Exhaust one IP's budget; others are unaffected
	s.Equal(http.StatusOK, s.doRequest(handler, "10.0.0.3").Code)
	s.Equal(http.StatusTooManyRequests, s.doRequest(handler, "10.0.0.3").Code)

	for i := 0; i < 5; i++ {
		ip := fmt.Sprintf("10.0.1.%d", i)
		s.Equal(http.StatusOK, s.doRequest(handler, ip).Code)
	}
}

func (s *RateLimiterTestSuite) TestPrefersForwardedForHeader() {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.9")
	req.Header.Set("X-Real-IP", "10.0.0.4")
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	s.Equal("203.0.113.9", getIP(c))
}
