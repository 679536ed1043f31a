package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

// RequestIDTestSuite defines the test suite for request ID middleware
type RequestIDTestSuite struct {
	suite.Suite
	echo *echo.Echo
}

// SetupTest runs before each test
func (s *RequestIDTestSuite) SetupTest() {
	s.echo = echo.New()
}

// TestRequestIDTestSuite runs the test suite
func TestRequestIDTestSuite(t *testing.T) {
	suite.Run(t, new(RequestIDTestSuite))
}

func (s *RequestIDTestSuite) run(header string) (string, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(TraceIDHeader, header)
	}
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	var traceID string
	handler := RequestID()(func(c echo.Context) error {
		traceID = GetTraceID(c)
		s.Equal(traceID, TraceIDFromContext(c.Request().Context()))
		return c.NoContent(http.StatusOK)
	})

	s.Require().NoError(handler(c))
	return traceID, rec
}

// TestRequestID_GeneratesTraceID tests that middleware generates a UUID trace ID
func (s *RequestIDTestSuite) TestRequestID_GeneratesTraceID() {
	traceID, rec := s.run("")

	s.Regexp(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`, traceID)
	s.Equal(traceID, rec.Header().Get(TraceIDHeader))
}

// TestRequestID_UsesExistingTraceID tests that middleware uses existing trace ID from request
func (s *RequestIDTestSuite) TestRequestID_UsesExistingTraceID() {
	traceID, rec := s.run("existing-trace-id-12345")

	s.Equal("existing-trace-id-12345", traceID)
	s.Equal("existing-trace-id-12345", rec.Header().Get(TraceIDHeader))
}

// TestRequestID_ReplacesMalformedTraceID tests oversized or non-printable trace IDs
func (s *RequestIDTestSuite) TestRequestID_ReplacesMalformedTraceID() {
	for _, header := range []string{strings.Repeat("a", maxTraceIDLength+1), "has space"} {
		traceID, _ := s.run(header)
		s.NotEqual(header, traceID)
		s.Len(traceID, 36)
	}
}

// TestGetTraceID_ReturnsEmptyWhenNotSet tests GetTraceID when trace ID not set
func (s *RequestIDTestSuite) TestGetTraceID_ReturnsEmptyWhenNotSet() {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := s.echo.NewContext(req, httptest.NewRecorder())

	s.Empty(GetTraceID(c))
	s.Empty(TraceIDFromContext(req.Context()))
}
