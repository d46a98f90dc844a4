package request

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
)

type RequestSuite struct {
	suite.Suite
}

func TestRequestSuite(t *testing.T) {
	suite.Run(t, new(RequestSuite))
}

func (s *RequestSuite) serve(h http.Handler, r *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func (s *RequestSuite) TestRequestID() {
	var captured string
	h := RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		captured = GetRequestID(r.Context())
	}))

	s.Run("generated when absent", func() {
		w := s.serve(h, httptest.NewRequest(http.MethodGet, "/admin/directories", nil))
		s.Len(captured, 36)
		s.Equal(captured, w.Header().Get("X-Request-ID"))
	})

	s.Run("client value kept", func() {
		r := httptest.NewRequest(http.MethodGet, "/admin/directories", nil)
		r.Header.Set("X-Request-ID", "trace.span_1234")
		w := s.serve(h, r)
		s.Equal("trace.span_1234", captured)
		s.Equal("trace.span_1234", w.Header().Get("X-Request-ID"))
	})

	for name, id := range map[string]string{
		"too long": strings.Repeat("a", MaxRequestIDLength+1),
		"newline":  "valid\ninjected",
		"space":    "request id",
		"quote":    `request"id`,
	} {
		s.Run("replaces "+name, func() {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.Header.Set("X-Request-ID", id)
			s.serve(h, r)
			s.NotEqual(id, captured)
			s.Len(captured, 36)
		})
	}

	s.Empty(GetRequestID(httptest.NewRequest(http.MethodGet, "/", nil).Context()))
}

func (s *RequestSuite) TestRecovery() {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	h := Recovery(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	w := s.serve(h, httptest.NewRequest(http.MethodPost, "/admin/directories/refresh", nil))
	s.Equal(http.StatusInternalServerError, w.Code)
	s.Contains(buf.String(), "panic recovered")
}

func (s *RequestSuite) TestLoggerSkipsHealthyProbes() {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	h := Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))

	s.serve(h, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	s.Empty(buf.String())

	s.serve(h, httptest.NewRequest(http.MethodPost, "/admin/directories/refresh", nil))
	s.Contains(buf.String(), `"status":202`)
}

func (s *RequestSuite) TestBodyLimit() {
	var readErr error
	h := BodyLimit(16)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		_, readErr = io.ReadAll(r.Body)
	}))

	s.serve(h, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("small")))
	s.NoError(readErr)

	s.serve(h, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("x", 64))))
	var maxErr *http.MaxBytesError
	s.ErrorAs(readErr, &maxErr)
}

func (s *RequestSuite) TestLatencyMiddleware() {
	m := NewMetrics(prometheus.NewRegistry())
	h := LatencyMiddleware(m, func(*http.Request) string { return "/admin/directories" })(
		http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	s.serve(h, httptest.NewRequest(http.MethodGet, "/admin/directories", nil))
	s.Equal(1, testutil.CollectAndCount(m.EndpointLatency))
}
