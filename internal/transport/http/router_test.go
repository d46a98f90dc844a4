package httptransport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	dirmodels "esbresolver/internal/directory/models"
	"esbresolver/internal/platform/health"
	"esbresolver/internal/policy/models"
	"esbresolver/internal/transport/http/mocks"
	dErrors "esbresolver/pkg/domain-errors"
	"esbresolver/pkg/platform/middleware/admin"
)

const testToken = "ops-token"

type RouterSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	sites       *mocks.MockSiteDirectory
	invalidator *mocks.MockCacheInvalidator
	evaluator   *mocks.MockPolicyEvaluator
	catalog     *mocks.MockPolicyCatalog
	versions    *mocks.MockVersionLister
	logger      *slog.Logger
	router      http.Handler
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.sites = mocks.NewMockSiteDirectory(s.ctrl)
	s.invalidator = mocks.NewMockCacheInvalidator(s.ctrl)
	s.evaluator = mocks.NewMockPolicyEvaluator(s.ctrl)
	s.catalog = mocks.NewMockPolicyCatalog(s.ctrl)
	s.versions = mocks.NewMockVersionLister(s.ctrl)
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	s.router = s.newRouter(testToken, s.versions)
}

func (s *RouterSuite) newRouter(token string, versions VersionLister) http.Handler {
	reg := prometheus.NewRegistry()
	return NewRouter(Handlers{
		Health:    health.New("test"),
		Directory: NewDirectoryHandler(s.sites, s.invalidator, s.logger),
		Policy:    NewPolicyHandler(s.evaluator, s.catalog, versions, s.logger),
	}, RouterConfig{
		AdminToken: token,
		Registerer: reg,
		Gatherer:   reg,
	}, s.logger)
}

func (s *RouterSuite) do(h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(admin.TokenHeader, testToken)
	req.Header.Set(admin.OperatorHeader, "oncall")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func (s *RouterSuite) decode(w *httptest.ResponseRecorder, v any) {
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), v))
}

func (s *RouterSuite) TestProbesAndMetrics() {
	s.Equal(http.StatusOK, s.do(s.router, http.MethodGet, "/health/live", nil).Code)
	s.Equal(http.StatusOK, s.do(s.router, http.MethodGet, "/health/ready", nil).Code)

	// The first request already observed latency, so the histogram is exported.
	w := s.do(s.router, http.MethodGet, "/metrics", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "esb_http_endpoint_latency_seconds")
}

func (s *RouterSuite) TestAdminGuard() {
	s.Run("wrong token", func() {
		req := httptest.NewRequest(http.MethodGet, "/admin/policies", nil)
		req.Header.Set(admin.TokenHeader, "guess")
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)
		s.Equal(http.StatusUnauthorized, w.Code)
	})

	s.Run("not mounted without a token", func() {
		w := s.do(s.newRouter("", nil), http.MethodGet, "/admin/policies", nil)
		s.Equal(http.StatusNotFound, w.Code)
	})
}

func (s *RouterSuite) TestListDirectories() {
	s.sites.EXPECT().Enumerate().Return([]dirmodels.SiteEntry{
		{Key: dirmodels.DefaultSiteKey, Location: dirmodels.SiteLocation{InquireURL: "http://uddi/inquire.asmx"}},
		{Key: "site-1", Location: dirmodels.SiteLocation{InquireURL: "http://other/inquire.asmx", AuthMode: dirmodels.AuthUDDI}},
	})

	w := s.do(s.router, http.MethodGet, "/admin/directories", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var body directoriesResponse
	s.decode(w, &body)
	s.Require().Len(body.Sites, 2)
	s.True(body.Sites[0].Reserved)
	s.False(body.Sites[1].Reserved)
	s.Equal("http://other/inquire.asmx", body.Sites[1].Location.InquireURL)
}

func (s *RouterSuite) TestRefreshDirectories() {
	s.Run("success returns the refreshed sites", func() {
		s.sites.EXPECT().RefreshNow(gomock.Any()).Return(nil)
		s.sites.EXPECT().Enumerate().Return([]dirmodels.SiteEntry{{Key: "site-1"}})

		w := s.do(s.router, http.MethodPost, "/admin/directories/refresh", nil)
		s.Require().Equal(http.StatusOK, w.Code)
		var body directoriesResponse
		s.decode(w, &body)
		s.Len(body.Sites, 1)
	})

	s.Run("discovery disabled", func() {
		s.sites.EXPECT().RefreshNow(gomock.Any()).Return(dErrors.New(dErrors.CodeBadRequest, "site discovery is disabled"))

		w := s.do(s.router, http.MethodPost, "/admin/directories/refresh", nil)
		s.Equal(http.StatusBadRequest, w.Code)
		s.Contains(w.Body.String(), "site discovery is disabled")
	})
}

func (s *RouterSuite) TestEvictDirectory() {
	s.Run("evicts and clears cached resolutions", func() {
		gomock.InOrder(
			s.sites.EXPECT().Evict("http://other/inquire.asmx").Return(true),
			s.invalidator.EXPECT().Invalidate(gomock.Any()),
		)

		w := s.do(s.router, http.MethodPost, "/admin/directories/evict", map[string]string{"key": "http://other/inquire.asmx"})
		s.Equal(http.StatusNoContent, w.Code)
	})

	s.Run("unknown directory", func() {
		s.sites.EXPECT().Evict("gone").Return(false)

		w := s.do(s.router, http.MethodPost, "/admin/directories/evict", map[string]string{"key": "gone"})
		s.Equal(http.StatusNotFound, w.Code)
		s.Contains(w.Body.String(), "directory not found")
	})

	s.Run("reserved entries are refused", func() {
		for _, key := range []string{dirmodels.DefaultSiteKey, dirmodels.ControlSiteKey} {
			w := s.do(s.router, http.MethodPost, "/admin/directories/evict", map[string]string{"key": key})
			s.Equal(http.StatusBadRequest, w.Code)
		}
	})

	s.Run("missing key", func() {
		w := s.do(s.router, http.MethodPost, "/admin/directories/evict", map[string]string{})
		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *RouterSuite) TestInvalidateCache() {
	s.invalidator.EXPECT().Invalidate(gomock.Any())

	w := s.do(s.router, http.MethodPost, "/admin/cache/invalidate", nil)
	s.Equal(http.StatusNoContent, w.Code)
}

func (s *RouterSuite) TestListPolicies() {
	s.catalog.EXPECT().Policies().Return([]string{"Routing 1.0", "Routing 2.0"})

	w := s.do(s.router, http.MethodGet, "/admin/policies", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var body policiesResponse
	s.decode(w, &body)
	s.Equal([]string{"Routing 1.0", "Routing 2.0"}, body.Loaded)
}

func (s *RouterSuite) TestListVersions() {
	s.Run("newest first", func() {
		s.versions.EXPECT().Versions(gomock.Any(), "Routing").
			Return([]models.Version{{Major: 2, Minor: 1}, {Major: 1, Minor: 0}}, nil)

		w := s.do(s.router, http.MethodGet, "/admin/policies/Routing/versions", nil)
		s.Require().Equal(http.StatusOK, w.Code)
		var body versionsResponse
		s.decode(w, &body)
		s.Equal(versionsResponse{Name: "Routing", Versions: []string{"2.1", "1.0"}}, body)
	})

	s.Run("unknown policy", func() {
		s.versions.EXPECT().Versions(gomock.Any(), "Missing").Return(nil, nil)

		w := s.do(s.router, http.MethodGet, "/admin/policies/Missing/versions", nil)
		s.Equal(http.StatusNotFound, w.Code)
	})

	s.Run("store failure", func() {
		s.versions.EXPECT().Versions(gomock.Any(), "Routing").Return(nil, io.ErrUnexpectedEOF)

		w := s.do(s.router, http.MethodGet, "/admin/policies/Routing/versions", nil)
		s.Equal(http.StatusServiceUnavailable, w.Code)
	})

	s.Run("no store configured", func() {
		w := s.do(s.newRouter(testToken, nil), http.MethodGet, "/admin/policies/Routing/versions", nil)
		s.Equal(http.StatusServiceUnavailable, w.Code)
	})
}

func (s *RouterSuite) TestEvaluate() {
	s.Run("dry run returns the interchange", func() {
		s.evaluator.EXPECT().Resolve(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req models.ResolutionRequest) (*models.ResolutionResponse, error) {
				s.Equal("Routing", req.PolicyName)
				s.Equal(models.DirectionMsgIn, req.MessageDirection)
				s.Equal("v1", req.Parameters.Value("region"))
				ic := req.Interchange()
				ic.ServiceName = "Orders"
				return &models.ResolutionResponse{PolicyName: req.PolicyName, Version: "1.0", Interchange: ic}, nil
			})

		w := s.do(s.router, http.MethodPost, "/admin/policies/evaluate", map[string]any{
			"policy_name":       "Routing",
			"version":           "1",
			"message_direction": "MsgIn",
			"parameters":        map[string]any{"region": "v1"},
		})
		s.Require().Equal(http.StatusOK, w.Code)
		var body map[string]any
		s.decode(w, &body)
		s.Equal("1.0", body["version"])
		s.Equal("Orders", body["interchange"].(map[string]any)["service_name"])
	})

	s.Run("missing policy name", func() {
		w := s.do(s.router, http.MethodPost, "/admin/policies/evaluate", map[string]any{"version": "1"})
		s.Equal(http.StatusBadRequest, w.Code)
		s.Contains(w.Body.String(), "policy_name is required")
	})

	s.Run("invalid directives", func() {
		s.evaluator.EXPECT().Resolve(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeValidation, "missing token; bad binding"))

		w := s.do(s.router, http.MethodPost, "/admin/policies/evaluate", map[string]any{"policy_name": "Routing"})
		s.Equal(http.StatusUnprocessableEntity, w.Code)
		s.Contains(w.Body.String(), "missing token; bad binding")
	})
}

func (s *RouterSuite) TestInterception() {
	s.Run("returns the step configuration", func() {
		cfg := models.NewActivityStepConfig("Order", "Received")
		cfg.Intercept = true
		s.evaluator.EXPECT().GetInterceptionPolicy(gomock.Any(), "Order", "Received", "Tracking", "").Return(cfg, nil)

		w := s.do(s.router, http.MethodPost, "/admin/policies/interception", interceptionRequest{
			ActivityName: "Order",
			StepName:     "Received",
			PolicyName:   "Tracking",
		})
		s.Require().Equal(http.StatusOK, w.Code)
		var body map[string]any
		s.decode(w, &body)
		s.Equal(true, body["intercept"])
	})

	s.Run("missing step", func() {
		w := s.do(s.router, http.MethodPost, "/admin/policies/interception", map[string]string{
			"activity_name": "Order",
			"policy_name":   "Tracking",
		})
		s.Equal(http.StatusBadRequest, w.Code)
	})
}
