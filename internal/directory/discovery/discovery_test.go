package discovery_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"esbresolver/internal/directory/discovery"
	"esbresolver/internal/directory/discovery/mocks"
	"esbresolver/internal/directory/metrics"
	"esbresolver/internal/directory/models"
	"esbresolver/internal/directory/sitecache"
	tu "esbresolver/pkg/testutil"
)

type DiscoverySuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	store   *mocks.MockStore
	primary *mocks.MockSource
	backup  *mocks.MockSource
	logs    *bytes.Buffer
	logger  *slog.Logger
	keys    int
}

func TestDiscoverySuite(t *testing.T) {
	suite.Run(t, new(DiscoverySuite))
}

func (s *DiscoverySuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.store = mocks.NewMockStore(s.ctrl)
	s.primary = mocks.NewMockSource(s.ctrl)
	s.backup = mocks.NewMockSource(s.ctrl)
	s.primary.EXPECT().Name().Return("primary").AnyTimes()
	s.backup.EXPECT().Name().Return("backup").AnyTimes()
	s.logs = &bytes.Buffer{}
	s.logger = slog.New(slog.NewTextHandler(s.logs, nil))
	s.keys = 0
}

func (s *DiscoverySuite) newService(enabled bool, opts ...discovery.Option) *discovery.Service {
	base := []discovery.Option{
		discovery.WithLogger(s.logger),
		discovery.WithKeyFunc(func() string {
			s.keys++
			return fmt.Sprintf("generated-%d", s.keys)
		}),
	}
	return discovery.New(
		discovery.Config{Enabled: enabled, AuthMode: models.AuthWindows},
		s.store,
		[]discovery.Source{s.primary, s.backup},
		append(base, opts...)...,
	)
}

func (s *DiscoverySuite) TestDisabledIsNoop() {
	svc := s.newService(false)

	invalid, err := svc.Discover(context.Background())

	s.NoError(err)
	s.Nil(invalid)
}

func (s *DiscoverySuite) TestDiscover() {
	s.Run("adds valid and invalid sites and reports invalid ones", func() {
		good := tu.Site("dir-a")
		missing := models.SiteLocation{Description: "no url"}
		relative := models.SiteLocation{InquireURL: "uddi/inquire.asmx"}
		other := tu.Site("dir-b")

		gomock.InOrder(
			s.store.EXPECT().ClearDirectories().Return(3, nil),
			s.store.EXPECT().Add(good.InquireURL, good, sitecache.NoExpiration).Return(true),
			s.store.EXPECT().Add("generated-1", missing, sitecache.NoExpiration).Return(true),
			s.store.EXPECT().Add("generated-2", relative, sitecache.NoExpiration).Return(true),
			s.store.EXPECT().Add(other.InquireURL, other, sitecache.NoExpiration).Return(false),
		)
		s.primary.EXPECT().FindSiteLocations(gomock.Any(), discovery.URLInquire, models.AuthWindows).
			Return([]models.SiteLocation{good, missing, relative}, nil)
		s.backup.EXPECT().FindSiteLocations(gomock.Any(), discovery.URLInquire, models.AuthWindows).
			Return([]models.SiteLocation{other}, nil)

		invalid, err := s.newService(true).Discover(context.Background())

		s.Require().NoError(err)
		s.Equal([]models.SiteLocation{missing, relative}, invalid)
	})
}

func (s *DiscoverySuite) TestFailingSourceContributesNothing() {
	s.Run("error", func() {
		site := tu.Site("dir-a")
		s.store.EXPECT().ClearDirectories().Return(0, nil)
		s.primary.EXPECT().FindSiteLocations(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]models.SiteLocation{tu.Site("partial")}, errors.New("ldap timeout"))
		s.backup.EXPECT().FindSiteLocations(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]models.SiteLocation{site}, nil)
		s.store.EXPECT().Add(site.InquireURL, site, sitecache.NoExpiration).Return(true)

		invalid, err := s.newService(true).Discover(context.Background())

		s.Require().NoError(err)
		s.Empty(invalid)
		s.Contains(s.logs.String(), "ignoring its results")
	})

	s.Run("panic", func() {
		reg := prometheus.NewRegistry()
		m := metrics.New(reg)
		s.store.EXPECT().ClearDirectories().Return(0, nil)
		s.primary.EXPECT().FindSiteLocations(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, discovery.URLType, models.AuthMode) ([]models.SiteLocation, error) {
				panic("directory service crashed")
			})
		s.backup.EXPECT().FindSiteLocations(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

		invalid, err := s.newService(true, discovery.WithMetrics(m)).Discover(context.Background())

		s.Require().NoError(err)
		s.Empty(invalid)
		s.Equal(1.0, testutil.ToFloat64(m.DiscoverySourceErrs.WithLabelValues("primary")))
	})
}

func (s *DiscoverySuite) TestStoreFailureIsFatal() {
	s.store.EXPECT().ClearDirectories().Return(0, sitecache.ErrClosed)

	_, err := s.newService(true).Discover(context.Background())

	s.ErrorIs(err, sitecache.ErrClosed)
}

func (s *DiscoverySuite) TestNewPanicsWithoutStore() {
	s.Panics(func() { discovery.New(discovery.Config{}, nil, nil) })
}

func (s *DiscoverySuite) TestWithSiteCache() {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	cache, err := sitecache.New(sitecache.Config{DiscoverSites: true}, logger)
	s.Require().NoError(err)
	defer cache.Close()

	svc := discovery.New(discovery.Config{Enabled: true}, cache, []discovery.Source{
		discovery.NewStaticSource(
			models.SiteLocation{InquireURL: "http://dir-a/inquire"},
			models.SiteLocation{InquireURL: "not a url"},
			models.SiteLocation{InquireURL: "http://dir-b/inquire"},
		),
	}, discovery.WithLogger(logger))

	s.Require().NoError(cache.Initialize(context.Background(), svc))

	var keys []string
	for _, e := range cache.Directories() {
		keys = append(keys, e.Key)
	}
	s.Require().Len(keys, 3)
	s.Equal("http://dir-a/inquire", keys[0])
	s.Equal("http://dir-b/inquire", keys[2])
	s.True(cache.Contains(models.ControlSiteKey))

	invalid, err := svc.Discover(context.Background())
	s.Require().NoError(err)
	s.Require().Len(invalid, 1)
	s.Equal("not a url", invalid[0].InquireURL)
	s.Len(cache.Directories(), 3, "rediscovery replaces, never duplicates")
}

func (s *DiscoverySuite) TestStaticSourceFilters() {
	src := discovery.NewStaticSource(
		models.SiteLocation{InquireURL: "http://win/inquire", AuthMode: models.AuthWindows},
		models.SiteLocation{InquireURL: "http://uddi/inquire", PublishURL: "http://uddi/publish", AuthMode: models.AuthUDDI},
		models.SiteLocation{InquireURL: "http://any/inquire"},
	)
	ctx := context.Background()

	all, err := src.FindSiteLocations(ctx, discovery.URLInquire, models.AuthUnspecified)
	s.Require().NoError(err)
	s.Len(all, 3)

	win, _ := src.FindSiteLocations(ctx, discovery.URLInquire, models.AuthWindows)
	s.Len(win, 2)

	publish, _ := src.FindSiteLocations(ctx, discovery.URLPublish, models.AuthUnspecified)
	s.Require().Len(publish, 1)
	s.Equal("http://uddi/publish", publish[0].PublishURL)
	s.Equal("static", src.Name())
}
