package sitecache

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"esbresolver/internal/directory/metrics"
	"esbresolver/internal/directory/models"
	dErrors "esbresolver/pkg/domain-errors"
	tu "esbresolver/pkg/testutil"
)

// fakeDiscoverer mirrors discovery: clear, then add every site.
type fakeDiscoverer struct {
	cache *Cache
	sites []models.SiteLocation
	err   error
	calls atomic.Int32
}

func (f *fakeDiscoverer) Discover(_ context.Context) ([]models.SiteLocation, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	if _, err := f.cache.ClearDirectories(); err != nil {
		return nil, err
	}
	for _, s := range f.sites {
		f.cache.Add(s.InquireURL, s, NoExpiration)
	}
	return nil, nil
}

type SiteCacheSuite struct {
	suite.Suite
	clock  *clockwork.FakeClock
	logs   *bytes.Buffer
	logger *slog.Logger
}

func TestSiteCacheSuite(t *testing.T) {
	suite.Run(t, new(SiteCacheSuite))
}

func (s *SiteCacheSuite) SetupTest() {
	s.clock = clockwork.NewFakeClockAt(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	s.logs = &bytes.Buffer{}
	s.logger = slog.New(slog.NewTextHandler(&syncWriter{w: s.logs}, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func (s *SiteCacheSuite) newCache(cfg Config, opts ...Option) *Cache {
	opts = append([]Option{WithClock(s.clock)}, opts...)
	c, err := New(cfg, s.logger, opts...)
	s.Require().NoError(err)
	s.T().Cleanup(c.Close)
	return c
}

func (s *SiteCacheSuite) waitForTimers(n int) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	s.Require().NoError(s.clock.BlockUntilContext(ctx, n))
}

func (s *SiteCacheSuite) TestNew() {
	s.Run("requires a logger", func() {
		_, err := New(Config{}, nil)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeConfiguration))
	})
}

func (s *SiteCacheSuite) TestInitialize() {
	s.Run("default entry only when discovery is disabled", func() {
		c := s.newCache(Config{})
		s.Require().NoError(c.Initialize(context.Background(), nil))

		s.Equal(1, c.Len())
		s.True(c.Contains(models.DefaultSiteKey))
		s.False(c.Contains(models.ControlSiteKey))

		def, ok := c.Default()
		s.Require().True(ok)
		s.Equal("http://localhost/uddi/inquire.asmx", def.InquireURL)
	})

	s.Run("relative default is placed under the service host", func() {
		c := s.newCache(Config{
			DefaultInquiryURL:  "uddi/inquire.asmx",
			ServiceHostBaseURL: "http://esb.example/app/",
		})
		s.Require().NoError(c.Initialize(context.Background(), nil))

		def, _ := c.Default()
		s.Equal("http://esb.example/app/uddi/inquire.asmx", def.InquireURL)
	})

	s.Run("absolute default is kept", func() {
		c := s.newCache(Config{DefaultInquiryURL: "https://dir.example/inquire"})
		s.Require().NoError(c.Initialize(context.Background(), nil))

		def, _ := c.Default()
		s.Equal("https://dir.example/inquire", def.InquireURL)
	})

	s.Run("malformed default is a configuration error", func() {
		c := s.newCache(Config{DefaultInquiryURL: "http://[::1"})
		err := c.Initialize(context.Background(), nil)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeConfiguration))
		s.Equal(0, c.Len())
	})

	s.Run("discovery enabled without discoverer", func() {
		c := s.newCache(Config{DiscoverSites: true})
		err := c.Initialize(context.Background(), nil)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeConfiguration))
	})

	s.Run("second initialize conflicts", func() {
		c := s.newCache(Config{})
		s.Require().NoError(c.Initialize(context.Background(), nil))
		err := c.Initialize(context.Background(), nil)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("discovery populates cache and schedules refresh", func() {
		c := s.newCache(Config{DiscoverSites: true, ExpiryInterval: time.Hour})
		d := &fakeDiscoverer{cache: c, sites: []models.SiteLocation{tu.Site("a"), tu.Site("b")}}

		s.Require().NoError(c.Initialize(context.Background(), d))

		s.Equal(int32(1), d.calls.Load())
		s.True(c.Contains(models.ControlSiteKey))
		s.Len(c.Directories(), 2)
		s.Equal(4, c.Len())
	})

	s.Run("discovery failure is propagated without scheduling", func() {
		c := s.newCache(Config{DiscoverSites: true})
		d := &fakeDiscoverer{cache: c, err: ErrClosed}

		err := c.Initialize(context.Background(), d)
		s.Require().ErrorIs(err, ErrClosed)
		s.False(c.Contains(models.ControlSiteKey))
		s.True(c.Contains(models.DefaultSiteKey))
	})
}

func (s *SiteCacheSuite) TestAddContainsRemove() {
	c := s.newCache(Config{})
	site := tu.Site("dir1")

	s.True(c.Add("K", site, NoExpiration))
	s.True(c.Contains("K"))
	s.False(c.Add("K", tu.Site("other"), NoExpiration), "collision must not overwrite")

	got, ok := c.Get("K")
	s.Require().True(ok)
	s.Equal(site, got)

	s.True(c.Remove("K"))
	s.False(c.Contains("K"))
	s.False(c.Remove("K"))

	s.True(c.Add("K", site, NoExpiration), "re-adding after removal succeeds")
}

func (s *SiteCacheSuite) TestDefaultEntryCannotBeRemoved() {
	c := s.newCache(Config{})
	s.Require().NoError(c.Initialize(context.Background(), nil))

	s.False(c.Remove(models.DefaultSiteKey))
	s.False(c.Evict(models.DefaultSiteKey))
	s.True(c.Contains(models.DefaultSiteKey))
}

func (s *SiteCacheSuite) TestEnumerateIsSnapshot() {
	c := s.newCache(Config{})
	s.Require().NoError(c.Initialize(context.Background(), nil))
	c.Add("a", tu.Site("a"), NoExpiration)
	c.Add("b", tu.Site("b"), NoExpiration)

	snap := c.Enumerate()
	c.Add("c", tu.Site("c"), NoExpiration)
	c.Remove("a")

	s.Require().Len(snap, 3)
	s.Equal([]string{models.DefaultSiteKey, "a", "b"}, keys(snap))
	s.Equal([]string{models.DefaultSiteKey, "b", "c"}, keys(c.Enumerate()))
}

func (s *SiteCacheSuite) TestDirectoriesExcludeReservedEntries() {
	c := s.newCache(Config{})
	s.Require().NoError(c.Initialize(context.Background(), nil))
	c.Add(models.ControlSiteKey, models.ControlSite(), NoExpiration)
	c.Add("a", tu.Site("a"), NoExpiration)

	s.Equal([]string{"a"}, keys(c.Directories()))
}

func (s *SiteCacheSuite) TestClearDirectories() {
	c := s.newCache(Config{})
	s.Require().NoError(c.Initialize(context.Background(), nil))
	c.Add(models.ControlSiteKey, models.ControlSite(), NoExpiration)
	c.Add("a", tu.Site("a"), NoExpiration)
	c.Add("b", tu.Site("b"), NoExpiration)

	n, err := c.ClearDirectories()
	s.Require().NoError(err)
	s.Equal(2, n)
	s.Equal([]string{models.DefaultSiteKey, models.ControlSiteKey}, keys(c.Enumerate()))
}

func (s *SiteCacheSuite) TestEntryExpiry() {
	c := s.newCache(Config{})

	var reasons []RemovalReason
	var mu sync.Mutex
	done := make(chan struct{})
	policy := Policy{
		AbsoluteExpiration: s.clock.Now().Add(time.Minute),
		OnRemoved: func(key string, _ models.SiteLocation, reason RemovalReason) {
			mu.Lock()
			reasons = append(reasons, reason)
			mu.Unlock()
			close(done)
		},
	}
	s.Require().True(c.Add("temp", tu.Site("temp"), policy))
	s.waitForTimers(1)

	s.clock.Advance(59 * time.Second)
	s.True(c.Contains("temp"))

	s.clock.Advance(time.Second)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		s.FailNow("expiry callback did not run")
	}
	s.False(c.Contains("temp"))
	mu.Lock()
	s.Equal([]RemovalReason{ReasonExpired}, reasons)
	mu.Unlock()
}

func (s *SiteCacheSuite) TestControlExpiryRunsOneRefreshCycle() {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	c := s.newCache(Config{DiscoverSites: true, ExpiryInterval: 24 * time.Hour}, WithMetrics(m))
	d := &fakeDiscoverer{cache: c, sites: []models.SiteLocation{tu.Site("a")}}
	var hooks atomic.Int32
	c.onRefresh = append(c.onRefresh, func() { hooks.Add(1) })

	s.Require().NoError(c.Initialize(context.Background(), d))
	s.waitForTimers(1)

	d.sites = []models.SiteLocation{tu.Site("b"), tu.Site("c")}
	s.clock.Advance(24 * time.Hour)

	s.Eventually(func() bool {
		return testutil.ToFloat64(m.SiteCacheRefreshes.WithLabelValues("expired")) == 1
	}, 2*time.Second, 5*time.Millisecond)
	s.waitForTimers(1)

	s.Equal(int32(2), d.calls.Load(), "exactly one new discovery pass")
	s.Equal(1, countKey(c.Enumerate(), models.ControlSiteKey))
	s.Equal([]string{"http://b/uddi/inquire.asmx", "http://c/uddi/inquire.asmx"}, keys(c.Directories()))
	s.Equal(int32(2), hooks.Load())
	s.Equal(1.0, testutil.ToFloat64(m.SiteCacheRefreshes.WithLabelValues("startup")))
}

func (s *SiteCacheSuite) TestControlRemovalReasons() {
	s.Run("evicted refreshes synchronously", func() {
		c := s.newCache(Config{DiscoverSites: true})
		d := &fakeDiscoverer{cache: c}
		s.Require().NoError(c.Initialize(context.Background(), d))

		s.True(c.Evict(models.ControlSiteKey))

		s.Equal(int32(2), d.calls.Load())
		s.True(c.Contains(models.ControlSiteKey))
	})

	s.Run("explicit removal only warns", func() {
		c := s.newCache(Config{DiscoverSites: true})
		d := &fakeDiscoverer{cache: c}
		s.Require().NoError(c.Initialize(context.Background(), d))
		s.logs.Reset()

		s.True(c.Remove(models.ControlSiteKey))

		s.Equal(int32(1), d.calls.Load())
		s.False(c.Contains(models.ControlSiteKey))
		s.Contains(s.logs.String(), "directory refresh is no longer scheduled")
	})

	s.Run("teardown is a no-op", func() {
		c := s.newCache(Config{DiscoverSites: true})
		d := &fakeDiscoverer{cache: c}
		s.Require().NoError(c.Initialize(context.Background(), d))

		c.Close()

		s.Equal(int32(1), d.calls.Load())
		s.Equal(0, c.Len())
	})
}

func (s *SiteCacheSuite) TestRefreshNow() {
	s.Run("replaces the scheduled refresh", func() {
		c := s.newCache(Config{DiscoverSites: true, ExpiryInterval: time.Hour})
		d := &fakeDiscoverer{cache: c}
		s.Require().NoError(c.Initialize(context.Background(), d))

		s.Require().NoError(c.RefreshNow(context.Background()))

		s.Equal(int32(2), d.calls.Load())
		s.Equal(1, countKey(c.Enumerate(), models.ControlSiteKey))
	})

	s.Run("rejected when discovery is disabled", func() {
		c := s.newCache(Config{})
		s.Require().NoError(c.Initialize(context.Background(), nil))
		err := c.RefreshNow(context.Background())
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})
}

func (s *SiteCacheSuite) TestClose() {
	c := s.newCache(Config{})
	s.Require().NoError(c.Initialize(context.Background(), nil))

	var reason RemovalReason = -1
	c.Add("cb", tu.Site("cb"), Policy{OnRemoved: func(_ string, _ models.SiteLocation, r RemovalReason) { reason = r }})

	c.Close()
	c.Close()

	s.Equal(ReasonCacheSpecificEviction, reason)
	s.False(c.Add("x", tu.Site("x"), NoExpiration))
	_, err := c.ClearDirectories()
	s.ErrorIs(err, ErrClosed)
}

func (s *SiteCacheSuite) TestConcurrentAccess() {
	c := s.newCache(Config{DiscoverSites: true})
	d := &fakeDiscoverer{cache: c, sites: []models.SiteLocation{tu.Site("a"), tu.Site("b")}}
	s.Require().NoError(c.Initialize(context.Background(), d))

	res := tu.RunConcurrent(64, func(idx int) error {
		key := fmt.Sprintf("k-%d", idx%8)
		switch idx % 4 {
		case 0:
			c.Add(key, tu.Site(key), NoExpiration)
		case 1:
			c.Remove(key)
		case 2:
			for _, e := range c.Directories() {
				if e.Key == models.ControlSiteKey {
					return errors.New("control entry exposed")
				}
			}
		default:
			return c.RefreshNow(context.Background())
		}
		return nil
	})

	s.Equal(int32(64), res.Successes)
	s.True(c.Contains(models.DefaultSiteKey))
	s.Equal(1, countKey(c.Enumerate(), models.ControlSiteKey))
}

func (s *SiteCacheSuite) TestRemovalReasonString() {
	s.Equal("expired", ReasonExpired.String())
	s.Equal("cache_specific_eviction", ReasonCacheSpecificEviction.String())
	s.Equal("unknown", RemovalReason(42).String())
}

func keys(entries []models.SiteEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Key)
	}
	return out
}

func countKey(entries []models.SiteEntry, key string) int {
	n := 0
	for _, e := range entries {
		if e.Key == key {
			n++
		}
	}
	return n
}

type syncWriter struct {
	mu sync.Mutex
	w  *bytes.Buffer
}

func (w *syncWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.w.Write(p)
}
