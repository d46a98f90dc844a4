// Package discovery repopulates the site cache from directory-of-directories
// sources.
package discovery

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"esbresolver/internal/directory/metrics"
	"esbresolver/internal/directory/models"
	"esbresolver/internal/directory/sitecache"
	"esbresolver/internal/directory/tracer"
)

// URLType selects which directory endpoint a source must publish.
type URLType int

const (
	URLInquire URLType = iota
	URLPublish
	URLExtensions
)

func (t URLType) String() string {
	switch t {
	case URLPublish:
		return "publish"
	case URLExtensions:
		return "extensions"
	default:
		return "inquiry"
	}
}

//go:generate mockgen -source=discovery.go -destination=mocks/mocks.go -package=mocks Source,Store

// Source finds directory sites. A failing source contributes no sites.
type Source interface {
	Name() string
	FindSiteLocations(ctx context.Context, urlType URLType, authMode models.AuthMode) ([]models.SiteLocation, error)
}

// Store is the part of the site cache discovery writes to.
type Store interface {
	ClearDirectories() (int, error)
	Add(key string, location models.SiteLocation, policy sitecache.Policy) bool
}

// Config controls discovery.
type Config struct {
	Enabled  bool
	AuthMode models.AuthMode
}

// Service runs discovery passes against every configured source.
type Service struct {
	cfg     Config
	store   Store
	sources []Source
	newKey  func() string

	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  tracer.Tracer
}

// Option configures a Service.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// WithKeyFunc replaces the generator used for sites without a usable
// inquiry URL.
func WithKeyFunc(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.newKey = fn
		}
	}
}

// New creates a discovery service. It panics if store is nil.
func New(cfg Config, store Store, sources []Source, opts ...Option) *Service {
	if store == nil {
		panic("discovery.New: store is required")
	}
	s := &Service{
		cfg:     cfg,
		store:   store,
		sources: sources,
		newKey:  uuid.NewString,
		logger:  slog.Default(),
		tracer:  tracer.NewNoop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Discover replaces the discovered directories and returns the sites whose
// inquiry URL is missing or malformed. Only a store failure is returned as
// an error.
func (s *Service) Discover(ctx context.Context) (_ []models.SiteLocation, err error) {
	if !s.cfg.Enabled {
		return nil, nil
	}
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, tracer.SpanDiscover)
	defer func() { span.End(err) }()

	if _, err := s.store.ClearDirectories(); err != nil {
		return nil, fmt.Errorf("clear discovered directories: %w", err)
	}

	var invalid []models.SiteLocation
	valid := 0
	for _, site := range s.query(ctx) {
		key := site.InquireURL
		if site.HasAbsoluteInquireURL() {
			valid++
		} else {
			key = s.newKey()
			invalid = append(invalid, site)
		}
		if !s.store.Add(key, site, sitecache.NoExpiration) {
			s.logger.Debug("discovered directory already cached", "key", key)
		}
	}

	span.SetAttributes(
		tracer.Int(tracer.AttrSiteCount, valid),
		tracer.Int(tracer.AttrInvalidSite, len(invalid)),
	)
	if s.metrics != nil {
		s.metrics.RecordDiscovered(valid, len(invalid))
		s.metrics.ObserveDiscovery(time.Since(start).Seconds())
	}
	return invalid, nil
}

// query fans out to all sources and concatenates results in source order.
func (s *Service) query(ctx context.Context) []models.SiteLocation {
	results := make([][]models.SiteLocation, len(s.sources))
	g, gctx := errgroup.WithContext(ctx)
	for i, src := range s.sources {
		g.Go(func() error {
			results[i] = s.querySource(gctx, src)
			return nil
		})
	}
	_ = g.Wait()

	var all []models.SiteLocation
	for _, r := range results {
		all = append(all, r...)
	}
	return all
}

func (s *Service) querySource(ctx context.Context, src Source) (sites []models.SiteLocation) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanDiscoverQuery, tracer.String(tracer.AttrSource, src.Name()))
	var err error
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("source panicked: %v", r)
			sites = nil
		}
		if err != nil {
			sites = nil
			s.logger.Warn("directory discovery source failed, ignoring its results",
				"source", src.Name(),
				"error", err,
			)
			if s.metrics != nil {
				s.metrics.IncrementSourceError(src.Name())
			}
		}
		span.End(err)
	}()

	sites, err = src.FindSiteLocations(ctx, URLInquire, s.cfg.AuthMode)
	return sites
}
