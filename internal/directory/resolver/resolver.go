// Package resolver finds binding access points by searching the cached
// directory sites in order: the default directory first, then every
// discovered directory, first match wins.
package resolver

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"esbresolver/internal/directory/client"
	"esbresolver/internal/directory/metrics"
	"esbresolver/internal/directory/models"
	"esbresolver/internal/directory/rebase"
	"esbresolver/internal/directory/store"
	"esbresolver/internal/directory/tracer"
	"esbresolver/pkg/platform/circuit"
)

// SiteProvider supplies the directories to search.
type SiteProvider interface {
	Default() (models.SiteLocation, bool)
	Directories() []models.SiteEntry
}

// Resolver searches directory sites for access points.
type Resolver struct {
	sites     SiteProvider
	directory client.Directory
	cache     store.ResolutionCache

	breakersMu  sync.Mutex
	breakers    map[string]*circuit.Breaker
	breakerOpts []circuit.Option

	group       singleflight.Group
	siteTimeout time.Duration
	baseURL     string

	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  tracer.Tracer
}

// Option configures the Resolver.
type Option func(*Resolver)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Resolver) {
		r.metrics = m
	}
}

// WithTracer sets the tracer.
func WithTracer(t tracer.Tracer) Option {
	return func(r *Resolver) {
		if t != nil {
			r.tracer = t
		}
	}
}

// WithCache enables the resolution cache.
func WithCache(c store.ResolutionCache) Option {
	return func(r *Resolver) {
		r.cache = c
	}
}

// DefaultSiteTimeout bounds site queries when WithSiteTimeout is not set.
const DefaultSiteTimeout = 30 * time.Second

// WithSiteTimeout bounds every query against a single site. Non-positive
// values keep the default.
func WithSiteTimeout(d time.Duration) Option {
	return func(r *Resolver) {
		if d > 0 {
			r.siteTimeout = d
		}
	}
}

// WithServiceHost sets the base URL ResolveEndpoint rebases onto.
func WithServiceHost(baseURL string) Option {
	return func(r *Resolver) {
		r.baseURL = baseURL
	}
}

// WithBreakerOptions configures the per-site circuit breakers.
func WithBreakerOptions(opts ...circuit.Option) Option {
	return func(r *Resolver) {
		r.breakerOpts = append(r.breakerOpts, opts...)
	}
}

// New creates a Resolver. Panics if a required dependency is nil.
func New(sites SiteProvider, directory client.Directory, opts ...Option) *Resolver {
	if sites == nil {
		panic("resolver.New: site provider is required")
	}
	if directory == nil {
		panic("resolver.New: directory client is required")
	}
	r := &Resolver{
		sites:       sites,
		directory:   directory,
		breakers:    make(map[string]*circuit.Breaker),
		siteTimeout: DefaultSiteTimeout,
		logger:      slog.Default(),
		tracer:      tracer.NewNoop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// FindAccessPointForService returns the access point of the first binding
// matching useType, or "" when no directory has one. Directory failures
// degrade to trying the next site. Errors are invalid input or the caller's
// own context ending before the search finished.
//
// Identical concurrent resolutions share one search, detached from any
// single caller and bounded by the per-site timeout.
func (r *Resolver) FindAccessPointForService(ctx context.Context, provider *models.Identifier, service models.Identifier, useType models.AccessPointUseType) (string, error) {
	start := time.Now()
	if err := validate(provider, service); err != nil {
		r.recordResolution("invalid_input", start)
		return "", err
	}

	ctx, span := r.tracer.Start(ctx, tracer.SpanResolve,
		tracer.String(tracer.AttrService, service.String()),
		tracer.String(tracer.AttrUseType, useType.String()),
	)
	if provider != nil {
		span.SetAttributes(tracer.String(tracer.AttrProvider, provider.String()))
	}
	defer span.End(nil)

	key := store.Key(provider, service, useType)
	if ap, ok := r.cached(ctx, key); ok {
		span.SetAttributes(tracer.Bool(tracer.AttrCacheHit, true), tracer.Bool(tracer.AttrFound, true))
		r.recordResolution("found", start)
		return ap, nil
	}

	searchCtx := context.WithoutCancel(ctx)
	ch := r.group.DoChan(key, func() (any, error) {
		ap := r.search(searchCtx, provider, service, useType)
		if ap != "" && r.cache != nil {
			if err := r.cache.Set(searchCtx, key, ap); err != nil {
				r.logger.WarnContext(searchCtx, "failed to cache resolved access point", "key", key, "error", err)
			}
		}
		return ap, nil
	})

	var ap string
	select {
	case res := <-ch:
		ap = res.Val.(string)
	case <-ctx.Done():
		r.recordResolution("abandoned", start)
		return "", ctx.Err()
	}

	span.SetAttributes(tracer.Bool(tracer.AttrCacheHit, false), tracer.Bool(tracer.AttrFound, ap != ""))
	if ap == "" {
		r.recordResolution("not_found", start)
		return "", nil
	}
	r.recordResolution("found", start)
	return ap, nil
}

// ResolveEndpoint finds an access point and rebases it onto the configured
// service host.
func (r *Resolver) ResolveEndpoint(ctx context.Context, provider *models.Identifier, service models.Identifier, useType models.AccessPointUseType) (string, error) {
	ap, err := r.FindAccessPointForService(ctx, provider, service, useType)
	if err != nil || ap == "" {
		return "", err
	}
	return r.SetAsBaseURLOn(ap), nil
}

// SetAsBaseURLOn rebases accessPoint onto the configured service host.
func (r *Resolver) SetAsBaseURLOn(accessPoint string) string {
	return rebase.SetAsBaseURLOn(r.logger, r.baseURL, accessPoint)
}

// Invalidate drops cached resolutions and per-site breaker state. It runs
// after every discovery pass since the site list may have changed.
func (r *Resolver) Invalidate(ctx context.Context) {
	r.breakersMu.Lock()
	r.breakers = make(map[string]*circuit.Breaker)
	r.breakersMu.Unlock()

	if r.cache == nil {
		return
	}
	if err := r.cache.Clear(ctx); err != nil {
		r.logger.WarnContext(ctx, "failed to clear resolution cache", "error", err)
		return
	}
	if r.metrics != nil {
		r.metrics.IncrementCacheClears()
	}
}

func validate(provider *models.Identifier, service models.Identifier) error {
	if err := service.Validate(); err != nil {
		return err
	}
	if provider != nil {
		return provider.Validate()
	}
	return nil
}

func (r *Resolver) cached(ctx context.Context, key string) (string, bool) {
	if r.cache == nil {
		return "", false
	}
	ap, err := r.cache.Get(ctx, key)
	if err == nil {
		if r.metrics != nil {
			r.metrics.RecordCacheHit()
		}
		return ap, true
	}
	if !errors.Is(err, store.ErrNotFound) {
		r.logger.WarnContext(ctx, "resolution cache lookup failed", "key", key, "error", err)
	}
	if r.metrics != nil {
		r.metrics.RecordCacheMiss()
	}
	return "", false
}

// search walks the default site and then the discovered sites, stopping at
// the first site holding the requested record.
func (r *Resolver) search(ctx context.Context, provider *models.Identifier, service models.Identifier, useType models.AccessPointUseType) string {
	sites := r.orderedSites()
	for _, entry := range sites {
		if ctx.Err() != nil {
			return ""
		}
		breaker := r.breaker(entry.Key)
		if !breaker.Allow() {
			r.logger.DebugContext(ctx, "skipping directory with open circuit", "site", entry.Key)
			if r.metrics != nil {
				r.metrics.IncrementSiteSkipped()
			}
			continue
		}

		ap, matched, err := r.searchSite(ctx, entry, provider, service, useType)
		if err != nil {
			// The search itself was aborted; the site is not at fault.
			if ctx.Err() != nil {
				return ""
			}
			r.siteFailed(ctx, entry, breaker, err)
			continue
		}
		breaker.RecordSuccess()
		if matched {
			return ap
		}
	}
	return ""
}

func (r *Resolver) orderedSites() []models.SiteEntry {
	dirs := r.sites.Directories()
	sites := make([]models.SiteEntry, 0, len(dirs)+1)
	if def, ok := r.sites.Default(); ok {
		sites = append(sites, models.SiteEntry{Key: models.DefaultSiteKey, Location: def})
	}
	return append(sites, dirs...)
}

func (r *Resolver) searchSite(ctx context.Context, entry models.SiteEntry, provider *models.Identifier, service models.Identifier, useType models.AccessPointUseType) (ap string, matched bool, err error) {
	ctx, span := r.tracer.Start(ctx, tracer.SpanSiteQuery, tracer.String(tracer.AttrSite, entry.Key))
	defer func() { span.End(err) }()

	ctx, cancel := context.WithTimeout(ctx, r.siteTimeout)
	defer cancel()

	var svc *models.BusinessService
	if provider == nil {
		svc, err = r.findService(ctx, entry.Location, service)
	} else {
		svc, matched, err = r.findProviderService(ctx, entry.Location, *provider, service)
		if err != nil || svc == nil {
			return "", matched, err
		}
	}
	if err != nil || svc == nil {
		return "", false, err
	}

	ap, err = r.scanBindings(ctx, entry.Location, svc.BindingTemplates, useType)
	return ap, true, err
}

func (r *Resolver) findService(ctx context.Context, site models.SiteLocation, service models.Identifier) (*models.BusinessService, error) {
	services, err := r.directory.FindServiceByNameOrKey(ctx, site, service)
	if err != nil || len(services) == 0 {
		return nil, err
	}
	return r.completeService(ctx, site, services[0])
}

// findProviderService resolves the entity first. matched reports whether
// the entity was found, which ends the site search even when the service
// is missing from it.
func (r *Resolver) findProviderService(ctx context.Context, site models.SiteLocation, provider, service models.Identifier) (*models.BusinessService, bool, error) {
	entities, err := r.directory.FindBusinessByNameOrKey(ctx, site, provider)
	if err != nil || len(entities) == 0 {
		return nil, false, err
	}

	entity := entities[0]
	if len(entity.Services) == 0 && entity.Key != "" {
		detail, err := r.directory.GetBusinessDetail(ctx, site, entity.Key)
		if err != nil {
			return nil, false, err
		}
		if detail != nil {
			entity = *detail
		}
	}

	svc, ok := entity.ServiceByName(service.Value)
	if !ok {
		svc, ok = entity.ServiceByKey(service.Value)
	}
	if !ok {
		return nil, true, nil
	}
	found, err := r.completeService(ctx, site, svc)
	return found, true, err
}

func (r *Resolver) completeService(ctx context.Context, site models.SiteLocation, svc models.BusinessService) (*models.BusinessService, error) {
	if len(svc.BindingTemplates) > 0 || svc.Key == "" {
		return &svc, nil
	}
	detail, err := r.directory.GetServiceDetail(ctx, site, svc.Key)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return &svc, nil
	}
	return detail, nil
}

// scanBindings returns the first access point whose use type matches.
// Templates returned without an access point are completed by key.
func (r *Resolver) scanBindings(ctx context.Context, site models.SiteLocation, templates []models.BindingTemplate, useType models.AccessPointUseType) (string, error) {
	for _, tpl := range templates {
		if tpl.AccessPoint == nil && tpl.Key != "" {
			detail, err := r.directory.GetBindingDetail(ctx, site, tpl.Key)
			if err != nil {
				return "", err
			}
			if detail != nil {
				tpl = *detail
			}
		}
		if tpl.AccessPoint != nil && useType.Matches(tpl.AccessPoint.UseType) {
			return tpl.AccessPoint.Value, nil
		}
	}
	return "", nil
}

func (r *Resolver) siteFailed(ctx context.Context, entry models.SiteEntry, breaker *circuit.Breaker, err error) {
	category := client.Classify(err)
	r.logger.WarnContext(ctx, category.Describe(),
		"site", entry.Key,
		"inquire_url", entry.Location.InquireURL,
		"category", string(category),
		"error", err,
	)
	if r.metrics != nil {
		r.metrics.IncrementSiteFailure(string(category))
	}
	// An unknown key says nothing about the site's health.
	if category == client.CategoryInvalidKey {
		return
	}
	if _, change := breaker.RecordFailure(); change.Opened {
		r.logger.ErrorContext(ctx, "circuit breaker opened", "circuit", breaker.Name())
	}
}

func (r *Resolver) breaker(key string) *circuit.Breaker {
	r.breakersMu.Lock()
	defer r.breakersMu.Unlock()
	b, ok := r.breakers[key]
	if !ok {
		b = circuit.New(key, r.breakerOpts...)
		r.breakers[key] = b
	}
	return b
}

func (r *Resolver) recordResolution(outcome string, start time.Time) {
	if r.metrics != nil {
		r.metrics.RecordResolution(outcome, time.Since(start).Seconds())
	}
}
