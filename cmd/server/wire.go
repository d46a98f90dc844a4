package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"esbresolver/internal/directory/adapters/gateway"
	"esbresolver/internal/directory/discovery"
	dirmetrics "esbresolver/internal/directory/metrics"
	dirmodels "esbresolver/internal/directory/models"
	"esbresolver/internal/directory/notify"
	"esbresolver/internal/directory/resolver"
	"esbresolver/internal/directory/sitecache"
	"esbresolver/internal/directory/store"
	"esbresolver/internal/directory/tracer"
	"esbresolver/internal/platform/config"
	"esbresolver/internal/platform/database"
	"esbresolver/internal/platform/health"
	"esbresolver/internal/platform/kafka"
	"esbresolver/internal/platform/kafka/consumer"
	"esbresolver/internal/platform/kafka/producer"
	redisclient "esbresolver/internal/platform/redis"
	"esbresolver/internal/policy/audit"
	policymetrics "esbresolver/internal/policy/metrics"
	"esbresolver/internal/policy/ruleengine/exprengine"
	"esbresolver/internal/policy/service"
	rulestore "esbresolver/internal/policy/store"
	httptransport "esbresolver/internal/transport/http"
	"esbresolver/migrations"
)

const redisStatsInterval = 15 * time.Second

// app holds the wired components and what must run or close with them.
type app struct {
	router     http.Handler
	background []func(ctx context.Context) error
	closers    []func()
}

func (a *app) close() {
	// Reverse construction order.
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func (a *app) onClose(fn func()) {
	a.closers = append(a.closers, fn)
}

func build(ctx context.Context, cfg config.Server, log *slog.Logger) (_ *app, err error) {
	a := &app{}
	defer func() {
		if err != nil {
			a.close()
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	healthHandler := health.New(cfg.Environment)

	res, sites, err := buildDirectory(ctx, a, cfg, reg, healthHandler, log)
	if err != nil {
		return nil, err
	}

	engine, policySvc, ruleStore, err := buildPolicy(ctx, a, cfg, reg, res, healthHandler, log)
	if err != nil {
		return nil, err
	}

	if err := buildNotifications(a, cfg, sites, res, healthHandler, log); err != nil {
		return nil, err
	}

	var versions httptransport.VersionLister
	if ruleStore != nil {
		versions = ruleStore
	}
	a.router = httptransport.NewRouter(httptransport.Handlers{
		Health:    healthHandler,
		Directory: httptransport.NewDirectoryHandler(sites, res, log),
		Policy:    httptransport.NewPolicyHandler(policySvc, engine, versions, log),
	}, httptransport.RouterConfig{
		AdminToken: cfg.AdminToken,
		Registerer: reg,
		Gatherer:   reg,
	}, log)

	return a, nil
}

// buildDirectory wires the site cache, discovery and the resolver. The
// site cache refresh hook drops cached resolutions.
func buildDirectory(ctx context.Context, a *app, cfg config.Server, reg prometheus.Registerer, hh *health.Handler, log *slog.Logger) (*resolver.Resolver, *sitecache.Cache, error) {
	m := dirmetrics.New(reg)
	tr := tracer.NewOTel()

	var res *resolver.Resolver
	sites, err := sitecache.New(sitecache.Config{
		DiscoverSites:      cfg.Directory.DiscoverSites,
		ExpiryInterval:     cfg.Directory.ExpiryInterval(),
		DefaultInquiryURL:  cfg.Directory.DefaultInquiryURL,
		ServiceHostBaseURL: cfg.Directory.ServiceHostBaseURL,
	}, log,
		sitecache.WithMetrics(m),
		sitecache.WithRefreshHook(func() {
			if res != nil {
				res.Invalidate(context.Background())
			}
		}),
	)
	if err != nil {
		return nil, nil, err
	}
	a.onClose(sites.Close)

	cache, err := resolutionCache(ctx, a, cfg, reg, hh, log)
	if err != nil {
		return nil, nil, err
	}

	res = resolver.New(sites,
		gateway.New(gateway.Config{
			Timeout: cfg.Directory.RequestTimeout,
			APIKey:  cfg.Directory.InquiryAPIKey,
		}),
		resolver.WithLogger(log),
		resolver.WithMetrics(m),
		resolver.WithTracer(tr),
		resolver.WithCache(cache),
		resolver.WithSiteTimeout(cfg.Directory.RequestTimeout),
		resolver.WithServiceHost(cfg.Directory.ServiceHostBaseURL),
	)

	var sources []discovery.Source
	if len(cfg.Directory.StaticSites) > 0 {
		static := make([]dirmodels.SiteLocation, 0, len(cfg.Directory.StaticSites))
		for _, u := range cfg.Directory.StaticSites {
			static = append(static, dirmodels.SiteLocation{InquireURL: u, Description: "static"})
		}
		sources = append(sources, discovery.NewStaticSource(static...))
	}
	if cfg.Directory.DNSDomain != "" {
		sources = append(sources, discovery.NewDNSSource(discovery.DNSConfig{
			Domain:  cfg.Directory.DNSDomain,
			Server:  cfg.Directory.DNSServer,
			Timeout: cfg.Directory.RequestTimeout,
		}))
	}
	disc := discovery.New(discovery.Config{
		Enabled:  cfg.Directory.DiscoverSites,
		AuthMode: dirmodels.ParseAuthMode(cfg.Directory.DiscoveryAuthMode),
	}, sites, sources,
		discovery.WithLogger(log),
		discovery.WithMetrics(m),
		discovery.WithTracer(tr),
	)

	if err := sites.Initialize(ctx, disc); err != nil {
		return nil, nil, fmt.Errorf("initialize site cache: %w", err)
	}
	return res, sites, nil
}

// resolutionCache prefers Redis so replicas share resolutions and falls
// back to an in-process cache.
func resolutionCache(ctx context.Context, a *app, cfg config.Server, reg prometheus.Registerer, hh *health.Handler, log *slog.Logger) (store.ResolutionCache, error) {
	client, err := redisclient.New(ctx, redisclient.DefaultConfig(cfg.RedisURL), reg)
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	if client == nil {
		log.Info("REDIS_URL not set, using in-memory resolution cache")
		return store.NewInMemoryCache(cfg.Directory.ResolutionCacheTTL), nil
	}
	a.onClose(func() { _ = client.Close() })
	hh.RegisterCheck("redis", client.Health)
	a.background = append(a.background, func(ctx context.Context) error {
		client.RunPoolStats(ctx, redisStatsInterval)
		return nil
	})
	return store.NewRedisCache(client.Client, cfg.Directory.ResolutionCacheTTL), nil
}

// buildPolicy wires the rule engine, the optional Postgres rule store and
// the optional Kafka audit trail into the policy service.
func buildPolicy(ctx context.Context, a *app, cfg config.Server, reg prometheus.Registerer, res *resolver.Resolver, hh *health.Handler, log *slog.Logger) (*exprengine.Engine, *service.Service, *rulestore.PostgresRuleStore, error) {
	m := policymetrics.New(reg)

	engine := exprengine.New(exprengine.WithLogger(log))
	if cfg.Policy.RulesFile != "" {
		if err := engine.LoadFile(cfg.Policy.RulesFile); err != nil {
			return nil, nil, nil, fmt.Errorf("load rules: %w", err)
		}
	}
	m.SetLoadedPolicies(len(engine.Policies()))

	opts := []service.Option{
		service.WithLogger(log),
		service.WithMetrics(m),
		service.WithResolver(res),
		service.WithConfig(service.Config{
			TesterMode:    cfg.Policy.TesterMode,
			StaticSupport: cfg.Policy.StaticSupport,
			TraceEnabled:  cfg.Policy.TraceEnabled,
			TraceFolder:   cfg.Policy.TraceFolder,
		}),
	}

	pool, err := database.New(ctx, database.DefaultConfig(cfg.DatabaseURL))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("connect database: %w", err)
	}
	var ruleStore *rulestore.PostgresRuleStore
	if pool != nil {
		a.onClose(func() { _ = pool.Close() })
		if err := database.Migrate(ctx, pool.DB(), migrations.FS); err != nil {
			return nil, nil, nil, err
		}
		hh.RegisterCheck("postgres", pool.Health)
		ruleStore = rulestore.NewPostgres(pool.DB())
		opts = append(opts, service.WithRuleStore(ruleStore))
	}

	if cfg.KafkaBrokers != "" {
		prod, err := producer.New(kafka.DefaultProducerConfig(cfg.KafkaBrokers), log)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("create audit producer: %w", err)
		}
		publisher := audit.NewPublisher(prod,
			audit.WithTopic(cfg.AuditTopic),
			audit.WithLogger(log),
			audit.WithAsyncBuffer(1024),
		)
		// Publisher drains into the producer, so it closes first.
		a.onClose(func() { _ = prod.Close() })
		a.onClose(publisher.Close)
		hh.RegisterCheck("kafka", prod.Healthy)
		opts = append(opts, service.WithAuditor(publisher))
	}

	return engine, service.New(engine, opts...), ruleStore, nil
}

// buildNotifications subscribes to directory change events when Kafka is
// configured.
func buildNotifications(a *app, cfg config.Server, sites *sitecache.Cache, res *resolver.Resolver, hh *health.Handler, log *slog.Logger) error {
	if cfg.KafkaBrokers == "" {
		return nil
	}
	c, err := consumer.New(
		kafka.DefaultConsumerConfig(cfg.KafkaBrokers, cfg.ConsumerGroup, cfg.DirectoryEventsTopic),
		notify.NewHandler(sites, res, log),
		log,
	)
	if err != nil {
		return fmt.Errorf("create directory events consumer: %w", err)
	}
	a.onClose(c.Close)
	hh.RegisterCheck("kafka_consumer", c.Healthy)
	a.background = append(a.background, c.Run)
	return nil
}
