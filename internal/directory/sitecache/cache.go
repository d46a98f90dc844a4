// Package sitecache holds the known directory sites. It is bootstrapped
// with the default directory and refreshed by discovery on a schedule
// driven by the expiry of a control entry.
package sitecache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"esbresolver/internal/directory/metrics"
	"esbresolver/internal/directory/models"
	"esbresolver/internal/directory/rebase"
	"esbresolver/internal/platform/config"
	dErrors "esbresolver/pkg/domain-errors"
)

// ErrClosed is returned by store operations after Close.
var ErrClosed = errors.New("site cache is closed")

// Discoverer repopulates the cache with discovered directories and returns
// the sites it rejected.
type Discoverer interface {
	Discover(ctx context.Context) ([]models.SiteLocation, error)
}

// Config drives initialization and the refresh schedule.
type Config struct {
	DiscoverSites      bool
	ExpiryInterval     time.Duration
	DefaultInquiryURL  string
	ServiceHostBaseURL string
}

// Cache is a mutex guarded map of directory sites with insertion order.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
	order   []string
	closed  bool

	// refreshMu serializes refresh cycles without blocking readers.
	refreshMu  sync.Mutex
	discoverer Discoverer
	onRefresh  []func()

	cfg     Config
	clock   clockwork.Clock
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type entry struct {
	key      string
	location models.SiteLocation
	policy   Policy
	timer    clockwork.Timer
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock replaces the wall clock, mainly for tests.
func WithClock(clock clockwork.Clock) Option {
	return func(c *Cache) {
		c.clock = clock
	}
}

// WithMetrics enables Prometheus metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Cache) {
		c.metrics = m
	}
}

// WithRefreshHook registers fn to run after every completed refresh.
func WithRefreshHook(fn func()) Option {
	return func(c *Cache) {
		if fn != nil {
			c.onRefresh = append(c.onRefresh, fn)
		}
	}
}

// New creates an empty cache. Every failure path logs, so a logger is
// required.
func New(cfg Config, logger *slog.Logger, opts ...Option) (*Cache, error) {
	if logger == nil {
		return nil, dErrors.New(dErrors.CodeConfiguration, "site cache requires a logger")
	}
	if cfg.ExpiryInterval <= 0 {
		cfg.ExpiryInterval = time.Duration(config.DefaultExpiryHours * float64(time.Hour))
	}
	c := &Cache{
		entries: make(map[string]*entry),
		cfg:     cfg,
		clock:   clockwork.NewRealClock(),
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Initialize inserts the default directory and, when enabled, runs the
// first discovery pass which also schedules the next one.
func (c *Cache) Initialize(ctx context.Context, d Discoverer) error {
	inquireURL, err := DefaultInquiryURL(c.logger, c.cfg.DefaultInquiryURL, c.cfg.ServiceHostBaseURL)
	if err != nil {
		return err
	}
	if c.cfg.DiscoverSites && d == nil {
		return dErrors.New(dErrors.CodeConfiguration, "site discovery is enabled but no discoverer is configured")
	}

	c.refreshMu.Lock()
	c.discoverer = d
	c.refreshMu.Unlock()

	def := models.SiteLocation{
		InquireURL:  inquireURL,
		Description: "default directory",
		AuthMode:    models.AuthUnspecified,
	}
	if !c.Add(models.DefaultSiteKey, def, NoExpiration) {
		return dErrors.New(dErrors.CodeConflict, "site cache already initialized")
	}
	c.logger.Info("site cache initialized",
		"default_inquire_url", inquireURL,
		"discover_sites", c.cfg.DiscoverSites,
	)

	if !c.cfg.DiscoverSites {
		return nil
	}
	return c.refresh(ctx, "startup")
}

// DefaultInquiryURL computes the absolute URL of the default directory.
// A relative configured value is placed under the service host; an empty
// one falls back to config.DefaultInquiryURL.
func DefaultInquiryURL(logger *slog.Logger, inquiryURL, serviceHostBaseURL string) (string, error) {
	raw := strings.TrimSpace(inquiryURL)
	if raw == "" {
		return config.DefaultInquiryURL, nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeConfiguration, fmt.Sprintf("malformed default inquiry url %q", raw))
	}
	if u.IsAbs() && u.Host != "" {
		return u.String(), nil
	}
	if base := strings.TrimSpace(serviceHostBaseURL); base != "" {
		if _, err := url.Parse(base); err != nil {
			return "", dErrors.Wrap(err, dErrors.CodeConfiguration, fmt.Sprintf("malformed service host base url %q", base))
		}
	}
	return rebase.SetAsBaseURLOn(logger, serviceHostBaseURL, raw), nil
}

// Add inserts location under key unless key is already present.
func (c *Cache) Add(key string, location models.SiteLocation, policy Policy) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}
	if _, exists := c.entries[key]; exists {
		return false
	}

	e := &entry{key: key, location: location, policy: policy}
	if !policy.AbsoluteExpiration.IsZero() {
		wait := policy.AbsoluteExpiration.Sub(c.clock.Now())
		if wait <= 0 {
			wait = time.Nanosecond
		}
		e.timer = c.clock.AfterFunc(wait, func() { c.expire(e) })
	}
	c.entries[key] = e
	c.order = append(c.order, key)
	c.recordSize()
	return true
}

// Contains reports whether key is cached.
func (c *Cache) Contains(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok
}

// Get returns the location stored under key.
func (c *Cache) Get(key string) (models.SiteLocation, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		return e.location, true
	}
	return models.SiteLocation{}, false
}

// Remove deletes key. The default directory cannot be removed.
func (c *Cache) Remove(key string) bool {
	return c.removeWithReason(key, ReasonRemoved)
}

// Evict pushes key out of the cache ahead of its expiration.
func (c *Cache) Evict(key string) bool {
	return c.removeWithReason(key, ReasonEvicted)
}

func (c *Cache) removeWithReason(key string, reason RemovalReason) bool {
	if key == models.DefaultSiteKey {
		c.logger.Warn("refusing to remove the default directory", "reason", reason.String())
		return false
	}
	c.mu.Lock()
	e, ok := c.entries[key]
	if ok {
		c.deleteLocked(key)
	}
	c.mu.Unlock()

	if ok {
		c.notify(e, reason)
	}
	return ok
}

// ClearDirectories removes every discovered entry, keeping the default
// directory and the control entry.
func (c *Cache) ClearDirectories() (int, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return 0, ErrClosed
	}
	var removed []*entry
	for _, key := range slices.Clone(c.order) {
		if isReserved(key) {
			continue
		}
		removed = append(removed, c.entries[key])
		c.deleteLocked(key)
	}
	c.mu.Unlock()

	for _, e := range removed {
		c.notify(e, ReasonRemoved)
	}
	return len(removed), nil
}

// Enumerate returns a snapshot of every entry in insertion order.
func (c *Cache) Enumerate() []models.SiteEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.SiteEntry, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, models.SiteEntry{Key: key, Location: c.entries[key].location})
	}
	return out
}

// Default returns the default directory.
func (c *Cache) Default() (models.SiteLocation, bool) {
	return c.Get(models.DefaultSiteKey)
}

// Directories returns a snapshot of the discovered directories, without the
// default and control entries.
func (c *Cache) Directories() []models.SiteEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.SiteEntry, 0, len(c.order))
	for _, key := range c.order {
		if isReserved(key) {
			continue
		}
		out = append(out, models.SiteEntry{Key: key, Location: c.entries[key].location})
	}
	return out
}

// Len returns the number of entries including reserved ones.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// RefreshNow discards the scheduled refresh and runs discovery immediately.
func (c *Cache) RefreshNow(ctx context.Context) error {
	if !c.cfg.DiscoverSites {
		return dErrors.New(dErrors.CodeBadRequest, "site discovery is disabled")
	}
	c.detach(models.ControlSiteKey)
	return c.refresh(ctx, "manual")
}

// Close stops all timers and empties the cache. Removal callbacks see
// ReasonCacheSpecificEviction.
func (c *Cache) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	removed := make([]*entry, 0, len(c.order))
	for _, key := range slices.Clone(c.order) {
		removed = append(removed, c.entries[key])
		c.deleteLocked(key)
	}
	c.mu.Unlock()

	for _, e := range removed {
		c.notify(e, ReasonCacheSpecificEviction)
	}
}

func (c *Cache) refresh(ctx context.Context, trigger string) error {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	if c.isClosed() {
		return ErrClosed
	}
	if c.discoverer == nil {
		return dErrors.New(dErrors.CodeConfiguration, "site cache has no discoverer")
	}

	invalid, err := c.discoverer.Discover(ctx)
	for _, loc := range invalid {
		c.logger.Warn("discovered directory has an invalid inquiry url",
			"inquire_url", loc.InquireURL,
			"description", loc.Description,
		)
	}
	if err != nil {
		c.logger.Error("directory discovery failed", "trigger", trigger, "error", err)
		return err
	}

	control := Policy{
		AbsoluteExpiration: c.clock.Now().Add(c.cfg.ExpiryInterval),
		OnRemoved:          c.onControlRemoved,
	}
	if !c.Add(models.ControlSiteKey, models.ControlSite(), control) {
		if c.isClosed() {
			return ErrClosed
		}
		c.logger.Warn("directory refresh already scheduled", "trigger", trigger)
	}

	for _, fn := range c.onRefresh {
		fn()
	}
	if c.metrics != nil {
		c.metrics.IncrementRefresh(trigger)
	}
	c.logger.Info("directory refresh completed",
		"trigger", trigger,
		"directories", len(c.Directories()),
		"invalid", len(invalid),
		"next_refresh", control.AbsoluteExpiration,
	)
	return nil
}

func (c *Cache) onControlRemoved(_ string, _ models.SiteLocation, reason RemovalReason) {
	switch reason {
	case ReasonExpired, ReasonEvicted:
		if err := c.refresh(context.Background(), reason.String()); err != nil && !errors.Is(err, ErrClosed) {
			c.logger.Error("scheduled directory refresh failed, refresh cycle stopped",
				"reason", reason.String(),
				"error", err,
			)
		}
	case ReasonCacheSpecificEviction:
	default:
		c.logger.Warn("control entry removed, directory refresh is no longer scheduled",
			"reason", reason.String(),
		)
	}
}

func (c *Cache) expire(e *entry) {
	c.mu.Lock()
	current, ok := c.entries[e.key]
	if !ok || current != e {
		c.mu.Unlock()
		return
	}
	c.deleteLocked(e.key)
	c.mu.Unlock()

	c.notify(e, ReasonExpired)
}

// detach removes key without running its callback.
func (c *Cache) detach(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; ok {
		c.deleteLocked(key)
	}
}

func (c *Cache) deleteLocked(key string) {
	e := c.entries[key]
	if e.timer != nil {
		e.timer.Stop()
	}
	delete(c.entries, key)
	if i := slices.Index(c.order, key); i >= 0 {
		c.order = slices.Delete(c.order, i, i+1)
	}
	c.recordSize()
}

func (c *Cache) notify(e *entry, reason RemovalReason) {
	if e.policy.OnRemoved != nil {
		e.policy.OnRemoved(e.key, e.location, reason)
	}
}

func (c *Cache) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *Cache) recordSize() {
	if c.metrics != nil {
		c.metrics.SetSiteCacheEntries(len(c.entries))
	}
}

func isReserved(key string) bool {
	return key == models.DefaultSiteKey || key == models.ControlSiteKey
}
