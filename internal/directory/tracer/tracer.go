// Package tracer provides a lightweight tracing abstraction for directory
// resolution.
//
// The interface keeps resolver and discovery code independent of the
// OpenTelemetry API. NoopTracer serves tests; OTelTracer adapts the global
// OpenTelemetry provider for production.
package tracer

import (
	"context"
	"time"
)

// Span represents an active trace span.
type Span interface {
	// End completes the span, recording err when non-nil.
	// End must be called exactly once, typically via defer.
	End(err error)

	SetAttributes(attrs ...Attribute)

	AddEvent(name string, attrs ...Attribute)
}

// Tracer creates spans. Implementations must be safe for concurrent use.
type Tracer interface {
	// Start creates a new span. The returned context carries the span.
	//
	// Example:
	//   ctx, span := tracer.Start(ctx, tracer.SpanResolve,
	//       tracer.String(tracer.AttrService, service.Value),
	//   )
	//   defer span.End(nil)
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Attribute represents a key-value pair attached to spans.
type Attribute struct {
	Key   string
	Value any
}

// String creates a string attribute.
func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

// Bool creates a boolean attribute.
func Bool(key string, value bool) Attribute {
	return Attribute{Key: key, Value: value}
}

// Int creates an int attribute.
func Int(key string, value int) Attribute {
	return Attribute{Key: key, Value: value}
}

// Int64 creates an int64 attribute.
func Int64(key string, value int64) Attribute {
	return Attribute{Key: key, Value: value}
}

// Duration creates a duration attribute in milliseconds.
func Duration(key string, value time.Duration) Attribute {
	return Attribute{Key: key, Value: value.Milliseconds()}
}

// Span names.
const (
	SpanResolve       = "directory.resolve"
	SpanSiteQuery     = "directory.site.query"
	SpanDiscover      = "directory.discover"
	SpanDiscoverQuery = "directory.discover.source"
)

// Attribute keys.
const (
	AttrProvider    = "directory.provider"
	AttrService     = "directory.service"
	AttrUseType     = "directory.use_type"
	AttrSite        = "directory.site"
	AttrCacheHit    = "cache.hit"
	AttrFound       = "directory.found"
	AttrSiteCount   = "directory.site_count"
	AttrSource      = "discovery.source"
	AttrInvalidSite = "discovery.invalid_count"
	AttrCategory    = "error.category"
)

// Event names.
const (
	EventSiteFailed  = "site.failed"
	EventSiteSkipped = "site.skipped"
)
