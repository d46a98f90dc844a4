package sitecache

import (
	"time"

	"esbresolver/internal/directory/models"
)

// RemovalReason says why an entry left the cache.
type RemovalReason int

const (
	// ReasonRemoved is an explicit Remove or a discovery clear.
	ReasonRemoved RemovalReason = iota
	// ReasonExpired means the absolute expiration passed.
	ReasonExpired
	// ReasonEvicted means the entry was pushed out before expiring.
	ReasonEvicted
	// ReasonCacheSpecificEviction is cache teardown.
	ReasonCacheSpecificEviction
)

func (r RemovalReason) String() string {
	switch r {
	case ReasonRemoved:
		return "removed"
	case ReasonExpired:
		return "expired"
	case ReasonEvicted:
		return "evicted"
	case ReasonCacheSpecificEviction:
		return "cache_specific_eviction"
	default:
		return "unknown"
	}
}

// RemovedCallback runs after an entry has left the cache, outside the lock.
type RemovedCallback func(key string, location models.SiteLocation, reason RemovalReason)

// Policy controls the lifetime of one entry. The zero value never expires.
type Policy struct {
	AbsoluteExpiration time.Time
	OnRemoved          RemovedCallback
}

// NoExpiration keeps an entry until it is removed.
var NoExpiration = Policy{}
