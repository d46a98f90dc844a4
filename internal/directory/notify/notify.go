// Package notify turns directory change notifications into site cache
// refreshes and resolution cache invalidations.
package notify

import (
	"context"
	"encoding/json"
	"log/slog"

	"esbresolver/internal/platform/kafka/consumer"
	dErrors "esbresolver/pkg/domain-errors"
)

// Event types carried on the directory events topic.
const (
	EventDirectoryChanged = "directory.changed"
	EventCacheInvalidate  = "cache.invalidate"
)

//go:generate mockgen -source=notify.go -destination=mocks/mocks.go -package=mocks Refresher,Invalidator

// Refresher runs a discovery pass.
type Refresher interface {
	RefreshNow(ctx context.Context) error
}

// Invalidator drops cached resolutions.
type Invalidator interface {
	Invalidate(ctx context.Context)
}

// Event is the payload of a directory notification.
type Event struct {
	Type string `json:"type"`
	Site string `json:"site,omitempty"`
}

// Handler consumes directory notifications.
type Handler struct {
	refresher   Refresher
	invalidator Invalidator
	logger      *slog.Logger
}

var _ consumer.Handler = (*Handler)(nil)

// NewHandler builds a Handler. Both ports are required.
func NewHandler(refresher Refresher, invalidator Invalidator, logger *slog.Logger) *Handler {
	if refresher == nil || invalidator == nil {
		panic("notify: refresher and invalidator are required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{refresher: refresher, invalidator: invalidator, logger: logger}
}

// Handle implements consumer.Handler. Malformed and unknown events are
// logged and acknowledged so they are not redelivered.
func (h *Handler) Handle(ctx context.Context, msg *consumer.Message) error {
	var ev Event
	if err := json.Unmarshal(msg.Value, &ev); err != nil {
		h.logger.WarnContext(ctx, "discarding malformed directory event",
			"offset", msg.Offset,
			"error", err,
		)
		return nil
	}

	switch ev.Type {
	case EventDirectoryChanged:
		err := h.refresher.RefreshNow(ctx)
		if err == nil {
			h.logger.InfoContext(ctx, "directory change triggered discovery", "site", ev.Site)
			return nil
		}
		// Without discovery there is nothing to refresh, but cached
		// resolutions may still point at the changed site.
		if dErrors.HasCode(err, dErrors.CodeBadRequest) {
			h.invalidator.Invalidate(ctx)
			return nil
		}
		return err
	case EventCacheInvalidate:
		h.invalidator.Invalidate(ctx)
		h.logger.InfoContext(ctx, "resolution cache invalidated by event", "site", ev.Site)
		return nil
	default:
		h.logger.WarnContext(ctx, "ignoring unknown directory event", "type", ev.Type)
		return nil
	}
}
