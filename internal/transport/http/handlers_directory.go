package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	dirmodels "esbresolver/internal/directory/models"
	dErrors "esbresolver/pkg/domain-errors"
	"esbresolver/pkg/platform/httputil"
	"esbresolver/pkg/platform/middleware/admin"
)

//go:generate mockgen -source=handlers_directory.go -destination=mocks/directory-mocks.go -package=mocks SiteDirectory,CacheInvalidator

// SiteDirectory is the site cache as seen by operators.
type SiteDirectory interface {
	Enumerate() []dirmodels.SiteEntry
	Evict(key string) bool
	RefreshNow(ctx context.Context) error
}

// CacheInvalidator drops cached resolutions.
type CacheInvalidator interface {
	Invalidate(ctx context.Context)
}

// DirectoryHandler exposes the site cache and resolution cache controls.
type DirectoryHandler struct {
	logger      *slog.Logger
	sites       SiteDirectory
	invalidator CacheInvalidator
}

func NewDirectoryHandler(sites SiteDirectory, invalidator CacheInvalidator, logger *slog.Logger) *DirectoryHandler {
	if sites == nil || invalidator == nil {
		panic("httptransport: directory handler requires a site directory and an invalidator")
	}
	return &DirectoryHandler{logger: logger, sites: sites, invalidator: invalidator}
}

func (h *DirectoryHandler) Register(r chi.Router) {
	r.Get("/directories", h.handleListDirectories)
	r.Post("/directories/refresh", h.handleRefresh)
	r.Post("/directories/evict", h.handleEvict)
	r.Post("/cache/invalidate", h.handleInvalidate)
}

type siteResponse struct {
	Key      string                 `json:"key"`
	Reserved bool                   `json:"reserved"`
	Location dirmodels.SiteLocation `json:"location"`
}

type directoriesResponse struct {
	Sites []siteResponse `json:"sites"`
}

func (h *DirectoryHandler) handleListDirectories(w http.ResponseWriter, _ *http.Request) {
	entries := h.sites.Enumerate()
	resp := directoriesResponse{Sites: make([]siteResponse, 0, len(entries))}
	for _, e := range entries {
		resp.Sites = append(resp.Sites, siteResponse{
			Key:      e.Key,
			Reserved: e.Key == dirmodels.DefaultSiteKey || e.Key == dirmodels.ControlSiteKey,
			Location: e.Location,
		})
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *DirectoryHandler) handleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.sites.RefreshNow(ctx); err != nil {
		h.logger.WarnContext(ctx, "manual directory refresh failed",
			"operator", admin.Operator(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	h.logger.InfoContext(ctx, "manual directory refresh", "operator", admin.Operator(ctx))
	h.handleListDirectories(w, r)
}

type evictRequest struct {
	Key string `json:"key" validate:"required,notblank"`
}

// handleEvict drops one discovered directory ahead of its expiry. Site keys
// are usually inquiry URLs, so the key travels in the body.
func (h *DirectoryHandler) handleEvict(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeJSON[evictRequest](ctx, w, r, h.logger)
	if !ok {
		return
	}
	if req.Key == dirmodels.DefaultSiteKey || req.Key == dirmodels.ControlSiteKey {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "reserved directories cannot be evicted"))
		return
	}
	if !h.sites.Evict(req.Key) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "directory not found"))
		return
	}
	h.invalidator.Invalidate(ctx)
	h.logger.InfoContext(ctx, "directory evicted", "operator", admin.Operator(ctx), "key", req.Key)
	w.WriteHeader(http.StatusNoContent)
}

func (h *DirectoryHandler) handleInvalidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	h.invalidator.Invalidate(ctx)
	h.logger.InfoContext(ctx, "resolution cache invalidated", "operator", admin.Operator(ctx))
	w.WriteHeader(http.StatusNoContent)
}
