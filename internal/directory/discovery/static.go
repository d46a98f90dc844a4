package discovery

import (
	"context"

	"esbresolver/internal/directory/models"
)

// StaticSource serves a fixed list of directories.
type StaticSource struct {
	sites []models.SiteLocation
}

// NewStaticSource serves the given site locations.
func NewStaticSource(sites ...models.SiteLocation) *StaticSource {
	return &StaticSource{sites: sites}
}

func (s *StaticSource) Name() string { return "static" }

func (s *StaticSource) FindSiteLocations(_ context.Context, urlType URLType, authMode models.AuthMode) ([]models.SiteLocation, error) {
	var out []models.SiteLocation
	for _, site := range s.sites {
		if !matchesAuth(site, authMode) || !hasURL(site, urlType) {
			continue
		}
		out = append(out, site)
	}
	return out, nil
}

func matchesAuth(site models.SiteLocation, want models.AuthMode) bool {
	return want == models.AuthUnspecified || site.AuthMode == models.AuthUnspecified || site.AuthMode == want
}

// hasURL keeps inquiry candidates even when their URL is empty so discovery
// can report them as invalid.
func hasURL(site models.SiteLocation, urlType URLType) bool {
	switch urlType {
	case URLPublish:
		return site.PublishURL != ""
	case URLExtensions:
		return site.ExtensionsURL != ""
	default:
		return true
	}
}
