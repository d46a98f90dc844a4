// Package rebase moves resolved access points onto a configured service host.
package rebase

import (
	"log/slog"
	"net/url"
	"strings"
)

// DefaultBase is used when no usable base URL is configured.
const DefaultBase = "http://localhost/"

var defaultBase = mustParse(DefaultBase)

// SetAsBaseURLOn rebases accessPoint onto baseURL and returns an absolute URL.
//
// An absolute access point loses its scheme and authority and is applied
// relative to the base directory. A relative one is applied as is. An empty
// access point yields "". Unusable input is logged and never fails the call.
func SetAsBaseURLOn(logger *slog.Logger, baseURL, accessPoint string) string {
	if logger == nil {
		logger = slog.Default()
	}
	ap := strings.TrimSpace(accessPoint)
	if ap == "" {
		logger.Warn("access point is empty, nothing to rebase", "base_url", baseURL)
		return ""
	}

	base := resolveBase(logger, baseURL)

	ref, err := url.Parse(ap)
	if err != nil {
		logger.Warn("access point is not a well-formed url, using raw text",
			"access_point", ap,
			"error", err,
		)
		return baseDirectory(base) + strings.TrimLeft(ap, "/")
	}
	if ref.IsAbs() {
		ref = directoryRelative(ref)
	}
	return base.ResolveReference(ref).String()
}

// directoryRelative drops scheme, user info and host, keeping path, query
// and fragment relative to the base directory.
func directoryRelative(u *url.URL) *url.URL {
	rel := *u
	rel.Scheme = ""
	rel.User = nil
	rel.Host = ""
	rel.Opaque = ""
	rel.Path = strings.TrimLeft(rel.Path, "/")
	rel.RawPath = strings.TrimLeft(rel.RawPath, "/")
	return &rel
}

func resolveBase(logger *slog.Logger, baseURL string) *url.URL {
	raw := strings.TrimSpace(baseURL)
	if raw == "" {
		return defaultBase
	}
	u, err := url.Parse(raw)
	if err != nil {
		logger.Warn("base url is not well-formed, using default base",
			"base_url", raw,
			"default_base", DefaultBase,
			"error", err,
		)
		return defaultBase
	}
	if isAbsolute(u) {
		return u
	}
	if withScheme, err := url.Parse("http://" + raw); err == nil && isAbsolute(withScheme) {
		return withScheme
	}
	return defaultBase.ResolveReference(u)
}

func isAbsolute(u *url.URL) bool {
	return u.IsAbs() && u.Host != ""
}

// baseDirectory returns base up to and including the last slash of its path.
func baseDirectory(base *url.URL) string {
	dir := *base
	dir.RawQuery = ""
	dir.Fragment = ""
	if i := strings.LastIndex(dir.Path, "/"); i >= 0 {
		dir.Path = dir.Path[:i+1]
	} else {
		dir.Path = "/"
	}
	dir.RawPath = ""
	return dir.String()
}

func mustParse(raw string) *url.URL {
	u, err := url.Parse(raw)
	if err != nil {
		panic(err)
	}
	return u
}
