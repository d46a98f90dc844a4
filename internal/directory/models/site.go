package models

import (
	"net/url"
	"strings"
)

// Reserved site cache keys.
const (
	DefaultSiteKey = "DefaultUDDIInquiryService"
	ControlSiteKey = "ControlCacheRefreshEntry"
)

// AuthMode is the authentication scheme a directory expects.
type AuthMode int

const (
	AuthUnspecified AuthMode = iota
	AuthWindows
	AuthUDDI
	AuthAnonymous
)

func (m AuthMode) String() string {
	switch m {
	case AuthWindows:
		return "WindowsAuthentication"
	case AuthUDDI:
		return "UddiAuthentication"
	case AuthAnonymous:
		return "AnonymousAuthentication"
	default:
		return "Unspecified"
	}
}

// ParseAuthMode maps a configured auth mode name, ignoring case.
// Unknown names map to AuthUnspecified.
func ParseAuthMode(v string) AuthMode {
	for _, m := range []AuthMode{AuthWindows, AuthUDDI, AuthAnonymous} {
		if strings.EqualFold(v, m.String()) {
			return m
		}
	}
	return AuthUnspecified
}

// SiteLocation addresses one directory.
type SiteLocation struct {
	InquireURL    string   `json:"inquire_url"`
	PublishURL    string   `json:"publish_url,omitempty"`
	ExtensionsURL string   `json:"extensions_url,omitempty"`
	Description   string   `json:"description,omitempty"`
	AuthMode      AuthMode `json:"auth_mode"`
}

// HasAbsoluteInquireURL reports whether the inquiry URL parses as an
// absolute URL with a host.
func (s SiteLocation) HasAbsoluteInquireURL() bool {
	raw := strings.TrimSpace(s.InquireURL)
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	return err == nil && u.IsAbs() && u.Host != ""
}

// ControlSite is the sentinel stored under ControlSiteKey.
func ControlSite() SiteLocation {
	return SiteLocation{Description: "cache refresh control entry"}
}

// SiteEntry pairs a cache key with its location.
type SiteEntry struct {
	Key      string
	Location SiteLocation
}
