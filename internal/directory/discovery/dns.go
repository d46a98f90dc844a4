package discovery

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/miekg/dns"

	"esbresolver/internal/directory/models"
)

// U-NAPTR service tags published for a directory.
const (
	ServiceInquiry    = "UDDI:inquiry"
	ServicePublish    = "UDDI:publish"
	ServiceExtensions = "UDDI:extensions"
)

// ErrInvalidNAPTRRecord marks a record whose regexp field carries no URL.
var ErrInvalidNAPTRRecord = errors.New("invalid NAPTR record")

// DNSConfig configures DNS based discovery.
type DNSConfig struct {
	// Domain is the owner name holding the directory NAPTR records.
	Domain string
	// Server is host:port of the resolver. Empty uses /etc/resolv.conf.
	Server  string
	Timeout time.Duration
}

// DNSSource discovers directories from U-NAPTR records. Records sharing an
// order value describe one directory.
type DNSSource struct {
	cfg    DNSConfig
	client *dns.Client
}

// NewDNSSource creates a DNS source.
func NewDNSSource(cfg DNSConfig) *DNSSource {
	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Second
	}
	return &DNSSource{
		cfg:    cfg,
		client: &dns.Client{Net: "udp", Timeout: cfg.Timeout},
	}
}

func (s *DNSSource) Name() string { return "dns" }

func (s *DNSSource) FindSiteLocations(ctx context.Context, urlType URLType, authMode models.AuthMode) ([]models.SiteLocation, error) {
	if s.cfg.Domain == "" {
		return nil, errors.New("dns discovery domain not configured")
	}
	records, err := s.lookupNAPTR(ctx)
	if err != nil {
		return nil, err
	}
	var out []models.SiteLocation
	for _, site := range sitesFromNAPTR(s.cfg.Domain, records) {
		if matchesAuth(site, authMode) && hasURL(site, urlType) {
			out = append(out, site)
		}
	}
	return out, nil
}

func (s *DNSSource) lookupNAPTR(ctx context.Context) ([]*dns.NAPTR, error) {
	server := s.cfg.Server
	if server == "" {
		conf, err := dns.ClientConfigFromFile("/etc/resolv.conf")
		if err != nil {
			return nil, fmt.Errorf("read DNS config: %w", err)
		}
		if len(conf.Servers) == 0 {
			return nil, errors.New("no DNS servers configured")
		}
		server = conf.Servers[0] + ":" + conf.Port
	}

	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(s.cfg.Domain), dns.TypeNAPTR)
	msg.RecursionDesired = true

	resp, _, err := s.client.ExchangeContext(ctx, msg, server)
	if err != nil {
		return nil, fmt.Errorf("DNS lookup failed for %s: %w", s.cfg.Domain, err)
	}
	if resp.Rcode == dns.RcodeNameError {
		return nil, nil
	}
	if resp.Rcode != dns.RcodeSuccess {
		return nil, fmt.Errorf("DNS lookup failed for %s: rcode=%s", s.cfg.Domain, dns.RcodeToString[resp.Rcode])
	}

	var records []*dns.NAPTR
	for _, rr := range resp.Answer {
		if naptr, ok := rr.(*dns.NAPTR); ok {
			records = append(records, naptr)
		}
	}
	return records, nil
}

// sitesFromNAPTR groups terminal records by order. A group without an
// inquiry record is dropped; an inquiry record with an unusable regexp is
// kept with its raw text so discovery reports it as invalid.
func sitesFromNAPTR(domain string, records []*dns.NAPTR) []models.SiteLocation {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b *dns.NAPTR) int {
		return cmp.Or(cmp.Compare(a.Order, b.Order), cmp.Compare(a.Preference, b.Preference))
	})

	type group struct {
		site       models.SiteLocation
		hasInquiry bool
	}
	var groups []*group
	byOrder := make(map[uint16]*group)

	for _, rec := range sorted {
		if !strings.EqualFold(rec.Flags, "U") {
			continue
		}
		g, ok := byOrder[rec.Order]
		if !ok {
			g = &group{site: models.SiteLocation{
				Description: fmt.Sprintf("dns:%s#%d", strings.TrimSuffix(domain, "."), rec.Order),
			}}
			byOrder[rec.Order] = g
			groups = append(groups, g)
		}
		target, err := urlFromRegexp(rec.Regexp)
		if err != nil {
			target = rec.Regexp
		}
		switch {
		case strings.EqualFold(rec.Service, ServiceInquiry):
			if !g.hasInquiry {
				g.site.InquireURL = target
				g.hasInquiry = true
			}
		case strings.EqualFold(rec.Service, ServicePublish):
			if g.site.PublishURL == "" {
				g.site.PublishURL = target
			}
		case strings.EqualFold(rec.Service, ServiceExtensions):
			if g.site.ExtensionsURL == "" {
				g.site.ExtensionsURL = target
			}
		}
	}

	var out []models.SiteLocation
	for _, g := range groups {
		if g.hasInquiry {
			out = append(out, g.site)
		}
	}
	return out
}

// urlFromRegexp extracts the replacement of a "!pattern!replacement!" field.
func urlFromRegexp(field string) (string, error) {
	if field == "" {
		return "", ErrInvalidNAPTRRecord
	}
	parts := strings.Split(field, "!")
	if len(parts) < 3 || parts[2] == "" {
		return "", fmt.Errorf("%w: %s", ErrInvalidNAPTRRecord, field)
	}
	return parts[2], nil
}
