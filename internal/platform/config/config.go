package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	dErrors "esbresolver/pkg/domain-errors"
	s "esbresolver/pkg/string"
)

// DefaultInquiryURL is used when no default directory is configured.
const DefaultInquiryURL = "http://localhost/uddi/inquire.asmx"

// DefaultExpiryHours is the lifetime of discovered directory entries.
const DefaultExpiryHours = 24.0

// Server captures process level configuration.
type Server struct {
	Addr        string
	Environment string

	// LogFile, when set, receives the JSON log instead of stdout.
	LogFile string

	// AdminToken guards the /admin endpoints. Empty disables them.
	AdminToken string

	Directory Directory
	Policy    Policy

	RedisURL     string
	DatabaseURL  string
	KafkaBrokers string
	AuditTopic   string

	// DirectoryEventsTopic carries directory change notifications that
	// trigger a discovery pass.
	DirectoryEventsTopic string
	ConsumerGroup        string
}

// Directory configures the site cache, discovery and resolution.
type Directory struct {
	DiscoverSites         bool
	DiscoveredExpiryHours float64
	DefaultInquiryURL     string
	ServiceHostBaseURL    string
	StaticSites           []string
	DNSDomain             string
	DNSServer             string
	DiscoveryAuthMode     string
	InquiryAPIKey         string
	RequestTimeout        time.Duration
	ResolutionCacheTTL    time.Duration
}

// Policy configures rule evaluation.
type Policy struct {
	TraceEnabled  bool
	TraceFolder   string
	TesterMode    bool
	StaticSupport bool
	RulesFile     string
}

// ExpiryInterval converts the fractional hours setting into a duration.
func (d Directory) ExpiryInterval() time.Duration {
	return time.Duration(d.DiscoveredExpiryHours * float64(time.Hour))
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	cfg := Server{
		Addr:        envOr("ESB_ADDR", ":8080"),
		Environment: envOr("ESB_ENVIRONMENT", "local"),
		LogFile:     strings.TrimSpace(os.Getenv("ESB_LOG_FILE")),
		AdminToken:  strings.TrimSpace(os.Getenv("ESB_ADMIN_TOKEN")),
		Directory: Directory{
			DiscoverSites:         envBool("ESB_DISCOVER_SITES"),
			DiscoveredExpiryHours: DefaultExpiryHours,
			DefaultInquiryURL:     strings.TrimSpace(os.Getenv("ESB_DEFAULT_INQUIRY_URL")),
			ServiceHostBaseURL:    strings.TrimSpace(os.Getenv("ESB_SERVICE_HOST_BASE_URL")),
			StaticSites:           s.SplitList(os.Getenv("ESB_STATIC_SITES")),
			DNSDomain:             strings.TrimSpace(os.Getenv("ESB_DISCOVERY_DNS_DOMAIN")),
			DNSServer:             strings.TrimSpace(os.Getenv("ESB_DISCOVERY_DNS_SERVER")),
			DiscoveryAuthMode:     strings.TrimSpace(os.Getenv("ESB_DISCOVERY_AUTH_MODE")),
			InquiryAPIKey:         strings.TrimSpace(os.Getenv("ESB_INQUIRY_API_KEY")),
			RequestTimeout:        10 * time.Second,
			ResolutionCacheTTL:    5 * time.Minute,
		},
		Policy: Policy{
			TraceEnabled:  envBool("ESB_TRACE_ENABLED"),
			TraceFolder:   strings.TrimSpace(os.Getenv("ESB_TRACE_FOLDER")),
			TesterMode:    envBool("ESB_TESTER_MODE"),
			StaticSupport: envBool("ESB_STATIC_SUPPORT"),
			RulesFile:     strings.TrimSpace(os.Getenv("ESB_RULES_FILE")),
		},
		RedisURL:             os.Getenv("REDIS_URL"),
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		KafkaBrokers:         os.Getenv("KAFKA_BROKERS"),
		AuditTopic:           envOr("ESB_AUDIT_TOPIC", "esb.resolution.audit"),
		DirectoryEventsTopic: envOr("ESB_DIRECTORY_EVENTS_TOPIC", "esb.directory.changes"),
		ConsumerGroup:        envOr("ESB_CONSUMER_GROUP", "esb-resolver"),
	}

	if v := os.Getenv("ESB_DISCOVERED_SITE_EXPIRY_HOURS"); v != "" {
		hours, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Server{}, dErrors.Wrap(err, dErrors.CodeConfiguration, "ESB_DISCOVERED_SITE_EXPIRY_HOURS must be a decimal number of hours")
		}
		cfg.Directory.DiscoveredExpiryHours = hours
	}

	var err error
	if cfg.Directory.RequestTimeout, err = envDuration("ESB_DIRECTORY_TIMEOUT", cfg.Directory.RequestTimeout); err != nil {
		return Server{}, err
	}
	if cfg.Directory.ResolutionCacheTTL, err = envDuration("ESB_RESOLUTION_CACHE_TTL", cfg.Directory.ResolutionCacheTTL); err != nil {
		return Server{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

// Validate reports deployment defects. These are fatal at startup.
func (c Server) Validate() error {
	if c.Directory.DiscoveredExpiryHours <= 0 {
		return dErrors.New(dErrors.CodeConfiguration, "discovered site expiry must be positive")
	}
	if c.Directory.ServiceHostBaseURL != "" {
		if _, err := url.Parse(c.Directory.ServiceHostBaseURL); err != nil {
			return dErrors.Wrap(err, dErrors.CodeConfiguration, fmt.Sprintf("malformed service host base url %q", c.Directory.ServiceHostBaseURL))
		}
	}
	if c.Directory.DefaultInquiryURL != "" {
		if _, err := url.Parse(c.Directory.DefaultInquiryURL); err != nil {
			return dErrors.Wrap(err, dErrors.CodeConfiguration, fmt.Sprintf("malformed default inquiry url %q", c.Directory.DefaultInquiryURL))
		}
	}
	if c.Policy.TraceEnabled && c.Policy.TraceFolder != "" {
		info, err := os.Stat(c.Policy.TraceFolder)
		if err != nil || !info.IsDir() {
			return dErrors.New(dErrors.CodeConfiguration, fmt.Sprintf("trace folder %q is not a directory", c.Policy.TraceFolder))
		}
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envBool(key string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	return err == nil && v
}

// envDuration parses a positive Go duration such as "3s".
func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeConfiguration, fmt.Sprintf("%s must be a duration such as 10s", key))
	}
	if d <= 0 {
		return 0, dErrors.New(dErrors.CodeConfiguration, fmt.Sprintf("%s must be positive", key))
	}
	return d, nil
}
