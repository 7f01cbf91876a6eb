package config

import (
	"fmt"
	"net"
	"os"
	"strings"
)

type Config struct {
	DatabaseURL       string
	HTTPListenAddr    string
	MetricsListenAddr string
	// ApexDomain is the platform's own root domain, e.g. "biopage.to".
	ApexDomain string
	// PreviewSuffix is the hosting provider's preview-deployment suffix,
	// e.g. "vercel.app". Hosts like "user---branch.<suffix>" carry the
	// tenant label before the "---" delimiter.
	PreviewSuffix     string
	ProvisionerURL    string
	ProvisionerSecret string
	// WebhookBaseURL is the externally reachable base URL of this service,
	// used to build the callback URL handed to the provisioner.
	WebhookBaseURL string
	// ServerIP is the A-record target tenants must point custom domains at.
	ServerIP string
	// SiteUpstreamURL is the origin the edge proxies rewritten profile
	// requests to. Empty disables the public edge routes.
	SiteUpstreamURL string
	// DNSResolver overrides the resolver used for A-record pre-flight
	// checks, host:port.
	DNSResolver string
	// TrustedProxies lists CIDRs whose X-Forwarded-* headers are honored.
	TrustedProxies []string
	LogLevel       string
	ServiceName    string
}

func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		HTTPListenAddr:    getEnv("HTTP_LISTEN_ADDR", ":8080"),
		MetricsListenAddr: getEnv("METRICS_LISTEN_ADDR", ":9090"),
		ApexDomain:        getEnv("APEX_DOMAIN", ""),
		PreviewSuffix:     getEnv("PREVIEW_SUFFIX", "vercel.app"),
		ProvisionerURL:    getEnv("PROVISIONER_URL", ""),
		ProvisionerSecret: getEnv("PROVISIONER_SECRET", ""),
		WebhookBaseURL:    getEnv("WEBHOOK_BASE_URL", ""),
		ServerIP:          getEnv("SERVER_IP", ""),
		SiteUpstreamURL:   getEnv("SITE_UPSTREAM_URL", ""),
		DNSResolver:       getEnv("DNS_RESOLVER", ""),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		ServiceName:       getEnv("SERVICE_NAME", "biopage-api"),
	}

	if v := os.Getenv("TRUSTED_PROXIES"); v != "" {
		for _, cidr := range strings.Split(v, ",") {
			cidr = strings.TrimSpace(cidr)
			if cidr != "" {
				cfg.TrustedProxies = append(cfg.TrustedProxies, cidr)
			}
		}
	}

	return cfg, nil
}

// Validate checks that the fields required to run the API server are set
// and well formed.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.ApexDomain == "" {
		return fmt.Errorf("APEX_DOMAIN is required")
	}
	if c.ProvisionerSecret == "" {
		return fmt.Errorf("PROVISIONER_SECRET is required")
	}
	if c.ServerIP != "" && net.ParseIP(c.ServerIP) == nil {
		return fmt.Errorf("SERVER_IP %q is not a valid IP address", c.ServerIP)
	}
	for _, cidr := range c.TrustedProxies {
		if _, _, err := net.ParseCIDR(cidr); err != nil {
			return fmt.Errorf("TRUSTED_PROXIES entry %q: %w", cidr, err)
		}
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
