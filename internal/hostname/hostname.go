// Package hostname classifies inbound host headers into the platform's
// addressing schemes: local development hosts, preview deployments, platform
// subdomains, and everything else (candidate custom domains).
package hostname

import (
	"net/url"
	"strings"
)

// Kind classifies a host header and selects the subdomain extraction scheme.
type Kind int

const (
	// KindUnknown means the host matches no platform scheme; it is a
	// candidate for custom-domain resolution.
	KindUnknown Kind = iota
	KindLocalhost
	KindPreviewDeployment
	KindPlatformDomain
)

func (k Kind) String() string {
	switch k {
	case KindLocalhost:
		return "localhost"
	case KindPreviewDeployment:
		return "preview"
	case KindPlatformDomain:
		return "platform"
	default:
		return "unknown"
	}
}

// previewDelimiter separates the tenant label from the branch name in
// preview deployment hosts, e.g. "alice---feature-x.vercel.app".
const previewDelimiter = "---"

// Descriptor is the parsed form of a host header. Subdomain is empty when
// the host carries no tenant label; it is never "www" or the bare apex.
type Descriptor struct {
	RawHost   string
	Kind      Kind
	Subdomain string
}

// Parser derives host descriptors for a fixed apex domain and preview
// hosting suffix. It performs no I/O.
type Parser struct {
	apex          string
	previewSuffix string
}

func NewParser(apexDomain, previewSuffix string) *Parser {
	return &Parser{
		apex:          strings.ToLower(apexDomain),
		previewSuffix: strings.ToLower(previewSuffix),
	}
}

// Parse classifies the host header. requestURL is the full request URL; it
// is consulted only for the localhost scheme, where the tenant label lives
// in the URL host ("alice.localhost:3000"). Parse is total: unparseable
// input yields KindUnknown with no subdomain.
func (p *Parser) Parse(hostHeader, requestURL string) Descriptor {
	host := stripPort(strings.ToLower(strings.TrimSpace(hostHeader)))
	d := Descriptor{RawHost: host, Kind: KindUnknown}

	switch {
	case p.isLocal(host, requestURL):
		d.Kind = KindLocalhost
		d.Subdomain = localSubdomain(host, requestURL)

	case strings.Contains(host, previewDelimiter) && p.previewSuffix != "" &&
		strings.HasSuffix(host, "."+p.previewSuffix):
		d.Kind = KindPreviewDeployment
		d.Subdomain = host[:strings.Index(host, previewDelimiter)]

	case host == p.apex || host == "www."+p.apex:
		d.Kind = KindPlatformDomain

	case strings.HasSuffix(host, "."+p.apex):
		d.Kind = KindPlatformDomain
		// The entire prefix is the tenant label, even when it contains
		// dots ("a.b.<apex>" yields "a.b"); no further splitting.
		d.Subdomain = strings.TrimSuffix(host, "."+p.apex)
	}

	if d.Subdomain == "www" {
		d.Subdomain = ""
	}
	return d
}

func (p *Parser) isLocal(host, requestURL string) bool {
	if host == "localhost" || strings.HasSuffix(host, ".localhost") {
		return true
	}
	if host == "127.0.0.1" || host == "::1" || host == "[::1]" {
		return true
	}
	return strings.Contains(requestURL, "localhost")
}

// localSubdomain extracts the label before ".localhost", preferring the URL
// host (covers "http://alice.localhost:3000/") and falling back to the Host
// header.
func localSubdomain(host, requestURL string) string {
	if u, err := url.Parse(requestURL); err == nil {
		uh := stripPort(strings.ToLower(u.Hostname()))
		if s, ok := strings.CutSuffix(uh, ".localhost"); ok && s != "" {
			return s
		}
	}
	if s, ok := strings.CutSuffix(host, ".localhost"); ok && s != "" {
		return s
	}
	return ""
}

func stripPort(h string) string {
	// Bracketed IPv6 hosts keep their colons.
	if strings.HasPrefix(h, "[") {
		if i := strings.Index(h, "]"); i != -1 {
			return h[:i+1]
		}
		return h
	}
	if i := strings.IndexByte(h, ':'); i != -1 {
		return h[:i]
	}
	return h
}
