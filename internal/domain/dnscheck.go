package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/miekg/dns"
)

// ARecordCheck is advisory guidance for the tenant: whether the domain's A
// records currently include the platform's server IP.
type ARecordCheck struct {
	Match      bool     `json:"match"`
	ExpectedIP string   `json:"expected_ip"`
	PointedAt  []string `json:"pointed_at"`
}

// DNSChecker resolves A records for submitted domains. Results are
// best-effort: DNS may still be propagating, so a mismatch never blocks
// submission.
type DNSChecker struct {
	serverIP string
	resolver string
	client   *dns.Client
}

const defaultResolver = "1.1.1.1:53"

func NewDNSChecker(serverIP, resolver string) *DNSChecker {
	if resolver == "" {
		resolver = defaultResolver
	}
	return &DNSChecker{
		serverIP: serverIP,
		resolver: resolver,
		client:   &dns.Client{Timeout: 5 * time.Second},
	}
}

// CheckARecord queries the configured resolver for the domain's A records
// and compares them against the platform server IP.
func (c *DNSChecker) CheckARecord(ctx context.Context, domain string) (*ARecordCheck, error) {
	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(Normalize(domain)), dns.TypeA)
	msg.RecursionDesired = true

	resp, _, err := c.client.ExchangeContext(ctx, msg, c.resolver)
	if err != nil {
		return nil, fmt.Errorf("resolve A records for %s: %w", domain, err)
	}
	if resp.Rcode != dns.RcodeSuccess {
		rcode := dns.RcodeToString[resp.Rcode]
		return nil, fmt.Errorf("resolve A records for %s: %s", domain, rcode)
	}

	var ips []string
	for _, rr := range resp.Answer {
		if a, ok := rr.(*dns.A); ok {
			ips = append(ips, a.A.String())
		}
	}
	return newARecordCheck(ips, c.serverIP), nil
}

func newARecordCheck(ips []string, serverIP string) *ARecordCheck {
	check := &ARecordCheck{ExpectedIP: serverIP, PointedAt: ips}
	for _, ip := range ips {
		if ip == serverIP {
			check.Match = true
			break
		}
	}
	return check
}
