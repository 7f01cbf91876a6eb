package domain

import (
	"fmt"
	"strings"
)

// Blacklist rejects domains the platform must never provision: its own apex
// and subdomains, local hosts, and common placeholder domains. Patterns are
// exact domains or wildcards where "*" matches any single label.
type Blacklist struct {
	patterns []string
}

var basePatterns = []string{
	"localhost",
	"*.localhost",
	"example.com",
	"*.example.com",
	"example.org",
	"example.net",
	"test.com",
}

func NewBlacklist(apexDomain string) *Blacklist {
	apex := Normalize(apexDomain)
	patterns := make([]string, 0, len(basePatterns)+2)
	if apex != "" {
		patterns = append(patterns, apex, "*."+apex)
	}
	patterns = append(patterns, basePatterns...)
	return &Blacklist{patterns: patterns}
}

// Check reports whether the domain matches a blacklist pattern, built-in or
// caller-supplied. The reason names the matched pattern.
func (b *Blacklist) Check(domain string, extra ...string) (blacklisted bool, reason string) {
	d := Normalize(domain)
	for _, p := range b.patterns {
		if matchPattern(p, d) {
			return true, fmt.Sprintf("domain is reserved (matches %q)", p)
		}
	}
	for _, p := range extra {
		if matchPattern(Normalize(p), d) {
			return true, fmt.Sprintf("domain is blocked (matches %q)", p)
		}
	}
	return false, ""
}

// matchPattern compares label-wise; "*" in the pattern matches exactly one
// label.
func matchPattern(pattern, domain string) bool {
	if pattern == domain {
		return true
	}
	if !strings.Contains(pattern, "*") {
		return false
	}
	pp := strings.Split(pattern, ".")
	dd := strings.Split(domain, ".")
	if len(pp) != len(dd) {
		return false
	}
	for i := range pp {
		if pp[i] != "*" && pp[i] != dd[i] {
			return false
		}
	}
	return true
}
