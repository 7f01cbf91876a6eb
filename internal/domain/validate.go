// Package domain holds the pure validators for tenant-submitted custom
// domains: format checks, reserved-name blacklisting, and the best-effort
// DNS pre-flight check.
package domain

import (
	"fmt"
	"strings"
)

const (
	minDomainLength = 3
	maxDomainLength = 253
	maxLabelLength  = 63
)

// ValidateFormat checks RFC-1123 shape: length bounds, dot-separated labels
// of letters, digits, and hyphens with no leading or trailing hyphen, and at
// least two labels. Matching is case-insensitive; nil means valid.
func ValidateFormat(domain string) error {
	d := strings.ToLower(strings.TrimSpace(domain))
	if len(d) < minDomainLength {
		return fmt.Errorf("domain must be at least %d characters", minDomainLength)
	}
	if len(d) > maxDomainLength {
		return fmt.Errorf("domain must not exceed %d characters", maxDomainLength)
	}
	if !strings.Contains(d, ".") {
		return fmt.Errorf("domain must contain at least one dot")
	}

	for _, label := range strings.Split(d, ".") {
		if err := validateLabel(label); err != nil {
			return err
		}
	}
	return nil
}

func validateLabel(label string) error {
	n := len(label)
	if n == 0 {
		return fmt.Errorf("domain has an empty label")
	}
	if n > maxLabelLength {
		return fmt.Errorf("label %q exceeds %d characters", label, maxLabelLength)
	}
	if label[0] == '-' || label[n-1] == '-' {
		return fmt.Errorf("label %q must not start or end with a hyphen", label)
	}
	for _, c := range label {
		if !(c >= 'a' && c <= 'z') && !(c >= '0' && c <= '9') && c != '-' {
			return fmt.Errorf("label %q contains invalid character %q", label, c)
		}
	}
	return nil
}

// Normalize lowercases and trims a domain for storage and comparison.
func Normalize(domain string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimSuffix(domain, ".")))
}
