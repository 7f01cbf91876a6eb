package platform

import "fmt"

// SubdomainHostname returns the platform hostname for a tenant.
// Example: alice.biopage.to
func SubdomainHostname(apexDomain, username string) string {
	return fmt.Sprintf("%s.%s", username, apexDomain)
}

// CanonicalProfileURL returns the canonical public profile URL served from
// the platform root host.
// Example: https://www.biopage.to/s/alice
func CanonicalProfileURL(apexDomain, username string) string {
	return fmt.Sprintf("https://www.%s/s/%s", apexDomain, username)
}
