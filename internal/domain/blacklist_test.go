package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlacklist_ApexAndSubdomains(t *testing.T) {
	b := NewBlacklist("biopage.to")

	blacklisted, reason := b.Check("biopage.to")
	assert.True(t, blacklisted)
	assert.Contains(t, reason, "biopage.to")

	blacklisted, _ = b.Check("alice.biopage.to")
	assert.True(t, blacklisted)
}

func TestBlacklist_BuiltinPatterns(t *testing.T) {
	b := NewBlacklist("biopage.to")

	for _, d := range []string{"localhost", "dev.localhost", "example.com", "www.example.com", "test.com"} {
		blacklisted, _ := b.Check(d)
		assert.True(t, blacklisted, d)
	}
}

func TestBlacklist_AllowsRealDomains(t *testing.T) {
	b := NewBlacklist("biopage.to")

	for _, d := range []string{"my-real-domain.com", "links.alice.dev", "biopage.io"} {
		blacklisted, _ := b.Check(d)
		assert.False(t, blacklisted, d)
	}
}

func TestBlacklist_WildcardMatchesSingleLabel(t *testing.T) {
	b := NewBlacklist("biopage.to")

	// "*.biopage.to" matches one label, not two.
	blacklisted, _ := b.Check("a.b.biopage.to")
	assert.False(t, blacklisted)
}

func TestBlacklist_ExtraPatterns(t *testing.T) {
	b := NewBlacklist("biopage.to")

	blacklisted, reason := b.Check("spam.example.dev", "*.example.dev")
	assert.True(t, blacklisted)
	assert.Contains(t, reason, "*.example.dev")

	blacklisted, _ = b.Check("ok.other.dev", "*.example.dev")
	assert.False(t, blacklisted)
}

func TestBlacklist_CaseInsensitive(t *testing.T) {
	b := NewBlacklist("biopage.to")

	blacklisted, _ := b.Check("BioPage.TO")
	assert.True(t, blacklisted)
}
