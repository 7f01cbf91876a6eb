package core

import (
	"github.com/halvard/biopage/internal/domain"
)

type Services struct {
	Tenant *TenantService
	Domain *DomainService
	APIKey *APIKeyService
}

func NewServices(db DB, provisioner Provisioner, dns DNSChecker, blacklist *domain.Blacklist, webhookURL string) *Services {
	tenants := NewTenantService(db)
	return &Services{
		Tenant: tenants,
		Domain: NewDomainService(tenants, provisioner, dns, blacklist, webhookURL),
		APIKey: NewAPIKeyService(db),
	}
}
