package model

import "time"

type Tenant struct {
	ID       string `json:"id" db:"id"`
	Username string `json:"username" db:"username"`
	Email    string `json:"email" db:"email"`
	// CustomDomain is lowercase and normalized; unique across tenants,
	// enforced by a unique index on the tenants table.
	CustomDomain        *string    `json:"custom_domain,omitempty" db:"custom_domain"`
	CustomDomainStatus  string     `json:"custom_domain_status" db:"custom_domain_status"`
	CustomDomainError   *string    `json:"custom_domain_error,omitempty" db:"custom_domain_error"`
	CustomDomainSetupAt *time.Time `json:"custom_domain_setup_at,omitempty" db:"custom_domain_setup_at"`
	// CustomDomainToken fences webhook callbacks: a fresh token is issued
	// per setup request and stale callbacks are ignored.
	CustomDomainToken *string   `json:"-" db:"custom_domain_token"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}
