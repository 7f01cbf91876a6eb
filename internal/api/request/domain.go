package request

// SubmitDomain is the body for POST /tenants/{id}/domain. Full domain
// validation (format, blacklist) happens in the service; this only rejects
// an absent field early.
type SubmitDomain struct {
	Domain string `json:"domain" validate:"required"`
}
