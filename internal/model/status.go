package model

// Custom domain status constants.
const (
	DomainStatusNone    = "none"
	DomainStatusPending = "pending"
	DomainStatusActive  = "active"
	DomainStatusFailed  = "failed"
)

// TerminalDomainStatus reports whether a webhook-reported status ends the
// provisioning handshake.
func TerminalDomainStatus(status string) bool {
	return status == DomainStatusActive || status == DomainStatusFailed
}
