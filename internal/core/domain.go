package core

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/halvard/biopage/internal/domain"
	"github.com/halvard/biopage/internal/model"
	"github.com/halvard/biopage/internal/platform"
	"github.com/halvard/biopage/internal/provision"
)

// Provisioner is the outbound side of the provisioning handshake.
// *provision.Client satisfies this interface.
type Provisioner interface {
	SetupDomain(ctx context.Context, domain, tenantID, webhookURL, token string) (*provision.Ack, error)
	CheckStatus(ctx context.Context, domain string) (*provision.Ack, error)
	Health(ctx context.Context) error
}

// DNSChecker resolves A records for submitted domains.
// *domain.DNSChecker satisfies this interface.
type DNSChecker interface {
	CheckARecord(ctx context.Context, domain string) (*domain.ARecordCheck, error)
}

// DomainService drives the custom-domain lifecycle: validated submission,
// removal, status reporting, and application of webhook callbacks.
type DomainService struct {
	tenants     *TenantService
	provisioner Provisioner
	dns         DNSChecker
	blacklist   *domain.Blacklist
	webhookURL  string
}

func NewDomainService(tenants *TenantService, provisioner Provisioner, dns DNSChecker, blacklist *domain.Blacklist, webhookURL string) *DomainService {
	return &DomainService{
		tenants:     tenants,
		provisioner: provisioner,
		dns:         dns,
		blacklist:   blacklist,
		webhookURL:  webhookURL,
	}
}

// SubmitResult is returned from a successful domain submission.
type SubmitResult struct {
	Tenant *model.Tenant        `json:"tenant"`
	Ack    *provision.Ack       `json:"provisioner"`
	DNS    *domain.ARecordCheck `json:"dns,omitempty"`
}

// DomainStatus combines the persisted record with a best-effort poll of the
// remote service. The remote view is informational; the webhook callback is
// the only authority for state transitions.
type DomainStatus struct {
	Tenant *model.Tenant  `json:"tenant"`
	Remote *provision.Ack `json:"remote,omitempty"`
}

// Submit validates and claims a custom domain for the tenant, then asks the
// provisioning service to configure it. Validation and blacklist rejections
// are terminal; ErrConflict means another tenant owns the domain; a wrapped
// provision.ErrUnreachable means the caller should retry shortly. A failed
// handoff undoes the claim: the tenant's previous domain record comes back
// if there was one.
func (s *DomainService) Submit(ctx context.Context, tenantID, rawDomain string) (*SubmitResult, error) {
	d := domain.Normalize(rawDomain)

	if err := domain.ValidateFormat(d); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDomain, err)
	}
	if blacklisted, reason := s.blacklist.Check(d); blacklisted {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDomain, reason)
	}

	prior, err := s.tenants.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	// Advisory only: DNS may still be propagating, so a mismatch or
	// resolver failure never blocks submission.
	var dnsCheck *domain.ARecordCheck
	if s.dns != nil {
		check, err := s.dns.CheckARecord(ctx, d)
		if err != nil {
			zerolog.Ctx(ctx).Debug().Err(err).Str("domain", d).Msg("dns pre-flight check failed")
		} else {
			dnsCheck = check
		}
	}

	token := platform.NewID()
	if err := s.tenants.SetCustomDomain(ctx, tenantID, d, token); err != nil {
		return nil, err
	}

	ack, err := s.provisioner.SetupDomain(ctx, d, tenantID, s.webhookURL, token)
	if err != nil {
		// Only a verified webhook may set a terminal status, so a failed
		// handoff undoes the claim instead of recording a failure.
		if undoErr := s.undoClaim(ctx, tenantID, prior); undoErr != nil {
			zerolog.Ctx(ctx).Error().Err(undoErr).Str("tenant_id", tenantID).
				Msg("failed to undo domain claim after setup error")
		}
		return nil, fmt.Errorf("setup domain %s: %w", d, err)
	}

	tenant, err := s.tenants.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return &SubmitResult{Tenant: tenant, Ack: ack, DNS: dnsCheck}, nil
}

// undoClaim reverts the conditional write taken by Submit: the previous
// record is restored when the tenant had a domain before, otherwise the
// claim is released outright.
func (s *DomainService) undoClaim(ctx context.Context, tenantID string, prior *model.Tenant) error {
	if prior.CustomDomain == nil {
		return s.tenants.ClearCustomDomain(ctx, tenantID)
	}
	return s.tenants.RestoreCustomDomain(ctx, tenantID, prior)
}

// Remove clears the tenant's custom domain. An in-flight provisioning job
// on the remote side is not cancelled; its late callback will be fenced by
// the token check in ApplyCallback.
func (s *DomainService) Remove(ctx context.Context, tenantID string) error {
	return s.tenants.ClearCustomDomain(ctx, tenantID)
}

// Status returns the persisted domain record plus a best-effort remote
// poll. Remote errors are swallowed; the persisted record always answers.
func (s *DomainService) Status(ctx context.Context, tenantID string) (*DomainStatus, error) {
	tenant, err := s.tenants.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	status := &DomainStatus{Tenant: tenant}
	if tenant.CustomDomain != nil {
		remote, err := s.provisioner.CheckStatus(ctx, *tenant.CustomDomain)
		if err != nil {
			zerolog.Ctx(ctx).Debug().Err(err).Str("domain", *tenant.CustomDomain).
				Msg("remote status poll failed")
		} else {
			status.Remote = remote
		}
	}
	return status, nil
}

// ApplyCallback applies a signature-verified webhook payload to the
// tenant's domain record as a single atomic update. Unknown tenants and
// stale tokens are logged and acknowledged so the remote service does not
// retry indefinitely; applying the same terminal payload twice is a no-op
// state-wise.
func (s *DomainService) ApplyCallback(ctx context.Context, cb model.DomainCallback) error {
	logger := zerolog.Ctx(ctx)

	switch {
	case model.TerminalDomainStatus(cb.Status):
	case cb.Status == model.DomainStatusPending:
		// Intermediate progress report, not a terminal transition.
		logger.Info().Str("tenant_id", cb.UserID).Str("domain", cb.Domain).
			Str("message", cb.Message).Msg("provisioning progress")
		return nil
	default:
		return fmt.Errorf("%w: status %q", ErrInvalidCallback, cb.Status)
	}

	tenant, err := s.tenants.GetByID(ctx, cb.UserID)
	if err != nil {
		if IsNotFound(err) {
			logger.Warn().Str("tenant_id", cb.UserID).Str("domain", cb.Domain).
				Msg("callback for unknown tenant acknowledged")
			return nil
		}
		return err
	}

	if cb.Token != "" && tenant.CustomDomainToken != nil && cb.Token != *tenant.CustomDomainToken {
		logger.Warn().Str("tenant_id", cb.UserID).Str("domain", cb.Domain).
			Msg("stale callback token ignored")
		return nil
	}

	var domainErr *string
	if cb.Error != "" {
		domainErr = &cb.Error
	}
	_, err = s.tenants.db.Exec(ctx,
		`UPDATE tenants
		 SET custom_domain = $1, custom_domain_status = $2, custom_domain_error = $3,
		     custom_domain_setup_at = $4, updated_at = now()
		 WHERE id = $5`,
		domain.Normalize(cb.Domain), cb.Status, domainErr, time.Now().UTC(), cb.UserID,
	)
	if err != nil {
		return fmt.Errorf("apply domain callback: %w", err)
	}

	logger.Info().Str("tenant_id", cb.UserID).Str("domain", cb.Domain).
		Str("status", cb.Status).Msg("domain status updated")
	return nil
}

// Health reports reachability of the remote provisioning service.
func (s *DomainService) Health(ctx context.Context) error {
	return s.provisioner.Health(ctx)
}
