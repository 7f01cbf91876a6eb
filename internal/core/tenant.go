package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/halvard/biopage/internal/domain"
	"github.com/halvard/biopage/internal/model"
)

const tenantColumns = `id, username, email, custom_domain, custom_domain_status,
	custom_domain_error, custom_domain_setup_at, custom_domain_token, created_at, updated_at`

// TenantService is the directory over the tenant store: lookups by ID,
// username (platform subdomain label), and custom domain, plus the
// conditional custom-domain writes.
type TenantService struct {
	db DB
}

func NewTenantService(db DB) *TenantService {
	return &TenantService{db: db}
}

func (s *TenantService) Create(ctx context.Context, tenant *model.Tenant) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO tenants (id, username, email, custom_domain_status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		tenant.ID, tenant.Username, tenant.Email, tenant.CustomDomainStatus,
		tenant.CreatedAt, tenant.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("username %s: %w", tenant.Username, ErrConflict)
		}
		return fmt.Errorf("insert tenant: %w", err)
	}
	return nil
}

func (s *TenantService) GetByID(ctx context.Context, id string) (*model.Tenant, error) {
	return s.getWhere(ctx, "id = $1", id)
}

func (s *TenantService) GetByUsername(ctx context.Context, username string) (*model.Tenant, error) {
	return s.getWhere(ctx, "username = $1", username)
}

// GetByCustomDomain resolves a tenant from a normalized custom domain.
func (s *TenantService) GetByCustomDomain(ctx context.Context, d string) (*model.Tenant, error) {
	return s.getWhere(ctx, "custom_domain = $1", domain.Normalize(d))
}

func (s *TenantService) getWhere(ctx context.Context, where string, arg any) (*model.Tenant, error) {
	var t model.Tenant
	err := s.db.QueryRow(ctx,
		`SELECT `+tenantColumns+` FROM tenants WHERE `+where, arg,
	).Scan(&t.ID, &t.Username, &t.Email, &t.CustomDomain, &t.CustomDomainStatus,
		&t.CustomDomainError, &t.CustomDomainSetupAt, &t.CustomDomainToken,
		&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("tenant: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("get tenant: %w", err)
	}
	return &t, nil
}

func (s *TenantService) List(ctx context.Context, limit int, cursor string) ([]model.Tenant, bool, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants`
	args := []any{}
	argIdx := 1

	if cursor != "" {
		query += fmt.Sprintf(` WHERE id > $%d`, argIdx)
		args = append(args, cursor)
		argIdx++
	}

	query += fmt.Sprintf(` ORDER BY id LIMIT $%d`, argIdx)
	args = append(args, limit+1)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, false, fmt.Errorf("list tenants: %w", err)
	}
	defer rows.Close()

	var tenants []model.Tenant
	for rows.Next() {
		var t model.Tenant
		if err := rows.Scan(&t.ID, &t.Username, &t.Email, &t.CustomDomain, &t.CustomDomainStatus,
			&t.CustomDomainError, &t.CustomDomainSetupAt, &t.CustomDomainToken,
			&t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, false, fmt.Errorf("scan tenant: %w", err)
		}
		tenants = append(tenants, t)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterate tenants: %w", err)
	}

	hasMore := len(tenants) > limit
	if hasMore {
		tenants = tenants[:limit]
	}
	return tenants, hasMore, nil
}

// SetCustomDomain claims a domain for a tenant and marks it pending. The
// unique index on custom_domain makes the claim a conditional write: losing
// to another tenant surfaces as ErrConflict and leaves the winner's record
// untouched.
func (s *TenantService) SetCustomDomain(ctx context.Context, tenantID, d, token string) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE tenants
		 SET custom_domain = $1, custom_domain_status = $2, custom_domain_error = NULL,
		     custom_domain_setup_at = NULL, custom_domain_token = $3, updated_at = now()
		 WHERE id = $4`,
		domain.Normalize(d), model.DomainStatusPending, token, tenantID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("domain %s already claimed: %w", d, ErrConflict)
		}
		return fmt.Errorf("claim custom domain: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("tenant %s: %w", tenantID, ErrNotFound)
	}
	return nil
}

// RestoreCustomDomain writes a previously read domain record back onto the
// tenant, undoing a claim that could not be handed off.
func (s *TenantService) RestoreCustomDomain(ctx context.Context, tenantID string, prior *model.Tenant) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE tenants
		 SET custom_domain = $1, custom_domain_status = $2, custom_domain_error = $3,
		     custom_domain_setup_at = $4, custom_domain_token = $5, updated_at = now()
		 WHERE id = $6`,
		prior.CustomDomain, prior.CustomDomainStatus, prior.CustomDomainError,
		prior.CustomDomainSetupAt, prior.CustomDomainToken, tenantID,
	)
	if err != nil {
		return fmt.Errorf("restore custom domain: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("tenant %s: %w", tenantID, ErrNotFound)
	}
	return nil
}

// ClearCustomDomain resets the tenant's domain state to none. It carries no
// guarantee about in-flight provisioning on the remote side.
func (s *TenantService) ClearCustomDomain(ctx context.Context, tenantID string) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE tenants
		 SET custom_domain = NULL, custom_domain_status = $1, custom_domain_error = NULL,
		     custom_domain_setup_at = NULL, custom_domain_token = NULL, updated_at = now()
		 WHERE id = $2`,
		model.DomainStatusNone, tenantID,
	)
	if err != nil {
		return fmt.Errorf("clear custom domain: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("tenant %s: %w", tenantID, ErrNotFound)
	}
	return nil
}

// isUniqueViolation recognizes Postgres error 23505.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
