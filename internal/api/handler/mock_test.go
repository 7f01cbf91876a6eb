package handler

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/mock"

	"github.com/halvard/biopage/internal/domain"
	"github.com/halvard/biopage/internal/model"
	"github.com/halvard/biopage/internal/provision"
)

// handlerMockDB implements core.DB for handler tests.
type handlerMockDB struct {
	mock.Mock
}

func (m *handlerMockDB) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	args := m.Called(ctx, sql, arguments)
	return args.Get(0).(pgconn.CommandTag), args.Error(1)
}

func (m *handlerMockDB) Query(ctx context.Context, sql string, arguments ...any) (pgx.Rows, error) {
	args := m.Called(ctx, sql, arguments)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Rows), args.Error(1)
}

func (m *handlerMockDB) QueryRow(ctx context.Context, sql string, arguments ...any) pgx.Row {
	args := m.Called(ctx, sql, arguments)
	return args.Get(0).(pgx.Row)
}

// handlerMockRow implements pgx.Row for handler tests.
type handlerMockRow struct {
	scanFunc func(dest ...any) error
}

func (m *handlerMockRow) Scan(dest ...any) error {
	return m.scanFunc(dest...)
}

// tenantRow scans a tenant in column order.
func tenantRow(t model.Tenant) *handlerMockRow {
	return &handlerMockRow{scanFunc: func(dest ...any) error {
		*(dest[0].(*string)) = t.ID
		*(dest[1].(*string)) = t.Username
		*(dest[2].(*string)) = t.Email
		*(dest[3].(**string)) = t.CustomDomain
		*(dest[4].(*string)) = t.CustomDomainStatus
		*(dest[5].(**string)) = t.CustomDomainError
		*(dest[6].(**time.Time)) = t.CustomDomainSetupAt
		*(dest[7].(**string)) = t.CustomDomainToken
		*(dest[8].(*time.Time)) = t.CreatedAt
		*(dest[9].(*time.Time)) = t.UpdatedAt
		return nil
	}}
}

// stubProvisioner implements core.Provisioner with function fields.
type stubProvisioner struct {
	setupFn  func(ctx context.Context, domain, tenantID, webhookURL, token string) (*provision.Ack, error)
	statusFn func(ctx context.Context, domain string) (*provision.Ack, error)
	healthFn func(ctx context.Context) error
}

func (s *stubProvisioner) SetupDomain(ctx context.Context, d, tenantID, webhookURL, token string) (*provision.Ack, error) {
	if s.setupFn == nil {
		return &provision.Ack{Status: "pending", Domain: d}, nil
	}
	return s.setupFn(ctx, d, tenantID, webhookURL, token)
}

func (s *stubProvisioner) CheckStatus(ctx context.Context, d string) (*provision.Ack, error) {
	if s.statusFn == nil {
		return &provision.Ack{Status: "pending", Domain: d}, nil
	}
	return s.statusFn(ctx, d)
}

func (s *stubProvisioner) Health(ctx context.Context) error {
	if s.healthFn == nil {
		return nil
	}
	return s.healthFn(ctx)
}

// stubDNSChecker implements core.DNSChecker.
type stubDNSChecker struct {
	check *domain.ARecordCheck
	err   error
}

func (s *stubDNSChecker) CheckARecord(ctx context.Context, d string) (*domain.ARecordCheck, error) {
	return s.check, s.err
}
