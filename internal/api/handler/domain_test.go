package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/halvard/biopage/internal/core"
	domainpkg "github.com/halvard/biopage/internal/domain"
	"github.com/halvard/biopage/internal/model"
	"github.com/halvard/biopage/internal/provision"
)

func newDomainHandler(db core.DB, prov core.Provisioner) *Domain {
	if prov == nil {
		prov = &stubProvisioner{}
	}
	tenants := core.NewTenantService(db)
	svc := core.NewDomainService(tenants, prov, &stubDNSChecker{}, domainpkg.NewBlacklist("biopage.to"),
		"https://api.biopage.to/webhooks/domain")
	return NewDomain(svc)
}

// --- Submit ---

func TestDomainSubmit_EmptyID(t *testing.T) {
	h := newDomainHandler(nil, nil)
	rec := httptest.NewRecorder()
	r := withChiURLParam(newRequest(http.MethodPost, "/tenants//domain", nil), "id", "")

	h.Submit(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDomainSubmit_MissingDomain(t *testing.T) {
	h := newDomainHandler(nil, nil)
	rec := httptest.NewRecorder()
	r := withChiURLParam(newRequest(http.MethodPost, "/tenants/"+validID+"/domain",
		map[string]any{}), "id", validID)

	h.Submit(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeErrorResponse(rec)
	assert.Contains(t, body["error"], "validation error")
}

func TestDomainSubmit_BlacklistedDomain(t *testing.T) {
	h := newDomainHandler(nil, nil)
	rec := httptest.NewRecorder()
	r := withChiURLParam(newRequest(http.MethodPost, "/tenants/"+validID+"/domain",
		map[string]any{"domain": "evil.biopage.to"}), "id", validID)

	h.Submit(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeErrorResponse(rec)
	assert.Contains(t, body["error"], "invalid domain")
}

func TestDomainSubmit_Success(t *testing.T) {
	db := &handlerMockDB{}
	db.On("QueryRow", mock.Anything, mock.AnythingOfType("string"), []any{validID}).
		Return(tenantRow(model.Tenant{ID: validID, Username: "alice", CustomDomainStatus: model.DomainStatusNone}))
	db.On("Exec", mock.Anything, mock.AnythingOfType("string"), mock.Anything).
		Return(pgconn.NewCommandTag("UPDATE 1"), nil)

	h := newDomainHandler(db, nil)
	rec := httptest.NewRecorder()
	r := withChiURLParam(newRequest(http.MethodPost, "/tenants/"+validID+"/domain",
		map[string]any{"domain": "links.example.dev"}), "id", validID)

	h.Submit(rec, r)

	require.Equal(t, http.StatusAccepted, rec.Code)
	var result core.SubmitResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "pending", result.Ack.Status)
}

func TestDomainSubmit_Conflict(t *testing.T) {
	db := &handlerMockDB{}
	db.On("QueryRow", mock.Anything, mock.AnythingOfType("string"), mock.Anything).
		Return(tenantRow(model.Tenant{ID: validID, Username: "alice", CustomDomainStatus: model.DomainStatusNone}))
	db.On("Exec", mock.Anything, mock.AnythingOfType("string"), mock.Anything).
		Return(pgconn.CommandTag{}, &pgconn.PgError{Code: "23505"})

	h := newDomainHandler(db, nil)
	rec := httptest.NewRecorder()
	r := withChiURLParam(newRequest(http.MethodPost, "/tenants/"+validID+"/domain",
		map[string]any{"domain": "links.example.dev"}), "id", validID)

	h.Submit(rec, r)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestDomainSubmit_ProvisionerUnreachable(t *testing.T) {
	db := &handlerMockDB{}
	db.On("QueryRow", mock.Anything, mock.AnythingOfType("string"), mock.Anything).
		Return(tenantRow(model.Tenant{ID: validID, Username: "alice", CustomDomainStatus: model.DomainStatusNone}))
	db.On("Exec", mock.Anything, mock.AnythingOfType("string"), mock.Anything).
		Return(pgconn.NewCommandTag("UPDATE 1"), nil)

	prov := &stubProvisioner{
		setupFn: func(ctx context.Context, d, tenantID, webhookURL, token string) (*provision.Ack, error) {
			return nil, fmt.Errorf("post setup: %w", provision.ErrUnreachable)
		},
	}

	h := newDomainHandler(db, prov)
	rec := httptest.NewRecorder()
	r := withChiURLParam(newRequest(http.MethodPost, "/tenants/"+validID+"/domain",
		map[string]any{"domain": "links.example.dev"}), "id", validID)

	h.Submit(rec, r)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	body := decodeErrorResponse(rec)
	assert.Contains(t, body["error"], "try again shortly")
}

// --- Remove ---

func TestDomainRemove_Success(t *testing.T) {
	db := &handlerMockDB{}
	db.On("Exec", mock.Anything, mock.AnythingOfType("string"), mock.Anything).
		Return(pgconn.NewCommandTag("UPDATE 1"), nil)

	h := newDomainHandler(db, nil)
	rec := httptest.NewRecorder()
	r := withChiURLParam(newRequest(http.MethodDelete, "/tenants/"+validID+"/domain", nil), "id", validID)

	h.Remove(rec, r)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestDomainRemove_TenantMissing(t *testing.T) {
	db := &handlerMockDB{}
	db.On("Exec", mock.Anything, mock.AnythingOfType("string"), mock.Anything).
		Return(pgconn.NewCommandTag("UPDATE 0"), nil)

	h := newDomainHandler(db, nil)
	rec := httptest.NewRecorder()
	r := withChiURLParam(newRequest(http.MethodDelete, "/tenants/"+validID+"/domain", nil), "id", validID)

	h.Remove(rec, r)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// --- Status ---

func TestDomainStatus_EmptyID(t *testing.T) {
	h := newDomainHandler(nil, nil)
	rec := httptest.NewRecorder()
	r := withChiURLParam(newRequest(http.MethodGet, "/tenants//domain", nil), "id", "")

	h.Status(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDomainStatus_Success(t *testing.T) {
	d := "links.example.dev"
	db := &handlerMockDB{}
	db.On("QueryRow", mock.Anything, mock.AnythingOfType("string"), mock.Anything).
		Return(tenantRow(model.Tenant{ID: validID, Username: "alice", CustomDomain: &d,
			CustomDomainStatus: model.DomainStatusPending}))

	h := newDomainHandler(db, nil)
	rec := httptest.NewRecorder()
	r := withChiURLParam(newRequest(http.MethodGet, "/tenants/"+validID+"/domain", nil), "id", validID)

	h.Status(rec, r)

	require.Equal(t, http.StatusOK, rec.Code)
	var status core.DomainStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, model.DomainStatusPending, status.Tenant.CustomDomainStatus)
	require.NotNil(t, status.Remote)
}
