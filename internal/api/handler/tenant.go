package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/halvard/biopage/internal/api/request"
	"github.com/halvard/biopage/internal/api/response"
	"github.com/halvard/biopage/internal/core"
	"github.com/halvard/biopage/internal/model"
	"github.com/halvard/biopage/internal/platform"
)

type Tenant struct {
	svc  *core.TenantService
	apex string
}

func NewTenant(svc *core.TenantService, apexDomain string) *Tenant {
	return &Tenant{svc: svc, apex: apexDomain}
}

// tenantResponse decorates a tenant with its derived addresses.
type tenantResponse struct {
	*model.Tenant
	Hostname   string `json:"hostname"`
	ProfileURL string `json:"profile_url"`
}

func (h *Tenant) respond(t *model.Tenant) tenantResponse {
	return tenantResponse{
		Tenant:     t,
		Hostname:   platform.SubdomainHostname(h.apex, t.Username),
		ProfileURL: platform.CanonicalProfileURL(h.apex, t.Username),
	}
}

// List returns tenants with cursor-based pagination.
func (h *Tenant) List(w http.ResponseWriter, r *http.Request) {
	pg := request.ParsePagination(r)

	tenants, hasMore, err := h.svc.List(r.Context(), pg.Limit, pg.Cursor)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	var nextCursor string
	if hasMore && len(tenants) > 0 {
		nextCursor = tenants[len(tenants)-1].ID
	}
	response.WritePaginated(w, http.StatusOK, tenants, nextCursor, hasMore)
}

// Create registers a tenant. The username becomes the tenant's platform
// subdomain label, so it must be unique.
func (h *Tenant) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateTenant
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	now := time.Now()
	tenant := &model.Tenant{
		ID:                 platform.NewID(),
		Username:           req.Username,
		Email:              req.Email,
		CustomDomainStatus: model.DomainStatusNone,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := h.svc.Create(r.Context(), tenant); err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, h.respond(tenant))
}

// Get retrieves a tenant by ID.
func (h *Tenant) Get(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	tenant, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, h.respond(tenant))
}
