package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/halvard/biopage/internal/api/request"
	"github.com/halvard/biopage/internal/api/response"
	"github.com/halvard/biopage/internal/core"
)

// Domain handles the custom-domain lifecycle endpoints under a tenant.
type Domain struct {
	svc *core.DomainService
}

func NewDomain(svc *core.DomainService) *Domain {
	return &Domain{svc: svc}
}

// Submit claims a custom domain for the tenant and hands it to the
// provisioning service. Completion arrives later via webhook; the response
// reflects the pending claim.
func (h *Domain) Submit(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req request.SubmitDomain
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.svc.Submit(r.Context(), id, req.Domain)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusAccepted, result)
}

// Remove clears the tenant's custom domain.
func (h *Domain) Remove(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.Remove(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Status reports the persisted domain record plus a best-effort remote poll.
func (h *Domain) Status(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	status, err := h.svc.Status(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, status)
}
