package handler

import (
	"errors"
	"net/http"

	"github.com/halvard/biopage/internal/api/response"
	"github.com/halvard/biopage/internal/core"
	"github.com/halvard/biopage/internal/provision"
)

// writeServiceError maps service errors to HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case core.IsNotFound(err):
		response.WriteError(w, http.StatusNotFound, err.Error())
	case core.IsConflict(err):
		response.WriteError(w, http.StatusConflict, err.Error())
	case errors.Is(err, core.ErrInvalidDomain):
		response.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, provision.ErrUnreachable):
		response.WriteError(w, http.StatusServiceUnavailable,
			"provisioning service unreachable, try again shortly")
	default:
		response.WriteError(w, http.StatusInternalServerError, err.Error())
	}
}
