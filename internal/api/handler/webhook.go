package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/halvard/biopage/internal/api/response"
	"github.com/halvard/biopage/internal/core"
	"github.com/halvard/biopage/internal/model"
	"github.com/halvard/biopage/internal/provision"
)

const maxWebhookBody = 1 << 20 // 1 MiB

// Webhook receives domain provisioning callbacks from the remote service.
type Webhook struct {
	svc    *core.DomainService
	secret string
}

func NewWebhook(svc *core.DomainService, secret string) *Webhook {
	return &Webhook{svc: svc, secret: secret}
}

// ReceiveDomain verifies the HMAC signature over the raw body before any
// parsing, then applies the callback.
func (h *Webhook) ReceiveDomain(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, "unreadable body")
		return
	}

	sig := r.Header.Get(provision.SignatureHeader)
	if !provision.Verify(h.secret, body, sig) {
		zerolog.Ctx(r.Context()).Warn().Str("remote_addr", r.RemoteAddr).
			Msg("webhook signature rejected")
		response.WriteError(w, http.StatusUnauthorized, "invalid signature")
		return
	}

	var cb model.DomainCallback
	if err := json.Unmarshal(body, &cb); err != nil {
		response.WriteError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if err := h.svc.ApplyCallback(r.Context(), cb); err != nil {
		if errors.Is(err, core.ErrInvalidCallback) {
			response.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeServiceError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, map[string]bool{"received": true})
}
