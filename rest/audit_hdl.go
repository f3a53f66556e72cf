package rest

import (
	"net/http"

	"github.com/portwarden/portwarden/domain"
)

type AuditLogResponse struct {
	Entries []*domain.AuditEntry `json:"entries"`
}

// GetAuditLog returns the audit trail newest-first, at most 100 entries.
func (h *Handler) GetAuditLog(w http.ResponseWriter, r *http.Request) {
	resp := AuditLogResponse{Entries: h.Svc.AuditEntries()}
	h.JSONResponse(r.Context(), w, http.StatusOK, NewSuccessResponse(&resp))
}

func (h *Handler) ClearAuditLog(w http.ResponseWriter, r *http.Request) {
	h.Svc.ClearAudit()
	h.JSONResponse(r.Context(), w, http.StatusOK, NewSuccessResponse[EmptyResponse](nil))
}
