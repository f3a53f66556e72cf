package rest

import "net/http"

// TokenRequest carries the operator password.
type TokenRequest struct {
	Password string `json:"password"`
}

// TokenResponse carries a signed session token.
type TokenResponse struct {
	Token     string `json:"token,omitempty"`
	ExpiredAt int64  `json:"expired_at,omitempty"`
}

func (h *Handler) IssueToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req TokenRequest
	if err := h.JSONBind(r, &req); err != nil {
		h.ErrorResponse(ctx, w, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	token, expiredAt, err := h.Svc.IssueToken(ctx, req.Password)
	if err != nil {
		h.ErrorResponse(ctx, w, http.StatusUnauthorized, "Password verification failed", err)
		return
	}

	resp := TokenResponse{
		Token:     token,
		ExpiredAt: expiredAt,
	}
	h.JSONResponse(ctx, w, http.StatusOK, NewSuccessResponse(&resp))
}
