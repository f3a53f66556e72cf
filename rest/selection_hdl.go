package rest

import "net/http"

type SelectionResponse struct {
	PIDs []int32 `json:"pids"`
}

func (h *Handler) GetSelection(w http.ResponseWriter, r *http.Request) {
	resp := SelectionResponse{PIDs: h.Svc.Selection()}
	h.JSONResponse(r.Context(), w, http.StatusOK, NewSuccessResponse(&resp))
}

type SetSelectionRequest struct {
	// PID replaces the whole selection; null clears it.
	PID *int32 `json:"pid"`
}

func (h *Handler) SetSelection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req SetSelectionRequest
	if err := h.JSONBind(r, &req); err != nil {
		h.ErrorResponse(ctx, w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	h.Svc.Select(req.PID)
	h.JSONResponse(ctx, w, http.StatusOK, NewSuccessResponse[EmptyResponse](nil))
}

type ToggleSelectionRequest struct {
	PID int32 `json:"pid"`
}

func (h *Handler) ToggleSelection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req ToggleSelectionRequest
	if err := h.JSONBind(r, &req); err != nil {
		h.ErrorResponse(ctx, w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	h.Svc.ToggleSelect(req.PID)
	h.JSONResponse(ctx, w, http.StatusOK, NewSuccessResponse[EmptyResponse](nil))
}

func (h *Handler) SelectAll(w http.ResponseWriter, r *http.Request) {
	h.Svc.SelectAll()
	h.JSONResponse(r.Context(), w, http.StatusOK, NewSuccessResponse[EmptyResponse](nil))
}

func (h *Handler) ClearSelection(w http.ResponseWriter, r *http.Request) {
	h.Svc.ClearSelection()
	h.JSONResponse(r.Context(), w, http.StatusOK, NewSuccessResponse[EmptyResponse](nil))
}
