package rest

import (
	"net/http"
	"strconv"

	"github.com/portwarden/portwarden/domain"
)

type TerminateProcessRequest struct {
	Force bool `json:"force"`
}

func (h *Handler) TerminateProcess(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	pid, err := strconv.ParseInt(h.GetPathParam(r, "pid"), 10, 32)
	if err != nil || pid <= 0 {
		h.ErrorResponse(ctx, w, http.StatusBadRequest, "Invalid pid", err)
		return
	}

	var req TerminateProcessRequest
	if err := h.JSONBind(r, &req); err != nil {
		h.ErrorResponse(ctx, w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	result := h.Svc.TerminateProcess(ctx, int32(pid), req.Force)
	h.JSONResponse(ctx, w, http.StatusOK, NewSuccessResponse(result))
}

type ContainerActionRequest struct {
	Action string `json:"action"`
}

func (h *Handler) ContainerAction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	containerID := h.GetPathParam(r, "id")
	if containerID == "" {
		h.ErrorResponse(ctx, w, http.StatusBadRequest, "Missing container id", nil)
		return
	}

	var req ContainerActionRequest
	if err := h.JSONBind(r, &req); err != nil {
		h.ErrorResponse(ctx, w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	action := domain.ContainerAction(req.Action)
	if !action.Valid() {
		h.ErrorResponse(ctx, w, http.StatusBadRequest, "Invalid container action", nil)
		return
	}

	result := h.Svc.ContainerAction(ctx, containerID, action)
	h.JSONResponse(ctx, w, http.StatusOK, NewSuccessResponse(result))
}
