package rest

import (
	"net/http"
	"time"

	"github.com/portwarden/portwarden/domain"
)

// StateResponse is the snapshot metadata plus reconciliation status,
// without the full process list.
type StateResponse struct {
	Initialized      bool              `json:"initialized"`
	TotalConnections int               `json:"totalConnections"`
	ListeningPorts   int               `json:"listeningPorts"`
	ProcessCount     int               `json:"processCount"`
	BackendAvailable bool              `json:"backendAvailable"`
	CapturedAt       *time.Time        `json:"capturedAt,omitempty"`
	Sync             domain.SyncStatus `json:"sync"`
}

func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	resp := StateResponse{Sync: h.Svc.Status()}
	if snap, ok := h.Svc.Snapshot(); ok {
		resp.Initialized = true
		resp.TotalConnections = snap.TotalConnections
		resp.ListeningPorts = snap.ListeningPorts
		resp.ProcessCount = len(snap.Processes)
		resp.BackendAvailable = snap.BackendAvailable
		capturedAt := snap.CapturedAt
		resp.CapturedAt = &capturedAt
	}
	h.JSONResponse(ctx, w, http.StatusOK, NewSuccessResponse(&resp))
}

// ProcessListResponse carries the view pipeline's projection.
type ProcessListResponse struct {
	Processes []*domain.ProcessRecord `json:"processes"`
	Filter    domain.FilterSpec       `json:"filter"`
	Sort      domain.SortSpec         `json:"sort"`
}

func (h *Handler) GetProcesses(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	resp := ProcessListResponse{
		Processes: h.Svc.View(),
		Filter:    h.Svc.Filter(),
		Sort:      h.Svc.Sort(),
	}
	h.JSONResponse(ctx, w, http.StatusOK, NewSuccessResponse(&resp))
}

func (h *Handler) TriggerRefresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.Svc.Refresh(ctx); err != nil {
		h.HandleError(ctx, w, err)
		return
	}
	h.JSONResponse(ctx, w, http.StatusOK, NewSuccessResponse[EmptyResponse](nil))
}

func (h *Handler) StartPolling(w http.ResponseWriter, r *http.Request) {
	h.Svc.StartPolling()
	h.JSONResponse(r.Context(), w, http.StatusOK, NewSuccessResponse[EmptyResponse](nil))
}

func (h *Handler) StopPolling(w http.ResponseWriter, r *http.Request) {
	h.Svc.StopPolling()
	h.JSONResponse(r.Context(), w, http.StatusOK, NewSuccessResponse[EmptyResponse](nil))
}

type SetPollIntervalRequest struct {
	IntervalMsec int64 `json:"intervalMsec"`
}

func (h *Handler) SetPollInterval(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req SetPollIntervalRequest
	if err := h.JSONBind(r, &req); err != nil {
		h.ErrorResponse(ctx, w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.IntervalMsec <= 0 {
		h.ErrorResponse(ctx, w, http.StatusBadRequest, "intervalMsec must be positive", nil)
		return
	}
	h.Svc.SetPollInterval(req.IntervalMsec)
	h.JSONResponse(ctx, w, http.StatusOK, NewSuccessResponse[EmptyResponse](nil))
}
