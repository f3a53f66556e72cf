package rest

import (
	"net/http"
	"strconv"

	"github.com/portwarden/portwarden/domain"
)

type SetFilterRequest struct {
	SearchQuery         string `json:"searchQuery"`
	Protocol            string `json:"protocol"`
	State               string `json:"state"`
	IncludeNonListening bool   `json:"includeNonListening"`
}

func (h *Handler) SetFilter(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req SetFilterRequest
	if err := h.JSONBind(r, &req); err != nil {
		h.ErrorResponse(ctx, w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	spec := domain.FilterSpec{
		SearchQuery:         req.SearchQuery,
		Protocol:            domain.Protocol(req.Protocol),
		State:               domain.SocketState(req.State),
		IncludeNonListening: req.IncludeNonListening,
	}
	if spec.Protocol == "" {
		spec.Protocol = domain.ProtocolAll
	}
	if spec.State == "" {
		spec.State = domain.SocketStateAll
	}
	h.Svc.SetFilter(ctx, spec)
	h.JSONResponse(ctx, w, http.StatusOK, NewSuccessResponse[EmptyResponse](nil))
}

type SetSortRequest struct {
	Field     string `json:"field"`
	Direction string `json:"direction"`
}

func (h *Handler) SetSort(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req SetSortRequest
	if err := h.JSONBind(r, &req); err != nil {
		h.ErrorResponse(ctx, w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	spec := domain.SortSpec{
		Field:     domain.SortField(req.Field),
		Direction: domain.SortDirection(req.Direction),
	}
	switch spec.Field {
	case domain.SortByPID, domain.SortByName, domain.SortByPort, domain.SortByMemory, domain.SortByCPU, domain.SortByUser:
	default:
		h.ErrorResponse(ctx, w, http.StatusBadRequest, "Invalid sort field", nil)
		return
	}
	if spec.Direction != domain.SortAscending && spec.Direction != domain.SortDescending {
		h.ErrorResponse(ctx, w, http.StatusBadRequest, "Invalid sort direction", nil)
		return
	}
	h.Svc.SetSort(spec)
	h.JSONResponse(ctx, w, http.StatusOK, NewSuccessResponse[EmptyResponse](nil))
}

type FindPortResponse struct {
	Processes []*domain.ProcessRecord `json:"processes"`
}

func (h *Handler) FindPort(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	port, err := strconv.Atoi(h.GetPathParam(r, "port"))
	if err != nil {
		h.ErrorResponse(ctx, w, http.StatusBadRequest, "Invalid port", err)
		return
	}

	records, err := h.Svc.FindPort(ctx, port)
	if err != nil {
		h.HandleError(ctx, w, err)
		return
	}
	resp := FindPortResponse{Processes: records}
	h.JSONResponse(ctx, w, http.StatusOK, NewSuccessResponse(&resp))
}

type ContainerListResponse struct {
	Containers []*domain.ContainerInfo `json:"containers"`
}

func (h *Handler) GetContainers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	containers, err := h.Svc.Containers(ctx)
	if err != nil {
		h.HandleError(ctx, w, err)
		return
	}
	resp := ContainerListResponse{Containers: containers}
	h.JSONResponse(ctx, w, http.StatusOK, NewSuccessResponse(&resp))
}
