package rest

import (
	"net/http"
	"strconv"
)

type FavoritesResponse struct {
	Ports []uint16 `json:"ports"`
}

func (h *Handler) GetFavorites(w http.ResponseWriter, r *http.Request) {
	resp := FavoritesResponse{Ports: h.Svc.Favorites()}
	h.JSONResponse(r.Context(), w, http.StatusOK, NewSuccessResponse(&resp))
}

func (h *Handler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	port, ok := h.portParam(w, r)
	if !ok {
		return
	}
	if err := h.Svc.AddFavorite(ctx, port); err != nil {
		h.HandleError(ctx, w, err)
		return
	}
	h.JSONResponse(ctx, w, http.StatusOK, NewSuccessResponse[EmptyResponse](nil))
}

func (h *Handler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	port, ok := h.portParam(w, r)
	if !ok {
		return
	}
	if err := h.Svc.RemoveFavorite(ctx, port); err != nil {
		h.HandleError(ctx, w, err)
		return
	}
	h.JSONResponse(ctx, w, http.StatusOK, NewSuccessResponse[EmptyResponse](nil))
}

func (h *Handler) portParam(w http.ResponseWriter, r *http.Request) (uint16, bool) {
	ctx := r.Context()
	port, err := strconv.Atoi(h.GetPathParam(r, "port"))
	if err != nil || port < 1 || port > 65535 {
		h.ErrorResponse(ctx, w, http.StatusBadRequest, "Invalid port", err)
		return 0, false
	}
	return uint16(port), true
}
