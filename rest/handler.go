package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/portwarden/portwarden/domain"
	"github.com/portwarden/portwarden/errs"
	"github.com/portwarden/portwarden/pkg/logger"
	"go.uber.org/fx"
)

// ErrorResponse represents error response structure
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// SuccessResponse represents the success response structure
type SuccessResponse[T any] struct {
	Success   bool   `json:"success"`
	Data      *T     `json:"data,omitempty"`
	Timestamp string `json:"timestamp"`
}

type EmptyResponse struct{}

func NewSuccessResponse[T any](data *T) SuccessResponse[T] {
	return SuccessResponse[T]{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

type Params struct {
	fx.In
	Svc domain.Service
}

func NewHandler(params Params) (*Handler, error) {
	return &Handler{
		Svc: params.Svc,
	}, nil
}

type Handler struct {
	Svc domain.Service
}

func (h *Handler) JSONResponse(ctx context.Context, w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		logger.Logger(ctx).Error().Err(err).Msg("Failed to encode JSON response")
		http.Error(w, "Failed to encode JSON response", http.StatusInternalServerError)
	}
}

func (h *Handler) JSONBind(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	return decoder.Decode(dst)
}

func (h *Handler) ErrorResponse(ctx context.Context, w http.ResponseWriter, status int, errMsg string, err error) {
	if err != nil {
		logger.Logger(ctx).Warn().Err(err).Msg(errMsg)
	}
	resp := ErrorResponse{
		Success: false,
		Error:   errMsg,
	}
	h.JSONResponse(ctx, w, status, resp)
}

// HandleError maps known error shapes to HTTP statuses.
func (h *Handler) HandleError(ctx context.Context, w http.ResponseWriter, err error) {
	if httpErr, ok := errs.IsHTTPStatusError(err); ok {
		h.ErrorResponse(ctx, w, httpErr.StatusCode, httpErr.Message, httpErr.OriginalErr)
		return
	}
	if errors.Is(err, domain.ErrPortOutOfRange) {
		h.ErrorResponse(ctx, w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	var backendErr *domain.BackendError
	if errors.As(err, &backendErr) {
		h.ErrorResponse(ctx, w, http.StatusBadGateway, backendErr.Error(), nil)
		return
	}
	h.ErrorResponse(ctx, w, http.StatusInternalServerError, err.Error(), err)
}

func (h *Handler) Version(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"service": "portwarden",
		"version": "1.0.0",
	}
	h.JSONResponse(r.Context(), w, http.StatusOK, response)
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "portwarden",
	}
	h.JSONResponse(r.Context(), w, http.StatusOK, response)
}
