package rest

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (h *Handler) SetupRoutes(engine *echo.Echo) {
	engine.GET("/health", h.echoHandler(h.HealthCheck))
	engine.GET("/version", h.echoHandler(h.Version))
	engine.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := engine.Group("/api", echo.WrapMiddleware(LoggerMiddleware))
	auth := echo.WrapMiddleware(h.GetAuthMiddleware())
	// v1 routes
	{
		apiV1 := api.Group("/v1")
		apiV1.POST("/auth/token", h.echoHandler(h.IssueToken))

		// snapshot and view routes
		apiV1.GET("/state", h.echoHandler(h.GetState))
		apiV1.GET("/processes", h.echoHandler(h.GetProcesses))
		apiV1.PUT("/view/filter", h.echoHandler(h.SetFilter))
		apiV1.PUT("/view/sort", h.echoHandler(h.SetSort))
		apiV1.GET("/ports/:port", h.echoHandlerWithParams(h.FindPort))
		apiV1.GET("/containers", h.echoHandler(h.GetContainers))

		// reconciliation routes
		apiV1.POST("/refresh", h.echoHandler(h.TriggerRefresh))
		apiV1.POST("/polling/start", h.echoHandler(h.StartPolling))
		apiV1.POST("/polling/stop", h.echoHandler(h.StopPolling))
		apiV1.PUT("/polling/interval", h.echoHandler(h.SetPollInterval))

		// selection routes
		apiV1.GET("/selection", h.echoHandler(h.GetSelection))
		apiV1.PUT("/selection", h.echoHandler(h.SetSelection))
		apiV1.POST("/selection/toggle", h.echoHandler(h.ToggleSelection))
		apiV1.POST("/selection/all", h.echoHandler(h.SelectAll))
		apiV1.DELETE("/selection", h.echoHandler(h.ClearSelection))

		// audit routes
		apiV1.GET("/audit", h.echoHandler(h.GetAuditLog))
		apiV1.DELETE("/audit", h.echoHandler(h.ClearAuditLog), auth)

		// favorites routes
		apiV1.GET("/favorites", h.echoHandler(h.GetFavorites))
		apiV1.PUT("/favorites/:port", h.echoHandlerWithParams(h.AddFavorite))
		apiV1.DELETE("/favorites/:port", h.echoHandlerWithParams(h.RemoveFavorite))

		// mutating action routes
		apiV1.POST("/processes/:pid/terminate", h.echoHandlerWithParams(h.TerminateProcess), auth)
		apiV1.POST("/containers/:id/actions", h.echoHandlerWithParams(h.ContainerAction), auth)
	}
}

func (h *Handler) echoHandler(handlerFunc func(w http.ResponseWriter, r *http.Request)) echo.HandlerFunc {
	return echo.WrapHandler(http.HandlerFunc(handlerFunc))
}

// echoHandlerWithParams wraps a handler function and injects path parameters into request context
func (h *Handler) echoHandlerWithParams(handlerFunc func(w http.ResponseWriter, r *http.Request)) echo.HandlerFunc {
	return func(c echo.Context) error {
		r := c.Request()
		for _, name := range c.ParamNames() {
			r = r.WithContext(context.WithValue(r.Context(), pathParamKey(name), c.Param(name)))
		}
		handlerFunc(c.Response().Writer, r)
		return nil
	}
}

// pathParamKey is a type for path parameter context keys
type pathParamKey string

// GetPathParam retrieves a path parameter from request context
func (h *Handler) GetPathParam(r *http.Request, name string) string {
	if val, ok := r.Context().Value(pathParamKey(name)).(string); ok {
		return val
	}
	return ""
}
