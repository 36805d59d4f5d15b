package handler

import (
	"context"
	stdErrors "errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/meeting-digest/errors"
	"github.com/johnquangdev/meeting-digest/pkg/config"
)

// Pinger reports whether a dependency is reachable
type Pinger func(ctx context.Context) error

// Router holds all handlers
type Router struct {
	cfg           *config.Config
	uploadHandler *Upload
	dbPing        Pinger
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, uploadHandler *Upload, dbPing Pinger) *Router {
	return &Router{
		cfg:           cfg,
		uploadHandler: uploadHandler,
		dbPing:        dbPing,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.HTTPErrorHandler = rt.pageErrorHandler(e.HTTPErrorHandler)

	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	e.GET("/", rt.uploadHandler.Index)
	e.POST("/", rt.uploadHandler.Submit)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	body := map[string]interface{}{
		"status":      "ok",
		"time":        time.Now().UTC().Format(time.RFC3339),
		"environment": rt.cfg.Server.Environment,
	}

	if rt.dbPing != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := rt.dbPing(ctx); err != nil {
			body["status"] = "degraded"
			body["database"] = err.Error()
			return c.JSON(http.StatusServiceUnavailable, body)
		}
		body["database"] = "ok"
	}

	return c.JSON(http.StatusOK, body)
}

// pageErrorHandler renders errors raised outside the upload handler, such as
// the body limit, on the form page. Other paths keep the fallback handler.
func (rt *Router) pageErrorHandler(fallback echo.HTTPErrorHandler) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed || c.Request().URL.Path != "/" {
			fallback(err, c)
			return
		}

		var he *echo.HTTPError
		if stdErrors.As(err, &he) && he.Code == http.StatusRequestEntityTooLarge {
			err = errors.ErrFileTooLarge(rt.cfg.Server.MaxUploadSize)
		}
		if rerr := HandleError(rt.uploadHandler.logger, c, err); rerr != nil {
			fallback(rerr, c)
		}
	}
}
