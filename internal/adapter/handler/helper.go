package handler

import (
	stdErrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-digest/errors"
	"github.com/johnquangdev/meeting-digest/internal/adapter/presenter"
)

const indexTemplate = "index.html"

// page is the data passed to the upload page template
type page struct {
	Error   string
	Summary *presenter.SummaryView
}

// getRequestID tries to read X-Request-ID from the request or the response
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	if id := c.Request().Header.Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Response().Header().Get(echo.HeaderXRequestID)
}

// HandleSuccess renders the upload page with a summary
func HandleSuccess(logger *zap.Logger, c echo.Context, view *presenter.SummaryView) error {
	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
			zap.String("meeting_id", view.MeetingID),
		)
	}

	return c.Render(http.StatusOK, indexTemplate, page{Summary: view})
}

// HandleError renders the upload page with an error message.
// The page is always served with 200; AppErrors show their user message,
// anything else its raw text.
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	reqID := getRequestID(c)

	var appErr errors.AppError
	if !stdErrors.As(err, &appErr) {
		appErr = errors.ErrProcessingFailed(err)
	}

	if logger != nil {
		fields := []zap.Field{
			zap.String("request_id", reqID),
			zap.String("path", c.Path()),
			zap.String("app_code", appErr.Code.String()),
			// status a JSON client would have received; the page itself is always 200
			zap.Int("app_http_code", appErr.HTTPCode),
			zap.Error(err),
		}
		if appErr.IsValidation() {
			logger.Warn("http.response.rejected", fields...)
		} else {
			logger.Error("http.response.error", fields...)
		}
	}

	return c.Render(http.StatusOK, indexTemplate, page{Error: appErr.UserMessage()})
}
