package handler

import (
	stdErrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-digest/errors"
	"github.com/johnquangdev/meeting-digest/internal/adapter/presenter"
	"github.com/johnquangdev/meeting-digest/internal/usecase/digest"
)

const fileField = "file"

// Upload serves the upload form and runs submitted files through the pipeline
type Upload struct {
	service digest.Service
	logger  *zap.Logger
}

// NewUpload creates a new upload handler
func NewUpload(service digest.Service, logger *zap.Logger) *Upload {
	return &Upload{service: service, logger: logger}
}

// Index renders the empty form
func (h *Upload) Index(c echo.Context) error {
	return c.Render(http.StatusOK, indexTemplate, page{})
}

// Submit handles the multipart form posted to "/"
func (h *Upload) Submit(c echo.Context) error {
	fh, err := c.FormFile(fileField)
	if err != nil {
		// left to the router's error handler, which knows the configured limit
		var he *echo.HTTPError
		if stdErrors.As(err, &he) && he.Code == http.StatusRequestEntityTooLarge {
			return he
		}
		if stdErrors.Is(err, http.ErrNotMultipart) {
			return HandleError(h.logger, c, errors.ErrNoFileUploaded())
		}
		if !stdErrors.Is(err, http.ErrMissingFile) {
			return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
		}
		// a file part with an empty filename is parsed as a plain value
		if form, ferr := c.MultipartForm(); ferr == nil && form != nil {
			if _, ok := form.Value[fileField]; ok {
				return HandleError(h.logger, c, errors.ErrNoFileSelected())
			}
		}
		return HandleError(h.logger, c, errors.ErrNoFileUploaded())
	}

	src, err := fh.Open()
	if err != nil {
		return HandleError(h.logger, c, errors.ErrStorageFailed("open upload", err))
	}
	defer src.Close()

	result, err := h.service.Process(c.Request().Context(), digest.Upload{
		Filename: fh.Filename,
		Body:     src,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, presenter.ToSummaryView(result))
}
