package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/nunu-app/marketplace-api/internal/api/metrics"
	"github.com/nunu-app/marketplace-api/internal/core/ports"
)

const msgNoFile = "no file uploaded"

type UploadHandler struct {
	service ports.UploadService
	log     zerolog.Logger
}

func NewUploadHandler(service ports.UploadService, log zerolog.Logger) *UploadHandler {
	return &UploadHandler{service: service, log: log}
}

type uploadResponse struct {
	URL string `json:"url"`
}

// Upload relays the multipart "file" field to the blob store.
//
// @Summary      Upload a file
// @Tags         upload
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "File to upload"
// @Success      200   {object}  uploadResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /upload [post]
func (h *UploadHandler) Upload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		metrics.UploadsTotal.WithLabelValues(metrics.ResultInvalid).Inc()
		return c.JSON(http.StatusBadRequest, errorResponse{Error: msgNoFile})
	}

	f, err := fh.Open()
	if err != nil {
		metrics.UploadsTotal.WithLabelValues(metrics.ResultError).Inc()
		return respondError(c, h.log, err)
	}
	defer f.Close()

	url, err := h.service.Upload(c.Request().Context(), fh.Filename, f)
	if err != nil {
		metrics.UploadsTotal.WithLabelValues(metrics.ResultError).Inc()
		return respondError(c, h.log, err)
	}

	metrics.UploadsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	return c.JSON(http.StatusOK, uploadResponse{URL: url})
}
