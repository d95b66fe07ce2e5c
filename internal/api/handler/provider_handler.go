package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/nunu-app/marketplace-api/internal/api/metrics"
	"github.com/nunu-app/marketplace-api/internal/core/ports"
	"github.com/nunu-app/marketplace-api/internal/core/service"
)

type ProviderHandler struct {
	service ports.DirectoryService
	log     zerolog.Logger
}

func NewProviderHandler(service ports.DirectoryService, log zerolog.Logger) *ProviderHandler {
	return &ProviderHandler{service: service, log: log}
}

// List returns provider profiles, newest first.
//
// @Summary      List providers
// @Tags         providers
// @Produce      json
// @Param        city      query     string  false  "Case-insensitive city substring; \"Brasil\" means any city"
// @Param        category  query     string  false  "Case-insensitive category substring"
// @Success      200       {array}   domain.ProviderListing
// @Failure      500       {object}  errorResponse
// @Router       /providers [get]
func (h *ProviderHandler) List(c echo.Context) error {
	q := ports.DirectoryQuery{
		City:     c.QueryParam("city"),
		Category: c.QueryParam("category"),
	}

	listings, err := h.service.ListProviders(c.Request().Context(), q)
	if err != nil {
		return respondError(c, h.log, err)
	}

	f := service.BuildProviderFilter(q)
	metrics.DirectoryQueriesTotal.WithLabelValues(metrics.FilterLabel(f.City != "", f.Category != "")).Inc()
	metrics.DirectoryResultSize.Observe(float64(len(listings)))
	return c.JSON(http.StatusOK, listings)
}
