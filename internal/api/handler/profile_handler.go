package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/nunu-app/marketplace-api/internal/api/metrics"
	"github.com/nunu-app/marketplace-api/internal/core/ports"
)

const msgProfileUpdateFailed = "failed to update profile"

type ProfileHandler struct {
	service ports.ProfileService
	log     zerolog.Logger
}

func NewProfileHandler(service ports.ProfileService, log zerolog.Logger) *ProfileHandler {
	return &ProfileHandler{service: service, log: log}
}

// Update applies a partial update to the caller's user record and profiles.
// Apart from the two 401 cases raised by the auth middleware, every failure
// is answered with a generic 500.
//
// @Summary      Update the caller's profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Fields to update"
// @Success      200   {object}  successResponse
// @Failure      401   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /user/profile [patch]
func (h *ProfileHandler) Update(c echo.Context) error {
	userID, err := subject(c)
	if err != nil {
		metrics.ProfileUpdatesTotal.WithLabelValues(metrics.ResultDenied).Inc()
		return respondError(c, h.log, err)
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return h.fail(c, userID, fmt.Errorf("bind: %w", err))
	}
	if err := c.Validate(&req); err != nil {
		return h.fail(c, userID, fmt.Errorf("validate: %w", err))
	}

	update, ok := req.toDomain()
	if !ok {
		h.log.Warn().
			Str("user_id", userID).
			RawJSON("base_price", req.BasePrice).
			Msg("basePrice is not numeric, leaving it unchanged")
	}

	if err := h.service.UpdateProfile(c.Request().Context(), userID, update); err != nil {
		return h.fail(c, userID, err)
	}

	plan := update.Plan()
	if plan.User != nil {
		metrics.ProfileWritesTotal.WithLabelValues("user").Inc()
	}
	if plan.Provider != nil {
		metrics.ProfileWritesTotal.WithLabelValues("provider_profile").Inc()
	}
	if plan.Client != nil {
		metrics.ProfileWritesTotal.WithLabelValues("client_profile").Inc()
	}
	metrics.ProfileUpdatesTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

func (h *ProfileHandler) fail(c echo.Context, userID string, err error) error {
	metrics.ProfileUpdatesTotal.WithLabelValues(metrics.ResultError).Inc()
	h.log.Error().Err(err).Str("user_id", userID).Msg("profile update failed")
	return c.JSON(http.StatusInternalServerError, errorResponse{Error: msgProfileUpdateFailed})
}
