package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/nunu-app/marketplace-api/internal/core/domain"
)

const (
	msgInvalidData   = "invalid data"
	msgInternalError = "internal server error"
)

// errorResponse is the error envelope used by every endpoint.
type errorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

// respondError maps domain errors to status codes. Anything unknown is
// logged and answered with a generic 500.
func respondError(c echo.Context, log zerolog.Logger, err error) error {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: msgInvalidData, Details: ve.Fields})
	case errors.Is(err, domain.ErrEmailTaken):
		return c.JSON(http.StatusConflict, errorResponse{Error: domain.ErrEmailTaken.Error()})
	case errors.Is(err, domain.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: domain.ErrInvalidCredentials.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: domain.ErrUnauthorized.Error()})
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("request failed")
	return c.JSON(http.StatusInternalServerError, errorResponse{Error: msgInternalError})
}
