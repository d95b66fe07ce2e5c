package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/nunu-app/marketplace-api/internal/api/middleware"
	"github.com/nunu-app/marketplace-api/internal/core/domain"
)

// subject returns the acting user id placed in the context by middleware.Auth.
// The token subject is trusted as-is; there is no session lookup.
func subject(c echo.Context) (string, error) {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok || claims.Subject == "" {
		return "", domain.ErrUnauthorized
	}
	return claims.Subject, nil
}
