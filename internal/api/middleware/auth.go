package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/nunu-app/marketplace-api/internal/core/domain"
	"github.com/nunu-app/marketplace-api/pkg/token"
)

const claimsKey = "auth.claims"

// TokenVerifier is satisfied by *token.Manager.
type TokenVerifier interface {
	Verify(raw string) (*token.Claims, error)
}

// Auth requires a bearer token and stores its verified claims in the context.
// A missing header is domain.ErrUnauthorized; anything else that fails is
// domain.ErrInvalidToken.
func Auth(verifier TokenVerifier, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return reject(domain.ErrUnauthorized, nil)
			}

			scheme, raw, ok := strings.Cut(authHeader, " ")
			raw = strings.TrimSpace(raw)
			if !ok || !strings.EqualFold(scheme, "bearer") || raw == "" {
				return reject(domain.ErrInvalidToken, nil)
			}

			claims, err := verifier.Verify(raw)
			if err != nil {
				log.Debug().Err(err).Str("path", c.Path()).Msg("token rejected")
				return reject(domain.ErrInvalidToken, err)
			}

			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

// reject answers 401 with the sentinel's message. The sentinel and cause stay
// reachable through errors.Is.
func reject(sentinel, cause error) *echo.HTTPError {
	he := echo.NewHTTPError(http.StatusUnauthorized, sentinel.Error())
	if cause == nil {
		return he.SetInternal(sentinel)
	}
	return he.SetInternal(fmt.Errorf("%w: %w", sentinel, cause))
}

// ClaimsFromContext returns the claims stored by Auth.
func ClaimsFromContext(c echo.Context) (*token.Claims, bool) {
	claims, ok := c.Get(claimsKey).(*token.Claims)
	return claims, ok && claims != nil
}

// WithClaims stores claims the way Auth does. Handler tests use it to skip
// token signing.
func WithClaims(c echo.Context, claims *token.Claims) {
	c.Set(claimsKey, claims)
}
