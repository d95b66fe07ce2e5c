package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/nunu-app/marketplace-api/internal/api/metrics"
	"github.com/nunu-app/marketplace-api/internal/core/domain"
	"github.com/nunu-app/marketplace-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	log         zerolog.Logger
}

func NewAuthHandler(authService ports.AuthService, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, log: log}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("register", metrics.ResultInvalid).Inc()
		return c.JSON(http.StatusBadRequest, errorResponse{Error: msgInvalidData})
	}
	if err := c.Validate(&req); err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("register", metrics.ResultInvalid).Inc()
		return respondError(c, h.log, err)
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("register", authResult(err)).Inc()
		return respondError(c, h.log, err)
	}

	metrics.AuthAttemptsTotal.WithLabelValues("register", metrics.ResultSuccess).Inc()
	return c.JSON(http.StatusCreated, registerResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	})
}

// Login authenticates a user and returns a bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", metrics.ResultInvalid).Inc()
		return c.JSON(http.StatusBadRequest, errorResponse{Error: msgInvalidData})
	}
	// field details are withheld on login
	if err := c.Validate(&req); err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", metrics.ResultInvalid).Inc()
		return c.JSON(http.StatusBadRequest, errorResponse{Error: msgInvalidData})
	}

	res, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", authResult(err)).Inc()
		return respondError(c, h.log, err)
	}

	metrics.AuthAttemptsTotal.WithLabelValues("login", metrics.ResultSuccess).Inc()
	return c.JSON(http.StatusOK, loginResponse{Token: res.Token, User: toUserView(res.User)})
}

func authResult(err error) string {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return metrics.ResultInvalid
	case errors.Is(err, domain.ErrEmailTaken):
		return metrics.ResultConflict
	case errors.Is(err, domain.ErrInvalidCredentials):
		return metrics.ResultDenied
	default:
		return metrics.ResultError
	}
}
