package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/simpleuser/user-directory/internal/core/domain"
	"github.com/simpleuser/user-directory/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login authenticates a user and returns a signed bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	token, err := h.authService.Authenticate(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		// Throttled and failed logins get the same generic body.
		if errors.Is(err, domain.ErrInvalidCredentials) || errors.Is(err, domain.ErrTooManyAttempts) {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
		}
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{Token: token})
}

// Welcome is the public smoke endpoint under /api/auth.
//
// @Summary      Auth service check
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /auth [get]
func (h *AuthHandler) Welcome(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"message": "welcome"})
}
