package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Cynto/watchy-backend/internal/auth"
	"github.com/Cynto/watchy-backend/internal/errors"
	"github.com/Cynto/watchy-backend/internal/model"
	"github.com/Cynto/watchy-backend/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
	cookieName  string
}

// NewAuthHandler creates a new auth handler. The session cookie carries the
// issued JWT so browser clients stay signed in without storing the token.
func NewAuthHandler(authService service.AuthService, cookieName string) *AuthHandler {
	return &AuthHandler{authService: authService, cookieName: cookieName}
}

// LoginRequest represents a login payload. Email takes precedence when both
// identifiers are present.
type LoginRequest struct {
	Username string `json:"username" validate:"required_without=Email"`
	Email    string `json:"email" validate:"required_without=Username,omitempty,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse represents a successful login.
type LoginResponse struct {
	Token string          `json:"token"`
	User  model.Principal `json:"user"`
}

// Login godoc
// @Summary Login with username or email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	principal, token, err := h.authService.Login(c.Request().Context(), auth.Credentials{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	c.SetCookie(&http.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(auth.SessionTokenExpiry),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	return c.JSON(http.StatusOK, LoginResponse{
		Token: token,
		User:  principal,
	})
}

// Logout godoc
// @Summary Logout the current user
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /auth/logout [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out successfully"})
}
