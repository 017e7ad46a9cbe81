package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Cynto/watchy-backend/internal/auth"
	"github.com/Cynto/watchy-backend/internal/errors"
	"github.com/Cynto/watchy-backend/internal/model"
	"github.com/Cynto/watchy-backend/internal/service"
)

// UserHandler bundles HTTP handlers for the users resource.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// AddUserRequest represents a user creation payload. Rank is never accepted
// from the client; it is always defaulted server-side.
type AddUserRequest struct {
	Username        string    `json:"username" validate:"required,min=3,max=20,username"`
	Email           string    `json:"email" validate:"required,email"`
	Password        string    `json:"password" validate:"required,min=8,password"`
	PasswordConfirm string    `json:"passwordConfirm" validate:"required,eqfield=Password"`
	DOB             time.Time `json:"dob" validate:"required,minage=13"`
}

// UpdateUserRequest represents a user update payload. An empty password keeps
// the stored hash.
type UpdateUserRequest struct {
	UserID   uuid.UUID `json:"user_id" validate:"required"`
	Username string    `json:"username" validate:"required,min=3,max=20,username"`
	Email    string    `json:"email" validate:"required,email"`
	Password string    `json:"password" validate:"omitempty,min=8,password"`
	Rank     int       `json:"rank" validate:"required,min=1"`
}

// GetAll godoc
// @Summary List all users
// @Tags users
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /users/all [get]
func (h *UserHandler) GetAll(c echo.Context) error {
	users, err := h.svc.GetAll(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, echo.Map{"users": users})
}

// Add godoc
// @Summary Register a new user
// @Tags users
// @Accept json
// @Produce json
// @Param request body AddUserRequest true "User creation payload"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/add [post]
func (h *UserHandler) Add(c echo.Context) error {
	var req AddUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.svc.Register(c.Request().Context(), req.Username, req.Email, req.Password, req.DOB)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "user registered successfully",
		"user":    user,
	})
}

// Update godoc
// @Summary Update a user
// @Tags users
// @Accept json
// @Produce json
// @Param request body UpdateUserRequest true "User update payload"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /users/update [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user := &model.User{
		UserID:   req.UserID,
		Username: req.Username,
		Email:    req.Email,
		Rank:     req.Rank,
	}
	if req.Password != "" {
		pwdHash, err := auth.HashPassword(req.Password)
		if err != nil {
			httpErr := errors.MapErrorToHTTP(err)
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
		}
		user.PwdHash = pwdHash
	}

	if err := h.svc.UpdateOne(c.Request().Context(), user); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "user updated successfully"})
}

// Delete godoc
// @Summary Delete a user
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /users/delete/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	if err := h.svc.Delete(c.Request().Context(), userID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "user deleted successfully"})
}
