package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/simpleuser/user-directory/internal/core/domain"
	"github.com/simpleuser/user-directory/internal/core/ports"
)

// UserHandler handles HTTP requests for directory operations.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email}
}

// List returns every account in the directory.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   userResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]userResponse, len(users))
	for i := range users {
		out[i] = toUserResponse(&users[i])
	}
	return c.JSON(http.StatusOK, out)
}

// GetByID handles GET /api/users/id/:id.
//
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id (UUID)"
// @Success      200  {object}  userResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /users/id/{id} [get]
func (h *UserHandler) GetByID(c echo.Context) error {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid user id"})
	}

	user, err := h.service.GetUserByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "user not found"})
		}
		return err
	}

	return c.JSON(http.StatusOK, toUserResponse(user))
}

// GetByEmail handles GET /api/users/email/:email.
//
// @Summary      Get a user by email
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        email  path      string  true  "User email"
// @Success      200    {object}  userResponse
// @Failure      404    {object}  map[string]string
// @Router       /users/email/{email} [get]
func (h *UserHandler) GetByEmail(c echo.Context) error {
	user, err := h.service.GetUserByEmail(c.Request().Context(), c.Param("email"))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "user not found"})
		}
		return err
	}

	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Create adds a new account with role USER.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "New user"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  map[string]string
// @Router       /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	user, err := h.service.CreateUser(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "user already exists"})
		}
		return err
	}

	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// DeleteByID handles DELETE /api/users/id/:id.
//
// @Summary      Delete a user by id
// @Tags         users
// @Security     BearerAuth
// @Param        id  path  string  true  "User id (UUID)"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /users/id/{id} [delete]
func (h *UserHandler) DeleteByID(c echo.Context) error {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid user id"})
	}

	if err := h.service.DeleteUserByID(c.Request().Context(), id); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "user not found"})
		}
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// DeleteByEmail handles DELETE /api/users/email/:email.
//
// @Summary      Delete a user by email
// @Tags         users
// @Security     BearerAuth
// @Param        email  path  string  true  "User email"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /users/email/{email} [delete]
func (h *UserHandler) DeleteByEmail(c echo.Context) error {
	if err := h.service.DeleteUserByEmail(c.Request().Context(), c.Param("email")); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "user not found"})
		}
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// AdminPanel is the ADMIN-only probe endpoint. It answers 202 with a static
// payload, mirroring the directory's original behavior.
//
// @Summary      Admin probe
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      202  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /users/admin [get]
func (h *UserHandler) AdminPanel(c echo.Context) error {
	return c.JSON(http.StatusAccepted, map[string]string{
		"admin": "best",
		"rest":  "api",
	})
}
