package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// GET /api/users
func (h *Handler) ListUsers(c echo.Context) error {
	users, err := h.svc.Users.List(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": users})
}

// GET /api/users/me
func (h *Handler) CurrentUser(c echo.Context) error {
	user, err := h.svc.Users.Current(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// GET /api/users/me/reservations
func (h *Handler) MyReservations(c echo.Context) error {
	tabs, err := h.svc.Reservations.ForUser(c.Request().Context(), h.svc.Users.CurrentUserID())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, tabs)
}

// GET /api/users/:id
func (h *Handler) GetUser(c echo.Context) error {
	user, err := h.svc.Users.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// POST /api/users
func (h *Handler) CreateUser(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return invalidBody(c, err)
	}

	user, err := h.svc.Users.Create(c.Request().Context(), req.toModel())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, user)
}

// PATCH /api/users/:id
func (h *Handler) UpdateUser(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return invalidBody(c, err)
	}

	user, err := h.svc.Users.Update(c.Request().Context(), c.Param("id"), req.toPatch())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// DELETE /api/users/:id
func (h *Handler) DeleteUser(c echo.Context) error {
	if err := h.svc.Users.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return h.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
