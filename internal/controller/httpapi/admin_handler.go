package httpapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Freeeeeet/meeting_rooms/internal/model"
)

// GET /api/admin/stats
func (h *Handler) Stats(c echo.Context) error {
	stats, err := h.svc.Admin.Stats(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

// GET /api/admin/reservations/pending?limit=
func (h *Handler) PendingReservations(c echo.Context) error {
	limit := 0
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return badRequest(c, "invalid limit")
		}
		limit = n
	}

	pending, err := h.svc.Reservations.Pending(c.Request().Context(), limit)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": pending})
}

// POST /api/admin/reservations/:id/approve
func (h *Handler) ApproveReservation(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "invalid id")
	}

	var req reviewRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request format")
	}

	res, err := h.svc.Reservations.Approve(c.Request().Context(), id, req.AdminNotes)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// POST /api/admin/reservations/:id/reject
func (h *Handler) RejectReservation(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "invalid id")
	}

	var req reviewRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request format")
	}

	res, err := h.svc.Reservations.Reject(c.Request().Context(), id, req.AdminNotes)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// POST /api/admin/rooms/:id/availability
func (h *Handler) ToggleRoomAvailability(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "invalid id")
	}

	room, err := h.svc.Rooms.ToggleAvailability(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, room)
}

// GET /api/admin/settings
func (h *Handler) GetSettings(c echo.Context) error {
	settings, err := h.svc.Admin.Settings(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, settings)
}

// PUT /api/admin/settings
func (h *Handler) UpdateSettings(c echo.Context) error {
	var req settingsRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request format")
	}

	settings, err := h.svc.Admin.UpdateSettings(c.Request().Context(), &model.Settings{
		AutoApprove:        req.AutoApprove,
		EmailNotifications: req.EmailNotifications,
		MaintenanceMode:    req.MaintenanceMode,
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, settings)
}
