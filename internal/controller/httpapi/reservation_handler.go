package httpapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Freeeeeet/meeting_rooms/internal/model"
	"github.com/Freeeeeet/meeting_rooms/internal/service"
)

// GET /api/reservations?user_id=&room_id=&status=
func (h *Handler) ListReservations(c echo.Context) error {
	filter := service.ReservationFilter{UserID: c.QueryParam("user_id")}

	if v := c.QueryParam("room_id"); v != "" {
		roomID, err := strconv.ParseInt(v, 10, 64)
		if err != nil || roomID <= 0 {
			return badRequest(c, "invalid room_id")
		}
		filter.RoomID = roomID
	}

	if v := c.QueryParam("status"); v != "" {
		status := model.ReservationStatus(v)
		if !status.IsValid() {
			return badRequest(c, "invalid status")
		}
		filter.Status = status
	}

	reservations, err := h.svc.Reservations.List(c.Request().Context(), filter)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": reservations})
}

// GET /api/reservations/:id
func (h *Handler) GetReservation(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "invalid id")
	}

	res, err := h.svc.Reservations.Get(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// POST /api/reservations
func (h *Handler) CreateReservation(c echo.Context) error {
	var req createReservationRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return invalidBody(c, err)
	}

	res, err := h.svc.Reservations.Create(c.Request().Context(), req.toModel())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, res)
}

// PATCH /api/reservations/:id
func (h *Handler) UpdateReservation(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "invalid id")
	}

	var req updateReservationRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return invalidBody(c, err)
	}

	res, err := h.svc.Reservations.Update(c.Request().Context(), id, req.toPatch())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// POST /api/reservations/:id/cancel
func (h *Handler) CancelReservation(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "invalid id")
	}

	res, err := h.svc.Reservations.Cancel(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// DELETE /api/reservations/:id
func (h *Handler) DeleteReservation(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "invalid id")
	}

	if err := h.svc.Reservations.Delete(c.Request().Context(), id); err != nil {
		return h.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
