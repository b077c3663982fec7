package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Freeeeeet/meeting_rooms/internal/availability"
)

// GET /api/rooms
func (h *Handler) ListRooms(c echo.Context) error {
	rooms, err := h.svc.Rooms.List(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rooms})
}

// GET /api/rooms/:id
func (h *Handler) GetRoom(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "invalid id")
	}

	room, err := h.svc.Rooms.Get(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, room)
}

// POST /api/rooms
func (h *Handler) CreateRoom(c echo.Context) error {
	var req createRoomRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return invalidBody(c, err)
	}

	room, err := h.svc.Rooms.Create(c.Request().Context(), req.toModel())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, room)
}

// PATCH /api/rooms/:id
func (h *Handler) UpdateRoom(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "invalid id")
	}

	var req updateRoomRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return invalidBody(c, err)
	}

	room, err := h.svc.Rooms.Update(c.Request().Context(), id, req.toPatch())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, room)
}

// DELETE /api/rooms/:id
func (h *Handler) DeleteRoom(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "invalid id")
	}

	if err := h.svc.Rooms.Delete(c.Request().Context(), id); err != nil {
		return h.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GET /api/rooms/:id/reservations
func (h *Handler) RoomReservations(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "invalid id")
	}

	reservations, err := h.svc.Reservations.ListForRoom(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": reservations})
}

// GET /api/rooms/:id/schedule?start=YYYY-MM-DD
func (h *Handler) RoomSchedule(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "invalid id")
	}

	loc := h.svc.Schedule.Location()
	start := availability.StartOfDay(h.svc.Reservations.Now().In(loc))
	if v := c.QueryParam("start"); v != "" {
		parsed, err := availability.ParseDate(v, loc)
		if err != nil {
			return badRequest(c, "start must be a date in YYYY-MM-DD format")
		}
		start = parsed
	}

	week, err := h.svc.Schedule.RoomSchedule(c.Request().Context(), id, start)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"room_id": id, "days": week})
}
