// Package httpapi отдаёт сервисы приложения по HTTP (JSON, базовый путь /api).
package httpapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Freeeeeet/meeting_rooms/internal/service"
)

type Handler struct {
	svc    *service.Services
	logger *zap.Logger
}

// NewRouter собирает echo со всеми маршрутами API
func NewRouter(svc *service.Services, logger *zap.Logger) *echo.Echo {
	h := &Handler{svc: svc, logger: logger}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()
	e.HTTPErrorHandler = errorHandler(logger)

	registerMiddlewares(e, logger)

	api := e.Group("/api", h.maintenance)
	api.GET("/health", h.Health)

	rooms := api.Group("/rooms")
	rooms.GET("", h.ListRooms)
	rooms.POST("", h.CreateRoom)
	rooms.GET("/:id", h.GetRoom)
	rooms.PATCH("/:id", h.UpdateRoom)
	rooms.DELETE("/:id", h.DeleteRoom)
	rooms.GET("/:id/reservations", h.RoomReservations)
	rooms.GET("/:id/schedule", h.RoomSchedule)

	reservations := api.Group("/reservations")
	reservations.GET("", h.ListReservations)
	reservations.POST("", h.CreateReservation)
	reservations.GET("/:id", h.GetReservation)
	reservations.PATCH("/:id", h.UpdateReservation)
	reservations.DELETE("/:id", h.DeleteReservation)
	reservations.POST("/:id/cancel", h.CancelReservation)

	users := api.Group("/users")
	users.GET("", h.ListUsers)
	users.POST("", h.CreateUser)
	users.GET("/me", h.CurrentUser)
	users.GET("/me/reservations", h.MyReservations)
	users.GET("/:id", h.GetUser)
	users.PATCH("/:id", h.UpdateUser)
	users.DELETE("/:id", h.DeleteUser)

	admin := api.Group("/admin")
	admin.GET("/stats", h.Stats)
	admin.GET("/reservations/pending", h.PendingReservations)
	admin.POST("/reservations/:id/approve", h.ApproveReservation)
	admin.POST("/reservations/:id/reject", h.RejectReservation)
	admin.POST("/rooms/:id/availability", h.ToggleRoomAvailability)
	admin.GET("/settings", h.GetSettings)
	admin.PUT("/settings", h.UpdateSettings)

	return e
}

// GET /api/health
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

func parseID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
