package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/Freeeeeet/meeting_rooms/internal/service"
)

func registerMiddlewares(e *echo.Echo, logger *zap.Logger) {
	e.Use(middleware.Recover())

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	}))

	e.Use(requestLogger(logger))
}

func requestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			logger.Info("HTTP request",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", time.Since(start)),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
				zap.String("ip", c.RealIP()),
			)
			return nil
		}
	}
}

// maintenance отклоняет изменяющие запросы вне /api/admin, пока включён режим обслуживания
func (h *Handler) maintenance(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		if req.Method == http.MethodGet || req.Method == http.MethodHead ||
			strings.HasPrefix(c.Path(), "/api/admin") {
			return next(c)
		}

		settings, err := h.svc.Admin.Settings(req.Context())
		if err != nil {
			return h.fail(c, err)
		}
		if settings.MaintenanceMode {
			return h.fail(c, service.ErrMaintenance)
		}

		return next(c)
	}
}
