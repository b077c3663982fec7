package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Freeeeeet/meeting_rooms/internal/service"
)

// statusCode сопоставляет ошибку сервисного слоя с кодом ответа
func statusCode(err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrConflict), errors.Is(err, service.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, service.ErrMaintenance):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) fail(c echo.Context, err error) error {
	code := statusCode(err)
	if code == http.StatusInternalServerError {
		h.logger.Error("Request failed",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Path()),
			zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			zap.Error(err),
		)
		return c.JSON(code, echo.Map{"message": "internal server error"})
	}
	return c.JSON(code, echo.Map{"message": err.Error()})
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"message": message})
}

func invalidBody(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, echo.Map{
		"message": "validation error",
		"errors":  validationDetails(err),
	})
}

// errorHandler отдаёт ошибки роутера echo в том же формате, что и обработчики
func errorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			_ = c.JSON(he.Code, echo.Map{"message": fmt.Sprint(he.Message)})
			return
		}

		logger.Error("Unhandled error", zap.String("path", c.Path()), zap.Error(err))
		_ = c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal server error"})
	}
}
