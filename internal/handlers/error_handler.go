package handlers

import (
	"errors"

	"mesto/internal/apperrors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	MsgValidationFailed = "Validation failed"
	MsgRouteNotFound    = "Страницы по такому URL не найдено"
	MsgServerError      = "На сервере произошла ошибка"
)

// ErrorHandler renders every error returned by a handler or middleware.
// Anything it does not recognize becomes a generic 500 with no details.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var (
			validationErr *ValidationError
			appErr        *apperrors.Error
			fiberErr      *fiber.Error
		)

		switch {
		case errors.As(err, &validationErr):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": MsgValidationFailed,
				"validation": fiber.Map{
					"source": validationErr.Source,
					"keys":   validationErr.Keys,
				},
				"errors": validationErr.Fields,
			})
		case errors.As(err, &appErr):
			log.Debug("request rejected",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Int("status", appErr.Status()),
				zap.String("kind", appErr.Kind.String()))
			return c.Status(appErr.Status()).JSON(fiber.Map{"message": appErr.Message})
		case errors.As(err, &fiberErr):
			return c.Status(fiberErr.Code).JSON(fiber.Map{"message": fiberErr.Message})
		}

		log.Error("unhandled request error",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": MsgServerError})
	}
}

// HandleNotFound answers every request that matched no route.
func HandleNotFound(c *fiber.Ctx) error {
	return apperrors.NotFound(MsgRouteNotFound)
}
