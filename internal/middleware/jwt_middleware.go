package middleware

import (
	"strings"

	"mesto/internal/apperrors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// MsgAuthRequired is the single message for every rejected credential.
const MsgAuthRequired = "Необходима авторизация"

// LocalsUserID is the Fiber locals key holding the authenticated user id.
const LocalsUserID = "user_id"

// TokenValidator verifies a token and returns its subject.
type TokenValidator interface {
	ValidateToken(token string) (string, error)
}

// AuthRequired is a Fiber middleware to check for a valid JWT token.
// All failures produce the same Unauthorized error.
func AuthRequired(validator TokenValidator, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)

		// Expected format: "Bearer <token>"
		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || tokenString == "" {
			return apperrors.Unauthorized(MsgAuthRequired)
		}

		userID, err := validator.ValidateToken(tokenString)
		if err != nil {
			log.Debug("token rejected", zap.String("path", c.Path()), zap.Error(err))
			return apperrors.Unauthorized(MsgAuthRequired)
		}

		c.Locals(LocalsUserID, userID)
		return c.Next()
	}
}

// UserID returns the id stored by AuthRequired, or "" outside protected routes.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalsUserID).(string)
	return id
}
