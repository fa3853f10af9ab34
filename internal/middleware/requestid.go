package middleware

import (
	"github.com/gofiber/fiber/v2"
	fiberutils "github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
	"github.com/localnerve/franchisedb/internal/logger"
	"go.uber.org/zap"
)

// RequestLogger tags every request with an id, taken from the X-Request-ID
// header or generated, and exposes a child logger carrying it through both
// the Fiber locals and the request's user context.
func RequestLogger(base *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := fiberutils.CopyString(c.Get(fiber.HeaderXRequestID))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(fiber.HeaderXRequestID, requestID)

		reqLogger := base.With(zap.String("request_id", requestID))
		c.Locals(logger.LocalsKey, reqLogger)
		c.SetUserContext(logger.WithContext(c.UserContext(), reqLogger))

		return c.Next()
	}
}
