package serverutils

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
)

const apiKeyHeader = "X-API-Key"

// ApiKeyMiddleware authenticates callers by a static shared secret in the
// X-API-Key header. The comparison is constant-time.
func ApiKeyMiddleware(expectedKey string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		provided := ctx.Get(apiKeyHeader)
		if provided == "" {
			return ctx.Status(fiber.StatusUnauthorized).
				JSON(ErrorResponse(fiber.StatusUnauthorized, "Missing API key header."))
		}
		if subtle.ConstantTimeCompare([]byte(provided), []byte(expectedKey)) != 1 {
			return ctx.Status(fiber.StatusUnauthorized).
				JSON(ErrorResponse(fiber.StatusUnauthorized, "Invalid API key provided."))
		}
		return ctx.Next()
	}
}
