package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/servex-platform/servex-backend/internal/utils"
)

// AttachJWTLocals copies the verified claims into request locals so handlers
// read the session user from explicit per-request state.
func AttachJWTLocals() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Locals("user")
		if raw == nil {
			return restricted(c)
		}

		token, ok := raw.(*jwt.Token)
		if !ok || token == nil {
			return restricted(c)
		}

		claims, ok := token.Claims.(*utils.Claims)
		if !ok {
			return restricted(c)
		}

		uid := strings.TrimSpace(claims.UserID)
		if uid == "" {
			return restricted(c)
		}

		c.Locals("userId", uid)
		c.Locals("authLevel", claims.AuthLevel)

		return c.Next()
	}
}
