package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/servex-platform/servex-backend/internal/utils"
)

func RequireAuthLevel(allowed ...string) fiber.Handler {
	allowedSet := map[string]bool{}
	for _, lvl := range allowed {
		allowedSet[strings.ToLower(lvl)] = true
	}

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

		lvl := strings.ToLower(strings.TrimSpace(claims.AuthLevel))
		if !allowedSet[lvl] {
			return fiber.NewError(fiber.StatusForbidden, "forbidden: insufficient auth level")
		}

		return c.Next()
	}
}
