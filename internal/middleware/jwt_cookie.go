package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/servex-platform/servex-backend/internal/utils"
)

const SessionCookie = "sx_token"

// JWTFromCookie guards the pages the original app kept behind a session,
// answering the restricted-area message when no valid token is present.
func JWTFromCookie(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := c.Cookies(SessionCookie)
		if tokenStr == "" {
			return restricted(c)
		}

		token, err := jwt.ParseWithClaims(tokenStr, &utils.Claims{}, func(t *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		})

		if err != nil || !token.Valid {
			return restricted(c)
		}

		c.Locals("user", token)
		return c.Next()
	}
}

func restricted(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"success": false,
		"error":   "Área restrita",
		"message": "Área restrita a usuários cadastrados.",
	})
}
