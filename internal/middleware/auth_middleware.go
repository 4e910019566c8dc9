package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/sefazor/starclub-backend/internal/models"
	jwtPkg "github.com/sefazor/starclub-backend/pkg/jwt"
)

const principalKey = "principal"

func AuthMiddleware(tokens *jwtPkg.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Authorization header is required"))
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Invalid authorization header format"))
		}

		principal, err := tokens.ValidateToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Invalid token"))
		}

		c.Locals(principalKey, principal)
		return c.Next()
	}
}

// RequireAdmin must run after AuthMiddleware.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := Principal(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Authentication required"))
		}
		if !p.IsAdmin {
			return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse("Admin access required"))
		}
		return c.Next()
	}
}

// Principal returns the identity stored by AuthMiddleware.
func Principal(c *fiber.Ctx) (models.Principal, bool) {
	p, ok := c.Locals(principalKey).(models.Principal)
	return p, ok
}
