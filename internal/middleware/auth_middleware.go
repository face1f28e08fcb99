package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/leap-ai/toonify-backend/internal/models"
	jwtPkg "github.com/leap-ai/toonify-backend/pkg/jwt"
)

// AuthMiddleware validates the bearer token and stores the account id in the
// request context. This is the session boundary: everything behind it trusts
// Locals("userID").
func AuthMiddleware(jwtSecret string) fiber.Handler {
	secret := []byte(jwtSecret)
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Authorization header is required"))
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Invalid authorization header format"))
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := jwtPkg.ValidateToken(secret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Invalid token"))
		}

		userID, ok := claims["user_id"].(string)
		if !ok || userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Invalid user ID in token"))
		}
		userEmail, _ := claims["email"].(string)

		c.Locals("userID", userID)
		c.Locals("userEmail", userEmail)

		return c.Next()
	}
}
