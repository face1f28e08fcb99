package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

var errNoUserInContext = errors.New("user not authenticated")

// userIDFromContext reads the account id the auth middleware stored.
func userIDFromContext(c *fiber.Ctx) (string, error) {
	raw := c.Locals("userID")
	if raw == nil {
		return "", errNoUserInContext
	}
	userID, ok := raw.(string)
	if !ok || userID == "" {
		return "", errNoUserInContext
	}
	return userID, nil
}
