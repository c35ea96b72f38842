package auth

import (
	"github.com/gofiber/fiber/v2"
)

const tokenKey = "auth_token"

// CaptureToken stores the caller's bearer token, if any, for downstream handlers.
// Rejection is left to the services so request validation runs first.
func CaptureToken() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token, ok := ExtractBearerToken(c.Get(fiber.HeaderAuthorization)); ok {
			c.Locals(tokenKey, token)
		}
		return c.Next()
	}
}

// TokenFromContext retrieves the token captured by CaptureToken, or "".
func TokenFromContext(c *fiber.Ctx) string {
	token, _ := c.Locals(tokenKey).(string)
	return token
}
