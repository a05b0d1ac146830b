package server

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const userIDKey = "userID"

// requireAuth validates the bearer token and stashes the user ID for handlers.
func (s *Server) requireAuth(c *fiber.Ctx) error {
	header := c.Get("Authorization")
	if header == "" {
		return fail(c, fiber.StatusUnauthorized, "authorization token required")
	}

	token := strings.TrimPrefix(header, "Bearer ")
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "invalid or expired token")
	}

	c.Locals(userIDKey, claims.UserID)
	return c.Next()
}

func currentUserID(c *fiber.Ctx) string {
	id, _ := c.Locals(userIDKey).(string)
	return id
}

func fail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}
