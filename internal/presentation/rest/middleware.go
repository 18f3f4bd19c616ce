package rest

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shanedonnelly/devops/internal/application/dto"
	"github.com/shanedonnelly/devops/internal/infra/auth"
)

const identityKey = "identity"

// RequireAuth verifies the bearer token and stores the caller identity on the
// request context. Public routes are simply not registered with it.
func (s *Server) RequireAuth(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "missing bearer token"})
	}

	identity, err := s.tokens.Verify(token)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "invalid token"})
	}

	c.Locals(identityKey, identity)
	return c.Next()
}

func identityFrom(c *fiber.Ctx) *auth.Identity {
	identity, _ := c.Locals(identityKey).(*auth.Identity)
	return identity
}
