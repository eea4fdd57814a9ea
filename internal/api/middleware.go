package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"blog-service/internal/identity"
	"blog-service/internal/token"
)

// AuthGate extracts and verifies the Authorization header on every request.
// It never rejects: a missing or invalid token leaves the request
// unauthenticated and handlers that require auth fail later with 401. This
// keeps unauthenticated operations (signup, login, introspection) on the same
// pipeline.
func AuthGate(tokens *token.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Next()
		}

		raw := authHeader
		if parts := strings.SplitN(authHeader, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			raw = parts[1]
		}

		claims, err := tokens.Verify(raw)
		if err != nil {
			// deferred failure, not a gate rejection
			return c.Next()
		}

		caller := identity.Identity{UserID: claims.UserID, Email: claims.Email}
		c.SetUserContext(identity.WithIdentity(c.UserContext(), caller))

		return c.Next()
	}
}

// Caller returns the authenticated identity attached by the AuthGate, if any.
func Caller(c *fiber.Ctx) (identity.Identity, bool) {
	return identity.FromContext(c.UserContext())
}
