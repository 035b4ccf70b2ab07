package jwt

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/vbncursed/tasktracker/pkg/auth"
)

// UserKey is the request-locals key the middleware stores the resolved
// auth.User under.
const UserKey = "currentUser"

// NewAuthMiddleware returns a Fiber middleware guarding owner-scoped routes.
// It requires an "Authorization: Bearer <token>" header, resolves the token
// to an email and the email to a stored user. Any failure — missing or
// malformed header, bad signature, expired token, unknown identity — yields
// the same 403 body, so the responses carry no detail about which check
// tripped.
func NewAuthMiddleware(tokens *Generator, users auth.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		const prefix = "Bearer "
		authHeader := c.Get("Authorization")
		if len(authHeader) <= len(prefix) || !strings.EqualFold(authHeader[:len(prefix)], prefix) {
			return forbidden(c)
		}
		tokenStr := strings.TrimSpace(authHeader[len(prefix):])
		if tokenStr == "" {
			return forbidden(c)
		}
		email, err := tokens.ResolveIdentity(tokenStr)
		if err != nil {
			return forbidden(c)
		}
		user, err := users.GetByEmail(c.Context(), email)
		if err != nil {
			return forbidden(c)
		}
		c.Locals(UserKey, user)
		return c.Next()
	}
}

// CurrentUser extracts the user placed into locals by the middleware.
func CurrentUser(c *fiber.Ctx) (auth.User, bool) {
	user, ok := c.Locals(UserKey).(auth.User)
	return user, ok
}

func forbidden(c *fiber.Ctx) error {
	return c.Status(http.StatusForbidden).JSON(fiber.Map{"message": "forbidden"})
}
