package fiber

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/lborres/agenda/core"
)

// requireAuth validates the bearer token and stores the resolved uid and
// profile in the context for downstream handlers. Verification and profile
// lookup failures share one generic 401 message.
func (a *Adapter) requireAuth(c fiber.Ctx) error {
	token := bearerToken(c)
	if token == "" {
		return core.Unauthorized(core.ErrMissingAuthHeader.Error())
	}

	uid, profile, err := a.auth.Authenticate(c.Context(), token)
	if err != nil {
		return err
	}

	c.Locals("uid", uid)
	c.Locals("user", profile)

	return c.Next()
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(c fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return header[7:]
	}
	return ""
}
