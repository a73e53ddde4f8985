package http

import (
	"strings"

	"resume-builder/internal/analytics"
	"resume-builder/internal/domain"
	"resume-builder/pkg/apperr"

	"github.com/gofiber/fiber/v2"
)

const (
	localUser  = "user"
	localToken = "token"

	// HeaderSessionID carries the editing session for analytics.
	HeaderSessionID = "X-Session-ID"
)

func bearerToken(c *fiber.Ctx) string {
	v := c.Get(fiber.HeaderAuthorization)
	if len(v) > 7 && strings.EqualFold(v[:7], "bearer ") {
		return strings.TrimSpace(v[7:])
	}
	return ""
}

// identify attaches the signed-in user, when the token is valid, and the
// session header to the request context. It never rejects a request.
func (h *Handler) identify(c *fiber.Ctx) error {
	ctx := c.UserContext()
	if sid := c.Get(HeaderSessionID); sid != "" {
		ctx = analytics.WithSession(ctx, sid)
	}
	if tok := bearerToken(c); tok != "" && h.auth != nil {
		if u, err := h.auth.CurrentUser(ctx, tok); err == nil {
			c.Locals(localUser, u)
			c.Locals(localToken, tok)
			ctx = analytics.WithUser(ctx, u.ID)
		}
	}
	c.SetUserContext(ctx)
	return c.Next()
}

func (h *Handler) requireUser(c *fiber.Ctx) error {
	if currentUser(c) == nil {
		if bearerToken(c) == "" {
			return apperr.Unauthorized("")
		}
		return apperr.InvalidToken("invalid or expired token")
	}
	return c.Next()
}

func currentUser(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals(localUser).(*domain.User)
	return u
}
