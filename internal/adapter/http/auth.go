package http

import (
	"resume-builder/pkg/apperr"

	"github.com/gofiber/fiber/v2"
)

type signUpReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

type signInReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUp creates the account and signs it in.
func (h *Handler) SignUp(c *fiber.Ctx) error {
	var req signUpReq
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid payload")
	}
	ctx := c.UserContext()
	u, err := h.auth.SignUp(ctx, req.Email, req.Password, req.FullName)
	if err != nil {
		return err
	}
	token, _, err := h.auth.SignIn(ctx, u.Email, req.Password)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"token": token, "user": u})
}

func (h *Handler) SignIn(c *fiber.Ctx) error {
	var req signInReq
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid payload")
	}
	token, u, err := h.auth.SignIn(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"token": token, "user": u})
}

func (h *Handler) SignOut(c *fiber.Ctx) error {
	tok, _ := c.Locals(localToken).(string)
	if err := h.auth.SignOut(c.UserContext(), tok); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) Me(c *fiber.Ctx) error {
	return c.JSON(currentUser(c))
}

func (h *Handler) MyEvents(c *fiber.Ctx) error {
	if h.events == nil {
		return c.JSON([]any{})
	}
	events, err := h.events.ListByUser(c.UserContext(), currentUser(c).ID)
	if err != nil {
		return apperr.DatabaseError("list events", err)
	}
	return c.JSON(events)
}
