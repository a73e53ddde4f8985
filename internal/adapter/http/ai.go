package http

import (
	"strings"

	"resume-builder/internal/usecase"
	"resume-builder/pkg/apperr"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) AISummary(c *fiber.Ctx) error {
	var req resumeReq
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid payload")
	}
	text, source := h.ai.Summary(c.UserContext(), req.ResumeData)
	return c.JSON(fiber.Map{"summary": text, "source": source})
}

type experienceReq struct {
	Position string `json:"position"`
	Company  string `json:"company"`
}

func (h *Handler) AIExperience(c *fiber.Ctx) error {
	var req experienceReq
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid payload")
	}
	if strings.TrimSpace(req.Position) == "" {
		return apperr.BadRequest("position is required")
	}
	text, source := h.ai.ExperienceDescription(c.UserContext(), req.Position, req.Company)
	return c.JSON(fiber.Map{"description": text, "source": source})
}

func (h *Handler) Review(c *fiber.Ctx) error {
	var req resumeReq
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid payload")
	}
	return c.JSON(usecase.Review(req.ResumeData))
}

// Extract scrapes an uploaded plain-text resume. The mapped resume data is
// returned only when it passes validation.
func (h *Handler) Extract(c *fiber.Ctx) error {
	text := string(c.Body())
	if strings.TrimSpace(text) == "" {
		return apperr.BadRequest("empty document")
	}
	ex := usecase.Extract(text)
	out := fiber.Map{"extraction": ex}
	if ex.Empty() {
		return c.JSON(out)
	}
	data, err := ex.ToResumeData()
	if err != nil {
		out["error"] = err.Error()
		return c.JSON(out)
	}
	out["resumeData"] = data
	return c.JSON(out)
}
