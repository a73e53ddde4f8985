package http

import (
	"resume-builder/internal/model"
	"resume-builder/pkg/apperr"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) ListTemplates(c *fiber.Ctx) error {
	if cat := c.Query("category"); cat != "" {
		return c.JSON(model.TemplatesByCategory(cat))
	}
	return c.JSON(model.Templates())
}

func (h *Handler) ListCategories(c *fiber.Ctx) error {
	return c.JSON(model.Categories())
}

func (h *Handler) GetTemplate(c *fiber.Ctx) error {
	tpl, ok := model.Template(c.Params("id"))
	if !ok {
		return apperr.NotFound("template")
	}
	return c.JSON(tpl)
}
