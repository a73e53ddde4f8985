package http

import (
	"strconv"
	"strings"

	"resume-builder/internal/export"
	"resume-builder/internal/model"
	"resume-builder/internal/usecase"
	"resume-builder/pkg/apperr"

	"github.com/gofiber/fiber/v2"
)

type resumeReq struct {
	ResumeData model.ResumeData `json:"resumeData"`
	TemplateID string           `json:"templateId"`
}

// parseResume decodes a preview or export request. The struct rules are
// not applied here: rendering clamps or skips whatever they would reject.
func (h *Handler) parseResume(c *fiber.Ctx) (model.ResumeData, model.TemplateConfig, error) {
	var req resumeReq
	if err := c.BodyParser(&req); err != nil {
		return model.ResumeData{}, model.TemplateConfig{}, apperr.BadRequest("invalid payload")
	}
	tpl, err := usecase.Template(req.TemplateID)
	if err != nil {
		return model.ResumeData{}, model.TemplateConfig{}, err
	}
	return req.ResumeData, tpl, nil
}

func (h *Handler) Preview(c *fiber.Ctx) error {
	data, tpl, err := h.parseResume(c)
	if err != nil {
		return err
	}
	page, err := h.exports.Preview(c.UserContext(), data, tpl)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(page)
}

func (h *Handler) ExportPDF(c *fiber.Ctx) error {
	data, tpl, err := h.parseResume(c)
	if err != nil {
		return err
	}
	art, err := h.exports.Export(c.UserContext(), data, tpl, strings.ToLower(c.Query("strategy")))
	if err != nil {
		return err
	}
	return sendArtifact(c, art)
}

func (h *Handler) ExportPrint(c *fiber.Ctx) error {
	data, tpl, err := h.parseResume(c)
	if err != nil {
		return err
	}
	art, err := h.exports.PrintPage(data, tpl)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, art.ContentType)
	return c.Send(art.Bytes)
}

func sendArtifact(c *fiber.Ctx, art *export.Artifact) error {
	c.Attachment(art.Name)
	c.Set(fiber.HeaderContentType, art.ContentType)
	c.Set("X-Export-Strategy", art.Strategy)
	if art.Pages > 0 {
		c.Set("X-Export-Pages", strconv.Itoa(art.Pages))
	}
	return c.Send(art.Bytes)
}
