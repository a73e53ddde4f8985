package http

import (
	"encoding/json"
	"strings"

	"resume-builder/internal/analytics"
	"resume-builder/internal/domain"
	"resume-builder/internal/model"
	"resume-builder/internal/session"
	"resume-builder/pkg/apperr"

	"github.com/gofiber/fiber/v2"
)

type sessionView struct {
	ID          string               `json:"id"`
	ResumeData  model.ResumeData     `json:"resumeData"`
	Template    model.TemplateConfig `json:"template"`
	ExportState string               `json:"exportState"`
}

func viewOf(s *session.Session) sessionView {
	data, tpl := s.Snapshot()
	return sessionView{ID: s.ID, ResumeData: data, Template: tpl, ExportState: s.Control().State().String()}
}

// withSession resolves :id and tags the request context with it.
func (h *Handler) withSession(c *fiber.Ctx) (*session.Session, error) {
	s, err := h.sessions.Get(c.Params("id"))
	if err != nil {
		return nil, err
	}
	c.SetUserContext(analytics.WithSession(c.UserContext(), s.ID))
	return s, nil
}

func (h *Handler) CreateSession(c *fiber.Ctx) error {
	s := h.sessions.Create()
	ctx := analytics.WithSession(c.UserContext(), s.ID)
	h.track(ctx, domain.EventSessionStart, map[string]any{"templateId": model.DefaultTemplateID})
	return c.Status(fiber.StatusCreated).JSON(viewOf(s))
}

func (h *Handler) GetSession(c *fiber.Ctx) error {
	s, err := h.withSession(c)
	if err != nil {
		return err
	}
	return c.JSON(viewOf(s))
}

// PutSessionData replaces the resume after checking it against the JSON
// schema and the struct rules.
func (h *Handler) PutSessionData(c *fiber.Ctx) error {
	s, err := h.withSession(c)
	if err != nil {
		return err
	}
	body := c.Body()
	if err := model.ValidateJSON(body); err != nil {
		return err
	}
	var data model.ResumeData
	if err := json.Unmarshal(body, &data); err != nil {
		return apperr.BadRequest("invalid payload")
	}
	if err := model.Validate(data); err != nil {
		return err
	}
	if err := s.SetData(data); err != nil {
		return err
	}
	return c.JSON(viewOf(s))
}

type templateReq struct {
	TemplateID string `json:"templateId"`
}

func (h *Handler) PutSessionTemplate(c *fiber.Ctx) error {
	s, err := h.withSession(c)
	if err != nil {
		return err
	}
	var req templateReq
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid payload")
	}
	prev, next, err := s.SetTemplate(req.TemplateID)
	if err != nil {
		return err
	}
	h.track(c.UserContext(), domain.EventTemplateChanged, map[string]any{"from": prev.ID, "to": next.ID})
	return c.JSON(next)
}

type entryReq struct {
	Name string `json:"name"`
}

// AddSessionEntry appends a blank entry of the given kind with its
// default values and returns it.
func (h *Handler) AddSessionEntry(c *fiber.Ctx) error {
	s, err := h.withSession(c)
	if err != nil {
		return err
	}
	var req entryReq
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return apperr.BadRequest("invalid payload")
		}
	}

	var entry any
	switch strings.ToLower(c.Params("kind")) {
	case "experience", "experiences":
		entry, err = s.AddExperience()
	case "education":
		entry, err = s.AddEducation()
	case "skill", "skills":
		entry, err = s.AddSkill(req.Name)
	case "project", "projects":
		entry, err = s.AddProject()
	case "certification", "certifications":
		entry, err = s.AddCertification()
	case "language", "languages":
		entry, err = s.AddLanguage(req.Name)
	default:
		return apperr.BadRequest("unknown entry kind")
	}
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

func (h *Handler) RemoveSessionEntry(c *fiber.Ctx) error {
	s, err := h.withSession(c)
	if err != nil {
		return err
	}
	if err := s.RemoveEntry(c.Params("eid")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) UploadAttachment(c *fiber.Ctx) error {
	s, err := h.withSession(c)
	if err != nil {
		return err
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return apperr.BadRequest("missing file")
	}
	f, err := fh.Open()
	if err != nil {
		return apperr.BadRequest("unreadable file")
	}
	defer f.Close()

	att, err := s.AddAttachment(fh.Filename, f)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(att)
}

func (h *Handler) DownloadAttachment(c *fiber.Ctx) error {
	s, err := h.withSession(c)
	if err != nil {
		return err
	}
	rc, err := s.OpenAttachment(c.Params("aid"))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEOctetStream)
	return c.SendStream(rc)
}

func (h *Handler) DeleteAttachment(c *fiber.Ctx) error {
	s, err := h.withSession(c)
	if err != nil {
		return err
	}
	if err := s.RemoveAttachment(c.Params("aid")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ExportSession exports the session's resume as it is right now. Edits
// made during the export do not affect it.
func (h *Handler) ExportSession(c *fiber.Ctx) error {
	s, err := h.withSession(c)
	if err != nil {
		return err
	}
	art, err := h.exports.ExportSession(c.UserContext(), s, strings.ToLower(c.Query("strategy")))
	if err != nil {
		return err
	}
	return sendArtifact(c, art)
}

func (h *Handler) DeleteSession(c *fiber.Ctx) error {
	if err := h.sessions.Delete(c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
